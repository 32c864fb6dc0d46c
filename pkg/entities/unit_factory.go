package entities

import (
	"fmt"
	"math/rand"

	"github.com/Grazulex/Tower/pkg/components"
	"github.com/Grazulex/Tower/pkg/config"
	"github.com/Grazulex/Tower/pkg/ecs"
	"github.com/Grazulex/Tower/pkg/types"
	"github.com/Grazulex/Tower/pkg/utils"
)

// NewUnitEntity 创建敌方单位实体
// 单位出生在路径第一个格子的中心，朝第 0 个路径点前进
//
// 参数:
//   - em: 实体管理器
//   - catalog: 数值表（提供基础速度、半径和该类型的数值行）
//   - category: 单位类型
//   - path: 本波路径
//   - rng: 速度扰动使用的随机源，nil 时使用全局源
//
// 返回:
//   - ecs.EntityID: 创建的单位实体ID，失败返回 0
//   - error: 类型未知或路径为空时返回错误
func NewUnitEntity(em *ecs.EntityManager, catalog *config.Catalog, category types.UnitCategory, path []types.Cell, rng *rand.Rand) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if len(path) == 0 {
		return 0, fmt.Errorf("cannot spawn unit on an empty path")
	}
	stats, ok := catalog.GetUnitStats(category)
	if !ok {
		return 0, fmt.Errorf("unknown unit category: %s", category)
	}

	cellSize := float64(catalog.Board.CellSize)
	speed := catalog.Units.BaseSpeed * stats.SpeedMultiplier
	if jitter := catalog.Units.SpeedJitter; jitter > 0 {
		f := rand.Float64
		if rng != nil {
			f = rng.Float64
		}
		speed *= 1 + jitter*(2*f()-1)
	}
	radius := catalog.Units.BaseRadius * stats.RadiusMultiplier
	if radius <= 0 {
		radius = catalog.Units.BaseRadius
	}

	x, y := utils.CellCenter(path[0], cellSize)

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(entityID, &components.HealthComponent{
		CurrentHealth: stats.Health,
		MaxHealth:     stats.Health,
	})
	em.AddComponent(entityID, &components.PathFollowerComponent{
		Path:     path,
		Speed:    speed,
		CellSize: cellSize,
	})
	em.AddComponent(entityID, &components.UnitComponent{
		Category: category,
		Reward:   stats.Reward,
		Radius:   radius,
		State:    types.UnitAdvancing,
		Visible:  true,
	})

	return entityID, nil
}
