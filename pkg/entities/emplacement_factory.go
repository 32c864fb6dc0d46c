package entities

import (
	"fmt"

	"github.com/Grazulex/Tower/pkg/components"
	"github.com/Grazulex/Tower/pkg/config"
	"github.com/Grazulex/Tower/pkg/ecs"
	"github.com/Grazulex/Tower/pkg/types"
	"github.com/Grazulex/Tower/pkg/utils"
)

// NewEmplacementEntity 创建防御塔实体
// 不检查格子是否可用，也不扣费（由 BoardSystem 负责）
//
// 参数:
//   - em: 实体管理器
//   - catalog: 数值表
//   - category: 防御塔类型
//   - cell: 所在格子
//   - nowMs: 建造时间，作为首次攻击冷却的起点
func NewEmplacementEntity(em *ecs.EntityManager, catalog *config.Catalog, category types.TowerCategory, cell types.Cell, nowMs int64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	stats, ok := catalog.GetTowerStats(category)
	if !ok {
		return 0, fmt.Errorf("unknown tower category: %s", category)
	}

	x, y := utils.CellCenter(cell, float64(catalog.Board.CellSize))

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(entityID, &components.EmplacementComponent{
		Row:              cell.Row,
		Col:              cell.Col,
		Category:         category,
		Damage:           stats.Damage,
		AttacksPerSecond: stats.AttacksPerSecond,
		Range:            stats.Range,
		Cost:             stats.Cost,
		LastAttackMs:     nowMs,
	})

	return entityID, nil
}

// NewBoardEntity 创建棋盘管理器实体
// 返回的实体只携带 BoardComponent，路径由 BoardSystem.Reset 填入
func NewBoardEntity(em *ecs.EntityManager, board config.BoardConfig) ecs.EntityID {
	rows, cols := board.Rows(), board.Cols()
	occupancy := make([][]int, rows)
	for r := range occupancy {
		occupancy[r] = make([]int, cols)
	}

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.BoardComponent{
		Rows:         rows,
		Cols:         cols,
		CellSize:     float64(board.CellSize),
		Occupancy:    occupancy,
		Emplacements: make(map[types.Cell]ecs.EntityID),
		PathCells:    make(map[types.Cell]bool),
	})
	return entityID
}
