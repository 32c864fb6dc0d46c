package systems

import (
	"github.com/Grazulex/Tower/pkg/components"
	"github.com/Grazulex/Tower/pkg/ecs"
)

// LifetimeSystem 管理表现实体的生命周期
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 推进所有 LifetimeComponent，过期实体标记删除
// deltaMs 为本帧经过的毫秒数
//
// 返回过期的实体，供调用方更新自身的索引
func (s *LifetimeSystem) Update(deltaMs float64) []ecs.EntityID {
	var expired []ecs.EntityID
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok {
			continue
		}

		lifetime.CurrentLifetime += deltaMs
		if lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
		}

		if lifetime.IsExpired && !s.entityManager.IsMarkedForDestroy(id) {
			s.entityManager.DestroyEntity(id)
			expired = append(expired, id)
		}
	}
	return expired
}
