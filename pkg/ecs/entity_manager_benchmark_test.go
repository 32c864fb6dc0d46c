package ecs

import (
	"reflect"
	"testing"
)

type benchUnitComp struct {
	Health int
}

type benchPosComp struct {
	X, Y float64
}

// setupBenchmarkEntities 创建 count 个单位实体（位置 + 生命值）
// 规模对应一个波次的在场单位数量级
func setupBenchmarkEntities(count int) *EntityManager {
	em := NewEntityManager()
	for i := 0; i < count; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &benchPosComp{X: float64(i), Y: float64(i)})
		em.AddComponent(id, &benchUnitComp{Health: 100})
	}
	return em
}

func BenchmarkGetEntitiesWith_Reflection(b *testing.B) {
	em := setupBenchmarkEntities(60)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = em.GetEntitiesWith(reflect.TypeOf(&benchPosComp{}), reflect.TypeOf(&benchUnitComp{}))
	}
}

func BenchmarkGetEntitiesWith_Generic(b *testing.B) {
	em := setupBenchmarkEntities(60)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetEntitiesWith2[*benchPosComp, *benchUnitComp](em)
	}
}

func BenchmarkGetComponent_Generic(b *testing.B) {
	em := setupBenchmarkEntities(60)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = GetComponent[*benchUnitComp](em, EntityID(i%60+1))
	}
}
