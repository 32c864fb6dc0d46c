package scenes

import (
	"image/color"

	"github.com/Grazulex/Tower/pkg/components"
	"github.com/Grazulex/Tower/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawEffects 绘制攻击光束和死亡粒子
// 两者都随寿命淡出
func (s *GameScene) drawEffects(screen *ebiten.Image) {
	em := s.particles.EntityManager

	for _, id := range ecs.GetEntitiesWith2[*components.BeamComponent, *components.LifetimeComponent](em) {
		beam, _ := ecs.GetComponent[*components.BeamComponent](em, id)
		life, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
		clr := fade(beam.Color, life.Progress())
		vector.StrokeLine(screen, float32(beam.FromX), float32(beam.FromY), float32(beam.ToX), float32(beam.ToY), 2, clr, true)
	}

	for _, id := range ecs.GetEntitiesWith3[*components.ParticleComponent, *components.PositionComponent, *components.LifetimeComponent](em) {
		p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		life, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
		clr := fade(p.Color, life.Progress())
		vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), float32(p.Radius), clr, true)
	}
}

// fade 按寿命进度线性降低透明度
func fade(c color.RGBA, progress float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A) * (1 - progress))}
}
