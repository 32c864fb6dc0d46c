package session

import (
	"github.com/Grazulex/Tower/pkg/components"
	"github.com/Grazulex/Tower/pkg/ecs"
	"github.com/Grazulex/Tower/pkg/game/state"
	"github.com/Grazulex/Tower/pkg/types"
)

// BoardView 棋盘的只读视图
type BoardView struct {
	Rows      int
	Cols      int
	CellSize  float64
	Path      []types.Cell
	Occupancy [][]int // 副本
}

// IsPath 格子是否属于路径
func (b BoardView) IsPath(cell types.Cell) bool {
	for _, p := range b.Path {
		if p == cell {
			return true
		}
	}
	return false
}

// EmplacementView 防御塔的只读视图
type EmplacementView struct {
	ID       ecs.EntityID
	Cell     types.Cell
	Category types.TowerCategory
	X, Y     float64 // 格子中心
	Range    float64
	TargetID ecs.EntityID
}

// UnitView 单位的只读视图
type UnitView struct {
	ID          ecs.EntityID
	Category    types.UnitCategory
	State       types.UnitState
	X, Y        float64
	Radius      float64
	Health      int
	MaxHealth   int
	HealthRatio float64
	Visible     bool
}

// WaveView 当前波次进度
type WaveView struct {
	Number     int
	Total      int
	Spawned    int
	Active     int
	Remaining  int
	IntervalMs int64
}

// Snapshot 一个 tick 结束时的完整只读状态
type Snapshot struct {
	NowMs        int64
	Board        BoardView
	Emplacements []EmplacementView
	Units        []UnitView
	Economy      state.EconomySnapshot
	Wave         WaveView
	HighScore    int
}

// Snapshot 生成当前状态的只读副本
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		NowMs:     s.nowMs,
		Economy:   s.economy.Snapshot(),
		HighScore: s.HighScore(),
		Wave: WaveView{
			Number:     s.scheduler.Wave(),
			Total:      s.scheduler.TotalUnits(),
			Spawned:    s.scheduler.SpawnedUnits(),
			Active:     len(s.scheduler.ActiveUnits()),
			Remaining:  s.scheduler.RemainingUnits(),
			IntervalMs: s.scheduler.SpawnIntervalMs(),
		},
	}

	if board := s.board.Board(); board != nil {
		occupancy := make([][]int, len(board.Occupancy))
		for r := range board.Occupancy {
			occupancy[r] = append([]int(nil), board.Occupancy[r]...)
		}
		snap.Board = BoardView{
			Rows:      board.Rows,
			Cols:      board.Cols,
			CellSize:  board.CellSize,
			Path:      append([]types.Cell(nil), board.Path...),
			Occupancy: occupancy,
		}
	}

	for _, id := range ecs.GetEntitiesWith2[*components.EmplacementComponent, *components.PositionComponent](s.em) {
		emp, _ := ecs.GetComponent[*components.EmplacementComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		snap.Emplacements = append(snap.Emplacements, EmplacementView{
			ID:       id,
			Cell:     types.Cell{Row: emp.Row, Col: emp.Col},
			Category: emp.Category,
			X:        pos.X,
			Y:        pos.Y,
			Range:    emp.Range,
			TargetID: emp.TargetID,
		})
	}

	for _, id := range s.scheduler.ActiveUnits() {
		unit, ok := ecs.GetComponent[*components.UnitComponent](s.em, id)
		if !ok {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		health, _ := ecs.GetComponent[*components.HealthComponent](s.em, id)
		view := UnitView{
			ID:       id,
			Category: unit.Category,
			State:    unit.State,
			Radius:   unit.Radius,
			Visible:  unit.Visible,
		}
		if pos != nil {
			view.X, view.Y = pos.X, pos.Y
		}
		if health != nil {
			view.Health = health.CurrentHealth
			view.MaxHealth = health.MaxHealth
			view.HealthRatio = health.Ratio()
		}
		snap.Units = append(snap.Units, view)
	}

	return snap
}
