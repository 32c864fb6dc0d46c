package scenes

import (
	"log"

	"github.com/Grazulex/Tower/pkg/config"
	"github.com/Grazulex/Tower/pkg/event"
	"github.com/Grazulex/Tower/pkg/game"
	"github.com/Grazulex/Tower/pkg/game/state"
	"github.com/Grazulex/Tower/pkg/session"
	"github.com/Grazulex/Tower/pkg/systems"
	"github.com/Grazulex/Tower/pkg/types"
	"github.com/Grazulex/Tower/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// statusDurationMs 提示信息的显示时长
const statusDurationMs = 1500

// towerKeys 数字键 -> 商店中的防御塔
var towerKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3}

// GameScene 对战场景
// 每次 Update 推进一个 tick：处理输入 -> session.Tick -> 粒子 -> 刷新快照
type GameScene struct {
	res          *Resources
	sceneManager *game.SceneManager

	session   *session.Session
	particles *systems.ParticleSystem
	snapshot  session.Snapshot

	clockMs  float64 // 本局累计的模拟时间
	selected types.TowerCategory

	statusText    string
	statusUntilMs float64
	hoverX        int
	hoverY        int
}

// NewGameScene 创建新的一局
// 粒子系统同时作为效果追踪器，被击败的单位在粒子消失后才移除
func NewGameScene(res *Resources, sm *game.SceneManager) *GameScene {
	s := &GameScene{
		res:          res,
		sceneManager: sm,
		selected:     types.TowerBalanced,
	}

	s.particles = systems.NewParticleSystem(res.Catalog.Effects, res.Rand)

	opts := []session.Option{
		session.WithEffectTracker(s.particles),
		session.WithHighScores(res.HighScores),
	}
	if res.Rand != nil {
		opts = append(opts, session.WithRand(res.Rand))
	}
	s.session = session.New(res.Catalog, opts...)

	s.bindEffects(s.session.Dispatcher())
	if res.Sounds != nil {
		state.BindSoundEffects(s.session.Dispatcher(), res.Sounds)
	}

	s.snapshot = s.session.Snapshot()
	log.Printf("[GameScene] New session started (wave %d, %d units)", s.snapshot.Wave.Number, s.snapshot.Wave.Total)
	return s
}

// Update advances the battle by one tick.
func (s *GameScene) Update(deltaTime float64) {
	s.handleInput()
	s.step(deltaTime * 1000)
}

// step 推进模拟时间 deltaMs 并刷新快照
func (s *GameScene) step(deltaMs float64) {
	s.clockMs += deltaMs
	s.session.Tick(int64(s.clockMs))
	s.particles.Update(deltaMs)
	s.snapshot = s.session.Snapshot()

	if s.session.IsGameOver() {
		s.sceneManager.SwitchPhase(state.PhaseGameOver)
	}
}

// handleInput 读取 ebiten 输入并转发给对应的处理函数
func (s *GameScene) handleInput() {
	s.hoverX, s.hoverY = ebiten.CursorPosition()

	for i, key := range towerKeys {
		if inpututil.IsKeyJustPressed(key) {
			s.selectTower(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		log.Printf("[GameScene] Abandoning session")
		s.sceneManager.SwitchPhase(state.PhaseMenu)
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.handleLeftClick(s.hoverX, s.hoverY)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		s.handleRightClick(s.hoverX, s.hoverY)
	}
}

// selectTower 选中商店中第 index 个防御塔
func (s *GameScene) selectTower(index int) {
	if index < 0 || index >= len(types.AllTowerCategories) {
		return
	}
	s.selected = types.AllTowerCategories[index]
}

// handleLeftClick 棋盘内建造，面板内选择防御塔
func (s *GameScene) handleLeftClick(x, y int) {
	if cell, ok := s.cellAt(x, y); ok {
		s.placeSelected(cell)
		return
	}
	if index, ok := s.towerButtonAt(x, y); ok {
		s.selectTower(index)
	}
}

// handleRightClick 拆除棋盘上的防御塔（不返还金币）
func (s *GameScene) handleRightClick(x, y int) {
	cell, ok := s.cellAt(x, y)
	if !ok {
		return
	}
	if s.session.RemoveEmplacement(cell.Row, cell.Col) {
		s.snapshot = s.session.Snapshot()
	}
}

func (s *GameScene) placeSelected(cell types.Cell) {
	if !s.session.CanAfford(s.selected) {
		s.showStatus("Not enough currency")
		return
	}
	if !s.session.PlaceEmplacement(cell.Row, cell.Col, s.selected) {
		s.showStatus("Cannot build here")
		return
	}
	s.snapshot = s.session.Snapshot()
}

func (s *GameScene) showStatus(msg string) {
	s.statusText = msg
	s.statusUntilMs = s.clockMs + statusDurationMs
}

// cellAt 像素坐标 -> 棋盘格子，面板区域返回 false
func (s *GameScene) cellAt(x, y int) (types.Cell, bool) {
	board := s.res.Catalog.Board
	if x >= board.Width {
		return types.Cell{}, false
	}
	return utils.PixelToCell(float64(x), float64(y), float64(board.CellSize), board.Rows(), board.Cols())
}

// towerButtonAt 像素坐标 -> 商店按钮序号
func (s *GameScene) towerButtonAt(x, y int) (int, bool) {
	for i := range types.AllTowerCategories {
		bx, by, bw, bh := config.TowerButtonRect(s.res.Catalog.Board, i)
		if pointInRect(float64(x), float64(y), bx, by, bw, bh) {
			return i, true
		}
	}
	return 0, false
}

// showRangeHints 是否绘制射程圈：设置开启且处于前几波
func (s *GameScene) showRangeHints() bool {
	if s.res.Settings != nil && !s.res.Settings.GetSettings().ShowRangeHints {
		return false
	}
	return s.snapshot.Economy.Wave <= s.res.Catalog.Effects.RangeHintWaves
}

// bindEffects 订阅模拟事件，生成光束、粒子并记录结算数据
func (s *GameScene) bindEffects(d *event.Dispatcher) {
	d.SubscribeFunc(event.AttackOccurred, func(e event.Event) {
		data, ok := e.Data.(event.AttackEvent)
		if !ok {
			return
		}
		s.particles.SpawnBeam(data.FromX, data.FromY, data.ToX, data.ToY, TowerColor(data.Category))
	})

	d.SubscribeFunc(event.UnitDefeated, func(e event.Event) {
		data, ok := e.Data.(event.UnitEvent)
		if !ok {
			return
		}
		s.particles.SpawnDefeatBurst(data.UnitID, data.X, data.Y, UnitColor(data.Category))
	})

	d.SubscribeFunc(event.WaveCompleted, func(e event.Event) {
		if data, ok := e.Data.(event.WaveEvent); ok {
			log.Printf("[GameScene] Wave %d cleared, bonus %d", data.Wave, data.Bonus)
		}
		// 停顿期间旧路径上的效果没有意义
		s.particles.Clear()
	})

	d.SubscribeFunc(event.GameOver, func(e event.Event) {
		if data, ok := e.Data.(event.GameOverEvent); ok {
			result := data
			s.res.LastResult = &result
		}
	})
}
