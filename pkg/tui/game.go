// Package tui 终端版前端
//
// 用 tcell 把同一个 session.Snapshot 画成字符网格：一个棋盘格子对应一个终端字符。
// 光标用方向键移动，空格建造，x 拆除。音效通过 beep 播放。
package tui

import (
	"log"
	"math/rand"
	"time"

	"github.com/Grazulex/Tower/pkg/config"
	"github.com/Grazulex/Tower/pkg/event"
	"github.com/Grazulex/Tower/pkg/game/state"
	"github.com/Grazulex/Tower/pkg/session"
	"github.com/Grazulex/Tower/pkg/types"
	"github.com/gdamore/tcell/v2"
)

// Game 终端版游戏循环
// 直接按 state.Phase 切换菜单、对战和结算画面
type Game struct {
	screen     tcell.Screen
	catalog    *config.Catalog
	highScores *state.HighScoreManager
	sounds     state.SoundPlayer // 可为 nil
	rng        *rand.Rand
	login      *state.LoginForm

	phase    state.Phase
	session  *session.Session
	snapshot session.Snapshot
	result   *event.GameOverEvent

	clockMs  float64
	cursor   types.Cell
	selected types.TowerCategory
	status   string
}

// NewGame 创建终端游戏，screen 必须已经 Init
// sounds 可为 nil；highScores 没有挂接档案时只在内存中记录玩家
func NewGame(screen tcell.Screen, catalog *config.Catalog, highScores *state.HighScoreManager, sounds state.SoundPlayer, rng *rand.Rand) *Game {
	if highScores.Profiles() == nil {
		highScores.SetProfiles(state.NewSaveManager(nil))
	}
	return &Game{
		screen:     screen,
		catalog:    catalog,
		highScores: highScores,
		sounds:     sounds,
		rng:        rng,
		login:      state.NewLoginForm(highScores.Profiles()),
		phase:      state.PhaseMenu,
		selected:   types.TowerBalanced,
	}
}

// Phase 返回当前阶段
func (g *Game) Phase() state.Phase { return g.phase }

// startSession 进入对战阶段，开始新的一局
func (g *Game) startSession() {
	opts := []session.Option{session.WithHighScores(g.highScores)}
	if g.rng != nil {
		opts = append(opts, session.WithRand(g.rng))
	}
	g.session = session.New(g.catalog, opts...)

	d := g.session.Dispatcher()
	if g.sounds != nil {
		state.BindSoundEffects(d, g.sounds)
	}
	d.SubscribeFunc(event.GameOver, func(e event.Event) {
		if data, ok := e.Data.(event.GameOverEvent); ok {
			result := data
			g.result = &result
		}
	})
	d.SubscribeFunc(event.WaveCompleted, func(e event.Event) {
		if data, ok := e.Data.(event.WaveEvent); ok {
			g.status = waveClearedStatus(data)
			// 停顿前把提示画出来
			g.draw()
		}
	})

	g.clockMs = 0
	g.result = nil
	g.status = ""
	g.cursor = types.Cell{Row: 0, Col: 0}
	g.snapshot = g.session.Snapshot()
	g.phase = state.PhasePlaying
	log.Printf("[TUI] Session started as %s", g.highScores.Profiles().DisplayName())
}

// tick 推进一个 tick，游戏结束时切换到结算阶段
func (g *Game) tick(deltaMs float64) {
	if g.phase != state.PhasePlaying {
		return
	}
	g.clockMs += deltaMs
	g.session.Tick(int64(g.clockMs))
	g.snapshot = g.session.Snapshot()

	if g.session.IsGameOver() {
		g.phase = state.PhaseGameOver
	}
}

// handleEvent 处理一个终端事件
// 返回 false 表示退出程序
func (g *Game) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return g.handleKey(ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *Game) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return false
	}

	switch g.phase {
	case state.PhaseMenu:
		return g.handleMenuKey(ev)

	case state.PhasePlaying:
		g.handlePlayingKey(ev)

	case state.PhaseGameOver:
		if ev.Key() == tcell.KeyEnter {
			g.phase = state.PhaseMenu
		}
	}
	return true
}

// handleMenuKey 菜单里字母键用来输入玩家名，所以退出只用 Esc
func (g *Game) handleMenuKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyRune:
		g.login.Type(ev.Rune())
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		g.login.Backspace()
	case tcell.KeyEnter:
		if g.login.Submit() {
			g.startSession()
		}
	case tcell.KeyTab:
		g.login.PlayAsGuest()
		g.startSession()
	case tcell.KeyEscape:
		return false
	}
	return true
}

func (g *Game) handlePlayingKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp:
		g.moveCursor(-1, 0)
	case tcell.KeyDown:
		g.moveCursor(1, 0)
	case tcell.KeyLeft:
		g.moveCursor(0, -1)
	case tcell.KeyRight:
		g.moveCursor(0, 1)
	case tcell.KeyEnter:
		g.place()
	case tcell.KeyEscape:
		log.Printf("[TUI] Abandoning session")
		g.phase = state.PhaseMenu
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k':
			g.moveCursor(-1, 0)
		case 'j':
			g.moveCursor(1, 0)
		case 'h':
			g.moveCursor(0, -1)
		case 'l':
			g.moveCursor(0, 1)
		case ' ':
			g.place()
		case 'x':
			g.remove()
		case '1', '2', '3':
			g.selected = types.AllTowerCategories[ev.Rune()-'1']
		}
	}
}

// moveCursor 光标限制在棋盘内
func (g *Game) moveCursor(dRow, dCol int) {
	row := g.cursor.Row + dRow
	col := g.cursor.Col + dCol
	if row < 0 || row >= g.catalog.Board.Rows() || col < 0 || col >= g.catalog.Board.Cols() {
		return
	}
	g.cursor = types.Cell{Row: row, Col: col}
}

func (g *Game) place() {
	if !g.session.CanAfford(g.selected) {
		g.status = "Not enough currency"
		return
	}
	if !g.session.PlaceEmplacement(g.cursor.Row, g.cursor.Col, g.selected) {
		g.status = "Cannot build here"
		return
	}
	g.status = ""
	g.snapshot = g.session.Snapshot()
}

func (g *Game) remove() {
	if g.session.RemoveEmplacement(g.cursor.Row, g.cursor.Col) {
		g.snapshot = g.session.Snapshot()
	}
}

// Run 主循环：60Hz 的 ticker 驱动模拟，另一个 goroutine 读取终端事件
// 返回时不关闭 screen，由调用方 Fini
func (g *Game) Run() {
	ticker := time.NewTicker(time.Second / config.TicksPerSecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !g.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			g.tick(config.TickDurationMs)
			g.draw()
		}
	}
}
