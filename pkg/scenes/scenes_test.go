package scenes

import (
	"errors"
	"image/color"
	"math/rand"
	"strings"
	"testing"

	"github.com/Grazulex/Tower/pkg/config"
	"github.com/Grazulex/Tower/pkg/event"
	"github.com/Grazulex/Tower/pkg/game"
	"github.com/Grazulex/Tower/pkg/game/state"
	"github.com/Grazulex/Tower/pkg/types"
	"github.com/Grazulex/Tower/pkg/utils"
)

// newTestResources 内存设置 + 内存最高分，固定随机种子
func newTestResources(catalog *config.Catalog) (*Resources, *game.SceneManager) {
	res := NewResources(catalog, game.NewSettingsManager(nil), state.NewHighScoreManager(nil))
	res.Rand = rand.New(rand.NewSource(3))
	sm := game.NewSceneManager()
	sm.SetSceneFactory(NewSceneFactory(res, sm))
	return res, sm
}

func TestHealthColor(t *testing.T) {
	base := color.RGBA{R: 0, G: 0, B: 255, A: 255}

	t.Run("满血为基础色", func(t *testing.T) {
		if got := HealthColor(base, 1); got != base {
			t.Errorf("Expected %v, got %v", base, got)
		}
	})

	t.Run("空血为受伤色", func(t *testing.T) {
		want := color.RGBA{R: 255, G: 100, B: 100, A: 255}
		if got := HealthColor(base, 0); got != want {
			t.Errorf("Expected %v, got %v", want, got)
		}
		if got := HealthColor(base, -3); got != want {
			t.Errorf("Negative ratio should clamp, got %v", got)
		}
	})

	t.Run("半血插值", func(t *testing.T) {
		got := HealthColor(base, 0.5)
		want := color.RGBA{R: 128, G: 50, B: 178, A: 255}
		if got != want {
			t.Errorf("Expected %v, got %v", want, got)
		}
	})
}

func TestSceneFactory(t *testing.T) {
	res, sm := newTestResources(config.DefaultCatalog())
	factory := NewSceneFactory(res, sm)

	if _, ok := factory(state.PhaseMenu).(*MainMenuScene); !ok {
		t.Error("PhaseMenu should create MainMenuScene")
	}
	if _, ok := factory(state.PhasePlaying).(*GameScene); !ok {
		t.Error("PhasePlaying should create GameScene")
	}
	if _, ok := factory(state.PhaseGameOver).(*GameOverScene); !ok {
		t.Error("PhaseGameOver should create GameOverScene")
	}
	if factory(state.Phase(99)) != nil {
		t.Error("Unknown phase should return nil")
	}
}

func TestGameSceneInput(t *testing.T) {
	res, sm := newTestResources(config.DefaultCatalog())
	scene := NewGameScene(res, sm)
	board := scene.snapshot.Board

	t.Run("数字键选择防御塔", func(t *testing.T) {
		scene.selectTower(2)
		if scene.selected != types.TowerHeavy {
			t.Errorf("Expected heavy, got %v", scene.selected)
		}
		scene.selectTower(7)
		if scene.selected != types.TowerHeavy {
			t.Error("Out-of-range index should be ignored")
		}
	})

	t.Run("点击商店按钮", func(t *testing.T) {
		bx, by, _, _ := config.TowerButtonRect(res.Catalog.Board, 1)
		scene.handleLeftClick(int(bx)+5, int(by)+5)
		if scene.selected != types.TowerRapid {
			t.Errorf("Expected rapid, got %v", scene.selected)
		}
	})

	t.Run("点击路径格子", func(t *testing.T) {
		scene.selectTower(0)
		x, y := utils.CellCenter(board.Path[2], board.CellSize)
		scene.handleLeftClick(int(x), int(y))
		if scene.statusText != "Cannot build here" {
			t.Errorf("Expected build error, got %q", scene.statusText)
		}
		if len(scene.snapshot.Emplacements) != 0 {
			t.Error("Nothing should be built on the path")
		}
	})

	var free types.Cell
	for c := 0; c < board.Cols; c++ {
		cell := types.Cell{Row: 0, Col: c}
		if !board.IsPath(cell) {
			free = cell
			break
		}
	}

	t.Run("左键建造", func(t *testing.T) {
		x, y := utils.CellCenter(free, board.CellSize)
		scene.handleLeftClick(int(x), int(y))
		if len(scene.snapshot.Emplacements) != 1 {
			t.Fatalf("Expected 1 emplacement, got %d", len(scene.snapshot.Emplacements))
		}
		if scene.snapshot.Economy.Currency != 200 {
			t.Errorf("Expected 200 currency, got %d", scene.snapshot.Economy.Currency)
		}
	})

	t.Run("右键拆除", func(t *testing.T) {
		x, y := utils.CellCenter(free, board.CellSize)
		scene.handleRightClick(int(x), int(y))
		if len(scene.snapshot.Emplacements) != 0 {
			t.Error("Emplacement should be removed")
		}
		if scene.snapshot.Economy.Currency != 200 {
			t.Error("Removal should not refund")
		}
	})

	t.Run("面板区域不是格子", func(t *testing.T) {
		if _, ok := scene.cellAt(res.Catalog.Board.Width+1, 10); ok {
			t.Error("Panel pixels should not map to a cell")
		}
	})
}

func TestGameSceneRangeHints(t *testing.T) {
	res, sm := newTestResources(config.DefaultCatalog())
	scene := NewGameScene(res, sm)

	if !scene.showRangeHints() {
		t.Error("Range hints should be shown in wave 1")
	}
	res.Settings.SetShowRangeHints(false)
	if scene.showRangeHints() {
		t.Error("Range hints should follow the settings")
	}
}

func TestGameSceneGameOver(t *testing.T) {
	catalog := config.DefaultCatalog()
	catalog.Economy.StartingLives = 1
	res, sm := newTestResources(catalog)
	sm.SwitchPhase(state.PhasePlaying)
	scene := sm.GetCurrentScene().(*GameScene)

	for i := 0; i < 20000 && sm.GetCurrentPhase() == state.PhasePlaying; i++ {
		scene.step(config.TickDurationMs)
	}

	if sm.GetCurrentPhase() != state.PhaseGameOver {
		t.Fatalf("Expected game over phase, got %s", sm.GetCurrentPhase())
	}
	if res.LastResult == nil {
		t.Fatal("LastResult should be recorded")
	}
	if res.LastResult.FinalScore != 300 || !res.LastResult.NewHighScore {
		t.Errorf("Unexpected result %+v", *res.LastResult)
	}
	if res.HighScores.GetHighScore() != 300 {
		t.Errorf("Expected high score 300, got %d", res.HighScores.GetHighScore())
	}
}

func TestGameSceneDefeatEffects(t *testing.T) {
	res, sm := newTestResources(config.DefaultCatalog())
	scene := NewGameScene(res, sm)

	scene.session.Dispatcher().Dispatch(event.Event{
		Type: event.UnitDefeated,
		Data: event.UnitEvent{UnitID: 42, Category: types.UnitLight, X: 100, Y: 100},
	})
	if !scene.particles.HasPendingEffects(42) {
		t.Fatal("Defeat should spawn particles owned by the unit")
	}

	scene.session.Dispatcher().Dispatch(event.Event{
		Type: event.AttackOccurred,
		Data: event.AttackEvent{Category: types.TowerRapid, FromX: 0, FromY: 0, ToX: 10, ToY: 10},
	})
	if got := scene.particles.Count(); got != res.Catalog.Effects.DefeatParticles+1 {
		t.Errorf("Expected %d effect entities, got %d", res.Catalog.Effects.DefeatParticles+1, got)
	}
}

func TestGameOverSceneSummary(t *testing.T) {
	res, sm := newTestResources(config.DefaultCatalog())
	res.LastResult = &event.GameOverEvent{Wave: 4, Kills: 57, FinalScore: 820, NewHighScore: true}
	scene := NewGameOverScene(res, sm)

	t.Run("摘要内容", func(t *testing.T) {
		summary := FormatSummary(*res.LastResult, 0, 0)
		for _, want := range []string{"Player: Guest", "Score: 820", "Wave reached: 4", "Enemies killed: 57", "New high score!"} {
			if !strings.Contains(summary, want) {
				t.Errorf("Summary missing %q:\n%s", want, summary)
			}
		}
		if strings.Contains(summary, "Personal best") {
			t.Errorf("Guest summary should not show a personal best:\n%s", summary)
		}
	})

	t.Run("已登录玩家的摘要", func(t *testing.T) {
		profiles := res.HighScores.Profiles()
		profiles.Login("Alice")
		profiles.RecordScore(950)
		profiles.RecordScore(820)

		result := event.GameOverEvent{Wave: 4, Kills: 57, FinalScore: 820, Player: "Alice"}
		player := NewGameOverScene(res, sm)
		player.result = result
		summary := FormatSummary(result, 950, player.personalBest())
		for _, want := range []string{"Player: Alice", "High score: 950", "Personal best: 950"} {
			if !strings.Contains(summary, want) {
				t.Errorf("Summary missing %q:\n%s", want, summary)
			}
		}
	})

	t.Run("复制到剪贴板", func(t *testing.T) {
		var copied string
		scene.writeClipboard = func(s string) error {
			copied = s
			return nil
		}
		scene.copySummary()
		if !strings.Contains(copied, "Score: 820") {
			t.Errorf("Unexpected clipboard content %q", copied)
		}
		if scene.copyStatus != "Summary copied" {
			t.Errorf("Unexpected status %q", scene.copyStatus)
		}
	})

	t.Run("剪贴板不可用", func(t *testing.T) {
		scene.writeClipboard = func(string) error { return errors.New("no clipboard") }
		scene.copySummary()
		if scene.copyStatus != "Clipboard unavailable" {
			t.Errorf("Unexpected status %q", scene.copyStatus)
		}
	})
}

func TestMainMenuToggles(t *testing.T) {
	res, sm := newTestResources(config.DefaultCatalog())
	menu := NewMainMenuScene(res, sm)

	menu.toggleSound()
	if res.Settings.GetSettings().SoundEnabled {
		t.Error("Sound should be disabled after toggle")
	}
	menu.toggleRangeHints()
	if res.Settings.GetSettings().ShowRangeHints {
		t.Error("Range hints should be disabled after toggle")
	}

	lines := strings.Join(menu.menuLines(), "\n")
	if !strings.Contains(lines, "sound [off]") || !strings.Contains(lines, "range hints [off]") {
		t.Errorf("Menu should reflect settings:\n%s", lines)
	}
}

func TestMainMenuVolume(t *testing.T) {
	res, sm := newTestResources(config.DefaultCatalog())
	menu := NewMainMenuScene(res, sm)

	tests := []struct {
		name  string
		delta float64
		times int
		want  float64
	}{
		{"调低一档", -volumeStep, 1, 0.7},
		{"调高一档", volumeStep, 1, 0.8},
		{"不超过最大值", volumeStep, 5, 1.0},
		{"不低于0", -volumeStep, 15, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < tt.times; i++ {
				menu.adjustVolume(tt.delta)
			}
			got := res.Settings.GetSettings().SoundVolume
			if got < tt.want-1e-9 || got > tt.want+1e-9 {
				t.Errorf("Expected volume %.1f, got %f", tt.want, got)
			}
		})
	}

	if lines := strings.Join(menu.menuLines(), "\n"); !strings.Contains(lines, "volume [0%]") {
		t.Errorf("Menu should show the volume:\n%s", lines)
	}
}

func TestMainMenuLogin(t *testing.T) {
	t.Run("空名字留在菜单", func(t *testing.T) {
		res, sm := newTestResources(config.DefaultCatalog())
		sm.SwitchPhase(state.PhaseMenu)
		menu := NewMainMenuScene(res, sm)

		menu.submitName()
		if sm.GetCurrentPhase() != state.PhaseMenu {
			t.Errorf("Expected to stay in menu, got %s", sm.GetCurrentPhase())
		}
		if lines := strings.Join(menu.menuLines(), "\n"); !strings.Contains(lines, "enter a name") {
			t.Errorf("Menu should show the error:\n%s", lines)
		}
	})

	t.Run("输入名字后开始", func(t *testing.T) {
		res, sm := newTestResources(config.DefaultCatalog())
		menu := NewMainMenuScene(res, sm)
		for _, r := range "Alice!" {
			menu.login.Type(r)
		}

		menu.submitName()
		if sm.GetCurrentPhase() != state.PhasePlaying {
			t.Errorf("Expected playing phase, got %s", sm.GetCurrentPhase())
		}
		if got := res.HighScores.Profiles().CurrentUser(); got != "Alice" {
			t.Errorf("Expected Alice, got %q", got)
		}
	})

	t.Run("游客开始", func(t *testing.T) {
		res, sm := newTestResources(config.DefaultCatalog())
		res.HighScores.Profiles().Login("bob")
		menu := NewMainMenuScene(res, sm)
		if menu.login.Name() != "bob" {
			t.Errorf("Expected prefilled bob, got %q", menu.login.Name())
		}

		menu.playAsGuest()
		if !res.HighScores.Profiles().IsGuest() {
			t.Error("Expected guest mode")
		}
		if sm.GetCurrentPhase() != state.PhasePlaying {
			t.Errorf("Expected playing phase, got %s", sm.GetCurrentPhase())
		}
	})

	t.Run("排行榜", func(t *testing.T) {
		res, sm := newTestResources(config.DefaultCatalog())
		profiles := res.HighScores.Profiles()
		profiles.Login("carol")
		profiles.RecordScore(640)
		menu := NewMainMenuScene(res, sm)

		lines := strings.Join(menu.menuLines(), "\n")
		if !strings.Contains(lines, "Leaderboard") || !strings.Contains(lines, "carol") {
			t.Errorf("Menu should list the leaderboard:\n%s", lines)
		}
	})
}
