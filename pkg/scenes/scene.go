package scenes

import (
	"math/rand"

	"github.com/Grazulex/Tower/pkg/config"
	"github.com/Grazulex/Tower/pkg/event"
	"github.com/Grazulex/Tower/pkg/game"
	"github.com/Grazulex/Tower/pkg/game/state"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// Resources 各场景共享的协作者
// 由 app 包创建一次，在场景切换之间保持不变
type Resources struct {
	Catalog    *config.Catalog
	Settings   *game.SettingsManager
	HighScores *state.HighScoreManager
	Sounds     state.SoundPlayer // 可为 nil
	Face       text.Face
	Rand       *rand.Rand // 可为 nil，使用全局随机源

	// LastResult 最近一局的结算数据，供 GameOverScene 展示
	LastResult *event.GameOverEvent
}

// NewResources 创建共享资源，字体使用 basicfont.Face7x13
// highScores 没有挂接档案管理器时使用仅内存的 SaveManager
func NewResources(catalog *config.Catalog, settings *game.SettingsManager, highScores *state.HighScoreManager) *Resources {
	if highScores.Profiles() == nil {
		highScores.SetProfiles(state.NewSaveManager(nil))
	}
	return &Resources{
		Catalog:    catalog,
		Settings:   settings,
		HighScores: highScores,
		Face:       text.NewGoXFace(basicfont.Face7x13),
	}
}

// NewSceneFactory 返回按阶段创建场景的工厂
func NewSceneFactory(res *Resources, sm *game.SceneManager) game.SceneFactory {
	return func(phase state.Phase) game.Scene {
		switch phase {
		case state.PhaseMenu:
			return NewMainMenuScene(res, sm)
		case state.PhasePlaying:
			return NewGameScene(res, sm)
		case state.PhaseGameOver:
			return NewGameOverScene(res, sm)
		default:
			return nil
		}
	}
}
