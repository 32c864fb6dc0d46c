// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来：数值表加载、存储、音频、场景管理器。
// 桌面端通过 main.go 调用 NewApp()。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/Grazulex/Tower/pkg/config"
	"github.com/Grazulex/Tower/pkg/game"
	"github.com/Grazulex/Tower/pkg/game/state"
	"github.com/Grazulex/Tower/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "grazulex_tower"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// CatalogPath 磁盘上的数值表，为空时使用内嵌的 data/catalog.yaml
	CatalogPath string
	// SaveDir 最高分文件目录，为空时使用 gdata
	SaveDir string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	catalog      *config.Catalog
	verbose      bool
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 只有数值表无法加载（包括内嵌版本）时返回错误，其余协作者不可用时降级运行。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	catalog, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("数值表加载失败: %w", err)
	}

	// gdata 不可用时设置和最高分只保存在内存中
	var gdataManager *gdata.Manager
	if m, err := gdata.Open(gdata.Config{AppName: AppName}); err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
	} else {
		gdataManager = m
	}
	settings := game.NewSettingsManager(gdataManager)
	store := newScoreStore(cfg.SaveDir, gdataManager)
	highScores := state.NewHighScoreManager(store)
	highScores.SetProfiles(state.NewSaveManager(store))

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	res := scenes.NewResources(catalog, settings, highScores)
	res.Rand = rand.New(rand.NewSource(seed))

	// 初始化音频上下文（进程内只能创建一次）
	audioManager := game.NewAudioManager(audio.NewContext(game.AudioSampleRate), settings)
	audioManager.PreloadSounds()
	res.Sounds = audioManager
	log.Printf("[App] AudioManager initialized")

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(scenes.NewSceneFactory(res, sceneManager))
	sceneManager.SwitchPhase(state.PhaseMenu)

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		catalog:      catalog,
		verbose:      cfg.Verbose,
	}, nil
}

// loadCatalog 优先加载磁盘上的数值表，失败时回退到内嵌版本
func loadCatalog(path string) (*config.Catalog, error) {
	if path != "" {
		catalog, err := config.LoadCatalog(path)
		if err == nil {
			log.Printf("[App] Loaded catalog from %s", path)
			return catalog, nil
		}
		log.Printf("[App] Warning: %v (falling back to embedded catalog)", err)
	}
	return config.LoadEmbeddedCatalog(config.DefaultCatalogPath)
}

// newScoreStore 最高分和玩家档案的存储
// 指定了目录时使用 YAML 文件，否则使用 gdata；都不可用时返回 nil
func newScoreStore(saveDir string, gdataManager *gdata.Manager) state.Store {
	if saveDir != "" {
		store, err := state.NewFileStore(saveDir)
		if err == nil {
			log.Printf("[App] High scores and profiles stored in %s", store.Path())
			return store
		}
		log.Printf("[App] Warning: %v (falling back to gdata)", err)
	}
	if store := state.NewGdataStore(gdataManager); store != nil {
		return store
	}
	return nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（每秒 60 次）
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		a.settings.SetFullscreen(fullscreen)
		if err := a.settings.Save(); err != nil {
			log.Printf("[App] Warning: Failed to save settings: %v", err)
		}
	}

	a.sceneManager.Update(1.0 / config.TicksPerSecond)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸（棋盘 + 右侧面板）
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowSize(a.catalog.Board)
}

// WindowSize 返回窗口的初始尺寸
func (a *App) WindowSize() (int, int) {
	return config.WindowSize(a.catalog.Board)
}

// IsFullscreen 返回设置中保存的全屏状态
func (a *App) IsFullscreen() bool {
	return a.settings.GetSettings().Fullscreen
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
