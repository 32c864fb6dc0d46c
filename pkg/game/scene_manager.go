package game

import (
	"log"

	"github.com/Grazulex/Tower/pkg/game/state"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 根据阶段创建场景，避免 game 包依赖 scenes 包
type SceneFactory func(phase state.Phase) Scene

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	currentPhase state.Phase
	sceneFactory SceneFactory
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or SwitchPhase to set one.
func NewSceneManager() *SceneManager {
	return &SceneManager{currentPhase: state.PhaseMenu}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// SwitchPhase 切换到指定阶段，场景由工厂创建
// 工厂返回 nil 时保持当前场景
func (sm *SceneManager) SwitchPhase(phase state.Phase) {
	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] SceneFactory not set, cannot switch to %s", phase)
		return
	}

	scene := sm.sceneFactory(phase)
	if scene == nil {
		log.Printf("[SceneManager] No scene for phase %s", phase)
		return
	}

	log.Printf("[SceneManager] %s -> %s", sm.currentPhase, phase)
	sm.currentPhase = phase
	sm.SwitchTo(scene)
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// GetCurrentPhase 返回当前阶段
func (sm *SceneManager) GetCurrentPhase() state.Phase {
	return sm.currentPhase
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
