package scenes

import (
	"fmt"
	"log"
	"math"

	"github.com/Grazulex/Tower/pkg/config"
	"github.com/Grazulex/Tower/pkg/game"
	"github.com/Grazulex/Tower/pkg/game/state"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// leaderboardRows 菜单中排行榜显示的行数
const leaderboardRows = 5

// volumeStep 每次按 -/= 调整的音量
const volumeStep = 0.1

// MainMenuScene 主菜单：玩家名输入、排行榜、操作说明和设置开关
type MainMenuScene struct {
	res          *Resources
	sceneManager *game.SceneManager
	login        *state.LoginForm
}

// NewMainMenuScene creates the main menu.
func NewMainMenuScene(res *Resources, sm *game.SceneManager) *MainMenuScene {
	log.Printf("[MainMenuScene] Created (high score %d)", res.HighScores.GetHighScore())
	return &MainMenuScene{
		res:          res,
		sceneManager: sm,
		login:        state.NewLoginForm(res.HighScores.Profiles()),
	}
}

// Update 处理菜单按键
//   - 字母/数字/空格: 输入玩家名，Backspace 删除
//   - Enter: 以输入的名字登录并开始
//   - Tab: 以游客身份开始
//   - F1: 开关音效，F2: 开关射程提示
//   - -/=: 调低/调高音量
func (m *MainMenuScene) Update(deltaTime float64) {
	for _, r := range ebiten.AppendInputChars(nil) {
		m.login.Type(r)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		m.login.Backspace()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		m.submitName()
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		m.playAsGuest()
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		m.toggleSound()
	case inpututil.IsKeyJustPressed(ebiten.KeyF2):
		m.toggleRangeHints()
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		m.adjustVolume(-volumeStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		m.adjustVolume(volumeStep)
	}
}

// submitName 名字不合法时留在菜单显示原因
func (m *MainMenuScene) submitName() {
	if !m.login.Submit() {
		log.Printf("[MainMenuScene] Login rejected: %s", m.login.Message)
		return
	}
	m.startGame()
}

func (m *MainMenuScene) playAsGuest() {
	m.login.PlayAsGuest()
	m.startGame()
}

func (m *MainMenuScene) startGame() {
	log.Printf("[MainMenuScene] Starting game as %s", m.res.HighScores.Profiles().DisplayName())
	m.sceneManager.SwitchPhase(state.PhasePlaying)
}

func (m *MainMenuScene) adjustVolume(delta float64) {
	if m.res.Settings == nil {
		return
	}
	settings := m.res.Settings.GetSettings()
	m.res.Settings.SetSoundVolume(settings.SoundVolume + delta)
	m.saveSettings()
}

func (m *MainMenuScene) toggleSound() {
	if m.res.Settings == nil {
		return
	}
	settings := m.res.Settings.GetSettings()
	m.res.Settings.SetSoundEnabled(!settings.SoundEnabled)
	m.saveSettings()
}

func (m *MainMenuScene) toggleRangeHints() {
	if m.res.Settings == nil {
		return
	}
	settings := m.res.Settings.GetSettings()
	m.res.Settings.SetShowRangeHints(!settings.ShowRangeHints)
	m.saveSettings()
}

func (m *MainMenuScene) saveSettings() {
	if err := m.res.Settings.Save(); err != nil {
		log.Printf("[MainMenuScene] Warning: Failed to save settings: %v", err)
	}
}

// menuLines 返回菜单正文（标题以下）
func (m *MainMenuScene) menuLines() []string {
	sound, hints, volume := "on", "on", 0
	if m.res.Settings != nil {
		settings := m.res.Settings.GetSettings()
		if !settings.SoundEnabled {
			sound = "off"
		}
		if !settings.ShowRangeHints {
			hints = "off"
		}
		volume = int(math.Round(settings.SoundVolume * 100))
	}

	record := m.res.HighScores.GetRecord()
	holder := ""
	if record.Player != "" {
		holder = " by " + record.Player
	}
	lines := []string{
		fmt.Sprintf("High score: %d%s", record.Score, holder),
	}
	if record.Wave > 0 {
		lines = append(lines, fmt.Sprintf("(wave %d, %d kills)", record.Wave, record.Kills))
	}

	lines = append(lines, "", fmt.Sprintf("Name: %s_", m.login.Name()))
	if m.login.Message != "" {
		lines = append(lines, m.login.Message)
	}
	lines = append(lines, "Enter: play    Tab: play as guest")

	if board := m.res.HighScores.Profiles().Leaderboard(leaderboardRows); len(board) > 0 {
		lines = append(lines, "", "Leaderboard")
		for i, entry := range board {
			lines = append(lines, fmt.Sprintf("%d. %-20s %6d", i+1, entry.Username, entry.Score))
		}
	}

	return append(lines,
		"",
		"1/2/3 or click the shop: select tower",
		"Left click: build    Right click: remove",
		"Esc: back to menu",
		"",
		fmt.Sprintf("F1: sound [%s]    F2: range hints [%s]    -/=: volume [%d%%]", sound, hints, volume),
	)
}

// Draw renders the main menu.
func (m *MainMenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	width, height := config.WindowSize(m.res.Catalog.Board)
	centerX := float64(width) / 2

	drawCenteredText(screen, config.WindowTitle, m.res.Face, centerX, float64(height)/8, colorSelected)

	y := float64(height)/8 + 30
	for _, line := range m.menuLines() {
		clr := colorText
		if m.login.IsError && line == m.login.Message {
			clr = colorWarning
		}
		drawCenteredText(screen, line, m.res.Face, centerX, y, clr)
		y += 16
	}
}
