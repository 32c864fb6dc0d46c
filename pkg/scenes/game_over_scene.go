package scenes

import (
	"fmt"
	"log"
	"strings"

	"github.com/Grazulex/Tower/pkg/config"
	"github.com/Grazulex/Tower/pkg/event"
	"github.com/Grazulex/Tower/pkg/game"
	"github.com/Grazulex/Tower/pkg/game/state"
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// GameOverScene 结算画面
// Enter 返回主菜单，C 把结算摘要复制到剪贴板
type GameOverScene struct {
	res          *Resources
	sceneManager *game.SceneManager
	result       event.GameOverEvent
	copyStatus   string

	// writeClipboard 可在测试中替换
	writeClipboard func(string) error
}

// NewGameOverScene 使用 res.LastResult 创建结算画面
func NewGameOverScene(res *Resources, sm *game.SceneManager) *GameOverScene {
	scene := &GameOverScene{
		res:            res,
		sceneManager:   sm,
		writeClipboard: clipboard.WriteAll,
	}
	if res.LastResult != nil {
		scene.result = *res.LastResult
	}
	return scene
}

// Update handles Enter and C.
func (g *GameOverScene) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.sceneManager.SwitchPhase(state.PhaseMenu)
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copySummary()
	}
}

// copySummary 剪贴板不可用时只记录日志
func (g *GameOverScene) copySummary() {
	if err := g.writeClipboard(FormatSummary(g.result, g.res.HighScores.GetHighScore(), g.personalBest())); err != nil {
		log.Printf("[GameOverScene] Warning: Clipboard unavailable: %v", err)
		g.copyStatus = "Clipboard unavailable"
		return
	}
	g.copyStatus = "Summary copied"
}

// personalBest 当前玩家的最高分，游客为 0
func (g *GameOverScene) personalBest() int {
	if g.result.Player == "" {
		return 0
	}
	return g.res.HighScores.Profiles().BestScore(g.result.Player)
}

// playerName 结算时的玩家名，游客显示 Guest
func playerName(result event.GameOverEvent) string {
	if result.Player == "" {
		return state.GuestName
	}
	return result.Player
}

// FormatSummary 结算摘要（纯文本，一行一项）
// personalBest 为 0 时不输出个人最高分（游客或没有记录）
func FormatSummary(result event.GameOverEvent, highScore, personalBest int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - game over\n", config.WindowTitle)
	fmt.Fprintf(&b, "Player: %s\n", playerName(result))
	fmt.Fprintf(&b, "Score: %d\n", result.FinalScore)
	fmt.Fprintf(&b, "Wave reached: %d\n", result.Wave)
	fmt.Fprintf(&b, "Enemies killed: %d\n", result.Kills)
	if result.NewHighScore {
		b.WriteString("New high score!\n")
	} else {
		fmt.Fprintf(&b, "High score: %d\n", highScore)
	}
	if personalBest > 0 {
		fmt.Fprintf(&b, "Personal best: %d\n", personalBest)
	}
	return b.String()
}

// Draw renders the summary.
func (g *GameOverScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	width, height := config.WindowSize(g.res.Catalog.Board)
	centerX := float64(width) / 2
	y := float64(height) / 4

	drawCenteredText(screen, "GAME OVER", g.res.Face, centerX, y, colorWarning)
	y += 30
	drawCenteredText(screen, playerName(g.result), g.res.Face, centerX, y, colorTextDim)
	y += 25
	drawCenteredText(screen, fmt.Sprintf("Score: %d", g.result.FinalScore), g.res.Face, centerX, y, colorSelected)
	y += 25
	if g.result.NewHighScore {
		drawCenteredText(screen, "New high score!", g.res.Face, centerX, y, colorGood)
	} else {
		drawCenteredText(screen, fmt.Sprintf("High score: %d", g.res.HighScores.GetHighScore()), g.res.Face, centerX, y, colorText)
	}
	y += 25
	drawCenteredText(screen, fmt.Sprintf("Wave reached: %d", g.result.Wave), g.res.Face, centerX, y, colorText)
	y += 20
	drawCenteredText(screen, fmt.Sprintf("Enemies killed: %d", g.result.Kills), g.res.Face, centerX, y, colorText)
	if best := g.personalBest(); best > 0 {
		y += 20
		drawCenteredText(screen, fmt.Sprintf("Personal best: %d", best), g.res.Face, centerX, y, colorText)
	}

	y = float64(height) - 80
	drawCenteredText(screen, "Press Enter to return to the menu", g.res.Face, centerX, y, colorText)
	drawCenteredText(screen, "C: copy summary", g.res.Face, centerX, y+20, colorTextDim)
	if g.copyStatus != "" {
		drawCenteredText(screen, g.copyStatus, g.res.Face, centerX, y+40, colorTextDim)
	}
}
