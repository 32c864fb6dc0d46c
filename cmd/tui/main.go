// tui 终端版塔防
//
// 用法：
//
//	go run ./cmd/tui [-catalog data/catalog.yaml] [-save-dir DIR] [-mute] [-verbose]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/Grazulex/Tower/pkg/config"
	"github.com/Grazulex/Tower/pkg/game/state"
	"github.com/Grazulex/Tower/pkg/tui"
	"github.com/gdamore/tcell/v2"
)

var (
	catalogPath = flag.String("catalog", "", "数值表路径（默认使用内置数值）")
	saveDir     = flag.String("save-dir", "", "最高分保存目录（默认 ~/.grazulex_tower）")
	volume      = flag.Float64("volume", 0.8, "音量 0.0 ~ 1.0")
	mute        = flag.Bool("mute", false, "关闭音效")
	seed        = flag.Int64("seed", 0, "随机种子，0 表示随机")
	verbose     = flag.Bool("verbose", false, "把详细日志写入 tower-tui.log")
)

func main() {
	flag.Parse()

	// 终端被 tcell 占用，日志只能写文件
	log.SetOutput(io.Discard)
	if *verbose {
		f, err := os.OpenFile("tower-tui.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "无法创建日志文件: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
		log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	}

	catalog := config.DefaultCatalog()
	if *catalogPath != "" {
		loaded, err := config.LoadCatalog(*catalogPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "数值表加载失败: %v\n", err)
			os.Exit(1)
		}
		catalog = loaded
	}

	store := openStore(*saveDir)
	highScores := state.NewHighScoreManager(store)
	highScores.SetProfiles(state.NewSaveManager(store))

	var sounds state.SoundPlayer
	if !*mute {
		sm := tui.NewSoundManager(*volume)
		if err := sm.Initialize(); err != nil {
			// 没有声卡时静音运行
			log.Printf("[TUI] Audio initialization failed: %v", err)
		} else {
			defer sm.Cleanup()
			sounds = sm
		}
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法创建终端屏幕: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "无法初始化终端屏幕: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	tui.NewGame(screen, catalog, highScores, sounds, rand.New(rand.NewSource(s))).Run()
}

// openStore 打开最高分和玩家档案的文件存储，失败时只在内存中记录
func openStore(dir string) state.Store {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Printf("[TUI] No home directory: %v (high scores kept in memory)", err)
			return nil
		}
		dir = filepath.Join(home, ".grazulex_tower")
	}
	store, err := state.NewFileStore(dir)
	if err != nil {
		log.Printf("[TUI] %v (high scores kept in memory)", err)
		return nil
	}
	return store
}
