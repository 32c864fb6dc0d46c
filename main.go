package main

import (
	"flag"
	"log"

	"github.com/Grazulex/Tower/pkg/app"
	"github.com/Grazulex/Tower/pkg/config"
	"github.com/Grazulex/Tower/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose     = flag.Bool("verbose", false, "显示详细日志")
	catalogPath = flag.String("catalog", "", "数值表路径（默认使用内嵌的 data/catalog.yaml）")
	saveDir     = flag.String("save-dir", "", "最高分保存目录（默认使用系统数据目录）")
	seed        = flag.Int64("seed", 0, "随机种子，0 表示随机")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:     *verbose,
		CatalogPath: *catalogPath,
		SaveDir:     *saveDir,
		Seed:        *seed,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	width, height := gameApp.WindowSize()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(gameApp.IsFullscreen())
	ebiten.SetTPS(config.TicksPerSecond)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
