// simulate 无界面运行整局游戏
//
// 每波开始时自动把金币花在覆盖路径最多的格子上，打印每波的摘要。
// 用于调整 data/catalog.yaml 的数值平衡。
//
// 用法：
//
//	go run ./cmd/simulate -waves 10 -seed 42
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/Grazulex/Tower/pkg/config"
	"github.com/Grazulex/Tower/pkg/event"
	"github.com/Grazulex/Tower/pkg/game/state"
	"github.com/Grazulex/Tower/pkg/session"
)

var (
	catalogPath = flag.String("catalog", "", "数值表路径（默认使用内置数值）")
	maxWaves    = flag.Int("waves", 20, "最多模拟多少波")
	seed        = flag.Int64("seed", 0, "随机种子，0 表示随机")
	noBuild     = flag.Bool("no-build", false, "不建造防御塔")
	verbose     = flag.Bool("verbose", false, "显示详细日志")
)

// waveSummary 一波结束时的统计
type waveSummary struct {
	Wave     int
	Units    int
	Built    int
	Kills    int
	Lives    int
	Currency int
	Bonus    int
}

func (w waveSummary) String() string {
	return fmt.Sprintf("wave %3d | units %3d | built %2d | kills %4d | lives %2d | currency %5d | bonus %4d",
		w.Wave, w.Units, w.Built, w.Kills, w.Lives, w.Currency, w.Bonus)
}

// simulation 一次无界面运行
type simulation struct {
	catalog  *config.Catalog
	session  *session.Session
	build    bool
	maxWaves int

	current   waveSummary
	summaries []waveSummary
	result    *event.GameOverEvent
}

func newSimulation(catalog *config.Catalog, rng *rand.Rand, build bool, maxWaves int) *simulation {
	sim := &simulation{catalog: catalog, build: build, maxWaves: maxWaves}

	d := event.NewDispatcher()
	d.SubscribeFunc(event.WaveStarted, func(e event.Event) {
		if data, ok := e.Data.(event.WaveEvent); ok {
			sim.current = waveSummary{Wave: data.Wave, Units: data.UnitCount}
		}
	})
	d.SubscribeFunc(event.WaveCompleted, func(e event.Event) {
		if data, ok := e.Data.(event.WaveEvent); ok {
			sim.finishWave(data.Bonus)
		}
	})
	d.SubscribeFunc(event.GameOver, func(e event.Event) {
		if data, ok := e.Data.(event.GameOverEvent); ok {
			result := data
			sim.result = &result
			sim.finishWave(0)
		}
	})

	sim.session = session.New(catalog,
		session.WithDispatcher(d),
		session.WithRand(rng),
		session.WithSleep(func(time.Duration) {}),
		session.WithHighScores(state.NewHighScoreManager(nil)),
	)
	return sim
}

// finishWave 记录当前波次的统计
// 金币不含尚未发放的过波奖励
func (sim *simulation) finishWave(bonus int) {
	eco := sim.session.Snapshot().Economy
	sim.current.Kills = eco.Kills
	sim.current.Lives = eco.Lives
	sim.current.Currency = eco.Currency
	sim.current.Bonus = bonus
	sim.summaries = append(sim.summaries, sim.current)
	log.Printf("[Simulate] %s", sim.current)
}

// run 推进模拟直到游戏结束或完成 maxWaves 波
func (sim *simulation) run() {
	nowMs := 0.0
	wave := 0
	for !sim.session.IsGameOver() && len(sim.summaries) < sim.maxWaves {
		if eco := sim.session.Snapshot().Economy; eco.Wave != wave {
			wave = eco.Wave
			if sim.build {
				sim.current.Built = autoPlace(sim.session, sim.catalog)
			}
		}
		nowMs += config.TickDurationMs
		sim.session.Tick(int64(nowMs))
	}
}

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	catalog := config.DefaultCatalog()
	if *catalogPath != "" {
		loaded, err := config.LoadCatalog(*catalogPath)
		if err != nil {
			log.SetOutput(os.Stderr)
			log.Fatalf("数值表加载失败: %v", err)
		}
		catalog = loaded
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	fmt.Printf("seed %d\n", s)

	sim := newSimulation(catalog, rand.New(rand.NewSource(s)), !*noBuild, *maxWaves)
	sim.run()

	for _, w := range sim.summaries {
		fmt.Println(w)
	}
	if sim.result != nil {
		fmt.Printf("game over at wave %d: score %d, %d kills\n", sim.result.Wave, sim.result.FinalScore, sim.result.Kills)
	} else {
		fmt.Printf("survived %d waves\n", len(sim.summaries))
	}
}
