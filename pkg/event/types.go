package event

import (
	"github.com/Grazulex/Tower/pkg/ecs"
	"github.com/Grazulex/Tower/pkg/types"
)

const (
	UnitSpawned        Type = "UnitSpawned"        // 单位进入地图
	UnitDefeated       Type = "UnitDefeated"       // 单位被击败
	UnitReachedEnd     Type = "UnitReachedEnd"     // 单位到达终点
	AttackOccurred     Type = "AttackOccurred"     // 防御塔完成一次攻击
	WaveStarted        Type = "WaveStarted"        // 新波次开始
	WaveCompleted      Type = "WaveCompleted"      // 当前波次清空
	GameOver           Type = "GameOver"           // 生命耗尽
	EmplacementPlaced  Type = "EmplacementPlaced"  // 建造防御塔
	EmplacementRemoved Type = "EmplacementRemoved" // 拆除防御塔
)

// UnitEvent UnitSpawned / UnitDefeated / UnitReachedEnd 的负载
type UnitEvent struct {
	UnitID   ecs.EntityID
	Category types.UnitCategory
	X, Y     float64
	Reward   int // 仅 UnitDefeated 有意义
}

// AttackEvent AttackOccurred 的负载
type AttackEvent struct {
	TowerID  ecs.EntityID
	TargetID ecs.EntityID
	Category types.TowerCategory
	Damage   int
	FromX    float64
	FromY    float64
	ToX      float64
	ToY      float64
	AtMs     int64
}

// WaveEvent WaveStarted / WaveCompleted 的负载
type WaveEvent struct {
	Wave       int
	UnitCount  int // WaveStarted：本波单位总数
	Bonus      int // WaveCompleted：过波奖励
	IntervalMs int64
}

// GameOverEvent GameOver 的负载
type GameOverEvent struct {
	Wave         int
	Kills        int
	FinalScore   int
	NewHighScore bool
	Player       string // 当前玩家，游客为空
}

// EmplacementEvent EmplacementPlaced / EmplacementRemoved 的负载
type EmplacementEvent struct {
	TowerID  ecs.EntityID
	Cell     types.Cell
	Category types.TowerCategory
	Cost     int
}
