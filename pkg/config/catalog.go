package config

import (
	"fmt"
	"os"

	"github.com/Grazulex/Tower/pkg/embedded"
	"github.com/Grazulex/Tower/pkg/types"
	"gopkg.in/yaml.v3"
)

// DefaultCatalogPath 内嵌配置目录中的默认数值表路径
const DefaultCatalogPath = "data/catalog.yaml"

// BoardConfig 棋盘几何参数（像素）
type BoardConfig struct {
	CellSize int `yaml:"cellSize"` // 每格边长
	Width    int `yaml:"width"`    // 棋盘宽度
	Height   int `yaml:"height"`   // 棋盘高度
}

// Cols 返回网格列数
func (b BoardConfig) Cols() int {
	if b.CellSize <= 0 {
		return 0
	}
	return b.Width / b.CellSize
}

// Rows 返回网格行数
func (b BoardConfig) Rows() int {
	if b.CellSize <= 0 {
		return 0
	}
	return b.Height / b.CellSize
}

// EconomyConfig 经济系统初始值
type EconomyConfig struct {
	StartingCurrency      int `yaml:"startingCurrency"`      // 初始金币
	StartingLives         int `yaml:"startingLives"`         // 初始生命
	WaveClearBonusPerLife int `yaml:"waveClearBonusPerLife"` // 过波奖励：每条剩余生命的金币
}

// TowerStats 单种防御塔的数值行
type TowerStats struct {
	GridCode         int     `yaml:"gridCode"`         // 占用表中的类型编码（非0）
	Cost             int     `yaml:"cost"`             // 造价
	Range            float64 `yaml:"range"`            // 射程半径（像素）
	AttacksPerSecond float64 `yaml:"attacksPerSecond"` // 每秒攻击次数
	Damage           int     `yaml:"damage"`           // 单次伤害
}

// AttackIntervalMs 返回两次攻击之间的最小间隔（毫秒）
func (t TowerStats) AttackIntervalMs() float64 {
	if t.AttacksPerSecond <= 0 {
		return 0
	}
	return 1000.0 / t.AttacksPerSecond
}

// UnitStats 单种敌方单位的数值行（相对于共享基线）
type UnitStats struct {
	Health           int     `yaml:"health"`           // 最大生命值
	SpeedMultiplier  float64 `yaml:"speedMultiplier"`  // 速度倍率（乘以 baseSpeed）
	Reward           int     `yaml:"reward"`           // 击杀赏金
	RadiusMultiplier float64 `yaml:"radiusMultiplier"` // 体型倍率（乘以 baseRadius）
	Enabled          *bool   `yaml:"enabled"`          // 是否参与随机生成，缺省为 true
}

// IsEnabled 是否参与波次随机生成
func (u UnitStats) IsEnabled() bool {
	return u.Enabled == nil || *u.Enabled
}

// UnitsConfig 敌方单位共享基线 + 各类型数值表
type UnitsConfig struct {
	BaseSpeed   float64              `yaml:"baseSpeed"`   // 基础速度（像素/tick）
	BaseRadius  float64              `yaml:"baseRadius"`  // 基础半径（像素）
	SpeedJitter float64              `yaml:"speedJitter"` // 单体速度随机扰动比例（0 表示关闭）
	Categories  map[string]UnitStats `yaml:"categories"`  // 类型名 -> 数值行
}

// WaveScaling 波次规模公式参数
type WaveScaling struct {
	BaseCount   int `yaml:"baseCount"`   // 第1波最少单位数
	MaxCount    int `yaml:"maxCount"`    // 第1波最多单位数
	CountGrowth int `yaml:"countGrowth"` // 每波单位数增量
	BaseDelayMs int `yaml:"baseDelayMs"` // 第1波最大生成间隔
	MinDelayMs  int `yaml:"minDelayMs"`  // 生成间隔下限
	DelayStepMs int `yaml:"delayStepMs"` // 每波最大间隔递减量
	PauseMs     int `yaml:"pauseMs"`     // 波次之间的停顿
}

// CountRange 返回指定波次（从1开始）的单位数量区间 [min, max]
func (w WaveScaling) CountRange(wave int) (int, int) {
	if wave < 1 {
		wave = 1
	}
	growth := (wave - 1) * w.CountGrowth
	minCount := w.BaseCount + growth
	maxCount := w.MaxCount + growth
	if maxCount < minCount {
		maxCount = minCount
	}
	return minCount, maxCount
}

// DelayRange 返回指定波次的生成间隔区间 [min, max]（毫秒）
// 上限随波次递减，但不会低于 MinDelayMs，MinDelayMs 本身也不会低于 1
func (w WaveScaling) DelayRange(wave int) (int, int) {
	if wave < 1 {
		wave = 1
	}
	floor := w.MinDelayMs
	if floor < 1 {
		floor = 1
	}
	maxDelay := w.BaseDelayMs - (wave-1)*w.DelayStepMs
	if maxDelay < floor {
		maxDelay = floor
	}
	return floor, maxDelay
}

// EffectsConfig 表现层参数（核心只透传，不参与规则计算）
type EffectsConfig struct {
	DefeatParticles     int `yaml:"defeatParticles"`     // 单位被击败时的粒子数
	ParticleLifetimeMin int `yaml:"particleLifetimeMin"` // 粒子最短寿命（tick）
	ParticleLifetimeMax int `yaml:"particleLifetimeMax"` // 粒子最长寿命（tick）
	AttackFlashMs       int `yaml:"attackFlashMs"`       // 攻击光束显示时长
	RangeHintWaves      int `yaml:"rangeHintWaves"`      // 前几波显示射程圈
}

// Catalog 游戏数值总表
// 启动时加载一次，运行期间只读
type Catalog struct {
	Board   BoardConfig           `yaml:"board"`
	Economy EconomyConfig         `yaml:"economy"`
	Towers  map[string]TowerStats `yaml:"towers"`
	Units   UnitsConfig           `yaml:"units"`
	Waves   WaveScaling           `yaml:"waves"`
	Effects EffectsConfig         `yaml:"effects"`
}

// LoadCatalog 从磁盘上的 YAML 文件加载数值表
// 参数：
//
//	path - 配置文件路径（相对或绝对路径）
//
// 返回：
//
//	*Catalog - 解析并校验后的配置
//	error - 文件读取、解析或校验失败
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return ParseCatalog(data, path)
}

// LoadEmbeddedCatalog 从内嵌资源加载数值表（路径必须以 "data/" 开头）
func LoadEmbeddedCatalog(path string) (*Catalog, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded catalog %s: %w", path, err)
	}
	return ParseCatalog(data, path)
}

// ParseCatalog 解析 YAML 数据并校验
// source 仅用于错误信息
func ParseCatalog(data []byte, source string) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML from %s: %w", source, err)
	}

	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog in %s: %w", source, err)
	}

	return &catalog, nil
}

// Validate 验证数值表的完整性和合法性
func (c *Catalog) Validate() error {
	if c.Board.CellSize <= 0 {
		return fmt.Errorf("board.cellSize must be positive, got %d", c.Board.CellSize)
	}
	if c.Board.Cols() < 1 || c.Board.Rows() < 1 {
		return fmt.Errorf("board %dx%d is smaller than one %d px cell", c.Board.Width, c.Board.Height, c.Board.CellSize)
	}

	if c.Economy.StartingLives < 1 {
		return fmt.Errorf("economy.startingLives must be at least 1, got %d", c.Economy.StartingLives)
	}
	if c.Economy.StartingCurrency < 0 {
		return fmt.Errorf("economy.startingCurrency cannot be negative, got %d", c.Economy.StartingCurrency)
	}
	if c.Economy.WaveClearBonusPerLife < 0 {
		return fmt.Errorf("economy.waveClearBonusPerLife cannot be negative, got %d", c.Economy.WaveClearBonusPerLife)
	}

	seenCodes := make(map[int]string)
	for _, category := range types.AllTowerCategories {
		name := category.String()
		stats, ok := c.Towers[name]
		if !ok {
			return fmt.Errorf("tower %s: missing from catalog", name)
		}
		if stats.GridCode <= 0 {
			return fmt.Errorf("tower %s: gridCode must be positive, got %d", name, stats.GridCode)
		}
		if other, dup := seenCodes[stats.GridCode]; dup {
			return fmt.Errorf("tower %s: gridCode %d already used by %s", name, stats.GridCode, other)
		}
		seenCodes[stats.GridCode] = name
		if stats.Cost < 0 {
			return fmt.Errorf("tower %s: cost cannot be negative, got %d", name, stats.Cost)
		}
		if stats.Range <= 0 {
			return fmt.Errorf("tower %s: range must be positive, got %g", name, stats.Range)
		}
		if stats.AttacksPerSecond <= 0 {
			return fmt.Errorf("tower %s: attacksPerSecond must be positive, got %g", name, stats.AttacksPerSecond)
		}
		if stats.Damage < 0 {
			return fmt.Errorf("tower %s: damage cannot be negative, got %d", name, stats.Damage)
		}
	}

	// 速度为 0 的单位永远走不到终点，这一波也就不会结束
	if c.Units.BaseSpeed <= 0 {
		return fmt.Errorf("units.baseSpeed must be positive, got %g", c.Units.BaseSpeed)
	}
	if c.Units.SpeedJitter < 0 || c.Units.SpeedJitter >= 1 {
		return fmt.Errorf("units.speedJitter must be in [0, 1), got %g", c.Units.SpeedJitter)
	}
	enabled := 0
	for _, category := range types.AllUnitCategories {
		name := category.String()
		stats, ok := c.Units.Categories[name]
		if !ok {
			return fmt.Errorf("unit %s: missing from catalog", name)
		}
		if stats.Health < 1 {
			return fmt.Errorf("unit %s: health must be at least 1, got %d", name, stats.Health)
		}
		if stats.SpeedMultiplier <= 0 {
			return fmt.Errorf("unit %s: speedMultiplier must be positive, got %g", name, stats.SpeedMultiplier)
		}
		if stats.Reward < 0 {
			return fmt.Errorf("unit %s: reward cannot be negative, got %d", name, stats.Reward)
		}
		if stats.IsEnabled() {
			enabled++
		}
	}
	if enabled == 0 {
		return fmt.Errorf("at least one unit category must be enabled")
	}

	if c.Waves.BaseCount < 1 {
		return fmt.Errorf("waves.baseCount must be at least 1, got %d", c.Waves.BaseCount)
	}
	if c.Waves.MaxCount < c.Waves.BaseCount {
		return fmt.Errorf("waves.maxCount (%d) must be >= baseCount (%d)", c.Waves.MaxCount, c.Waves.BaseCount)
	}
	if c.Waves.CountGrowth < 0 {
		return fmt.Errorf("waves.countGrowth cannot be negative, got %d", c.Waves.CountGrowth)
	}
	if c.Waves.MinDelayMs < 1 {
		return fmt.Errorf("waves.minDelayMs must be at least 1, got %d", c.Waves.MinDelayMs)
	}
	if c.Waves.BaseDelayMs < c.Waves.MinDelayMs {
		return fmt.Errorf("waves.baseDelayMs (%d) must be >= minDelayMs (%d)", c.Waves.BaseDelayMs, c.Waves.MinDelayMs)
	}
	if c.Waves.DelayStepMs < 0 {
		return fmt.Errorf("waves.delayStepMs cannot be negative, got %d", c.Waves.DelayStepMs)
	}
	if c.Waves.PauseMs < 0 {
		return fmt.Errorf("waves.pauseMs cannot be negative, got %d", c.Waves.PauseMs)
	}

	if c.Effects.ParticleLifetimeMax < c.Effects.ParticleLifetimeMin {
		return fmt.Errorf("effects.particleLifetimeMax (%d) must be >= particleLifetimeMin (%d)",
			c.Effects.ParticleLifetimeMax, c.Effects.ParticleLifetimeMin)
	}

	return nil
}

// GetTowerStats 获取指定防御塔类型的数值行
func (c *Catalog) GetTowerStats(category types.TowerCategory) (TowerStats, bool) {
	stats, ok := c.Towers[category.String()]
	return stats, ok
}

// GetUnitStats 获取指定单位类型的数值行
func (c *Catalog) GetUnitStats(category types.UnitCategory) (UnitStats, bool) {
	stats, ok := c.Units.Categories[category.String()]
	return stats, ok
}

// EnabledUnitCategories 返回参与随机生成的单位类型（固定顺序）
func (c *Catalog) EnabledUnitCategories() []types.UnitCategory {
	result := make([]types.UnitCategory, 0, len(types.AllUnitCategories))
	for _, category := range types.AllUnitCategories {
		if stats, ok := c.GetUnitStats(category); ok && stats.IsEnabled() {
			result = append(result, category)
		}
	}
	return result
}

// TowerCategoryForCode 根据占用表编码反查防御塔类型
func (c *Catalog) TowerCategoryForCode(code int) types.TowerCategory {
	for _, category := range types.AllTowerCategories {
		if stats, ok := c.GetTowerStats(category); ok && stats.GridCode == code {
			return category
		}
	}
	return types.TowerUnknown
}

// DefaultCatalog 返回内置默认数值表
// 与 data/catalog.yaml 保持一致，内嵌资源不可用时作为兜底
func DefaultCatalog() *Catalog {
	return &Catalog{
		Board: BoardConfig{CellSize: 20, Width: 800, Height: 400},
		Economy: EconomyConfig{
			StartingCurrency:      300,
			StartingLives:         20,
			WaveClearBonusPerLife: 10,
		},
		Towers: map[string]TowerStats{
			types.TowerBalanced.String(): {GridCode: 1, Cost: 100, Range: 50, AttacksPerSecond: 1.0, Damage: 25},
			types.TowerRapid.String():    {GridCode: 2, Cost: 150, Range: 45, AttacksPerSecond: 2.0, Damage: 15},
			types.TowerHeavy.String():    {GridCode: 3, Cost: 175, Range: 90, AttacksPerSecond: 0.5, Damage: 75},
		},
		Units: UnitsConfig{
			BaseSpeed:   2,
			BaseRadius:  10,
			SpeedJitter: 0,
			Categories: map[string]UnitStats{
				types.UnitStandard.String():   {Health: 150, SpeedMultiplier: 1.0, Reward: 25, RadiusMultiplier: 1.0},
				types.UnitReinforced.String(): {Health: 300, SpeedMultiplier: 0.4, Reward: 50, RadiusMultiplier: 1.2},
				types.UnitLight.String():      {Health: 75, SpeedMultiplier: 2.5, Reward: 35, RadiusMultiplier: 0.8},
				types.UnitFortified.String():  {Health: 250, SpeedMultiplier: 0.6, Reward: 40, RadiusMultiplier: 1.1},
			},
		},
		Waves: WaveScaling{
			BaseCount:   25,
			MaxCount:    50,
			CountGrowth: 5,
			BaseDelayMs: 2000,
			MinDelayMs:  500,
			DelayStepMs: 100,
			PauseMs:     3000,
		},
		Effects: EffectsConfig{
			DefeatParticles:     8,
			ParticleLifetimeMin: 25,
			ParticleLifetimeMax: 35,
			AttackFlashMs:       500,
			RangeHintWaves:      2,
		},
	}
}
