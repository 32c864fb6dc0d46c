// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// TowerCategory 定义防御塔的类型
// 各类型共享同一套索敌/攻击算法，差异只体现在配置表中的数值行
type TowerCategory int

const (
	// TowerUnknown 未知防御塔类型
	TowerUnknown TowerCategory = iota
	// TowerBalanced 均衡塔：射程、攻速、伤害都居中
	TowerBalanced
	// TowerRapid 速射塔：中短射程、极快攻速、低伤害（对付成群的小怪）
	TowerRapid
	// TowerHeavy 重炮塔：远射程、慢攻速、高伤害（对付肉盾）
	TowerHeavy
)

// AllTowerCategories 按商店展示顺序列出所有可购买的防御塔类型
var AllTowerCategories = []TowerCategory{TowerBalanced, TowerRapid, TowerHeavy}

// String 返回防御塔类型的配置键名
func (t TowerCategory) String() string {
	switch t {
	case TowerBalanced:
		return "balanced"
	case TowerRapid:
		return "rapid"
	case TowerHeavy:
		return "heavy"
	default:
		return "unknown"
	}
}

// TowerCategoryFromString 将配置键名转换为 TowerCategory
// 未知名称返回 TowerUnknown
func TowerCategoryFromString(s string) TowerCategory {
	for _, c := range AllTowerCategories {
		if c.String() == s {
			return c
		}
	}
	return TowerUnknown
}
