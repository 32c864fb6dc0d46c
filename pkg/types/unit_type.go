package types

// UnitCategory 定义敌方单位的类型
type UnitCategory int

const (
	// UnitUnknown 未知单位类型
	UnitUnknown UnitCategory = iota
	// UnitStandard 普通单位
	UnitStandard
	// UnitReinforced 重装单位：血厚、慢、赏金高
	UnitReinforced
	// UnitLight 轻装单位：血薄、快
	UnitLight
	// UnitFortified 堡垒单位：基础血量高、慢
	UnitFortified
)

// AllUnitCategories 列出所有单位类型（顺序即配置表顺序）
var AllUnitCategories = []UnitCategory{UnitStandard, UnitReinforced, UnitLight, UnitFortified}

// String 返回单位类型的配置键名
func (u UnitCategory) String() string {
	switch u {
	case UnitStandard:
		return "standard"
	case UnitReinforced:
		return "reinforced"
	case UnitLight:
		return "light"
	case UnitFortified:
		return "fortified"
	default:
		return "unknown"
	}
}

// UnitCategoryFromString 将配置键名转换为 UnitCategory
func UnitCategoryFromString(s string) UnitCategory {
	for _, c := range AllUnitCategories {
		if c.String() == s {
			return c
		}
	}
	return UnitUnknown
}

// UnitState 单位的移动状态机
//
//	UnitAdvancing → UnitReachedEnd（终态）
//	UnitAdvancing → UnitDefeated（终态）
type UnitState int

const (
	// UnitAdvancing 正在沿路径前进
	UnitAdvancing UnitState = iota
	// UnitReachedEnd 到达路径终点
	UnitReachedEnd
	// UnitDefeated 被击败
	UnitDefeated
)

// IsTerminal 是否为终态
func (s UnitState) IsTerminal() bool {
	return s == UnitReachedEnd || s == UnitDefeated
}

func (s UnitState) String() string {
	switch s {
	case UnitAdvancing:
		return "advancing"
	case UnitReachedEnd:
		return "reached_end"
	case UnitDefeated:
		return "defeated"
	default:
		return "unknown"
	}
}
