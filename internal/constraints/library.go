// Package constraints 规则目录：对外描述权重表里每条规则的含义
package constraints

import (
	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
)

// RuleDefinition 规则定义
type RuleDefinition struct {
	Name          string `json:"name"`
	DisplayName   string `json:"display_name"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	DefaultWeight int    `json:"default_weight"` // 10=硬约束，<10=软约束罚分权重
	CheckerRule   bool   `json:"checker_rule"`   // 是否参与可行性检查（否则仅影响打分）
}

// LibraryResponse 规则目录响应
type LibraryResponse struct {
	Library []RuleDefinition `json:"library"`
}

// GetLibrary 获取完整的规则目录
// 权重 1-9 的规则折算为分数惩罚，10 为绝对不可违反
func GetLibrary() []RuleDefinition {
	return []RuleDefinition{
		{
			Name:          model.RuleRequestOff,
			DisplayName:   "休假请求",
			Category:      "请求",
			Description:   "当天的休假请求覆盖该班次时不得排入。无指定班次的请求封锁整天。",
			DefaultWeight: model.HardWeight,
			CheckerRule:   true,
		},
		{
			Name:          model.RuleRequestAvoidShift,
			DisplayName:   "回避班次请求",
			Category:      "请求",
			Description:   "用户请求避开的班次不得排入。",
			DefaultWeight: model.HardWeight,
			CheckerRule:   true,
		},
		{
			Name:          model.RuleAvailability,
			DisplayName:   "可用性",
			Category:      "可用性",
			Description:   "按周几、班次+周几组合或整个班次三种粒度的长期封锁。",
			DefaultWeight: model.HardWeight,
			CheckerRule:   true,
		},
		{
			Name:          model.RuleTargetVariance,
			DisplayName:   "目标班数上限",
			Category:      "工作量",
			Description:   "已排班数达到 目标班数+允许浮动 后不再排入。",
			DefaultWeight: model.HardWeight,
			CheckerRule:   true,
		},
		{
			Name:          model.RuleMaxConsecutive,
			DisplayName:   "最长连班",
			Category:      "休息保障",
			Description:   "双向合并候选日期前后的连班段，总长不得超过上限。",
			DefaultWeight: model.HardWeight,
			CheckerRule:   true,
		},
		{
			Name:          model.RuleCircadianStrict,
			DisplayName:   "夜转日间隔",
			Category:      "休息保障",
			Description:   "夜班结束后 1.1 天内不得接白班。",
			DefaultWeight: model.HardWeight,
			CheckerRule:   true,
		},
		{
			Name:          model.RuleMinRestHours,
			DisplayName:   "最短休息小时数",
			Category:      "休息保障",
			Description:   "相邻班次之间的实际休息小时数不得低于配置值（默认12小时）。",
			DefaultWeight: model.HardWeight,
			CheckerRule:   true,
		},
		{
			Name:          model.RuleMinDaysOff,
			DisplayName:   "最短休假段",
			Category:      "休息保障",
			Description:   "排入后不得把连班段两侧的休假空档压缩到少于配置天数。",
			DefaultWeight: model.HardWeight,
			CheckerRule:   true,
		},
		{
			Name:          model.RuleRequestWork,
			DisplayName:   "工作请求加分",
			Category:      "请求",
			Description:   "当天有工作请求的用户获得加分（权重×100）。",
			DefaultWeight: model.HardWeight,
		},
		{
			Name:          model.RuleRequestWorkSpecific,
			DisplayName:   "指定班次工作请求加分",
			Category:      "请求",
			Description:   "工作请求精确命中候选班次时获得更高加分（权重×500）。",
			DefaultWeight: model.HardWeight,
		},
		{
			Name:          model.RuleBlockSize,
			DisplayName:   "连块塑形",
			Category:      "偏好",
			Description:   "鼓励把同一班次排成理想长度的连块，超长后按半权重扣分。",
			DefaultWeight: model.HardWeight,
		},
		{
			Name:          model.RuleCircadianSoft,
			DisplayName:   "夜转日软间隔",
			Category:      "休息保障",
			Description:   "夜班后超出硬性间隔但3天内接白班时扣分。",
			DefaultWeight: model.HardWeight,
		},
		{
			Name:          model.RuleMinConsecutiveNights,
			DisplayName:   "夜班串下限",
			Category:      "偏好",
			Description:   "未凑够下限的夜班串鼓励继续排夜班，提前转白班扣分。",
			DefaultWeight: model.HardWeight,
		},
		{
			Name:          model.RuleWeekendFairness,
			DisplayName:   "周末公平",
			Category:      "公平",
			Description:   "按已累计周末班数递增扣分，把周末负担摊给整个名册。",
			DefaultWeight: model.HardWeight,
		},
	}
}
