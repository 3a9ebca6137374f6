// Package model 定义排班引擎的核心数据模型
package model

// 规则名称（规则权重表的键）
const (
	RuleRequestOff           = "request_off"
	RuleRequestAvoidShift    = "request_avoid_shift"
	RuleAvailability         = "availability"
	RuleTargetVariance       = "target_variance"
	RuleMaxConsecutive       = "max_consecutive"
	RuleCircadianStrict      = "circadian_strict"
	RuleMinRestHours         = "min_rest_hours"
	RuleMinDaysOff           = "min_days_off"
	RuleRequestWork          = "request_work"
	RuleRequestWorkSpecific  = "request_work_specific"
	RuleBlockSize            = "block_size"
	RuleCircadianSoft        = "circadian_soft"
	RuleMinConsecutiveNights = "min_consecutive_nights"
	RuleWeekendFairness      = "weekend_fairness"
)

// HardWeight 达到该权重的规则为绝对约束
const HardWeight = 10

// RuleWeights 规则权重表：10=硬约束，<10=软约束（折算为分数惩罚）
type RuleWeights map[string]int

// Get 读取规则权重，未配置时默认为硬约束
func (w RuleWeights) Get(rule string) int {
	if w == nil {
		return HardWeight
	}
	v, ok := w[rule]
	if !ok || v < 1 {
		return HardWeight
	}
	if v > HardWeight {
		return HardWeight
	}
	return v
}

// IsHard 检查规则是否为硬约束
func (w RuleWeights) IsHard(rule string) bool {
	return w.Get(rule) >= HardWeight
}

// Penalty 权重折算为分数惩罚（weight * -1000）
func (w RuleWeights) Penalty(rule string) int {
	return w.Get(rule) * -1000
}

// AllHard 返回所有规则均为硬约束的权重表（用于诊断真实拦截规则）
func AllHard() RuleWeights {
	return RuleWeights{}
}

// Clone 复制权重表
func (w RuleWeights) Clone() RuleWeights {
	c := make(RuleWeights, len(w))
	for k, v := range w {
		c[k] = v
	}
	return c
}
