package constraint

import (
	"fmt"

	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
)

// 双向扫描的安全步数上限，防止索引异常时死循环
const maxGapScan = 100

// Candidate 候选分配：把某用户排进某天的某个班次
type Candidate struct {
	User     *model.User
	Shift    *model.Shift
	Date     string
	Settings *model.EffectiveSettings
	Request  *model.Request
	Tally    *Tally
}

// Tally 求解过程中维护的用户累计计数
type Tally struct {
	TotalAssigned int
	WeekendShifts int
	Hits          int
}

// Violation 一次规则违反
type Violation struct {
	Rule   string `json:"rule"`
	Reason string `json:"reason"`
	Hard   bool   `json:"hard"`
}

// RuleFunc 规则体：检查器与打分器共用同一份实现
// 返回是否违反及人类可读原因
type RuleFunc func(c *Candidate, ix *AssignmentIndex, sc *Context) (violated bool, reason string)

// Rule 具名规则，Name 即权重表的键
type Rule struct {
	Name  string
	Check RuleFunc
}

// 带参数的违规原因文案，检查器与流式检查共用
func violationMaxShifts(max int) string {
	return fmt.Sprintf("Max Shifts Exceeded (%d)", max)
}

func violationMaxConsecutive(max int) string {
	return fmt.Sprintf("Max Consecutive Shifts (%d)", max)
}

// Inviolable 检查规则是否属于强制模式也不可牺牲的类别
// 请求、可用性与目标上限即使被迫强排也不允许越过；
// 连班、休息类规则可以在无人可用时被牺牲
func Inviolable(rule string) bool {
	switch rule {
	case model.RuleRequestOff, model.RuleRequestAvoidShift, model.RuleAvailability, model.RuleTargetVariance:
		return true
	}
	return false
}

// Table 返回按检查顺序排列的规则表
// 顺序即短路顺序：请求 → 可用性 → 目标上限 → 连班 → 休息 → 休假间隔
func Table() []Rule {
	return []Rule{
		{Name: model.RuleRequestOff, Check: ruleRequestOff},
		{Name: model.RuleRequestAvoidShift, Check: ruleRequestAvoid},
		{Name: model.RuleAvailability, Check: ruleAvailability},
		{Name: model.RuleTargetVariance, Check: ruleTargetCeiling},
		{Name: model.RuleMaxConsecutive, Check: ruleMaxConsecutive},
		{Name: model.RuleCircadianStrict, Check: ruleCircadianStrict},
		{Name: model.RuleMinRestHours, Check: ruleMinRestHours},
		{Name: model.RuleMinDaysOff, Check: ruleMinDaysOff},
	}
}
