package constraint

// Check 检查候选分配，遇到第一条硬规则违反即短路返回
// 软权重规则在这里放行，由打分器折算成罚分
func Check(c *Candidate, ix *AssignmentIndex, sc *Context) (bool, *Violation) {
	for _, r := range Table() {
		violated, reason := r.Check(c, ix, sc)
		if !violated {
			continue
		}
		if sc.Weights.IsHard(r.Name) {
			return false, &Violation{Rule: r.Name, Reason: reason, Hard: true}
		}
	}
	return true, nil
}

// Violations 评估全部规则，按配置权重标注软硬，不短路
// 供强制模式挑选牺牲者与冲突报告使用
func Violations(c *Candidate, ix *AssignmentIndex, sc *Context) []Violation {
	var out []Violation
	for _, r := range Table() {
		violated, reason := r.Check(c, ix, sc)
		if violated {
			out = append(out, Violation{Rule: r.Name, Reason: reason, Hard: sc.Weights.IsHard(r.Name)})
		}
	}
	return out
}

// FirstFailure 无视权重配置，返回第一条失败规则的原因
// 空槽诊断用：即使规则被调成软权重，也要能解释为什么没人可排
func FirstFailure(c *Candidate, ix *AssignmentIndex, sc *Context) string {
	for _, r := range Table() {
		if violated, reason := r.Check(c, ix, sc); violated {
			return reason
		}
	}
	return ""
}
