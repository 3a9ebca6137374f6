package constraint

import (
	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
)

// runLength 从候选日期向一个方向走索引，统计连续有排班的天数
// step 为 +1 向未来、-1 向过去，不含候选日期本身
func runLength(ix *AssignmentIndex, userID int64, date string, step int) int {
	n := 0
	for i := 1; i <= maxGapScan; i++ {
		d := model.AddDays(date, i*step)
		if !ix.Has(userID, d) {
			break
		}
		n++
	}
	return n
}

// ruleMaxConsecutive 最长连班：双向扫描，把候选日期补进前后两段连班时
// 合并后的总长不得超过 max_consecutive。只向前看会漏掉"补洞"造成的超长连班
func ruleMaxConsecutive(c *Candidate, ix *AssignmentIndex, _ *Context) (bool, string) {
	back := runLength(ix, c.User.ID, c.Date, -1)
	fwd := runLength(ix, c.User.ID, c.Date, +1)
	if back+1+fwd > c.Settings.MaxConsecutive {
		return true, violationMaxConsecutive(c.Settings.MaxConsecutive)
	}
	return false, ""
}
