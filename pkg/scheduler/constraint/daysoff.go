package constraint

import (
	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
)

// gapBeyondRun 先越过候选日期一侧的连班段，再统计其后的空档天数
// bounded 表示空档另一端存在排班；无界空档不构成违规
func gapBeyondRun(ix *AssignmentIndex, userID int64, date string, step int) (gap int, bounded bool) {
	i := 1
	for ; i <= maxGapScan; i++ {
		if !ix.Has(userID, model.AddDays(date, i*step)) {
			break
		}
	}
	for ; i <= maxGapScan; i++ {
		if ix.Has(userID, model.AddDays(date, i*step)) {
			return gap, true
		}
		gap++
	}
	return gap, false
}

// ruleMinDaysOff 最短休假段：排入候选日期后，连班段两侧的休假空档
// 若被压缩到少于 min_days_off 天则拒绝。两个方向各查一次
func ruleMinDaysOff(c *Candidate, ix *AssignmentIndex, _ *Context) (bool, string) {
	minOff := c.Settings.MinDaysOff
	if minOff <= 0 {
		return false, ""
	}
	if gap, bounded := gapBeyondRun(ix, c.User.ID, c.Date, -1); bounded && gap < minOff {
		return true, "Min Days Off"
	}
	if gap, bounded := gapBeyondRun(ix, c.User.ID, c.Date, +1); bounded && gap < minOff {
		return true, "Min Days Off"
	}
	return false, ""
}
