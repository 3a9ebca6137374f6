package constraint

import (
	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
)

// 夜转日的严格间隔上限（天），超过才允许接白班
const circadianStrictMaxGap = 1.1

// 软性昼夜节律的观察窗口（天）
const circadianSoftMaxGap = 3.0

// nightToDayBlocked 夜班后 gap 天内不得接白班
func nightToDayBlocked(gap float64) bool {
	return gap <= circadianStrictMaxGap
}

// circadianSoftHit 超出硬性间隔但仍在观察窗口内，计软惩罚
func circadianSoftHit(gap float64) bool {
	return gap > circadianStrictMaxGap && gap <= circadianSoftMaxGap
}

// restHoursBetween 两个班次之间的实际休息小时数
// 跨夜班次的结束时间落在次日，需补一天
func restHoursBetween(fromDate string, from *model.Shift, toDate string, to *model.Shift) float64 {
	endMin, ok1 := model.ParseClock(from.EndTime)
	startMin, ok2 := model.ParseClock(from.StartTime)
	nextStartMin, ok3 := model.ParseClock(to.StartTime)
	if !ok1 || !ok2 || !ok3 {
		// 时间字段缺失或损坏时放行，不因脏数据卡死排班
		return 1e9
	}
	if endMin <= startMin {
		endMin += 24 * 60
	}
	gapMin := model.DaysBetween(fromDate, toDate)*24*60 + float64(nextStartMin) - float64(endMin)
	return gapMin / 60
}

// nearest 沿 step 方向找最近的已有排班，返回其记录与间隔天数
func nearest(ix *AssignmentIndex, userID int64, date string, step int) (*model.Assignment, float64) {
	for i := 1; i <= maxGapScan; i++ {
		d := model.AddDays(date, i*step)
		if a := ix.Get(userID, d); a != nil {
			return a, float64(i)
		}
	}
	return nil, 0
}

// ruleCircadianStrict 严格昼夜节律：夜班后 1.1 天内不得接白班
// 向前看候选自身是夜班、次日已有白班的情况
func ruleCircadianStrict(c *Candidate, ix *AssignmentIndex, sc *Context) (bool, string) {
	if prev, gap := nearest(ix, c.User.ID, c.Date, -1); prev != nil && nightToDayBlocked(gap) {
		if s := sc.Shift(prev.ShiftID); s != nil && s.IsNight && !c.Shift.IsNight {
			return true, "Inadequate Rest (Night -> Day)"
		}
	}
	if next, gap := nearest(ix, c.User.ID, c.Date, +1); next != nil && nightToDayBlocked(gap) {
		if s := sc.Shift(next.ShiftID); s != nil && c.Shift.IsNight && !s.IsNight {
			return true, "Inadequate Rest (Night -> Day)"
		}
	}
	return false, ""
}

// ruleMinRestHours 班次间最短休息小时数，双向各查一次
func ruleMinRestHours(c *Candidate, ix *AssignmentIndex, sc *Context) (bool, string) {
	min := float64(c.Settings.MinRestHours)
	if prev, gap := nearest(ix, c.User.ID, c.Date, -1); prev != nil && gap <= circadianSoftMaxGap {
		if s := sc.Shift(prev.ShiftID); s != nil {
			if restHoursBetween(model.AddDays(c.Date, int(-gap)), s, c.Date, c.Shift) < min {
				return true, "Insufficient Rest Hours"
			}
		}
	}
	if next, gap := nearest(ix, c.User.ID, c.Date, +1); next != nil && gap <= circadianSoftMaxGap {
		if s := sc.Shift(next.ShiftID); s != nil {
			if restHoursBetween(c.Date, c.Shift, model.AddDays(c.Date, int(gap)), s) < min {
				return true, "Insufficient Rest Hours"
			}
		}
	}
	return false, ""
}
