package constraint

import (
	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
)

// 软违规之外的固定分值
const (
	workSpecificBonusUnit = 500  // 指定班次的工作请求：权重 * 500
	workGenericBonusUnit  = 100  // 泛化工作请求：权重 * 100
	rankBonusUnit         = 100  // 偏好排序：(长度-名次) * 100
	targetBonusUnit       = 50   // 目标差距：差距² * 50 * 优先级系数
	overTargetPenalty     = 50   // 超出目标后每班扣 50
	blockGrowBonus        = 200  // 连块未到理想长度时续排加分
	nightStreakBonus      = 5000 // 夜班串未达下限时续排夜班加分
)

// Score 对已通过硬检查（或待评估软违规）的候选打分
// 与检查器独立重测各规则条件，软违规按权重折算为罚分叠加
func Score(c *Candidate, ix *AssignmentIndex, sc *Context) int {
	score := 0

	// 软违规罚分
	for _, r := range Table() {
		if sc.Weights.IsHard(r.Name) {
			continue
		}
		if violated, _ := r.Check(c, ix, sc); violated {
			score += sc.Weights.Penalty(r.Name)
		}
	}

	// 工作请求加分
	if matches, specific := c.Request.WantsWork(c.Shift.ID); matches {
		if specific {
			score += sc.Weights.Get(model.RuleRequestWorkSpecific) * workSpecificBonusUnit
		} else {
			score += sc.Weights.Get(model.RuleRequestWork) * workGenericBonusUnit
		}
	}

	// 偏好排序加分
	if len(c.Settings.ShiftRanking) > 0 && !c.Settings.NoPreference {
		if idx := c.Settings.RankIndex(c.Shift); idx >= 0 {
			score += (len(c.Settings.ShiftRanking) - idx) * rankBonusUnit
		}
	}

	// 目标差距：平方放大让最落后的人优先，超目标后线性扣分
	needed := c.Settings.TargetShifts - c.Tally.TotalAssigned
	if needed > 0 {
		priority := c.User.CategoryPriority
		factor := 11 - priority
		if factor < 1 {
			factor = 1
		}
		score += needed * needed * targetBonusUnit * factor
	} else if needed < 0 {
		score += needed * overTargetPenalty
	}

	// 连块塑形
	if block := sameShiftRun(ix, c.User.ID, c.Date, c.Shift.ID); block > 0 {
		if block < c.Settings.PreferredBlockSize {
			score += blockGrowBonus
		} else {
			score += (sc.Weights.Get(model.RuleBlockSize) / 2) * -1000
		}
	}

	// 软性昼夜节律：夜转日超出硬性间隔但仍在3天窗口内
	if prev, gap := nearest(ix, c.User.ID, c.Date, -1); prev != nil && circadianSoftHit(gap) {
		if s := sc.Shift(prev.ShiftID); s != nil && s.IsNight && !c.Shift.IsNight {
			score += sc.Weights.Penalty(model.RuleCircadianSoft)
		}
	}

	// 夜班串下限：未凑够的串要么续排夜班，要么吃罚分
	if streak := nightRun(ix, sc, c.User.ID, c.Date); streak > 0 && streak < c.Settings.MinConsecutiveNights {
		if c.Shift.IsNight {
			score += nightStreakBonus
		} else {
			score += sc.Weights.Penalty(model.RuleMinConsecutiveNights)
		}
	}

	// 周末公平：按已累计周末班数递增的复利式罚分
	if model.IsWeekendShift(c.Date, c.Shift, sc.Site) {
		score += c.Tally.WeekendShifts * sc.Weights.Penalty(model.RuleWeekendFairness)
	}

	return score
}

// sameShiftRun 候选日期之前连续排同一班次的天数
func sameShiftRun(ix *AssignmentIndex, userID int64, date string, shiftID int64) int {
	n := 0
	for i := 1; i <= maxGapScan; i++ {
		a := ix.Get(userID, model.AddDays(date, -i))
		if a == nil || a.ShiftID != shiftID {
			break
		}
		n++
	}
	return n
}

// nightRun 候选日期之前连续夜班的天数
func nightRun(ix *AssignmentIndex, sc *Context, userID int64, date string) int {
	n := 0
	for i := 1; i <= maxGapScan; i++ {
		a := ix.Get(userID, model.AddDays(date, -i))
		if a == nil {
			break
		}
		s := sc.Shift(a.ShiftID)
		if s == nil || !s.IsNight {
			break
		}
		n++
	}
	return n
}
