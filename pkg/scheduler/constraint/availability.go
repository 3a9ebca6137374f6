package constraint

import (
	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
)

// ruleAvailability 可用性硬规则：按周几、班次+周几、班次三种粒度封锁
func ruleAvailability(c *Candidate, _ *AssignmentIndex, _ *Context) (bool, string) {
	weekday, err := model.WeekdayOf(c.Date)
	if err != nil {
		return false, ""
	}
	if c.Settings.BlockedDays[int(weekday)] {
		return true, "Availability (Day Blocked)"
	}
	if c.Settings.BlockedShiftDays[model.ShiftDayKey(c.Shift.ID, weekday)] {
		return true, "Availability (Shift Blocked on Day)"
	}
	// 旧格式：整个班次封锁
	if c.Settings.BlockedShifts[c.Shift.ID] {
		return true, "Availability (Shift Blocked)"
	}
	return false, ""
}

// ruleTargetCeiling 目标上限：已排数达到 target+variance 即拒绝
func ruleTargetCeiling(c *Candidate, _ *AssignmentIndex, _ *Context) (bool, string) {
	max := c.Settings.MaxShifts()
	if c.Tally.TotalAssigned >= max {
		return true, violationMaxShifts(max)
	}
	return false, ""
}
