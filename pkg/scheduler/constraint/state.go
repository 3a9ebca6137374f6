package constraint

import (
	"math"
	"sort"

	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
)

// 无历史记录时的初始休假天数，视为休息充分
const freshDaysOff = 99

// RollingState 单用户的滚动状态
// 按日期顺序前向扫描时维护，是索引式双向检查的简化对应物，
// 供验证器的流式重演使用
type RollingState struct {
	Consecutive       int
	ConsecutiveNights int
	DaysOff           int
	LastShift         *model.Shift
	LastDate          string
	TotalAssigned     int
	WeekendShifts     int
	Hits              int
	CurrentBlockShift int64 // 0 表示无进行中的连块
	CurrentBlockSize  int
}

// SeedState 用回看窗口的历史排班接续滚动状态
// 无历史时按"休息充分"初始化；最后一班距起始日不超过1天时
// 连班与连块接续计算，否则按间隔折算休假天数
func SeedState(userID int64, prev []*model.Assignment, startDate string, sc *Context) *RollingState {
	var mine []*model.Assignment
	for _, a := range prev {
		if a.UserID == userID {
			mine = append(mine, a)
		}
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].Date < mine[j].Date })

	st := &RollingState{DaysOff: freshDaysOff}
	if len(mine) == 0 {
		return st
	}

	last := mine[len(mine)-1]
	st.LastShift = sc.Shift(last.ShiftID)
	st.LastDate = last.Date

	gap := model.DaysBetween(last.Date, startDate)
	if gap <= 1 {
		st.DaysOff = 0
		st.Consecutive = 1
		for i := len(mine) - 2; i >= 0; i-- {
			if model.DaysBetween(mine[i].Date, mine[i+1].Date) == 1 {
				st.Consecutive++
			} else {
				break
			}
		}
		if st.LastShift != nil && st.LastShift.IsNight {
			st.ConsecutiveNights = 1
			for i := len(mine) - 2; i >= 0; i-- {
				s := sc.Shift(mine[i].ShiftID)
				if s != nil && s.IsNight && model.DaysBetween(mine[i].Date, mine[i+1].Date) == 1 {
					st.ConsecutiveNights++
				} else {
					break
				}
			}
		}
	} else {
		st.DaysOff = int(math.Floor(gap)) - 1
		st.Consecutive = 0
	}

	if st.LastShift != nil {
		st.CurrentBlockShift = st.LastShift.ID
		st.CurrentBlockSize = st.Consecutive
	}
	return st
}

// Apply 登记一次实际上班，推进滚动状态
func (st *RollingState) Apply(date string, shift *model.Shift, sc *Context) {
	st.TotalAssigned++
	if model.IsWeekendShift(date, shift, sc.Site) {
		st.WeekendShifts++
	}

	if st.DaysOff == 0 {
		st.Consecutive++
	} else {
		st.Consecutive = 1
	}
	if shift.IsNight {
		if st.DaysOff == 0 && st.LastShift != nil && st.LastShift.IsNight {
			st.ConsecutiveNights++
		} else {
			st.ConsecutiveNights = 1
		}
	} else {
		st.ConsecutiveNights = 0
	}
	st.DaysOff = 0

	if st.CurrentBlockShift == shift.ID {
		st.CurrentBlockSize++
	} else {
		st.CurrentBlockShift = shift.ID
		st.CurrentBlockSize = 1
	}
	st.LastShift = shift
	st.LastDate = date
}

// Rest 登记一天未上班
func (st *RollingState) Rest() {
	st.Consecutive = 0
	st.ConsecutiveNights = 0
	st.DaysOff++
	st.CurrentBlockShift = 0
	st.CurrentBlockSize = 0
}

// StateViolations 基于滚动状态的前向流式检查
// 检测全部规则违反（不看权重短路），软硬标签按配置权重标注，
// 验证器据此先全量检出、再重分类
func StateViolations(st *RollingState, shift *model.Shift, date string, settings *model.EffectiveSettings, req *model.Request, sc *Context) []Violation {
	var out []Violation
	add := func(rule, reason string) {
		out = append(out, Violation{Rule: rule, Reason: reason, Hard: sc.Weights.IsHard(rule)})
	}

	if req.BlocksShift(shift.ID) {
		add(model.RuleRequestOff, "Requested Off")
	}
	if req.AvoidsShift(shift.ID) {
		add(model.RuleRequestAvoidShift, "Requested Off")
	}

	if weekday, err := model.WeekdayOf(date); err == nil {
		if settings.BlockedDays[int(weekday)] {
			add(model.RuleAvailability, "Availability (Day Blocked)")
		} else if settings.BlockedShiftDays[model.ShiftDayKey(shift.ID, weekday)] {
			add(model.RuleAvailability, "Availability (Shift Blocked on Day)")
		} else if settings.BlockedShifts[shift.ID] {
			add(model.RuleAvailability, "Availability (Shift Blocked)")
		}
	}

	if st.TotalAssigned >= settings.MaxShifts() {
		add(model.RuleTargetVariance, violationMaxShifts(settings.MaxShifts()))
	}
	if st.Consecutive+1 > settings.MaxConsecutive {
		add(model.RuleMaxConsecutive, violationMaxConsecutive(settings.MaxConsecutive))
	}

	if st.LastShift != nil && st.LastDate != "" {
		gap := model.DaysBetween(st.LastDate, date)
		if st.LastShift.IsNight && !shift.IsNight && nightToDayBlocked(gap) {
			add(model.RuleCircadianStrict, "Inadequate Rest (Night -> Day)")
		}
		if gap <= circadianSoftMaxGap {
			if restHoursBetween(st.LastDate, st.LastShift, date, shift) < float64(settings.MinRestHours) {
				add(model.RuleMinRestHours, "Insufficient Rest Hours")
			}
		}
	}

	if st.DaysOff > 0 && st.DaysOff < settings.MinDaysOff {
		add(model.RuleMinDaysOff, "Min Days Off")
	}

	return out
}
