package stats

import (
	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
	"github.com/supereliguy/EWC-scheduling-site/pkg/scheduler/constraint"
)

// DayCoverage 单日覆盖情况
type DayCoverage struct {
	Date          string  `json:"date"`
	RequiredSlots int     `json:"required_slots"`
	Assigned      int     `json:"assigned"`
	CoverageRate  float64 `json:"coverage_rate"`
}

// UnfilledSlot 缺口班位
type UnfilledSlot struct {
	Date      string `json:"date"`
	ShiftID   int64  `json:"shift_id"`
	ShiftName string `json:"shift_name"`
	Required  int    `json:"required"`
	Assigned  int    `json:"assigned"`
	Shortage  int    `json:"shortage"`
}

// CoverageMetrics 覆盖率指标
type CoverageMetrics struct {
	TotalSlots      int                    `json:"total_slots"`
	AssignedSlots   int                    `json:"assigned_slots"`
	OverallCoverage float64                `json:"overall_coverage"`
	DailyCoverage   map[string]DayCoverage `json:"daily_coverage"`
	ShiftCoverage   map[string]float64     `json:"shift_coverage"` // 班次名 → 覆盖率
	UnfilledSlots   []UnfilledSlot         `json:"unfilled_slots"`
}

// AnalyzeCoverage 对照需求统计排班覆盖情况
func AnalyzeCoverage(sc *constraint.Context, assignments []*model.Assignment) *CoverageMetrics {
	m := &CoverageMetrics{
		DailyCoverage: make(map[string]DayCoverage),
		ShiftCoverage: make(map[string]float64),
	}

	assigned := make(map[string]map[int64]int)
	for _, a := range assignments {
		if assigned[a.Date] == nil {
			assigned[a.Date] = make(map[int64]int)
		}
		assigned[a.Date][a.ShiftID]++
	}

	shiftRequired := make(map[string]int)
	shiftAssigned := make(map[string]int)

	for i := 0; i < sc.Days; i++ {
		date := sc.DateOf(i)
		weekday, err := model.WeekdayOf(date)
		if err != nil {
			continue
		}
		day := DayCoverage{Date: date}
		for _, s := range sc.Shifts {
			if !s.ActiveOn(weekday) {
				continue
			}
			got := assigned[date][s.ID]
			if got > s.RequiredStaff {
				got = s.RequiredStaff
			}
			day.RequiredSlots += s.RequiredStaff
			day.Assigned += got
			shiftRequired[s.Name] += s.RequiredStaff
			shiftAssigned[s.Name] += got

			if got < s.RequiredStaff {
				m.UnfilledSlots = append(m.UnfilledSlots, UnfilledSlot{
					Date:      date,
					ShiftID:   s.ID,
					ShiftName: s.Name,
					Required:  s.RequiredStaff,
					Assigned:  got,
					Shortage:  s.RequiredStaff - got,
				})
			}
		}
		if day.RequiredSlots > 0 {
			day.CoverageRate = float64(day.Assigned) / float64(day.RequiredSlots) * 100
		} else {
			day.CoverageRate = 100
		}
		m.TotalSlots += day.RequiredSlots
		m.AssignedSlots += day.Assigned
		m.DailyCoverage[date] = day
	}

	for name, req := range shiftRequired {
		if req > 0 {
			m.ShiftCoverage[name] = float64(shiftAssigned[name]) / float64(req) * 100
		}
	}
	if m.TotalSlots > 0 {
		m.OverallCoverage = float64(m.AssignedSlots) / float64(m.TotalSlots) * 100
	} else {
		m.OverallCoverage = 100
	}
	return m
}
