package stats

import (
	"math"
	"testing"

	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
	"github.com/supereliguy/EWC-scheduling-site/pkg/scheduler/constraint"
)

func newTestContext(days int) *constraint.Context {
	sc := &constraint.Context{
		SiteID:    1,
		StartDate: "2023-06-05",
		EndDate:   model.AddDays("2023-06-05", days-1),
		Days:      days,
		Site:      &model.Site{ID: 1, Name: "测试站点", Weekend: model.DefaultWeekendWindow()},
		Shifts: []*model.Shift{
			{ID: 1, SiteID: 1, Name: "日班", StartTime: "08:00", EndTime: "16:00", RequiredStaff: 1},
			{ID: 2, SiteID: 1, Name: "夜班", StartTime: "20:00", EndTime: "04:00", RequiredStaff: 1},
		},
		Users: []*model.User{
			{ID: 1, Username: "甲", CategoryPriority: 10},
			{ID: 2, Username: "乙", CategoryPriority: 10},
		},
	}
	sc.Finalize(model.DefaultSettings())
	return sc
}

func asn(userID int64, date string, shiftID int64) *model.Assignment {
	return &model.Assignment{SiteID: 1, UserID: userID, Date: date, ShiftID: shiftID}
}

func TestGini(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"完全均匀", []float64{3, 3, 3, 3}, 0},
		{"完全集中", []float64{0, 0, 0, 12}, 0.75},
		{"空切片", nil, 0},
		{"全零", []float64{0, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gini(tt.values); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("gini(%v) = %v, expected %v", tt.values, got, tt.expected)
			}
		})
	}
}

func TestAnalyzeFairness(t *testing.T) {
	sc := newTestContext(4)
	assignments := []*model.Assignment{
		asn(1, "2023-06-05", 1),
		asn(1, "2023-06-06", 1),
		asn(2, "2023-06-05", 2),
		asn(2, "2023-06-06", 2),
	}

	m := AnalyzeFairness(sc, assignments)
	if m.ShiftGini != 0 {
		t.Errorf("均匀分配 ShiftGini = %v", m.ShiftGini)
	}
	if m.AvgShifts != 2 || m.MinShifts != 2 || m.MaxShifts != 2 {
		t.Errorf("Avg=%v Min=%d Max=%d", m.AvgShifts, m.MinShifts, m.MaxShifts)
	}
	// 夜班全在乙：基尼 0.5，周末无班为 0
	if math.Abs(m.NightShiftGini-0.5) > 1e-9 {
		t.Errorf("NightShiftGini = %v", m.NightShiftGini)
	}
	if m.WeekendShiftGini != 0 {
		t.Errorf("WeekendShiftGini = %v", m.WeekendShiftGini)
	}
	if len(m.UserStats) != 2 || m.UserStats[0].UserID != 1 {
		t.Errorf("UserStats = %+v", m.UserStats)
	}
	if m.ShiftTypeShare["日班"] != 50 || m.ShiftTypeShare["夜班"] != 50 {
		t.Errorf("ShiftTypeShare = %+v", m.ShiftTypeShare)
	}
	expected := math.Max(0, 100*(1-0.5*0.25))
	if math.Abs(m.OverallScore-expected) > 1e-9 {
		t.Errorf("OverallScore = %v, expected %v", m.OverallScore, expected)
	}
}

func TestAnalyzeFairness_偏差百分比(t *testing.T) {
	sc := newTestContext(4)
	sc.Settings[1] = model.MergeSettings(&model.UserSettings{TargetShifts: intp(4)}, model.DefaultSettings())
	m := AnalyzeFairness(sc, []*model.Assignment{
		asn(1, "2023-06-05", 1),
		asn(1, "2023-06-06", 1),
	})

	var stat *UserStat
	for i := range m.UserStats {
		if m.UserStats[i].UserID == 1 {
			stat = &m.UserStats[i]
		}
	}
	if stat == nil || stat.Deviation != -50 {
		t.Errorf("stat = %+v", stat)
	}
}

func TestAnalyzeFairness_无用户(t *testing.T) {
	sc := newTestContext(1)
	sc.Users = nil
	m := AnalyzeFairness(sc, nil)
	if m.OverallScore != 100 {
		t.Errorf("OverallScore = %v", m.OverallScore)
	}
}

func TestAnalyzeCoverage(t *testing.T) {
	sc := newTestContext(2)
	// 4个班位只排了3个：6/6 夜班缺口
	assignments := []*model.Assignment{
		asn(1, "2023-06-05", 1),
		asn(2, "2023-06-05", 2),
		asn(1, "2023-06-06", 1),
	}

	m := AnalyzeCoverage(sc, assignments)
	if m.TotalSlots != 4 || m.AssignedSlots != 3 {
		t.Fatalf("Total=%d Assigned=%d", m.TotalSlots, m.AssignedSlots)
	}
	if m.OverallCoverage != 75 {
		t.Errorf("OverallCoverage = %v", m.OverallCoverage)
	}
	if len(m.UnfilledSlots) != 1 {
		t.Fatalf("UnfilledSlots = %+v", m.UnfilledSlots)
	}
	gap := m.UnfilledSlots[0]
	if gap.Date != "2023-06-06" || gap.ShiftID != 2 || gap.Shortage != 1 {
		t.Errorf("缺口 = %+v", gap)
	}
	if m.ShiftCoverage["日班"] != 100 || m.ShiftCoverage["夜班"] != 50 {
		t.Errorf("ShiftCoverage = %+v", m.ShiftCoverage)
	}
	day := m.DailyCoverage["2023-06-06"]
	if day.CoverageRate != 50 {
		t.Errorf("6/6 覆盖率 = %v", day.CoverageRate)
	}
}

func TestAnalyzeCoverage_超排封顶(t *testing.T) {
	sc := newTestContext(1)
	// 同一班位排了2人，覆盖按需求封顶
	m := AnalyzeCoverage(sc, []*model.Assignment{
		asn(1, "2023-06-05", 1),
		asn(2, "2023-06-05", 1),
	})
	if m.AssignedSlots != 1 {
		t.Errorf("超排应封顶, Assigned = %d", m.AssignedSlots)
	}
	if m.ShiftCoverage["日班"] != 100 {
		t.Errorf("ShiftCoverage = %+v", m.ShiftCoverage)
	}
}

func intp(v int) *int { return &v }
