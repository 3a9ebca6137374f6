package solver

import (
	"math/rand"
	"testing"

	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
	"github.com/supereliguy/EWC-scheduling-site/pkg/scheduler/constraint"
)

func intp(v int) *int { return &v }

func newRunContext(startDate string, days int, users []*model.User, shifts []*model.Shift) *constraint.Context {
	sc := &constraint.Context{
		SiteID:    1,
		StartDate: startDate,
		EndDate:   model.AddDays(startDate, days-1),
		Days:      days,
		Site:      &model.Site{ID: 1, Name: "测试站点", Weekend: model.DefaultWeekendWindow()},
		Shifts:    shifts,
		Users:     users,
	}
	sc.Finalize(model.DefaultSettings())
	return sc
}

func overrideSettings(sc *constraint.Context, userID int64, override *model.UserSettings) {
	sc.Settings[userID] = model.MergeSettings(override, model.DefaultSettings())
}

func dayShift(required int) *model.Shift {
	return &model.Shift{ID: 1, SiteID: 1, Name: "日班", StartTime: "08:00", EndTime: "16:00", RequiredStaff: required}
}

func eveningShift(required int) *model.Shift {
	return &model.Shift{ID: 3, SiteID: 1, Name: "晚班", StartTime: "14:00", EndTime: "22:00", RequiredStaff: required}
}

func TestRun_工作请求优先(t *testing.T) {
	users := []*model.User{
		{ID: 1, Username: "甲", CategoryPriority: 10},
		{ID: 2, Username: "乙", CategoryPriority: 10},
	}
	sc := newRunContext("2023-06-05", 1, users, []*model.Shift{dayShift(1)})
	shiftOne := int64(1)
	sc.Requests["2023-06-05"] = map[int64]*model.Request{
		2: {UserID: 2, Date: "2023-06-05", Type: model.RequestWork, ShiftID: &shiftOne},
	}

	for seed := int64(0); seed < 10; seed++ {
		r := Run(sc, Options{Strategy: StrategySequential, Rng: rand.New(rand.NewSource(seed))})
		if len(r.Assignments) != 1 {
			t.Fatalf("seed %d: 排班数 = %d", seed, len(r.Assignments))
		}
		if r.Assignments[0].UserID != 2 {
			t.Errorf("seed %d: 工作请求者应胜出, got user %d", seed, r.Assignments[0].UserID)
		}
	}
}

func TestRun_填充优先压过高分用户(t *testing.T) {
	// 乙优先级1（系数放大），目标差距分远高于甲，但甲是优先补位
	users := []*model.User{
		{ID: 1, Username: "甲", CategoryPriority: 10, FillFirst: true},
		{ID: 2, Username: "乙", CategoryPriority: 1},
	}
	sc := newRunContext("2023-06-05", 1, users, []*model.Shift{dayShift(1)})

	for seed := int64(0); seed < 20; seed++ {
		r := Run(sc, Options{Strategy: StrategySequential, Randomness: 0.5, Rng: rand.New(rand.NewSource(seed))})
		if len(r.Assignments) != 1 || r.Assignments[0].UserID != 1 {
			t.Fatalf("seed %d: 随机池不得跨越优先补位边界, got %+v", seed, r.Assignments)
		}
	}
}

func TestRun_班次停排日不生成班位(t *testing.T) {
	shift := dayShift(1)
	shift.DaysOfWeek = []int{1, 2, 3, 4, 5, 6} // 周日停排
	users := []*model.User{{ID: 1, Username: "甲", CategoryPriority: 10}}
	// 2023-01-01 是周日
	sc := newRunContext("2023-01-01", 1, users, []*model.Shift{shift})

	r := Run(sc, Options{Strategy: StrategySequential, Rng: rand.New(rand.NewSource(1))})
	if len(r.Assignments) != 0 || len(r.Conflicts) != 0 {
		t.Errorf("停排日不应有班位, assignments=%d conflicts=%d", len(r.Assignments), len(r.Conflicts))
	}
}

func TestRun_连班上限冲突(t *testing.T) {
	users := []*model.User{{ID: 1, Username: "甲", CategoryPriority: 10}}
	sc := newRunContext("2023-06-05", 2, users, []*model.Shift{dayShift(1)})
	overrideSettings(sc, 1, &model.UserSettings{MaxConsecutive: intp(1)})

	r := Run(sc, Options{Strategy: StrategySequential, Rng: rand.New(rand.NewSource(1))})
	if len(r.Assignments) != 1 {
		t.Fatalf("排班数 = %d, expected 1", len(r.Assignments))
	}
	if len(r.Conflicts) != 1 {
		t.Fatalf("冲突数 = %d, expected 1", len(r.Conflicts))
	}
	c := r.Conflicts[0]
	if c.Date != "2023-06-06" || len(c.Failures) != 1 {
		t.Fatalf("冲突条目 = %+v", c)
	}
	if c.Failures[0].Reason != "Max Consecutive Shifts (1)" {
		t.Errorf("拒绝原因 = %s", c.Failures[0].Reason)
	}
	if r.Rejections["Max Consecutive Shifts (1)"] != 1 {
		t.Errorf("Rejections = %+v", r.Rejections)
	}
}

func TestRun_强制模式牺牲连班规则(t *testing.T) {
	users := []*model.User{{ID: 1, Username: "甲", CategoryPriority: 10}}
	sc := newRunContext("2023-06-05", 2, users, []*model.Shift{dayShift(1)})
	overrideSettings(sc, 1, &model.UserSettings{MaxConsecutive: intp(1)})

	r := Run(sc, Options{Strategy: StrategySequential, Force: true, Rng: rand.New(rand.NewSource(1))})
	if len(r.Assignments) != 2 {
		t.Fatalf("排班数 = %d, expected 2", len(r.Assignments))
	}

	var forced *model.Assignment
	for _, a := range r.Assignments {
		if a.IsHit {
			forced = a
		}
	}
	if forced == nil {
		t.Fatal("强制模式应产生牺牲排班")
	}
	if forced.Date != "2023-06-06" || forced.HitReason != "Max Consecutive Shifts (1)" {
		t.Errorf("牺牲排班 = %+v", forced)
	}
	if len(r.Conflicts) != 1 || r.Conflicts[0].Reason != "Forced: Max Consecutive Shifts (1)" {
		t.Errorf("冲突条目 = %+v", r.Conflicts)
	}
}

func TestRun_强制模式不侵犯请求(t *testing.T) {
	// 唯一用户当天请求休假：即使强制模式也必须空槽
	users := []*model.User{{ID: 1, Username: "甲", CategoryPriority: 10}}
	sc := newRunContext("2023-06-05", 1, users, []*model.Shift{dayShift(1)})
	sc.Requests["2023-06-05"] = map[int64]*model.Request{
		1: {UserID: 1, Date: "2023-06-05", Type: model.RequestOff},
	}

	r := Run(sc, Options{Strategy: StrategySequential, Force: true, Rng: rand.New(rand.NewSource(1))})
	if len(r.Assignments) != 0 {
		t.Fatalf("休假请求不可被强排, assignments = %+v", r.Assignments)
	}
	if len(r.Conflicts) != 1 || r.Conflicts[0].Failures[0].Reason != "Requested Off" {
		t.Errorf("冲突条目 = %+v", r.Conflicts)
	}
}

func TestRun_锁定排班占用名额(t *testing.T) {
	users := []*model.User{
		{ID: 1, Username: "甲", CategoryPriority: 10},
		{ID: 2, Username: "乙", CategoryPriority: 10},
	}
	sc := newRunContext("2023-06-05", 1, users, []*model.Shift{dayShift(1)})
	sc.LockedAssignments = []*model.Assignment{
		{ID: 77, SiteID: 1, Date: "2023-06-05", ShiftID: 1, UserID: 1, IsLocked: true},
	}

	r := Run(sc, Options{Strategy: StrategySequential, Rng: rand.New(rand.NewSource(1))})
	if len(r.Assignments) != 1 {
		t.Fatalf("锁定后不应再补位, assignments = %+v", r.Assignments)
	}
	if !r.Assignments[0].IsLocked || r.Assignments[0].UserID != 1 {
		t.Errorf("应原样保留锁定排班, got %+v", r.Assignments[0])
	}
	if len(r.Conflicts) != 0 {
		t.Errorf("conflicts = %+v", r.Conflicts)
	}
}

func TestRun_全员在岗空槽(t *testing.T) {
	users := []*model.User{{ID: 1, Username: "甲", CategoryPriority: 10}}
	sc := newRunContext("2023-06-05", 1, users, []*model.Shift{dayShift(1), eveningShift(1)})

	r := Run(sc, Options{Strategy: StrategySequential, Rng: rand.New(rand.NewSource(1))})
	if len(r.Assignments) != 1 || len(r.Conflicts) != 1 {
		t.Fatalf("assignments=%d conflicts=%d", len(r.Assignments), len(r.Conflicts))
	}
	fs := r.Conflicts[0].Failures
	if len(fs) != 1 || fs[0].Reason != "No available users (all working)" {
		t.Errorf("failures = %+v", fs)
	}
}

func TestRun_班位守恒(t *testing.T) {
	// 非锁定排班数 + 冲突数 = 班位总数
	users := []*model.User{
		{ID: 1, Username: "甲", CategoryPriority: 10},
		{ID: 2, Username: "乙", CategoryPriority: 10},
	}
	sc := newRunContext("2023-06-05", 7, users, []*model.Shift{dayShift(1), eveningShift(1)})
	overrideSettings(sc, 1, &model.UserSettings{MaxConsecutive: intp(3)})
	overrideSettings(sc, 2, &model.UserSettings{MaxConsecutive: intp(3)})

	slots := len(BuildSlots(sc))
	for _, strategy := range Strategies() {
		r := Run(sc, Options{Strategy: strategy, Randomness: 0.25, Rng: rand.New(rand.NewSource(7))})
		nonLocked := 0
		for _, a := range r.Assignments {
			if !a.IsLocked {
				nonLocked++
			}
		}
		if nonLocked+len(r.Conflicts) != slots {
			t.Errorf("strategy %s: %d+%d != %d", strategy, nonLocked, len(r.Conflicts), slots)
		}
	}
}

func TestOrderSlots(t *testing.T) {
	users := []*model.User{{ID: 1, Username: "甲", CategoryPriority: 10}}
	night := &model.Shift{ID: 2, SiteID: 1, Name: "夜班", StartTime: "20:00", EndTime: "04:00", RequiredStaff: 1}
	sc := newRunContext("2023-06-05", 7, users, []*model.Shift{dayShift(1), night})
	slots := BuildSlots(sc)

	t.Run("倒序", func(t *testing.T) {
		ordered := OrderSlots(sc, slots, StrategyReverse, rand.New(rand.NewSource(1)))
		if ordered[0].Date != "2023-06-11" {
			t.Errorf("首位 = %s", ordered[0].Date)
		}
		if slots[0].Date != "2023-06-05" {
			t.Error("排序不得改动原切片")
		}
	})

	t.Run("夜班优先", func(t *testing.T) {
		ordered := OrderSlots(sc, slots, StrategyNightsFirst, rand.New(rand.NewSource(1)))
		seenDay := false
		for _, s := range ordered {
			if !s.Shift.IsNight {
				seenDay = true
			} else if seenDay {
				t.Fatal("夜班班位应全部排在白班之前")
			}
		}
	})

	t.Run("周末优先", func(t *testing.T) {
		ordered := OrderSlots(sc, slots, StrategyWeekendsFirst, rand.New(rand.NewSource(1)))
		seenWeekday := false
		for _, s := range ordered {
			if !model.IsWeekendShift(s.Date, s.Shift, sc.Site) {
				seenWeekday = true
			} else if seenWeekday {
				t.Fatal("周末班位应全部排在工作日之前")
			}
		}
	})
}
