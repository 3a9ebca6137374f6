package constraint

import (
	"testing"

	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
)

// 打分候选基线：目标差距项清零（已排数=目标数），默认权重全硬让软违规循环不生效，
// 空索引让连块与夜班串为零，工作日日班避开周末项
func scoreCandidate(sc *Context, shift *model.Shift, date string, override *model.UserSettings) *Candidate {
	c := testCandidate(sc, shift, date, override)
	c.Tally.TotalAssigned = c.Settings.TargetShifts
	return c
}

func TestScore_工作请求(t *testing.T) {
	sc := newTestContext(nil, dayShift())
	ix := NewAssignmentIndex()
	shiftOne := int64(1)

	c := scoreCandidate(sc, sc.Shift(1), "2023-06-01", nil)
	c.Request = &model.Request{UserID: 1, Date: "2023-06-01", Type: model.RequestWork, ShiftID: &shiftOne}
	if got := Score(c, ix, sc); got != 10*workSpecificBonusUnit {
		t.Errorf("指定班次工作请求 = %d, expected %d", got, 10*workSpecificBonusUnit)
	}

	c = scoreCandidate(sc, sc.Shift(1), "2023-06-01", nil)
	c.Request = &model.Request{UserID: 1, Date: "2023-06-01", Type: model.RequestWork}
	if got := Score(c, ix, sc); got != 10*workGenericBonusUnit {
		t.Errorf("泛化工作请求 = %d, expected %d", got, 10*workGenericBonusUnit)
	}
}

func TestScore_偏好排序(t *testing.T) {
	sc := newTestContext(nil, dayShift(), nightShift())
	ix := NewAssignmentIndex()
	ranking := []model.ShiftRef{{ID: 1, Name: "日班"}, {ID: 2, Name: "夜班"}, {ID: 9, Name: "加班"}}

	c := scoreCandidate(sc, sc.Shift(1), "2023-06-01", &model.UserSettings{ShiftRanking: ranking})
	if got := Score(c, ix, sc); got != 3*rankBonusUnit {
		t.Errorf("排序第一位 = %d, expected %d", got, 3*rankBonusUnit)
	}

	c = scoreCandidate(sc, sc.Shift(2), "2023-06-01", &model.UserSettings{ShiftRanking: ranking})
	if got := Score(c, ix, sc); got != 2*rankBonusUnit {
		t.Errorf("排序第二位 = %d, expected %d", got, 2*rankBonusUnit)
	}

	noPref := true
	c = scoreCandidate(sc, sc.Shift(1), "2023-06-01", &model.UserSettings{ShiftRanking: ranking, NoPreference: &noPref})
	if got := Score(c, ix, sc); got != 0 {
		t.Errorf("无偏好标记应跳过排序加分, got %d", got)
	}
}

func TestScore_目标差距(t *testing.T) {
	sc := newTestContext(nil, dayShift())
	ix := NewAssignmentIndex()

	tests := []struct {
		name     string
		assigned int
		priority int
		expected int
	}{
		{"落后3班优先级10", 17, 10, 3 * 3 * targetBonusUnit},
		{"落后3班优先级1", 17, 1, 3 * 3 * targetBonusUnit * 10},
		{"恰好达标", 20, 10, 0},
		{"超出2班", 22, 10, -2 * overTargetPenalty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCandidate(sc, sc.Shift(1), "2023-06-01", nil)
			c.Tally.TotalAssigned = tt.assigned
			c.User = &model.User{ID: 1, Username: "甲", CategoryPriority: tt.priority}
			if got := Score(c, ix, sc); got != tt.expected {
				t.Errorf("Score = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestScore_连块塑形(t *testing.T) {
	sc := newTestContext(nil, dayShift())

	t.Run("未到理想连块续排加分", func(t *testing.T) {
		ix := seedIndex([]string{"2023-06-07"}, 1)
		c := scoreCandidate(sc, sc.Shift(1), "2023-06-08", nil)
		if got := Score(c, ix, sc); got != blockGrowBonus {
			t.Errorf("Score = %d, expected %d", got, blockGrowBonus)
		}
	})

	t.Run("达到理想连块续排受罚", func(t *testing.T) {
		ix := seedIndex([]string{"2023-06-05", "2023-06-06", "2023-06-07"}, 1)
		c := scoreCandidate(sc, sc.Shift(1), "2023-06-08", nil)
		expected := (10 / 2) * -1000
		if got := Score(c, ix, sc); got != expected {
			t.Errorf("Score = %d, expected %d", got, expected)
		}
	})
}

func TestScore_软性昼夜节律(t *testing.T) {
	weights := model.RuleWeights{model.RuleCircadianSoft: 4}

	t.Run("夜转日间隔2天吃软罚分", func(t *testing.T) {
		sc := newTestContext(weights, dayShift(), nightShift())
		ix := seedIndex([]string{"2023-06-05"}, 2)
		c := scoreCandidate(sc, sc.Shift(1), "2023-06-07", nil)
		if got := Score(c, ix, sc); got != -4000 {
			t.Errorf("Score = %d, expected -4000", got)
		}
	})

	t.Run("间隔超过3天不受罚", func(t *testing.T) {
		sc := newTestContext(weights, dayShift(), nightShift())
		ix := seedIndex([]string{"2023-06-01"}, 2)
		c := scoreCandidate(sc, sc.Shift(1), "2023-06-05", nil)
		if got := Score(c, ix, sc); got != 0 {
			t.Errorf("Score = %d, expected 0", got)
		}
	})
}

func TestScore_夜班串下限(t *testing.T) {
	weights := model.RuleWeights{model.RuleMinConsecutiveNights: 6}
	sc := newTestContext(weights, dayShift(), nightShift())
	ix := seedIndex([]string{"2023-06-06"}, 2)

	// 昨天1个夜班未凑够下限2：续排夜班既得夜班串加分，又得连块加分
	c := scoreCandidate(sc, sc.Shift(2), "2023-06-07", nil)
	if got := Score(c, ix, sc); got != nightStreakBonus+blockGrowBonus {
		t.Errorf("续排夜班 = %d, expected %d", got, nightStreakBonus+blockGrowBonus)
	}

	c = scoreCandidate(sc, sc.Shift(1), "2023-06-07", nil)
	if got := Score(c, ix, sc); got != -6000 {
		t.Errorf("夜班串中断 = %d, expected -6000", got)
	}
}

func TestScore_周末公平(t *testing.T) {
	weights := model.RuleWeights{model.RuleWeekendFairness: 3}
	sc := newTestContext(weights, dayShift())
	ix := NewAssignmentIndex()

	// 2023-06-03 周六
	c := scoreCandidate(sc, sc.Shift(1), "2023-06-03", nil)
	c.Tally.WeekendShifts = 2
	if got := Score(c, ix, sc); got != 2*-3000 {
		t.Errorf("周六累计2个周末班 = %d, expected -6000", got)
	}

	c = scoreCandidate(sc, sc.Shift(1), "2023-06-01", nil)
	c.Tally.WeekendShifts = 2
	if got := Score(c, ix, sc); got != 0 {
		t.Errorf("工作日不计周末罚分, got %d", got)
	}
}

func TestScore_软违规折算(t *testing.T) {
	weights := model.RuleWeights{model.RuleAvailability: 5}
	sc := newTestContext(weights, dayShift())
	ix := NewAssignmentIndex()

	override := &model.UserSettings{Availability: &model.Availability{BlockedShifts: []int64{1}}}
	c := scoreCandidate(sc, sc.Shift(1), "2023-06-01", override)
	if got := Score(c, ix, sc); got != -5000 {
		t.Errorf("软化的可用性违规 = %d, expected -5000", got)
	}
}
