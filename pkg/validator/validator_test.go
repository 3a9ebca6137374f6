package validator

import (
	"reflect"
	"testing"

	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
	"github.com/supereliguy/EWC-scheduling-site/pkg/scheduler/constraint"
)

func intp(v int) *int { return &v }

func newTestContext(days int, weights model.RuleWeights) *constraint.Context {
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
		Weights: weights,
	}
	sc.Finalize(model.DefaultSettings())
	return sc
}

func setSettings(sc *constraint.Context, userID int64, override *model.UserSettings) {
	sc.Settings[userID] = model.MergeSettings(override, model.DefaultSettings())
}

func asn(userID int64, date string, shiftID int64) *model.Assignment {
	return &model.Assignment{SiteID: 1, UserID: userID, Date: date, ShiftID: shiftID}
}

func TestRun_连班超限为硬问题(t *testing.T) {
	sc := newTestContext(3, nil)
	setSettings(sc, 1, &model.UserSettings{MaxConsecutive: intp(2)})
	assignments := []*model.Assignment{
		asn(1, "2023-06-05", 1),
		asn(1, "2023-06-06", 1),
		asn(1, "2023-06-07", 1),
	}

	report := Run(sc, assignments)
	entry := report[1]
	if entry.Status != StatusError {
		t.Fatalf("Status = %s, expected error", entry.Status)
	}

	found := false
	for _, issue := range entry.Issues {
		if issue.Date == "2023-06-07" && issue.Type == IssueHard && issue.Reason == "Max Consecutive Shifts (2)" {
			found = true
		}
	}
	if !found {
		t.Errorf("Issues = %+v", entry.Issues)
	}
}

func TestRun_软化权重降为警告(t *testing.T) {
	sc := newTestContext(3, model.RuleWeights{model.RuleMaxConsecutive: 4})
	setSettings(sc, 1, &model.UserSettings{MaxConsecutive: intp(2)})
	assignments := []*model.Assignment{
		asn(1, "2023-06-05", 1),
		asn(1, "2023-06-06", 1),
		asn(1, "2023-06-07", 1),
	}

	report := Run(sc, assignments)
	entry := report[1]
	if entry.Status != StatusWarning {
		t.Fatalf("Status = %s, expected warning", entry.Status)
	}
	for _, issue := range entry.Issues {
		if issue.Reason == "Max Consecutive Shifts (2)" && issue.Type != IssueSoft {
			t.Errorf("软化后问题级别 = %s", issue.Type)
		}
	}
}

func TestRun_夜转日检出(t *testing.T) {
	sc := newTestContext(2, nil)
	assignments := []*model.Assignment{
		asn(1, "2023-06-05", 2),
		asn(1, "2023-06-06", 1),
	}

	report := Run(sc, assignments)
	entry := report[1]
	if entry.Status != StatusError {
		t.Fatalf("Status = %s", entry.Status)
	}
	found := false
	for _, issue := range entry.Issues {
		if issue.Reason == "Inadequate Rest (Night -> Day)" {
			found = true
		}
	}
	if !found {
		t.Errorf("Issues = %+v", entry.Issues)
	}
}

func TestRun_请假日上班(t *testing.T) {
	sc := newTestContext(1, nil)
	sc.Requests["2023-06-05"] = map[int64]*model.Request{
		1: {UserID: 1, Date: "2023-06-05", Type: model.RequestOff},
	}
	report := Run(sc, []*model.Assignment{asn(1, "2023-06-05", 1)})

	entry := report[1]
	if entry.Status != StatusError || len(entry.Issues) != 1 {
		t.Fatalf("entry = %+v", entry)
	}
	if entry.Issues[0].Reason != "Requested Off" {
		t.Errorf("Reason = %s", entry.Issues[0].Reason)
	}
}

func TestRun_目标偏离(t *testing.T) {
	sc := newTestContext(2, nil)
	setSettings(sc, 1, &model.UserSettings{TargetShifts: intp(1), TargetVariance: intp(1), MinDaysOff: intp(1)})
	setSettings(sc, 2, &model.UserSettings{TargetShifts: intp(5), TargetVariance: intp(1)})
	assignments := []*model.Assignment{
		asn(1, "2023-06-05", 1),
		asn(1, "2023-06-06", 2),
	}

	report := Run(sc, assignments)

	over := false
	for _, issue := range report[1].Issues {
		if issue.Date == "2023-06-06" && issue.Reason == "Over Target Shifts" {
			over = true
		}
	}
	if !over {
		t.Errorf("user1 Issues = %+v", report[1].Issues)
	}

	under := false
	for _, issue := range report[2].Issues {
		if issue.Date == sc.EndDate && issue.Reason == "Under Target Shifts" {
			under = true
		}
	}
	if !under || report[2].Status != StatusWarning {
		t.Errorf("user2 = %+v", report[2])
	}
}

func TestRun_干净排班(t *testing.T) {
	sc := newTestContext(2, nil)
	setSettings(sc, 1, &model.UserSettings{TargetShifts: intp(2), TargetVariance: intp(0), MinDaysOff: intp(1)})
	setSettings(sc, 2, &model.UserSettings{TargetShifts: intp(2), TargetVariance: intp(0), MinDaysOff: intp(1)})
	assignments := []*model.Assignment{
		asn(1, "2023-06-05", 1),
		asn(2, "2023-06-05", 2),
		asn(1, "2023-06-06", 1),
		asn(2, "2023-06-06", 2),
	}

	report := Run(sc, assignments)
	for id, entry := range report {
		if entry.Status != StatusOK || len(entry.Issues) != 0 {
			t.Errorf("user %d = %+v", id, entry)
		}
	}
}

func TestRun_默认取库中排班(t *testing.T) {
	sc := newTestContext(1, nil)
	sc.CurrentAssignments = []*model.Assignment{asn(1, "2023-06-05", 1)}
	sc.Requests["2023-06-05"] = map[int64]*model.Request{
		1: {UserID: 1, Date: "2023-06-05", Type: model.RequestOff},
	}

	report := Run(sc, nil)
	if report[1].Status != StatusError {
		t.Errorf("nil 入参应体检库中排班, entry = %+v", report[1])
	}
}

func TestRun_幂等(t *testing.T) {
	sc := newTestContext(3, nil)
	setSettings(sc, 1, &model.UserSettings{MaxConsecutive: intp(2)})
	assignments := []*model.Assignment{
		asn(1, "2023-06-05", 1),
		asn(1, "2023-06-06", 1),
		asn(1, "2023-06-07", 1),
	}

	first := Run(sc, assignments)
	second := Run(sc, assignments)
	if !reflect.DeepEqual(first, second) {
		t.Error("同一输入重复体检结果不一致")
	}
}
