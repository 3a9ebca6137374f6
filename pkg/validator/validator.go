// Package validator 对现有或新生成的排班做逐日流式体检：
// 重演滚动状态，检出全部规则违反并按配置权重分级
package validator

import (
	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
	"github.com/supereliguy/EWC-scheduling-site/pkg/scheduler/constraint"
)

// Status 用户体检结论
type Status string

const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// 软性的目标班数偏离标记
const (
	reasonOverTarget  = "Over Target Shifts"
	reasonUnderTarget = "Under Target Shifts"
)

// IssueType 问题级别
type IssueType string

const (
	IssueHard IssueType = "hard"
	IssueSoft IssueType = "soft"
)

// Issue 单条体检问题
type Issue struct {
	Date   string    `json:"date"`
	Shift  string    `json:"shift,omitempty"`
	Type   IssueType `json:"type"`
	Reason string    `json:"reason"`
}

// UserReport 单用户体检结果
type UserReport struct {
	UserID   int64   `json:"user_id"`
	Username string  `json:"username"`
	Status   Status  `json:"status"`
	Issues   []Issue `json:"issues"`
}

// Report 用户ID → 体检结果
type Report map[int64]*UserReport

// Run 体检指定排班列表（nil 时取库中当前排班）
// 先无视权重检出所有会失败的规则，再按实际配置分级：
// 软权重规则的失败降为 warning 而不是被静默吞掉。
// 同一输入重复调用结果一致，过程不修改上下文
func Run(sc *constraint.Context, assignments []*model.Assignment) Report {
	if assignments == nil {
		assignments = sc.CurrentAssignments
	}

	report := make(Report, len(sc.Users))
	for _, u := range sc.Users {
		report[u.ID] = &UserReport{UserID: u.ID, Username: u.Username, Status: StatusOK}
	}

	states := make(map[int64]*constraint.RollingState, len(sc.Users))
	for _, u := range sc.Users {
		states[u.ID] = constraint.SeedState(u.ID, sc.PrevAssignments, sc.StartDate, sc)
	}

	byDate := make(map[string][]*model.Assignment)
	for _, a := range assignments {
		byDate[a.Date] = append(byDate[a.Date], a)
	}

	record := func(entry *UserReport, date, shiftName string, t IssueType, reason string) {
		entry.Issues = append(entry.Issues, Issue{Date: date, Shift: shiftName, Type: t, Reason: reason})
		if t == IssueHard {
			entry.Status = StatusError
		} else if entry.Status != StatusError {
			entry.Status = StatusWarning
		}
	}

	for i := 0; i < sc.Days; i++ {
		date := sc.DateOf(i)
		worked := make(map[int64]bool)

		for _, a := range byDate[date] {
			entry, ok := report[a.UserID]
			if !ok {
				continue
			}
			shift := sc.Shift(a.ShiftID)
			if shift == nil {
				continue
			}
			worked[a.UserID] = true

			st := states[a.UserID]
			settings := sc.SettingsFor(a.UserID)
			req := sc.RequestFor(date, a.UserID)

			for _, v := range constraint.StateViolations(st, shift, date, settings, req, sc) {
				t := IssueSoft
				if v.Hard {
					t = IssueHard
				}
				record(entry, date, shift.Name, t, v.Reason)
			}

			// 与检查结果无关的目标偏离提示
			if st.TotalAssigned >= settings.TargetShifts {
				record(entry, date, shift.Name, IssueSoft, reasonOverTarget)
			}

			st.Apply(date, shift, sc)
		}

		for _, u := range sc.Users {
			if !worked[u.ID] {
				states[u.ID].Rest()
			}
		}
	}

	for _, u := range sc.Users {
		settings := sc.SettingsFor(u.ID)
		if states[u.ID].TotalAssigned < settings.TargetShifts-settings.TargetVariance {
			record(report[u.ID], sc.EndDate, "", IssueSoft, reasonUnderTarget)
		}
	}

	return report
}
