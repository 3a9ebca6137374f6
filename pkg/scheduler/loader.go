package scheduler

import (
	"context"
	"fmt"

	"github.com/supereliguy/EWC-scheduling-site/pkg/errors"
	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
	"github.com/supereliguy/EWC-scheduling-site/pkg/scheduler/constraint"
)

// 回看窗口长度：目标区间前7天的排班用于接续连班状态
const lookbackDays = 7

// LoadContext 装载一次生成/验证所需的全部数据并构建不可变上下文
// 每次调用装载一次，搜索过程中不再访问存储
func LoadContext(ctx context.Context, store Store, siteID int64, startDate string, days int) (*constraint.Context, error) {
	if _, err := model.ParseDate(startDate); err != nil {
		return nil, errors.New(errors.CodeInvalidDateRange, fmt.Sprintf("无效起始日期 '%s'", startDate))
	}
	if days <= 0 {
		return nil, errors.New(errors.CodeInvalidDateRange, fmt.Sprintf("无效排班天数 %d", days))
	}

	endDate := model.AddDays(startDate, days-1)
	lookbackStart := model.AddDays(startDate, -lookbackDays)
	lookbackEnd := model.AddDays(startDate, -1)

	site, err := store.Site(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, errors.NotFound("站点", fmt.Sprintf("%d", siteID))
	}

	shifts, err := store.ShiftsBySite(ctx, siteID)
	if err != nil {
		return nil, err
	}
	users, err := store.UsersBySite(ctx, siteID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]int64, 0, len(users))
	for _, u := range users {
		userIDs = append(userIDs, u.ID)
	}
	overrides, err := store.SettingsForUsers(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	defaults, err := store.GlobalDefaults(ctx)
	if err != nil {
		return nil, err
	}
	weights, err := store.RuleWeights(ctx, siteID)
	if err != nil {
		return nil, err
	}

	settings := make(map[int64]*model.EffectiveSettings, len(users))
	for _, u := range users {
		settings[u.ID] = model.MergeSettings(overrides[u.ID], defaults)
	}

	requests, err := store.RequestsByRange(ctx, siteID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	// 日期 → 用户，每人每天至多一条，重复时先到者生效
	requestIndex := make(map[string]map[int64]*model.Request)
	for _, r := range requests {
		byUser, ok := requestIndex[r.Date]
		if !ok {
			byUser = make(map[int64]*model.Request)
			requestIndex[r.Date] = byUser
		}
		if _, exists := byUser[r.UserID]; !exists {
			byUser[r.UserID] = r
		}
	}

	prev, err := store.AssignmentsByRange(ctx, siteID, lookbackStart, lookbackEnd, false)
	if err != nil {
		return nil, err
	}
	locked, err := store.AssignmentsByRange(ctx, siteID, startDate, endDate, true)
	if err != nil {
		return nil, err
	}
	current, err := store.AssignmentsByRange(ctx, siteID, startDate, endDate, false)
	if err != nil {
		return nil, err
	}

	sc := &constraint.Context{
		SiteID:             siteID,
		StartDate:          startDate,
		EndDate:            endDate,
		Days:               days,
		Site:               site,
		Shifts:             shifts,
		Users:              users,
		Settings:           settings,
		Weights:            weights,
		Requests:           requestIndex,
		PrevAssignments:    prev,
		LockedAssignments:  locked,
		CurrentAssignments: current,
	}
	sc.Finalize(defaults)
	return sc, nil
}
