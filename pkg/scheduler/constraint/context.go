// Package constraint 定义排班规则表与双向约束检查器
package constraint

import (
	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
)

// Context 排班上下文
// 每次生成/验证调用装载一次的不可变快照，运行期间除重启循环
// 对目标班次数的公平化改写外不得修改
type Context struct {
	SiteID    int64  `json:"site_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"`

	Site     *model.Site                        `json:"site"`
	Shifts   []*model.Shift                     `json:"shifts"`
	Users    []*model.User                      `json:"users"`
	Settings map[int64]*model.EffectiveSettings `json:"-"`
	Weights  model.RuleWeights                  `json:"rule_weights"`

	// 日期 → 用户，每人每天至多一条（重复时先写入者生效）
	Requests map[string]map[int64]*model.Request `json:"-"`

	// 目标区间前7天的历史排班，用于接续连班状态
	PrevAssignments []*model.Assignment `json:"-"`
	// 目标区间内的锁定排班（只读输入）
	LockedAssignments []*model.Assignment `json:"-"`
	// 目标区间内的全部现有排班（验证用）
	CurrentAssignments []*model.Assignment `json:"-"`

	shiftByID map[int64]*model.Shift
	userByID  map[int64]*model.User
	defaults  model.SettingsDefaults
}

// Finalize 构建查询索引并预计算班次的夜班标记
// 必须在装载完成后、任何搜索开始前调用一次
func (c *Context) Finalize(defaults model.SettingsDefaults) {
	c.defaults = defaults
	c.shiftByID = make(map[int64]*model.Shift, len(c.Shifts))
	for _, s := range c.Shifts {
		s.IsNight = s.ComputeNight()
		c.shiftByID[s.ID] = s
	}
	c.userByID = make(map[int64]*model.User, len(c.Users))
	for _, u := range c.Users {
		c.userByID[u.ID] = u
	}
	if c.Settings == nil {
		c.Settings = make(map[int64]*model.EffectiveSettings)
	}
	if c.Requests == nil {
		c.Requests = make(map[string]map[int64]*model.Request)
	}
	if c.Weights == nil {
		c.Weights = model.RuleWeights{}
	}
}

// Shift 按ID查找班次
func (c *Context) Shift(id int64) *model.Shift {
	return c.shiftByID[id]
}

// User 按ID查找用户
func (c *Context) User(id int64) *model.User {
	return c.userByID[id]
}

// SettingsFor 返回用户的生效设置，缺失时回落到全局默认
func (c *Context) SettingsFor(userID int64) *model.EffectiveSettings {
	if s, ok := c.Settings[userID]; ok {
		return s
	}
	return model.MergeSettings(nil, c.defaults)
}

// RequestFor 返回用户在指定日期的请求（无则为 nil）
func (c *Context) RequestFor(date string, userID int64) *model.Request {
	if byUser, ok := c.Requests[date]; ok {
		return byUser[userID]
	}
	return nil
}

// DateOf 返回目标区间内第 i 天的日期
func (c *Context) DateOf(i int) string {
	return model.AddDays(c.StartDate, i)
}

// WithSettings 返回替换了生效设置表的浅拷贝
// 供重启控制器的目标公平化预处理使用，原上下文不受影响
func (c *Context) WithSettings(settings map[int64]*model.EffectiveSettings) *Context {
	clone := *c
	clone.Settings = settings
	return &clone
}
