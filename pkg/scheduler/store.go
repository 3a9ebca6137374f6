// Package scheduler 对外暴露排班引擎的生成与验证入口，
// 内部组织上下文装载、重启搜索与结果持久化
package scheduler

import (
	"context"

	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
)

// Store 引擎依赖的数据访问接口，由 internal/repository 实现
// 测试时可注入内存假实现
type Store interface {
	// Site 读取站点及其周末配置
	Site(ctx context.Context, siteID int64) (*model.Site, error)

	// ShiftsBySite 读取站点的全部班次定义
	ShiftsBySite(ctx context.Context, siteID int64) ([]*model.Shift, error)

	// UsersBySite 读取站点成员（已联结类别字段）
	UsersBySite(ctx context.Context, siteID int64) ([]*model.User, error)

	// SettingsForUsers 读取用户级设置覆盖，缺失的用户不在返回表中
	SettingsForUsers(ctx context.Context, userIDs []int64) (map[int64]*model.UserSettings, error)

	// GlobalDefaults 读取全局默认设置
	GlobalDefaults(ctx context.Context) (model.SettingsDefaults, error)

	// RuleWeights 读取站点的规则权重表
	RuleWeights(ctx context.Context, siteID int64) (model.RuleWeights, error)

	// RequestsByRange 读取日期区间内的待处理请求
	RequestsByRange(ctx context.Context, siteID int64, from, to string) ([]*model.Request, error)

	// AssignmentsByRange 读取日期区间内的排班，可只取锁定记录
	AssignmentsByRange(ctx context.Context, siteID int64, from, to string, lockedOnly bool) ([]*model.Assignment, error)

	// ReplaceAssignments 原子替换：删除区间内全部非锁定排班后
	// 批量写入新排班，必须在单个事务内完成
	ReplaceAssignments(ctx context.Context, siteID int64, from, to string, assignments []*model.Assignment) error
}
