package repository

import (
	"context"
	"encoding/json"

	"github.com/lib/pq"

	"github.com/supereliguy/EWC-scheduling-site/pkg/errors"
	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
)

// 类别缺失时的默认优先级（数值越大越次要）
const defaultCategoryPriority = 10

// UsersBySite 读取站点成员并联结类别字段
func (s *Store) UsersBySite(ctx context.Context, siteID int64) ([]*model.User, error) {
	query := `
		SELECT u.id, u.username,
		       COALESCE(cat.priority, $2) AS category_priority,
		       COALESCE(cat.name, '') AS category_name,
		       su.is_manual, su.fill_first
		FROM users u
		JOIN site_users su ON u.id = su.user_id
		LEFT JOIN user_categories cat ON su.category_id = cat.id
		WHERE su.site_id = $1
		ORDER BY u.id`

	rows, err := s.db.QueryContext(ctx, query, siteID, defaultCategoryPriority)
	if err != nil {
		return nil, errors.DatabaseError("查询站点成员", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID, &u.Username, &u.CategoryPriority, &u.CategoryName,
			&u.IsManual, &u.FillFirst,
		); err != nil {
			return nil, errors.DatabaseError("扫描站点成员", err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("遍历站点成员", err)
	}
	return users, nil
}

// SettingsForUsers 读取用户级设置覆盖
// settings 列为 JSONB，损坏的记录跳过而不是让整次装载失败
func (s *Store) SettingsForUsers(ctx context.Context, userIDs []int64) (map[int64]*model.UserSettings, error) {
	out := make(map[int64]*model.UserSettings, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT user_id, settings
		FROM user_settings
		WHERE user_id = ANY($1)`

	rows, err := s.db.QueryContext(ctx, query, pq.Array(userIDs))
	if err != nil {
		return nil, errors.DatabaseError("查询用户设置", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			userID int64
			raw    []byte
		)
		if err := rows.Scan(&userID, &raw); err != nil {
			return nil, errors.DatabaseError("扫描用户设置", err)
		}
		var us model.UserSettings
		if err := json.Unmarshal(raw, &us); err != nil {
			continue
		}
		us.UserID = userID
		out[userID] = &us
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("遍历用户设置", err)
	}
	return out, nil
}

// GlobalDefaults 读取全局默认设置
// 表为键值对，缺失的键落回出厂默认
func (s *Store) GlobalDefaults(ctx context.Context) (model.SettingsDefaults, error) {
	defaults := model.DefaultSettings()

	query := `SELECT key, value FROM global_settings`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return defaults, errors.DatabaseError("查询全局设置", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return defaults, errors.DatabaseError("扫描全局设置", err)
		}
		switch key {
		case "max_consecutive_shifts":
			defaults.MaxConsecutive = value
		case "min_consecutive_nights":
			defaults.MinConsecutiveNights = value
		case "min_days_off":
			defaults.MinDaysOff = value
		case "min_rest_hours":
			defaults.MinRestHours = value
		case "target_shifts":
			defaults.TargetShifts = value
		case "target_shifts_variance":
			defaults.TargetVariance = value
		case "preferred_block_size":
			defaults.PreferredBlockSize = value
		}
	}
	if err := rows.Err(); err != nil {
		return defaults, errors.DatabaseError("遍历全局设置", err)
	}
	return defaults, nil
}

// RuleWeights 读取站点的规则权重表，未配置的规则由权重表自身默认为硬约束
func (s *Store) RuleWeights(ctx context.Context, siteID int64) (model.RuleWeights, error) {
	weights := make(model.RuleWeights)

	query := `SELECT rule, weight FROM rule_weights WHERE site_id = $1`
	rows, err := s.db.QueryContext(ctx, query, siteID)
	if err != nil {
		return nil, errors.DatabaseError("查询规则权重", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rule string
		var weight int
		if err := rows.Scan(&rule, &weight); err != nil {
			return nil, errors.DatabaseError("扫描规则权重", err)
		}
		weights[rule] = weight
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("遍历规则权重", err)
	}
	return weights, nil
}
