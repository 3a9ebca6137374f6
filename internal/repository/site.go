package repository

import (
	"context"
	"database/sql"

	"github.com/supereliguy/EWC-scheduling-site/pkg/errors"
	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
)

// Site 读取站点及其周末配置
// 周末字段允许为空，缺失时回落到默认窗口（周五21:00 → 周日16:00）
func (s *Store) Site(ctx context.Context, siteID int64) (*model.Site, error) {
	query := `
		SELECT id, name, weekend_start_day, weekend_start_time, weekend_end_day, weekend_end_time
		FROM sites
		WHERE id = $1`

	var (
		site      model.Site
		startDay  sql.NullInt64
		startTime sql.NullString
		endDay    sql.NullInt64
		endTime   sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, siteID).Scan(
		&site.ID, &site.Name, &startDay, &startTime, &endDay, &endTime,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("查询站点", err)
	}

	w := model.DefaultWeekendWindow()
	if startDay.Valid {
		w.StartDay = int(startDay.Int64)
	}
	if startTime.Valid && startTime.String != "" {
		w.StartTime = startTime.String
	}
	if endDay.Valid {
		w.EndDay = int(endDay.Int64)
	}
	if endTime.Valid && endTime.String != "" {
		w.EndTime = endTime.String
	}
	site.Weekend = w
	return &site, nil
}
