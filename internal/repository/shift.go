package repository

import (
	"context"

	"github.com/lib/pq"

	"github.com/supereliguy/EWC-scheduling-site/pkg/errors"
	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
)

// ShiftsBySite 读取站点的全部班次定义
func (s *Store) ShiftsBySite(ctx context.Context, siteID int64) ([]*model.Shift, error) {
	query := `
		SELECT id, site_id, name, start_time, end_time, required_staff, days_of_week
		FROM shifts
		WHERE site_id = $1
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, siteID)
	if err != nil {
		return nil, errors.DatabaseError("查询班次", err)
	}
	defer rows.Close()

	var shifts []*model.Shift
	for rows.Next() {
		var (
			shift model.Shift
			days  pq.Int64Array
		)
		if err := rows.Scan(
			&shift.ID, &shift.SiteID, &shift.Name,
			&shift.StartTime, &shift.EndTime, &shift.RequiredStaff, &days,
		); err != nil {
			return nil, errors.DatabaseError("扫描班次", err)
		}
		shift.DaysOfWeek = make([]int, 0, len(days))
		for _, d := range days {
			shift.DaysOfWeek = append(shift.DaysOfWeek, int(d))
		}
		shifts = append(shifts, &shift)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("遍历班次", err)
	}
	return shifts, nil
}
