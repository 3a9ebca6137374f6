package repository

import (
	"context"
	"database/sql"

	"github.com/supereliguy/EWC-scheduling-site/pkg/errors"
	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
)

// RequestsByRange 读取日期区间内的待处理请求
// 按创建顺序返回，装载器据此落实"每人每天先到者生效"
func (s *Store) RequestsByRange(ctx context.Context, siteID int64, from, to string) ([]*model.Request, error) {
	query := `
		SELECT id, site_id, user_id, to_char(date, 'YYYY-MM-DD'), type, shift_id
		FROM requests
		WHERE site_id = $1 AND date BETWEEN $2 AND $3 AND status = 'pending'
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, siteID, from, to)
	if err != nil {
		return nil, errors.DatabaseError("查询排班请求", err)
	}
	defer rows.Close()

	var requests []*model.Request
	for rows.Next() {
		var (
			r       model.Request
			shiftID sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &r.SiteID, &r.UserID, &r.Date, &r.Type, &shiftID); err != nil {
			return nil, errors.DatabaseError("扫描排班请求", err)
		}
		if shiftID.Valid {
			id := shiftID.Int64
			r.ShiftID = &id
		}
		requests = append(requests, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("遍历排班请求", err)
	}
	return requests, nil
}
