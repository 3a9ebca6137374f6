package repository

import (
	"context"
	"database/sql"

	"github.com/supereliguy/EWC-scheduling-site/pkg/errors"
	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
)

// AssignmentsByRange 读取日期区间内的排班，可只取锁定记录
func (s *Store) AssignmentsByRange(ctx context.Context, siteID int64, from, to string, lockedOnly bool) ([]*model.Assignment, error) {
	query := `
		SELECT id, site_id, to_char(date, 'YYYY-MM-DD'), shift_id, user_id,
		       is_locked, is_hit, COALESCE(hit_reason, ''), status
		FROM assignments
		WHERE site_id = $1 AND date BETWEEN $2 AND $3`
	if lockedOnly {
		query += " AND is_locked = TRUE"
	}
	query += " ORDER BY date, shift_id, id"

	rows, err := s.db.QueryContext(ctx, query, siteID, from, to)
	if err != nil {
		return nil, errors.DatabaseError("查询排班", err)
	}
	defer rows.Close()

	var assignments []*model.Assignment
	for rows.Next() {
		var a model.Assignment
		if err := rows.Scan(
			&a.ID, &a.SiteID, &a.Date, &a.ShiftID, &a.UserID,
			&a.IsLocked, &a.IsHit, &a.HitReason, &a.Status,
		); err != nil {
			return nil, errors.DatabaseError("扫描排班", err)
		}
		assignments = append(assignments, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("遍历排班", err)
	}
	return assignments, nil
}

// ReplaceAssignments 原子替换区间内的排班
// 单个事务内先删除全部非锁定记录，再批量写入新排班；
// 锁定记录始终不动，事务失败时整批回滚
func (s *Store) ReplaceAssignments(ctx context.Context, siteID int64, from, to string, assignments []*model.Assignment) error {
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM assignments
			WHERE site_id = $1 AND date BETWEEN $2 AND $3 AND is_locked = FALSE`,
			siteID, from, to,
		); err != nil {
			return errors.DatabaseError("删除旧排班", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO assignments (site_id, date, shift_id, user_id, is_locked, is_hit, hit_reason, status)
			VALUES ($1, $2, $3, $4, FALSE, $5, $6, $7)`)
		if err != nil {
			return errors.DatabaseError("准备写入排班", err)
		}
		defer stmt.Close()

		for _, a := range assignments {
			if a.IsLocked {
				continue
			}
			status := a.Status
			if status == "" {
				status = model.AssignmentDraft
			}
			if _, err := stmt.ExecContext(ctx,
				siteID, a.Date, a.ShiftID, a.UserID, a.IsHit, a.HitReason, status,
			); err != nil {
				return errors.DatabaseError("写入排班", err)
			}
		}
		return nil
	})
}
