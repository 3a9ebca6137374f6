// Package model 定义排班引擎的核心数据模型
package model

// 排班记录状态
const (
	AssignmentDraft     = "draft"
	AssignmentConfirmed = "confirmed"
)

// Assignment 排班分配
// 锁定记录是生成运行的只读输入：计入连班与目标统计，但绝不被替换或牺牲
type Assignment struct {
	ID        int64  `json:"id" db:"id"`
	SiteID    int64  `json:"site_id" db:"site_id"`
	Date      string `json:"date" db:"date"` // YYYY-MM-DD
	ShiftID   int64  `json:"shift_id" db:"shift_id"`
	UserID    int64  `json:"user_id" db:"user_id"`
	IsLocked  bool   `json:"is_locked" db:"is_locked"`
	IsHit     bool   `json:"is_hit,omitempty" db:"-"` // 强制模式下的牺牲排班
	HitReason string `json:"hit_reason,omitempty" db:"-"`
	Status    string `json:"status" db:"status"`
}

// Clone 复制排班记录
func (a *Assignment) Clone() *Assignment {
	c := *a
	return &c
}
