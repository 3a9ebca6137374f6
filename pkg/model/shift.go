// Package model 定义排班引擎的核心数据模型
package model

import "time"

// Shift 班次定义
// IsNight 在上下文装载时一次性预计算，运行期间不再修改
type Shift struct {
	ID            int64  `json:"id" db:"id"`
	SiteID        int64  `json:"site_id" db:"site_id"`
	Name          string `json:"name" db:"name"`
	StartTime     string `json:"start_time" db:"start_time"` // HH:MM
	EndTime       string `json:"end_time" db:"end_time"`     // HH:MM
	RequiredStaff int    `json:"required_staff" db:"required_staff"`
	DaysOfWeek    []int  `json:"days_of_week" db:"days_of_week"` // 0=周日..6=周六
	IsNight       bool   `json:"is_night" db:"-"`
}

// ComputeNight 判断是否为夜班：跨午夜（结束早于开始）或 20:00 后开始
// 时间字段缺失或格式错误时返回 false，不因脏数据阻塞排班
func (s *Shift) ComputeNight() bool {
	start, ok1 := ParseClock(s.StartTime)
	end, ok2 := ParseClock(s.EndTime)
	if !ok1 || !ok2 {
		return false
	}
	return end < start || start >= 20*60
}

// ActiveOn 检查班次在指定星期是否排班
// 未配置 days_of_week 时视为每天都排
func (s *Shift) ActiveOn(weekday time.Weekday) bool {
	if len(s.DaysOfWeek) == 0 {
		return true
	}
	for _, d := range s.DaysOfWeek {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

// StartMinutes 返回班次开始时刻（自零点起的分钟数）
func (s *Shift) StartMinutes() (int, bool) {
	return ParseClock(s.StartTime)
}

// CrossesMidnight 检查班次是否跨午夜
func (s *Shift) CrossesMidnight() bool {
	start, ok1 := ParseClock(s.StartTime)
	end, ok2 := ParseClock(s.EndTime)
	if !ok1 || !ok2 {
		return false
	}
	return end <= start
}
