// Package model 定义排班引擎的核心数据模型
package model

import "time"

// 周末窗口默认值：周五 21:00 至 周日 16:00
const (
	DefaultWeekendStartDay  = 5
	DefaultWeekendStartTime = "21:00"
	DefaultWeekendEndDay    = 0
	DefaultWeekendEndTime   = "16:00"
)

// WeekendWindow 站点的周末窗口定义（起止均为 星期+时刻，允许跨周回绕）
type WeekendWindow struct {
	StartDay  int    `json:"start_day" db:"weekend_start_day"` // 0=周日..6=周六
	StartTime string `json:"start_time" db:"weekend_start_time"`
	EndDay    int    `json:"end_day" db:"weekend_end_day"`
	EndTime   string `json:"end_time" db:"weekend_end_time"`
}

// DefaultWeekendWindow 返回默认周末窗口
func DefaultWeekendWindow() *WeekendWindow {
	return &WeekendWindow{
		StartDay:  DefaultWeekendStartDay,
		StartTime: DefaultWeekendStartTime,
		EndDay:    DefaultWeekendEndDay,
		EndTime:   DefaultWeekendEndTime,
	}
}

// Site 站点
type Site struct {
	ID      int64          `json:"id" db:"id"`
	Name    string         `json:"name" db:"name"`
	Weekend *WeekendWindow `json:"weekend,omitempty" db:"-"`
}

// weekMinutes 将 (星期, 时刻) 折算为自周日零点起的分钟数
func weekMinutes(day int, clock string) (int, bool) {
	m, ok := ParseClock(clock)
	if !ok {
		return 0, false
	}
	return day*24*60 + m, true
}

// Contains 检查 (星期, 时刻) 是否落在周末窗口内
// 起点晚于终点时窗口跨周回绕（如 周五晚 → 周日午后）
func (w *WeekendWindow) Contains(weekday time.Weekday, clock string) bool {
	start, ok1 := weekMinutes(w.StartDay, w.StartTime)
	end, ok2 := weekMinutes(w.EndDay, w.EndTime)
	cur, ok3 := weekMinutes(int(weekday), clock)
	if !ok1 || !ok2 || !ok3 {
		return false
	}
	if start <= end {
		return cur >= start && cur <= end
	}
	return cur >= start || cur <= end
}

// IsWeekendShift 检查某日期的班次实例是否属于周末班
// 站点未配置周末窗口时一律返回 false
func IsWeekendShift(date string, shift *Shift, site *Site) bool {
	if site == nil || site.Weekend == nil || shift == nil {
		return false
	}
	weekday, err := WeekdayOf(date)
	if err != nil {
		return false
	}
	return site.Weekend.Contains(weekday, shift.StartTime)
}
