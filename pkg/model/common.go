// Package model 定义排班引擎的核心数据模型
package model

import (
	"fmt"
	"time"
)

// DateLayout 日期格式
const DateLayout = "2006-01-02"

// ClockLayout 时刻格式
const ClockLayout = "15:04"

// ParseDate 解析 YYYY-MM-DD 日期（统一使用 UTC，避免夏令时引入小数天差）
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("无效日期 '%s': %w", date, err)
	}
	return t, nil
}

// FormatDate 格式化日期为 YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// AddDays 日期偏移 n 天
func AddDays(date string, n int) string {
	t, err := ParseDate(date)
	if err != nil {
		return ""
	}
	return FormatDate(t.AddDate(0, 0, n))
}

// DaysBetween 计算 from 到 to 的间隔天数（to 晚于 from 时为正）
func DaysBetween(from, to string) float64 {
	a, err1 := ParseDate(from)
	b, err2 := ParseDate(to)
	if err1 != nil || err2 != nil {
		return 0
	}
	return b.Sub(a).Hours() / 24
}

// WeekdayOf 返回日期的星期（0=周日..6=周六）
func WeekdayOf(date string) (time.Weekday, error) {
	t, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}

// ParseClock 解析 HH:MM 时刻，返回自零点起的分钟数
func ParseClock(clock string) (int, bool) {
	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
