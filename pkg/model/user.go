// Package model 定义排班引擎的核心数据模型
package model

import (
	"fmt"
	"time"
)

// User 参与排班的人员
type User struct {
	ID               int64  `json:"id" db:"id"`
	Username         string `json:"username" db:"username"`
	CategoryPriority int    `json:"category_priority" db:"category_priority"` // 1=最重要，数值越大越次要，默认10
	CategoryName     string `json:"category_name,omitempty" db:"category_name"`
	IsManual         bool   `json:"is_manual" db:"is_manual"`   // 仅手工排班，自动排班与牺牲池均排除
	FillFirst        bool   `json:"fill_first" db:"fill_first"` // 优先补位，无视分数先于普通人员
}

// Availability 可用性规则
type Availability struct {
	BlockedDays      []int    `json:"blocked_days"`       // 整天封锁的星期
	BlockedShiftDays []string `json:"blocked_shift_days"` // "{shiftId}-{weekday}" 组合封锁
	BlockedShifts    []int64  `json:"blocked_shifts"`     // 旧格式：全局封锁的班次
}

// ShiftDayKey 生成班次-星期组合键
func ShiftDayKey(shiftID int64, weekday time.Weekday) string {
	return fmt.Sprintf("%d-%d", shiftID, int(weekday))
}

// ShiftRef 班次偏好排序引用（旧数据只有名称，新数据有ID）
type ShiftRef struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// SettingsDefaults 全局默认设置
type SettingsDefaults struct {
	MaxConsecutive       int `json:"max_consecutive_shifts"`
	MinConsecutiveNights int `json:"min_consecutive_nights"`
	MinDaysOff           int `json:"min_days_off"`
	MinRestHours         int `json:"min_rest_hours"`
	TargetShifts         int `json:"target_shifts"`
	TargetVariance       int `json:"target_shifts_variance"`
	PreferredBlockSize   int `json:"preferred_block_size"`
}

// DefaultSettings 返回出厂默认设置
func DefaultSettings() SettingsDefaults {
	return SettingsDefaults{
		MaxConsecutive:       5,
		MinConsecutiveNights: 2,
		MinDaysOff:           2,
		MinRestHours:         12,
		TargetShifts:         20,
		TargetVariance:       2,
		PreferredBlockSize:   3,
	}
}

// UserSettings 用户级设置覆盖（nil 字段回落到全局默认）
type UserSettings struct {
	UserID               int64         `json:"user_id" db:"user_id"`
	MaxConsecutive       *int          `json:"max_consecutive_shifts,omitempty"`
	MinConsecutiveNights *int          `json:"min_consecutive_nights,omitempty"`
	MinDaysOff           *int          `json:"min_days_off,omitempty"`
	MinRestHours         *int          `json:"min_rest_hours,omitempty"`
	TargetShifts         *int          `json:"target_shifts,omitempty"`
	TargetVariance       *int          `json:"target_shifts_variance,omitempty"`
	PreferredBlockSize   *int          `json:"preferred_block_size,omitempty"`
	NoPreference         *bool         `json:"no_preference,omitempty"`
	ShiftRanking         []ShiftRef    `json:"shift_ranking,omitempty"`
	Availability         *Availability `json:"availability_rules,omitempty"`
}

// EffectiveSettings 合并后的生效设置
// 由上下文装载器一次性构造，所有字段均已补全默认值，下游不再判空
type EffectiveSettings struct {
	MaxConsecutive       int
	MinConsecutiveNights int
	MinDaysOff           int
	MinRestHours         int
	TargetShifts         int
	TargetVariance       int
	PreferredBlockSize   int
	NoPreference         bool
	ShiftRanking         []ShiftRef

	BlockedDays      map[int]bool
	BlockedShiftDays map[string]bool
	BlockedShifts    map[int64]bool
}

// MaxShifts 返回硬上限 target + variance
func (s *EffectiveSettings) MaxShifts() int {
	return s.TargetShifts + s.TargetVariance
}

// RankIndex 在偏好排序中查找班次（先按ID，旧数据回落到名称），未命中返回 -1
func (s *EffectiveSettings) RankIndex(shift *Shift) int {
	if shift == nil {
		return -1
	}
	for i, ref := range s.ShiftRanking {
		if ref.ID != 0 && ref.ID == shift.ID {
			return i
		}
	}
	for i, ref := range s.ShiftRanking {
		if ref.ID == 0 && ref.Name != "" && ref.Name == shift.Name {
			return i
		}
	}
	return -1
}

// MergeSettings 逐字段合并用户覆盖与全局默认
func MergeSettings(override *UserSettings, defaults SettingsDefaults) *EffectiveSettings {
	eff := &EffectiveSettings{
		MaxConsecutive:       defaults.MaxConsecutive,
		MinConsecutiveNights: defaults.MinConsecutiveNights,
		MinDaysOff:           defaults.MinDaysOff,
		MinRestHours:         defaults.MinRestHours,
		TargetShifts:         defaults.TargetShifts,
		TargetVariance:       defaults.TargetVariance,
		PreferredBlockSize:   defaults.PreferredBlockSize,
		BlockedDays:          make(map[int]bool),
		BlockedShiftDays:     make(map[string]bool),
		BlockedShifts:        make(map[int64]bool),
	}

	if override == nil {
		return eff
	}

	if override.MaxConsecutive != nil {
		eff.MaxConsecutive = *override.MaxConsecutive
	}
	if override.MinConsecutiveNights != nil {
		eff.MinConsecutiveNights = *override.MinConsecutiveNights
	}
	if override.MinDaysOff != nil {
		eff.MinDaysOff = *override.MinDaysOff
	}
	if override.MinRestHours != nil {
		eff.MinRestHours = *override.MinRestHours
	}
	if override.TargetShifts != nil {
		eff.TargetShifts = *override.TargetShifts
	}
	if override.TargetVariance != nil {
		eff.TargetVariance = *override.TargetVariance
	}
	if override.PreferredBlockSize != nil {
		eff.PreferredBlockSize = *override.PreferredBlockSize
	}
	if override.NoPreference != nil {
		eff.NoPreference = *override.NoPreference
	}
	eff.ShiftRanking = override.ShiftRanking

	if override.Availability != nil {
		for _, d := range override.Availability.BlockedDays {
			eff.BlockedDays[d] = true
		}
		for _, k := range override.Availability.BlockedShiftDays {
			eff.BlockedShiftDays[k] = true
		}
		for _, id := range override.Availability.BlockedShifts {
			eff.BlockedShifts[id] = true
		}
	}

	return eff
}
