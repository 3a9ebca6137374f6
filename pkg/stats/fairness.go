// Package stats 提供排班结果的统计分析
package stats

import (
	"math"
	"sort"

	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
	"github.com/supereliguy/EWC-scheduling-site/pkg/scheduler/constraint"
)

// UserStat 单用户分配统计
type UserStat struct {
	UserID        int64   `json:"user_id"`
	Username      string  `json:"username"`
	ShiftCount    int     `json:"shift_count"`
	NightShifts   int     `json:"night_shifts"`
	WeekendShifts int     `json:"weekend_shifts"`
	TargetShifts  int     `json:"target_shifts"`
	Deviation     float64 `json:"deviation"` // 相对目标的偏差百分比
}

// FairnessMetrics 公平性指标
type FairnessMetrics struct {
	ShiftGini        float64            `json:"shift_gini"`         // 班数基尼系数 (0=完全公平)
	NightShiftGini   float64            `json:"night_shift_gini"`   // 夜班分配基尼系数
	WeekendShiftGini float64            `json:"weekend_shift_gini"` // 周末班分配基尼系数
	AvgShifts        float64            `json:"avg_shifts"`
	MaxShifts        int                `json:"max_shifts"`
	MinShifts        int                `json:"min_shifts"`
	UserStats        []UserStat         `json:"user_stats"`
	ShiftTypeShare   map[string]float64 `json:"shift_type_share"` // 班次名 → 占比
	OverallScore     float64            `json:"overall_score"`    // 0-100，越高越公平
}

// AnalyzeFairness 统计排班在人员之间的分布公平性
func AnalyzeFairness(sc *constraint.Context, assignments []*model.Assignment) *FairnessMetrics {
	m := &FairnessMetrics{ShiftTypeShare: make(map[string]float64)}
	if len(sc.Users) == 0 {
		m.OverallScore = 100
		return m
	}

	byUser := make(map[int64]*UserStat, len(sc.Users))
	for _, u := range sc.Users {
		byUser[u.ID] = &UserStat{
			UserID:       u.ID,
			Username:     u.Username,
			TargetShifts: sc.SettingsFor(u.ID).TargetShifts,
		}
	}

	typeCounts := make(map[string]int)
	total := 0
	for _, a := range assignments {
		stat, ok := byUser[a.UserID]
		if !ok {
			continue
		}
		shift := sc.Shift(a.ShiftID)
		if shift == nil {
			continue
		}
		stat.ShiftCount++
		total++
		typeCounts[shift.Name]++
		if shift.IsNight {
			stat.NightShifts++
		}
		if model.IsWeekendShift(a.Date, shift, sc.Site) {
			stat.WeekendShifts++
		}
	}

	counts := make([]float64, 0, len(byUser))
	nights := make([]float64, 0, len(byUser))
	weekends := make([]float64, 0, len(byUser))
	sum := 0
	min, max := math.MaxInt32, 0
	for _, u := range sc.Users {
		stat := byUser[u.ID]
		if stat.TargetShifts > 0 {
			stat.Deviation = float64(stat.ShiftCount-stat.TargetShifts) / float64(stat.TargetShifts) * 100
		}
		counts = append(counts, float64(stat.ShiftCount))
		nights = append(nights, float64(stat.NightShifts))
		weekends = append(weekends, float64(stat.WeekendShifts))
		sum += stat.ShiftCount
		if stat.ShiftCount < min {
			min = stat.ShiftCount
		}
		if stat.ShiftCount > max {
			max = stat.ShiftCount
		}
		m.UserStats = append(m.UserStats, *stat)
	}
	sort.Slice(m.UserStats, func(i, j int) bool { return m.UserStats[i].UserID < m.UserStats[j].UserID })

	for name, c := range typeCounts {
		if total > 0 {
			m.ShiftTypeShare[name] = float64(c) / float64(total) * 100
		}
	}

	m.ShiftGini = gini(counts)
	m.NightShiftGini = gini(nights)
	m.WeekendShiftGini = gini(weekends)
	m.AvgShifts = float64(sum) / float64(len(sc.Users))
	m.MinShifts = min
	m.MaxShifts = max
	if min == math.MaxInt32 {
		m.MinShifts = 0
	}

	// 三项基尼的加权汇总折算为百分制
	m.OverallScore = math.Max(0, 100*(1-(m.ShiftGini*0.5+m.NightShiftGini*0.25+m.WeekendShiftGini*0.25)))
	return m
}

// gini 基尼系数：0 完全公平，1 完全集中
func gini(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	weighted := 0.0
	for i, v := range sorted {
		sum += v
		weighted += float64(i+1) * v
	}
	if sum == 0 {
		return 0
	}
	return (2*weighted)/(float64(n)*sum) - float64(n+1)/float64(n)
}
