// Package solver 实现单轮贪心填充：按策略排序班位，
// 逐位挑选通过双向约束检查的最高分候选人
package solver

import (
	"math/rand"
	"sort"

	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
	"github.com/supereliguy/EWC-scheduling-site/pkg/scheduler/constraint"
)

// Strategy 班位排序策略
type Strategy string

const (
	StrategySequential    Strategy = "sequential"     // 按日期自然顺序
	StrategyReverse       Strategy = "reverse"        // 日期倒序
	StrategyRandom        Strategy = "random"         // 全量乱序
	StrategyWeekendsFirst Strategy = "weekends_first" // 周末班位优先
	StrategyNightsFirst   Strategy = "nights_first"   // 夜班班位优先
)

// Strategies 返回全部策略，重启控制器按此顺序轮换
func Strategies() []Strategy {
	return []Strategy{
		StrategySequential,
		StrategyReverse,
		StrategyRandom,
		StrategyWeekendsFirst,
		StrategyNightsFirst,
	}
}

// Slot 一个待填的班位
type Slot struct {
	Date  string
	Shift *model.Shift
}

// BuildSlots 物化目标区间内的全部待填班位
// 每个班次每天的需求量扣除已锁定的排班数
func BuildSlots(sc *constraint.Context) []Slot {
	lockedFill := make(map[string]map[int64]int)
	for _, a := range sc.LockedAssignments {
		if lockedFill[a.Date] == nil {
			lockedFill[a.Date] = make(map[int64]int)
		}
		lockedFill[a.Date][a.ShiftID]++
	}

	var slots []Slot
	for i := 0; i < sc.Days; i++ {
		date := sc.DateOf(i)
		weekday, err := model.WeekdayOf(date)
		if err != nil {
			continue
		}
		for _, s := range sc.Shifts {
			if !s.ActiveOn(weekday) {
				continue
			}
			needed := s.RequiredStaff - lockedFill[date][s.ID]
			for k := 0; k < needed; k++ {
				slots = append(slots, Slot{Date: date, Shift: s})
			}
		}
	}
	return slots
}

// OrderSlots 按策略重排班位，返回新切片，原切片不动
func OrderSlots(sc *constraint.Context, slots []Slot, strategy Strategy, rng *rand.Rand) []Slot {
	out := make([]Slot, len(slots))
	copy(out, slots)

	switch strategy {
	case StrategyReverse:
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	case StrategyRandom:
		rng.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
	case StrategyWeekendsFirst:
		sort.SliceStable(out, func(i, j int) bool {
			wi := model.IsWeekendShift(out[i].Date, out[i].Shift, sc.Site)
			wj := model.IsWeekendShift(out[j].Date, out[j].Shift, sc.Site)
			return wi && !wj
		})
	case StrategyNightsFirst:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Shift.IsNight && !out[j].Shift.IsNight
		})
	}
	return out
}
