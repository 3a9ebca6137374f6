package scheduler

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/supereliguy/EWC-scheduling-site/pkg/errors"
	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
	"github.com/supereliguy/EWC-scheduling-site/pkg/scheduler/constraint"
	"github.com/supereliguy/EWC-scheduling-site/pkg/scheduler/solver"
)

// randomnessFor 随机度日程：每20轮一个周期
// 前四分之一纯贪心，中间一半轻度扰动，最后四分之一加大探索
func randomnessFor(iteration int) float64 {
	switch m := iteration % 20; {
	case m < 5:
		return 0
	case m < 15:
		return 0.25
	default:
		return 0.5
	}
}

// fairRescale 目标公平化预处理
// 总需求与总目标不等时，按 totalSlots/totalRequested 等比改写
// 每人的目标班数（四舍五入，至少1），让总目标对齐总供给
func fairRescale(sc *constraint.Context) *constraint.Context {
	totalSlots := 0
	for i := 0; i < sc.Days; i++ {
		weekday, err := model.WeekdayOf(sc.DateOf(i))
		if err != nil {
			continue
		}
		for _, s := range sc.Shifts {
			if s.ActiveOn(weekday) {
				totalSlots += s.RequiredStaff
			}
		}
	}

	totalRequested := 0
	for _, u := range sc.Users {
		totalRequested += sc.SettingsFor(u.ID).TargetShifts
	}

	if totalSlots <= 0 || totalRequested <= 0 || totalSlots == totalRequested {
		return sc
	}

	ratio := float64(totalSlots) / float64(totalRequested)
	rescaled := make(map[int64]*model.EffectiveSettings, len(sc.Users))
	for _, u := range sc.Users {
		s := *sc.SettingsFor(u.ID)
		target := int(math.Round(float64(s.TargetShifts) * ratio))
		if target < 1 {
			target = 1
		}
		s.TargetShifts = target
		rescaled[u.ID] = &s
	}
	return sc.WithSettings(rescaled)
}

// search 多轮重启搜索，保留累计分最高的一轮
// 显式迭代数按数量跑满；自动模式受墙钟与停滞阈值双重约束。
// 取消信号在迭代之间检查，已开始的迭代会跑完
func (e *Engine) search(ctx context.Context, sc *constraint.Context, input GenerateInput, runID string) (*solver.RunResult, int, error) {
	seed := e.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if input.Iterations > 0 && e.cfg.Workers > 1 {
		return e.searchParallel(ctx, sc, input, runID, seed)
	}

	strategies := solver.Strategies()
	var best *solver.RunResult
	iteration := 0
	stagnation := 0
	started := time.Now()

	for {
		if input.Iterations > 0 {
			if iteration >= input.Iterations {
				break
			}
		} else if time.Since(started) >= e.cfg.MaxTime || stagnation >= e.cfg.StagnationLimit {
			break
		}
		if ctx.Err() != nil {
			break
		}

		r := solver.Run(sc, solver.Options{
			Strategy:   strategies[iteration%len(strategies)],
			Randomness: randomnessFor(iteration),
			Force:      input.Force,
			Rng:        rand.New(rand.NewSource(seed + int64(iteration))),
		})
		if best == nil || r.Score > best.Score {
			best = r
			stagnation = 0
			e.log.IterationImproved(runID, iteration, r.Score, len(r.Conflicts))
		} else {
			stagnation++
		}
		iteration++

		if input.Progress != nil {
			input.Progress(iteration, input.Iterations)
		}
	}

	if best == nil {
		return nil, 0, errors.NoResult("未完成任何求解迭代")
	}
	return best, iteration, nil
}

// searchParallel 把显式迭代数摊给多个协程并行求解
// 每轮由种子+迭代号决定，结果与串行一致，只取全局最优
func (e *Engine) searchParallel(ctx context.Context, sc *constraint.Context, input GenerateInput, runID string, seed int64) (*solver.RunResult, int, error) {
	strategies := solver.Strategies()

	var (
		mu        sync.Mutex
		best      *solver.RunResult
		bestIter  int
		completed int
	)
	var wg sync.WaitGroup

	for w := 0; w < e.cfg.Workers; w++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for i := offset; i < input.Iterations; i += e.cfg.Workers {
				if ctx.Err() != nil {
					return
				}
				r := solver.Run(sc, solver.Options{
					Strategy:   strategies[i%len(strategies)],
					Randomness: randomnessFor(i),
					Force:      input.Force,
					Rng:        rand.New(rand.NewSource(seed + int64(i))),
				})

				mu.Lock()
				completed++
				done := completed
				if best == nil || r.Score > best.Score || (r.Score == best.Score && i < bestIter) {
					best = r
					bestIter = i
					e.log.IterationImproved(runID, i, r.Score, len(r.Conflicts))
				}
				mu.Unlock()

				if input.Progress != nil {
					input.Progress(done, input.Iterations)
				}
			}
		}(w)
	}
	wg.Wait()

	if best == nil {
		return nil, 0, errors.NoResult("未完成任何求解迭代")
	}
	return best, completed, nil
}
