package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/supereliguy/EWC-scheduling-site/pkg/errors"
	"github.com/supereliguy/EWC-scheduling-site/pkg/logger"
	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
	"github.com/supereliguy/EWC-scheduling-site/pkg/scheduler/solver"
	"github.com/supereliguy/EWC-scheduling-site/pkg/validator"
)

// Config 引擎配置
type Config struct {
	// MaxTime 未指定迭代数时的墙钟上限
	MaxTime time.Duration
	// StagnationLimit 未指定迭代数时连续无改进的停止阈值
	StagnationLimit int
	// Workers 显式迭代数时的并行求解协程数，<=1 为串行
	Workers int
	// Seed 随机种子，0 表示按当前时间取
	Seed int64
}

// DefaultConfig 返回默认引擎配置
func DefaultConfig() Config {
	return Config{
		MaxTime:         3 * time.Second,
		StagnationLimit: 20,
		Workers:         1,
	}
}

// Engine 排班引擎
type Engine struct {
	store Store
	cfg   Config
	log   *logger.EngineLogger
}

// NewEngine 创建排班引擎
func NewEngine(store Store, cfg Config) *Engine {
	if cfg.MaxTime <= 0 {
		cfg.MaxTime = 3 * time.Second
	}
	if cfg.StagnationLimit <= 0 {
		cfg.StagnationLimit = 20
	}
	return &Engine{
		store: store,
		cfg:   cfg,
		log:   logger.NewEngineLogger(),
	}
}

// GenerateInput 一次生成调用的参数
type GenerateInput struct {
	SiteID    int64  `json:"site_id"`
	StartDate string `json:"start_date"`
	Days      int    `json:"days"`
	// Force 无合格候选时牺牲软违规用户强排，且无论是否干净都持久化
	Force bool `json:"force"`
	// Iterations 显式迭代数，0 表示按时间与停滞自动收敛
	Iterations int `json:"iterations,omitempty"`
	// Progress 每轮迭代之间回调一次，自动模式下 total 为 0
	Progress func(done, total int) `json:"-"`
}

// GenerateResult 生成结果
type GenerateResult struct {
	RunID       string                 `json:"run_id"`
	Success     bool                   `json:"success"`
	Persisted   bool                   `json:"persisted"`
	Score       int                    `json:"score"`
	Iterations  int                    `json:"iterations"`
	Assignments []*model.Assignment    `json:"assignments"`
	Conflicts   []solver.ConflictEntry `json:"conflict_report"`
	Rejections  map[string]int         `json:"rejections,omitempty"`
}

// Generate 生成排班：装载上下文、目标公平化、多轮重启搜索、
// 择优持久化。force=false 且存在冲突时不落库，只返回冲突报告
func (e *Engine) Generate(ctx context.Context, input GenerateInput) (*GenerateResult, error) {
	runID := uuid.New().String()
	started := time.Now()
	e.log.StartGenerate(runID, input.SiteID, input.StartDate, input.Days, input.Force)

	sc, err := LoadContext(ctx, e.store, input.SiteID, input.StartDate, input.Days)
	if err != nil {
		return nil, err
	}
	sc = fairRescale(sc)

	best, iterations, err := e.search(ctx, sc, input, runID)
	if err != nil {
		return nil, err
	}

	for _, a := range best.Assignments {
		if !a.IsHit {
			continue
		}
		shiftName, username := "", ""
		if s := sc.Shift(a.ShiftID); s != nil {
			shiftName = s.Name
		}
		if u := sc.User(a.UserID); u != nil {
			username = u.Username
		}
		e.log.ForcedAssignment(a.Date, shiftName, username, a.HitReason)
	}

	success := len(best.Conflicts) == 0
	persisted := false
	if input.Force || success {
		if err := e.store.ReplaceAssignments(ctx, input.SiteID, sc.StartDate, sc.EndDate, nonLocked(best.Assignments)); err != nil {
			return nil, errors.DatabaseError("替换排班", err)
		}
		persisted = true
	}

	e.log.GenerateComplete(runID, iterations, time.Since(started), best.Score, len(best.Conflicts), persisted)
	return &GenerateResult{
		RunID:       runID,
		Success:     success,
		Persisted:   persisted,
		Score:       best.Score,
		Iterations:  iterations,
		Assignments: best.Assignments,
		Conflicts:   best.Conflicts,
		Rejections:  best.Rejections,
	}, nil
}

// Validate 验证排班：不传 assignments 时验证库中当前排班
// 约束问题只进入报告，仅上下文装载失败才返回错误
func (e *Engine) Validate(ctx context.Context, siteID int64, startDate string, days int, assignments []*model.Assignment) (validator.Report, error) {
	sc, err := LoadContext(ctx, e.store, siteID, startDate, days)
	if err != nil {
		return nil, err
	}
	report := validator.Run(sc, assignments)

	errCount, warnCount := 0, 0
	for _, entry := range report {
		switch entry.Status {
		case validator.StatusError:
			errCount++
		case validator.StatusWarning:
			warnCount++
		}
	}
	e.log.ValidationComplete(siteID, len(report), errCount, warnCount)
	return report, nil
}

// nonLocked 过滤出需要写库的新排班（锁定记录已持久，不再动）
func nonLocked(assignments []*model.Assignment) []*model.Assignment {
	out := make([]*model.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if !a.IsLocked {
			out = append(out, a)
		}
	}
	return out
}
