package solver

import (
	"math/rand"
	"sort"

	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
	"github.com/supereliguy/EWC-scheduling-site/pkg/scheduler/constraint"
)

// 填不上与强制填入的总分惩罚
const (
	unfilledPenalty = 10000
	forcedPenalty   = 5000
)

// Options 单轮求解参数
type Options struct {
	Strategy   Strategy
	Randomness float64 // 0=纯贪心；>0 时从头部候选池随机取
	Force      bool    // 无合格候选时牺牲软违规用户强排
	Rng        *rand.Rand
}

// SlotFailure 某用户对某班位的拒绝原因
type SlotFailure struct {
	Username string `json:"username"`
	Reason   string `json:"reason"`
}

// ConflictEntry 冲突报告条目：强排记录或整位失败记录
type ConflictEntry struct {
	Date      string        `json:"date"`
	ShiftID   int64         `json:"shift_id"`
	ShiftName string        `json:"shift_name"`
	UserID    int64         `json:"user_id,omitempty"`
	Username  string        `json:"username,omitempty"`
	Reason    string        `json:"reason,omitempty"`
	Failures  []SlotFailure `json:"failures,omitempty"`
}

// RunResult 单轮求解结果
type RunResult struct {
	Assignments []*model.Assignment
	Score       int
	Conflicts   []ConflictEntry
	// 拒绝原因 → 次数，仅供诊断
	Rejections map[string]int
}

type scored struct {
	user      *model.User
	cand      *constraint.Candidate
	score     int
	fillFirst bool
}

// Run 执行一轮贪心填充
// 锁定排班原样保留并计入状态，新排班以草稿状态产出
func Run(sc *constraint.Context, opts Options) *RunResult {
	rng := opts.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	ix := constraint.NewAssignmentIndex()
	ix.Seed(sc.PrevAssignments)
	ix.Seed(sc.LockedAssignments)

	tallies := make(map[int64]*constraint.Tally)
	tallyOf := func(userID int64) *constraint.Tally {
		t, ok := tallies[userID]
		if !ok {
			t = &constraint.Tally{}
			tallies[userID] = t
		}
		return t
	}

	result := &RunResult{Rejections: make(map[string]int)}
	workingOn := make(map[string]map[int64]bool)
	markWorking := func(date string, userID int64) {
		if workingOn[date] == nil {
			workingOn[date] = make(map[int64]bool)
		}
		workingOn[date][userID] = true
	}

	// 锁定排班先入场：占用当天名额并计入累计
	for _, a := range sc.LockedAssignments {
		locked := a.Clone()
		locked.IsLocked = true
		result.Assignments = append(result.Assignments, locked)
		markWorking(a.Date, a.UserID)
		t := tallyOf(a.UserID)
		t.TotalAssigned++
		if s := sc.Shift(a.ShiftID); s != nil && model.IsWeekendShift(a.Date, s, sc.Site) {
			t.WeekendShifts++
		}
	}

	// 每轮独立的用户乱序，打破同分时的固定偏向
	users := make([]*model.User, len(sc.Users))
	copy(users, sc.Users)
	rng.Shuffle(len(users), func(i, j int) {
		users[i], users[j] = users[j], users[i]
	})

	slots := OrderSlots(sc, BuildSlots(sc), opts.Strategy, rng)

	for _, slot := range slots {
		var cands []scored
		for _, u := range users {
			if u.IsManual || workingOn[slot.Date][u.ID] {
				continue
			}
			c := &constraint.Candidate{
				User:     u,
				Shift:    slot.Shift,
				Date:     slot.Date,
				Settings: sc.SettingsFor(u.ID),
				Request:  sc.RequestFor(slot.Date, u.ID),
				Tally:    tallyOf(u.ID),
			}
			if ok, _ := constraint.Check(c, ix, sc); ok {
				cands = append(cands, scored{
					user:      u,
					cand:      c,
					score:     constraint.Score(c, ix, sc),
					fillFirst: u.FillFirst,
				})
			}
		}

		if len(cands) > 0 {
			winner := pick(cands, opts.Randomness, rng)
			assign(sc, result, ix, winner.cand, false, "")
			markWorking(slot.Date, winner.user.ID)
			result.Score += winner.score
			continue
		}

		if opts.Force {
			if victim, reason := pickVictim(sc, ix, tallyOf, users, workingOn, slot); victim != nil {
				c := &constraint.Candidate{
					User:     victim,
					Shift:    slot.Shift,
					Date:     slot.Date,
					Settings: sc.SettingsFor(victim.ID),
					Tally:    tallyOf(victim.ID),
				}
				assign(sc, result, ix, c, true, reason)
				markWorking(slot.Date, victim.ID)
				c.Tally.Hits++
				result.Score -= forcedPenalty
				result.Conflicts = append(result.Conflicts, ConflictEntry{
					Date:      slot.Date,
					ShiftID:   slot.Shift.ID,
					ShiftName: slot.Shift.Name,
					UserID:    victim.ID,
					Username:  victim.Username,
					Reason:    "Forced: " + reason,
				})
				continue
			}
		}

		// 班位填不上：用全硬视角暴露真实拦截规则
		failures := slotFailures(sc, ix, tallyOf, users, workingOn, slot)
		for _, f := range failures {
			result.Rejections[f.Reason]++
		}
		result.Conflicts = append(result.Conflicts, ConflictEntry{
			Date:      slot.Date,
			ShiftID:   slot.Shift.ID,
			ShiftName: slot.Shift.Name,
			Failures:  failures,
		})
		result.Score -= unfilledPenalty
	}

	return result
}

// pick 从排序后的候选里选出赢家
// 随机度>0时从头部候选池均匀取样，但取样池绝不跨越优先补位边界：
// 排在前面的 fill_first 用户不会被普通用户顶掉
func pick(cands []scored, randomness float64, rng *rand.Rand) scored {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].fillFirst != cands[j].fillFirst {
			return cands[i].fillFirst
		}
		return cands[i].score > cands[j].score
	})

	if randomness <= 0 {
		return cands[0]
	}

	pool := 1 + int(randomness*4)
	if pool > len(cands) {
		pool = len(cands)
	}
	for i := 1; i < pool; i++ {
		if cands[i].fillFirst != cands[0].fillFirst {
			pool = i
			break
		}
	}
	return cands[rng.Intn(pool)]
}

// assign 落位一条新排班并推进索引与累计
func assign(sc *constraint.Context, result *RunResult, ix *constraint.AssignmentIndex, c *constraint.Candidate, hit bool, hitReason string) {
	a := &model.Assignment{
		SiteID:    sc.SiteID,
		Date:      c.Date,
		ShiftID:   c.Shift.ID,
		UserID:    c.User.ID,
		IsHit:     hit,
		HitReason: hitReason,
		Status:    model.AssignmentDraft,
	}
	result.Assignments = append(result.Assignments, a)
	ix.Add(a)
	c.Tally.TotalAssigned++
	if model.IsWeekendShift(c.Date, c.Shift, sc.Site) {
		c.Tally.WeekendShifts++
	}
}

type sacrifice struct {
	user      *model.User
	reason    string
	firstHard bool
	hits      int
}

// pickVictim 强制模式下挑选牺牲者
// 仅在不可侵犯类别（请求/可用性/上限）之外还有违规的用户可被
// 牺牲；排序偏好：首条违规可牺牲 → 类别优先级数值大（越不重要）
// → 被强排次数少。全员只剩不可侵犯违规时返回 nil
func pickVictim(sc *constraint.Context, ix *constraint.AssignmentIndex, tallyOf func(int64) *constraint.Tally, users []*model.User, workingOn map[string]map[int64]bool, slot Slot) (*model.User, string) {
	var pool []sacrifice
	for _, u := range users {
		if u.IsManual || workingOn[slot.Date][u.ID] {
			continue
		}
		c := &constraint.Candidate{
			User:     u,
			Shift:    slot.Shift,
			Date:     slot.Date,
			Settings: sc.SettingsFor(u.ID),
			Request:  sc.RequestFor(slot.Date, u.ID),
			Tally:    tallyOf(u.ID),
		}
		vs := constraint.Violations(c, ix, sc)
		if len(vs) == 0 {
			continue
		}
		sacrificeable := false
		for _, v := range vs {
			if !constraint.Inviolable(v.Rule) {
				sacrificeable = true
				break
			}
		}
		if !sacrificeable {
			continue
		}
		pool = append(pool, sacrifice{
			user:      u,
			reason:    vs[0].Reason,
			firstHard: constraint.Inviolable(vs[0].Rule),
			hits:      tallyOf(u.ID).Hits,
		})
	}
	if len(pool) == 0 {
		return nil, ""
	}

	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].firstHard != pool[j].firstHard {
			return !pool[i].firstHard
		}
		pi := pool[i].user.CategoryPriority
		pj := pool[j].user.CategoryPriority
		if pi != pj {
			return pi > pj
		}
		return pool[i].hits < pool[j].hits
	})
	return pool[0].user, pool[0].reason
}

// slotFailures 收集每个未上班用户对该班位的拒绝原因
func slotFailures(sc *constraint.Context, ix *constraint.AssignmentIndex, tallyOf func(int64) *constraint.Tally, users []*model.User, workingOn map[string]map[int64]bool, slot Slot) []SlotFailure {
	var out []SlotFailure
	for _, u := range users {
		if u.IsManual || workingOn[slot.Date][u.ID] {
			continue
		}
		c := &constraint.Candidate{
			User:     u,
			Shift:    slot.Shift,
			Date:     slot.Date,
			Settings: sc.SettingsFor(u.ID),
			Request:  sc.RequestFor(slot.Date, u.ID),
			Tally:    tallyOf(u.ID),
		}
		reason := constraint.FirstFailure(c, ix, sc)
		if reason == "" {
			continue
		}
		out = append(out, SlotFailure{Username: u.Username, Reason: reason})
	}
	if len(out) == 0 {
		out = append(out, SlotFailure{Reason: "No available users (all working)"})
	}
	return out
}
