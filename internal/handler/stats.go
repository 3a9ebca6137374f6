package handler

import (
	"net/http"
	"strconv"

	"github.com/supereliguy/EWC-scheduling-site/internal/metrics"
	"github.com/supereliguy/EWC-scheduling-site/pkg/errors"
	"github.com/supereliguy/EWC-scheduling-site/pkg/scheduler"
	"github.com/supereliguy/EWC-scheduling-site/pkg/stats"
)

// StatsResponse 排班统计响应
type StatsResponse struct {
	Fairness *stats.FairnessMetrics `json:"fairness"`
	Coverage *stats.CoverageMetrics `json:"coverage"`
}

// Stats 统计库中当前排班的公平性与覆盖率
// 查询参数：site_id、start_date、days
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	q := r.URL.Query()
	siteID, err := strconv.ParseInt(q.Get("site_id"), 10, 64)
	if err != nil || siteID <= 0 {
		writeError(w, errors.InvalidInput("site_id", "必须为正整数"))
		return
	}
	days, err := strconv.Atoi(q.Get("days"))
	if err != nil {
		writeError(w, errors.InvalidInput("days", "必须为整数"))
		return
	}
	startDate := q.Get("start_date")

	sc, err := scheduler.LoadContext(r.Context(), h.store, siteID, startDate, days)
	if err != nil {
		writeError(w, err)
		return
	}

	fairness := stats.AnalyzeFairness(sc, sc.CurrentAssignments)
	coverage := stats.AnalyzeCoverage(sc, sc.CurrentAssignments)

	siteLabel := strconv.FormatInt(siteID, 10)
	metrics.SetFairnessGini(siteLabel, "shifts", fairness.ShiftGini)
	metrics.SetFairnessGini(siteLabel, "nights", fairness.NightShiftGini)
	metrics.SetFairnessGini(siteLabel, "weekends", fairness.WeekendShiftGini)
	metrics.SetCoverageRate(siteLabel, coverage.OverallCoverage)

	writeJSON(w, http.StatusOK, StatsResponse{Fairness: fairness, Coverage: coverage})
}
