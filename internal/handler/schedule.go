package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/supereliguy/EWC-scheduling-site/internal/metrics"
	"github.com/supereliguy/EWC-scheduling-site/pkg/errors"
	"github.com/supereliguy/EWC-scheduling-site/pkg/model"
	"github.com/supereliguy/EWC-scheduling-site/pkg/scheduler"
	"github.com/supereliguy/EWC-scheduling-site/pkg/validator"
)

// GenerateRequest 排班生成请求
type GenerateRequest struct {
	SiteID     int64  `json:"site_id"`
	StartDate  string `json:"start_date"`
	Days       int    `json:"days"`
	Force      bool   `json:"force"`
	Iterations int    `json:"iterations,omitempty"`
}

// Generate 生成排班
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.InvalidInput("body", "请求体不是合法JSON"))
		return
	}
	if req.SiteID <= 0 {
		writeError(w, errors.InvalidInput("site_id", "必须为正整数"))
		return
	}

	started := time.Now()
	result, err := h.engine.Generate(r.Context(), scheduler.GenerateInput{
		SiteID:     req.SiteID,
		StartDate:  req.StartDate,
		Days:       req.Days,
		Force:      req.Force,
		Iterations: req.Iterations,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	siteLabel := strconv.FormatInt(req.SiteID, 10)
	metrics.RecordGeneration(siteLabel, result.Success, result.Iterations, time.Since(started))
	metrics.RecordForcedAssignments(siteLabel, countForced(result.Assignments))
	metrics.SetSolution(siteLabel, result.Score, len(result.Conflicts))

	writeJSON(w, http.StatusOK, result)
}

// ValidateRequest 排班验证请求
type ValidateRequest struct {
	SiteID    int64  `json:"site_id"`
	StartDate string `json:"start_date"`
	Days      int    `json:"days"`
	// Assignments 不提供时验证库中当前排班
	Assignments []*model.Assignment `json:"assignments,omitempty"`
}

// ValidateResponse 排班验证响应
type ValidateResponse struct {
	Report validator.Report `json:"report"`
}

// Validate 验证排班
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.InvalidInput("body", "请求体不是合法JSON"))
		return
	}
	if req.SiteID <= 0 {
		writeError(w, errors.InvalidInput("site_id", "必须为正整数"))
		return
	}

	report, err := h.engine.Validate(r.Context(), req.SiteID, req.StartDate, req.Days, req.Assignments)
	if err != nil {
		writeError(w, err)
		return
	}

	hasErrors := false
	for _, entry := range report {
		if entry.Status == validator.StatusError {
			hasErrors = true
			break
		}
	}
	metrics.RecordValidation(strconv.FormatInt(req.SiteID, 10), hasErrors)

	writeJSON(w, http.StatusOK, ValidateResponse{Report: report})
}

func countForced(assignments []*model.Assignment) int {
	n := 0
	for _, a := range assignments {
		if a.IsHit {
			n++
		}
	}
	return n
}
