// Package handler 提供HTTP请求处理器
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/supereliguy/EWC-scheduling-site/pkg/errors"
	"github.com/supereliguy/EWC-scheduling-site/pkg/logger"
	"github.com/supereliguy/EWC-scheduling-site/pkg/scheduler"
)

// HealthChecker 依赖健康检查
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handler 排班服务处理器
type Handler struct {
	engine *scheduler.Engine
	store  scheduler.Store
	health HealthChecker
}

// New 创建处理器
func New(engine *scheduler.Engine, store scheduler.Store, health HealthChecker) *Handler {
	return &Handler{engine: engine, store: store, health: health}
}

// Register 注册全部路由
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/api/v1/schedule/generate", h.Generate)
	mux.HandleFunc("/api/v1/schedule/validate", h.Validate)
	mux.HandleFunc("/api/v1/schedule/stats", h.Stats)
	mux.HandleFunc("/api/v1/rules", h.Rules)
}

// Health 健康检查
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.Health(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON 输出JSON响应
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.WithError(err).Msg("写入响应失败")
	}
}

// errorResponse 错误响应体
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError 按错误码映射HTTP状态输出错误
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errors.GetHTTPStatus(err), errorResponse{
		Error:   string(errors.GetCode(err)),
		Message: err.Error(),
	})
}

// methodNotAllowed 非法方法
func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
		Error:   "method_not_allowed",
		Message: "不支持的请求方法",
	})
}
