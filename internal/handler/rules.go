package handler

import (
	"net/http"

	"github.com/supereliguy/EWC-scheduling-site/internal/constraints"
)

// Rules 返回规则目录
func (h *Handler) Rules(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, constraints.LibraryResponse{Library: constraints.GetLibrary()})
}
