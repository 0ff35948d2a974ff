package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/evergreenwebsolutions/onboarding/internal/middleware"
	"github.com/evergreenwebsolutions/onboarding/internal/models"
	"github.com/evergreenwebsolutions/onboarding/internal/service"
)

// SubmissionHandler owns GET /api/submissions (admin listing) and its
// CORS preflight. The listing route sits behind the auth gate and the
// origin allow-list; the preflight only behind the allow-list, since
// browsers send no credentials on preflight probes.
type SubmissionHandler struct {
	svc     *service.SubmissionService
	origins middleware.Origins
	log     *zap.Logger
}

func NewSubmissionHandler(svc *service.SubmissionService, origins middleware.Origins, log *zap.Logger) *SubmissionHandler {
	return &SubmissionHandler{svc: svc, origins: origins, log: log}
}

func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.svc.List(r.Context())
	if err != nil {
		h.log.Error("failed to fetch submissions", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if subs == nil {
		subs = []models.Submission{}
	}
	writeJSON(w, http.StatusOK, subs)
}

func (h *SubmissionHandler) Preflight(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "86400")

	if origin := r.Header.Get("Origin"); origin != "" {
		if !h.origins.Allowed(origin) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
	}
	w.WriteHeader(http.StatusNoContent)
}
