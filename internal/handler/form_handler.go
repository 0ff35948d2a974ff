package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/evergreenwebsolutions/onboarding/internal/service"
	"github.com/evergreenwebsolutions/onboarding/internal/validate"
)

// FormHandler owns POST /api/form, the submission endpoint.
type FormHandler struct {
	svc *service.SubmissionService
	log *zap.Logger
}

func NewFormHandler(svc *service.SubmissionService, log *zap.Logger) *FormHandler {
	return &FormHandler{svc: svc, log: log}
}

func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var body any
	if err := readJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": validate.FieldErrors{"body": {"invalid JSON"}},
		})
		return
	}

	sub, fieldErrs, err := h.svc.Submit(r.Context(), body)
	if err != nil {
		h.log.Error("form submission failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if fieldErrs != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": fieldErrs})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"id": sub.ID})
}
