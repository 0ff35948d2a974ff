package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/evergreenwebsolutions/onboarding/internal/service"
)

// UploadHandler owns POST /api/upload, the relay between the browser
// and blob storage.
type UploadHandler struct {
	svc *service.UploadService
	log *zap.Logger
}

func NewUploadHandler(svc *service.UploadService, log *zap.Logger) *UploadHandler {
	return &UploadHandler{svc: svc, log: log}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Max 12MB
	r.ParseMultipartForm(12 << 20)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	fd, err := h.svc.Upload(r.Context(), header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		h.log.Error("file upload failed",
			zap.String("name", header.Filename),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, fd)
}
