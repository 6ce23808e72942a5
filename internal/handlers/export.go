package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lostfound/moderation/internal/services"
	"github.com/lostfound/moderation/internal/storage"
)

// ExportHandler writes and serves moderation snapshots.
type ExportHandler struct {
	exports *services.ExportService
}

func NewExportHandler(exports *services.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// ExportListResponse is returned by GET /api/admin/exports.
type ExportListResponse struct {
	Exports []storage.ObjectInfo `json:"exports"`
}

// ExportRouter registers snapshot routes on the given router.
func ExportRouter(r chi.Router, exports *services.ExportService) {
	handler := NewExportHandler(exports)

	r.Get("/", handler.ListExports)
	r.Post("/", handler.CreateExport)
	r.Get("/{name}", handler.GetExport)
}

func (h *ExportHandler) CreateExport(w http.ResponseWriter, r *http.Request) {
	result, err := h.exports.Export(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "export failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "failed to export snapshot")
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *ExportHandler) ListExports(w http.ResponseWriter, r *http.Request) {
	objects, err := h.exports.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list exports")
		return
	}
	if objects == nil {
		objects = []storage.ObjectInfo{}
	}
	writeJSON(w, http.StatusOK, ExportListResponse{Exports: objects})
}

func (h *ExportHandler) GetExport(w http.ResponseWriter, r *http.Request) {
	rc, err := h.exports.Open(r.Context(), chi.URLParam(r, "name"))
	switch {
	case errors.Is(err, services.ErrInvalidExportName):
		writeError(w, http.StatusBadRequest, "invalid export name")
		return
	case errors.Is(err, storage.ErrObjectNotFound):
		writeError(w, http.StatusNotFound, "export not found")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "failed to read export")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, rc)
}
