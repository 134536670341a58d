package handler

import (
	"log/slog"
	"net/http"

	"filevault/internal/domain/services"
	"filevault/internal/httputil"
)

// UsageHandler serves storage usage statistics
type UsageHandler struct {
	storageService services.StorageService
	logger         *slog.Logger
}

// NewUsageHandler creates a new usage handler
func NewUsageHandler(storageService services.StorageService, logger *slog.Logger) *UsageHandler {
	return &UsageHandler{
		storageService: storageService,
		logger:         logger,
	}
}

// GetUsage returns totals and the per-category breakdown
// GET /api/usage
func (h *UsageHandler) GetUsage(w http.ResponseWriter, r *http.Request) {
	usage, err := h.storageService.ComputeUsage(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, usage)
}
