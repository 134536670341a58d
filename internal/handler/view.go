package handler

import (
	"log/slog"
	"net/http"

	"filevault/internal/domain/models"
	"filevault/internal/domain/services"
	"filevault/internal/httputil"
)

// ViewHandler serves the dashboard's item listings and search
type ViewHandler struct {
	viewService   services.ViewService
	searchService services.SearchService
	logger        *slog.Logger
}

// NewViewHandler creates a new view handler
func NewViewHandler(
	viewService services.ViewService,
	searchService services.SearchService,
	logger *slog.Logger,
) *ViewHandler {
	return &ViewHandler{
		viewService:   viewService,
		searchService: searchService,
		logger:        logger,
	}
}

// ListItems returns items matching the named view
// GET /api/items?view=all|starred|shared|trash|recent&folder_id=
func (h *ViewHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	view, err := models.ParseView(r.URL.Query().Get("view"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var folderID *string
	if v := r.URL.Query().Get("folder_id"); v != "" {
		folderID = &v
	}

	items, err := h.viewService.SelectView(r.Context(), httputil.GetUserID(r), view, folderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// Search matches non-trashed items by name
// GET /api/search?q=
func (h *ViewHandler) Search(w http.ResponseWriter, r *http.Request) {
	results, err := h.searchService.Search(r.Context(), httputil.GetUserID(r), r.URL.Query().Get("q"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, results)
}
