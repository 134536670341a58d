package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"filevault/internal/domain"
	"filevault/internal/domain/services"
	"filevault/internal/httputil"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	folderService services.FolderService
	treeService   services.TreeService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(
	folderService services.FolderService,
	treeService services.TreeService,
	logger *slog.Logger,
) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		treeService:   treeService,
		logger:        logger,
	}
}

// CreateFolder creates a new folder
// POST /api/folders
// Returns 201 if created, 409 with the existing folder if duplicate
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req services.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.OwnerID = userID

	folder, err := h.folderService.CreateFolder(r.Context(), &req)
	if err != nil {
		// Return the conflicting folder alongside the 409 so clients can
		// offer "open existing" instead of a dead end
		var dupErr *domain.DuplicateNameError
		if errors.As(err, &dupErr) && dupErr.ResourceID != "" {
			existing, fetchErr := h.folderService.GetFolder(r.Context(), dupErr.ResourceID, userID)
			if fetchErr == nil {
				httputil.RespondJSON(w, http.StatusConflict, existing)
				return
			}
		}
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// GetFolder retrieves a folder by ID
// GET /api/folders/{id}
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Folder ID is required")
		return
	}

	folder, err := h.folderService.GetFolder(r.Context(), id, httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// GetPath returns the breadcrumb path from the root to the folder
// GET /api/folders/{id}/path
func (h *FolderHandler) GetPath(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Folder ID is required")
		return
	}

	path, err := h.treeService.ResolvePath(r.Context(), httputil.GetUserID(r), &id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"path": path})
}

// ListChildren lists the folder's immediate contents, folders before files
// GET /api/folders/{id}/children
func (h *FolderHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Folder ID is required")
		return
	}

	contents, err := h.treeService.ListChildren(r.Context(), httputil.GetUserID(r), &id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, contents)
}
