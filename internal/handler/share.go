package handler

import (
	"log/slog"
	"net/http"

	"filevault/internal/domain/services"
	"filevault/internal/httputil"
)

// ShareHandler handles share grant HTTP requests
type ShareHandler struct {
	shareService services.ShareService
	logger       *slog.Logger
}

// NewShareHandler creates a new share handler
func NewShareHandler(shareService services.ShareService, logger *slog.Logger) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
		logger:       logger,
	}
}

// Share creates a share grant for a file the caller owns
// POST /api/shares
func (h *ShareHandler) Share(w http.ResponseWriter, r *http.Request) {
	var req services.ShareRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.OwnerID = httputil.GetUserID(r)

	grant, err := h.shareService.Share(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, grant)
}

// Resolve resolves a grant ID to file metadata and a signed URL. This
// endpoint is public; the unguessable grant ID is the credential.
// GET /api/shares/{id}
func (h *ShareHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Share ID is required")
		return
	}

	shared, err := h.shareService.Resolve(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, shared)
}

// ListGrants lists the grants on a file the caller owns
// GET /api/files/{id}/shares
func (h *ShareHandler) ListGrants(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "File ID is required")
		return
	}

	grants, err := h.shareService.ListGrants(r.Context(), httputil.GetUserID(r), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"grants": grants})
}

// Revoke deletes a grant on a file the caller owns
// DELETE /api/shares/{id}
func (h *ShareHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Share ID is required")
		return
	}

	if err := h.shareService.Revoke(r.Context(), httputil.GetUserID(r), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
