package handler

import (
	"log/slog"
	"net/http"

	"filevault/internal/domain/models"
	"filevault/internal/domain/services"
	"filevault/internal/httputil"
)

// ItemHandler handles mutations that apply to files and folders alike.
// Every request carries a "kind" discriminator because file and folder IDs
// live in separate tables.
type ItemHandler struct {
	itemService services.ItemService
	logger      *slog.Logger
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService services.ItemService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		logger:      logger,
	}
}

type starRequest struct {
	Kind    models.Kind `json:"kind"`
	Starred bool        `json:"is_starred"`
}

// SetStarred toggles the starred flag
// POST /api/items/{id}/star
func (h *ItemHandler) SetStarred(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Item ID is required")
		return
	}

	var req starRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Kind.Valid() {
		httputil.RespondError(w, http.StatusBadRequest, "kind must be \"file\" or \"folder\"")
		return
	}

	item, err := h.itemService.SetStarred(r.Context(), httputil.GetUserID(r), req.Kind, id, req.Starred)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, item)
}

type kindRequest struct {
	Kind models.Kind `json:"kind"`
}

// Trash moves the item (and, for folders, its subtree) to the trash
// POST /api/items/{id}/trash
func (h *ItemHandler) Trash(w http.ResponseWriter, r *http.Request) {
	h.setTrashed(w, r, true)
}

// Restore brings the item (and, for folders, its subtree) back from trash
// POST /api/items/{id}/restore
func (h *ItemHandler) Restore(w http.ResponseWriter, r *http.Request) {
	h.setTrashed(w, r, false)
}

func (h *ItemHandler) setTrashed(w http.ResponseWriter, r *http.Request, trashed bool) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Item ID is required")
		return
	}

	var req kindRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Kind.Valid() {
		httputil.RespondError(w, http.StatusBadRequest, "kind must be \"file\" or \"folder\"")
		return
	}

	userID := httputil.GetUserID(r)
	var err error
	if trashed {
		err = h.itemService.Trash(r.Context(), userID, req.Kind, id)
	} else {
		err = h.itemService.Restore(r.Context(), userID, req.Kind, id)
	}
	if err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete permanently removes a trashed item
// DELETE /api/items/{id}?kind=file|folder
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Item ID is required")
		return
	}

	kind := models.Kind(r.URL.Query().Get("kind"))
	if !kind.Valid() {
		httputil.RespondError(w, http.StatusBadRequest, "kind query parameter must be \"file\" or \"folder\"")
		return
	}

	if err := h.itemService.DeletePermanently(r.Context(), httputil.GetUserID(r), kind, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updateItemRequest struct {
	Kind   models.Kind             `json:"kind"`
	Name   *string                 `json:"name"`
	Parent httputil.OptionalString `json:"parent_folder_id"`
}

// Update renames and/or moves an item
// PATCH /api/items/{id}
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Item ID is required")
		return
	}

	var req updateItemRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Kind.Valid() {
		httputil.RespondError(w, http.StatusBadRequest, "kind must be \"file\" or \"folder\"")
		return
	}

	item, err := h.itemService.Update(r.Context(), httputil.GetUserID(r), req.Kind, id, &services.UpdateItemRequest{
		Name: req.Name,
		Parent: services.OptionalParent{
			Present: req.Parent.Present,
			Value:   req.Parent.Value,
		},
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, item)
}

type renameRequest struct {
	Kind models.Kind `json:"kind"`
	Name string      `json:"name"`
}

// Rename renames an item
// POST /api/items/{id}/rename
func (h *ItemHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Item ID is required")
		return
	}

	var req renameRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Kind.Valid() {
		httputil.RespondError(w, http.StatusBadRequest, "kind must be \"file\" or \"folder\"")
		return
	}

	item, err := h.itemService.Update(r.Context(), httputil.GetUserID(r), req.Kind, id, &services.UpdateItemRequest{
		Name: &req.Name,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, item)
}
