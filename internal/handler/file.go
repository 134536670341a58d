package handler

import (
	"log/slog"
	"net/http"

	"filevault/internal/config"
	"filevault/internal/domain/services"
	"filevault/internal/httputil"
)

// FileHandler handles file HTTP requests
type FileHandler struct {
	fileService services.FileService
	logger      *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService services.FileService, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		logger:      logger,
	}
}

// Upload stores an uploaded file
// POST /api/files (multipart/form-data: "file" part, optional "parent_folder_id" field)
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes)

	// Small threshold keeps big uploads on disk instead of in memory
	if err := r.ParseMultipartForm(4 << 20); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "A \"file\" part is required")
		return
	}
	defer part.Close()

	var parentID *string
	if v := r.FormValue("parent_folder_id"); v != "" {
		parentID = &v
	}

	var mimeType *string
	if ct := header.Header.Get("Content-Type"); ct != "" {
		mimeType = &ct
	}

	file, err := h.fileService.Upload(r.Context(), &services.UploadRequest{
		OwnerID:   userID,
		Name:      header.Filename,
		MimeType:  mimeType,
		ParentID:  parentID,
		Content:   part,
		SizeBytes: header.Size,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, file)
}

// Download returns a short-lived signed URL for the file's bytes
// GET /api/files/{id}/download
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "File ID is required")
		return
	}

	info, err := h.fileService.DownloadURL(r.Context(), id, httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, info)
}
