package services

import (
	"context"
	"io"

	"filevault/internal/domain/models"
)

// FileService handles file upload and download business logic
type FileService interface {
	// Upload stores the content in the blob store and inserts a file
	// record referencing it. Fails with InvalidParentError if the parent
	// folder is missing or trashed. If the record insert fails after the
	// blob write, the orphaned blob is removed.
	Upload(ctx context.Context, req *UploadRequest) (*models.File, error)

	// GetFile retrieves a file record by ID
	GetFile(ctx context.Context, id, ownerID string) (*models.File, error)

	// DownloadURL returns a short-lived signed URL for the file's bytes
	DownloadURL(ctx context.Context, id, ownerID string) (*DownloadInfo, error)
}

// UploadRequest represents a file upload. Content is streamed to the blob
// store; SizeBytes must match the content length.
type UploadRequest struct {
	OwnerID   string
	Name      string
	MimeType  *string
	ParentID  *string // null for root
	Content   io.Reader
	SizeBytes int64
}

// DownloadInfo carries what a client needs to fetch file bytes
type DownloadInfo struct {
	URL      string  `json:"url"`
	FileName string  `json:"file_name"`
	MimeType *string `json:"file_type,omitempty"`
}
