package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"filevault/internal/blob"
	"filevault/internal/config"
	"filevault/internal/domain"
	"filevault/internal/domain/models"
	"filevault/internal/domain/repositories"
	"filevault/internal/domain/services"
)

type fileService struct {
	fileRepo  repositories.FileRepository
	validator *ParentValidator
	blobs     blob.Store
	logger    *slog.Logger
}

// NewFileService creates a new file service
func NewFileService(
	fileRepo repositories.FileRepository,
	validator *ParentValidator,
	blobs blob.Store,
	logger *slog.Logger,
) services.FileService {
	return &fileService{
		fileRepo:  fileRepo,
		validator: validator,
		blobs:     blobs,
		logger:    logger,
	}
}

// Upload stores the bytes first, then the metadata row. A failed insert
// leaves an orphaned blob, so the blob is removed on that path.
func (s *fileService) Upload(ctx context.Context, req *services.UploadRequest) (*models.File, error) {
	if err := s.validateUploadRequest(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	if err := s.validator.ValidateParent(ctx, req.ParentID, req.OwnerID); err != nil {
		return nil, err
	}

	contentType := "application/octet-stream"
	if req.MimeType != nil && *req.MimeType != "" {
		contentType = *req.MimeType
	}

	// Keys are namespaced per owner so bucket listings stay debuggable
	key := fmt.Sprintf("%s/%s", req.OwnerID, uuid.NewString())

	if err := s.blobs.Upload(ctx, key, req.Content, req.SizeBytes, contentType); err != nil {
		return nil, fmt.Errorf("store file content: %w", err)
	}

	file := &models.File{
		OwnerID:   req.OwnerID,
		ParentID:  req.ParentID,
		Name:      req.Name,
		MimeType:  req.MimeType,
		SizeBytes: req.SizeBytes,
		BlobKey:   key,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.fileRepo.Create(ctx, file); err != nil {
		if removeErr := s.blobs.Remove(ctx, key); removeErr != nil {
			s.logger.Error("failed to remove orphaned blob after insert failure",
				"key", key,
				"error", removeErr,
			)
		}
		return nil, err
	}

	s.logger.Info("file uploaded",
		"id", file.ID,
		"name", file.Name,
		"owner_id", req.OwnerID,
		"size", file.SizeBytes,
	)

	return file, nil
}

// GetFile retrieves a file record by ID
func (s *fileService) GetFile(ctx context.Context, id, ownerID string) (*models.File, error) {
	return s.fileRepo.GetByID(ctx, id, ownerID)
}

// DownloadURL returns a short-lived signed URL for the file's bytes
func (s *fileService) DownloadURL(ctx context.Context, id, ownerID string) (*services.DownloadInfo, error) {
	file, err := s.fileRepo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	url, err := s.blobs.SignedURL(ctx, file.BlobKey, file.Name, config.SignedURLTTL)
	if err != nil {
		return nil, fmt.Errorf("sign download url for file %s: %w", id, err)
	}

	return &services.DownloadInfo{
		URL:      url,
		FileName: file.Name,
		MimeType: file.MimeType,
	}, nil
}

func (s *fileService) validateUploadRequest(req *services.UploadRequest) error {
	if req.Content == nil {
		return fmt.Errorf("file content is required")
	}
	if req.SizeBytes < 0 {
		return fmt.Errorf("file size must not be negative")
	}
	if req.SizeBytes > config.MaxUploadBytes {
		return fmt.Errorf("file exceeds maximum upload size of %d bytes", config.MaxUploadBytes)
	}
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required.Error("file name is required"),
			validation.Length(1, config.MaxItemNameLength),
		),
	)
}
