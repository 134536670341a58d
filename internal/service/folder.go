package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"filevault/internal/config"
	"filevault/internal/domain"
	"filevault/internal/domain/models"
	"filevault/internal/domain/repositories"
	"filevault/internal/domain/services"
)

type folderService struct {
	folderRepo repositories.FolderRepository
	validator  *ParentValidator
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	validator *ParentValidator,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		validator:  validator,
		logger:     logger,
	}
}

// CreateFolder creates a new folder
func (s *folderService) CreateFolder(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	// Normalize empty string to nil for root-level folders
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	if err := s.validator.ValidateParent(ctx, req.ParentID, req.OwnerID); err != nil {
		return nil, err
	}

	// Check for a non-trashed sibling with the same name before inserting
	// so the conflict response can point at the existing folder
	existing, err := s.folderRepo.FindByNameAndParent(ctx, req.OwnerID, req.Name, req.ParentID)
	if err != nil {
		return nil, fmt.Errorf("check sibling names: %w", err)
	}
	if existing != nil {
		return nil, &domain.DuplicateNameError{
			Message:      fmt.Sprintf("a folder named %q already exists in this location", req.Name),
			ResourceType: "folder",
			ResourceID:   existing.ID,
		}
	}

	folder := &models.Folder{
		OwnerID:   req.OwnerID,
		ParentID:  req.ParentID,
		Name:      req.Name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"owner_id", req.OwnerID,
		"parent_id", req.ParentID,
	)

	return folder, nil
}

// GetFolder retrieves a folder by ID
func (s *folderService) GetFolder(ctx context.Context, id, ownerID string) (*models.Folder, error) {
	return s.folderRepo.GetByID(ctx, id, ownerID)
}

func (s *folderService) validateCreateRequest(req *services.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required.Error("folder name is required"),
			validation.Length(1, config.MaxItemNameLength),
		),
	)
}
