package services

import (
	"context"

	"filevault/internal/domain/models"
)

// FolderService handles folder business logic
type FolderService interface {
	// CreateFolder creates a new folder. Fails with DuplicateNameError if a
	// non-trashed sibling folder with the same name exists, and with
	// InvalidParentError if the parent folder is missing or trashed.
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// GetFolder retrieves a folder by ID
	GetFolder(ctx context.Context, id, ownerID string) (*models.Folder, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	OwnerID  string  `json:"-"`
	Name     string  `json:"name"`
	ParentID *string `json:"parent_folder_id,omitempty"` // null for root
}
