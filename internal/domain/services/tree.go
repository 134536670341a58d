package services

import (
	"context"

	"filevault/internal/domain/models"
)

// TreeService resolves breadcrumb paths and folder-scoped listings from
// parent-pointer relationships.
type TreeService interface {
	// ResolvePath returns the breadcrumb path from root to the given folder,
	// inclusive. A nil folderID resolves to the empty path (root). A dangling
	// parent pointer truncates the path; a cycle fails with ErrCorruptTree.
	ResolvePath(ctx context.Context, ownerID string, folderID *string) ([]models.PathSegment, error)

	// ListChildren lists the non-trashed contents of a folder, folders
	// before files, each group in insertion order.
	ListChildren(ctx context.Context, ownerID string, folderID *string) (*FolderContents, error)
}

// FolderContents represents a folder with its immediate children
type FolderContents struct {
	Folder  *models.Folder  `json:"folder,omitempty"` // null for root
	Folders []models.Folder `json:"folders"`
	Files   []models.File   `json:"files"`
}
