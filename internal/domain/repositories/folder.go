package repositories

import (
	"context"

	"filevault/internal/domain/models"
)

// FolderRepository defines data access operations for folders. All queries
// are scoped to the owning user.
type FolderRepository interface {
	// Create inserts a new folder
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID, trashed or not
	GetByID(ctx context.Context, id, ownerID string) (*models.Folder, error)

	// Update persists name and parent changes and refreshes updated_at
	Update(ctx context.Context, folder *models.Folder) error

	// Delete removes the folder row permanently
	Delete(ctx context.Context, id, ownerID string) error

	// FindByNameAndParent finds a non-trashed sibling folder by name.
	// Returns (nil, nil) when no such folder exists.
	FindByNameAndParent(ctx context.Context, ownerID, name string, parentID *string) (*models.Folder, error)

	// ListChildren lists non-trashed immediate child folders in insertion order
	ListChildren(ctx context.Context, parentID *string, ownerID string) ([]models.Folder, error)

	// ListChildrenAll lists immediate child folders including trashed ones,
	// for subtree cascades
	ListChildrenAll(ctx context.Context, parentID *string, ownerID string) ([]models.Folder, error)

	// ListStarred lists non-trashed starred folders
	ListStarred(ctx context.Context, ownerID string) ([]models.Folder, error)

	// ListShared lists non-trashed shared folders
	ListShared(ctx context.Context, ownerID string) ([]models.Folder, error)

	// ListTrashed lists trashed folders
	ListTrashed(ctx context.Context, ownerID string) ([]models.Folder, error)

	// ListRecent lists non-trashed folders most recently updated first
	ListRecent(ctx context.Context, ownerID string, limit int) ([]models.Folder, error)

	// SearchByName lists non-trashed folders whose name contains the query,
	// case-insensitively
	SearchByName(ctx context.Context, ownerID, query string) ([]models.Folder, error)

	// SetStarred updates the starred flag and refreshes updated_at
	SetStarred(ctx context.Context, id, ownerID string, starred bool) error

	// SetTrashed updates the trashed flag and refreshes updated_at
	SetTrashed(ctx context.Context, id, ownerID string, trashed bool) error

	// CountByOwner counts non-trashed folders
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}
