package repositories

import (
	"context"

	"filevault/internal/domain/models"
)

// FileRepository defines data access operations for file records. All
// queries are scoped to the owning user.
type FileRepository interface {
	// Create inserts a new file record
	Create(ctx context.Context, file *models.File) error

	// GetByID retrieves a file by ID, trashed or not
	GetByID(ctx context.Context, id, ownerID string) (*models.File, error)

	// GetByIDOnly retrieves a file by ID without owner scoping. Used for
	// public share resolution where authorization is the share grant itself.
	GetByIDOnly(ctx context.Context, id string) (*models.File, error)

	// Update persists name and parent changes and refreshes updated_at
	Update(ctx context.Context, file *models.File) error

	// Delete removes the file row permanently
	Delete(ctx context.Context, id, ownerID string) error

	// ListChildren lists non-trashed files in a folder in insertion order
	ListChildren(ctx context.Context, parentID *string, ownerID string) ([]models.File, error)

	// ListChildrenAll lists files in a folder including trashed ones,
	// for subtree cascades
	ListChildrenAll(ctx context.Context, parentID *string, ownerID string) ([]models.File, error)

	// ListStarred lists non-trashed starred files
	ListStarred(ctx context.Context, ownerID string) ([]models.File, error)

	// ListShared lists non-trashed shared files
	ListShared(ctx context.Context, ownerID string) ([]models.File, error)

	// ListTrashed lists trashed files
	ListTrashed(ctx context.Context, ownerID string) ([]models.File, error)

	// ListRecent lists non-trashed files most recently updated first
	ListRecent(ctx context.Context, ownerID string, limit int) ([]models.File, error)

	// ListAllByOwner lists all non-trashed files for storage accounting
	ListAllByOwner(ctx context.Context, ownerID string) ([]models.File, error)

	// SearchByName lists non-trashed files whose name contains the query,
	// case-insensitively
	SearchByName(ctx context.Context, ownerID, query string) ([]models.File, error)

	// SetStarred updates the starred flag and refreshes updated_at
	SetStarred(ctx context.Context, id, ownerID string, starred bool) error

	// SetTrashed updates the trashed flag and refreshes updated_at
	SetTrashed(ctx context.Context, id, ownerID string, trashed bool) error

	// SetShared updates the denormalized shared flag
	SetShared(ctx context.Context, id, ownerID string, shared bool) error
}
