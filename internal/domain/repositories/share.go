package repositories

import (
	"context"
	"time"

	"filevault/internal/domain/models"
)

// ShareRepository defines data access operations for share grants.
type ShareRepository interface {
	// Create inserts a new share grant
	Create(ctx context.Context, grant *models.ShareGrant) error

	// GetByID retrieves a grant by ID
	GetByID(ctx context.Context, id string) (*models.ShareGrant, error)

	// ListByFile lists grants for a file, newest first
	ListByFile(ctx context.Context, fileID string) ([]models.ShareGrant, error)

	// Delete removes a grant
	Delete(ctx context.Context, id string) error

	// DeleteByFile removes all grants for a file
	DeleteByFile(ctx context.Context, fileID string) error

	// CountActiveByFile counts grants for a file that have not expired at
	// the given time
	CountActiveByFile(ctx context.Context, fileID string, now time.Time) (int, error)
}
