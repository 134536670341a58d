package services

import (
	"context"

	"filevault/internal/domain/models"
)

// StorageService aggregates item sizes into usage totals and per-category
// breakdowns.
type StorageService interface {
	// ComputeUsage sums sizes of the owner's non-trashed files, bucketed by
	// mime type category.
	ComputeUsage(ctx context.Context, ownerID string) (*models.StorageUsage, error)
}
