package services

import (
	"context"

	"filevault/internal/domain/models"
)

// ViewService classifies items into the named dashboard views.
type ViewService interface {
	// SelectView returns the items matching the view's predicate. folderID
	// only applies to the "all" view, which is folder-scoped; the other
	// views span the whole tree. Folders precede files in every view except
	// "recent", which is ordered purely by recency across both kinds.
	SelectView(ctx context.Context, ownerID string, view models.View, folderID *string) ([]models.Item, error)
}

// SearchService matches items by name.
type SearchService interface {
	// Search performs a case-insensitive substring match on names across
	// non-trashed files and folders. An empty query yields empty results.
	Search(ctx context.Context, ownerID, query string) (*SearchResults, error)
}

// SearchResults groups name matches by kind
type SearchResults struct {
	Folders []models.Folder `json:"folders"`
	Files   []models.File   `json:"files"`
}
