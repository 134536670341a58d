package services

import (
	"context"

	"filevault/internal/domain/models"
)

// ItemService applies mutations that work on either kind of item. Folder
// operations with subtree semantics (trash, restore, permanent delete)
// cascade through all descendants.
type ItemService interface {
	// SetStarred updates the starred flag on the correct table by kind.
	// Idempotent.
	SetStarred(ctx context.Context, ownerID string, kind models.Kind, id string, starred bool) (*models.Item, error)

	// Trash marks the item trashed. For folders the whole subtree is
	// trashed with it.
	Trash(ctx context.Context, ownerID string, kind models.Kind, id string) error

	// Restore clears the trashed flag, cascading identically to Trash.
	// Restoring a descendant whose ancestors remain trashed leaves it
	// unreachable by normal browsing; callers restore from the highest
	// trashed ancestor to avoid that.
	Restore(ctx context.Context, ownerID string, kind models.Kind, id string) error

	// DeletePermanently removes the item for good: blobs first, then
	// records, recursively for folder subtrees. The item must already be
	// trashed or the call fails with NotInTrashError.
	DeletePermanently(ctx context.Context, ownerID string, kind models.Kind, id string) error

	// Update renames and/or moves an item. Folder renames and moves check
	// for sibling name conflicts; folder moves additionally reject targets
	// inside the folder's own subtree.
	Update(ctx context.Context, ownerID string, kind models.Kind, id string, req *UpdateItemRequest) (*models.Item, error)
}

// OptionalParent tracks tri-state semantics for parent updates (RFC 7396
// PATCH). Transport-agnostic (no JSON tags) - handler maps from
// httputil.OptionalString.
//   - Present=false: field absent from request (don't move)
//   - Present=true, Value=nil: move to root
//   - Present=true, Value=&id: move under that folder
type OptionalParent struct {
	Present bool
	Value   *string
}

// UpdateItemRequest represents a rename and/or move
type UpdateItemRequest struct {
	Name   *string // nil = keep current name
	Parent OptionalParent
}
