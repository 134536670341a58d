package service

import (
	"context"
	"errors"
	"fmt"

	"filevault/internal/domain"
	"filevault/internal/domain/repositories"
)

// ParentValidator checks that a parent folder is usable as a destination
// before items are created in or moved under it
type ParentValidator struct {
	folderRepo repositories.FolderRepository
}

// NewParentValidator creates a new parent validator
func NewParentValidator(folderRepo repositories.FolderRepository) *ParentValidator {
	return &ParentValidator{folderRepo: folderRepo}
}

// ValidateParent ensures the parent folder exists for the owner and is not
// in the trash. A nil parent (root level) is always valid.
func (v *ParentValidator) ValidateParent(ctx context.Context, parentID *string, ownerID string) error {
	if parentID == nil {
		return nil // Root level is always valid
	}

	parent, err := v.folderRepo.GetByID(ctx, *parentID, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.InvalidParentError{
				Message:  fmt.Sprintf("parent folder %s does not exist", *parentID),
				ParentID: *parentID,
			}
		}
		return fmt.Errorf("validate parent folder: %w", err)
	}

	if parent.Trashed {
		return &domain.InvalidParentError{
			Message:  fmt.Sprintf("parent folder %s is in the trash", *parentID),
			ParentID: *parentID,
		}
	}

	return nil
}
