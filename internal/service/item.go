package service

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"filevault/internal/blob"
	"filevault/internal/config"
	"filevault/internal/domain"
	"filevault/internal/domain/models"
	"filevault/internal/domain/repositories"
	"filevault/internal/domain/services"
)

type itemService struct {
	folderRepo repositories.FolderRepository
	fileRepo   repositories.FileRepository
	shareRepo  repositories.ShareRepository
	blobs      blob.Store
	txManager  repositories.TransactionManager
	validator  *ParentValidator
	logger     *slog.Logger
}

// NewItemService creates a new item service
func NewItemService(
	folderRepo repositories.FolderRepository,
	fileRepo repositories.FileRepository,
	shareRepo repositories.ShareRepository,
	blobs blob.Store,
	txManager repositories.TransactionManager,
	validator *ParentValidator,
	logger *slog.Logger,
) services.ItemService {
	return &itemService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		shareRepo:  shareRepo,
		blobs:      blobs,
		txManager:  txManager,
		validator:  validator,
		logger:     logger,
	}
}

// SetStarred updates the starred flag on the item's table
func (s *itemService) SetStarred(ctx context.Context, ownerID string, kind models.Kind, id string, starred bool) (*models.Item, error) {
	if !kind.Valid() {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("unknown item kind %q", kind)}
	}

	switch kind {
	case models.KindFolder:
		if err := s.folderRepo.SetStarred(ctx, id, ownerID, starred); err != nil {
			return nil, err
		}
		folder, err := s.folderRepo.GetByID(ctx, id, ownerID)
		if err != nil {
			return nil, err
		}
		item := folder.Item()
		return &item, nil
	default:
		if err := s.fileRepo.SetStarred(ctx, id, ownerID, starred); err != nil {
			return nil, err
		}
		file, err := s.fileRepo.GetByID(ctx, id, ownerID)
		if err != nil {
			return nil, err
		}
		item := file.Item()
		return &item, nil
	}
}

// Trash marks the item trashed, cascading through folder subtrees
func (s *itemService) Trash(ctx context.Context, ownerID string, kind models.Kind, id string) error {
	return s.setTrashed(ctx, ownerID, kind, id, true)
}

// Restore clears the trashed flag, cascading through folder subtrees
func (s *itemService) Restore(ctx context.Context, ownerID string, kind models.Kind, id string) error {
	return s.setTrashed(ctx, ownerID, kind, id, false)
}

func (s *itemService) setTrashed(ctx context.Context, ownerID string, kind models.Kind, id string, trashed bool) error {
	if !kind.Valid() {
		return &domain.ValidationError{Message: fmt.Sprintf("unknown item kind %q", kind)}
	}

	if kind == models.KindFile {
		return s.fileRepo.SetTrashed(ctx, id, ownerID, trashed)
	}

	// Folder subtree cascades run in one transaction so a mid-walk
	// failure never leaves a half-trashed tree
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		return s.cascadeTrashed(txCtx, ownerID, id, trashed, 0)
	})
	if err != nil {
		return err
	}

	s.logger.Info("folder subtree updated",
		"folder_id", id,
		"owner_id", ownerID,
		"trashed", trashed,
	)
	return nil
}

func (s *itemService) cascadeTrashed(ctx context.Context, ownerID, folderID string, trashed bool, depth int) error {
	if depth >= config.MaxTreeDepth {
		return &domain.CorruptTreeError{
			Message: fmt.Sprintf("folder %s exceeds maximum tree depth %d", folderID, config.MaxTreeDepth),
		}
	}

	if err := s.folderRepo.SetTrashed(ctx, folderID, ownerID, trashed); err != nil {
		return err
	}

	// Include already-trashed descendants so repeated calls stay
	// idempotent and restore reaches everything
	files, err := s.fileRepo.ListChildrenAll(ctx, &folderID, ownerID)
	if err != nil {
		return fmt.Errorf("list files in folder %s: %w", folderID, err)
	}
	for _, file := range files {
		if err := s.fileRepo.SetTrashed(ctx, file.ID, ownerID, trashed); err != nil {
			return err
		}
	}

	subfolders, err := s.folderRepo.ListChildrenAll(ctx, &folderID, ownerID)
	if err != nil {
		return fmt.Errorf("list subfolders of folder %s: %w", folderID, err)
	}
	for _, sub := range subfolders {
		if err := s.cascadeTrashed(ctx, ownerID, sub.ID, trashed, depth+1); err != nil {
			return err
		}
	}

	return nil
}

// DeletePermanently removes the item and, for folders, the whole subtree.
// The item must already be in the trash.
func (s *itemService) DeletePermanently(ctx context.Context, ownerID string, kind models.Kind, id string) error {
	if !kind.Valid() {
		return &domain.ValidationError{Message: fmt.Sprintf("unknown item kind %q", kind)}
	}

	if kind == models.KindFile {
		file, err := s.fileRepo.GetByID(ctx, id, ownerID)
		if err != nil {
			return err
		}
		if !file.Trashed {
			return &domain.NotInTrashError{
				Message: fmt.Sprintf("file %s must be trashed before permanent deletion", id),
			}
		}
		return s.deleteFile(ctx, file)
	}

	folder, err := s.folderRepo.GetByID(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if !folder.Trashed {
		return &domain.NotInTrashError{
			Message: fmt.Sprintf("folder %s must be trashed before permanent deletion", id),
		}
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		return s.deleteFolderSubtree(txCtx, ownerID, id, 0)
	})
	if err != nil {
		return err
	}

	s.logger.Info("folder permanently deleted",
		"folder_id", id,
		"owner_id", ownerID,
	)
	return nil
}

func (s *itemService) deleteFile(ctx context.Context, file *models.File) error {
	// Blob first. A failed blob removal only leaks storage, while a
	// record pointing at deleted bytes would break downloads, so removal
	// errors are logged and the metadata delete proceeds.
	if err := s.blobs.Remove(ctx, file.BlobKey); err != nil {
		s.logger.Error("failed to remove blob for deleted file",
			"file_id", file.ID,
			"key", file.BlobKey,
			"error", err,
		)
	}

	if err := s.shareRepo.DeleteByFile(ctx, file.ID); err != nil {
		return fmt.Errorf("delete share grants for file %s: %w", file.ID, err)
	}

	return s.fileRepo.Delete(ctx, file.ID, file.OwnerID)
}

func (s *itemService) deleteFolderSubtree(ctx context.Context, ownerID, folderID string, depth int) error {
	if depth >= config.MaxTreeDepth {
		return &domain.CorruptTreeError{
			Message: fmt.Sprintf("folder %s exceeds maximum tree depth %d", folderID, config.MaxTreeDepth),
		}
	}

	files, err := s.fileRepo.ListChildrenAll(ctx, &folderID, ownerID)
	if err != nil {
		return fmt.Errorf("list files in folder %s: %w", folderID, err)
	}
	for i := range files {
		if err := s.deleteFile(ctx, &files[i]); err != nil {
			return err
		}
	}

	subfolders, err := s.folderRepo.ListChildrenAll(ctx, &folderID, ownerID)
	if err != nil {
		return fmt.Errorf("list subfolders of folder %s: %w", folderID, err)
	}
	for _, sub := range subfolders {
		if err := s.deleteFolderSubtree(ctx, ownerID, sub.ID, depth+1); err != nil {
			return err
		}
	}

	return s.folderRepo.Delete(ctx, folderID, ownerID)
}

// Update renames and/or moves an item
func (s *itemService) Update(ctx context.Context, ownerID string, kind models.Kind, id string, req *services.UpdateItemRequest) (*models.Item, error) {
	if !kind.Valid() {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("unknown item kind %q", kind)}
	}
	if req.Name == nil && !req.Parent.Present {
		return nil, &domain.ValidationError{Message: "nothing to update"}
	}
	if req.Name != nil {
		if err := validation.Validate(*req.Name,
			validation.Required.Error("name must not be empty"),
			validation.Length(1, config.MaxItemNameLength),
		); err != nil {
			return nil, &domain.ValidationError{Message: err.Error()}
		}
	}

	if kind == models.KindFolder {
		return s.updateFolder(ctx, ownerID, id, req)
	}
	return s.updateFile(ctx, ownerID, id, req)
}

func (s *itemService) updateFolder(ctx context.Context, ownerID, id string, req *services.UpdateItemRequest) (*models.Item, error) {
	folder, err := s.folderRepo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	name := folder.Name
	if req.Name != nil {
		name = *req.Name
	}

	parentID := folder.ParentID
	if req.Parent.Present {
		parentID = normalizeParent(req.Parent.Value)
		if err := s.validator.ValidateParent(ctx, parentID, ownerID); err != nil {
			return nil, err
		}
		if err := s.checkNoCycle(ctx, ownerID, id, parentID); err != nil {
			return nil, err
		}
	}

	if name != folder.Name || !sameParentID(parentID, folder.ParentID) {
		existing, err := s.folderRepo.FindByNameAndParent(ctx, ownerID, name, parentID)
		if err != nil {
			return nil, fmt.Errorf("check sibling names: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, &domain.DuplicateNameError{
				Message:      fmt.Sprintf("a folder named %q already exists in this location", name),
				ResourceType: "folder",
				ResourceID:   existing.ID,
			}
		}
	}

	folder.Name = name
	folder.ParentID = parentID
	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}

	item := folder.Item()
	return &item, nil
}

func (s *itemService) updateFile(ctx context.Context, ownerID, id string, req *services.UpdateItemRequest) (*models.Item, error) {
	file, err := s.fileRepo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	name := file.Name
	if req.Name != nil {
		name = *req.Name
	}

	parentID := file.ParentID
	if req.Parent.Present {
		parentID = normalizeParent(req.Parent.Value)
		if err := s.validator.ValidateParent(ctx, parentID, ownerID); err != nil {
			return nil, err
		}
	}

	if name != file.Name || !sameParentID(parentID, file.ParentID) {
		siblings, err := s.fileRepo.ListChildren(ctx, parentID, ownerID)
		if err != nil {
			return nil, fmt.Errorf("check sibling names: %w", err)
		}
		for _, sibling := range siblings {
			if sibling.ID != id && sibling.Name == name {
				return nil, &domain.DuplicateNameError{
					Message:      fmt.Sprintf("a file named %q already exists in this location", name),
					ResourceType: "file",
					ResourceID:   sibling.ID,
				}
			}
		}
	}

	file.Name = name
	file.ParentID = parentID
	if err := s.fileRepo.Update(ctx, file); err != nil {
		return nil, err
	}

	item := file.Item()
	return &item, nil
}

// checkNoCycle rejects moving a folder under itself or any descendant. It
// walks parent pointers from the target up to the root.
func (s *itemService) checkNoCycle(ctx context.Context, ownerID, folderID string, newParentID *string) error {
	current := newParentID
	for depth := 0; current != nil; depth++ {
		if depth >= config.MaxTreeDepth {
			return &domain.CorruptTreeError{
				Message: fmt.Sprintf("folder %s exceeds maximum tree depth %d", *current, config.MaxTreeDepth),
			}
		}
		if *current == folderID {
			return &domain.InvalidParentError{
				Message:  "cannot move a folder into its own subtree",
				ParentID: *newParentID,
			}
		}
		parent, err := s.folderRepo.GetByID(ctx, *current, ownerID)
		if err != nil {
			return fmt.Errorf("walk parent chain: %w", err)
		}
		current = parent.ParentID
	}
	return nil
}

func normalizeParent(parentID *string) *string {
	if parentID != nil && *parentID == "" {
		return nil
	}
	return parentID
}

func sameParentID(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
