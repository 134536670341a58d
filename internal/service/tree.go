package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"filevault/internal/config"
	"filevault/internal/domain"
	"filevault/internal/domain/models"
	"filevault/internal/domain/repositories"
	"filevault/internal/domain/services"
)

type treeService struct {
	folderRepo repositories.FolderRepository
	fileRepo   repositories.FileRepository
	logger     *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(
	folderRepo repositories.FolderRepository,
	fileRepo repositories.FileRepository,
	logger *slog.Logger,
) services.TreeService {
	return &treeService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		logger:     logger,
	}
}

// ResolvePath walks parent pointers from the folder up to the root and
// returns the breadcrumb in root-first order.
func (s *treeService) ResolvePath(ctx context.Context, ownerID string, folderID *string) ([]models.PathSegment, error) {
	if folderID == nil {
		return []models.PathSegment{}, nil
	}

	folder, err := s.folderRepo.GetByID(ctx, *folderID, ownerID)
	if err != nil {
		return nil, err
	}

	// Collected leaf-first, reversed at the end
	segments := []models.PathSegment{{ID: folder.ID, Name: folder.Name}}
	seen := map[string]bool{folder.ID: true}

	current := folder
	for current.ParentID != nil {
		if len(segments) >= config.MaxTreeDepth {
			return nil, &domain.CorruptTreeError{
				Message: fmt.Sprintf("folder %s exceeds maximum tree depth %d", *folderID, config.MaxTreeDepth),
			}
		}

		parent, err := s.folderRepo.GetByID(ctx, *current.ParentID, ownerID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Dangling parent pointer. Truncate the path at the
				// nearest resolvable ancestor rather than failing the
				// whole breadcrumb.
				s.logger.Warn("dangling parent pointer, truncating path",
					"folder_id", current.ID,
					"missing_parent_id", *current.ParentID,
				)
				break
			}
			return nil, fmt.Errorf("resolve path for folder %s: %w", *folderID, err)
		}

		if seen[parent.ID] {
			return nil, &domain.CorruptTreeError{
				Message: fmt.Sprintf("cycle in parent chain at folder %s", parent.ID),
			}
		}
		seen[parent.ID] = true

		segments = append(segments, models.PathSegment{ID: parent.ID, Name: parent.Name})
		current = parent
	}

	// Reverse to root-first order
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}

	return segments, nil
}

// ListChildren lists the non-trashed contents of a folder, folders before
// files.
func (s *treeService) ListChildren(ctx context.Context, ownerID string, folderID *string) (*services.FolderContents, error) {
	contents := &services.FolderContents{}

	if folderID != nil {
		folder, err := s.folderRepo.GetByID(ctx, *folderID, ownerID)
		if err != nil {
			return nil, err
		}
		contents.Folder = folder
	}

	folders, err := s.folderRepo.ListChildren(ctx, folderID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list child folders: %w", err)
	}

	files, err := s.fileRepo.ListChildren(ctx, folderID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list child files: %w", err)
	}

	contents.Folders = folders
	contents.Files = files
	return contents, nil
}
