package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"filevault/internal/config"
	"filevault/internal/domain"
	"filevault/internal/domain/models"
	"filevault/internal/domain/repositories"
	"filevault/internal/domain/services"
)

type viewService struct {
	folderRepo repositories.FolderRepository
	fileRepo   repositories.FileRepository
	logger     *slog.Logger
}

// NewViewService creates a new view service
func NewViewService(
	folderRepo repositories.FolderRepository,
	fileRepo repositories.FileRepository,
	logger *slog.Logger,
) services.ViewService {
	return &viewService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		logger:     logger,
	}
}

// SelectView returns the items matching the view's predicate
func (s *viewService) SelectView(ctx context.Context, ownerID string, view models.View, folderID *string) ([]models.Item, error) {
	switch view {
	case models.ViewAll:
		return s.selectAll(ctx, ownerID, folderID)
	case models.ViewStarred:
		return s.selectLists(ctx, ownerID, s.folderRepo.ListStarred, s.fileRepo.ListStarred)
	case models.ViewShared:
		return s.selectLists(ctx, ownerID, s.folderRepo.ListShared, s.fileRepo.ListShared)
	case models.ViewTrash:
		return s.selectLists(ctx, ownerID, s.folderRepo.ListTrashed, s.fileRepo.ListTrashed)
	case models.ViewRecent:
		return s.selectRecent(ctx, ownerID)
	default:
		return nil, &domain.ValidationError{Message: fmt.Sprintf("unknown view %q", view)}
	}
}

func (s *viewService) selectAll(ctx context.Context, ownerID string, folderID *string) ([]models.Item, error) {
	folders, err := s.folderRepo.ListChildren(ctx, folderID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	files, err := s.fileRepo.ListChildren(ctx, folderID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	return mergeItems(folders, files), nil
}

func (s *viewService) selectLists(
	ctx context.Context,
	ownerID string,
	listFolders func(context.Context, string) ([]models.Folder, error),
	listFiles func(context.Context, string) ([]models.File, error),
) ([]models.Item, error) {
	folders, err := listFolders(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	files, err := listFiles(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	return mergeItems(folders, files), nil
}

// selectRecent merges both kinds by recency rather than grouping folders
// first, then truncates to the view limit.
func (s *viewService) selectRecent(ctx context.Context, ownerID string) ([]models.Item, error) {
	limit := config.RecentViewLimit

	folders, err := s.folderRepo.ListRecent(ctx, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent folders: %w", err)
	}

	files, err := s.fileRepo.ListRecent(ctx, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent files: %w", err)
	}

	items := make([]models.Item, 0, len(folders)+len(files))
	fi, gi := 0, 0
	for fi < len(files) || gi < len(folders) {
		switch {
		case gi >= len(folders):
			items = append(items, files[fi].Item())
			fi++
		case fi >= len(files):
			items = append(items, folders[gi].Item())
			gi++
		case files[fi].UpdatedAt.After(folders[gi].UpdatedAt):
			items = append(items, files[fi].Item())
			fi++
		default:
			items = append(items, folders[gi].Item())
			gi++
		}
	}

	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// mergeItems groups folders before files, each in repository order
func mergeItems(folders []models.Folder, files []models.File) []models.Item {
	items := make([]models.Item, 0, len(folders)+len(files))
	for i := range folders {
		items = append(items, folders[i].Item())
	}
	for i := range files {
		items = append(items, files[i].Item())
	}
	return items
}

type searchService struct {
	folderRepo repositories.FolderRepository
	fileRepo   repositories.FileRepository
	logger     *slog.Logger
}

// NewSearchService creates a new search service
func NewSearchService(
	folderRepo repositories.FolderRepository,
	fileRepo repositories.FileRepository,
	logger *slog.Logger,
) services.SearchService {
	return &searchService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		logger:     logger,
	}
}

// Search matches non-trashed items by name, case-insensitively
func (s *searchService) Search(ctx context.Context, ownerID, query string) (*services.SearchResults, error) {
	results := &services.SearchResults{
		Folders: []models.Folder{},
		Files:   []models.File{},
	}

	// An empty query matches nothing, not everything
	if strings.TrimSpace(query) == "" {
		return results, nil
	}

	folders, err := s.folderRepo.SearchByName(ctx, ownerID, query)
	if err != nil {
		return nil, fmt.Errorf("search folders: %w", err)
	}

	files, err := s.fileRepo.SearchByName(ctx, ownerID, query)
	if err != nil {
		return nil, fmt.Errorf("search files: %w", err)
	}

	results.Folders = folders
	results.Files = files
	return results, nil
}
