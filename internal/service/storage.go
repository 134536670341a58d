package service

import (
	"context"
	"fmt"
	"log/slog"

	"filevault/internal/categories"
	"filevault/internal/domain/models"
	"filevault/internal/domain/repositories"
	"filevault/internal/domain/services"
)

type storageService struct {
	fileRepo   repositories.FileRepository
	folderRepo repositories.FolderRepository
	registry   *categories.Registry
	quotaBytes int64
	logger     *slog.Logger
}

// NewStorageService creates a new storage service
func NewStorageService(
	fileRepo repositories.FileRepository,
	folderRepo repositories.FolderRepository,
	registry *categories.Registry,
	quotaBytes int64,
	logger *slog.Logger,
) services.StorageService {
	return &storageService{
		fileRepo:   fileRepo,
		folderRepo: folderRepo,
		registry:   registry,
		quotaBytes: quotaBytes,
		logger:     logger,
	}
}

// ComputeUsage sums sizes of the owner's non-trashed files bucketed by
// mime category. Every configured category appears in the breakdown even
// at zero bytes so the dashboard chart stays stable.
func (s *storageService) ComputeUsage(ctx context.Context, ownerID string) (*models.StorageUsage, error) {
	files, err := s.fileRepo.ListAllByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list files for usage: %w", err)
	}

	folderCount, err := s.folderRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("count folders for usage: %w", err)
	}

	buckets := make(map[string]int64)
	var used int64
	for i := range files {
		cat := s.registry.Categorize(files[i].MimeType)
		buckets[cat.ID] += files[i].SizeBytes
		used += files[i].SizeBytes
	}

	all := s.registry.All()
	breakdown := make([]models.CategoryUsage, 0, len(all))
	for _, cat := range all {
		breakdown = append(breakdown, models.CategoryUsage{
			Category: cat.DisplayName,
			Bytes:    buckets[cat.ID],
			Color:    cat.Color,
		})
	}

	return &models.StorageUsage{
		UsedBytes:   used,
		TotalBytes:  s.quotaBytes,
		FileCount:   len(files),
		FolderCount: folderCount,
		Breakdown:   breakdown,
	}, nil
}
