package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"filevault/internal/blob"
	"filevault/internal/config"
	"filevault/internal/domain"
	"filevault/internal/domain/models"
	"filevault/internal/domain/repositories"
	"filevault/internal/domain/services"
)

type shareService struct {
	shareRepo repositories.ShareRepository
	fileRepo  repositories.FileRepository
	blobs     blob.Store
	txManager repositories.TransactionManager
	logger    *slog.Logger

	// now is swappable so tests can control expiry
	now func() time.Time
}

// NewShareService creates a new share service
func NewShareService(
	shareRepo repositories.ShareRepository,
	fileRepo repositories.FileRepository,
	blobs blob.Store,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.ShareService {
	return &shareService{
		shareRepo: shareRepo,
		fileRepo:  fileRepo,
		blobs:     blobs,
		txManager: txManager,
		logger:    logger,
		now:       time.Now,
	}
}

// Share inserts a grant and marks the file shared
func (s *shareService) Share(ctx context.Context, req *services.ShareRequest) (*models.ShareGrant, error) {
	if err := s.validateShareRequest(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	// Ownership check. A missing or foreign file is the same NotFound.
	file, err := s.fileRepo.GetByID(ctx, req.FileID, req.OwnerID)
	if err != nil {
		return nil, err
	}

	grant := &models.ShareGrant{
		FileID:      file.ID,
		SharedBy:    req.OwnerID,
		SharedWith:  req.SharedWith,
		AccessLevel: req.AccessLevel,
		ExpiresAt:   req.ExpiresAt,
		CreatedAt:   s.now(),
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.shareRepo.Create(txCtx, grant); err != nil {
			return err
		}
		return s.fileRepo.SetShared(txCtx, file.ID, req.OwnerID, true)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("file shared",
		"grant_id", grant.ID,
		"file_id", file.ID,
		"owner_id", req.OwnerID,
		"access_level", grant.AccessLevel,
	)

	return grant, nil
}

// Resolve fetches file metadata and a signed URL by grant ID. The grant ID
// is the capability, so there is no ownership check, and expired or broken
// grants all resolve as plain NotFound to avoid leaking their existence.
func (s *shareService) Resolve(ctx context.Context, grantID string) (*services.SharedFile, error) {
	grant, err := s.shareRepo.GetByID(ctx, grantID)
	if err != nil {
		return nil, err
	}

	if grant.Expired(s.now()) {
		return nil, fmt.Errorf("share grant %s: %w", grantID, domain.ErrNotFound)
	}

	file, err := s.fileRepo.GetByIDOnly(ctx, grant.FileID)
	if err != nil {
		return nil, err
	}
	if file.Trashed {
		return nil, fmt.Errorf("share grant %s: %w", grantID, domain.ErrNotFound)
	}

	url, err := s.blobs.SignedURL(ctx, file.BlobKey, file.Name, config.SignedURLTTL)
	if err != nil {
		return nil, fmt.Errorf("sign url for shared file %s: %w", file.ID, err)
	}

	return &services.SharedFile{
		Name:        file.Name,
		MimeType:    file.MimeType,
		SizeBytes:   file.SizeBytes,
		AccessLevel: grant.AccessLevel,
		URL:         url,
	}, nil
}

// ListGrants lists the grants for a file the caller owns
func (s *shareService) ListGrants(ctx context.Context, ownerID, fileID string) ([]models.ShareGrant, error) {
	if _, err := s.fileRepo.GetByID(ctx, fileID, ownerID); err != nil {
		return nil, err
	}
	return s.shareRepo.ListByFile(ctx, fileID)
}

// Revoke deletes a grant. Revoking the last active grant clears the
// file's shared flag.
func (s *shareService) Revoke(ctx context.Context, ownerID, grantID string) error {
	grant, err := s.shareRepo.GetByID(ctx, grantID)
	if err != nil {
		return err
	}

	// Only the file's owner may revoke
	file, err := s.fileRepo.GetByID(ctx, grant.FileID, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("share grant %s: %w", grantID, domain.ErrNotFound)
		}
		return err
	}

	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.shareRepo.Delete(txCtx, grantID); err != nil {
			return err
		}

		remaining, err := s.shareRepo.CountActiveByFile(txCtx, file.ID, s.now())
		if err != nil {
			return fmt.Errorf("count remaining grants: %w", err)
		}
		if remaining == 0 {
			return s.fileRepo.SetShared(txCtx, file.ID, ownerID, false)
		}
		return nil
	})
}

func (s *shareService) validateShareRequest(req *services.ShareRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.FileID, validation.Required.Error("file_id is required")),
	); err != nil {
		return err
	}
	if !req.AccessLevel.Valid() {
		return fmt.Errorf("access_level must be %q or %q", models.AccessView, models.AccessEdit)
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.After(s.now()) {
		return fmt.Errorf("expires_at must be in the future")
	}
	return nil
}
