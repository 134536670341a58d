package services

import (
	"context"
	"time"

	"filevault/internal/domain/models"
)

// ShareService manages share grants and keeps the denormalized shared flag
// on files consistent with the set of active grants.
type ShareService interface {
	// Share inserts a grant and marks the file shared. Fails with
	// NotFoundError if the caller owns no such file.
	Share(ctx context.Context, req *ShareRequest) (*models.ShareGrant, error)

	// Resolve fetches file metadata and a signed download URL by grant ID.
	// Expired grants resolve as not found. No ownership check: the grant ID
	// is the capability.
	Resolve(ctx context.Context, grantID string) (*SharedFile, error)

	// ListGrants lists the grants for a file the caller owns
	ListGrants(ctx context.Context, ownerID, fileID string) ([]models.ShareGrant, error)

	// Revoke deletes a grant on a file the caller owns. Revoking the last
	// active grant clears the file's shared flag.
	Revoke(ctx context.Context, ownerID, grantID string) error
}

// ShareRequest represents a share creation request
type ShareRequest struct {
	OwnerID     string             `json:"-"`
	FileID      string             `json:"file_id"`
	SharedWith  *string            `json:"shared_with,omitempty"` // nil = public link
	AccessLevel models.AccessLevel `json:"access_level"`
	ExpiresAt   *time.Time         `json:"expires_at,omitempty"`
}

// SharedFile is the public resolution of a share grant
type SharedFile struct {
	Name        string             `json:"name"`
	MimeType    *string            `json:"file_type,omitempty"`
	SizeBytes   int64              `json:"size"`
	AccessLevel models.AccessLevel `json:"access_level"`
	URL         string             `json:"url"`
}
