package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"filevault/internal/domain"
	"filevault/internal/domain/models"
	"filevault/internal/domain/services"
)

func TestShareAndResolve(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	file := env.mustUpload(t, "spec.pdf", "application/pdf", "pdf bytes", nil)

	grant, err := env.shareSvc.Share(ctx, &services.ShareRequest{
		OwnerID:     testOwner,
		FileID:      file.ID,
		AccessLevel: models.AccessView,
	})
	if err != nil {
		t.Fatalf("share file: %v", err)
	}
	if grant.ID == "" {
		t.Error("expected grant to get an ID")
	}

	// The shared flag is denormalized onto the file
	got, err := env.fileSvc.GetFile(ctx, file.ID, testOwner)
	if err != nil {
		t.Fatalf("get file: %v", err)
	}
	if !got.Shared {
		t.Error("expected file to be marked shared")
	}

	shared, err := env.shareSvc.Resolve(ctx, grant.ID)
	if err != nil {
		t.Fatalf("resolve grant: %v", err)
	}
	if shared.Name != "spec.pdf" {
		t.Errorf("expected name spec.pdf, got %q", shared.Name)
	}
	if shared.SizeBytes != int64(len("pdf bytes")) {
		t.Errorf("unexpected size %d", shared.SizeBytes)
	}
	if shared.AccessLevel != models.AccessView {
		t.Errorf("unexpected access level %s", shared.AccessLevel)
	}
	if shared.URL == "" {
		t.Error("expected a signed URL")
	}
}

func TestShare_ForeignFile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	file := env.mustUpload(t, "mine.txt", "text/plain", "m", nil)

	_, err := env.shareSvc.Share(ctx, &services.ShareRequest{
		OwnerID:     "00000000-0000-0000-0000-000000000002",
		FileID:      file.ID,
		AccessLevel: models.AccessView,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign file, got %v", err)
	}
}

func TestShare_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	file := env.mustUpload(t, "v.txt", "text/plain", "v", nil)
	past := time.Now().Add(-time.Hour)

	tests := []struct {
		name string
		req  *services.ShareRequest
	}{
		{
			name: "missing file id",
			req:  &services.ShareRequest{OwnerID: testOwner, AccessLevel: models.AccessView},
		},
		{
			name: "bad access level",
			req:  &services.ShareRequest{OwnerID: testOwner, FileID: file.ID, AccessLevel: "owner"},
		},
		{
			name: "expiry in the past",
			req:  &services.ShareRequest{OwnerID: testOwner, FileID: file.ID, AccessLevel: models.AccessView, ExpiresAt: &past},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.shareSvc.Share(ctx, tt.req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var valErr *domain.ValidationError
			if !errors.As(err, &valErr) {
				t.Errorf("expected ValidationError, got %T: %v", err, err)
			}
		})
	}
}

func TestResolve_ExpiredGrant(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	file := env.mustUpload(t, "temp.txt", "text/plain", "t", nil)

	expiry := time.Now().Add(time.Minute)
	grant, err := env.shareSvc.Share(ctx, &services.ShareRequest{
		OwnerID:     testOwner,
		FileID:      file.ID,
		AccessLevel: models.AccessView,
		ExpiresAt:   &expiry,
	})
	if err != nil {
		t.Fatalf("share file: %v", err)
	}

	// Fine before expiry
	if _, err := env.shareSvc.Resolve(ctx, grant.ID); err != nil {
		t.Fatalf("resolve before expiry: %v", err)
	}

	// Push the grant into the past directly and resolve again
	past := time.Now().Add(-time.Minute)
	grant.ExpiresAt = &past
	if err := env.shares.Delete(ctx, grant.ID); err != nil {
		t.Fatalf("reset grant: %v", err)
	}
	if err := env.shares.Create(ctx, grant); err != nil {
		t.Fatalf("recreate grant: %v", err)
	}

	if _, err := env.shareSvc.Resolve(ctx, grant.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for expired grant, got %v", err)
	}
}

func TestResolve_TrashedFileHidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	file := env.mustUpload(t, "hidden.txt", "text/plain", "h", nil)
	grant, err := env.shareSvc.Share(ctx, &services.ShareRequest{
		OwnerID:     testOwner,
		FileID:      file.ID,
		AccessLevel: models.AccessView,
	})
	if err != nil {
		t.Fatalf("share file: %v", err)
	}

	if err := env.itemSvc.Trash(ctx, testOwner, models.KindFile, file.ID); err != nil {
		t.Fatalf("trash file: %v", err)
	}

	if _, err := env.shareSvc.Resolve(ctx, grant.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for trashed file, got %v", err)
	}
}

func TestRevoke_LastGrantClearsSharedFlag(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	file := env.mustUpload(t, "multi.txt", "text/plain", "m", nil)

	first, err := env.shareSvc.Share(ctx, &services.ShareRequest{
		OwnerID:     testOwner,
		FileID:      file.ID,
		AccessLevel: models.AccessView,
	})
	if err != nil {
		t.Fatalf("first share: %v", err)
	}
	second, err := env.shareSvc.Share(ctx, &services.ShareRequest{
		OwnerID:     testOwner,
		FileID:      file.ID,
		AccessLevel: models.AccessEdit,
	})
	if err != nil {
		t.Fatalf("second share: %v", err)
	}

	// Revoking one of two keeps the flag
	if err := env.shareSvc.Revoke(ctx, testOwner, first.ID); err != nil {
		t.Fatalf("revoke first: %v", err)
	}
	got, err := env.fileSvc.GetFile(ctx, file.ID, testOwner)
	if err != nil {
		t.Fatalf("get file: %v", err)
	}
	if !got.Shared {
		t.Error("expected file to stay shared with one grant left")
	}

	// Revoking the last grant clears it
	if err := env.shareSvc.Revoke(ctx, testOwner, second.ID); err != nil {
		t.Fatalf("revoke second: %v", err)
	}
	got, err = env.fileSvc.GetFile(ctx, file.ID, testOwner)
	if err != nil {
		t.Fatalf("get file: %v", err)
	}
	if got.Shared {
		t.Error("expected shared flag cleared after last revoke")
	}
}

func TestRevoke_OnlyOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	file := env.mustUpload(t, "owned.txt", "text/plain", "o", nil)
	grant, err := env.shareSvc.Share(ctx, &services.ShareRequest{
		OwnerID:     testOwner,
		FileID:      file.ID,
		AccessLevel: models.AccessView,
	})
	if err != nil {
		t.Fatalf("share file: %v", err)
	}

	err = env.shareSvc.Revoke(ctx, "00000000-0000-0000-0000-000000000002", grant.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign revoke, got %v", err)
	}
}

func TestListGrants(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	file := env.mustUpload(t, "listed.txt", "text/plain", "l", nil)
	for i := 0; i < 3; i++ {
		if _, err := env.shareSvc.Share(ctx, &services.ShareRequest{
			OwnerID:     testOwner,
			FileID:      file.ID,
			AccessLevel: models.AccessView,
		}); err != nil {
			t.Fatalf("share %d: %v", i, err)
		}
	}

	grants, err := env.shareSvc.ListGrants(ctx, testOwner, file.ID)
	if err != nil {
		t.Fatalf("list grants: %v", err)
	}
	if len(grants) != 3 {
		t.Errorf("expected 3 grants, got %d", len(grants))
	}
}
