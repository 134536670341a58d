package service

import (
	"context"
	"errors"
	"testing"

	"filevault/internal/domain"
	"filevault/internal/domain/services"
)

func TestCreateFolder(t *testing.T) {
	env := newTestEnv(t)

	root := env.mustCreateFolder(t, "Documents", nil)
	if root.ParentID != nil {
		t.Errorf("expected root folder to have nil parent, got %v", *root.ParentID)
	}
	if root.ID == "" {
		t.Error("expected folder to get an ID")
	}

	child := env.mustCreateFolder(t, "Reports", &root.ID)
	if child.ParentID == nil || *child.ParentID != root.ID {
		t.Errorf("expected child parent %s, got %v", root.ID, child.ParentID)
	}
}

func TestCreateFolder_DuplicateName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	existing := env.mustCreateFolder(t, "Documents", nil)

	_, err := env.folderSvc.CreateFolder(ctx, &services.CreateFolderRequest{
		OwnerID: testOwner,
		Name:    "Documents",
	})
	if err == nil {
		t.Fatal("expected duplicate name error")
	}
	if !errors.Is(err, domain.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	var dupErr *domain.DuplicateNameError
	if !errors.As(err, &dupErr) {
		t.Fatalf("expected DuplicateNameError, got %T", err)
	}
	if dupErr.ResourceID != existing.ID {
		t.Errorf("expected conflict with %s, got %s", existing.ID, dupErr.ResourceID)
	}

	// Same name under a different parent is fine
	other := env.mustCreateFolder(t, "Archive", nil)
	if _, err := env.folderSvc.CreateFolder(ctx, &services.CreateFolderRequest{
		OwnerID:  testOwner,
		Name:     "Documents",
		ParentID: &other.ID,
	}); err != nil {
		t.Errorf("same name under different parent should succeed, got %v", err)
	}
}

func TestCreateFolder_DuplicateNameIgnoresTrashed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	old := env.mustCreateFolder(t, "Documents", nil)
	if err := env.itemSvc.Trash(ctx, testOwner, "folder", old.ID); err != nil {
		t.Fatalf("trash folder: %v", err)
	}

	// The trashed folder no longer blocks the name
	if _, err := env.folderSvc.CreateFolder(ctx, &services.CreateFolderRequest{
		OwnerID: testOwner,
		Name:    "Documents",
	}); err != nil {
		t.Errorf("trashed sibling should not block the name, got %v", err)
	}
}

func TestCreateFolder_InvalidParent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	missing := "11111111-1111-1111-1111-111111111111"
	_, err := env.folderSvc.CreateFolder(ctx, &services.CreateFolderRequest{
		OwnerID:  testOwner,
		Name:     "Orphan",
		ParentID: &missing,
	})
	if !errors.Is(err, domain.ErrInvalidParent) {
		t.Fatalf("expected ErrInvalidParent for missing parent, got %v", err)
	}

	// A trashed parent is just as invalid
	parent := env.mustCreateFolder(t, "Doomed", nil)
	if err := env.itemSvc.Trash(ctx, testOwner, "folder", parent.ID); err != nil {
		t.Fatalf("trash folder: %v", err)
	}
	_, err = env.folderSvc.CreateFolder(ctx, &services.CreateFolderRequest{
		OwnerID:  testOwner,
		Name:     "Child",
		ParentID: &parent.ID,
	})
	if !errors.Is(err, domain.ErrInvalidParent) {
		t.Fatalf("expected ErrInvalidParent for trashed parent, got %v", err)
	}
}

func TestCreateFolder_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		folderName string
	}{
		{name: "empty name", folderName: ""},
		{name: "name too long", folderName: string(make([]byte, 300))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.folderSvc.CreateFolder(ctx, &services.CreateFolderRequest{
				OwnerID: testOwner,
				Name:    tt.folderName,
			})
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

func TestCreateFolder_OwnerScoping(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder := env.mustCreateFolder(t, "Private", nil)

	otherOwner := "00000000-0000-0000-0000-000000000002"
	if _, err := env.folderSvc.GetFolder(ctx, folder.ID, otherOwner); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign owner, got %v", err)
	}
}
