package service

import (
	"context"
	"errors"
	"testing"

	"filevault/internal/domain"
	"filevault/internal/domain/models"
)

func TestResolvePath(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.mustCreateFolder(t, "a", nil)
	b := env.mustCreateFolder(t, "b", &a.ID)
	c := env.mustCreateFolder(t, "c", &b.ID)

	path, err := env.treeSvc.ResolvePath(ctx, testOwner, &c.ID)
	if err != nil {
		t.Fatalf("resolve path: %v", err)
	}

	want := []string{"a", "b", "c"}
	if len(path) != len(want) {
		t.Fatalf("expected path of %d segments, got %d", len(want), len(path))
	}
	for i, name := range want {
		if path[i].Name != name {
			t.Errorf("segment %d: expected %q, got %q", i, name, path[i].Name)
		}
	}
}

func TestResolvePath_Root(t *testing.T) {
	env := newTestEnv(t)

	path, err := env.treeSvc.ResolvePath(context.Background(), testOwner, nil)
	if err != nil {
		t.Fatalf("resolve root path: %v", err)
	}
	if len(path) != 0 {
		t.Errorf("expected empty path for root, got %d segments", len(path))
	}
}

func TestResolvePath_UnknownFolder(t *testing.T) {
	env := newTestEnv(t)

	missing := "11111111-1111-1111-1111-111111111111"
	_, err := env.treeSvc.ResolvePath(context.Background(), testOwner, &missing)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolvePath_DanglingParentTruncates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Build a folder whose parent pointer leads nowhere, bypassing the
	// service-level parent validation
	missing := "22222222-2222-2222-2222-222222222222"
	orphan := &models.Folder{
		OwnerID:  testOwner,
		ParentID: &missing,
		Name:     "orphan",
	}
	if err := env.folders.Create(ctx, orphan); err != nil {
		t.Fatalf("create orphan: %v", err)
	}

	path, err := env.treeSvc.ResolvePath(ctx, testOwner, &orphan.ID)
	if err != nil {
		t.Fatalf("resolve orphan path: %v", err)
	}
	if len(path) != 1 || path[0].Name != "orphan" {
		t.Fatalf("expected truncated single-segment path, got %d segments", len(path))
	}
}

func TestResolvePath_CycleFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.mustCreateFolder(t, "a", nil)
	b := env.mustCreateFolder(t, "b", &a.ID)

	// Corrupt the tree directly at the repository: a's parent becomes b
	a.ParentID = &b.ID
	if err := env.folders.Update(ctx, a); err != nil {
		t.Fatalf("corrupt tree: %v", err)
	}

	_, err := env.treeSvc.ResolvePath(ctx, testOwner, &b.ID)
	if !errors.Is(err, domain.ErrCorruptTree) {
		t.Fatalf("expected ErrCorruptTree, got %v", err)
	}
}

func TestListChildren_FoldersBeforeFiles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	parent := env.mustCreateFolder(t, "parent", nil)
	env.mustUpload(t, "file1.txt", "text/plain", "1", &parent.ID)
	env.mustCreateFolder(t, "child", &parent.ID)
	env.mustUpload(t, "file2.txt", "text/plain", "2", &parent.ID)

	contents, err := env.treeSvc.ListChildren(ctx, testOwner, &parent.ID)
	if err != nil {
		t.Fatalf("list children: %v", err)
	}

	if contents.Folder == nil || contents.Folder.ID != parent.ID {
		t.Error("expected the parent folder in the listing")
	}
	if len(contents.Folders) != 1 {
		t.Errorf("expected 1 child folder, got %d", len(contents.Folders))
	}
	if len(contents.Files) != 2 {
		t.Errorf("expected 2 child files, got %d", len(contents.Files))
	}
	// Insertion order within the file group
	if contents.Files[0].Name != "file1.txt" || contents.Files[1].Name != "file2.txt" {
		t.Error("expected files in insertion order")
	}
}

func TestListChildren_RootListing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustCreateFolder(t, "top", nil)
	env.mustUpload(t, "root.txt", "text/plain", "r", nil)

	contents, err := env.treeSvc.ListChildren(ctx, testOwner, nil)
	if err != nil {
		t.Fatalf("list root children: %v", err)
	}
	if contents.Folder != nil {
		t.Error("expected nil folder for the root listing")
	}
	if len(contents.Folders) != 1 || len(contents.Files) != 1 {
		t.Errorf("expected 1 folder and 1 file at root, got %d and %d",
			len(contents.Folders), len(contents.Files))
	}
}
