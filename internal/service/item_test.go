package service

import (
	"context"
	"errors"
	"testing"

	"filevault/internal/domain"
	"filevault/internal/domain/models"
	"filevault/internal/domain/services"
)

func TestSetStarred_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	file := env.mustUpload(t, "notes.txt", "text/plain", "hello", nil)

	item, err := env.itemSvc.SetStarred(ctx, testOwner, models.KindFile, file.ID, true)
	if err != nil {
		t.Fatalf("star file: %v", err)
	}
	if !item.Starred {
		t.Error("expected item to be starred")
	}

	// Starring again is a no-op, not an error
	item, err = env.itemSvc.SetStarred(ctx, testOwner, models.KindFile, file.ID, true)
	if err != nil {
		t.Fatalf("star file twice: %v", err)
	}
	if !item.Starred {
		t.Error("expected item to stay starred")
	}

	item, err = env.itemSvc.SetStarred(ctx, testOwner, models.KindFile, file.ID, false)
	if err != nil {
		t.Fatalf("unstar file: %v", err)
	}
	if item.Starred {
		t.Error("expected item to be unstarred")
	}
}

func TestTrashRestore_CascadesSubtree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// root/
	//   sub/
	//     deep.txt
	//   top.txt
	root := env.mustCreateFolder(t, "root", nil)
	sub := env.mustCreateFolder(t, "sub", &root.ID)
	deep := env.mustUpload(t, "deep.txt", "text/plain", "deep", &sub.ID)
	top := env.mustUpload(t, "top.txt", "text/plain", "top", &root.ID)

	if err := env.itemSvc.Trash(ctx, testOwner, models.KindFolder, root.ID); err != nil {
		t.Fatalf("trash root: %v", err)
	}

	for _, id := range []string{root.ID, sub.ID} {
		folder, err := env.folderSvc.GetFolder(ctx, id, testOwner)
		if err != nil {
			t.Fatalf("get folder %s: %v", id, err)
		}
		if !folder.Trashed {
			t.Errorf("expected folder %s to be trashed", folder.Name)
		}
	}
	for _, id := range []string{deep.ID, top.ID} {
		file, err := env.fileSvc.GetFile(ctx, id, testOwner)
		if err != nil {
			t.Fatalf("get file %s: %v", id, err)
		}
		if !file.Trashed {
			t.Errorf("expected file %s to be trashed", file.Name)
		}
	}

	// Restore brings the whole subtree back
	if err := env.itemSvc.Restore(ctx, testOwner, models.KindFolder, root.ID); err != nil {
		t.Fatalf("restore root: %v", err)
	}

	folder, err := env.folderSvc.GetFolder(ctx, sub.ID, testOwner)
	if err != nil {
		t.Fatalf("get folder: %v", err)
	}
	if folder.Trashed {
		t.Error("expected subfolder to be restored")
	}
	file, err := env.fileSvc.GetFile(ctx, deep.ID, testOwner)
	if err != nil {
		t.Fatalf("get file: %v", err)
	}
	if file.Trashed {
		t.Error("expected nested file to be restored")
	}
}

func TestDeletePermanently_RequiresTrash(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	file := env.mustUpload(t, "keep.txt", "text/plain", "keep me", nil)

	err := env.itemSvc.DeletePermanently(ctx, testOwner, models.KindFile, file.ID)
	if !errors.Is(err, domain.ErrNotInTrash) {
		t.Fatalf("expected ErrNotInTrash for untrashed file, got %v", err)
	}

	// Still intact
	if _, err := env.fileSvc.GetFile(ctx, file.ID, testOwner); err != nil {
		t.Fatalf("file should survive rejected delete: %v", err)
	}
}

func TestDeletePermanently_FileRemovesBlobAndGrants(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	file := env.mustUpload(t, "gone.txt", "text/plain", "bye", nil)
	if !env.blobs.Has(file.BlobKey) {
		t.Fatal("expected blob to exist after upload")
	}

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
	if err := env.itemSvc.DeletePermanently(ctx, testOwner, models.KindFile, file.ID); err != nil {
		t.Fatalf("delete file: %v", err)
	}

	if _, err := env.fileSvc.GetFile(ctx, file.ID, testOwner); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected file record to be gone, got %v", err)
	}
	if env.blobs.Has(file.BlobKey) {
		t.Error("expected blob to be removed")
	}
	if _, err := env.shareSvc.Resolve(ctx, grant.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected grant to be gone, got %v", err)
	}
}

func TestDeletePermanently_FolderSubtree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.mustCreateFolder(t, "root", nil)
	sub := env.mustCreateFolder(t, "sub", &root.ID)
	deep := env.mustUpload(t, "deep.txt", "text/plain", "deep", &sub.ID)

	if err := env.itemSvc.Trash(ctx, testOwner, models.KindFolder, root.ID); err != nil {
		t.Fatalf("trash root: %v", err)
	}
	if err := env.itemSvc.DeletePermanently(ctx, testOwner, models.KindFolder, root.ID); err != nil {
		t.Fatalf("delete root: %v", err)
	}

	if _, err := env.folderSvc.GetFolder(ctx, sub.ID, testOwner); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected subfolder to be gone, got %v", err)
	}
	if _, err := env.fileSvc.GetFile(ctx, deep.ID, testOwner); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected nested file to be gone, got %v", err)
	}
	if env.blobs.Len() != 0 {
		t.Errorf("expected all blobs removed, %d remain", env.blobs.Len())
	}
}

func TestUpdate_Rename(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder := env.mustCreateFolder(t, "Old Name", nil)

	newName := "New Name"
	item, err := env.itemSvc.Update(ctx, testOwner, models.KindFolder, folder.ID, &services.UpdateItemRequest{
		Name: &newName,
	})
	if err != nil {
		t.Fatalf("rename folder: %v", err)
	}
	if item.Name != newName {
		t.Errorf("expected name %q, got %q", newName, item.Name)
	}
	if !item.UpdatedAt.After(folder.UpdatedAt) {
		t.Error("expected updated_at to advance on rename")
	}
}

func TestUpdate_RenameConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustCreateFolder(t, "Taken", nil)
	folder := env.mustCreateFolder(t, "Free", nil)

	taken := "Taken"
	_, err := env.itemSvc.Update(ctx, testOwner, models.KindFolder, folder.ID, &services.UpdateItemRequest{
		Name: &taken,
	})
	if !errors.Is(err, domain.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestUpdate_MoveToRootAndBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	parent := env.mustCreateFolder(t, "parent", nil)
	file := env.mustUpload(t, "doc.txt", "text/plain", "doc", &parent.ID)

	// Move to root: parent present and null
	item, err := env.itemSvc.Update(ctx, testOwner, models.KindFile, file.ID, &services.UpdateItemRequest{
		Parent: services.OptionalParent{Present: true, Value: nil},
	})
	if err != nil {
		t.Fatalf("move to root: %v", err)
	}
	if item.ParentID != nil {
		t.Errorf("expected nil parent after move to root, got %v", *item.ParentID)
	}

	// Absent parent field leaves location alone
	newName := "doc2.txt"
	item, err = env.itemSvc.Update(ctx, testOwner, models.KindFile, file.ID, &services.UpdateItemRequest{
		Name: &newName,
	})
	if err != nil {
		t.Fatalf("rename without move: %v", err)
	}
	if item.ParentID != nil {
		t.Error("rename must not change the parent")
	}

	// And back under the folder
	item, err = env.itemSvc.Update(ctx, testOwner, models.KindFile, file.ID, &services.UpdateItemRequest{
		Parent: services.OptionalParent{Present: true, Value: &parent.ID},
	})
	if err != nil {
		t.Fatalf("move under folder: %v", err)
	}
	if item.ParentID == nil || *item.ParentID != parent.ID {
		t.Errorf("expected parent %s, got %v", parent.ID, item.ParentID)
	}
}

func TestUpdate_RejectsMoveIntoOwnSubtree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.mustCreateFolder(t, "a", nil)
	b := env.mustCreateFolder(t, "b", &a.ID)
	c := env.mustCreateFolder(t, "c", &b.ID)

	tests := []struct {
		name   string
		target string
	}{
		{name: "into itself", target: a.ID},
		{name: "into direct child", target: b.ID},
		{name: "into grandchild", target: c.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.itemSvc.Update(ctx, testOwner, models.KindFolder, a.ID, &services.UpdateItemRequest{
				Parent: services.OptionalParent{Present: true, Value: &tt.target},
			})
			if !errors.Is(err, domain.ErrInvalidParent) {
				t.Fatalf("expected ErrInvalidParent, got %v", err)
			}
		})
	}
}

func TestUpdate_NothingToUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder := env.mustCreateFolder(t, "f", nil)

	_, err := env.itemSvc.Update(ctx, testOwner, models.KindFolder, folder.ID, &services.UpdateItemRequest{})
	if err == nil {
		t.Fatal("expected error for empty update")
	}
	var valErr *domain.ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("expected ValidationError, got %T", err)
	}
}
