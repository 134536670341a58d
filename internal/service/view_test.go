package service

import (
	"context"
	"testing"

	"filevault/internal/domain/models"
)

func TestSelectView_AllIsFolderScoped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder := env.mustCreateFolder(t, "docs", nil)
	env.mustUpload(t, "root.txt", "text/plain", "r", nil)
	inner := env.mustUpload(t, "inner.txt", "text/plain", "i", &folder.ID)

	items, err := env.viewSvc.SelectView(ctx, testOwner, models.ViewAll, &folder.ID)
	if err != nil {
		t.Fatalf("select all view: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item inside the folder, got %d", len(items))
	}
	if items[0].ID != inner.ID {
		t.Errorf("expected %s, got %s", inner.ID, items[0].ID)
	}

	// Root scope: the folder and the root file, folders first
	items, err = env.viewSvc.SelectView(ctx, testOwner, models.ViewAll, nil)
	if err != nil {
		t.Fatalf("select all view at root: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items at root, got %d", len(items))
	}
	if items[0].Kind != models.KindFolder {
		t.Errorf("expected folders before files, got %s first", items[0].Kind)
	}
}

func TestSelectView_StarredSpansTree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder := env.mustCreateFolder(t, "docs", nil)
	nested := env.mustUpload(t, "nested.txt", "text/plain", "n", &folder.ID)
	env.mustUpload(t, "plain.txt", "text/plain", "p", nil)

	if _, err := env.itemSvc.SetStarred(ctx, testOwner, models.KindFile, nested.ID, true); err != nil {
		t.Fatalf("star file: %v", err)
	}
	if _, err := env.itemSvc.SetStarred(ctx, testOwner, models.KindFolder, folder.ID, true); err != nil {
		t.Fatalf("star folder: %v", err)
	}

	items, err := env.viewSvc.SelectView(ctx, testOwner, models.ViewStarred, nil)
	if err != nil {
		t.Fatalf("select starred view: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 starred items, got %d", len(items))
	}
	if items[0].Kind != models.KindFolder || items[1].Kind != models.KindFile {
		t.Error("expected starred folder before starred file")
	}
}

func TestSelectView_TrashShowsOnlyTrashed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	keep := env.mustUpload(t, "keep.txt", "text/plain", "k", nil)
	gone := env.mustUpload(t, "gone.txt", "text/plain", "g", nil)
	if err := env.itemSvc.Trash(ctx, testOwner, models.KindFile, gone.ID); err != nil {
		t.Fatalf("trash file: %v", err)
	}

	items, err := env.viewSvc.SelectView(ctx, testOwner, models.ViewTrash, nil)
	if err != nil {
		t.Fatalf("select trash view: %v", err)
	}
	if len(items) != 1 || items[0].ID != gone.ID {
		t.Fatalf("expected only the trashed file in trash view, got %d items", len(items))
	}

	// The trashed file disappears from "all"
	items, err = env.viewSvc.SelectView(ctx, testOwner, models.ViewAll, nil)
	if err != nil {
		t.Fatalf("select all view: %v", err)
	}
	if len(items) != 1 || items[0].ID != keep.ID {
		t.Fatalf("expected only the kept file in all view, got %d items", len(items))
	}
}

func TestSelectView_RecentOrderAndLimit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var last *models.File
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		last = env.mustUpload(t, name, "text/plain", "x", nil)
	}
	folder := env.mustCreateFolder(t, "newest", nil)

	items, err := env.viewSvc.SelectView(ctx, testOwner, models.ViewRecent, nil)
	if err != nil {
		t.Fatalf("select recent view: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 recent items, got %d", len(items))
	}
	// Most recently touched first, regardless of kind
	if items[0].ID != folder.ID {
		t.Errorf("expected the newest folder first, got %s", items[0].Name)
	}
	if items[1].ID != last.ID {
		t.Errorf("expected c.txt second, got %s", items[1].Name)
	}
}

func TestSelectView_RecentBumpsOnUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.mustUpload(t, "first.txt", "text/plain", "1", nil)
	env.mustUpload(t, "second.txt", "text/plain", "2", nil)

	if _, err := env.itemSvc.SetStarred(ctx, testOwner, models.KindFile, first.ID, true); err != nil {
		t.Fatalf("star file: %v", err)
	}

	items, err := env.viewSvc.SelectView(ctx, testOwner, models.ViewRecent, nil)
	if err != nil {
		t.Fatalf("select recent view: %v", err)
	}
	if items[0].ID != first.ID {
		t.Errorf("expected starred file to bump to front of recent, got %s", items[0].Name)
	}
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustCreateFolder(t, "Project Reports", nil)
	env.mustUpload(t, "report-final.pdf", "application/pdf", "pdf", nil)
	trashed := env.mustUpload(t, "report-old.pdf", "application/pdf", "pdf", nil)
	if err := env.itemSvc.Trash(ctx, testOwner, models.KindFile, trashed.ID); err != nil {
		t.Fatalf("trash file: %v", err)
	}

	results, err := env.searchSvc.Search(ctx, testOwner, "report")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results.Folders) != 1 {
		t.Errorf("expected 1 folder match, got %d", len(results.Folders))
	}
	if len(results.Files) != 1 {
		t.Errorf("expected 1 file match (trashed excluded), got %d", len(results.Files))
	}

	// Case-insensitive
	results, err = env.searchSvc.Search(ctx, testOwner, "REPORT")
	if err != nil {
		t.Fatalf("search uppercase: %v", err)
	}
	if len(results.Folders) != 1 || len(results.Files) != 1 {
		t.Error("expected case-insensitive matching")
	}
}

func TestSearch_EmptyQueryMatchesNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustUpload(t, "anything.txt", "text/plain", "x", nil)

	for _, q := range []string{"", "   "} {
		results, err := env.searchSvc.Search(ctx, testOwner, q)
		if err != nil {
			t.Fatalf("search %q: %v", q, err)
		}
		if len(results.Folders) != 0 || len(results.Files) != 0 {
			t.Errorf("expected empty results for query %q", q)
		}
	}
}
