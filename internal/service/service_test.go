package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"filevault/internal/blob"
	"filevault/internal/categories"
	"filevault/internal/domain/models"
	"filevault/internal/domain/repositories"
	"filevault/internal/domain/services"
	"filevault/internal/repository/memory"
)

const testOwner = "00000000-0000-0000-0000-000000000001"

// testEnv wires the full service graph onto in-memory stores
type testEnv struct {
	store   *memory.Store
	blobs   *blob.MemoryStore
	clock   *fakeClock
	folders repositories.FolderRepository
	files   repositories.FileRepository
	shares  repositories.ShareRepository

	folderSvc  services.FolderService
	fileSvc    services.FileService
	treeSvc    services.TreeService
	viewSvc    services.ViewService
	searchSvc  services.SearchService
	itemSvc    services.ItemService
	shareSvc   services.ShareService
	storageSvc services.StorageService
}

// fakeClock advances one second per reading so every write gets a
// distinct, ordered timestamp
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	clock := newFakeClock()
	store.SetClock(clock.Now)

	blobs := blob.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	folders := memory.NewFolderRepository(store)
	files := memory.NewFileRepository(store)
	shares := memory.NewShareRepository(store)
	txManager := store.TransactionManager()

	registry, err := categories.NewRegistry()
	if err != nil {
		t.Fatalf("load category registry: %v", err)
	}

	validator := NewParentValidator(folders)

	return &testEnv{
		store:      store,
		blobs:      blobs,
		clock:      clock,
		folders:    folders,
		files:      files,
		shares:     shares,
		folderSvc:  NewFolderService(folders, validator, logger),
		fileSvc:    NewFileService(files, validator, blobs, logger),
		treeSvc:    NewTreeService(folders, files, logger),
		viewSvc:    NewViewService(folders, files, logger),
		searchSvc:  NewSearchService(folders, files, logger),
		itemSvc:    NewItemService(folders, files, shares, blobs, txManager, validator, logger),
		shareSvc:   NewShareService(shares, files, blobs, txManager, logger),
		storageSvc: NewStorageService(files, folders, registry, 15<<30, logger),
	}
}

func (e *testEnv) mustCreateFolder(t *testing.T, name string, parentID *string) *models.Folder {
	t.Helper()
	folder, err := e.folderSvc.CreateFolder(context.Background(), &services.CreateFolderRequest{
		OwnerID:  testOwner,
		Name:     name,
		ParentID: parentID,
	})
	if err != nil {
		t.Fatalf("create folder %q: %v", name, err)
	}
	return folder
}

func (e *testEnv) mustUpload(t *testing.T, name, mimeType, content string, parentID *string) *models.File {
	t.Helper()
	var mt *string
	if mimeType != "" {
		mt = &mimeType
	}
	file, err := e.fileSvc.Upload(context.Background(), &services.UploadRequest{
		OwnerID:   testOwner,
		Name:      name,
		MimeType:  mt,
		ParentID:  parentID,
		Content:   strings.NewReader(content),
		SizeBytes: int64(len(content)),
	})
	if err != nil {
		t.Fatalf("upload file %q: %v", name, err)
	}
	return file
}
