package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"filevault/internal/domain"
	"filevault/internal/domain/models"
	"filevault/internal/domain/repositories"
)

type folderRecord struct {
	folder models.Folder
	seq    int64
}

// MemoryFolderRepository implements FolderRepository on a shared Store
type MemoryFolderRepository struct {
	store *Store
}

// NewFolderRepository creates a folder repository backed by the store
func NewFolderRepository(store *Store) repositories.FolderRepository {
	return &MemoryFolderRepository{store: store}
}

func (r *MemoryFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, rec := range r.store.folders {
		if rec.folder.OwnerID == folder.OwnerID &&
			rec.folder.Name == folder.Name &&
			!rec.folder.Trashed &&
			sameParent(rec.folder.ParentID, folder.ParentID) {
			return &domain.DuplicateNameError{
				Message:      fmt.Sprintf("a folder named %q already exists in this location", folder.Name),
				ResourceType: "folder",
				ResourceID:   rec.folder.ID,
			}
		}
	}

	if folder.ID == "" {
		folder.ID = uuid.NewString()
	}
	// Timestamps come from the store clock, like column defaults would
	now := r.store.now()
	folder.CreatedAt = now
	folder.UpdatedAt = now

	r.store.folders[folder.ID] = &folderRecord{folder: *folder, seq: r.store.nextSeq()}
	return nil
}

func (r *MemoryFolderRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Folder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.folders[id]
	if !ok || rec.folder.OwnerID != ownerID {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	folder := rec.folder
	return &folder, nil
}

func (r *MemoryFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.folders[folder.ID]
	if !ok || rec.folder.OwnerID != folder.OwnerID {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}

	rec.folder.Name = folder.Name
	rec.folder.ParentID = folder.ParentID
	rec.folder.UpdatedAt = r.store.now()
	folder.UpdatedAt = rec.folder.UpdatedAt
	return nil
}

func (r *MemoryFolderRepository) Delete(ctx context.Context, id, ownerID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.folders[id]
	if !ok || rec.folder.OwnerID != ownerID {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	delete(r.store.folders, id)
	return nil
}

func (r *MemoryFolderRepository) FindByNameAndParent(ctx context.Context, ownerID, name string, parentID *string) (*models.Folder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, rec := range r.store.folders {
		if rec.folder.OwnerID == ownerID &&
			rec.folder.Name == name &&
			!rec.folder.Trashed &&
			sameParent(rec.folder.ParentID, parentID) {
			folder := rec.folder
			return &folder, nil
		}
	}

	return nil, nil
}

func (r *MemoryFolderRepository) ListChildren(ctx context.Context, parentID *string, ownerID string) ([]models.Folder, error) {
	return r.collect(func(f *models.Folder) bool {
		return f.OwnerID == ownerID && !f.Trashed && sameParent(f.ParentID, parentID)
	}, bySeq), nil
}

func (r *MemoryFolderRepository) ListChildrenAll(ctx context.Context, parentID *string, ownerID string) ([]models.Folder, error) {
	return r.collect(func(f *models.Folder) bool {
		return f.OwnerID == ownerID && sameParent(f.ParentID, parentID)
	}, bySeq), nil
}

func (r *MemoryFolderRepository) ListStarred(ctx context.Context, ownerID string) ([]models.Folder, error) {
	return r.collect(func(f *models.Folder) bool {
		return f.OwnerID == ownerID && f.Starred && !f.Trashed
	}, bySeq), nil
}

func (r *MemoryFolderRepository) ListShared(ctx context.Context, ownerID string) ([]models.Folder, error) {
	return r.collect(func(f *models.Folder) bool {
		return f.OwnerID == ownerID && f.Shared && !f.Trashed
	}, bySeq), nil
}

func (r *MemoryFolderRepository) ListTrashed(ctx context.Context, ownerID string) ([]models.Folder, error) {
	return r.collect(func(f *models.Folder) bool {
		return f.OwnerID == ownerID && f.Trashed
	}, bySeq), nil
}

func (r *MemoryFolderRepository) ListRecent(ctx context.Context, ownerID string, limit int) ([]models.Folder, error) {
	folders := r.collect(func(f *models.Folder) bool {
		return f.OwnerID == ownerID && !f.Trashed
	}, byUpdatedDesc)

	if len(folders) > limit {
		folders = folders[:limit]
	}
	return folders, nil
}

func (r *MemoryFolderRepository) SearchByName(ctx context.Context, ownerID, query string) ([]models.Folder, error) {
	needle := strings.ToLower(query)
	return r.collect(func(f *models.Folder) bool {
		return f.OwnerID == ownerID && !f.Trashed &&
			strings.Contains(strings.ToLower(f.Name), needle)
	}, bySeq), nil
}

func (r *MemoryFolderRepository) SetStarred(ctx context.Context, id, ownerID string, starred bool) error {
	return r.setFlag(id, ownerID, func(f *models.Folder) { f.Starred = starred })
}

func (r *MemoryFolderRepository) SetTrashed(ctx context.Context, id, ownerID string, trashed bool) error {
	return r.setFlag(id, ownerID, func(f *models.Folder) { f.Trashed = trashed })
}

func (r *MemoryFolderRepository) setFlag(id, ownerID string, apply func(*models.Folder)) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.folders[id]
	if !ok || rec.folder.OwnerID != ownerID {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	apply(&rec.folder)
	rec.folder.UpdatedAt = r.store.now()
	return nil
}

func (r *MemoryFolderRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	count := 0
	for _, rec := range r.store.folders {
		if rec.folder.OwnerID == ownerID && !rec.folder.Trashed {
			count++
		}
	}
	return count, nil
}

type folderOrder func(a, b *folderRecord) bool

func bySeq(a, b *folderRecord) bool {
	return a.seq < b.seq
}

func byUpdatedDesc(a, b *folderRecord) bool {
	if !a.folder.UpdatedAt.Equal(b.folder.UpdatedAt) {
		return a.folder.UpdatedAt.After(b.folder.UpdatedAt)
	}
	return a.seq > b.seq
}

func (r *MemoryFolderRepository) collect(match func(*models.Folder) bool, less folderOrder) []models.Folder {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var recs []*folderRecord
	for _, rec := range r.store.folders {
		if match(&rec.folder) {
			recs = append(recs, rec)
		}
	}

	sort.Slice(recs, func(i, j int) bool { return less(recs[i], recs[j]) })

	folders := make([]models.Folder, 0, len(recs))
	for _, rec := range recs {
		folders = append(folders, rec.folder)
	}
	return folders
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
