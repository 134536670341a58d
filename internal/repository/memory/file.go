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

type fileRecord struct {
	file models.File
	seq  int64
}

// MemoryFileRepository implements FileRepository on a shared Store
type MemoryFileRepository struct {
	store *Store
}

// NewFileRepository creates a file repository backed by the store
func NewFileRepository(store *Store) repositories.FileRepository {
	return &MemoryFileRepository{store: store}
}

func (r *MemoryFileRepository) Create(ctx context.Context, file *models.File) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, rec := range r.store.files {
		if rec.file.OwnerID == file.OwnerID &&
			rec.file.Name == file.Name &&
			!rec.file.Trashed &&
			sameParent(rec.file.ParentID, file.ParentID) {
			return &domain.DuplicateNameError{
				Message:      fmt.Sprintf("a file named %q already exists in this location", file.Name),
				ResourceType: "file",
				ResourceID:   rec.file.ID,
			}
		}
	}

	if file.ID == "" {
		file.ID = uuid.NewString()
	}
	// Timestamps come from the store clock, like column defaults would
	now := r.store.now()
	file.CreatedAt = now
	file.UpdatedAt = now

	r.store.files[file.ID] = &fileRecord{file: *file, seq: r.store.nextSeq()}
	return nil
}

func (r *MemoryFileRepository) GetByID(ctx context.Context, id, ownerID string) (*models.File, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.files[id]
	if !ok || rec.file.OwnerID != ownerID {
		return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	file := rec.file
	return &file, nil
}

func (r *MemoryFileRepository) GetByIDOnly(ctx context.Context, id string) (*models.File, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.files[id]
	if !ok {
		return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	file := rec.file
	return &file, nil
}

func (r *MemoryFileRepository) Update(ctx context.Context, file *models.File) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.files[file.ID]
	if !ok || rec.file.OwnerID != file.OwnerID {
		return fmt.Errorf("file %s: %w", file.ID, domain.ErrNotFound)
	}

	rec.file.Name = file.Name
	rec.file.ParentID = file.ParentID
	rec.file.UpdatedAt = r.store.now()
	file.UpdatedAt = rec.file.UpdatedAt
	return nil
}

func (r *MemoryFileRepository) Delete(ctx context.Context, id, ownerID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.files[id]
	if !ok || rec.file.OwnerID != ownerID {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	delete(r.store.files, id)
	return nil
}

func (r *MemoryFileRepository) ListChildren(ctx context.Context, parentID *string, ownerID string) ([]models.File, error) {
	return r.collect(func(f *models.File) bool {
		return f.OwnerID == ownerID && !f.Trashed && sameParent(f.ParentID, parentID)
	}, fileBySeq), nil
}

func (r *MemoryFileRepository) ListChildrenAll(ctx context.Context, parentID *string, ownerID string) ([]models.File, error) {
	return r.collect(func(f *models.File) bool {
		return f.OwnerID == ownerID && sameParent(f.ParentID, parentID)
	}, fileBySeq), nil
}

func (r *MemoryFileRepository) ListStarred(ctx context.Context, ownerID string) ([]models.File, error) {
	return r.collect(func(f *models.File) bool {
		return f.OwnerID == ownerID && f.Starred && !f.Trashed
	}, fileBySeq), nil
}

func (r *MemoryFileRepository) ListShared(ctx context.Context, ownerID string) ([]models.File, error) {
	return r.collect(func(f *models.File) bool {
		return f.OwnerID == ownerID && f.Shared && !f.Trashed
	}, fileBySeq), nil
}

func (r *MemoryFileRepository) ListTrashed(ctx context.Context, ownerID string) ([]models.File, error) {
	return r.collect(func(f *models.File) bool {
		return f.OwnerID == ownerID && f.Trashed
	}, fileBySeq), nil
}

func (r *MemoryFileRepository) ListRecent(ctx context.Context, ownerID string, limit int) ([]models.File, error) {
	files := r.collect(func(f *models.File) bool {
		return f.OwnerID == ownerID && !f.Trashed
	}, fileByUpdatedDesc)

	if len(files) > limit {
		files = files[:limit]
	}
	return files, nil
}

func (r *MemoryFileRepository) ListAllByOwner(ctx context.Context, ownerID string) ([]models.File, error) {
	return r.collect(func(f *models.File) bool {
		return f.OwnerID == ownerID && !f.Trashed
	}, fileBySeq), nil
}

func (r *MemoryFileRepository) SearchByName(ctx context.Context, ownerID, query string) ([]models.File, error) {
	needle := strings.ToLower(query)
	return r.collect(func(f *models.File) bool {
		return f.OwnerID == ownerID && !f.Trashed &&
			strings.Contains(strings.ToLower(f.Name), needle)
	}, fileBySeq), nil
}

func (r *MemoryFileRepository) SetStarred(ctx context.Context, id, ownerID string, starred bool) error {
	return r.setFlag(id, ownerID, true, func(f *models.File) { f.Starred = starred })
}

func (r *MemoryFileRepository) SetTrashed(ctx context.Context, id, ownerID string, trashed bool) error {
	return r.setFlag(id, ownerID, true, func(f *models.File) { f.Trashed = trashed })
}

func (r *MemoryFileRepository) SetShared(ctx context.Context, id, ownerID string, shared bool) error {
	return r.setFlag(id, ownerID, false, func(f *models.File) { f.Shared = shared })
}

func (r *MemoryFileRepository) setFlag(id, ownerID string, touch bool, apply func(*models.File)) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.files[id]
	if !ok || rec.file.OwnerID != ownerID {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	apply(&rec.file)
	if touch {
		rec.file.UpdatedAt = r.store.now()
	}
	return nil
}

type fileOrder func(a, b *fileRecord) bool

func fileBySeq(a, b *fileRecord) bool {
	return a.seq < b.seq
}

func fileByUpdatedDesc(a, b *fileRecord) bool {
	if !a.file.UpdatedAt.Equal(b.file.UpdatedAt) {
		return a.file.UpdatedAt.After(b.file.UpdatedAt)
	}
	return a.seq > b.seq
}

func (r *MemoryFileRepository) collect(match func(*models.File) bool, less fileOrder) []models.File {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var recs []*fileRecord
	for _, rec := range r.store.files {
		if match(&rec.file) {
			recs = append(recs, rec)
		}
	}

	sort.Slice(recs, func(i, j int) bool { return less(recs[i], recs[j]) })

	files := make([]models.File, 0, len(recs))
	for _, rec := range recs {
		files = append(files, rec.file)
	}
	return files
}
