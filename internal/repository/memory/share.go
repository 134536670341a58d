package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"filevault/internal/domain"
	"filevault/internal/domain/models"
	"filevault/internal/domain/repositories"
)

type grantRecord struct {
	grant models.ShareGrant
	seq   int64
}

// MemoryShareRepository implements ShareRepository on a shared Store
type MemoryShareRepository struct {
	store *Store
}

// NewShareRepository creates a share repository backed by the store
func NewShareRepository(store *Store) repositories.ShareRepository {
	return &MemoryShareRepository{store: store}
}

func (r *MemoryShareRepository) Create(ctx context.Context, grant *models.ShareGrant) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.files[grant.FileID]; !ok {
		return fmt.Errorf("file %s: %w", grant.FileID, domain.ErrNotFound)
	}

	if grant.ID == "" {
		grant.ID = uuid.NewString()
	}
	if grant.CreatedAt.IsZero() {
		grant.CreatedAt = r.store.now()
	}

	r.store.grants[grant.ID] = &grantRecord{grant: *grant, seq: r.store.nextSeq()}
	return nil
}

func (r *MemoryShareRepository) GetByID(ctx context.Context, id string) (*models.ShareGrant, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.grants[id]
	if !ok {
		return nil, fmt.Errorf("share grant %s: %w", id, domain.ErrNotFound)
	}

	grant := rec.grant
	return &grant, nil
}

func (r *MemoryShareRepository) ListByFile(ctx context.Context, fileID string) ([]models.ShareGrant, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var recs []*grantRecord
	for _, rec := range r.store.grants {
		if rec.grant.FileID == fileID {
			recs = append(recs, rec)
		}
	}

	// Newest first
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq > recs[j].seq })

	grants := make([]models.ShareGrant, 0, len(recs))
	for _, rec := range recs {
		grants = append(grants, rec.grant)
	}
	return grants, nil
}

func (r *MemoryShareRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.grants[id]; !ok {
		return fmt.Errorf("share grant %s: %w", id, domain.ErrNotFound)
	}

	delete(r.store.grants, id)
	return nil
}

func (r *MemoryShareRepository) DeleteByFile(ctx context.Context, fileID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, rec := range r.store.grants {
		if rec.grant.FileID == fileID {
			delete(r.store.grants, id)
		}
	}
	return nil
}

func (r *MemoryShareRepository) CountActiveByFile(ctx context.Context, fileID string, now time.Time) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	count := 0
	for _, rec := range r.store.grants {
		if rec.grant.FileID == fileID && !rec.grant.Expired(now) {
			count++
		}
	}
	return count, nil
}
