package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"filevault/internal/domain"
	"filevault/internal/domain/models"
	"filevault/internal/domain/repositories"
)

const shareColumns = "id, file_id, shared_by, shared_with, access_level, expires_at, created_at"

// PostgresShareRepository implements the ShareRepository interface
type PostgresShareRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewShareRepository creates a new share repository
func NewShareRepository(config *RepositoryConfig) repositories.ShareRepository {
	return &PostgresShareRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new share grant
func (r *PostgresShareRepository) Create(ctx context.Context, grant *models.ShareGrant) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (file_id, shared_by, shared_with, access_level, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, r.tables.Shares)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		grant.FileID,
		grant.SharedBy,
		grant.SharedWith,
		grant.AccessLevel,
		grant.ExpiresAt,
		grant.CreatedAt,
	).Scan(&grant.ID, &grant.CreatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("file %s: %w", grant.FileID, domain.ErrNotFound)
		}
		return WrapStoreError("create share grant", err)
	}

	return nil
}

// GetByID retrieves a grant by ID
func (r *PostgresShareRepository) GetByID(ctx context.Context, id string) (*models.ShareGrant, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, shareColumns, r.tables.Shares)

	executor := GetExecutor(ctx, r.pool)
	grant, err := scanShareGrant(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("share grant %s: %w", id, domain.ErrNotFound)
		}
		return nil, WrapStoreError("get share grant", err)
	}

	return grant, nil
}

// ListByFile lists grants for a file, newest first
func (r *PostgresShareRepository) ListByFile(ctx context.Context, fileID string) ([]models.ShareGrant, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE file_id = $1
		ORDER BY created_at DESC
	`, shareColumns, r.tables.Shares)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, fileID)
	if err != nil {
		return nil, WrapStoreError("list share grants", err)
	}
	defer rows.Close()

	var grants []models.ShareGrant
	for rows.Next() {
		var grant models.ShareGrant
		if err := rows.Scan(
			&grant.ID,
			&grant.FileID,
			&grant.SharedBy,
			&grant.SharedWith,
			&grant.AccessLevel,
			&grant.ExpiresAt,
			&grant.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan share grant: %w", err)
		}
		grants = append(grants, grant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate share grants: %w", err)
	}

	if grants == nil {
		grants = []models.ShareGrant{}
	}

	return grants, nil
}

// Delete removes a grant
func (r *PostgresShareRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Shares)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return WrapStoreError("delete share grant", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("share grant %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByFile removes all grants for a file. Deleting zero rows is fine,
// the file may simply never have been shared.
func (r *PostgresShareRepository) DeleteByFile(ctx context.Context, fileID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE file_id = $1
	`, r.tables.Shares)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, fileID); err != nil {
		return WrapStoreError("delete share grants for file", err)
	}

	return nil
}

// CountActiveByFile counts grants for a file that have not expired
func (r *PostgresShareRepository) CountActiveByFile(ctx context.Context, fileID string, now time.Time) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s
		WHERE file_id = $1 AND (expires_at IS NULL OR expires_at > $2)
	`, r.tables.Shares)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, fileID, now).Scan(&count); err != nil {
		return 0, WrapStoreError("count active share grants", err)
	}

	return count, nil
}

func scanShareGrant(row pgx.Row) (*models.ShareGrant, error) {
	var grant models.ShareGrant
	err := row.Scan(
		&grant.ID,
		&grant.FileID,
		&grant.SharedBy,
		&grant.SharedWith,
		&grant.AccessLevel,
		&grant.ExpiresAt,
		&grant.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &grant, nil
}
