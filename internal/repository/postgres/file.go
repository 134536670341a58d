package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"filevault/internal/domain"
	"filevault/internal/domain/models"
	"filevault/internal/domain/repositories"
)

const fileColumns = "id, user_id, parent_folder_id, name, file_type, size, file_path, is_starred, is_trashed, shared, created_at, updated_at"

// PostgresFileRepository implements the FileRepository interface
type PostgresFileRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *RepositoryConfig) repositories.FileRepository {
	return &PostgresFileRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new file record
func (r *PostgresFileRepository) Create(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, parent_folder_id, name, file_type, size, file_path, is_starred, is_trashed, shared, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`, r.tables.Files)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		file.OwnerID,
		file.ParentID,
		file.Name,
		file.MimeType,
		file.SizeBytes,
		file.BlobKey,
		file.Starred,
		file.Trashed,
		file.Shared,
		file.CreatedAt,
		file.UpdatedAt,
	).Scan(&file.ID, &file.CreatedAt, &file.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.DuplicateNameError{
				Message:      fmt.Sprintf("a file named %q already exists in this location", file.Name),
				ResourceType: "file",
			}
		}
		return WrapStoreError("create file", err)
	}

	return nil
}

// GetByID retrieves a file by ID, trashed or not
func (r *PostgresFileRepository) GetByID(ctx context.Context, id, ownerID string) (*models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, fileColumns, r.tables.Files)

	executor := GetExecutor(ctx, r.pool)
	file, err := scanFile(executor.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		return nil, WrapStoreError("get file", err)
	}

	return file, nil
}

// GetByIDOnly retrieves a file by ID without owner scoping. Used for public
// share resolution where authorization is the share grant itself.
func (r *PostgresFileRepository) GetByIDOnly(ctx context.Context, id string) (*models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, fileColumns, r.tables.Files)

	executor := GetExecutor(ctx, r.pool)
	file, err := scanFile(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		return nil, WrapStoreError("get file", err)
	}

	return file, nil
}

// Update persists name and parent changes and refreshes updated_at
func (r *PostgresFileRepository) Update(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET parent_folder_id = $1, name = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
		RETURNING updated_at
	`, r.tables.Files)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		file.ParentID,
		file.Name,
		file.ID,
		file.OwnerID,
	).Scan(&file.UpdatedAt)

	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("file %s: %w", file.ID, domain.ErrNotFound)
		}
		if IsPgDuplicateError(err) {
			return &domain.DuplicateNameError{
				Message:      fmt.Sprintf("a file named %q already exists in this location", file.Name),
				ResourceType: "file",
			}
		}
		return WrapStoreError("update file", err)
	}

	return nil
}

// Delete removes the file row permanently
func (r *PostgresFileRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Files)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, ownerID)
	if err != nil {
		return WrapStoreError("delete file", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListChildren lists non-trashed files in a folder in insertion order
func (r *PostgresFileRepository) ListChildren(ctx context.Context, parentID *string, ownerID string) ([]models.File, error) {
	return r.listChildren(ctx, parentID, ownerID, false)
}

// ListChildrenAll lists files in a folder including trashed ones
func (r *PostgresFileRepository) ListChildrenAll(ctx context.Context, parentID *string, ownerID string) ([]models.File, error) {
	return r.listChildren(ctx, parentID, ownerID, true)
}

func (r *PostgresFileRepository) listChildren(ctx context.Context, parentID *string, ownerID string, includeTrashed bool) ([]models.File, error) {
	var query string
	var args []interface{}

	trashFilter := " AND is_trashed = FALSE"
	if includeTrashed {
		trashFilter = ""
	}

	if parentID == nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE user_id = $1 AND parent_folder_id IS NULL%s
			ORDER BY created_at ASC
		`, fileColumns, r.tables.Files, trashFilter)
		args = append(args, ownerID)
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE user_id = $1 AND parent_folder_id = $2%s
			ORDER BY created_at ASC
		`, fileColumns, r.tables.Files, trashFilter)
		args = append(args, ownerID, *parentID)
	}

	return r.queryFiles(ctx, "list folder files", query, args...)
}

// ListStarred lists non-trashed starred files
func (r *PostgresFileRepository) ListStarred(ctx context.Context, ownerID string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND is_starred = TRUE AND is_trashed = FALSE
		ORDER BY created_at ASC
	`, fileColumns, r.tables.Files)

	return r.queryFiles(ctx, "list starred files", query, ownerID)
}

// ListShared lists non-trashed shared files
func (r *PostgresFileRepository) ListShared(ctx context.Context, ownerID string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND shared = TRUE AND is_trashed = FALSE
		ORDER BY created_at ASC
	`, fileColumns, r.tables.Files)

	return r.queryFiles(ctx, "list shared files", query, ownerID)
}

// ListTrashed lists trashed files
func (r *PostgresFileRepository) ListTrashed(ctx context.Context, ownerID string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND is_trashed = TRUE
		ORDER BY created_at ASC
	`, fileColumns, r.tables.Files)

	return r.queryFiles(ctx, "list trashed files", query, ownerID)
}

// ListRecent lists non-trashed files most recently updated first
func (r *PostgresFileRepository) ListRecent(ctx context.Context, ownerID string, limit int) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND is_trashed = FALSE
		ORDER BY updated_at DESC
		LIMIT $2
	`, fileColumns, r.tables.Files)

	return r.queryFiles(ctx, "list recent files", query, ownerID, limit)
}

// ListAllByOwner lists all non-trashed files for storage accounting
func (r *PostgresFileRepository) ListAllByOwner(ctx context.Context, ownerID string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND is_trashed = FALSE
		ORDER BY created_at ASC
	`, fileColumns, r.tables.Files)

	return r.queryFiles(ctx, "list all files", query, ownerID)
}

// SearchByName lists non-trashed files whose name contains the query
func (r *PostgresFileRepository) SearchByName(ctx context.Context, ownerID, search string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND name ILIKE '%%' || $2 || '%%' AND is_trashed = FALSE
		ORDER BY created_at ASC
	`, fileColumns, r.tables.Files)

	return r.queryFiles(ctx, "search files", query, ownerID, search)
}

// SetStarred updates the starred flag and refreshes updated_at
func (r *PostgresFileRepository) SetStarred(ctx context.Context, id, ownerID string, starred bool) error {
	return r.setFlag(ctx, "is_starred", id, ownerID, starred, true)
}

// SetTrashed updates the trashed flag and refreshes updated_at
func (r *PostgresFileRepository) SetTrashed(ctx context.Context, id, ownerID string, trashed bool) error {
	return r.setFlag(ctx, "is_trashed", id, ownerID, trashed, true)
}

// SetShared updates the denormalized shared flag. Sharing does not count
// as a content change, so updated_at is left alone.
func (r *PostgresFileRepository) SetShared(ctx context.Context, id, ownerID string, shared bool) error {
	return r.setFlag(ctx, "shared", id, ownerID, shared, false)
}

func (r *PostgresFileRepository) setFlag(ctx context.Context, column, id, ownerID string, value, touch bool) error {
	touchClause := ""
	if touch {
		touchClause = ", updated_at = NOW()"
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1%s
		WHERE id = $2 AND user_id = $3
	`, r.tables.Files, column, touchClause)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, value, id, ownerID)
	if err != nil {
		return WrapStoreError("update file "+column, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresFileRepository) queryFiles(ctx context.Context, op, query string, args ...interface{}) ([]models.File, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, WrapStoreError(op, err)
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		var file models.File
		if err := rows.Scan(
			&file.ID,
			&file.OwnerID,
			&file.ParentID,
			&file.Name,
			&file.MimeType,
			&file.SizeBytes,
			&file.BlobKey,
			&file.Starred,
			&file.Trashed,
			&file.Shared,
			&file.CreatedAt,
			&file.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	// Return empty slice instead of nil
	if files == nil {
		files = []models.File{}
	}

	return files, nil
}

func scanFile(row pgx.Row) (*models.File, error) {
	var file models.File
	err := row.Scan(
		&file.ID,
		&file.OwnerID,
		&file.ParentID,
		&file.Name,
		&file.MimeType,
		&file.SizeBytes,
		&file.BlobKey,
		&file.Starred,
		&file.Trashed,
		&file.Shared,
		&file.CreatedAt,
		&file.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &file, nil
}
