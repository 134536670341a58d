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

const folderColumns = "id, user_id, parent_folder_id, name, is_starred, is_trashed, shared, created_at, updated_at"

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, parent_folder_id, name, is_starred, is_trashed, shared, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		folder.OwnerID,
		folder.ParentID,
		folder.Name,
		folder.Starred,
		folder.Trashed,
		folder.Shared,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.DuplicateNameError{
				Message:      fmt.Sprintf("a folder named %q already exists in this location", folder.Name),
				ResourceType: "folder",
			}
		}
		return WrapStoreError("create folder", err)
	}

	return nil
}

// GetByID retrieves a folder by ID, trashed or not
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, folderColumns, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	folder, err := scanFolder(executor.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, WrapStoreError("get folder", err)
	}

	return folder, nil
}

// Update persists name and parent changes and refreshes updated_at
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET parent_folder_id = $1, name = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
		RETURNING updated_at
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		folder.ParentID,
		folder.Name,
		folder.ID,
		folder.OwnerID,
	).Scan(&folder.UpdatedAt)

	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
		}
		if IsPgDuplicateError(err) {
			return &domain.DuplicateNameError{
				Message:      fmt.Sprintf("a folder named %q already exists in this location", folder.Name),
				ResourceType: "folder",
			}
		}
		return WrapStoreError("update folder", err)
	}

	return nil
}

// Delete removes the folder row permanently
func (r *PostgresFolderRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, ownerID)
	if err != nil {
		return WrapStoreError("delete folder", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// FindByNameAndParent finds a non-trashed sibling folder by name.
// Returns (nil, nil) when no such folder exists.
func (r *PostgresFolderRepository) FindByNameAndParent(ctx context.Context, ownerID, name string, parentID *string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND name = $2 AND is_trashed = FALSE
	`, folderColumns, r.tables.Folders)

	args := []interface{}{ownerID, name}
	if parentID != nil {
		query += ` AND parent_folder_id = $3`
		args = append(args, *parentID)
	} else {
		query += ` AND parent_folder_id IS NULL`
	}

	executor := GetExecutor(ctx, r.pool)
	folder, err := scanFolder(executor.QueryRow(ctx, query, args...))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil // Not found, not an error
		}
		return nil, WrapStoreError("find folder by name and parent", err)
	}

	return folder, nil
}

// ListChildren lists non-trashed immediate child folders in insertion order
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, parentID *string, ownerID string) ([]models.Folder, error) {
	return r.listChildren(ctx, parentID, ownerID, false)
}

// ListChildrenAll lists immediate child folders including trashed ones
func (r *PostgresFolderRepository) ListChildrenAll(ctx context.Context, parentID *string, ownerID string) ([]models.Folder, error) {
	return r.listChildren(ctx, parentID, ownerID, true)
}

func (r *PostgresFolderRepository) listChildren(ctx context.Context, parentID *string, ownerID string, includeTrashed bool) ([]models.Folder, error) {
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
		`, folderColumns, r.tables.Folders, trashFilter)
		args = append(args, ownerID)
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE user_id = $1 AND parent_folder_id = $2%s
			ORDER BY created_at ASC
		`, folderColumns, r.tables.Folders, trashFilter)
		args = append(args, ownerID, *parentID)
	}

	return r.queryFolders(ctx, "list folder children", query, args...)
}

// ListStarred lists non-trashed starred folders
func (r *PostgresFolderRepository) ListStarred(ctx context.Context, ownerID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND is_starred = TRUE AND is_trashed = FALSE
		ORDER BY created_at ASC
	`, folderColumns, r.tables.Folders)

	return r.queryFolders(ctx, "list starred folders", query, ownerID)
}

// ListShared lists non-trashed shared folders
func (r *PostgresFolderRepository) ListShared(ctx context.Context, ownerID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND shared = TRUE AND is_trashed = FALSE
		ORDER BY created_at ASC
	`, folderColumns, r.tables.Folders)

	return r.queryFolders(ctx, "list shared folders", query, ownerID)
}

// ListTrashed lists trashed folders
func (r *PostgresFolderRepository) ListTrashed(ctx context.Context, ownerID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND is_trashed = TRUE
		ORDER BY created_at ASC
	`, folderColumns, r.tables.Folders)

	return r.queryFolders(ctx, "list trashed folders", query, ownerID)
}

// ListRecent lists non-trashed folders most recently updated first
func (r *PostgresFolderRepository) ListRecent(ctx context.Context, ownerID string, limit int) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND is_trashed = FALSE
		ORDER BY updated_at DESC
		LIMIT $2
	`, folderColumns, r.tables.Folders)

	return r.queryFolders(ctx, "list recent folders", query, ownerID, limit)
}

// SearchByName lists non-trashed folders whose name contains the query
func (r *PostgresFolderRepository) SearchByName(ctx context.Context, ownerID, search string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND name ILIKE '%%' || $2 || '%%' AND is_trashed = FALSE
		ORDER BY created_at ASC
	`, folderColumns, r.tables.Folders)

	return r.queryFolders(ctx, "search folders", query, ownerID, search)
}

// SetStarred updates the starred flag and refreshes updated_at
func (r *PostgresFolderRepository) SetStarred(ctx context.Context, id, ownerID string, starred bool) error {
	return r.setFlag(ctx, "is_starred", id, ownerID, starred)
}

// SetTrashed updates the trashed flag and refreshes updated_at
func (r *PostgresFolderRepository) SetTrashed(ctx context.Context, id, ownerID string, trashed bool) error {
	return r.setFlag(ctx, "is_trashed", id, ownerID, trashed)
}

func (r *PostgresFolderRepository) setFlag(ctx context.Context, column, id, ownerID string, value bool) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`, r.tables.Folders, column)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, value, id, ownerID)
	if err != nil {
		return WrapStoreError("update folder "+column, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// CountByOwner counts non-trashed folders
func (r *PostgresFolderRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s
		WHERE user_id = $1 AND is_trashed = FALSE
	`, r.tables.Folders)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, WrapStoreError("count folders", err)
	}

	return count, nil
}

func (r *PostgresFolderRepository) queryFolders(ctx context.Context, op, query string, args ...interface{}) ([]models.Folder, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, WrapStoreError(op, err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		if err := rows.Scan(
			&folder.ID,
			&folder.OwnerID,
			&folder.ParentID,
			&folder.Name,
			&folder.Starred,
			&folder.Trashed,
			&folder.Shared,
			&folder.CreatedAt,
			&folder.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	// Return empty slice instead of nil
	if folders == nil {
		folders = []models.Folder{}
	}

	return folders, nil
}

func scanFolder(row pgx.Row) (*models.Folder, error) {
	var folder models.Folder
	err := row.Scan(
		&folder.ID,
		&folder.OwnerID,
		&folder.ParentID,
		&folder.Name,
		&folder.Starred,
		&folder.Trashed,
		&folder.Shared,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &folder, nil
}
