package files

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cloudshelf/internal/common"
	"github.com/dmitrijs2005/cloudshelf/internal/dbx"
	"github.com/dmitrijs2005/cloudshelf/internal/server/models"
)

// PostgresRepository implements file storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Tags are stored as a JSONB array to keep user-supplied order.

// Create inserts a file row. The owning user must exist (FK) and the storage
// key must be unique; both are enforced by the schema.
func (r *PostgresRepository) Create(ctx context.Context, file *models.File) (*models.File, error) {
	tags, err := json.Marshal(file.Tags)
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}

	query := `
		INSERT INTO files (public_id, user_id, filename, storage_key, tags)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, uploaded_at
	`
	err = r.db.QueryRowContext(ctx, query,
		file.PublicID, file.UserID, file.Filename, file.StorageKey, tags).
		Scan(&file.ID, &file.UploadedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return file, nil
}

// ListByOwner returns all files for userID, most recently uploaded first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]*models.File, error) {
	query := `
		SELECT id, public_id, user_id, filename, storage_key, tags, view_count, uploaded_at
		FROM files
		WHERE user_id = $1
		ORDER BY uploaded_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	var result []*models.File
	for rows.Next() {
		item, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// FindByPublicID returns the file with the given public id, or common.ErrNotFound.
func (r *PostgresRepository) FindByPublicID(ctx context.Context, publicID string) (*models.File, error) {
	query := `
		SELECT id, public_id, user_id, filename, storage_key, tags, view_count, uploaded_at
		FROM files
		WHERE public_id = $1
	`
	item := &models.File{}
	var tags []byte
	err := r.db.QueryRowContext(ctx, query, publicID).Scan(
		&item.ID, &item.PublicID, &item.UserID, &item.Filename,
		&item.StorageKey, &tags, &item.ViewCount, &item.UploadedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := json.Unmarshal(tags, &item.Tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}
	return item, nil
}

// DeleteOwned deletes in one guarded statement so a missing row and a row
// owned by someone else produce the same observable outcome.
func (r *PostgresRepository) DeleteOwned(ctx context.Context, publicID, userID string) (string, bool, error) {
	query := `
		DELETE FROM files
		WHERE public_id = $1 AND user_id = $2
		RETURNING storage_key
	`
	var storageKey string
	err := r.db.QueryRowContext(ctx, query, publicID, userID).Scan(&storageKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("db error: %w", err)
	}
	return storageKey, true, nil
}

// IncrementViewCount performs an atomic SQL add. Zero rows affected means the
// row vanished concurrently, which is acceptable for an advisory counter.
func (r *PostgresRepository) IncrementViewCount(ctx context.Context, publicID string) error {
	query := `UPDATE files SET view_count = view_count + 1 WHERE public_id = $1`
	if _, err := r.db.ExecContext(ctx, query, publicID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func scanFile(rows *sql.Rows) (*models.File, error) {
	item := &models.File{}
	var tags []byte
	if err := rows.Scan(
		&item.ID, &item.PublicID, &item.UserID, &item.Filename,
		&item.StorageKey, &tags, &item.ViewCount, &item.UploadedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tags, &item.Tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}
	return item, nil
}
