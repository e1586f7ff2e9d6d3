package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/cloudshelf/internal/common"
	"github.com/dmitrijs2005/cloudshelf/internal/logging"
	"github.com/dmitrijs2005/cloudshelf/internal/server/models"
	"github.com/dmitrijs2005/cloudshelf/internal/server/objstore"
	"github.com/dmitrijs2005/cloudshelf/internal/server/repositories/repomanager"
)

// FileService composes the file registry and the object-store gateway. It is
// the only place ownership checks and the private/public boundary live.
type FileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	gateway     objstore.Gateway
	logger      logging.Logger
}

// NewFileService constructs a FileService.
func NewFileService(db *sql.DB, m repomanager.RepositoryManager, gw objstore.Gateway, l logging.Logger) *FileService {
	return &FileService{db: db, repomanager: m, gateway: gw, logger: l}
}

// NewStorageKey returns a fresh collision-resistant object key. The key is
// decoupled from the user-supplied filename so names never leak into URLs.
func NewStorageKey() string {
	return fmt.Sprintf("files/%s", uuid.New())
}

// Upload writes the object first, then inserts the registry row. A failed
// insert leaves an orphaned object, never a row pointing at a missing object.
func (s *FileService) Upload(ctx context.Context, ownerID, filename, contentType string, body io.Reader, tags []string) (*models.File, error) {
	key := NewStorageKey()

	if err := s.gateway.Put(ctx, key, body, contentType); err != nil {
		return nil, err
	}

	if tags == nil {
		tags = []string{}
	}
	repo := s.repomanager.Files(s.db)
	file, err := repo.Create(ctx, &models.File{
		PublicID:   uuid.NewString(),
		UserID:     ownerID,
		Filename:   filename,
		StorageKey: key,
		Tags:       tags,
	})
	if err != nil {
		s.logger.Warn(ctx, "file row insert failed after object write, object orphaned", "key", key)
		return nil, fmt.Errorf("error creating file record: %w", err)
	}
	return file, nil
}

// List returns the owner's files, newest first. Never anyone else's.
func (s *FileService) List(ctx context.Context, ownerID string) ([]*models.File, error) {
	repo := s.repomanager.Files(s.db)
	result, err := repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}
	return result, nil
}

// Delete removes the registry row in one guarded statement and then deletes
// the object best-effort. Absent and not-owned rows are indistinguishable
// from success, and trigger no storage call at all.
func (s *FileService) Delete(ctx context.Context, ownerID, publicID string) error {
	repo := s.repomanager.Files(s.db)
	storageKey, deleted, err := repo.DeleteOwned(ctx, publicID, ownerID)
	if err != nil {
		return fmt.Errorf("error deleting file: %w", err)
	}
	if !deleted {
		return nil
	}
	if err := s.gateway.Delete(ctx, storageKey); err != nil {
		// Orphaned object, reclaimable out of band.
		s.logger.Warn(ctx, "object delete failed after row removal", "key", storageKey, "error", err)
	}
	return nil
}

// ServePublic is the unauthenticated read path. Knowing the public id is the
// entire access-control model; no token check belongs here. The view counter
// is bumped before the URL is handed out, and a failed bump never fails the
// caller-visible flow.
func (s *FileService) ServePublic(ctx context.Context, publicID string) (string, error) {
	repo := s.repomanager.Files(s.db)
	file, err := repo.FindByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrNotFound
		}
		return "", fmt.Errorf("error finding file: %w", err)
	}

	if err := repo.IncrementViewCount(ctx, publicID); err != nil {
		s.logger.Warn(ctx, "view count increment failed", "public_id", publicID, "error", err)
	}

	return s.gateway.PublicURL(file.StorageKey), nil
}
