// Package files provides persistence for uploaded-file metadata.
package files

import (
	"context"

	"github.com/dmitrijs2005/cloudshelf/internal/server/models"
)

// Repository defines the file-registry operations.
type Repository interface {
	Create(ctx context.Context, file *models.File) (*models.File, error)
	ListByOwner(ctx context.Context, userID string) ([]*models.File, error)
	FindByPublicID(ctx context.Context, publicID string) (*models.File, error)

	// DeleteOwned removes the row only when it exists AND belongs to userID,
	// in a single guarded statement. It reports whether a row was removed and,
	// if so, its storage key. Absent and not-owned are indistinguishable.
	DeleteOwned(ctx context.Context, publicID, userID string) (storageKey string, deleted bool, err error)

	// IncrementViewCount atomically bumps the view counter. A row that
	// vanished concurrently makes this a no-op, not an error.
	IncrementViewCount(ctx context.Context, publicID string) error
}
