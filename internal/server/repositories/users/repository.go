// Package users provides persistence for registered accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/cloudshelf/internal/server/models"
)

// Repository defines the operations the rest of the server needs from the
// credential store.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
