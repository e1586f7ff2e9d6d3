package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/cloudshelf/internal/dbx"
	"github.com/dmitrijs2005/cloudshelf/internal/server/repositories/files"
	"github.com/dmitrijs2005/cloudshelf/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX and
// exposes a schema-migration hook.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Files(db dbx.DBTX) files.Repository
}
