package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/tagme/internal/dbx"
	"github.com/dmitrijs2005/tagme/internal/repositories/cards"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Cards(db dbx.DBTX) cards.Repository
}
