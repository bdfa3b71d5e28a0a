package cards

import (
	"context"

	"github.com/dmitrijs2005/tagme/internal/card"
)

// Repository is the remote document store for cards, keyed by id.
type Repository interface {
	// Get returns the stored record or common.ErrorNotFound.
	Get(ctx context.Context, id string) (*card.Remote, error)
	// Upsert creates or replaces the whole document and reports whether a
	// new row was created.
	Upsert(ctx context.Context, doc card.Document) (bool, error)
}
