// Package session drives one card editing session: it resolves the card id,
// loads the stored document into a card.State and saves it back.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/tagme/internal/card"
	"github.com/dmitrijs2005/tagme/internal/common"
	"github.com/dmitrijs2005/tagme/internal/logging"
	"github.com/dmitrijs2005/tagme/internal/repositories/cards"
)

// Status is the lifecycle position of a session.
type Status int

const (
	StatusInit Status = iota
	StatusLoading
	StatusReady
	StatusReadyWithDefaults
)

func (s Status) String() string {
	switch s {
	case StatusInit:
		return "init"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusReadyWithDefaults:
		return "ready-with-defaults"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Navigator is told about a freshly generated card id. It reports whether the
// session should keep loading in place; an HTTP redirect returns false.
type Navigator interface {
	Navigate(ctx context.Context, id string) bool
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func(ctx context.Context, id string) bool

func (f NavigatorFunc) Navigate(ctx context.Context, id string) bool { return f(ctx, id) }

type Controller struct {
	store    cards.Repository
	defaults card.Defaults
	nav      Navigator
	logger   logging.Logger
	newID    func() (string, error)

	mu     sync.Mutex
	status Status
}

// Option customizes a Controller.
type Option func(*Controller)

// WithIDGenerator replaces the random id source.
func WithIDGenerator(fn func() (string, error)) Option {
	return func(c *Controller) { c.newID = fn }
}

func NewController(store cards.Repository, defaults card.Defaults, nav Navigator, logger logging.Logger, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		defaults: defaults,
		nav:      nav,
		logger:   logger,
		newID:    common.NewCardID,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Status returns the current lifecycle position.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Controller) setStatus(s Status) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

// Open starts the session for id, generating one when id is empty. Read
// failures never fail Open: the session falls back to the defaults. A nil
// state with a nil error means the navigator took the session elsewhere.
func (c *Controller) Open(ctx context.Context, id string) (*card.State, error) {
	if id == "" {
		newID, err := c.newID()
		if err != nil {
			return nil, fmt.Errorf("generate card id: %w", err)
		}
		id = newID
		if c.nav != nil && !c.nav.Navigate(ctx, id) {
			return nil, nil
		}
	}

	local := card.CreateDefault(id, c.defaults)
	c.setStatus(StatusLoading)

	remote, err := c.store.Get(ctx, id)
	switch {
	case err == nil:
		c.setStatus(StatusReady)
		return card.NewState(card.MergeFromRemote(local, remote)), nil
	case errors.Is(err, common.ErrorNotFound):
		c.logger.Debug(ctx, "card not stored yet", "id", id)
	default:
		c.logger.Error(ctx, "load card failed, using defaults", "id", id, "error", err)
	}

	c.setStatus(StatusReadyWithDefaults)
	return card.NewState(local), nil
}

// Save upserts doc keyed by its id. Failures are returned, never retried.
func (c *Controller) Save(ctx context.Context, doc card.Document) (bool, error) {
	if doc.ID == "" {
		return false, common.ErrMissingID
	}

	created, err := c.store.Upsert(ctx, doc)
	if err != nil {
		return false, fmt.Errorf("save card %s: %w", doc.ID, err)
	}

	c.logger.Info(ctx, "card saved", "id", doc.ID, "created", created)
	return created, nil
}
