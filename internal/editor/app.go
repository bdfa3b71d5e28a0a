// Package editor is the interactive terminal editor for one profile card.
// It opens a session against the card store, applies edits to a card.State
// and saves, uploads and exports on request.
package editor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/tagme/internal/card"
	"github.com/dmitrijs2005/tagme/internal/editor/config"
	"github.com/dmitrijs2005/tagme/internal/logging"
	"github.com/dmitrijs2005/tagme/internal/photo"
	"github.com/dmitrijs2005/tagme/internal/repositories/cards"
	"github.com/dmitrijs2005/tagme/internal/session"
	"github.com/dmitrijs2005/tagme/internal/vcf"
	"golang.org/x/term"
)

// photoFetchTimeout bounds photo_url downloads during export.
const photoFetchTimeout = 10 * time.Second

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// PhotoUploader stores a newly picked photo.
type PhotoUploader interface {
	Upload(ctx context.Context, id string, image []byte) (photo.Photo, error)
}

type App struct {
	config   *config.Config
	logger   logging.Logger
	ctrl     *session.Controller
	uploader PhotoUploader
	resolver vcf.PhotoResolver
	state    *card.State
	input    io.Reader
	dirty    atomic.Bool
}

// NewApp builds an editor over the given card store and photo store.
func NewApp(c *config.Config, repo cards.Repository, store photo.ObjectStore, logger logging.Logger) *App {
	a := &App{
		config:   c,
		logger:   logger,
		uploader: photo.NewUploader(store),
		resolver: photo.NewResolver(photo.NewHTTPFetcher(photoFetchTimeout), logger,
			photo.WithAllowedPrefixes(store.PublicURL("")),
		),
		input:    os.Stdin,
	}
	a.ctrl = session.NewController(repo, c.CardDefaults(), session.NavigatorFunc(a.announce), logger)
	return a
}

// announce is the navigation side effect for a generated id.
func (a *App) announce(_ context.Context, id string) bool {
	printlnFn("New card:", id)
	printlnFn("Public URL:", a.publicURL(id))
	return true
}

func (a *App) publicURL(id string) string {
	return strings.TrimRight(a.config.ViewerBaseURL, "/") + "/card?id=" + url.QueryEscape(id)
}

// Open loads the session for the configured card id.
func (a *App) Open(ctx context.Context) error {
	st, err := a.ctrl.Open(ctx, a.config.CardID)
	if err != nil {
		return err
	}
	if st == nil {
		return errors.New("session was not opened")
	}
	a.state = st

	switch a.ctrl.Status() {
	case session.StatusReady:
		printlnFn("Loaded card", st.ID())
	default:
		printlnFn("Editing new card", st.ID())
	}
	return nil
}

func (a *App) prompt() string {
	if f, ok := a.input.(*os.File); ok && !isTerminal(int(f.Fd())) {
		return ""
	}
	marker := ""
	if a.Dirty() {
		marker = "*"
	}
	return fmt.Sprintf("tagme [%s%s] > ", a.state.ID(), marker)
}

// Run opens the session and reads commands until exit or EOF.
func (a *App) Run(ctx context.Context) error {
	if err := a.Open(ctx); err != nil {
		return err
	}
	printlnFn("Type 'help' for commands.")

	scanner := bufio.NewScanner(a.input)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	runREPL(ctx, a, a.prompt, scanner)
	return nil
}

// Dirty reports unsaved edits.
func (a *App) Dirty() bool { return a.dirty.Load() }
