// Package httpapi is the viewer server: read-only card views, vCard
// downloads and the editor session endpoints.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/tagme/internal/card"
	"github.com/dmitrijs2005/tagme/internal/common"
	"github.com/dmitrijs2005/tagme/internal/logging"
	"github.com/dmitrijs2005/tagme/internal/repositories/cards"
	"github.com/dmitrijs2005/tagme/internal/session"
	"github.com/dmitrijs2005/tagme/internal/vcf"
)

// User-facing messages.
const (
	msgNoID      = "No card ID provided."
	msgNotFound  = "Card not found."
	msgLoadError = "Error loading card."
	msgSaveError = "Save error: "
)

// Handler serves every route of the viewer.
type Handler struct {
	repo     cards.Repository
	resolver vcf.PhotoResolver
	defaults card.Defaults
	logger   logging.Logger
	newID    func() (string, error)
	uploader PhotoUploader
}

// Option customizes a Handler.
type Option func(*Handler)

// WithIDGenerator replaces the random id source used for new sessions.
func WithIDGenerator(fn func() (string, error)) Option {
	return func(h *Handler) { h.newID = fn }
}

func NewHandler(repo cards.Repository, resolver vcf.PhotoResolver, defaults card.Defaults, logger logging.Logger, opts ...Option) *Handler {
	h := &Handler{
		repo:     repo,
		resolver: resolver,
		defaults: defaults,
		logger:   logger,
		newID:    common.NewCardID,
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Routes registers the handlers on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /card", h.CardPage)
	mux.HandleFunc("GET /api/cards", h.GetCard)
	mux.HandleFunc("GET /api/cards/vcf", h.DownloadVCF)
	mux.HandleFunc("GET /api/edit", h.OpenSession)
	mux.HandleFunc("PUT /api/edit", h.SaveSession)
	if h.uploader != nil {
		mux.HandleFunc("POST /api/edit/photo", h.UploadPhoto)
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// loadCard fetches the stored card for the viewer. Fields never stored stay
// empty; viewer pages do not show editor defaults.
func (h *Handler) loadCard(ctx context.Context, id string) (card.Document, int, string) {
	if id == "" {
		return card.Document{}, http.StatusBadRequest, msgNoID
	}

	remote, err := h.repo.Get(ctx, id)
	if errors.Is(err, common.ErrorNotFound) {
		return card.Document{}, http.StatusNotFound, msgNotFound
	}
	if err != nil {
		h.logger.Error(ctx, "load card failed", "id", id, "error", err)
		return card.Document{}, http.StatusInternalServerError, msgLoadError
	}

	return card.MergeFromRemote(card.Document{ID: id, Links: []card.Link{}}, remote), http.StatusOK, ""
}

func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
	doc, status, msg := h.loadCard(r.Context(), r.URL.Query().Get("id"))
	if status != http.StatusOK {
		respondError(w, status, msg)
		return
	}
	respondJSON(w, http.StatusOK, newCardView(doc))
}

func (h *Handler) DownloadVCF(w http.ResponseWriter, r *http.Request) {
	doc, status, msg := h.loadCard(r.Context(), r.URL.Query().Get("id"))
	if status != http.StatusOK {
		respondError(w, status, msg)
		return
	}

	a := vcf.Export(r.Context(), h.resolver, doc)

	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+a.Name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.Body)
}

// redirectNavigator sends the browser to the session URL carrying the new id.
type redirectNavigator struct {
	w http.ResponseWriter
	r *http.Request
}

func (n redirectNavigator) Navigate(_ context.Context, id string) bool {
	target := url.URL{Path: n.r.URL.Path, RawQuery: url.Values{"id": {id}}.Encode()}
	http.Redirect(n.w, n.r, target.String(), http.StatusFound)
	return false
}

func (h *Handler) controller(nav session.Navigator) *session.Controller {
	return session.NewController(h.repo, h.defaults, nav, h.logger, session.WithIDGenerator(h.newID))
}

func (h *Handler) OpenSession(w http.ResponseWriter, r *http.Request) {
	ctrl := h.controller(redirectNavigator{w: w, r: r})

	st, err := ctrl.Open(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		h.logger.Error(r.Context(), "open session failed", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if st == nil {
		return
	}

	w.Header().Set("X-Session-Status", ctrl.Status().String())
	respondJSON(w, http.StatusOK, st.Snapshot())
}

func (h *Handler) SaveSession(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, msgNoID)
		return
	}

	var doc card.Document
	if err := parseJSON(w, r, &doc); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	doc.ID = id
	if doc.Links == nil {
		doc.Links = []card.Link{}
	}

	created, err := h.controller(nil).Save(r.Context(), doc)
	if err != nil {
		h.logger.Error(r.Context(), "save card failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, msgSaveError+err.Error())
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, doc)
}
