// Package photo decides which photo representation a card export embeds and
// handles the editor-side upload that fills both representations.
package photo

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/tagme/internal/card"
	"github.com/dmitrijs2005/tagme/internal/logging"
)

// maxPhotoBytes caps how much of a remote photo is read.
const maxPhotoBytes = 10 << 20

// Fetcher downloads a resource fully.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher is a Fetcher over net/http.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher builds a fetcher with the given request timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch failed: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPhotoBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxPhotoBytes {
		return nil, fmt.Errorf("photo larger than %d bytes", maxPhotoBytes)
	}
	return data, nil
}

// Resolver picks the photo payload for export, preferring the inline copy.
type Resolver struct {
	fetcher  Fetcher
	logger   logging.Logger
	prefixes []*url.URL
}

type ResolverOption func(*Resolver)

// WithAllowedPrefixes restricts photo_url fetches to URLs under one of the
// given bases. Unparsable prefixes are skipped.
func WithAllowedPrefixes(prefixes ...string) ResolverOption {
	return func(r *Resolver) {
		for _, p := range prefixes {
			u, err := url.Parse(p)
			if err != nil || u.Scheme == "" || u.Host == "" {
				continue
			}
			r.prefixes = append(r.prefixes, u)
		}
	}
}

func NewResolver(fetcher Fetcher, logger logging.Logger, opts ...ResolverOption) *Resolver {
	r := &Resolver{fetcher: fetcher, logger: logger}
	for _, o := range opts {
		o(r)
	}
	return r
}

// allowed reports whether raw may be fetched. Without prefixes any http or
// https URL is allowed.
func (r *Resolver) allowed(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.User != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if len(r.prefixes) == 0 {
		return true
	}
	for _, p := range r.prefixes {
		if !strings.EqualFold(u.Scheme, p.Scheme) || !strings.EqualFold(u.Host, p.Host) {
			continue
		}
		base := strings.TrimSuffix(p.Path, "/") + "/"
		if base == "/" || strings.HasPrefix(u.Path, base) {
			return true
		}
	}
	return false
}

// Resolve returns the base64 photo for doc and whether one is available.
// A stored photo_b64 is returned as-is without touching the network. A
// photo_url is fetched and encoded when it is allowed; any failure yields no
// photo.
func (r *Resolver) Resolve(ctx context.Context, doc card.Document) (string, bool) {
	if doc.PhotoB64 != "" {
		return doc.PhotoB64, true
	}
	if doc.PhotoURL == "" || r.fetcher == nil {
		return "", false
	}

	if !r.allowed(doc.PhotoURL) {
		r.logger.Warn(ctx, "unable to embed photo into vcf", "card_id", doc.ID, "url", doc.PhotoURL, "error", "url not allowed")
		return "", false
	}

	data, err := r.fetcher.Fetch(ctx, doc.PhotoURL)
	if err != nil {
		r.logger.Warn(ctx, "unable to embed photo into vcf", "card_id", doc.ID, "url", doc.PhotoURL, "error", err)
		return "", false
	}
	if len(data) == 0 {
		r.logger.Warn(ctx, "unable to embed photo into vcf", "card_id", doc.ID, "url", doc.PhotoURL, "error", "empty body")
		return "", false
	}

	return base64.StdEncoding.EncodeToString(data), true
}
