// Package cards provides the PostgreSQL-backed card document store.
package cards

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tagme/internal/card"
	"github.com/dmitrijs2005/tagme/internal/common"
	"github.com/dmitrijs2005/tagme/internal/dbx"
)

// PostgresRepository implements card storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Get loads a card by id. NULL columns come back as nil Remote fields.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*card.Remote, error) {
	query := `
		SELECT id, full_name, title, subtitle, handle, photo_url, photo_b64, links,
			country_code, phone, email, org, role
		FROM cards WHERE id = $1
	`

	var rowID string
	var fullName, title, subtitle, handle, photoURL, photoB64 sql.NullString
	var countryCode, phone, email, org, role sql.NullString
	var links []byte

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rowID, &fullName, &title, &subtitle, &handle, &photoURL, &photoB64, &links,
		&countryCode, &phone, &email, &org, &role,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select card: %w", err)
	}

	rec := &card.Remote{
		ID:          &rowID,
		FullName:    nullable(fullName),
		Title:       nullable(title),
		Subtitle:    nullable(subtitle),
		Handle:      nullable(handle),
		PhotoURL:    nullable(photoURL),
		PhotoB64:    nullable(photoB64),
		CountryCode: nullable(countryCode),
		Phone:       nullable(phone),
		Email:       nullable(email),
		Org:         nullable(org),
		Role:        nullable(role),
	}

	if links != nil {
		var ls []card.Link
		if err := json.Unmarshal(links, &ls); err != nil {
			return nil, fmt.Errorf("failed to decode links: %w", err)
		}
		if ls == nil {
			ls = []card.Link{}
		}
		rec.Links = &ls
	}

	return rec, nil
}

// Upsert writes the full document. xmax is zero only for freshly inserted
// rows, which tells create and replace apart.
func (r *PostgresRepository) Upsert(ctx context.Context, doc card.Document) (bool, error) {
	if doc.ID == "" {
		return false, common.ErrMissingID
	}

	links := doc.Links
	if links == nil {
		links = []card.Link{}
	}
	linksJSON, err := json.Marshal(links)
	if err != nil {
		return false, fmt.Errorf("failed to encode links: %w", err)
	}

	query := `
		INSERT INTO cards (id, full_name, title, subtitle, handle, photo_url, photo_b64, links,
			country_code, phone, email, org, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id)
		DO UPDATE SET
			full_name = EXCLUDED.full_name,
			title = EXCLUDED.title,
			subtitle = EXCLUDED.subtitle,
			handle = EXCLUDED.handle,
			photo_url = EXCLUDED.photo_url,
			photo_b64 = EXCLUDED.photo_b64,
			links = EXCLUDED.links,
			country_code = EXCLUDED.country_code,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			org = EXCLUDED.org,
			role = EXCLUDED.role,
			updated_at = now()
		RETURNING (xmax = 0) AS inserted;
	`

	var inserted bool
	err = r.db.QueryRowContext(ctx, query,
		doc.ID, doc.FullName, doc.Title, doc.Subtitle, doc.Handle, doc.PhotoURL, doc.PhotoB64, string(linksJSON),
		doc.CountryCode, doc.Phone, doc.Email, doc.Org, doc.Role,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return inserted, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
