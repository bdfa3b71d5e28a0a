package httpapi

import (
	"net/url"
	"strings"

	"github.com/dmitrijs2005/tagme/internal/card"
)

// cardView is the public read-only representation of a card.
type cardView struct {
	ID          string      `json:"id"`
	DisplayName string      `json:"display_name"`
	FullName    string      `json:"full_name"`
	Title       string      `json:"title"`
	Subtitle    string      `json:"subtitle"`
	Handle      string      `json:"handle"`
	PhotoURL    string      `json:"photo_url,omitempty"`
	PhotoB64    string      `json:"photo_b64,omitempty"`
	Links       []card.Link `json:"links"`
	PhoneNumber string      `json:"phone_number,omitempty"`
	Email       string      `json:"email,omitempty"`
	Org         string      `json:"org,omitempty"`
	Role        string      `json:"role,omitempty"`
	VCardURL    string      `json:"vcard_url"`
}

func newCardView(d card.Document) cardView {
	v := cardView{
		ID:          d.ID,
		DisplayName: d.DisplayName(),
		FullName:    d.FullName,
		Title:       d.Title,
		Subtitle:    d.Subtitle,
		Handle:      d.Handle,
		PhotoURL:    d.PhotoURL,
		PhotoB64:    d.PhotoB64,
		Links:       d.ValidLinks(),
		Email:       d.Email,
		Org:         d.Org,
		Role:        d.Role,
		VCardURL:    "/api/cards/vcf?id=" + url.QueryEscape(d.ID),
	}
	if d.Phone != "" {
		v.PhoneNumber = d.PhoneNumber()
	}
	return v
}

// Headline is the title line shown under the display name, empty when it
// would repeat it.
func (v cardView) Headline() string {
	t := strings.TrimSpace(v.Title)
	if t == v.DisplayName {
		return ""
	}
	return t
}
