// Package card holds the editable profile card document, the rules for
// building it from defaults and remote records, and the State container the
// editor mutates.
package card

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FallbackName is used when a card has no name, title or handle.
const FallbackName = "Contact"

// Link is a labelled URL shown on the card.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Validate reports whether both label and url are present.
func (l Link) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Label, validation.Required),
		validation.Field(&l.URL, validation.Required),
	)
}

// Valid is Validate() == nil.
func (l Link) Valid() bool {
	return l.Validate() == nil
}

// Document is one profile card. Field names match the document store schema.
type Document struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	// Title is the display headline, not the professional title.
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Handle   string `json:"handle"`

	PhotoURL string `json:"photo_url"`
	// PhotoB64 is a base64 JPEG payload without a data: prefix.
	PhotoB64 string `json:"photo_b64"`

	Links []Link `json:"links"`

	CountryCode string `json:"country_code"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Org         string `json:"org"`
	// Role is exported as the vCard TITLE.
	Role string `json:"role"`
}

// Defaults are applied to freshly created documents.
type Defaults struct {
	CountryCode string
	Handle      string
}

// DefaultDefaults mirrors what a brand new card shows in the editor.
func DefaultDefaults() Defaults {
	return Defaults{CountryCode: "+63", Handle: "@yourhandle"}
}

// CreateDefault returns a document with the given id and default values.
func CreateDefault(id string, d Defaults) Document {
	return Document{
		ID:          id,
		Handle:      d.Handle,
		Links:       []Link{},
		CountryCode: d.CountryCode,
	}
}

// Clone returns a deep copy.
func (d Document) Clone() Document {
	c := d
	if d.Links != nil {
		c.Links = make([]Link, len(d.Links))
		copy(c.Links, d.Links)
	}
	return c
}

// DisplayName picks full name, then title, then handle without "@",
// then FallbackName.
func (d Document) DisplayName() string {
	if s := strings.TrimSpace(d.FullName); s != "" {
		return s
	}
	if s := strings.TrimSpace(d.Title); s != "" {
		return s
	}
	if s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(d.Handle), "@")); s != "" {
		return s
	}
	return FallbackName
}

// PhoneNumber is country code and phone joined without separator.
func (d Document) PhoneNumber() string {
	return d.CountryCode + d.Phone
}

// ValidLinks returns links with both label and url set, in order.
func (d Document) ValidLinks() []Link {
	out := make([]Link, 0, len(d.Links))
	for _, l := range d.Links {
		if l.Valid() {
			out = append(out, l)
		}
	}
	return out
}
