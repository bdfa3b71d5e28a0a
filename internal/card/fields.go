package card

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tagme/internal/common"
)

// Field names a settable text field of a Document.
type Field string

const (
	FieldFullName    Field = "full_name"
	FieldTitle       Field = "title"
	FieldSubtitle    Field = "subtitle"
	FieldHandle      Field = "handle"
	FieldPhotoURL    Field = "photo_url"
	FieldPhotoB64    Field = "photo_b64"
	FieldCountryCode Field = "country_code"
	FieldPhone       Field = "phone"
	FieldEmail       Field = "email"
	FieldOrg         Field = "org"
	FieldRole        Field = "role"
)

// Fields lists settable fields in editor display order.
var Fields = []Field{
	FieldFullName, FieldTitle, FieldSubtitle, FieldHandle,
	FieldCountryCode, FieldPhone, FieldEmail, FieldOrg, FieldRole,
	FieldPhotoURL, FieldPhotoB64,
}

// ParseField resolves a field name, case-insensitively.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Fields {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnknownField, s)
}

// LinkField names a field of a Link.
type LinkField string

const (
	LinkLabel LinkField = "label"
	LinkURL   LinkField = "url"
)

func (d *Document) fieldRef(f Field) *string {
	switch f {
	case FieldFullName:
		return &d.FullName
	case FieldTitle:
		return &d.Title
	case FieldSubtitle:
		return &d.Subtitle
	case FieldHandle:
		return &d.Handle
	case FieldPhotoURL:
		return &d.PhotoURL
	case FieldPhotoB64:
		return &d.PhotoB64
	case FieldCountryCode:
		return &d.CountryCode
	case FieldPhone:
		return &d.Phone
	case FieldEmail:
		return &d.Email
	case FieldOrg:
		return &d.Org
	case FieldRole:
		return &d.Role
	}
	return nil
}

// Get returns the value of f, or "" for unknown fields.
func (d Document) Get(f Field) string {
	if p := d.fieldRef(f); p != nil {
		return *p
	}
	return ""
}
