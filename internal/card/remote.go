package card

// Remote is a stored record as read from the document store. A nil field was
// not provided (SQL NULL or absent key) and must not override a local value.
type Remote struct {
	ID       *string `json:"id"`
	FullName *string `json:"full_name"`
	Title    *string `json:"title"`
	Subtitle *string `json:"subtitle"`
	Handle   *string `json:"handle"`
	PhotoURL *string `json:"photo_url"`
	PhotoB64 *string `json:"photo_b64"`
	Links    *[]Link `json:"links"`

	CountryCode *string `json:"country_code"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Org         *string `json:"org"`
	Role        *string `json:"role"`
}

// RemoteFrom wraps every field of d, as a full upsert would store it.
func RemoteFrom(d Document) *Remote {
	links := d.Clone().Links
	return &Remote{
		ID:          ptr(d.ID),
		FullName:    ptr(d.FullName),
		Title:       ptr(d.Title),
		Subtitle:    ptr(d.Subtitle),
		Handle:      ptr(d.Handle),
		PhotoURL:    ptr(d.PhotoURL),
		PhotoB64:    ptr(d.PhotoB64),
		Links:       &links,
		CountryCode: ptr(d.CountryCode),
		Phone:       ptr(d.Phone),
		Email:       ptr(d.Email),
		Org:         ptr(d.Org),
		Role:        ptr(d.Role),
	}
}

func ptr(s string) *string { return &s }

// MergeFromRemote overlays every provided remote field onto local. The id of
// local survives unless the remote carries a non-empty one. A nil remote
// returns a copy of local.
func MergeFromRemote(local Document, remote *Remote) Document {
	out := local.Clone()
	if remote == nil {
		return out
	}

	if remote.ID != nil && *remote.ID != "" {
		out.ID = *remote.ID
	}

	pick(&out.FullName, remote.FullName)
	pick(&out.Title, remote.Title)
	pick(&out.Subtitle, remote.Subtitle)
	pick(&out.Handle, remote.Handle)
	pick(&out.PhotoURL, remote.PhotoURL)
	pick(&out.PhotoB64, remote.PhotoB64)
	pick(&out.CountryCode, remote.CountryCode)
	pick(&out.Phone, remote.Phone)
	pick(&out.Email, remote.Email)
	pick(&out.Org, remote.Org)
	pick(&out.Role, remote.Role)

	if remote.Links != nil {
		out.Links = make([]Link, len(*remote.Links))
		copy(out.Links, *remote.Links)
	}

	return out
}

func pick(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
