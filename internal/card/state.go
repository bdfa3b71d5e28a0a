package card

import (
	"fmt"
	"sync"

	"github.com/dmitrijs2005/tagme/internal/common"
)

// State owns the document of one editing session. All edits go through its
// methods; readers take a Snapshot.
type State struct {
	mu  sync.Mutex
	doc Document
}

// NewState wraps a copy of d.
func NewState(d Document) *State {
	return &State{doc: d.Clone()}
}

// Snapshot returns a deep copy of the current document.
func (s *State) Snapshot() Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// ID returns the session's card id.
func (s *State) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.ID
}

// Replace swaps in a copy of d, keeping the current id.
func (s *State) Replace(d Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.doc.ID
	s.doc = d.Clone()
	s.doc.ID = id
}

// SetField assigns value to f without validation.
func (s *State) SetField(f Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.doc.fieldRef(f)
	if p == nil {
		return fmt.Errorf("%w: %q", common.ErrUnknownField, f)
	}
	*p = value
	return nil
}

// AddLink appends an empty link and returns its index.
func (s *State) AddLink() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Links = append(s.doc.Links, Link{})
	return len(s.doc.Links) - 1
}

// RemoveLink deletes the link at i. Out of range is a no-op.
func (s *State) RemoveLink(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.doc.Links) {
		return
	}
	s.doc.Links = append(s.doc.Links[:i], s.doc.Links[i+1:]...)
}

// SetLinkField assigns a link label or url. Out of range is a no-op.
func (s *State) SetLinkField(i int, f LinkField, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f != LinkLabel && f != LinkURL {
		return fmt.Errorf("%w: link %q", common.ErrUnknownField, f)
	}
	if i < 0 || i >= len(s.doc.Links) {
		return nil
	}
	if f == LinkLabel {
		s.doc.Links[i].Label = value
	} else {
		s.doc.Links[i].URL = value
	}
	return nil
}

// SetPhoto stores the uploaded photo. Empty values leave the current field
// untouched so a half-failed upload never blanks a working photo.
func (s *State) SetPhoto(url, b64 string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if url != "" {
		s.doc.PhotoURL = url
	}
	if b64 != "" {
		s.doc.PhotoB64 = b64
	}
}
