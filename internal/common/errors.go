// Package common defines sentinel errors and small helpers shared by the card
// editor, the viewer server and the storage layers. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")
	ErrMissingID  = errors.New("missing card id")

	// Editor input errors.
	ErrUnknownField = errors.New("unknown field")
	ErrNotImage     = errors.New("payload is not an image")
)
