package vcf

import (
	"context"

	"github.com/dmitrijs2005/tagme/internal/card"
)

// PhotoResolver supplies the base64 photo payload for a document.
type PhotoResolver interface {
	Resolve(ctx context.Context, doc card.Document) (string, bool)
}

// Artifact is a ready-to-download contact file.
type Artifact struct {
	Name        string
	ContentType string
	Body        []byte
}

// Export resolves the photo and encodes doc. It has no failure mode: a photo
// that cannot be resolved is left out.
func Export(ctx context.Context, r PhotoResolver, doc card.Document) Artifact {
	var photo *string
	if r != nil {
		if b64, ok := r.Resolve(ctx, doc); ok {
			photo = &b64
		}
	}

	return Artifact{
		Name:        FileName(doc),
		ContentType: ContentType,
		Body:        []byte(Encode(doc, photo)),
	}
}
