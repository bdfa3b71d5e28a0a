package photo

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/tagme/internal/common"
)

// ObjectStore is the blob store photos are uploaded to.
type ObjectStore interface {
	Upload(ctx context.Context, name string, data []byte, contentType string) error
	PublicURL(name string) string
}

// Photo is the outcome of an upload. Either field may be empty when its
// half of the operation failed.
type Photo struct {
	Name string
	URL  string
	B64  string
}

// Uploader stores a newly selected image and prepares its inline copy.
type Uploader struct {
	store ObjectStore
	now   func() time.Time

	mu   sync.Mutex
	last int64
}

func NewUploader(store ObjectStore) *Uploader {
	return &Uploader{store: store, now: time.Now}
}

// ObjectName builds "<id>_photo_<stamp>". Stamps are unix milliseconds and
// strictly increase per uploader even if the clock does not.
func (u *Uploader) ObjectName(id string) string {
	u.mu.Lock()
	defer u.mu.Unlock()

	stamp := u.now().UnixMilli()
	if stamp <= u.last {
		stamp = u.last + 1
	}
	u.last = stamp

	return fmt.Sprintf("%s_photo_%d", id, stamp)
}

// Upload stores image under a fresh name and encodes it. The inline copy is
// always produced for a valid image; on upload failure the result carries it
// with an empty URL together with the error, so the caller can keep whichever
// half succeeded.
func (u *Uploader) Upload(ctx context.Context, id string, image []byte) (Photo, error) {
	if id == "" {
		return Photo{}, common.ErrMissingID
	}

	contentType := http.DetectContentType(image)
	if !strings.HasPrefix(contentType, "image/") {
		return Photo{}, fmt.Errorf("%w: %s", common.ErrNotImage, contentType)
	}

	p := Photo{B64: base64.StdEncoding.EncodeToString(image)}

	name := u.ObjectName(id)
	if err := u.store.Upload(ctx, name, image, contentType); err != nil {
		return p, fmt.Errorf("upload %s: %w", name, err)
	}

	p.Name = name
	p.URL = u.store.PublicURL(name)
	return p, nil
}
