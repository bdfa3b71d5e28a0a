package photo

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/tagme/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jpegBytes = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

type fakeStore struct {
	uploaded    map[string][]byte
	contentType string
	err         error
}

func (f *fakeStore) Upload(ctx context.Context, name string, data []byte, contentType string) error {
	if f.err != nil {
		return f.err
	}
	if f.uploaded == nil {
		f.uploaded = map[string][]byte{}
	}
	f.uploaded[name] = data
	f.contentType = contentType
	return nil
}

func (f *fakeStore) PublicURL(name string) string {
	return "http://cdn/profile-photos/" + name
}

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestUploader_Success(t *testing.T) {
	store := &fakeStore{}
	u := NewUploader(store)
	u.now = fixedClock(1700000000000)

	p, err := u.Upload(context.Background(), "ab12cd34", jpegBytes)

	require.NoError(t, err)
	assert.Equal(t, "ab12cd34_photo_1700000000000", p.Name)
	assert.Equal(t, "http://cdn/profile-photos/ab12cd34_photo_1700000000000", p.URL)
	assert.Equal(t, base64.StdEncoding.EncodeToString(jpegBytes), p.B64)
	assert.Equal(t, "image/jpeg", store.contentType)
	assert.Equal(t, jpegBytes, store.uploaded[p.Name])
}

func TestUploader_NamesAreMonotonic(t *testing.T) {
	u := NewUploader(&fakeStore{})
	u.now = fixedClock(5)

	a := u.ObjectName("id")
	b := u.ObjectName("id")

	assert.Equal(t, "id_photo_5", a)
	assert.Equal(t, "id_photo_6", b)
}

func TestUploader_UploadFailureKeepsInlineCopy(t *testing.T) {
	u := NewUploader(&fakeStore{err: errors.New("bucket gone")})

	p, err := u.Upload(context.Background(), "id", jpegBytes)

	require.Error(t, err)
	assert.Empty(t, p.URL)
	assert.Equal(t, base64.StdEncoding.EncodeToString(jpegBytes), p.B64)
}

func TestUploader_RejectsNonImage(t *testing.T) {
	store := &fakeStore{}
	u := NewUploader(store)

	p, err := u.Upload(context.Background(), "id", []byte("just some text"))

	assert.True(t, errors.Is(err, common.ErrNotImage))
	assert.Equal(t, Photo{}, p)
	assert.Empty(t, store.uploaded)
}

func TestUploader_MissingID(t *testing.T) {
	_, err := NewUploader(&fakeStore{}).Upload(context.Background(), "", jpegBytes)
	assert.True(t, errors.Is(err, common.ErrMissingID))
}
