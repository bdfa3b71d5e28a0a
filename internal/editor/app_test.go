package editor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/tagme/internal/card"
	"github.com/dmitrijs2005/tagme/internal/common"
	"github.com/dmitrijs2005/tagme/internal/editor/config"
	"github.com/dmitrijs2005/tagme/internal/logging"
	"github.com/dmitrijs2005/tagme/internal/photo"
	"github.com/dmitrijs2005/tagme/internal/repositories/cards"
	"github.com/dmitrijs2005/tagme/internal/session"
	"github.com/dmitrijs2005/tagme/internal/vcf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for http.DetectContentType to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n0000")

type memRepo struct {
	cards.Repository
	docs    map[string]card.Document
	saveErr error
}

func (m *memRepo) Get(_ context.Context, id string) (*card.Remote, error) {
	d, ok := m.docs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return card.RemoteFrom(d), nil
}

func (m *memRepo) Upsert(_ context.Context, doc card.Document) (bool, error) {
	if m.saveErr != nil {
		return false, m.saveErr
	}
	_, exists := m.docs[doc.ID]
	m.docs[doc.ID] = doc.Clone()
	return !exists, nil
}

type fakeStore struct {
	err   error
	names []string
}

func (f *fakeStore) Upload(_ context.Context, name string, _ []byte, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.names = append(f.names, name)
	return nil
}

func (f *fakeStore) PublicURL(name string) string { return "http://s3/profile-photos/" + name }

type noPhoto struct{}

func (noPhoto) Resolve(context.Context, card.Document) (string, bool) { return "", false }

func newTestApp(t *testing.T, repo *memRepo, store photo.ObjectStore, cardID string) *App {
	t.Helper()

	c := &config.Config{}
	c.LoadDefaults()
	c.CardID = cardID
	c.ExportDir = t.TempDir()

	a := NewApp(c, repo, store, logging.Discard())
	a.resolver = vcf.PhotoResolver(noPhoto{})
	a.ctrl = session.NewController(repo, c.CardDefaults(), session.NavigatorFunc(a.announce), logging.Discard(),
		session.WithIDGenerator(func() (string, error) { return "new00001", nil }))
	require.NoError(t, a.Open(context.Background()))
	return a
}

func TestOpen_NewCardAnnouncesURL(t *testing.T) {
	out := captureOutput(t)

	a := newTestApp(t, &memRepo{docs: map[string]card.Document{}}, &fakeStore{}, "")

	assert.Equal(t, "new00001", a.state.ID())
	assert.Contains(t, *out, "New card: new00001")
	assert.Contains(t, *out, "Public URL: http://localhost:8080/card?id=new00001")
	assert.Contains(t, *out, "Editing new card new00001")
}

func TestOpen_ExistingCard(t *testing.T) {
	out := captureOutput(t)

	repo := &memRepo{docs: map[string]card.Document{"abc": {ID: "abc", FullName: "Ana Cruz"}}}
	a := newTestApp(t, repo, &fakeStore{}, "abc")

	assert.Equal(t, "Ana Cruz", a.state.Snapshot().FullName)
	assert.Contains(t, *out, "Loaded card abc")
}

func TestEditAndSave(t *testing.T) {
	out := captureOutput(t)
	ctx := context.Background()

	repo := &memRepo{docs: map[string]card.Document{}}
	a := newTestApp(t, repo, &fakeStore{}, "abc")

	require.NoError(t, a.Set(ctx, []string{"full_name", "Ana", "Cruz"}))
	require.NoError(t, a.AddLink(ctx, nil))
	require.NoError(t, a.Link(ctx, []string{"1", "label", "Site"}))
	require.NoError(t, a.Link(ctx, []string{"1", "URL", "https://a.example"}))
	require.NoError(t, a.AddLink(ctx, nil))
	require.NoError(t, a.RemoveLink(ctx, []string{"2"}))
	assert.True(t, a.Dirty())

	require.NoError(t, a.Save(ctx, nil))
	assert.False(t, a.Dirty())
	assert.Contains(t, *out, "Saved (new card).")

	require.NoError(t, a.Save(ctx, nil))
	assert.Contains(t, *out, "Saved.")

	saved := repo.docs["abc"]
	assert.Equal(t, "Ana Cruz", saved.FullName)
	assert.Equal(t, []card.Link{{Label: "Site", URL: "https://a.example"}}, saved.Links)
}

func TestCommandErrors(t *testing.T) {
	captureOutput(t)
	ctx := context.Background()
	a := newTestApp(t, &memRepo{docs: map[string]card.Document{}}, &fakeStore{}, "abc")

	assert.ErrorIs(t, a.Set(ctx, nil), errUsage)
	assert.ErrorIs(t, a.Set(ctx, []string{"id", "x"}), common.ErrUnknownField)
	assert.ErrorIs(t, a.RemoveLink(ctx, nil), errUsage)
	assert.Error(t, a.RemoveLink(ctx, []string{"one"}))
	assert.ErrorIs(t, a.Link(ctx, []string{"1", "color", "red"}), common.ErrUnknownField)
	assert.ErrorIs(t, a.Photo(ctx, nil), errUsage)

	// out of range link edits are silent
	assert.NoError(t, a.RemoveLink(ctx, []string{"9"}))
	assert.NoError(t, a.Link(ctx, []string{"9", "url", "x"}))
}

func TestSave_ErrorIsReported(t *testing.T) {
	out := captureOutput(t)

	repo := &memRepo{docs: map[string]card.Document{}, saveErr: errors.New("db error: down")}
	a := newTestApp(t, repo, &fakeStore{}, "abc")
	require.NoError(t, a.Set(context.Background(), []string{"title", "Hi"}))

	require.NoError(t, a.Save(context.Background(), nil))
	assert.True(t, a.Dirty())
	assert.True(t, strings.HasPrefix((*out)[len(*out)-1], "Save error:"))
}

func writePhoto(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "me.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o600))
	return path
}

func TestPhoto_UploadSetsBothFields(t *testing.T) {
	captureOutput(t)

	store := &fakeStore{}
	a := newTestApp(t, &memRepo{docs: map[string]card.Document{}}, store, "abc")

	require.NoError(t, a.Photo(context.Background(), []string{writePhoto(t)}))

	doc := a.state.Snapshot()
	require.Len(t, store.names, 1)
	assert.True(t, strings.HasPrefix(store.names[0], "abc_photo_"))
	assert.Equal(t, "http://s3/profile-photos/"+store.names[0], doc.PhotoURL)
	assert.NotEmpty(t, doc.PhotoB64)
}

func TestPhoto_UploadFailureKeepsPreviousURL(t *testing.T) {
	captureOutput(t)

	repo := &memRepo{docs: map[string]card.Document{"abc": {ID: "abc", PhotoURL: "http://old/p.jpg"}}}
	a := newTestApp(t, repo, &fakeStore{err: errors.New("denied")}, "abc")

	err := a.Photo(context.Background(), []string{writePhoto(t)})
	require.ErrorContains(t, err, "denied")

	doc := a.state.Snapshot()
	assert.Equal(t, "http://old/p.jpg", doc.PhotoURL)
	assert.NotEmpty(t, doc.PhotoB64)
}

func TestPhoto_RejectsNonImage(t *testing.T) {
	captureOutput(t)

	a := newTestApp(t, &memRepo{docs: map[string]card.Document{}}, &fakeStore{}, "abc")
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	err := a.Photo(context.Background(), []string{path})
	assert.ErrorIs(t, err, common.ErrNotImage)
	assert.Empty(t, a.state.Snapshot().PhotoB64)
	assert.False(t, a.Dirty())
}

func TestExport_WritesVCF(t *testing.T) {
	out := captureOutput(t)
	ctx := context.Background()

	a := newTestApp(t, &memRepo{docs: map[string]card.Document{}}, &fakeStore{}, "abc")
	require.NoError(t, a.Set(ctx, []string{"full_name", "Ana", "Cruz"}))

	dir := t.TempDir()
	require.NoError(t, a.Export(ctx, []string{dir}))

	body, err := os.ReadFile(filepath.Join(dir, "Ana_Cruz.vcf"))
	require.NoError(t, err)
	assert.Contains(t, string(body), "FN:Ana Cruz\r\n")
	assert.Contains(t, *out, "Contact written to "+filepath.Join(dir, "Ana_Cruz.vcf"))
}

func TestPreviewShowAndURL(t *testing.T) {
	out := captureOutput(t)
	ctx := context.Background()

	a := newTestApp(t, &memRepo{docs: map[string]card.Document{}}, &fakeStore{}, "abc")
	require.NoError(t, a.Set(ctx, []string{"phone", "9171234567"}))
	require.NoError(t, a.Set(ctx, []string{"photo_b64", "QUJD"}))
	require.NoError(t, a.AddLink(ctx, nil))

	*out = nil
	require.NoError(t, a.Preview(ctx, nil))
	assert.Equal(t, "BEGIN:VCARD", (*out)[0])
	assert.Contains(t, *out, "TEL;TYPE=CELL:+639171234567")
	assert.Contains(t, *out, "PHOTO;ENCODING=b;TYPE=JPEG:<4 base64 chars>")

	*out = nil
	require.NoError(t, a.Show(ctx, nil))
	assert.Contains(t, *out, "photo_b64: <4 base64 chars>")
	assert.Contains(t, *out, "  1. []  (incomplete, hidden)")
	assert.Contains(t, *out, "display name: yourhandle")

	*out = nil
	require.NoError(t, a.URL(ctx, nil))
	assert.Equal(t, []string{"http://localhost:8080/card?id=abc"}, *out)
}

func TestRun_ReadsCommandsFromInput(t *testing.T) {
	out := captureOutput(t)

	repo := &memRepo{docs: map[string]card.Document{}}
	a := newTestApp(t, repo, &fakeStore{}, "abc")
	a.input = strings.NewReader("set org Acme\nsave\nexit\n")

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, "Acme", repo.docs["abc"].Org)
	assert.Contains(t, *out, "tagme [abc*] > ")
	assert.Contains(t, *out, "Bye!")
}

func TestRun_SetKeepsTypedSpacing(t *testing.T) {
	captureOutput(t)

	repo := &memRepo{docs: map[string]card.Document{}}
	a := newTestApp(t, repo, &fakeStore{}, "abc")
	a.input = strings.NewReader("set full_name Jane  Q\tPublic\naddlink\nlink 1 label My  Site\nsave\nexit\n")

	require.NoError(t, a.Run(context.Background()))
	doc := repo.docs["abc"]
	assert.Equal(t, "Jane  Q\tPublic", doc.FullName)
	require.Len(t, doc.Links, 1)
	assert.Equal(t, "My  Site", doc.Links[0].Label)
}
