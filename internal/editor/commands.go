package editor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tagme/internal/card"
	"github.com/dmitrijs2005/tagme/internal/filex"
	"github.com/dmitrijs2005/tagme/internal/vcf"
)

// maxPhotoBytes caps photo files picked in the editor.
const maxPhotoBytes = 10 << 20

var errUsage = errors.New("usage")

func usage(s string) error {
	return fmt.Errorf("%w: %s", errUsage, s)
}

// linkIndex parses a 1-based link number into a slice index. Numbers out of
// range are returned as-is; card.State treats them as no-ops.
func linkIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid link number %q", s)
	}
	return n - 1, nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	doc := a.state.Snapshot()

	printlnFn("id:", doc.ID)
	for _, f := range card.Fields {
		v := doc.Get(f)
		if f == card.FieldPhotoB64 && v != "" {
			v = fmt.Sprintf("<%d base64 chars>", len(v))
		}
		printlnFn(fmt.Sprintf("%s: %s", f, v))
	}

	printlnFn("links:")
	if len(doc.Links) == 0 {
		printlnFn("  (none)")
	}
	for i, l := range doc.Links {
		line := fmt.Sprintf("  %d. [%s] %s", i+1, l.Label, l.URL)
		if !l.Valid() {
			line += " (incomplete, hidden)"
		}
		printlnFn(line)
	}
	printlnFn("display name:", doc.DisplayName())
	return nil
}

func (a *App) Set(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usage("set <field> <value...>")
	}

	f, err := card.ParseField(args[0])
	if err != nil {
		return err
	}
	if err := a.state.SetField(f, strings.Join(args[1:], " ")); err != nil {
		return err
	}

	a.dirty.Store(true)
	return nil
}

func (a *App) AddLink(ctx context.Context, args []string) error {
	i := a.state.AddLink()
	a.dirty.Store(true)
	printlnFn(fmt.Sprintf("Link %d added.", i+1))
	return nil
}

func (a *App) RemoveLink(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("rmlink <n>")
	}
	i, err := linkIndex(args[0])
	if err != nil {
		return err
	}

	a.state.RemoveLink(i)
	a.dirty.Store(true)
	return nil
}

func (a *App) Link(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("link <n> label|url <value...>")
	}
	i, err := linkIndex(args[0])
	if err != nil {
		return err
	}

	if err := a.state.SetLinkField(i, card.LinkField(strings.ToLower(args[1])), strings.Join(args[2:], " ")); err != nil {
		return err
	}
	a.dirty.Store(true)
	return nil
}

// Photo uploads the image at path. Whatever half of the upload succeeded is
// applied; earlier photo values are kept for the half that failed.
func (a *App) Photo(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("photo <path>")
	}

	image, err := filex.ReadLimited(args[0], maxPhotoBytes)
	if err != nil {
		return err
	}

	p, err := a.uploader.Upload(ctx, a.state.ID(), image)
	if p.URL != "" || p.B64 != "" {
		a.state.SetPhoto(p.URL, p.B64)
		a.dirty.Store(true)
	}
	if err != nil {
		if p.B64 != "" {
			printlnFn("Photo kept inline only; previous photo URL unchanged.")
		}
		return fmt.Errorf("upload error: %w", err)
	}

	printlnFn("Photo uploaded:", p.URL)
	return nil
}

func (a *App) Save(ctx context.Context, args []string) error {
	created, err := a.ctrl.Save(ctx, a.state.Snapshot())
	if err != nil {
		printlnFn("Save error:", err)
		return nil
	}

	a.dirty.Store(false)
	if created {
		printlnFn("Saved (new card).")
	} else {
		printlnFn("Saved.")
	}
	return nil
}

func (a *App) Export(ctx context.Context, args []string) error {
	dir := a.config.ExportDir
	if len(args) > 0 {
		dir = args[0]
	}

	art := vcf.Export(ctx, a.resolver, a.state.Snapshot())
	path, err := filex.WriteFile(dir, art.Name, art.Body)
	if err != nil {
		return err
	}

	printlnFn("Contact written to", path)
	return nil
}

// Preview prints the vCard without the photo payload.
func (a *App) Preview(ctx context.Context, args []string) error {
	doc := a.state.Snapshot()

	var photo *string
	if doc.PhotoB64 != "" {
		photo = &doc.PhotoB64
	}
	text := vcf.Encode(doc, photo)
	props := vcf.Parse(text)

	for _, line := range strings.Split(text, "\r\n") {
		k, _, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		v := props[k]
		if strings.HasPrefix(k, "PHOTO") {
			v = fmt.Sprintf("<%d base64 chars>", len(v))
		}
		printlnFn(k + ":" + v)
	}
	if doc.PhotoB64 == "" && doc.PhotoURL != "" {
		printlnFn("PHOTO: fetched from", doc.PhotoURL, "on export")
	}
	return nil
}

func (a *App) URL(ctx context.Context, args []string) error {
	printlnFn(a.publicURL(a.state.ID()))
	return nil
}
