// Package vcf renders card documents as vCard 3.0 records.
//
// Output is deterministic: the same document and photo always produce the
// same bytes. Lines are CRLF-joined and never folded.
package vcf

import (
	"regexp"
	"strings"

	"github.com/dmitrijs2005/tagme/internal/card"
)

// ContentType is the MIME type of an exported contact file.
const ContentType = "text/vcard; charset=utf-8"

const crlf = "\r\n"

var lineBreaks = regexp.MustCompile(`\r?\n`)

// Sanitize collapses every line break (CRLF or LF) to a single space.
func Sanitize(s string) string {
	return lineBreaks.ReplaceAllString(s, " ")
}

// SplitName returns the family and given parts of a display name. The last
// space-separated token is the family name; a single token is all given name.
func SplitName(name string) (family, given string) {
	parts := strings.Split(name, " ")
	if len(parts) > 1 {
		return parts[len(parts)-1], strings.Join(parts[:len(parts)-1], " ")
	}
	return "", name
}

// Encode renders doc. photoB64, if non-nil, is embedded as the PHOTO payload.
func Encode(doc card.Document, photoB64 *string) string {
	name := Sanitize(doc.DisplayName())
	family, given := SplitName(name)

	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:" + name,
		"N:" + family + ";" + given + ";;;",
	}

	optional := []struct {
		prop  string
		value string
	}{
		{"TEL;TYPE=CELL", doc.PhoneNumber()},
		{"EMAIL;TYPE=INTERNET", doc.Email},
		{"ORG", doc.Org},
		{"TITLE", doc.Role},
	}
	for _, o := range optional {
		v := Sanitize(o.value)
		if strings.TrimSpace(v) == "" {
			continue
		}
		lines = append(lines, o.prop+":"+v)
	}

	if photoB64 != nil && *photoB64 != "" {
		lines = append(lines, "PHOTO;ENCODING=b;TYPE=JPEG:"+*photoB64)
	}

	lines = append(lines, "END:VCARD")
	return strings.Join(lines, crlf)
}

var unsafeFileChars = regexp.MustCompile(`[^\w\-]+`)

// FileName is the download name for doc: a filesystem-safe slug of the
// display name with a .vcf extension.
func FileName(doc card.Document) string {
	slug := unsafeFileChars.ReplaceAllString(Sanitize(doc.DisplayName()), "_")
	if slug == "" {
		slug = "contact"
	}
	return slug + ".vcf"
}
