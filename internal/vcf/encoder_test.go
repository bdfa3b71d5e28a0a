package vcf

import (
	"strings"
	"testing"

	"github.com/dmitrijs2005/tagme/internal/card"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(s string) []string {
	return strings.Split(s, "\r\n")
}

func TestEncode_EndToEndExample(t *testing.T) {
	doc := card.Document{
		FullName:    "Jane Q Public",
		CountryCode: "+1",
		Phone:       "5551234",
		Email:       "j@x.com",
	}

	got := Encode(doc, nil)

	want := strings.Join([]string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:Jane Q Public",
		"N:Public;Jane Q;;;",
		"TEL;TYPE=CELL:+15551234",
		"EMAIL;TYPE=INTERNET:j@x.com",
		"END:VCARD",
	}, "\r\n")
	assert.Equal(t, want, got)
	assert.NotContains(t, strings.ReplaceAll(got, "\r\n", ""), "\n")
}

func TestEncode_FallbackName(t *testing.T) {
	got := lines(Encode(card.Document{}, nil))

	assert.Equal(t, []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:Contact",
		"N:;Contact;;;",
		"END:VCARD",
	}, got)
}

func TestEncode_NameSources(t *testing.T) {
	tests := []struct {
		name   string
		doc    card.Document
		fn     string
		nField string
	}{
		{"single token", card.Document{FullName: "Madonna"}, "FN:Madonna", "N:;Madonna;;;"},
		{"two tokens", card.Document{FullName: "Jane Doe"}, "FN:Jane Doe", "N:Doe;Jane;;;"},
		{"title fallback", card.Document{Title: "Chief Builder"}, "FN:Chief Builder", "N:Builder;Chief;;;"},
		{"handle fallback", card.Document{Handle: "@jq"}, "FN:jq", "N:;jq;;;"},
		{"newline in name", card.Document{FullName: "Jane\r\nDoe"}, "FN:Jane Doe", "N:Doe;Jane;;;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := lines(Encode(tt.doc, nil))
			require.GreaterOrEqual(t, len(l), 4)
			assert.Equal(t, tt.fn, l[2])
			assert.Equal(t, tt.nField, l[3])
		})
	}
}

func TestEncode_TitleComesFromRole(t *testing.T) {
	got := Encode(card.Document{FullName: "Jane", Title: "Headline", Role: "CTO"}, nil)

	assert.Contains(t, lines(got), "TITLE:CTO")
	assert.NotContains(t, got, "TITLE:Headline")
}

func TestEncode_SkipsBlankOptionalFields(t *testing.T) {
	doc := card.Document{
		FullName: "Jane",
		Email:    "\n",
		Org:      "   ",
		Role:     "\r\n",
	}

	got := Encode(doc, nil)

	for _, prefix := range []string{"TEL", "EMAIL", "ORG", "TITLE", "PHOTO"} {
		assert.NotContains(t, got, "\r\n"+prefix)
	}
	for _, l := range lines(got) {
		assert.False(t, strings.HasSuffix(l, ":"), "empty property emitted: %q", l)
	}
}

func TestEncode_SanitizesValues(t *testing.T) {
	got := lines(Encode(card.Document{FullName: "Jane", Org: "Acme\nLabs", Role: "Chief\r\nOfficer"}, nil))

	assert.Contains(t, got, "ORG:Acme Labs")
	assert.Contains(t, got, "TITLE:Chief Officer")
}

func TestEncode_Photo(t *testing.T) {
	photo := "QUJD"
	got := lines(Encode(card.Document{FullName: "Jane"}, &photo))

	require.Len(t, got, 6)
	assert.Equal(t, "PHOTO;ENCODING=b;TYPE=JPEG:QUJD", got[4])
	assert.Equal(t, "END:VCARD", got[5])

	empty := ""
	assert.NotContains(t, Encode(card.Document{FullName: "Jane"}, &empty), "PHOTO")
}

func TestEncode_DeterministicAndPure(t *testing.T) {
	doc := card.Document{
		FullName: "Jane Q Public",
		Links:    []card.Link{{Label: "a", URL: "b"}},
		Org:      "Acme\nLabs",
	}
	before := doc.Clone()
	photo := "QUJD"

	a := Encode(doc, &photo)
	b := Encode(doc, &photo)

	assert.Equal(t, a, b)
	assert.Equal(t, before, doc)
	assert.Equal(t, "QUJD", photo)
}

func TestEncode_RoundTrip(t *testing.T) {
	doc := card.Document{
		FullName:    "Jane\nQ Public",
		CountryCode: "+63",
		Phone:       "9171234567",
		Email:       "jane@example.com",
		Org:         "Acme\r\nLabs",
		Role:        "Head: Engineering",
	}

	got := Parse(Encode(doc, nil))

	assert.Equal(t, "Jane Q Public", got["FN"])
	assert.Equal(t, "+639171234567", got["TEL;TYPE=CELL"])
	assert.Equal(t, "jane@example.com", got["EMAIL;TYPE=INTERNET"])
	assert.Equal(t, "Acme Labs", got["ORG"])
	assert.Equal(t, "Head: Engineering", got["TITLE"])
}

func TestFileName(t *testing.T) {
	tests := []struct {
		doc  card.Document
		want string
	}{
		{card.Document{FullName: "Jane Q. Public"}, "Jane_Q_Public.vcf"},
		{card.Document{FullName: "anne-marie"}, "anne-marie.vcf"},
		{card.Document{Handle: "@jq"}, "jq.vcf"},
		{card.Document{}, "Contact.vcf"},
		{card.Document{FullName: "Ñandú"}, "_and_.vcf"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FileName(tt.doc))
	}
}

func TestSplitName(t *testing.T) {
	f, g := SplitName("A B C")
	assert.Equal(t, "C", f)
	assert.Equal(t, "A B", g)

	f, g = SplitName("Solo")
	assert.Equal(t, "", f)
	assert.Equal(t, "Solo", g)
}
