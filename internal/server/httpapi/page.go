package httpapi

import (
	"bytes"
	"encoding/base64"
	"html/template"
	"net/http"
)

var cardPage = template.Must(template.New("card").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{if .Error}}tagme{{else}}{{.Card.DisplayName}}{{end}}</title>
</head>
<body>
{{- if .Error}}
<p class="error">{{.Error}}</p>
{{- else}}
<main class="card">
{{- if .PhotoData}}
<img class="photo" src="{{.PhotoData}}" alt="">
{{- else if .Card.PhotoURL}}
<img class="photo" src="{{.Card.PhotoURL}}" alt="">
{{- end}}
<h1>{{.Card.DisplayName}}</h1>
{{- with .Card.Headline}}
<p class="title">{{.}}</p>
{{- end}}
{{- with .Card.Subtitle}}
<p class="subtitle">{{.}}</p>
{{- end}}
{{- with .Card.Handle}}
<p class="handle">{{.}}</p>
{{- end}}
<ul class="links">
{{- range .Card.Links}}
<li><a href="{{.URL}}" rel="noopener">{{.Label}}</a></li>
{{- end}}
</ul>
{{- with .Card.PhoneNumber}}
<p><a href="tel:{{.}}">{{.}}</a></p>
{{- end}}
{{- with .Card.Email}}
<p><a href="mailto:{{.}}">{{.}}</a></p>
{{- end}}
<p><a class="save" href="{{.Card.VCardURL}}">Save Contact</a></p>
</main>
{{- end}}
</body>
</html>
`))

type pageData struct {
	Card      cardView
	PhotoData template.URL
	Error     string
}

// CardPage renders the public card for browsers.
func (h *Handler) CardPage(w http.ResponseWriter, r *http.Request) {
	doc, status, msg := h.loadCard(r.Context(), r.URL.Query().Get("id"))

	data := pageData{Error: msg}
	if status == http.StatusOK {
		data.Card = newCardView(doc)
		if doc.PhotoB64 != "" && isBase64(doc.PhotoB64) {
			data.PhotoData = template.URL("data:image/jpeg;base64," + doc.PhotoB64)
		}
	}

	var buf bytes.Buffer
	if err := cardPage.Execute(&buf, data); err != nil {
		h.logger.Error(r.Context(), "render card page failed", "error", err)
		respondError(w, http.StatusInternalServerError, msgLoadError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func isBase64(s string) bool {
	_, err := base64.StdEncoding.DecodeString(s)
	return err == nil
}
