package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates/index.html
var templateFS embed.FS

const instructions = `Enter your coordinates as "latitude, longitude" to find the closest outdoor rink.`

// notice is a one-shot message rendered into a single response.
type notice struct {
	Category string
	Message  string
}

type pageData struct {
	Notices []notice
	Input   string
}

func LoadPage() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/index.html")
}

func renderPage(w http.ResponseWriter, r *http.Request, tmpl *template.Template, status int, data pageData) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Printf("render failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
