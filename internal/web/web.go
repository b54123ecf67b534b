package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates static
var FS embed.FS

// Templates parses the page and its partials.
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(FS, "templates/*.html", "templates/partials/*.html")
}

// Static returns the asset tree served under /static.
func Static() (fs.FS, error) {
	return fs.Sub(FS, "static")
}
