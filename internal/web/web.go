// Package web holds the embedded HTML templates for the server-rendered pages.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses every embedded template. Use with gin's SetHTMLTemplate.
func Templates() (*template.Template, error) {
	return template.ParseFS(files, "templates/*.html")
}
