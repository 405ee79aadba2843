// Package web bundles the site's templates, static assets and markdown
// content into the binary.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"strings"
	texttemplate "text/template"
)

//go:embed templates static content
var embedded embed.FS

// FS returns the asset tree. An empty dir serves the embedded copy; a
// directory path serves the files from disk so they can be edited live.
func FS(dir string) fs.FS {
	if dir == "" {
		return embedded
	}
	return os.DirFS(dir)
}

// Static returns the static asset subtree of fsys.
func Static(fsys fs.FS) (fs.FS, error) {
	return fs.Sub(fsys, "static")
}

// Funcs are the helpers available to every page template.
var Funcs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"percent": func(part, total int) int {
		if total == 0 {
			return 0
		}
		return part * 100 / total
	},
	"num": func(v *float64) string {
		if v == nil {
			return "Unknown"
		}
		return fmt.Sprintf("%g", *v)
	},
	"join":  strings.Join,
	"lower": strings.ToLower,
	"safe":  func(s string) template.HTML { return template.HTML(s) },
}

// Templates parses the page templates and their partials.
func Templates(fsys fs.FS) (*template.Template, error) {
	tmpl, err := template.New("").Funcs(Funcs).ParseFS(fsys, "templates/*.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// ServiceWorker parses the service worker script template.
func ServiceWorker(fsys fs.FS) (*texttemplate.Template, error) {
	tmpl, err := texttemplate.ParseFS(fsys, "templates/service-worker.js.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse service worker: %w", err)
	}
	return tmpl, nil
}
