// Package content renders the site's markdown pages.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/stemsi/chemistry-web/internal/model"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var ErrPageNotFound = errors.New("content page not found")

// Page is one rendered markdown document. Sections is filled for pages
// split into collapsible blocks.
type Page struct {
	Slug     string
	Title    string
	HTML     template.HTML
	Sections []model.Section
}

// Renderer converts markdown once and keeps the result keyed by slug,
// e.g. "about" or "branches/organic-chemistry".
type Renderer struct {
	md    goldmark.Markdown
	mu    sync.RWMutex
	pages map[string]*Page
}

func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		pages: make(map[string]*Page),
	}
}

// Load renders every .md file under root in fsys. Files listed in
// sectioned are also split on their level-two headings.
func (r *Renderer) Load(fsys fs.FS, root string, sectioned ...string) (int, error) {
	split := make(map[string]bool, len(sectioned))
	for _, s := range sectioned {
		split[s] = true
	}

	pages := make(map[string]*Page)
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".md" {
			return nil
		}
		src, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		slug := strings.TrimSuffix(strings.TrimPrefix(p, root+"/"), ".md")

		page, err := r.render(slug, src, split[slug])
		if err != nil {
			return fmt.Errorf("render %s: %w", p, err)
		}
		pages[slug] = page
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	r.pages = pages
	r.mu.Unlock()
	return len(pages), nil
}

// Page returns the rendered page for slug.
func (r *Renderer) Page(slug string) (*Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pages[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, slug)
	}
	return p, nil
}

// Slugs lists the loaded pages.
func (r *Renderer) Slugs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.pages))
	for s := range r.pages {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Markdown converts src to HTML.
func (r *Renderer) Markdown(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func (r *Renderer) render(slug string, src []byte, sectioned bool) (*Page, error) {
	title, body := splitTitle(string(src), slug)
	page := &Page{Slug: slug, Title: title}

	if !sectioned {
		out, err := r.Markdown([]byte(body))
		if err != nil {
			return nil, err
		}
		page.HTML = out
		return page, nil
	}

	intro, blocks := splitSections(body)
	out, err := r.Markdown([]byte(intro))
	if err != nil {
		return nil, err
	}
	page.HTML = out

	for _, b := range blocks {
		rendered, err := r.Markdown([]byte(b.body))
		if err != nil {
			return nil, err
		}
		page.Sections = append(page.Sections, model.Section{
			ID:    Anchor(b.title),
			Title: b.title,
			HTML:  string(rendered),
		})
	}
	return page, nil
}

// splitTitle takes the first level-one heading as the title and removes it
// from the body.
func splitTitle(src, slug string) (string, string) {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			rest := append(lines[:i:i], lines[i+1:]...)
			return strings.TrimPrefix(trimmed, "# "), strings.Join(rest, "\n")
		}
	}
	return path.Base(slug), src
}

type block struct {
	title string
	body  string
}

// splitSections cuts body at each "## " heading.
func splitSections(body string) (string, []block) {
	var intro strings.Builder
	var blocks []block
	var cur *block
	var buf strings.Builder

	flush := func() {
		if cur != nil {
			cur.body = strings.TrimSpace(buf.String())
			blocks = append(blocks, *cur)
		}
		buf.Reset()
	}

	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "## ") {
			if cur == nil {
				intro.WriteString(buf.String())
			}
			flush()
			cur = &block{title: strings.TrimSpace(strings.TrimPrefix(line, "## "))}
			continue
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	if cur == nil {
		intro.WriteString(buf.String())
	} else {
		flush()
	}
	return strings.TrimSpace(intro.String()), blocks
}

var nonAnchor = regexp.MustCompile(`[^a-z0-9]+`)

// Anchor turns a heading into a URL fragment id.
func Anchor(title string) string {
	return strings.Trim(nonAnchor.ReplaceAllString(strings.ToLower(title), "-"), "-")
}
