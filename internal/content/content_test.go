package content

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"content/about.md": {Data: []byte("# About Us\n\nWe teach **chemistry**.\n")},
		"content/faq.md": {Data: []byte("# FAQ\n\nCommon questions.\n\n## What is a mole?\n\nAn amount of substance.\n\n## Is the quiz saved?\n\nNo.\n")},
		"content/branches/organic-chemistry.md": {Data: []byte("Carbon compounds.\n")},
		"content/notes.txt": {Data: []byte("ignored")},
	}
}

func TestLoadRendersPages(t *testing.T) {
	r := NewRenderer()
	n, err := r.Load(testFS(), "content", "faq")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if n != 3 {
		t.Errorf("loaded %d pages, want 3 (%v)", n, r.Slugs())
	}

	about, err := r.Page("about")
	if err != nil {
		t.Fatal(err)
	}
	if about.Title != "About Us" {
		t.Errorf("title = %q", about.Title)
	}
	if !strings.Contains(string(about.HTML), "<strong>chemistry</strong>") || strings.Contains(string(about.HTML), "<h1") {
		t.Errorf("html = %s", about.HTML)
	}

	branch, err := r.Page("branches/organic-chemistry")
	if err != nil {
		t.Fatal(err)
	}
	if branch.Title != "organic-chemistry" {
		t.Errorf("fallback title = %q", branch.Title)
	}

	if _, err := r.Page("missing"); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("missing page err = %v", err)
	}
}

func TestSectionedPage(t *testing.T) {
	r := NewRenderer()
	if _, err := r.Load(testFS(), "content", "faq"); err != nil {
		t.Fatal(err)
	}
	faq, _ := r.Page("faq")

	if !strings.Contains(string(faq.HTML), "Common questions.") {
		t.Errorf("intro = %s", faq.HTML)
	}
	if len(faq.Sections) != 2 {
		t.Fatalf("sections = %+v", faq.Sections)
	}
	first := faq.Sections[0]
	if first.ID != "what-is-a-mole" || first.Title != "What is a mole?" || !strings.Contains(first.HTML, "amount of substance") {
		t.Errorf("first section = %+v", first)
	}
	if first.Open {
		t.Error("sections start closed")
	}
}

func TestAnchor(t *testing.T) {
	if got := Anchor("  Is the quiz saved? "); got != "is-the-quiz-saved" {
		t.Errorf("Anchor = %q", got)
	}
}

func TestMarkdownOmitsRawHTML(t *testing.T) {
	out, err := NewRenderer().Markdown([]byte("Safe text.\n\n<script>alert(1)</script>\n\nInline <b onclick=\"x()\">bold</b>.\n"))
	if err != nil {
		t.Fatalf("Markdown error: %v", err)
	}
	html := string(out)
	if strings.Contains(html, "<script>") || strings.Contains(html, "onclick") {
		t.Errorf("raw HTML passed through:\n%s", html)
	}
	if !strings.Contains(html, "Safe text.") {
		t.Errorf("text missing:\n%s", html)
	}
}
