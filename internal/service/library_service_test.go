package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stemsi/chemistry-web/internal/model"
)

type stubLibrarySource struct {
	doc *model.LibraryDocument
	err error
}

func (s stubLibrarySource) Load(context.Context) (*model.LibraryDocument, error) { return s.doc, s.err }
func (s stubLibrarySource) Name() string                                          { return "stub" }

func boolPtr(b bool) *bool { return &b }

func testLibrary() *model.LibraryDocument {
	return &model.LibraryDocument{Categories: []model.LibraryCategory{
		{ID: "textbooks", Name: "Textbooks", Items: []model.LibraryItem{
			{Title: "Organic Chemistry", Author: "Clayden", Level: "Advanced", Format: "Book", Free: boolPtr(false), Rating: 4.7, Tags: []string{"organic"}},
			{Title: "Chemistry 2e", Author: "OpenStax", Level: "Beginner", Format: "Book", Free: boolPtr(true), Rating: 4.5, Link: "https://openstax.org", Tags: []string{"general"}},
			{Title: "Physical Chemistry", Level: "Advanced", Format: "Book", Rating: 4},
		}},
		{ID: "videos", Name: "Videos", Items: []model.LibraryItem{
			{Title: "Crash Course Chemistry", Level: "Beginner", Format: "Video", Free: boolPtr(true), Description: "Organic basics in short videos", Link: "/videos/crash"},
			{Title: "Lab Safety", Format: "Video", Free: boolPtr(true)},
		}},
	}}
}

func loadedLibrary(t *testing.T) *LibraryService {
	t.Helper()
	s := NewLibraryService(stubLibrarySource{doc: testLibrary()}, nil, zerolog.Nop())
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	return s
}

func titles(items []model.LibraryItemView) string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return strings.Join(out, ",")
}

func TestLibraryFilter(t *testing.T) {
	s := loadedLibrary(t)

	tests := []struct {
		name     string
		criteria model.LibraryCriteria
		want     string
	}{
		{"no criteria", model.LibraryCriteria{}, "Organic Chemistry,Chemistry 2e,Physical Chemistry,Crash Course Chemistry,Lab Safety"},
		{"all category", model.LibraryCriteria{Category: "all"}, "Organic Chemistry,Chemistry 2e,Physical Chemistry,Crash Course Chemistry,Lab Safety"},
		{"category", model.LibraryCriteria{Category: "videos"}, "Crash Course Chemistry,Lab Safety"},
		{"unknown category", model.LibraryCriteria{Category: "podcasts"}, ""},
		{"level", model.LibraryCriteria{Level: "Advanced"}, "Organic Chemistry,Physical Chemistry"},
		{"format", model.LibraryCriteria{Format: "Video"}, "Crash Course Chemistry,Lab Safety"},
		{"free only", model.LibraryCriteria{Free: "free"}, "Chemistry 2e,Crash Course Chemistry,Lab Safety"},
		{"premium includes absent flag", model.LibraryCriteria{Free: "premium"}, "Organic Chemistry,Physical Chemistry"},
		{"search title", model.LibraryCriteria{Search: "  PHYSICAL "}, "Physical Chemistry"},
		{"search tag", model.LibraryCriteria{Search: "general"}, "Chemistry 2e"},
		{"search description", model.LibraryCriteria{Search: "basics"}, "Crash Course Chemistry"},
		{"free and search both hold", model.LibraryCriteria{Free: "free", Search: "organic"}, "Crash Course Chemistry"},
		{"level and format", model.LibraryCriteria{Level: "Beginner", Format: "Book"}, "Chemistry 2e"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Filter(tt.criteria)
			if err != nil {
				t.Fatalf("Filter error: %v", err)
			}
			if titles(got) != tt.want {
				t.Errorf("Filter(%+v) = %q, want %q", tt.criteria, titles(got), tt.want)
			}
		})
	}
}

func TestLibraryDecorate(t *testing.T) {
	s := loadedLibrary(t)
	items, _ := s.Filter(model.LibraryCriteria{})

	byTitle := map[string]model.LibraryItemView{}
	for _, it := range items {
		byTitle[it.Title] = it
	}

	free := byTitle["Chemistry 2e"]
	if free.Badge != BadgeFree || free.LinkText != "Access Free Resource" || free.LinkTarget != "_blank" {
		t.Errorf("free item = %+v", free)
	}
	if free.CategoryID != "textbooks" || free.CategoryName != "Textbooks" {
		t.Errorf("category = %q/%q", free.CategoryID, free.CategoryName)
	}

	premium := byTitle["Organic Chemistry"]
	if premium.Badge != BadgePremium || premium.LinkText != "View Resource" {
		t.Errorf("premium item = %+v", premium)
	}

	absent := byTitle["Physical Chemistry"]
	if absent.Badge != "" {
		t.Errorf("absent free flag badge = %q, want none", absent.Badge)
	}
	if absent.Description != DefaultDescription {
		t.Errorf("description = %q", absent.Description)
	}

	local := byTitle["Crash Course Chemistry"]
	if local.LinkTarget != "_self" || local.External() {
		t.Errorf("local link target = %q", local.LinkTarget)
	}
}

func TestRatingStars(t *testing.T) {
	tests := []struct {
		rating float64
		want   string
	}{
		{0, "☆☆☆☆☆"},
		{4, "★★★★☆"},
		{4.5, "★★★★½"},
		{4.7, "★★★★½"},
		{3.2, "★★★☆☆"},
		{5, "★★★★★"},
		{7, "★★★★★"},
	}
	for _, tt := range tests {
		if got := RatingStars(tt.rating); got != tt.want {
			t.Errorf("RatingStars(%v) = %q, want %q", tt.rating, got, tt.want)
		}
	}
}

func TestLibraryLoadFailure(t *testing.T) {
	s := NewLibraryService(stubLibrarySource{err: errors.New("boom")}, nil, zerolog.Nop())

	if _, err := s.Document(); !errors.Is(err, ErrLibraryNotLoaded) {
		t.Errorf("before Load: err = %v", err)
	}
	if err := s.Load(context.Background()); !errors.Is(err, ErrLibraryUnavailable) {
		t.Fatalf("Load err = %v, want ErrLibraryUnavailable", err)
	}
	if _, err := s.Filter(model.LibraryCriteria{}); !errors.Is(err, ErrLibraryUnavailable) {
		t.Errorf("Filter err = %v", err)
	}
	if _, err := s.Categories(); !errors.Is(err, ErrLibraryUnavailable) {
		t.Errorf("Categories err = %v", err)
	}
}

func TestLibraryCategoriesAndFacets(t *testing.T) {
	s := loadedLibrary(t)

	cats, err := s.Categories()
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 2 || cats[0].ID != "textbooks" || cats[0].ItemCount != 3 || cats[1].ItemCount != 2 {
		t.Errorf("categories = %+v", cats)
	}

	levels, formats, err := s.Facets()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(levels, ",") != "Advanced,Beginner" || strings.Join(formats, ",") != "Book,Video" {
		t.Errorf("facets = %v / %v", levels, formats)
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, pages := Paginate(items, 2, 2)
	if pages != 3 || len(page) != 2 || page[0] != 3 {
		t.Errorf("page 2 = %v of %d", page, pages)
	}
	page, _ = Paginate(items, 3, 2)
	if len(page) != 1 || page[0] != 5 {
		t.Errorf("page 3 = %v", page)
	}
	page, _ = Paginate(items, 9, 2)
	if len(page) != 0 {
		t.Errorf("past end = %v", page)
	}
	page, pages = Paginate(items, 1, 0)
	if len(page) != 5 || pages != 1 {
		t.Errorf("unpaged = %v of %d", page, pages)
	}
	_, pages = Paginate([]int{}, 1, 10)
	if pages != 1 {
		t.Errorf("empty pages = %d", pages)
	}
}
