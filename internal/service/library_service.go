package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/chemistry-web/internal/config"
	"github.com/stemsi/chemistry-web/internal/model"
	"github.com/stemsi/chemistry-web/internal/repository"
)

var (
	ErrLibraryUnavailable = errors.New("library data unavailable")
	ErrLibraryNotLoaded   = errors.New("library not loaded yet")
)

// Library display strings.
const (
	LibraryLoadError     = "Failed to load library data. Please refresh the page."
	LibraryNoResults     = "No Results Found"
	LibraryNoResultsHint = "Try adjusting your filters or search query."
	DefaultDescription   = "No description available."

	BadgeFree    = "FREE"
	BadgePremium = "PREMIUM"

	linkTextFree    = "Access Free Resource"
	linkTextDefault = "View Resource"
)

// Filter values shared by the category, level, format and free controls.
const (
	FilterAll     = "all"
	FilterFree    = "free"
	FilterPremium = "premium"
)

// LibraryService serves the resource catalog. The document is fetched once
// by Load; a failed load is kept and reported on every later call.
type LibraryService struct {
	source repository.LibrarySource
	rdb    *redis.Client
	log    zerolog.Logger

	mu      sync.RWMutex
	doc     *model.LibraryDocument
	loadErr error
}

// NewLibraryService creates a LibraryService. rdb may be nil.
func NewLibraryService(source repository.LibrarySource, rdb *redis.Client, log zerolog.Logger) *LibraryService {
	return &LibraryService{
		source:  source,
		rdb:     rdb,
		log:     log.With().Str("component", "library_service").Logger(),
		loadErr: ErrLibraryNotLoaded,
	}
}

// Load fetches the catalog from the configured source. When the source
// fails and Redis holds a previously cached copy, that copy is served.
func (s *LibraryService) Load(ctx context.Context) error {
	doc, err := s.source.Load(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("source", s.source.Name()).Msg("Failed to load library")

		cached, cacheErr := s.cached(ctx)
		if cacheErr != nil {
			s.set(nil, fmt.Errorf("%w: %v", ErrLibraryUnavailable, err))
			return s.loadErr
		}
		s.log.Warn().Msg("Serving cached library payload")
		doc = cached
	} else if err := s.warm(ctx, doc); err != nil {
		s.log.Warn().Err(err).Msg("Failed to cache library payload")
	}

	s.set(doc, nil)
	s.log.Info().
		Int("categories", len(doc.Categories)).
		Int("items", repository.CountItems(doc)).
		Msg("Library loaded")
	return nil
}

// Document returns the loaded catalog or the load error.
func (s *LibraryService) Document() (*model.LibraryDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.doc, nil
}

// Categories lists the category tabs in document order.
func (s *LibraryService) Categories() ([]model.LibraryCategorySummary, error) {
	doc, err := s.Document()
	if err != nil {
		return nil, err
	}
	out := make([]model.LibraryCategorySummary, len(doc.Categories))
	for i, c := range doc.Categories {
		out[i] = model.LibraryCategorySummary{ID: c.ID, Name: c.Name, ItemCount: len(c.Items)}
	}
	return out, nil
}

// Filter returns the decorated items matching every active criterion.
func (s *LibraryService) Filter(criteria model.LibraryCriteria) ([]model.LibraryItemView, error) {
	doc, err := s.Document()
	if err != nil {
		return nil, err
	}
	return FilterLibrary(doc, criteria), nil
}

// Facets returns the distinct levels and formats present in the catalog,
// used to populate the filter dropdowns.
func (s *LibraryService) Facets() (levels, formats []string, err error) {
	doc, err := s.Document()
	if err != nil {
		return nil, nil, err
	}
	lv := map[string]bool{}
	fm := map[string]bool{}
	for _, c := range doc.Categories {
		for _, it := range c.Items {
			if it.Level != "" {
				lv[it.Level] = true
			}
			if it.Format != "" {
				fm[it.Format] = true
			}
		}
	}
	return sortedKeys(lv), sortedKeys(fm), nil
}

func (s *LibraryService) set(doc *model.LibraryDocument, err error) {
	s.mu.Lock()
	s.doc = doc
	s.loadErr = err
	s.mu.Unlock()
}

func (s *LibraryService) warm(ctx context.Context, doc *model.LibraryDocument) error {
	if s.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal library: %w", err)
	}
	if err := s.rdb.Set(ctx, config.CacheKey.LibraryPayloadKey(), payload, 0).Err(); err != nil {
		return fmt.Errorf("cache to redis: %w", err)
	}
	return nil
}

func (s *LibraryService) cached(ctx context.Context) (*model.LibraryDocument, error) {
	if s.rdb == nil {
		return nil, redis.Nil
	}
	raw, err := s.rdb.Get(ctx, config.CacheKey.LibraryPayloadKey()).Bytes()
	if err != nil {
		return nil, err
	}
	return repository.DecodeLibrary(raw)
}

// ─── Filtering ──────────────────────────────────────────────────────

// FilterLibrary applies the category, level, format, free and search
// predicates. All of them must hold for an item to be kept.
func FilterLibrary(doc *model.LibraryDocument, criteria model.LibraryCriteria) []model.LibraryItemView {
	query := strings.ToLower(strings.TrimSpace(criteria.Search))
	out := []model.LibraryItemView{}

	for _, cat := range doc.Categories {
		if active(criteria.Category) && cat.ID != criteria.Category {
			continue
		}
		for _, item := range cat.Items {
			if active(criteria.Level) && item.Level != criteria.Level {
				continue
			}
			if active(criteria.Format) && item.Format != criteria.Format {
				continue
			}
			switch criteria.Free {
			case FilterFree:
				if !item.IsFree() {
					continue
				}
			case FilterPremium:
				if !item.IsPremium() {
					continue
				}
			}
			if query != "" && !matchesSearch(item, query) {
				continue
			}
			out = append(out, Decorate(item, cat))
		}
	}
	return out
}

func active(v string) bool { return v != "" && v != FilterAll }

func matchesSearch(item model.LibraryItem, query string) bool {
	if strings.Contains(strings.ToLower(item.Title), query) ||
		strings.Contains(strings.ToLower(item.Author), query) ||
		strings.Contains(strings.ToLower(item.Description), query) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// Decorate derives the card fields of an item.
func Decorate(item model.LibraryItem, cat model.LibraryCategory) model.LibraryItemView {
	v := model.LibraryItemView{
		LibraryItem:  item,
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		Stars:        RatingStars(item.Rating),
		LinkText:     linkTextDefault,
		LinkTarget:   "_self",
	}
	if v.Description == "" {
		v.Description = DefaultDescription
	}
	if item.Free != nil {
		if *item.Free {
			v.Badge = BadgeFree
			v.LinkText = linkTextFree
		} else {
			v.Badge = BadgePremium
		}
	}
	if v.External() {
		v.LinkTarget = "_blank"
	}
	return v
}

// RatingStars renders a 0-5 rating as full stars, an optional half mark
// and empty stars.
func RatingStars(rating float64) string {
	rating = math.Max(0, math.Min(5, rating))
	full := int(math.Floor(rating))
	half := rating-math.Floor(rating) >= 0.5
	empty := 5 - full
	if half {
		empty--
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("★", full))
	if half {
		b.WriteString("½")
	}
	b.WriteString(strings.Repeat("☆", empty))
	return b.String()
}

// Paginate slices items for the given 1-based page. perPage <= 0 returns
// everything as a single page.
func Paginate[T any](items []T, page, perPage int) ([]T, int) {
	total := len(items)
	if perPage <= 0 {
		return items, 1
	}
	pages := (total + perPage - 1) / perPage
	if pages == 0 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if start >= total {
		return []T{}, pages
	}
	end := min(start+perPage, total)
	return items[start:end], pages
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
