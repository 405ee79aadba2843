package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/stemsi/chemistry-web/internal/dataset"
	"github.com/stemsi/chemistry-web/internal/model"
)

var ErrElementNotFound = errors.New("element not found")

// PeriodicService lays out the periodic table and derives element details
// from the static property tables.
type PeriodicService struct {
	elements []model.Element
	bySymbol map[string]model.Element
}

// NewPeriodicService indexes the element list.
func NewPeriodicService(elements []model.Element) *PeriodicService {
	s := &PeriodicService{
		elements: elements,
		bySymbol: make(map[string]model.Element, len(elements)),
	}
	for _, e := range elements {
		s.bySymbol[strings.ToLower(e.Symbol)] = e
	}
	return s
}

// Elements returns every element in atomic-number order.
func (s *PeriodicService) Elements() []model.Element {
	return s.elements
}

// Matches applies the text search and the exclusive category filter. An
// empty query and an empty or "all" category match everything.
func Matches(e model.Element, query, category string) bool {
	if category != "" && category != "all" && e.Category != category {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Symbol), q) ||
		strings.Contains(strings.ToLower(e.Name), q) ||
		strings.Contains(strconv.Itoa(e.Number), q)
}

// Filter returns the elements that pass Matches.
func (s *PeriodicService) Filter(query, category string) []model.Element {
	out := make([]model.Element, 0, len(s.elements))
	for _, e := range s.elements {
		if Matches(e, query, category) {
			out = append(out, e)
		}
	}
	return out
}

// Grid builds the 18×7 main table and the lanthanide and actinide rows,
// marking each cell visible or hidden for the given query and category.
func (s *PeriodicService) Grid(query, category string) model.PeriodicGrid {
	rows := make([][]model.GridCell, dataset.GridRows)
	for r := range rows {
		rows[r] = make([]model.GridCell, dataset.GridCols)
		for c := range rows[r] {
			rows[r][c] = model.GridCell{Row: r + 1, Col: c + 1}
		}
	}

	var grid model.PeriodicGrid
	for i := range s.elements {
		e := &s.elements[i]
		cell := model.GridCell{
			Element: e,
			Label:   Label(*e),
			Visible: Matches(*e, query, category),
		}
		switch {
		case dataset.InMainTable(e.Number):
			pos, ok := dataset.Positions[e.Number]
			if !ok {
				continue
			}
			cell.Row, cell.Col = pos.Row, pos.Col
			rows[pos.Row-1][pos.Col-1] = cell
		case dataset.IsLanthanide(e.Number):
			cell.Row, cell.Col = dataset.GridRows+2, len(grid.Lanthanides)+1
			grid.Lanthanides = append(grid.Lanthanides, cell)
		case dataset.IsActinide(e.Number):
			cell.Row, cell.Col = dataset.GridRows+3, len(grid.Actinides)+1
			grid.Actinides = append(grid.Actinides, cell)
		}
	}
	grid.Rows = rows
	return grid
}

// Lookup finds an element by atomic number or by symbol.
func (s *PeriodicService) Lookup(key string) (model.Element, error) {
	key = strings.TrimSpace(key)
	if n, err := strconv.Atoi(key); err == nil {
		if n >= 1 && n <= len(s.elements) {
			return s.elements[n-1], nil
		}
		return model.Element{}, fmt.Errorf("%w: %d", ErrElementNotFound, n)
	}
	if e, ok := s.bySymbol[strings.ToLower(key)]; ok {
		return e, nil
	}
	return model.Element{}, fmt.Errorf("%w: %q", ErrElementNotFound, key)
}

// Details derives the overlay properties for an element.
func (s *PeriodicService) Details(number int) (*model.ElementDetails, error) {
	if number < 1 || number > len(s.elements) {
		return nil, fmt.Errorf("%w: %d", ErrElementNotFound, number)
	}
	e := s.elements[number-1]
	discovery, _ := dataset.Discovery.Lookup(number)

	return &model.ElementDetails{
		Element:           e,
		Label:             Label(e),
		CategoryLabel:     CategoryLabel(e.Category),
		Period:            dataset.Period(number),
		State:             dataset.State(number),
		ElectronConfig:    dataset.ElectronConfig.Get(number),
		ElectronShells:    dataset.ElectronShells.Get(number),
		Electronegativity: dataset.Electronegativity.Ptr(number),
		OxidationStates:   dataset.OxidationStates.Get(number),
		MeltingPoint:      dataset.MeltingPoint.Ptr(number),
		BoilingPoint:      dataset.BoilingPoint.Ptr(number),
		Density:           dataset.Density.Ptr(number),
		Discovery:         discovery,
		Description:       dataset.Description(number, e.Name, e.Symbol),
	}, nil
}

// Tooltip is the short hover summary of an element.
func Tooltip(e model.Element) string {
	return fmt.Sprintf("%s\nSymbol: %s\nAtomic Number: %d\nAtomic Mass: %s u\nGroup: %s",
		e.Name, e.Symbol, e.Number, strconv.FormatFloat(e.Mass, 'f', -1, 64), e.Group)
}

// Label is the symbol shown in a cell; La and Ac carry a "*".
func Label(e model.Element) string {
	if dataset.HasSeriesMarker(e.Number) {
		return e.Symbol + "*"
	}
	return e.Symbol
}

// CategoryLabel capitalises a category id and replaces its first hyphen
// with a space, e.g. "noble-gas" becomes "Noble gas".
func CategoryLabel(category string) string {
	if category == "" {
		return ""
	}
	return strings.ToUpper(category[:1]) + strings.Replace(category[1:], "-", " ", 1)
}

// Summaries returns every element with its cell label, tooltip and
// visibility for the given query and category.
func (s *PeriodicService) Summaries(query, category string) []model.ElementSummary {
	out := make([]model.ElementSummary, len(s.elements))
	for i, e := range s.elements {
		out[i] = model.ElementSummary{
			Element: e,
			Label:   Label(e),
			Tooltip: Tooltip(e),
			Visible: Matches(e, query, category),
		}
	}
	return out
}

// CategoryOptions lists the filter choices in legend order.
func CategoryOptions() []model.CategoryOption {
	out := make([]model.CategoryOption, len(dataset.Categories))
	for i, id := range dataset.Categories {
		out[i] = model.CategoryOption{ID: id, Label: CategoryLabel(id)}
	}
	return out
}
