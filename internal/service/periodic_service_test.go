package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/stemsi/chemistry-web/internal/dataset"
)

func newTestPeriodic() *PeriodicService {
	return NewPeriodicService(dataset.Elements())
}

func TestGridLayout(t *testing.T) {
	g := newTestPeriodic().Grid("", "all")
	if len(g.Rows) != 7 || len(g.Rows[0]) != 18 {
		t.Fatalf("grid is %dx%d, want 7x18", len(g.Rows), len(g.Rows[0]))
	}
	if e := g.Rows[0][0].Element; e == nil || e.Symbol != "H" {
		t.Errorf("cell (1,1) = %+v, want H", e)
	}
	if e := g.Rows[0][17].Element; e == nil || e.Symbol != "He" {
		t.Errorf("cell (1,18) = %+v, want He", e)
	}
	if g.Rows[0][1].Element != nil {
		t.Errorf("cell (1,2) should be a gap")
	}
	if e := g.Rows[5][3].Element; e == nil || e.Number != 72 {
		t.Errorf("cell (6,4) = %+v, want Hf", e)
	}
	if g.Rows[5][2].Element != nil || g.Rows[6][2].Element != nil {
		t.Errorf("La/Ac slots in the main grid should stay empty")
	}

	if len(g.Lanthanides) != 15 || len(g.Actinides) != 15 {
		t.Fatalf("aux rows %d/%d, want 15/15", len(g.Lanthanides), len(g.Actinides))
	}
	if g.Lanthanides[0].Label != "La*" || g.Actinides[0].Label != "Ac*" {
		t.Errorf("series markers = %q, %q", g.Lanthanides[0].Label, g.Actinides[0].Label)
	}

	placed := 0
	for _, row := range g.Rows {
		for _, c := range row {
			if c.Element != nil {
				placed++
			}
		}
	}
	if placed+len(g.Lanthanides)+len(g.Actinides) != 118 {
		t.Errorf("placed %d elements in total, want 118", placed+len(g.Lanthanides)+len(g.Actinides))
	}
}

func TestMatches(t *testing.T) {
	s := newTestPeriodic()
	tests := []struct {
		query, category string
		want            string
	}{
		{"fe", "", "Fe,Fm"},
		{"OXY", "all", "O"},
		{"118", "", "Og"},
		{"", "noble-gas", "He,Ne,Ar,Kr,Xe,Rn,Og"},
		{"ne", "noble-gas", "Ne,Og"},
		{"ne", "alkali-metal", ""},
	}
	for _, tt := range tests {
		var syms []string
		for _, e := range s.Filter(tt.query, tt.category) {
			syms = append(syms, e.Symbol)
		}
		if got := strings.Join(syms, ","); got != tt.want {
			t.Errorf("Filter(%q, %q) = %q, want %q", tt.query, tt.category, got, tt.want)
		}
	}
}

func TestEmptyQueryShowsAll(t *testing.T) {
	if got := len(newTestPeriodic().Filter("  ", "")); got != 118 {
		t.Errorf("Filter(blank) returned %d, want 118", got)
	}
}

func TestGridVisibility(t *testing.T) {
	g := newTestPeriodic().Grid("", "lanthanide")
	if !g.Lanthanides[3].Visible {
		t.Error("lanthanide hidden by its own category")
	}
	if g.Rows[0][0].Visible {
		t.Error("hydrogen visible under lanthanide filter")
	}
}

func TestDetails(t *testing.T) {
	s := newTestPeriodic()

	fe, err := s.Details(26)
	if err != nil {
		t.Fatalf("Details(26) error: %v", err)
	}
	if fe.Period != 4 || fe.State != "Solid" || fe.OxidationStates != "+3, +2" || fe.Discovery != "Ancient" {
		t.Errorf("iron details = %+v", fe)
	}
	if fe.Density == nil || *fe.Density != 7.87 {
		t.Errorf("iron density = %v", fe.Density)
	}
	if fe.CategoryLabel != "Transition metal" {
		t.Errorf("category label = %q", fe.CategoryLabel)
	}

	ar, _ := s.Details(18)
	if ar.ElectronegativityText() != "N/A (noble gas)" {
		t.Errorf("argon electronegativity = %q", ar.ElectronegativityText())
	}
	if ar.State != "Gas" {
		t.Errorf("argon state = %q", ar.State)
	}

	u, _ := s.Details(92)
	if u.ElectronConfig != "[Rn] ..." || u.MeltingPoint != nil || u.Discovery != "" {
		t.Errorf("uranium fallbacks = %+v", u)
	}
	if !strings.Contains(u.Description, "atomic number 92") {
		t.Errorf("uranium description = %q", u.Description)
	}

	if _, err := s.Details(0); !errors.Is(err, ErrElementNotFound) {
		t.Errorf("Details(0) err = %v", err)
	}
}

func TestLookup(t *testing.T) {
	s := newTestPeriodic()
	if e, err := s.Lookup("na"); err != nil || e.Number != 11 {
		t.Errorf("Lookup(na) = %+v, %v", e, err)
	}
	if e, err := s.Lookup("79"); err != nil || e.Symbol != "Au" {
		t.Errorf("Lookup(79) = %+v, %v", e, err)
	}
	if _, err := s.Lookup("Xx"); !errors.Is(err, ErrElementNotFound) {
		t.Errorf("Lookup(Xx) err = %v", err)
	}
}

func TestCategoryLabelAndTooltip(t *testing.T) {
	if got := CategoryLabel("alkaline-earth"); got != "Alkaline earth" {
		t.Errorf("CategoryLabel = %q", got)
	}
	h, _ := newTestPeriodic().Lookup("H")
	if got := Tooltip(h); !strings.Contains(got, "Atomic Mass: 1.008 u") {
		t.Errorf("Tooltip = %q", got)
	}
}
