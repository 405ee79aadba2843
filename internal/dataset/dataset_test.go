package dataset

import (
	"errors"
	"testing"

	"github.com/stemsi/chemistry-web/internal/model"
)

func TestEmbeddedDataLoads(t *testing.T) {
	if err := Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
}

func TestBanksMatchAdvertisedSize(t *testing.T) {
	want := map[string]int{"quiz5": 5, "quiz10": 10, "quiz20": 20, "quiz30": 30, "quiz40": 40}
	got := Banks()
	if len(got) != len(want) {
		t.Fatalf("got %d banks, want %d", len(got), len(want))
	}
	for i, b := range got {
		if want[b.ID] != b.Size {
			t.Errorf("bank %s size = %d, want %d", b.ID, b.Size, want[b.ID])
		}
		if len(b.Questions) != b.Size {
			t.Errorf("bank %s has %d questions, advertises %d", b.ID, len(b.Questions), b.Size)
		}
		for j, q := range b.Questions {
			if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
				t.Errorf("bank %s question %d: correct index %d out of range", b.ID, j, q.CorrectIndex)
			}
		}
		if i > 0 && got[i-1].Size >= b.Size {
			t.Errorf("banks not ordered by size at %d", i)
		}
	}
}

func TestValidateBanksRejectsBadAnswerIndex(t *testing.T) {
	bad := []model.QuizBank{{
		ID:   "quiz1",
		Size: 1,
		Questions: []model.Question{
			{Text: "q", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 4},
		},
	}}
	if err := ValidateBanks(bad); !errors.Is(err, ErrInvalidDataset) {
		t.Errorf("ValidateBanks() = %v, want ErrInvalidDataset", err)
	}

	bad[0].Questions[0].CorrectIndex = 0
	bad[0].Size = 2
	if err := ValidateBanks(bad); !errors.Is(err, ErrInvalidDataset) {
		t.Errorf("size mismatch: ValidateBanks() = %v, want ErrInvalidDataset", err)
	}
}

func TestElementsAreComplete(t *testing.T) {
	els := Elements()
	if len(els) != 118 {
		t.Fatalf("got %d elements, want 118", len(els))
	}
	cats := make(map[string]bool)
	for _, c := range Categories {
		cats[c] = true
	}
	for _, e := range els {
		if !cats[e.Category] {
			t.Errorf("element %d has unknown category %q", e.Number, e.Category)
		}
	}
	if e, ok := Element(26); !ok || e.Symbol != "Fe" {
		t.Errorf("Element(26) = %+v, %v", e, ok)
	}
	if _, ok := Element(119); ok {
		t.Error("Element(119) found")
	}
}

func TestPositionsFitGrid(t *testing.T) {
	used := make(map[Position]int)
	for n, p := range Positions {
		if p.Row < 1 || p.Row > GridRows || p.Col < 1 || p.Col > GridCols {
			t.Errorf("element %d outside grid: %+v", n, p)
		}
		if other, ok := used[p]; ok {
			t.Errorf("elements %d and %d share slot %+v", n, other, p)
		}
		used[p] = n
	}
	for n := 1; n <= 118; n++ {
		_, placed := Positions[n]
		if placed != InMainTable(n) {
			t.Errorf("element %d: placed = %v, in main table = %v", n, placed, InMainTable(n))
		}
	}
	if _, ok := used[Position{6, 3}]; ok {
		t.Error("La slot (6,3) is occupied")
	}
	if _, ok := used[Position{7, 3}]; ok {
		t.Error("Ac slot (7,3) is occupied")
	}
	if p := Positions[118]; p != (Position{7, 18}) {
		t.Errorf("Og position = %+v", p)
	}
}

func TestTableFallbacks(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"config listed", ElectronConfig.Get(8), "[He] 2s² 2p⁴"},
		{"config krypton block", ElectronConfig.Get(50), "[Kr] ..."},
		{"config xenon block", ElectronConfig.Get(79), "[Xe] ..."},
		{"config radon block", ElectronConfig.Get(92), "[Rn] ..."},
		{"oxidation default", OxidationStates.Get(100), "Variable"},
		{"shells default", ElectronShells.Get(21), "Variable"},
		{"description generic", Description(50, "Tin", "Sn"), "Tin (Sn) is an important chemical element with atomic number 50."},
		{"state gas", State(36), "Gas"},
		{"state liquid", State(80), "Liquid"},
		{"state solid", State(26), "Solid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}

	if Electronegativity.Ptr(10) != nil {
		t.Error("neon electronegativity should be absent")
	}
	if v := Electronegativity.Ptr(9); v == nil || *v != 3.98 {
		t.Errorf("fluorine electronegativity = %v", v)
	}
	if Discovery.Ptr(100) != nil {
		t.Error("discovery of 100 should be absent")
	}
}

func TestPeriodBoundaries(t *testing.T) {
	cases := map[int]int{1: 1, 2: 1, 3: 2, 10: 2, 11: 3, 18: 3, 19: 4, 36: 4, 37: 5, 54: 5, 55: 6, 86: 6, 87: 7, 118: 7}
	for n, want := range cases {
		if got := Period(n); got != want {
			t.Errorf("Period(%d) = %d, want %d", n, got, want)
		}
	}
}
