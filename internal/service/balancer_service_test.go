package service

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseCompound(t *testing.T) {
	tests := []struct {
		formula string
		want    map[string]int
	}{
		{"H2O", map[string]int{"H": 2, "O": 1}},
		{"NaCl", map[string]int{"Na": 1, "Cl": 1}},
		{"C6H12O6", map[string]int{"C": 6, "H": 12, "O": 6}},
		{"Fe2O3", map[string]int{"Fe": 2, "O": 3}},
		{"CH3COOH", map[string]int{"C": 2, "H": 4, "O": 2}},
		{"(OH)2", map[string]int{"O": 1, "H": 1}},
		{"h2o", map[string]int{}},
	}
	for _, tt := range tests {
		if got := ParseCompound(tt.formula); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseCompound(%q) = %v, want %v", tt.formula, got, tt.want)
		}
	}
}

func TestBalanceKnownReactions(t *testing.T) {
	s := NewBalancerService()
	tests := []struct {
		reactants, products string
		want                string
	}{
		{"H2 + O2", "H2O", "2H₂ + O₂ → 2H₂O"},
		{"CH4 + O2", "CO2 + H2O", "CH₄ + 2O₂ → CO₂ + 2H₂O"},
		{"Fe + O2", "Fe2O3", "4Fe + 3O₂ → 2Fe₂O₃"},
	}
	for _, tt := range tests {
		res, err := s.Balance(tt.reactants, tt.products)
		if err != nil {
			t.Fatalf("Balance(%q, %q) error: %v", tt.reactants, tt.products, err)
		}
		if !res.Balanced || res.Equation != tt.want || res.Coefficients == nil || res.Message != "" {
			t.Errorf("Balance(%q, %q) = %+v, want %q", tt.reactants, tt.products, res, tt.want)
		}
	}
}

func TestBalanceFallbackEchoesInput(t *testing.T) {
	res, err := NewBalancerService().Balance("  N2 + H2 ", "NH3")
	if err != nil {
		t.Fatalf("Balance error: %v", err)
	}
	if !res.Balanced {
		t.Error("fallback should still report balanced")
	}
	if res.Equation != "N2 + H2 → NH3" {
		t.Errorf("equation = %q", res.Equation)
	}
	if res.Message != SimplifiedNotice || res.Coefficients != nil {
		t.Errorf("fallback result = %+v", res)
	}
	if len(res.Reactants) != 2 || res.Reactants[0].Atoms["N"] != 2 {
		t.Errorf("parsed reactants = %+v", res.Reactants)
	}
}

func TestBalanceReportsUnknownSymbols(t *testing.T) {
	res, err := NewBalancerService().Balance("Xe + F2", "XeF2")
	if err != nil {
		t.Fatalf("Balance error: %v", err)
	}
	if got := res.Reactants[0].Unknown; len(got) != 1 || got[0] != "Xe" {
		t.Errorf("unknown symbols = %v, want [Xe]", got)
	}
}

func TestBalanceValidation(t *testing.T) {
	s := NewBalancerService()
	if _, err := s.Balance("", "H2O"); !errors.Is(err, ErrEmptySide) {
		t.Errorf("empty reactants err = %v", err)
	}
	if _, err := s.Balance("H2", "   "); !errors.Is(err, ErrEmptySide) {
		t.Errorf("blank products err = %v", err)
	}
	if _, err := s.Balance("2 + 3", "5"); !errors.Is(err, ErrInvalidFormula) {
		t.Errorf("numeric input err = %v", err)
	}
}
