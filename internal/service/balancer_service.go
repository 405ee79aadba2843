package service

import (
	"errors"
	"sort"
	"strings"
	"unicode"

	"github.com/stemsi/chemistry-web/internal/dataset"
	"github.com/stemsi/chemistry-web/internal/model"
)

var (
	ErrEmptySide      = errors.New("both reactants and products are required")
	ErrInvalidFormula = errors.New("invalid chemical formula format")
)

// SimplifiedNotice accompanies every equation the balancer does not know.
const SimplifiedNotice = "This is a simplified balancer. For complex equations, use specialized tools."

// knownReaction is matched by substring inclusion on both sides.
type knownReaction struct {
	reactants    []string
	products     []string
	equation     string
	coefficients model.Coefficients
}

var knownReactions = []knownReaction{
	{
		reactants:    []string{"H2", "O2"},
		products:     []string{"H2O"},
		equation:     "2H₂ + O₂ → 2H₂O",
		coefficients: model.Coefficients{Reactants: []int{2, 1}, Products: []int{2}},
	},
	{
		reactants:    []string{"CH4", "O2"},
		products:     []string{"CO2", "H2O"},
		equation:     "CH₄ + 2O₂ → CO₂ + 2H₂O",
		coefficients: model.Coefficients{Reactants: []int{1, 2}, Products: []int{1, 2}},
	},
	{
		reactants:    []string{"Fe", "O2"},
		products:     []string{"Fe2O3"},
		equation:     "4Fe + 3O₂ → 2Fe₂O₃",
		coefficients: model.Coefficients{Reactants: []int{4, 3}, Products: []int{2}},
	},
}

func (k knownReaction) matches(reactants, products string) bool {
	for _, r := range k.reactants {
		if !strings.Contains(reactants, r) {
			return false
		}
	}
	for _, p := range k.products {
		if !strings.Contains(products, p) {
			return false
		}
	}
	return true
}

// BalancerService recognises a handful of textbook reactions and otherwise
// echoes the input. It does not solve for coefficients.
type BalancerService struct{}

func NewBalancerService() *BalancerService {
	return &BalancerService{}
}

// Examples returns the prefilled example inputs.
func (s *BalancerService) Examples() []model.ExampleReaction {
	return dataset.ExampleReactions
}

// Balance validates both sides and returns the known balanced form, or the
// input unchanged with SimplifiedNotice. The result is marked balanced in
// both cases.
func (s *BalancerService) Balance(reactants, products string) (*model.BalanceResult, error) {
	reactants = strings.TrimSpace(reactants)
	products = strings.TrimSpace(products)

	if reactants == "" || products == "" {
		return nil, ErrEmptySide
	}
	if !hasLetter(reactants) || !hasLetter(products) {
		return nil, ErrInvalidFormula
	}

	result := &model.BalanceResult{
		Balanced:  true,
		Reactants: parseSide(reactants),
		Products:  parseSide(products),
	}

	for _, k := range knownReactions {
		if k.matches(reactants, products) {
			coeffs := k.coefficients
			result.Equation = k.equation
			result.Coefficients = &coeffs
			return result, nil
		}
	}

	result.Equation = reactants + " → " + products
	result.Message = SimplifiedNotice
	return result, nil
}

// ParseCompound counts atoms per element symbol. An uppercase letter starts
// a symbol, following lowercase letters extend it and digits form its
// subscript (1 when absent). Every other character is skipped.
func ParseCompound(formula string) map[string]int {
	atoms := make(map[string]int)
	runes := []rune(formula)

	for i := 0; i < len(runes); {
		if !isUpperASCII(runes[i]) {
			i++
			continue
		}
		start := i
		i++
		for i < len(runes) && isLowerASCII(runes[i]) {
			i++
		}
		symbol := string(runes[start:i])

		count := 0
		digits := false
		for i < len(runes) && runes[i] >= '0' && runes[i] <= '9' {
			count = count*10 + int(runes[i]-'0')
			digits = true
			i++
		}
		if !digits {
			count = 1
		}
		atoms[symbol] += count
	}
	return atoms
}

func parseSide(side string) []model.CompoundAtoms {
	parts := strings.Split(side, "+")
	out := make([]model.CompoundAtoms, 0, len(parts))
	for _, p := range parts {
		formula := strings.TrimSpace(p)
		if formula == "" {
			continue
		}
		atoms := ParseCompound(formula)
		var unknown []string
		for sym := range atoms {
			if _, ok := dataset.KnownSymbols[sym]; !ok {
				unknown = append(unknown, sym)
			}
		}
		sort.Strings(unknown)
		out = append(out, model.CompoundAtoms{Formula: formula, Atoms: atoms, Unknown: unknown})
	}
	return out
}

func hasLetter(s string) bool {
	for _, r := range s {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func isUpperASCII(r rune) bool { return r >= 'A' && r <= 'Z' }

func isLowerASCII(r rune) bool { return r >= 'a' && r <= 'z' }
