package model

// BalanceRequest is the payload for the equation balancer.
type BalanceRequest struct {
	Reactants string `json:"reactants" form:"reactants" binding:"max=200"`
	Products  string `json:"products" form:"products" binding:"max=200"`
}

// Coefficients are the stoichiometric multipliers of a known reaction.
type Coefficients struct {
	Reactants []int `json:"reactants"`
	Products  []int `json:"products"`
}

// CompoundAtoms is one parsed compound with its atom counts.
type CompoundAtoms struct {
	Formula string         `json:"formula"`
	Atoms   map[string]int `json:"atoms"`
	Unknown []string       `json:"unknown_symbols,omitempty"`
}

// BalanceResult is what the balancer returns. Balanced is true even for
// the echo fallback; Message explains the limitation in that case.
type BalanceResult struct {
	Balanced     bool            `json:"balanced"`
	Equation     string          `json:"equation"`
	Coefficients *Coefficients   `json:"coefficients,omitempty"`
	Message      string          `json:"message,omitempty"`
	Reactants    []CompoundAtoms `json:"reactants"`
	Products     []CompoundAtoms `json:"products"`
}

// ExampleReaction is a prefilled balancer input.
type ExampleReaction struct {
	Label     string `json:"label"`
	Reactants string `json:"reactants"`
	Products  string `json:"products"`
}
