package model

// Element is one entry of the periodic table dataset.
type Element struct {
	Number   int     `json:"number"`
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Mass     float64 `json:"mass"`
	Group    string  `json:"group"`
	Category string  `json:"category"`
}

// ElementDetails are the derived properties shown in the element overlay.
// Pointer fields are nil when the dataset has no value for the element.
type ElementDetails struct {
	Element
	Label             string   `json:"label"`
	CategoryLabel     string   `json:"category_label"`
	Period            int      `json:"period"`
	State             string   `json:"state"`
	ElectronConfig    string   `json:"electron_configuration"`
	ElectronShells    string   `json:"electron_shells"`
	Electronegativity *float64 `json:"electronegativity"`
	OxidationStates   string   `json:"oxidation_states"`
	MeltingPoint      *float64 `json:"melting_point"`
	BoilingPoint      *float64 `json:"boiling_point"`
	Density           *float64 `json:"density"`
	Discovery         string   `json:"discovery,omitempty"`
	Description       string   `json:"description"`
}

// ElectronegativityText renders the electronegativity for display.
func (d ElementDetails) ElectronegativityText() string {
	if d.Electronegativity == nil {
		return "N/A (noble gas)"
	}
	return formatFloat(*d.Electronegativity)
}

// GridCell is one slot of the main 18×7 table. Element is nil for gaps.
type GridCell struct {
	Row     int      `json:"row"`
	Col     int      `json:"col"`
	Element *Element `json:"element,omitempty"`
	Label   string   `json:"label,omitempty"`
	Visible bool     `json:"visible"`
}

// PeriodicGrid is the full table layout plus the two auxiliary rows.
type PeriodicGrid struct {
	Rows        [][]GridCell `json:"rows"`
	Lanthanides []GridCell   `json:"lanthanides"`
	Actinides   []GridCell   `json:"actinides"`
}

// ElementQuery binds the periodic search and category filter.
type ElementQuery struct {
	Query    string `form:"q" json:"q" binding:"max=64"`
	Category string `form:"category" json:"category" binding:"omitempty,oneof=all nonmetal noble-gas alkali-metal alkaline-earth metalloid transition-metal lanthanide actinide"`
}

// ElementURI binds the :key path parameter, an atomic number or a symbol.
type ElementURI struct {
	Key string `uri:"key" binding:"required,alphanum,max=3"`
}

// ElementSummary is an element with its cell label, hover text and filter
// visibility.
type ElementSummary struct {
	Element
	Label   string `json:"label"`
	Tooltip string `json:"tooltip"`
	Visible bool   `json:"visible"`
}

// CategoryOption is one entry of the category filter and legend.
type CategoryOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}
