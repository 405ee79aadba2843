package model

// Theme is the persisted colour scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is one of the two known themes.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggled returns the opposite theme.
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ThemeToggle describes the toggle button for the current theme.
type ThemeToggle struct {
	Theme   Theme  `json:"theme"`
	Icon    string `json:"icon"`
	Tooltip string `json:"tooltip"`
}

// ThemeRequest is the payload for setting the theme explicitly.
type ThemeRequest struct {
	Theme string `json:"theme" binding:"required,oneof=light dark"`
}

// NavLink is one navigation entry.
type NavLink struct {
	Href   string `json:"href"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// NavQuery binds the active-link lookup.
type NavQuery struct {
	Path string `form:"path" binding:"required,max=256"`
	Hash string `form:"hash" binding:"omitempty,max=128"`
}

// Fact is the rotating banner text with its position in the list.
type Fact struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Section is a collapsible block of rendered content.
type Section struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	HTML  string `json:"html"`
	Open  bool   `json:"open"`
}
