package model

import "strings"

// LibraryDocument is the catalog file: categories of resource items.
type LibraryDocument struct {
	Categories []LibraryCategory `json:"categories"`
}

// LibraryCategory groups catalog items under one tab.
type LibraryCategory struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Items []LibraryItem `json:"items"`
}

// LibraryItem is a single resource. Every field is optional in the source
// document; Free is tri-state so "absent" stays distinguishable from false.
type LibraryItem struct {
	Title       string   `json:"title,omitempty"`
	Author      string   `json:"author,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Level       string   `json:"level,omitempty"`
	Format      string   `json:"format,omitempty"`
	Free        *bool    `json:"free,omitempty"`
	Year        int      `json:"year,omitempty"`
	Publisher   string   `json:"publisher,omitempty"`
	Edition     string   `json:"edition,omitempty"`
	Pages       int      `json:"pages,omitempty"`
	Journal     string   `json:"journal,omitempty"`
	ISBN        string   `json:"isbn,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	Category    string   `json:"category,omitempty"`
	Link        string   `json:"link,omitempty"`
}

// IsFree reports free == true.
func (i LibraryItem) IsFree() bool {
	return i.Free != nil && *i.Free
}

// IsPremium reports free == false or free absent.
func (i LibraryItem) IsPremium() bool {
	return i.Free == nil || !*i.Free
}

// LibraryItemView is a filtered item decorated with its category and the
// display fields derived for its card.
type LibraryItemView struct {
	LibraryItem
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Stars        string `json:"stars"`
	LinkText     string `json:"link_text"`
	LinkTarget   string `json:"link_target"`
	Badge        string `json:"badge,omitempty"`
}

// External reports whether the link leaves the site.
func (v LibraryItemView) External() bool {
	return strings.HasPrefix(v.Link, "http")
}

// LibraryCategorySummary is used to render the category tabs.
type LibraryCategorySummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ItemCount int    `json:"item_count"`
}

// LibraryCriteria binds the library filter controls from the query string.
type LibraryCriteria struct {
	Category string `form:"category" json:"category" binding:"omitempty,max=64"`
	Level    string `form:"level" json:"level" binding:"omitempty,max=64"`
	Format   string `form:"format" json:"format" binding:"omitempty,max=64"`
	Free     string `form:"free" json:"free" binding:"omitempty,oneof=all free premium"`
	Search   string `form:"q" json:"q" binding:"omitempty,max=128"`
	Page     int    `form:"page" json:"page" binding:"omitempty,min=1"`
	PerPage  int    `form:"per_page" json:"per_page" binding:"omitempty,min=1,max=100"`
}
