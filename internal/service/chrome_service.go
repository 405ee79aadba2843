package service

import (
	"net/url"
	"strings"

	"github.com/stemsi/chemistry-web/internal/model"
)

// ─── Theme ──────────────────────────────────────────────────────────

// ThemeCookie is the single persisted preference key.
const ThemeCookie = "theme"

// ParseTheme returns the stored theme, or light for anything unknown.
func ParseTheme(raw string) model.Theme {
	t := model.Theme(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return model.ThemeLight
	}
	return t
}

// ThemeToggleFor describes the toggle button shown while t is active.
func ThemeToggleFor(t model.Theme) model.ThemeToggle {
	if t == model.ThemeDark {
		return model.ThemeToggle{Theme: t, Icon: "☀️", Tooltip: "Switch to Light Mode"}
	}
	return model.ThemeToggle{Theme: model.ThemeLight, Icon: "🌙", Tooltip: "Switch to Dark Mode"}
}

// ─── Navigation ─────────────────────────────────────────────────────

const indexPage = "index.html"

// ResolveActiveLinks returns a copy of links with Active set for the page
// at currentPath. currentHash includes the leading "#" or is empty.
func ResolveActiveLinks(currentPath, currentHash string, links []model.NavLink) []model.NavLink {
	currentPage := lastSegment(currentPath)
	if currentPage == "" {
		currentPage = indexPage
	}
	isHome := currentPage == indexPage || strings.HasSuffix(currentPath, "/")

	out := make([]model.NavLink, len(links))
	for i, link := range links {
		link.Active = linkActive(link.Href, currentPath, currentPage, currentHash, isHome)
		out[i] = link
	}
	return out
}

func linkActive(href, currentPath, currentPage, currentHash string, isHome bool) bool {
	if href == "" {
		return false
	}
	if strings.HasPrefix(href, "#") {
		return isHome && currentHash == href
	}

	linkPage, linkHash := href, ""
	if i := strings.Index(href, "#"); i >= 0 {
		linkPage, linkHash = href[:i], href[i:]
	}
	linkPage = lastSegment(linkPage)

	if strings.Contains(href, "../") {
		linkPage = resolveRelative(currentPath, href)
	}
	if linkPage == "" {
		linkPage = indexPage
	}

	if linkPage != currentPage {
		return false
	}
	switch {
	case linkHash != "":
		return isHome && currentHash == linkHash
	case linkPage == indexPage:
		return isHome && currentHash == ""
	default:
		return true
	}
}

// resolveRelative resolves href against the directory of currentPath and
// returns the last segment of the result.
func resolveRelative(currentPath, href string) string {
	dir := currentPath[:strings.LastIndex(currentPath, "/")+1]
	base, err := url.Parse("http://site" + dir)
	if err != nil {
		return lastSegment(strings.ReplaceAll(href, "../", ""))
	}
	ref, err := url.Parse(href)
	if err != nil {
		return lastSegment(strings.ReplaceAll(href, "../", ""))
	}
	return lastSegment(base.ResolveReference(ref).Path)
}

func lastSegment(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

// ─── Collapsible sections ───────────────────────────────────────────

// ToggleSection returns the id of the section left open after clicked is
// activated while open is expanded. Clicking the open section closes all.
func ToggleSection(open, clicked string) string {
	if clicked == open {
		return ""
	}
	return clicked
}

// ExpandSections marks the section with id open as the only open one.
func ExpandSections(sections []model.Section, open string) []model.Section {
	out := make([]model.Section, len(sections))
	for i, s := range sections {
		s.Open = open != "" && s.ID == open
		out[i] = s
	}
	return out
}
