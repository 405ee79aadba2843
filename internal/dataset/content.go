package dataset

import "github.com/stemsi/chemistry-web/internal/model"

// Facts is the rotating banner list.
var Facts = []string{
	"Water expands when it freezes, which is why ice floats on water!",
	"The human body contains enough carbon to make about 9,000 pencils.",
	"Gold and copper are the only two non-silvery colored metals.",
	"Hydrogen is the most abundant element in the universe, making up about 75% of all matter.",
	"Diamonds and graphite are both made of pure carbon, but arranged differently!",
	"Glass is actually a supercooled liquid, not a solid.",
	"A single cloud can weigh more than a million pounds!",
	"Oxygen was discovered in 1774 by Joseph Priestley.",
	"The average person takes about 20,000 breaths per day, inhaling about 438 cubic feet of oxygen.",
	"DNA has a half-life of 521 years, so dinosaurs' DNA is completely gone.",
}

// ExampleReactions prefill the balancer form.
var ExampleReactions = []model.ExampleReaction{
	{Label: "Water formation", Reactants: "H2 + O2", Products: "H2O"},
	{Label: "Methane combustion", Reactants: "CH4 + O2", Products: "CO2 + H2O"},
	{Label: "Iron oxidation", Reactants: "Fe + O2", Products: "Fe2O3"},
}

// KnownSymbols are the element symbols the formula parser recognises.
var KnownSymbols = map[string]int{
	"H": 1, "He": 2, "Li": 3, "Be": 4, "B": 5, "C": 6, "N": 7, "O": 8, "F": 9, "Ne": 10,
	"Na": 11, "Mg": 12, "Al": 13, "Si": 14, "P": 15, "S": 16, "Cl": 17, "Ar": 18,
	"K": 19, "Ca": 20, "Fe": 26, "Cu": 29, "Zn": 30, "Ag": 47, "Ba": 56, "I": 53,
}

// PrecachePaths is the fixed list of pages and assets kept for offline use.
var PrecachePaths = []string{
	"/",
	"/index.html",
	"/css/style.css",
	"/js/main.js",
	"/js/periodic-table.js",
	"/js/equation-balancer.js",
	"/js/quiz.js",
	"/about.html",
	"/contact.html",
	"/faq.html",
	"/branches/physical-chemistry.html",
	"/branches/organic-chemistry.html",
	"/branches/inorganic-chemistry.html",
	"/branches/analytical-chemistry.html",
	"/branches/applied-chemistry.html",
}

// OfflineFallbackPath is served when a request fails and nothing is cached.
const OfflineFallbackPath = "/index.html"

// NavLinks is the site navigation in display order.
var NavLinks = []model.NavLink{
	{Href: "/index.html", Label: "Home"},
	{Href: "/index.html#branches", Label: "Branches"},
	{Href: "/periodic-table.html", Label: "Periodic Table"},
	{Href: "/quiz.html", Label: "Quiz"},
	{Href: "/equation-balancer.html", Label: "Balancer"},
	{Href: "/library.html", Label: "Library"},
	{Href: "/about.html", Label: "About"},
	{Href: "/faq.html", Label: "FAQ"},
	{Href: "/contact.html", Label: "Contact"},
}

// Branch is one branch-of-chemistry page.
type Branch struct {
	Slug  string
	Title string
}

var Branches = []Branch{
	{Slug: "physical-chemistry", Title: "Physical Chemistry"},
	{Slug: "organic-chemistry", Title: "Organic Chemistry"},
	{Slug: "inorganic-chemistry", Title: "Inorganic Chemistry"},
	{Slug: "analytical-chemistry", Title: "Analytical Chemistry"},
	{Slug: "applied-chemistry", Title: "Applied Chemistry"},
}
