package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	texttemplate "text/template"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/chemistry-web/internal/content"
	"github.com/stemsi/chemistry-web/internal/dataset"
	"github.com/stemsi/chemistry-web/internal/middleware"
	"github.com/stemsi/chemistry-web/internal/model"
	"github.com/stemsi/chemistry-web/internal/offline"
	"github.com/stemsi/chemistry-web/internal/response"
	"github.com/stemsi/chemistry-web/internal/service"
	"github.com/stemsi/chemistry-web/internal/validator"
)

// FactSource is the rotating fact banner.
type FactSource interface {
	Current() model.Fact
	Subscribe() (<-chan model.Fact, func())
}

// PageHandler renders the server-side HTML pages.
type PageHandler struct {
	quizService     *service.QuizService
	periodicService *service.PeriodicService
	libraryService  *service.LibraryService
	balancerService *service.BalancerService
	pages           *content.Renderer
	facts           FactSource
	offlineCache    *offline.Cache
	serviceWorker   *texttemplate.Template
	log             zerolog.Logger
}

func NewPageHandler(
	quizService *service.QuizService,
	periodicService *service.PeriodicService,
	libraryService *service.LibraryService,
	balancerService *service.BalancerService,
	pages *content.Renderer,
	facts FactSource,
	offlineCache *offline.Cache,
	serviceWorker *texttemplate.Template,
	log zerolog.Logger,
) *PageHandler {
	return &PageHandler{
		quizService:     quizService,
		periodicService: periodicService,
		libraryService:  libraryService,
		balancerService: balancerService,
		pages:           pages,
		facts:           facts,
		offlineCache:    offlineCache,
		serviceWorker:   serviceWorker,
		log:             log.With().Str("component", "page_handler").Logger(),
	}
}

// base builds the data every page layout needs. The nav is resolved from
// the path alone since fragments never reach the server.
func (h *PageHandler) base(c *gin.Context, title string, scripts ...string) gin.H {
	theme := middleware.GetTheme(c)
	return gin.H{
		"Title":   title,
		"Theme":   theme,
		"Toggle":  service.ThemeToggleFor(theme),
		"Nav":     service.ResolveActiveLinks(c.Request.URL.Path, "", dataset.NavLinks),
		"Fact":    h.facts.Current(),
		"Scripts": scripts,
	}
}

// Home godoc
// GET /
// GET /index.html
func (h *PageHandler) Home(c *gin.Context) {
	data := h.base(c, "Home")
	data["Branches"] = dataset.Branches
	data["Banks"] = h.quizService.Summaries()
	c.HTML(http.StatusOK, "index.html", data)
}

// Quiz godoc
// GET /quiz.html
// The page shows size selection; everything after that runs over the
// quiz stream.
func (h *PageHandler) Quiz(c *gin.Context) {
	data := h.base(c, "Chemistry Quiz", "/js/quiz.js")
	data["Quiz"] = h.quizService.NewController().View()
	c.HTML(http.StatusOK, "quiz.html", data)
}

// PeriodicTable godoc
// GET /periodic-table.html?q=&category=&element=
func (h *PageHandler) PeriodicTable(c *gin.Context) {
	var query model.ElementQuery
	if fields := validator.BindQuery(c, &query); fields != nil {
		h.RenderError(c, http.StatusBadRequest, response.GetMessage(response.ErrValidation))
		return
	}

	data := h.base(c, "Periodic Table", "/js/periodic-table.js")
	data["Query"] = query.Query
	data["Category"] = query.Category
	data["Categories"] = service.CategoryOptions()
	data["Grid"] = h.periodicService.Grid(query.Query, query.Category)
	data["Details"] = nil

	if raw := c.Query("element"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.RenderError(c, http.StatusBadRequest, response.GetMessage(response.ErrInvalidID))
			return
		}
		details, err := h.periodicService.Details(n)
		if err != nil {
			h.RenderError(c, http.StatusNotFound, response.GetMessage(response.ErrNotFound))
			return
		}
		data["Details"] = details
	}

	c.HTML(http.StatusOK, "periodic-table.html", data)
}

// Library godoc
// GET /library.html?category=&level=&format=&free=&q=
// A failed catalog load renders the inline error block, not an error page.
func (h *PageHandler) Library(c *gin.Context) {
	var criteria model.LibraryCriteria
	if fields := validator.BindQuery(c, &criteria); fields != nil {
		h.RenderError(c, http.StatusBadRequest, response.GetMessage(response.ErrValidation))
		return
	}

	data := h.base(c, "Library", "/js/library.js")
	data["Criteria"] = criteria
	data["NoResults"] = service.LibraryNoResults
	data["NoResultsHint"] = service.LibraryNoResultsHint

	items, err := h.libraryService.Filter(criteria)
	if err != nil {
		h.log.Warn().Err(err).Msg("Library unavailable")
		data["LoadError"] = service.LibraryLoadError
		c.HTML(http.StatusOK, "library.html", data)
		return
	}
	categories, _ := h.libraryService.Categories()
	levels, formats, _ := h.libraryService.Facets()

	data["Items"] = items
	data["Categories"] = categories
	data["Levels"] = levels
	data["Formats"] = formats
	c.HTML(http.StatusOK, "library.html", data)
}

// Balancer godoc
// GET /equation-balancer.html
func (h *PageHandler) Balancer(c *gin.Context) {
	c.HTML(http.StatusOK, "equation-balancer.html", h.balancerData(c))
}

// BalancerSubmit godoc
// POST /equation-balancer.html
// Form fallback for clients without JavaScript.
func (h *PageHandler) BalancerSubmit(c *gin.Context) {
	data := h.balancerData(c)

	var req model.BalanceRequest
	if fields := validator.BindForm(c, &req); fields != nil {
		data["Error"] = response.GetMessage(response.ErrValidation)
		c.HTML(http.StatusBadRequest, "equation-balancer.html", data)
		return
	}
	data["Reactants"] = req.Reactants
	data["Products"] = req.Products

	result, err := h.balancerService.Balance(req.Reactants, req.Products)
	if err != nil {
		data["Error"] = response.GetMessage(balanceErrCode(err))
		c.HTML(http.StatusBadRequest, "equation-balancer.html", data)
		return
	}
	data["Result"] = result
	c.HTML(http.StatusOK, "equation-balancer.html", data)
}

func (h *PageHandler) balancerData(c *gin.Context) gin.H {
	data := h.base(c, "Equation Balancer", "/js/equation-balancer.js")
	data["Reactants"] = ""
	data["Products"] = ""
	data["Error"] = ""
	data["Result"] = nil
	data["Examples"] = h.balancerService.Examples()
	return data
}

// ContentPage serves a markdown page by its fixed slug.
// GET /about.html
// GET /contact.html
func (h *PageHandler) ContentPage(slug string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.renderContent(c, slug, false)
	}
}

// Branch godoc
// GET /branches/:page
func (h *PageHandler) Branch(c *gin.Context) {
	page := c.Param("page")
	if !strings.HasSuffix(page, ".html") {
		h.NotFound(c)
		return
	}
	h.renderContent(c, "branches/"+strings.TrimSuffix(page, ".html"), true)
}

func (h *PageHandler) renderContent(c *gin.Context, slug string, back bool) {
	page, err := h.pages.Page(slug)
	if err != nil {
		if errors.Is(err, content.ErrPageNotFound) {
			h.NotFound(c)
			return
		}
		h.RenderError(c, http.StatusInternalServerError, response.GetMessage(response.ErrInternal))
		return
	}

	data := h.base(c, page.Title)
	data["Page"] = page
	data["Back"] = back
	c.HTML(http.StatusOK, "content.html", data)
}

// FAQ godoc
// GET /faq.html?open=
// At most one section is open; the header links flip it.
func (h *PageHandler) FAQ(c *gin.Context) {
	page, err := h.pages.Page("faq")
	if err != nil {
		h.NotFound(c)
		return
	}

	data := h.base(c, page.Title)
	data["Page"] = page
	data["Sections"] = service.ExpandSections(page.Sections, c.Query("open"))
	c.HTML(http.StatusOK, "faq.html", data)
}

// ServiceWorker godoc
// GET /service-worker.js
// Rendered with the same cache version and precache list the server uses.
func (h *PageHandler) ServiceWorker(c *gin.Context) {
	version, _ := json.Marshal(h.offlineCache.Version())
	paths, _ := json.Marshal(h.offlineCache.Paths())
	fallback, _ := json.Marshal(dataset.OfflineFallbackPath)

	var buf bytes.Buffer
	err := h.serviceWorker.Execute(&buf, map[string]string{
		"Version":  string(version),
		"Paths":    string(paths),
		"Fallback": string(fallback),
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to render service worker")
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/javascript; charset=utf-8", buf.Bytes())
}

// NotFound renders the 404 page, or the JSON envelope for API paths.
func (h *PageHandler) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	h.RenderError(c, http.StatusNotFound, "The page you are looking for does not exist.")
}

// RenderError renders the error page with status.
func (h *PageHandler) RenderError(c *gin.Context, status int, message string) {
	data := h.base(c, http.StatusText(status))
	data["Status"] = status
	data["Message"] = message
	c.HTML(status, "error.html", data)
}

func balanceErrCode(err error) response.ErrCode {
	switch {
	case errors.Is(err, service.ErrEmptySide):
		return response.ErrEmptyEquationSide
	case errors.Is(err, service.ErrInvalidFormula):
		return response.ErrInvalidFormula
	default:
		return response.ErrInternal
	}
}
