package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/chemistry-web/internal/dataset"
	"github.com/stemsi/chemistry-web/internal/middleware"
	"github.com/stemsi/chemistry-web/internal/model"
	"github.com/stemsi/chemistry-web/internal/response"
	"github.com/stemsi/chemistry-web/internal/service"
	"github.com/stemsi/chemistry-web/internal/validator"
)

const (
	themeCookieMaxAge = 365 * 24 * 60 * 60
	factKeepAlive     = 30 * time.Second
)

// ChromeHandler serves the page chrome: theme preference, active
// navigation and the fact banner stream.
type ChromeHandler struct {
	facts FactSource
	log   zerolog.Logger
}

func NewChromeHandler(facts FactSource, log zerolog.Logger) *ChromeHandler {
	return &ChromeHandler{
		facts: facts,
		log:   log.With().Str("component", "chrome_handler").Logger(),
	}
}

// GetTheme godoc
// GET /api/v1/preferences/theme
func (h *ChromeHandler) GetTheme(c *gin.Context) {
	response.Success(c, http.StatusOK, service.ThemeToggleFor(middleware.GetTheme(c)))
}

// SetTheme godoc
// POST /api/v1/preferences/theme
func (h *ChromeHandler) SetTheme(c *gin.Context) {
	var req model.ThemeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	h.persistTheme(c, model.Theme(req.Theme))
}

// ToggleTheme godoc
// POST /api/v1/preferences/theme/toggle
func (h *ChromeHandler) ToggleTheme(c *gin.Context) {
	h.persistTheme(c, middleware.GetTheme(c).Toggled())
}

func (h *ChromeHandler) persistTheme(c *gin.Context, theme model.Theme) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(service.ThemeCookie, string(theme), themeCookieMaxAge, "/", "", false, false)
	response.Success(c, http.StatusOK, service.ThemeToggleFor(theme))
}

// ActiveNav godoc
// GET /api/v1/nav/active?path=&hash=
func (h *ChromeHandler) ActiveNav(c *gin.Context) {
	var query model.NavQuery
	if fields := validator.BindQuery(c, &query); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"links": service.ResolveActiveLinks(query.Path, query.Hash, dataset.NavLinks),
	})
}

// CurrentFact godoc
// GET /api/v1/facts/current
func (h *ChromeHandler) CurrentFact(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"fact": h.facts.Current()})
}

// FactStream godoc
// GET /api/v1/facts/stream
// Server-sent events: the current fact first, then every rotation.
func (h *ChromeHandler) FactStream(c *gin.Context) {
	reqCtx := c.Request.Context()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	facts, unsubscribe := h.facts.Subscribe()
	defer unsubscribe()

	h.log.Debug().Msg("Client subscribed to fact stream")

	keepAlive := time.NewTicker(factKeepAlive)
	defer keepAlive.Stop()

	h.writeFact(c, h.facts.Current())

	for {
		select {
		case <-reqCtx.Done():
			h.log.Debug().Msg("Client left fact stream")
			return
		case fact, ok := <-facts:
			if !ok {
				return
			}
			h.writeFact(c, fact)
		case <-keepAlive.C:
			c.Writer.Write([]byte(": keep-alive\n\n"))
			c.Writer.Flush()
		}
	}
}

func (h *ChromeHandler) writeFact(c *gin.Context, fact model.Fact) {
	data, err := json.Marshal(fact)
	if err != nil {
		return
	}
	c.Writer.Write([]byte("event: fact\n"))
	c.Writer.Write([]byte("data: "))
	c.Writer.Write(data)
	c.Writer.Write([]byte("\n\n"))
	c.Writer.Flush()
}
