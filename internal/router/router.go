package router

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/chemistry-web/internal/config"
	"github.com/stemsi/chemistry-web/internal/handler"
	"github.com/stemsi/chemistry-web/internal/middleware"
	"github.com/stemsi/chemistry-web/internal/offline"
	"github.com/stemsi/chemistry-web/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Page     *handler.PageHandler
	Quiz     *handler.QuizHandler
	WS       *handler.WSHandler
	Periodic *handler.PeriodicHandler
	Library  *handler.LibraryHandler
	Equation *handler.EquationHandler
	Chrome   *handler.ChromeHandler
	System   *handler.SystemHandler
}

// Assets are the parsed page templates and the static file tree.
type Assets struct {
	Templates *template.Template
	Static    fs.FS
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// ctx bounds the background sweep of the rate limiter.
func SetupRouter(
	ctx context.Context,
	handlers *Handlers,
	assets Assets,
	offlineCache *offline.Cache,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()
	router.SetHTMLTemplate(assets.Templates)

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "X-Offline-Cache", "Retry-After"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Theme is resolved before the offline cache, which keys pages by it.
	router.Use(middleware.Theme())

	offlineMW := middleware.OfflineCache(offlineCache, log)

	// Health check.
	router.GET("/health", handlers.System.Health)

	// ─── 1. Static Assets (cached, offline) ────────────────────────────
	fileServer := http.FileServer(http.FS(assets.Static))
	serveStatic := func(c *gin.Context) {
		fileServer.ServeHTTP(c.Writer, c.Request)
	}
	static := router.Group("/")
	static.Use(middleware.CacheControl(cfg.StaticMaxAge), offlineMW)
	{
		static.GET("/css/*filepath", serveStatic)
		static.GET("/js/*filepath", serveStatic)
	}

	// The worker script must always revalidate so a new cache version
	// reaches the browser.
	router.GET("/service-worker.js", middleware.NoCache(), handlers.Page.ServiceWorker)

	// ─── 2. Pages (offline) ────────────────────────────────────────────
	pages := router.Group("/")
	pages.Use(offlineMW)
	{
		pages.GET("/", handlers.Page.Home)
		pages.GET("/index.html", handlers.Page.Home)
		pages.GET("/quiz.html", handlers.Page.Quiz)
		pages.GET("/periodic-table.html", handlers.Page.PeriodicTable)
		pages.GET("/library.html", handlers.Page.Library)
		pages.GET("/equation-balancer.html", handlers.Page.Balancer)
		pages.POST("/equation-balancer.html", handlers.Page.BalancerSubmit)
		pages.GET("/about.html", handlers.Page.ContentPage("about"))
		pages.GET("/contact.html", handlers.Page.ContentPage("contact"))
		pages.GET("/faq.html", handlers.Page.FAQ)
		pages.GET("/branches/:page", handlers.Page.Branch)
	}

	// Rate limiter shared by the API and the stream (per IP).
	limiter := middleware.NewRateLimiter(ctx, cfg.RateLimitPerMinute, time.Minute)

	// ─── 3. Public API (Rate Limited) ──────────────────────────────────
	api := router.Group("/api/v1")
	api.Use(limiter.Middleware())
	{
		api.GET("/quiz/banks", handlers.Quiz.ListBanks)
		api.GET("/quiz/banks/:bank_id", handlers.Quiz.GetBank)

		api.GET("/elements", handlers.Periodic.ListElements)
		api.GET("/elements/:key", handlers.Periodic.GetElement)
		api.GET("/periodic/grid", handlers.Periodic.GetGrid)

		api.GET("/library/categories", handlers.Library.ListCategories)
		api.GET("/library/items", handlers.Library.ListItems)

		api.POST("/equations/balance", handlers.Equation.Balance)
		api.GET("/equations/examples", handlers.Equation.Examples)

		api.GET("/preferences/theme", handlers.Chrome.GetTheme)
		api.POST("/preferences/theme", handlers.Chrome.SetTheme)
		api.POST("/preferences/theme/toggle", handlers.Chrome.ToggleTheme)
		api.GET("/nav/active", handlers.Chrome.ActiveNav)
		api.GET("/facts/current", handlers.Chrome.CurrentFact)
		api.GET("/facts/stream", handlers.Chrome.FactStream)

		api.GET("/system/metrics", handlers.System.RuntimeMetricsSSE)
	}

	// ─── 4. WebSocket Group (Rate Limited) ─────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(limiter.Middleware())
	{
		ws.GET("/quiz/stream", handlers.WS.QuizStream)
	}

	router.NoRoute(handlers.Page.NotFound)

	return router
}
