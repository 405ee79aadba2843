package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/chemistry-web/internal/model"
	"github.com/stemsi/chemistry-web/internal/offline"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestThemeMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(Theme())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, string(GetTheme(c))) })

	tests := []struct {
		cookie string
		want   model.Theme
	}{
		{"", model.ThemeLight},
		{"dark", model.ThemeDark},
		{"light", model.ThemeLight},
		{"neon", model.ThemeLight},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.cookie != "" {
			req.AddCookie(&http.Cookie{Name: "theme", Value: tt.cookie})
		}
		if got := serve(r, req).Body.String(); got != string(tt.want) {
			t.Errorf("cookie %q: theme = %q, want %q", tt.cookie, got, tt.want)
		}
	}
}

// offlineRouter serves /index.html and /about.html; /about.html fails
// while *failing is set.
func offlineRouter(t *testing.T, failing *bool) (*gin.Engine, *offline.Cache) {
	t.Helper()
	cache := offline.NewCache(offline.NewMemoryStore(), "v1", []string{"/index.html", "/about.html"}, "/index.html", zerolog.Nop())

	r := gin.New()
	r.Use(Theme(), OfflineCache(cache, zerolog.Nop()))
	r.GET("/index.html", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html", []byte("home "+string(GetTheme(c))))
	})
	r.GET("/about.html", func(c *gin.Context) {
		if *failing {
			c.String(http.StatusInternalServerError, "boom")
			return
		}
		c.Data(http.StatusOK, "text/html", []byte("about"))
	})
	r.GET("/live", func(c *gin.Context) {
		c.String(http.StatusOK, time.Now().String())
	})
	return r, cache
}

func TestOfflineCacheFirst(t *testing.T) {
	failing := false
	r, _ := offlineRouter(t, &failing)

	first := serve(r, httptest.NewRequest(http.MethodGet, "/about.html", nil))
	if first.Body.String() != "about" || first.Header().Get("X-Offline-Cache") != "" {
		t.Fatalf("first = %q %q", first.Body.String(), first.Header().Get("X-Offline-Cache"))
	}

	failing = true
	second := serve(r, httptest.NewRequest(http.MethodGet, "/about.html", nil))
	if second.Code != http.StatusOK || second.Body.String() != "about" {
		t.Errorf("cached = %d %q", second.Code, second.Body.String())
	}
	if second.Header().Get("X-Offline-Cache") != "HIT" {
		t.Errorf("X-Offline-Cache = %q, want HIT", second.Header().Get("X-Offline-Cache"))
	}
	etag := second.Header().Get("ETag")
	if etag == "" {
		t.Fatal("ETag missing on cached response")
	}

	req := httptest.NewRequest(http.MethodGet, "/about.html", nil)
	req.Header.Set("If-None-Match", etag)
	if rec := serve(r, req); rec.Code != http.StatusNotModified {
		t.Errorf("conditional request status = %d, want 304", rec.Code)
	}
}

func TestOfflineFallbackOnFailure(t *testing.T) {
	failing := true
	r, _ := offlineRouter(t, &failing)

	// Nothing cached yet: the failure goes through.
	if rec := serve(r, httptest.NewRequest(http.MethodGet, "/about.html", nil)); rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	serve(r, httptest.NewRequest(http.MethodGet, "/index.html", nil))

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/about.html", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "home light" {
		t.Errorf("fallback = %d %q, want the cached home page", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Offline-Cache") != "FALLBACK" {
		t.Errorf("X-Offline-Cache = %q, want FALLBACK", rec.Header().Get("X-Offline-Cache"))
	}
}

func TestOfflineFallbackPrefersThemeVariant(t *testing.T) {
	failing := true
	r, _ := offlineRouter(t, &failing)

	dark := func(path string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(&http.Cookie{Name: "theme", Value: "dark"})
		return req
	}

	serve(r, httptest.NewRequest(http.MethodGet, "/index.html", nil))
	serve(r, dark("/index.html"))

	if rec := serve(r, dark("/about.html")); rec.Body.String() != "home dark" {
		t.Errorf("dark fallback = %q, want %q", rec.Body.String(), "home dark")
	}
}

func TestOfflineSkipsUncachedPaths(t *testing.T) {
	failing := false
	r, cache := offlineRouter(t, &failing)

	serve(r, httptest.NewRequest(http.MethodGet, "/live", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/index.html?x=1", nil))

	if _, err := cache.Lookup(context.Background(), "/live"); err == nil {
		t.Error("path outside the precache list was stored")
	}
	if _, err := cache.Lookup(context.Background(), "/index.html"); err == nil {
		t.Error("request with a query string was stored under the bare path")
	}
}

func panicRouter(t *testing.T) *gin.Engine {
	t.Helper()
	cache := offline.NewCache(offline.NewMemoryStore(), "v1", []string{"/index.html", "/quiz.html"}, "/index.html", zerolog.Nop())

	r := gin.New()
	r.Use(gin.RecoveryWithWriter(io.Discard), Theme(), OfflineCache(cache, zerolog.Nop()))
	r.GET("/index.html", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html", []byte("home"))
	})
	r.GET("/quiz.html", func(c *gin.Context) {
		c.Header("X-Partial", "yes")
		panic("template exploded")
	})
	return r
}

func TestOfflineFallbackOnPanic(t *testing.T) {
	r := panicRouter(t)
	serve(r, httptest.NewRequest(http.MethodGet, "/index.html", nil))

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/quiz.html", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "home" {
		t.Errorf("panic fallback = %d %q, want the cached home page", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Offline-Cache") != "FALLBACK" {
		t.Errorf("X-Offline-Cache = %q, want FALLBACK", rec.Header().Get("X-Offline-Cache"))
	}
	if rec.Header().Get("X-Partial") != "" {
		t.Error("headers of the panicking handler leaked into the fallback")
	}
}

func TestOfflinePanicWithoutFallbackReachesRecovery(t *testing.T) {
	r := panicRouter(t)

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/quiz.html", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 from Recovery", rec.Code)
	}
	if rec.Header().Get("X-Offline-Cache") != "" {
		t.Errorf("X-Offline-Cache = %q, want none", rec.Header().Get("X-Offline-Cache"))
	}
}

func TestRateLimiterRefills(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, 2, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("first two requests rejected")
	}
	if rl.Allow("a") {
		t.Fatal("third request allowed")
	}
	if !rl.Allow("b") {
		t.Error("other key shares the bucket")
	}

	now = now.Add(time.Minute)
	if !rl.Allow("a") {
		t.Error("bucket not refilled after one interval")
	}

	now = now.Add(10 * time.Minute)
	rl.cleanup()
	rl.mu.Lock()
	n := len(rl.visitors)
	rl.mu.Unlock()
	if n != 0 {
		t.Errorf("cleanup left %d visitors", n)
	}
}

func TestBrotliCompressesLargeBodies(t *testing.T) {
	large := strings.Repeat("periodic table ", 200)

	r := gin.New()
	r.Use(Brotli())
	r.GET("/large", func(c *gin.Context) { c.String(http.StatusOK, large) })
	r.GET("/small", func(c *gin.Context) { c.String(http.StatusOK, "tiny") })

	req := httptest.NewRequest(http.MethodGet, "/large", nil)
	req.Header.Set("Accept-Encoding", "gzip, br")
	rec := serve(r, req)
	if rec.Header().Get("Content-Encoding") != "br" {
		t.Fatalf("Content-Encoding = %q, want br", rec.Header().Get("Content-Encoding"))
	}
	plain, err := io.ReadAll(brotli.NewReader(bytes.NewReader(rec.Body.Bytes())))
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if string(plain) != large {
		t.Error("decompressed body differs")
	}

	req = httptest.NewRequest(http.MethodGet, "/small", nil)
	req.Header.Set("Accept-Encoding", "br")
	rec = serve(r, req)
	if rec.Header().Get("Content-Encoding") != "" || rec.Body.String() != "tiny" {
		t.Errorf("small body = %q encoding %q", rec.Body.String(), rec.Header().Get("Content-Encoding"))
	}

	req = httptest.NewRequest(http.MethodGet, "/large", nil)
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Accept-Encoding", "br")
	if rec := serve(r, req); rec.Header().Get("Content-Encoding") != "" {
		t.Error("event streams must not be compressed")
	}
}
