package middleware

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/chemistry-web/internal/model"
	"github.com/stemsi/chemistry-web/internal/offline"
)

// recordingWriter holds the handler's response so the offline cache can
// decide between it and a stored copy before anything reaches the client.
type recordingWriter struct {
	gin.ResponseWriter
	status int
	header http.Header
	body   bytes.Buffer
}

func (w *recordingWriter) Header() http.Header { return w.header }

func (w *recordingWriter) WriteHeader(code int) { w.status = code }

func (w *recordingWriter) WriteHeaderNow() {}

func (w *recordingWriter) Write(b []byte) (int, error) { return w.body.Write(b) }

func (w *recordingWriter) WriteString(s string) (int, error) { return w.body.WriteString(s) }

func (w *recordingWriter) Status() int { return w.status }

func (w *recordingWriter) Size() int { return w.body.Len() }

func (w *recordingWriter) Written() bool { return w.body.Len() > 0 }

// OfflineCache answers GET requests cache-first. On a miss the handler
// runs; a failing handler is replaced by the cached fallback page, and
// fresh successful responses of precached paths are stored. Requests with
// a query string are keyed by their full URL, so they always miss and are
// never stored.
func OfflineCache(cache *offline.Cache, log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "offline_middleware").Logger()

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		path := c.Request.URL.Path
		variant := themeVariant(GetTheme(c))

		keyed := c.Request.URL.RawQuery == ""

		if keyed {
			if e, err := cache.Lookup(ctx, offline.Key(path, variant)); err == nil {
				serveEntry(c, e, "HIT")
				return
			}
		}

		rec := &recordingWriter{
			ResponseWriter: c.Writer,
			status:         http.StatusOK,
			header:         c.Writer.Header().Clone(),
		}
		orig := c.Writer
		c.Writer = rec
		recovered := nextRecovering(c)
		c.Writer = orig

		// A panicking handler counts as a failure. Without a cached fallback
		// the panic continues to gin's Recovery, which now writes to the
		// real writer.
		if recovered != nil {
			if recovered == http.ErrAbortHandler {
				panic(recovered)
			}
			e, err := cache.Fallback(ctx, variant)
			if err != nil {
				panic(recovered)
			}
			log.Error().Interface("panic", recovered).Str("path", path).Msg("Handler panicked, serving offline fallback")
			serveEntry(c, e, "FALLBACK")
			return
		}

		if rec.status >= http.StatusInternalServerError {
			if e, err := cache.Fallback(ctx, variant); err == nil {
				log.Warn().Str("path", path).Int("status", rec.status).Msg("Serving offline fallback")
				serveEntry(c, e, "FALLBACK")
				return
			}
		}

		if keyed {
			entry := offline.NewEntry(rec.status, rec.header, rec.body.Bytes())
			if err := cache.Remember(ctx, path, variant, entry); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("Failed to store response")
			}
		}

		dst := orig.Header()
		for k, v := range rec.header {
			dst[k] = v
		}
		orig.WriteHeader(rec.status)
		_, _ = orig.Write(rec.body.Bytes())
	}
}

// nextRecovering runs the rest of the chain and returns the value of a
// panic raised in it, if any.
func nextRecovering(c *gin.Context) (recovered interface{}) {
	defer func() {
		recovered = recover()
	}()
	c.Next()
	return nil
}

func themeVariant(t model.Theme) string {
	if t == model.ThemeLight {
		return ""
	}
	return string(t)
}

func serveEntry(c *gin.Context, e *offline.Entry, source string) {
	for k, v := range e.Header {
		c.Writer.Header()[k] = v
	}
	c.Header("ETag", e.ETag)
	c.Header("X-Offline-Cache", source)

	if match := c.GetHeader("If-None-Match"); match != "" && match == e.ETag {
		c.AbortWithStatus(http.StatusNotModified)
		return
	}
	c.Status(e.Status)
	_, _ = c.Writer.Write(e.Body)
	c.Abort()
}
