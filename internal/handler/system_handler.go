package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/chemistry-web/internal/offline"
	"github.com/stemsi/chemistry-web/internal/response"
	"github.com/stemsi/chemistry-web/internal/service"
)

const (
	metricsInterval = 7 * time.Second
	pingTimeout     = 2 * time.Second
)

// SystemHandler reports health and streams Go runtime metrics via SSE.
// rdb and pool may be nil when the backing service is not configured.
type SystemHandler struct {
	rdb            *redis.Client
	pool           *pgxpool.Pool
	libraryService *service.LibraryService
	offlineCache   *offline.Cache
	startTime      time.Time
	log            zerolog.Logger
}

func NewSystemHandler(rdb *redis.Client, pool *pgxpool.Pool, libraryService *service.LibraryService, offlineCache *offline.Cache, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		rdb:            rdb,
		pool:           pool,
		libraryService: libraryService,
		offlineCache:   offlineCache,
		startTime:      time.Now(),
		log:            log.With().Str("component", "system_handler").Logger(),
	}
}

// ---------- Health ----------

type healthStatus struct {
	Status       string            `json:"status"`
	Uptime       string            `json:"uptime"`
	CacheVersion string            `json:"cache_version"`
	Dependencies map[string]string `json:"dependencies"`
}

// Health godoc
// GET /health
// Optional dependencies report "disabled" when not configured. The site
// stays up without them, so the status is "degraded", never an error.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	status := healthStatus{
		Status:       "ok",
		Uptime:       formatDuration(time.Since(h.startTime)),
		CacheVersion: h.offlineCache.Version(),
		Dependencies: map[string]string{},
	}

	mark := func(name string, err error) {
		if err != nil {
			status.Dependencies[name] = "down"
			status.Status = "degraded"
			return
		}
		status.Dependencies[name] = "up"
	}

	if h.rdb == nil {
		status.Dependencies["redis"] = "disabled"
	} else {
		mark("redis", h.rdb.Ping(ctx).Err())
	}
	if h.pool == nil {
		status.Dependencies["postgres"] = "disabled"
	} else {
		mark("postgres", h.pool.Ping(ctx))
	}
	_, err := h.libraryService.Document()
	mark("library", err)

	response.Success(c, http.StatusOK, status)
}

// ---------- SSE Endpoint ----------

type runtimeMetrics struct {
	Timestamp int64  `json:"timestamp"`
	Uptime    string `json:"uptime"`

	Goroutines  int    `json:"goroutines"`
	HeapAlloc   uint64 `json:"heap_alloc"`
	HeapSys     uint64 `json:"heap_sys"`
	StackInuse  uint64 `json:"stack_inuse"`
	NumGC       uint32 `json:"num_gc"`
	AppRSSBytes uint64 `json:"app_rss_bytes"`
	GoVersion   string `json:"go_version"`
	NumCPU      int    `json:"num_cpu"`

	LoadAvg1 float64 `json:"load_avg_1"`

	RedisTotalConns uint32 `json:"redis_total_conns,omitempty"`
	PGTotalConns    int32  `json:"pg_total_conns,omitempty"`
}

// RuntimeMetricsSSE godoc
// GET /api/v1/system/metrics
func (h *SystemHandler) RuntimeMetricsSSE(c *gin.Context) {
	reqCtx := c.Request.Context()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	h.log.Info().Msg("Client connected to runtime metrics SSE")

	ticker := time.NewTicker(metricsInterval)
	defer ticker.Stop()

	// Send immediately on connect, then every tick
	h.writeMetrics(c)

	for {
		select {
		case <-reqCtx.Done():
			h.log.Info().Msg("Client disconnected from runtime metrics SSE")
			return
		case <-ticker.C:
			h.writeMetrics(c)
		}
	}
}

func (h *SystemHandler) writeMetrics(c *gin.Context) {
	data, err := json.Marshal(h.collect())
	if err != nil {
		return
	}
	c.Writer.Write([]byte("data: "))
	c.Writer.Write(data)
	c.Writer.Write([]byte("\n\n"))
	c.Writer.Flush()
}

func (h *SystemHandler) collect() runtimeMetrics {
	m := runtimeMetrics{
		Timestamp: time.Now().Unix(),
		Uptime:    formatDuration(time.Since(h.startTime)),
		GoVersion: runtime.Version(),
		NumCPU:    runtime.NumCPU(),
	}

	// ── Go Runtime ──
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.Goroutines = runtime.NumGoroutine()
	m.HeapAlloc = ms.HeapAlloc
	m.HeapSys = ms.Sys
	m.StackInuse = ms.StackInuse
	m.NumGC = ms.NumGC

	// ── Process ──
	m.AppRSSBytes, _ = readProcessRSS()
	m.LoadAvg1, _ = readLoadAvg()

	// ── Connection pools ──
	if h.rdb != nil {
		m.RedisTotalConns = h.rdb.PoolStats().TotalConns
	}
	if h.pool != nil {
		m.PGTotalConns = h.pool.Stat().TotalConns()
	}

	return m
}

// ---------- /proc Readers ----------

// readLoadAvg returns the one-minute load average from /proc/loadavg.
func readLoadAvg() (float64, error) {
	data, err := os.ReadFile("/proc/loadavg")
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(string(data))
	if len(fields) < 1 {
		return 0, fmt.Errorf("unexpected /proc/loadavg format")
	}
	return strconv.ParseFloat(fields[0], 64)
}

// readProcessRSS reads VmRSS from /proc/self/status.
func readProcessRSS() (uint64, error) {
	f, err := os.Open("/proc/self/status")
	if err != nil {
		return 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "VmRSS:") {
			continue
		}
		// Format: "VmRSS:     12345 kB"
		fields := strings.Fields(line)
		if len(fields) < 2 {
			break
		}
		kb, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return 0, err
		}
		return kb * 1024, nil
	}
	return 0, fmt.Errorf("VmRSS not found")
}

// ---------- Helpers ----------

func formatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}
