package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/chemistry-web/internal/offline"
)

// OfflineWorker installs the current offline cache version, activates it
// by deleting older versions, then keeps sweeping stale versions that
// other instances may still write.
type OfflineWorker struct {
	cache    *offline.Cache
	fetch    offline.Fetcher
	interval time.Duration
	log      zerolog.Logger
}

// NewOfflineWorker creates a new OfflineWorker.
func NewOfflineWorker(cache *offline.Cache, fetch offline.Fetcher, interval time.Duration, log zerolog.Logger) *OfflineWorker {
	return &OfflineWorker{
		cache:    cache,
		fetch:    fetch,
		interval: interval,
		log:      log.With().Str("component", "offline_worker").Logger(),
	}
}

// Start installs, activates and then sweeps until ctx is cancelled. Call
// in a goroutine.
func (w *OfflineWorker) Start(ctx context.Context) {
	w.log.Info().Str("version", w.cache.Version()).Msg("Worker started")

	if _, err := w.cache.Install(ctx, w.fetch); err != nil {
		w.log.Warn().Err(err).Msg("Install interrupted")
		return
	}
	w.activate(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			w.activate(ctx)
		}
	}
}

func (w *OfflineWorker) activate(ctx context.Context) {
	removed, err := w.cache.Activate(ctx)
	if err != nil && ctx.Err() == nil {
		w.log.Error().Err(err).Msg("Activate error")
	}
	if len(removed) > 0 {
		w.log.Info().Strs("removed", removed).Msg("Old cache versions deleted")
	}
}
