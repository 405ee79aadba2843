package worker

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/chemistry-web/internal/config"
	"github.com/stemsi/chemistry-web/internal/model"
)

// FactRotator advances the fact banner on a fixed interval, wrapping at the
// end of the list, and fans each rotation out to subscribers. With Redis
// configured every rotation is also published on the fact channel.
type FactRotator struct {
	facts    []string
	interval time.Duration
	rdb      *redis.Client
	log      zerolog.Logger

	mu    sync.RWMutex
	index int
	subs  map[chan model.Fact]struct{}
}

// NewFactRotator creates a FactRotator starting at the first fact. rdb may be nil.
func NewFactRotator(facts []string, interval time.Duration, rdb *redis.Client, log zerolog.Logger) *FactRotator {
	return &FactRotator{
		facts:    facts,
		interval: interval,
		rdb:      rdb,
		log:      log.With().Str("component", "fact_rotator").Logger(),
		subs:     make(map[chan model.Fact]struct{}),
	}
}

// Start begins the rotation loop. Call in a goroutine.
func (w *FactRotator) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Int("facts", len(w.facts)).Msg("Worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.closeAll()
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			fact := w.Advance()
			w.publish(ctx, fact)
		}
	}
}

// Current returns the fact on display.
func (w *FactRotator) Current() model.Fact {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.factAt(w.index)
}

// Advance moves to the next fact and notifies subscribers. Slow
// subscribers miss the rotation rather than block it.
func (w *FactRotator) Advance() model.Fact {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.facts) > 0 {
		w.index = (w.index + 1) % len(w.facts)
	}
	fact := w.factAt(w.index)
	for ch := range w.subs {
		select {
		case ch <- fact:
		default:
		}
	}
	return fact
}

// Subscribe returns a channel receiving every rotation and a function
// that unsubscribes. The channel is closed on unsubscribe or shutdown.
func (w *FactRotator) Subscribe() (<-chan model.Fact, func()) {
	ch := make(chan model.Fact, 1)

	w.mu.Lock()
	w.subs[ch] = struct{}{}
	w.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			w.mu.Lock()
			if _, ok := w.subs[ch]; ok {
				delete(w.subs, ch)
				close(ch)
			}
			w.mu.Unlock()
		})
	}
}

func (w *FactRotator) factAt(i int) model.Fact {
	if len(w.facts) == 0 {
		return model.Fact{}
	}
	return model.Fact{Index: i, Text: w.facts[i]}
}

func (w *FactRotator) publish(ctx context.Context, fact model.Fact) {
	if w.rdb == nil {
		return
	}
	payload, err := json.Marshal(fact)
	if err != nil {
		return
	}
	if err := w.rdb.Publish(ctx, config.CacheKey.FactChannel(), payload).Err(); err != nil && ctx.Err() == nil {
		w.log.Warn().Err(err).Msg("Failed to publish fact")
	}
}

func (w *FactRotator) closeAll() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for ch := range w.subs {
		delete(w.subs, ch)
		close(ch)
	}
}
