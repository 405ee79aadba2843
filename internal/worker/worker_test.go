package worker

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/chemistry-web/internal/offline"
)

func TestFactRotatorWraps(t *testing.T) {
	w := NewFactRotator([]string{"a", "b", "c"}, time.Hour, nil, zerolog.Nop())

	if f := w.Current(); f.Index != 0 || f.Text != "a" {
		t.Fatalf("initial = %+v", f)
	}
	w.Advance()
	w.Advance()
	if f := w.Advance(); f.Index != 0 || f.Text != "a" {
		t.Errorf("after wrap = %+v", f)
	}
}

func TestFactRotatorSubscribers(t *testing.T) {
	w := NewFactRotator([]string{"a", "b"}, time.Hour, nil, zerolog.Nop())
	ch, unsubscribe := w.Subscribe()

	w.Advance()
	select {
	case f := <-ch:
		if f.Text != "b" {
			t.Errorf("received %+v", f)
		}
	case <-time.After(time.Second):
		t.Fatal("no rotation received")
	}

	unsubscribe()
	unsubscribe()
	if _, ok := <-ch; ok {
		t.Error("channel still open after unsubscribe")
	}
	w.Advance()
}

func TestFactRotatorStartTicks(t *testing.T) {
	w := NewFactRotator([]string{"a", "b"}, 10*time.Millisecond, nil, zerolog.Nop())
	ch, _ := w.Subscribe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("rotator did not tick")
	}
	cancel()
	<-done

	for range ch {
	}
}

func TestOfflineWorkerInstallsAndActivates(t *testing.T) {
	store := offline.NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stale := offline.NewEntry(http.StatusOK, nil, []byte("old"))
	if err := store.Put(ctx, "old-version", "/index.html", stale); err != nil {
		t.Fatal(err)
	}

	cache := offline.NewCache(store, "v2", []string{"/index.html"}, "/index.html", zerolog.Nop())
	fetch := offline.HandlerFetcher(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("home"))
	}))

	w := NewOfflineWorker(cache, fetch, time.Hour, zerolog.Nop())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		versions, _ := store.Versions(ctx)
		if len(versions) == 1 && versions[0] == "v2" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("versions = %v", versions)
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if e, err := cache.Lookup(context.Background(), "/index.html"); err != nil || string(e.Body) != "home" {
		t.Errorf("lookup = %v, %v", e, err)
	}
}
