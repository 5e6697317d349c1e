// Package contentsync keeps a server-side mirror of every content collection and the CV,
// refreshed from store change notifications and fanned out to page and API subscribers.
package contentsync

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"slices"
	"sync"

	"github.com/kevinaaaquil/portfolio/backend/models"
	"github.com/kevinaaaquil/portfolio/backend/store"
)

var (
	// ErrNoStore is returned by Start when the hub was built without a store handle.
	ErrNoStore = errors.New("contentsync: no store configured")
	ErrStarted = errors.New("contentsync: already started")
)

// Source is what the hub reads and watches. Both store.DB and store.Memory satisfy it.
type Source interface {
	Items(ctx context.Context, cat models.Category) ([]models.Item, error)
	CV(ctx context.Context) (*models.CV, error)
	// Watch calls ready once changes under topic are being observed, then notify per change.
	Watch(ctx context.Context, topic string, ready, notify func()) error
}

// Snapshot is the full, createdAt-ordered state of one collection. Items is shared between
// subscribers and must not be modified. Version grows by one with every published change.
type Snapshot struct {
	Category models.Category `json:"category"`
	Items    []models.Item   `json:"items"`
	Loaded   bool            `json:"loaded"`
	Version  uint64          `json:"version"`
}

// CVSnapshot is the latest CV document. Exists is false while the document is missing.
type CVSnapshot struct {
	CV      *models.CV `json:"cv,omitempty"`
	Exists  bool       `json:"exists"`
	Loaded  bool       `json:"loaded"`
	Version uint64     `json:"version"`
}

type Hub struct {
	src    Source
	logger *slog.Logger

	items map[models.Category]*topic[Snapshot]
	cv    *topic[CVSnapshot]

	// reloadMu orders read-then-publish so an older read never overwrites a newer one.
	reloadMu sync.Mutex

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	stopped bool
}

// NewHub builds a hub over src. src may be nil, in which case Start reports ErrNoStore and
// the hub serves empty snapshots.
func NewHub(src Source, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Hub{
		src:    src,
		logger: logger,
		items:  make(map[models.Category]*topic[Snapshot], len(models.Categories)),
		cv:     newTopic(CVSnapshot{}),
	}
	for _, c := range models.Categories {
		h.items[c] = newTopic(Snapshot{Category: c, Items: []models.Item{}})
	}
	return h
}

// Start watches every collection and the CV in its own goroutine until Stop. The first
// load runs once all watches are registered, so a write made during startup is either in
// that load or triggers a reload.
func (h *Hub) Start(ctx context.Context) error {
	if h.src == nil {
		return ErrNoStore
	}
	h.mu.Lock()
	if h.cancel != nil || h.stopped {
		h.mu.Unlock()
		return ErrStarted
	}
	ctx, cancel := context.WithCancel(ctx)
	h.cancel = cancel
	h.mu.Unlock()

	var ready sync.WaitGroup
	for _, c := range models.Categories {
		h.watch(ctx, &ready, string(c), func() { h.reloadItems(ctx, c) })
	}
	h.watch(ctx, &ready, store.CVTopic, func() { h.reloadCV(ctx) })
	ready.Wait()

	for _, c := range models.Categories {
		h.reloadItems(ctx, c)
	}
	h.reloadCV(ctx)
	h.logger.Info("content sync started", "collections", len(models.Categories))
	return nil
}

// watch runs src.Watch for name. ready is released when the watch is registered or when it
// gives up, whichever comes first.
func (h *Hub) watch(ctx context.Context, ready *sync.WaitGroup, name string, notify func()) {
	var once sync.Once
	done := func() { once.Do(ready.Done) }
	ready.Add(1)
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer done()
		if err := h.src.Watch(ctx, name, done, notify); err != nil {
			h.logger.Error("watch stopped", "topic", name, "error", err)
		}
	}()
}

// Stop ends every watch together and closes all subscriber streams.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	cancel := h.cancel
	h.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	h.wg.Wait()
	for _, t := range h.items {
		t.close()
	}
	h.cv.close()
}

func (h *Hub) reloadItems(ctx context.Context, cat models.Category) {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()
	items, err := h.src.Items(ctx, cat)
	if err != nil {
		if ctx.Err() == nil {
			h.logger.Warn("reloading collection failed", "category", cat, "error", err)
		}
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	slices.SortStableFunc(items, func(a, b models.Item) int {
		return a.CreatedTime().Compare(b.CreatedTime())
	})

	t := h.items[cat]
	prev := t.latest()
	if prev.Loaded && reflect.DeepEqual(prev.Items, items) {
		return
	}
	t.publish(Snapshot{Category: cat, Items: items, Loaded: true, Version: prev.Version + 1})
}

func (h *Hub) reloadCV(ctx context.Context) {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()
	doc, err := h.src.CV(ctx)
	next := CVSnapshot{CV: doc, Exists: true, Loaded: true}
	switch {
	case errors.Is(err, store.ErrNotFound):
		next = CVSnapshot{Loaded: true}
	case err != nil:
		if ctx.Err() == nil {
			h.logger.Warn("reloading cv failed", "error", err)
		}
		return
	}
	prev := h.cv.latest()
	if prev.Loaded && prev.Exists == next.Exists && reflect.DeepEqual(prev.CV, next.CV) {
		return
	}
	next.Version = prev.Version + 1
	h.cv.publish(next)
}

// Refresh reloads cat right away. Writers call it so their own change shows up without
// waiting for the watch; the watch's later reload is dropped as identical.
func (h *Hub) Refresh(ctx context.Context, cat models.Category) {
	if h.src == nil {
		return
	}
	if _, ok := h.items[cat]; !ok {
		return
	}
	h.reloadItems(ctx, cat)
}

// Items returns the latest snapshot of cat.
func (h *Hub) Items(cat models.Category) Snapshot {
	t, ok := h.items[cat]
	if !ok {
		return Snapshot{Category: cat, Items: []models.Item{}}
	}
	return t.latest()
}

// CV returns the latest CV snapshot.
func (h *Hub) CV() CVSnapshot {
	return h.cv.latest()
}

// Subscribe streams snapshots of cat, starting with the current one. An unknown category
// yields a closed channel.
func (h *Hub) Subscribe(cat models.Category) (<-chan Snapshot, func()) {
	t, ok := h.items[cat]
	if !ok {
		ch := make(chan Snapshot)
		close(ch)
		return ch, func() {}
	}
	return t.subscribe()
}

func (h *Hub) SubscribeCV() (<-chan CVSnapshot, func()) {
	return h.cv.subscribe()
}

// PublishCV swaps a just-written document into the mirror without waiting for the watch.
func (h *Hub) PublishCV(doc *models.CV) {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()
	h.cv.publish(CVSnapshot{CV: doc.Clone(), Exists: doc != nil, Loaded: true, Version: h.cv.latest().Version + 1})
}
