package contentsync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kevinaaaquil/portfolio/backend/models"
	"github.com/kevinaaaquil/portfolio/backend/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(minute int) *time.Time {
	t := time.Date(2025, 1, 1, 12, minute, 0, 0, time.UTC)
	return &t
}

func startHub(t *testing.T, src Source) *Hub {
	t.Helper()
	h := NewHub(src, nil)
	require.NoError(t, h.Start(context.Background()))
	t.Cleanup(h.Stop)
	return h
}

func titles(s Snapshot) []string {
	out := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		out = append(out, it.TitleEN)
	}
	return out
}

func TestStartWithoutStore(t *testing.T) {
	h := NewHub(nil, nil)
	assert.ErrorIs(t, h.Start(context.Background()), ErrNoStore)

	snap := h.Items(models.CategoryMovies)
	assert.False(t, snap.Loaded)
	assert.Empty(t, snap.Items)
	h.Stop()
}

func TestStartTwice(t *testing.T) {
	h := startHub(t, store.NewMemory())
	assert.ErrorIs(t, h.Start(context.Background()), ErrStarted)
}

func TestSnapshotsSortedByCreatedAt(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	for _, it := range []models.Item{
		{TitleEN: "Third", CreatedAt: at(30)},
		{TitleEN: "Legacy"},
		{TitleEN: "First", CreatedAt: at(10)},
		{TitleEN: "Second", CreatedAt: at(20)},
	} {
		_, err := mem.InsertItem(ctx, models.CategoryMovies, &it)
		require.NoError(t, err)
	}

	h := startHub(t, mem)
	snap := h.Items(models.CategoryMovies)
	require.True(t, snap.Loaded)
	assert.Equal(t, []string{"Legacy", "First", "Second", "Third"}, titles(snap))
}

func TestSubscribeReceivesCurrentThenChanges(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	h := startHub(t, mem)

	ch, cancel := h.Subscribe(models.CategoryApps)
	defer cancel()

	first := <-ch
	assert.True(t, first.Loaded)
	assert.Empty(t, first.Items)

	_, err := mem.InsertItem(ctx, models.CategoryApps, &models.Item{TitleEN: "Obsidian", CreatedAt: at(1)})
	require.NoError(t, err)
	h.Refresh(ctx, models.CategoryApps)

	select {
	case snap := <-ch:
		assert.Equal(t, []string{"Obsidian"}, titles(snap))
	case <-time.After(time.Second):
		t.Fatal("no snapshot after insert")
	}
}

func TestWatchDrivesMirror(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	h := startHub(t, mem)

	_, err := mem.InsertItem(ctx, models.CategoryPodcasts, &models.Item{TitleEN: "Lex Fridman", CreatedAt: at(1)})
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return len(h.Items(models.CategoryPodcasts).Items) == 1
	}, time.Second, 5*time.Millisecond)
}

// slowWatch registers its watches late and records whether anything was read before all
// of them were in place.
type slowWatch struct {
	*store.Memory
	mu    sync.Mutex
	ready int
	early bool
}

func (s *slowWatch) Watch(ctx context.Context, topic string, ready, notify func()) error {
	time.Sleep(20 * time.Millisecond)
	return s.Memory.Watch(ctx, topic, func() {
		s.mu.Lock()
		s.ready++
		s.mu.Unlock()
		ready()
	}, notify)
}

func (s *slowWatch) Items(ctx context.Context, cat models.Category) ([]models.Item, error) {
	s.mu.Lock()
	if s.ready < len(models.Categories)+1 {
		s.early = true
	}
	s.mu.Unlock()
	return s.Memory.Items(ctx, cat)
}

func TestStartLoadsAfterWatchesRegister(t *testing.T) {
	ctx := context.Background()
	src := &slowWatch{Memory: store.NewMemory()}
	h := startHub(t, src)

	src.mu.Lock()
	assert.False(t, src.early, "collection read before every watch was registered")
	src.mu.Unlock()

	// Nothing refreshes the hub here; only the watch can carry the write across.
	_, err := src.InsertItem(ctx, models.CategoryMovies, &models.Item{TitleEN: "Inception", CreatedAt: at(1)})
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return len(h.Items(models.CategoryMovies).Items) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestSnapshotVersionAdvancesPerChange(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	h := startHub(t, mem)

	first := h.Items(models.CategoryApps).Version
	assert.Equal(t, uint64(1), first)

	h.Refresh(ctx, models.CategoryApps)
	assert.Equal(t, first, h.Items(models.CategoryApps).Version, "unchanged reload kept its version")

	_, err := mem.InsertItem(ctx, models.CategoryApps, &models.Item{TitleEN: "Obsidian", CreatedAt: at(1)})
	require.NoError(t, err)
	h.Refresh(ctx, models.CategoryApps)
	assert.Greater(t, h.Items(models.CategoryApps).Version, first)

	cvFirst := h.CV().Version
	h.PublishCV(&models.CV{UpdatedAt: "2025-06-01T10:00:00Z"})
	assert.Equal(t, cvFirst+1, h.CV().Version)
}

func TestIdenticalSnapshotNotRepublished(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	_, err := mem.InsertItem(ctx, models.CategoryBooks, &models.Item{TitleEN: "Dune", CreatedAt: at(1)})
	require.NoError(t, err)
	h := startHub(t, mem)

	ch, cancel := h.Subscribe(models.CategoryBooks)
	defer cancel()
	<-ch

	h.Refresh(ctx, models.CategoryBooks)
	select {
	case <-ch:
		t.Fatal("unchanged collection was published again")
	default:
	}
}

func TestLatestWins(t *testing.T) {
	tp := newTopic(0)
	ch, cancel := tp.subscribe()
	defer cancel()

	for i := 1; i <= 5; i++ {
		tp.publish(i)
	}
	assert.Equal(t, 5, <-ch)
	select {
	case v := <-ch:
		t.Fatalf("unexpected extra value %d", v)
	default:
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	h := NewHub(store.NewMemory(), nil)
	ch, cancel := h.Subscribe(models.CategoryMovies)
	<-ch
	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, h.items[models.CategoryMovies].subscribers())
}

func TestStopClosesSubscribers(t *testing.T) {
	h := NewHub(store.NewMemory(), nil)
	require.NoError(t, h.Start(context.Background()))

	ch, cancel := h.Subscribe(models.CategoryMovies)
	cvCh, cvCancel := h.SubscribeCV()
	<-ch
	<-cvCh

	h.Stop()
	h.Stop()
	_, open := <-ch
	assert.False(t, open)
	_, open = <-cvCh
	assert.False(t, open)
	cancel()
	cvCancel()

	late, _ := h.Subscribe(models.CategoryMovies)
	_, open = <-late
	assert.False(t, open)
}

func TestUnknownCategorySubscription(t *testing.T) {
	h := NewHub(store.NewMemory(), nil)
	ch, cancel := h.Subscribe(models.Category("games"))
	defer cancel()
	_, open := <-ch
	assert.False(t, open)
}

func TestCVSnapshot(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	h := startHub(t, mem)

	snap := h.CV()
	assert.True(t, snap.Loaded)
	assert.False(t, snap.Exists)

	doc := &models.CV{UpdatedAt: "2025-06-01T10:00:00Z"}
	require.NoError(t, mem.PutCV(ctx, doc))
	h.PublishCV(doc)

	snap = h.CV()
	assert.True(t, snap.Exists)
	assert.Equal(t, "2025-06-01T10:00:00Z", snap.CV.UpdatedAt)

	doc.UpdatedAt = "mutated"
	assert.Equal(t, "2025-06-01T10:00:00Z", h.CV().CV.UpdatedAt)
}

type failingSource struct{ *store.Memory }

func (failingSource) Items(context.Context, models.Category) ([]models.Item, error) {
	return nil, errors.New("connection reset")
}

func TestReloadErrorKeepsState(t *testing.T) {
	h := startHub(t, failingSource{store.NewMemory()})
	snap := h.Items(models.CategoryMovies)
	assert.False(t, snap.Loaded)
	assert.Empty(t, snap.Items)
}
