package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kevinaaaquil/portfolio/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryItemLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Now().UTC()

	id, err := m.InsertItem(ctx, models.CategoryBooks, &models.Item{
		TitleEN:   "Letters to a Young Contrarian",
		TitleNO:   "Brev til en ung motstemme",
		Author:    &models.Author{First: "Christopher", Last: "Hitchens"},
		CreatedAt: &now,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := m.Item(ctx, models.CategoryBooks, id)
	require.NoError(t, err)
	assert.Equal(t, "Christopher Hitchens", got.Author.FullName())

	got.Author.First = "mutated"
	again, err := m.Item(ctx, models.CategoryBooks, id)
	require.NoError(t, err)
	assert.Equal(t, "Christopher", again.Author.First, "reads return copies")

	updated := now.Add(time.Minute)
	require.NoError(t, m.UpdateItem(ctx, models.CategoryBooks, id, &models.Item{
		TitleEN: "Letters", TitleNO: "Brev", UpdatedAt: &updated,
	}))
	got, err = m.Item(ctx, models.CategoryBooks, id)
	require.NoError(t, err)
	assert.Equal(t, "Letters", got.TitleEN)
	assert.Equal(t, "Christopher Hitchens", got.Author.FullName(), "nil author keeps the stored one")
	assert.Equal(t, now, *got.CreatedAt)

	require.NoError(t, m.DeleteItem(ctx, models.CategoryBooks, id))
	_, err = m.Item(ctx, models.CategoryBooks, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.DeleteItem(ctx, models.CategoryBooks, id), ErrNotFound)
	assert.ErrorIs(t, m.UpdateItem(ctx, models.CategoryBooks, id, &models.Item{}), ErrNotFound)
}

func TestMemoryCollectionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.InsertItem(ctx, models.CategoryMovies, &models.Item{TitleEN: "Inception"})
	require.NoError(t, err)

	movies, err := m.Items(ctx, models.CategoryMovies)
	require.NoError(t, err)
	apps, err := m.Items(ctx, models.CategoryApps)
	require.NoError(t, err)
	assert.Len(t, movies, 1)
	assert.Empty(t, apps)
}

func TestMemoryCV(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.CV(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.PutCV(ctx, &models.CV{}))
	cv, err := m.CV(ctx)
	require.NoError(t, err)
	assert.True(t, cv.IsEmpty())

	require.NoError(t, m.PutCV(ctx, &models.CV{UpdatedAt: "2025-06-01T10:00:00Z"}))
	cv, err = m.CV(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01T10:00:00Z", cv.UpdatedAt)
}

func TestMemoryUsers(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	u, err := m.UserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)

	id, err := m.CreateUser(ctx, &models.User{Email: "a@example.com", Password: "hash"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	_, err = m.CreateUser(ctx, &models.User{Email: "A@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	u, err = m.UserByEmail(ctx, "A@Example.com")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
}

func TestMemoryWatchNotifiesPerTopic(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var movies, cv atomic.Int32
	var ready sync.WaitGroup
	ready.Add(2)
	go m.Watch(ctx, string(models.CategoryMovies), ready.Done, func() { movies.Add(1) })
	go m.Watch(ctx, CVTopic, ready.Done, func() { cv.Add(1) })
	ready.Wait()

	_, err := m.InsertItem(context.Background(), models.CategoryMovies, &models.Item{TitleEN: "Heat"})
	require.NoError(t, err)
	_, err = m.InsertItem(context.Background(), models.CategoryApps, &models.Item{TitleEN: "Obsidian"})
	require.NoError(t, err)
	require.NoError(t, m.PutCV(context.Background(), &models.CV{}))

	assert.Equal(t, int32(1), movies.Load())
	assert.Equal(t, int32(1), cv.Load())

	cancel()
	require.Eventually(t, func() bool {
		m.mu.RLock()
		defer m.mu.RUnlock()
		return len(m.watchers[string(models.CategoryMovies)]) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestCVPath(t *testing.T) {
	assert.Equal(t, "artifacts/app-1/public/data/cv/mainCV", CVPath("app-1"))
}
