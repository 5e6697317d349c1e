package catalog

import (
	"context"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/kevinaaaquil/portfolio/backend/auth"
	"github.com/kevinaaaquil/portfolio/backend/models"
	"github.com/kevinaaaquil/portfolio/backend/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin   = &auth.Identity{UID: "admin-1", Email: "admin@example.com", Role: models.RoleAdmin}
	visitor = &auth.Identity{UID: "anon-1", Anonymous: true, Role: models.RoleVisitor}
)

type refreshRecorder struct{ cats []models.Category }

func (r *refreshRecorder) Refresh(_ context.Context, cat models.Category) {
	r.cats = append(r.cats, cat)
}

func inception() Input {
	return Input{
		TitleEN:       "Inception",
		TitleNO:       "Inception",
		ImageEN:       "https://example.com/inception.jpg",
		DescriptionEN: "A thief who steals corporate secrets through dream-sharing.",
		DescriptionNO: "En tyv som stjeler bedriftshemmeligheter gjennom drømmer.",
	}
}

func newService(t *testing.T) (*Service, *store.Memory, *refreshRecorder) {
	t.Helper()
	mem := store.NewMemory()
	rec := &refreshRecorder{}
	svc := NewService(mem, rec, nil)
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }
	return svc, mem, rec
}

func TestAddStampsCreation(t *testing.T) {
	ctx := context.Background()
	svc, mem, rec := newService(t)

	item, err := svc.Add(ctx, admin, models.CategoryMovies, inception())
	require.NoError(t, err)
	require.NotEmpty(t, item.ID)

	stored, err := mem.Item(ctx, models.CategoryMovies, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Inception", stored.TitleEN)
	assert.Equal(t, "admin-1", stored.CreatedBy)
	assert.Equal(t, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), *stored.CreatedAt)
	assert.Nil(t, stored.UpdatedAt)
	assert.Nil(t, stored.Author, "movies have no author")
	assert.Equal(t, []models.Category{models.CategoryMovies}, rec.cats)
}

func TestNonAdminWritesAreRejected(t *testing.T) {
	ctx := context.Background()
	svc, mem, rec := newService(t)
	existing, err := svc.Add(ctx, admin, models.CategoryApps, inception())
	require.NoError(t, err)
	rec.cats = nil

	for _, who := range []*auth.Identity{visitor, nil, {UID: "user-2", Email: "x@example.com", Role: models.RoleVisitor}} {
		_, err := svc.Add(ctx, who, models.CategoryApps, inception())
		assert.ErrorIs(t, err, ErrForbidden)
		assert.ErrorIs(t, svc.Update(ctx, who, models.CategoryApps, existing.ID, inception()), ErrForbidden)
		assert.ErrorIs(t, svc.Delete(ctx, who, models.CategoryApps, existing.ID), ErrForbidden)
		_, err = svc.Edit(ctx, who, models.CategoryApps, existing.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	}

	items, err := mem.Items(ctx, models.CategoryApps)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Empty(t, rec.cats)
}

func TestWritesWithoutStore(t *testing.T) {
	svc := NewService(nil, nil, nil)
	_, err := svc.Add(context.Background(), admin, models.CategoryBooks, inception())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, svc.Delete(context.Background(), admin, models.CategoryBooks, "x"), ErrUnavailable)
}

func TestAddValidation(t *testing.T) {
	svc, _, _ := newService(t)
	in := inception()
	in.TitleNO = "   "
	in.DescriptionEN = ""
	in.ImageNO = "not a url"

	_, err := svc.Add(context.Background(), admin, models.CategoryMovies, in)
	require.ErrorIs(t, err, ErrInvalid)

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "title_no")
	assert.Contains(t, verrs, "description_en")
	assert.Contains(t, verrs, "image_no")
	assert.NotContains(t, verrs, "title_en")
}

func TestUnknownCategory(t *testing.T) {
	svc, _, _ := newService(t)
	_, err := svc.Add(context.Background(), admin, models.Category("games"), inception())
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestEditAndUpdateBook(t *testing.T) {
	ctx := context.Background()
	svc, mem, _ := newService(t)

	in := inception()
	in.TitleEN, in.TitleNO = "Sapiens", "Sapiens"
	in.AuthorFirst, in.AuthorMiddle, in.AuthorLast = "Yuval", "Noah", "Harari"
	item, err := svc.Add(ctx, admin, models.CategoryBooks, in)
	require.NoError(t, err)
	require.NotNil(t, item.Author)

	buf, err := svc.Edit(ctx, admin, models.CategoryBooks, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Noah", buf.AuthorMiddle)

	buf.TitleNO = "Sapiens: En kort historie om menneskeheten"
	buf.AuthorMiddle = ""
	require.NoError(t, svc.Update(ctx, admin, models.CategoryBooks, item.ID, buf))

	stored, err := mem.Item(ctx, models.CategoryBooks, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sapiens: En kort historie om menneskeheten", stored.TitleNO)
	assert.Equal(t, "Yuval Harari", stored.Author.FullName())
	require.NotNil(t, stored.UpdatedAt)
	assert.Equal(t, *stored.CreatedAt, *item.CreatedAt)
}

func TestUpdateAndDeleteMissing(t *testing.T) {
	ctx := context.Background()
	svc, _, rec := newService(t)

	assert.ErrorIs(t, svc.Update(ctx, admin, models.CategoryMovies, "nope", inception()), ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, admin, models.CategoryMovies, "nope"), ErrNotFound)
	_, err := svc.Edit(ctx, admin, models.CategoryMovies, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, rec.cats)
}

func TestDeleteRemovesItem(t *testing.T) {
	ctx := context.Background()
	svc, mem, _ := newService(t)
	item, err := svc.Add(ctx, admin, models.CategoryPodcasts, inception())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, admin, models.CategoryPodcasts, item.ID))
	_, err = mem.Item(ctx, models.CategoryPodcasts, item.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
