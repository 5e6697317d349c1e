package views

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kevinaaaquil/portfolio/backend/auth"
	"github.com/kevinaaaquil/portfolio/backend/catalog"
	"github.com/kevinaaaquil/portfolio/backend/cv"
	"github.com/kevinaaaquil/portfolio/backend/locale"
	"github.com/kevinaaaquil/portfolio/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = &auth.Identity{UID: "admin-1", Email: "admin@example.com", Role: models.RoleAdmin}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(locale.MustCatalog(nil))
	require.NoError(t, err)
	return r
}

func render(t *testing.T, r *Renderer, name string, page Page) string {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusOK, name, page))
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	return rec.Body.String()
}

func TestAllPagesParse(t *testing.T) {
	r := newRenderer(t)
	for _, name := range []string{"home", "recommendations", "category", "detail", "cv", "cv_edit", "auth", "notfound", "message"} {
		assert.True(t, r.Has(name), name)
	}
	err := r.Render(httptest.NewRecorder(), http.StatusOK, "nope", Page{})
	assert.Error(t, err)
}

func TestCategoryPageForVisitor(t *testing.T) {
	r := newRenderer(t)
	items := locale.LocalizeItems([]models.Item{{ID: "m1", TitleEN: "Inception", TitleNO: "Inception NO"}}, models.CategoryMovies, locale.NO)

	body := render(t, r, "category", Page{
		Lang: locale.NO,
		Path: "/movies",
		Data: CategoryData{
			Category: models.CategoryMovies,
			Items:    items,
			Loaded:   true,
			Live:     LiveStream{URL: "/api/movies/events", Version: 7},
		},
	})
	assert.Contains(t, body, "Inception NO")
	assert.Contains(t, body, `new EventSource("/api/movies/events")`)
	assert.Regexp(t, `var version = +7 *;`, body)
	assert.Contains(t, body, `lang="nb"`)
	assert.Contains(t, body, locale.PlaceholderTall)
	assert.NotContains(t, body, `action="/movies"`, "visitors get no add form")
	assert.NotContains(t, body, "/delete")
	assert.Contains(t, body, `/lang/toggle?next=%2fmovies`)
}

func TestCategoryPageForAdmin(t *testing.T) {
	r := newRenderer(t)
	body := render(t, r, "category", Page{
		Lang:     locale.EN,
		Identity: admin,
		Data: CategoryData{
			Category: models.CategoryBooks,
			Loaded:   true,
			EditID:   "b1",
			Form:     catalog.Input{TitleEN: "God Is Not Great", AuthorLast: "Hitchens"},
			Items:    locale.LocalizeItems([]models.Item{{ID: "b1", TitleEN: "God Is Not Great"}}, models.CategoryBooks, locale.EN),
		},
	})
	assert.Contains(t, body, "Edit Book")
	assert.Contains(t, body, `action="/books/b1"`)
	assert.Contains(t, body, `value="Hitchens"`)
	assert.Contains(t, body, `/books/b1/delete`)
	assert.Contains(t, body, "isbn-lookup")
	assert.Contains(t, body, "Log Out")
}

func TestCategoryPageStates(t *testing.T) {
	r := newRenderer(t)
	body := render(t, r, "category", Page{Data: CategoryData{Category: models.CategoryApps}})
	assert.Contains(t, body, "Loading...")

	body = render(t, r, "category", Page{Data: CategoryData{Category: models.CategoryApps, Loaded: true}})
	assert.Contains(t, body, "Nothing here yet.")
}

func TestCVPage(t *testing.T) {
	r := newRenderer(t)
	doc := cv.Template(mustTime(t, "2025-06-01T10:00:00Z"))
	body := render(t, r, "cv", Page{
		Lang: locale.NO,
		Data: CVData{CV: locale.LocalizeCV(doc, locale.NO), PDFEnglish: "en.pdf", PDFNorwegian: "no.pdf"},
	})
	assert.Contains(t, body, "Universitetet i Bergen")
	assert.Contains(t, body, "1. juni 2025")
	assert.Contains(t, body, `href="no.pdf"`)
	assert.NotContains(t, body, `action="/cv/edit"`)

	bare := locale.LocalizeCV(&models.CV{Experience: []models.Experience{{ID: "e1", CompanyEN: "Kiosk"}}}, locale.EN)
	body = render(t, r, "cv", Page{Lang: locale.EN, Data: CVData{CV: bare}})
	assert.Contains(t, body, `src="`+locale.PlaceholderLogo+`"`)

	body = render(t, r, "cv", Page{Lang: locale.EN, Error: "No CV data available."})
	assert.Contains(t, body, "No CV data available.")
}

func TestCVEditPage(t *testing.T) {
	r := newRenderer(t)
	doc := cv.Template(mustTime(t, "2025-06-01T10:00:00Z"))
	entries, err := cv.Entries(doc, cv.SectionSkills)
	require.NoError(t, err)

	body := render(t, r, "cv_edit", Page{
		Identity: admin,
		Data: CVEditData{
			Personal:       models.Fields{"born": doc.PersonalDetails.Born},
			PersonalFields: cv.PersonalFields,
			Sections:       []CVSection{{Section: cv.SectionSkills, Fields: cv.SectionSkills.Fields(), Entries: entries}},
		},
	})
	assert.Contains(t, body, `action="/cv/edit/skills/skill1"`)
	assert.Contains(t, body, `value="11.01.2002"`)
	assert.Contains(t, body, "Save CV")
}

func TestMarkdownIsSanitized(t *testing.T) {
	out := string(Markdown("**bold** <script>alert(1)</script>"))
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestHomePage(t *testing.T) {
	r := newRenderer(t)
	body := render(t, r, "home", Page{Lang: locale.EN, Data: HomeData{
		Contact: ContactForm{Name: "Kari"},
		Status:  "Message sent successfully!",
		Sent:    true,
	}})
	assert.Contains(t, body, "Contact Me")
	assert.Contains(t, body, `value="Kari"`)
	assert.Contains(t, body, "Message sent successfully!")
	assert.Contains(t, body, "https://bsky.app/profile/solheim.online")
	assert.NotContains(t, body, "g-recaptcha")
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	tm, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return tm
}
