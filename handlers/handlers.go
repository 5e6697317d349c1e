// Package handlers serves the site's pages, form posts and read API.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/kevinaaaquil/portfolio/backend/catalog"
	"github.com/kevinaaaquil/portfolio/backend/locale"
	"github.com/kevinaaaquil/portfolio/backend/middleware"
	"github.com/kevinaaaquil/portfolio/backend/views"
)

// Base carries what every handler needs to render a page.
type Base struct {
	Views    *views.Renderer
	Messages *locale.Catalog
	Logger   *slog.Logger
	// Secure marks cookies Secure; set outside development.
	Secure bool
}

func (b *Base) page(r *http.Request, title string, data any) views.Page {
	return views.Page{
		Lang:     middleware.LangFromContext(r.Context()),
		Identity: middleware.IdentityFromContext(r.Context()),
		Path:     r.URL.RequestURI(),
		Title:    title,
		Data:     data,
	}
}

func (b *Base) t(r *http.Request, key string, args ...any) string {
	return b.Messages.T(middleware.LangFromContext(r.Context()), key, args...)
}

func (b *Base) render(w http.ResponseWriter, r *http.Request, status int, name string, p views.Page) {
	if err := b.Views.Render(w, status, name, p); err != nil {
		b.Logger.Error("rendering page failed", "page", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// NotFound renders the bilingual not-found page.
func (b *Base) NotFound(w http.ResponseWriter, r *http.Request) {
	b.render(w, r, http.StatusNotFound, "notfound", b.page(r, b.t(r, "notfound.title"), nil))
}

// Message renders a short status page with a translated title.
func (b *Base) Message(w http.ResponseWriter, r *http.Request, status int, key string) {
	b.render(w, r, status, "message", b.page(r, b.t(r, key), nil))
}

// CSRFRejected is the failure page for cross-origin form posts.
func (b *Base) CSRFRejected(w http.ResponseWriter, r *http.Request) {
	b.Message(w, r, http.StatusForbidden, "error.csrf")
}

// RateLimited is the failure page for throttled form posts.
func (b *Base) RateLimited(w http.ResponseWriter, r *http.Request) {
	b.Message(w, r, http.StatusTooManyRequests, "error.rate_limited")
}

// writeError maps a write error to a status code and message key.
func writeError(err error) (int, string) {
	switch {
	case errors.Is(err, catalog.ErrForbidden):
		return http.StatusForbidden, "error.forbidden"
	case errors.Is(err, catalog.ErrUnavailable):
		return http.StatusServiceUnavailable, "error.unavailable"
	case errors.Is(err, catalog.ErrInvalid):
		return http.StatusUnprocessableEntity, "error.invalid"
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound, "error.not_found"
	}
	return http.StatusInternalServerError, "error.save_failed"
}
