package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kevinaaaquil/portfolio/backend/middleware"
	"github.com/kevinaaaquil/portfolio/backend/models"
	"github.com/kevinaaaquil/portfolio/backend/views"
)

// PageHandler serves the static navigation pages and the language switch.
type PageHandler struct {
	Base
}

func (h *PageHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "recommendations", h.page(r, h.t(r, "recommendations.title"),
		views.RecommendationsData{Categories: models.Categories}))
}

// LangToggle flips the language cookie and returns to ?next, which must be a local path.
func (h *PageHandler) LangToggle(w http.ResponseWriter, r *http.Request) {
	next := localPath(r.URL.Query().Get("next"))
	lang := middleware.LangFromContext(r.Context()).Toggle()
	middleware.SetLangCookie(w, lang, h.Secure)
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func localPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}
	return p
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
