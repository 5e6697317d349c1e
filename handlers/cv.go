package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kevinaaaquil/portfolio/backend/contentsync"
	"github.com/kevinaaaquil/portfolio/backend/cv"
	"github.com/kevinaaaquil/portfolio/backend/locale"
	"github.com/kevinaaaquil/portfolio/backend/middleware"
	"github.com/kevinaaaquil/portfolio/backend/models"
	"github.com/kevinaaaquil/portfolio/backend/views"
)

type CVHandler struct {
	Base
	Hub          *contentsync.Hub
	CV           *cv.Service
	PDFEnglish   string
	PDFNorwegian string
}

// Show renders the CV. The first admin visit to a missing or empty CV writes the template.
func (h *CVHandler) Show(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFromContext(r.Context())
	who := middleware.IdentityFromContext(r.Context())
	title := h.t(r, "cv.title")

	snap := h.Hub.CV()
	if !snap.Loaded {
		p := h.page(r, title, nil)
		p.Notice = h.t(r, "site.loading")
		h.render(w, r, http.StatusOK, "cv", p)
		return
	}

	doc, err := h.CV.Resolve(r.Context(), who, snap.CV, snap.Exists)
	if err != nil {
		p := h.page(r, title, nil)
		status := http.StatusOK
		switch {
		case errors.Is(err, cv.ErrNoData):
			p.Error = h.t(r, "cv.no_data")
		case errors.Is(err, cv.ErrUnavailable):
			status = http.StatusServiceUnavailable
			p.Error = h.t(r, "error.unavailable")
		default:
			status = http.StatusInternalServerError
			p.Error = h.t(r, "cv.init_failed")
		}
		h.render(w, r, status, "cv", p)
		return
	}

	h.render(w, r, http.StatusOK, "cv", h.page(r, title, views.CVData{
		CV:           locale.LocalizeCV(doc, lang),
		PDFEnglish:   h.PDFEnglish,
		PDFNorwegian: h.PDFNorwegian,
		Live:         views.LiveStream{URL: "/api/cv/events", Version: h.Hub.CV().Version},
	}))
}

// Begin starts an edit session from the displayed CV.
func (h *CVHandler) Begin(w http.ResponseWriter, r *http.Request) {
	who := middleware.IdentityFromContext(r.Context())
	if err := h.CV.Begin(who, h.Hub.CV().CV); err != nil {
		h.failed(w, r, err)
		return
	}
	http.Redirect(w, r, "/cv/edit", http.StatusSeeOther)
}

// EditPage renders the admin's draft. Without a draft it goes back to the CV.
func (h *CVHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	who := middleware.IdentityFromContext(r.Context())
	if !who.IsAdmin() {
		h.failed(w, r, cv.ErrForbidden)
		return
	}
	draft, ok := h.CV.Draft(who)
	if !ok {
		http.Redirect(w, r, "/cv", http.StatusSeeOther)
		return
	}

	data := views.CVEditData{Personal: models.Fields{}, PersonalFields: cv.PersonalFields}
	if pd := draft.PersonalDetails; pd != nil {
		data.Personal = models.Fields{"born": pd.Born, "languages_en": pd.LanguagesEN, "languages_no": pd.LanguagesNO}
	}
	for _, sec := range cv.Sections {
		entries, err := cv.Entries(draft, sec)
		if err != nil {
			h.failed(w, r, err)
			return
		}
		data.Sections = append(data.Sections, views.CVSection{Section: sec, Fields: sec.Fields(), Entries: entries})
	}
	h.render(w, r, http.StatusOK, "cv_edit", h.page(r, h.t(r, "cv.edit"), data))
}

func formFields(r *http.Request, keys []string) models.Fields {
	f := models.Fields{}
	for _, k := range keys {
		if vs, ok := r.PostForm[k]; ok && len(vs) > 0 {
			f[k] = vs[0]
		}
	}
	return f
}

func (h *CVHandler) section(w http.ResponseWriter, r *http.Request) (cv.Section, bool) {
	sec, err := cv.ParseSection(chi.URLParam(r, "section"))
	if err != nil {
		h.NotFound(w, r)
		return "", false
	}
	if err := r.ParseForm(); err != nil {
		h.Message(w, r, http.StatusBadRequest, "error.invalid")
		return "", false
	}
	return sec, true
}

func (h *CVHandler) UpdatePersonal(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Message(w, r, http.StatusBadRequest, "error.invalid")
		return
	}
	who := middleware.IdentityFromContext(r.Context())
	h.afterEdit(w, r, "", h.CV.UpdatePersonal(who, formFields(r, cv.PersonalFields)))
}

func (h *CVHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	sec, ok := h.section(w, r)
	if !ok {
		return
	}
	who := middleware.IdentityFromContext(r.Context())
	h.afterEdit(w, r, sec, h.CV.UpdateEntry(who, sec, chi.URLParam(r, "id"), formFields(r, sec.Fields())))
}

func (h *CVHandler) AddEntry(w http.ResponseWriter, r *http.Request) {
	sec, ok := h.section(w, r)
	if !ok {
		return
	}
	who := middleware.IdentityFromContext(r.Context())
	_, err := h.CV.AddEntry(who, sec, formFields(r, sec.Fields()))
	h.afterEdit(w, r, sec, err)
}

func (h *CVHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	sec, ok := h.section(w, r)
	if !ok {
		return
	}
	who := middleware.IdentityFromContext(r.Context())
	h.afterEdit(w, r, sec, h.CV.DeleteEntry(who, sec, chi.URLParam(r, "id")))
}

func (h *CVHandler) afterEdit(w http.ResponseWriter, r *http.Request, sec cv.Section, err error) {
	if err != nil {
		h.failed(w, r, err)
		return
	}
	target := "/cv/edit"
	if sec != "" {
		target += "#section-" + string(sec)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Save writes the draft and shows the updated CV.
func (h *CVHandler) Save(w http.ResponseWriter, r *http.Request) {
	who := middleware.IdentityFromContext(r.Context())
	if _, err := h.CV.Save(r.Context(), who); err != nil {
		h.failed(w, r, err)
		return
	}
	http.Redirect(w, r, "/cv", http.StatusSeeOther)
}

func (h *CVHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.CV.Cancel(middleware.IdentityFromContext(r.Context()))
	http.Redirect(w, r, "/cv", http.StatusSeeOther)
}

func (h *CVHandler) failed(w http.ResponseWriter, r *http.Request, err error) {
	status, key := http.StatusInternalServerError, "cv.save_failed"
	switch {
	case errors.Is(err, cv.ErrForbidden):
		status, key = http.StatusForbidden, "error.forbidden"
	case errors.Is(err, cv.ErrUnavailable):
		status, key = http.StatusServiceUnavailable, "error.unavailable"
	case errors.Is(err, cv.ErrNoDraft):
		http.Redirect(w, r, "/cv", http.StatusSeeOther)
		return
	case errors.Is(err, cv.ErrEntryNotFound), errors.Is(err, cv.ErrUnknownSection):
		status, key = http.StatusNotFound, "error.not_found"
	}
	h.Logger.Warn("cv request failed", "path", r.URL.Path, "status", status, "error", err)
	h.Message(w, r, status, key)
}
