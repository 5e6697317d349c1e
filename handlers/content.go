package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/kevinaaaquil/portfolio/backend/auth"
	"github.com/kevinaaaquil/portfolio/backend/catalog"
	"github.com/kevinaaaquil/portfolio/backend/contentsync"
	"github.com/kevinaaaquil/portfolio/backend/locale"
	"github.com/kevinaaaquil/portfolio/backend/middleware"
	"github.com/kevinaaaquil/portfolio/backend/models"
	"github.com/kevinaaaquil/portfolio/backend/service"
	"github.com/kevinaaaquil/portfolio/backend/views"
)

// ImageUploader stores an uploaded image and returns its public URL. service.ImageStore implements it.
type ImageUploader interface {
	Upload(ctx context.Context, cat models.Category, filename string, body io.Reader, contentType string) (string, error)
}

type BookLooker interface {
	Lookup(ctx context.Context, isbn string) (*service.BookMetadata, error)
}

type ContentHandler struct {
	Base
	Hub     *contentsync.Hub
	Catalog *catalog.Service
	// Images is nil when S3 is not configured; the forms then take URLs only.
	Images   ImageUploader
	Books    BookLooker
	MaxBytes int64
}

func (h *ContentHandler) category(w http.ResponseWriter, r *http.Request) (models.Category, bool) {
	cat, ok := models.ParseCategory(chi.URLParam(r, "category"))
	if !ok {
		h.NotFound(w, r)
	}
	return cat, ok
}

func (h *ContentHandler) renderGrid(w http.ResponseWriter, r *http.Request, status int, cat models.Category, form catalog.Input, editID, errMsg string) {
	lang := middleware.LangFromContext(r.Context())
	snap := h.Hub.Items(cat)
	p := h.page(r, h.Messages.T(lang, "category."+string(cat)+".title"), views.CategoryData{
		Category: cat,
		Items:    locale.LocalizeItems(snap.Items, cat, lang),
		Loaded:   snap.Loaded,
		Form:     form,
		EditID:   editID,
		Uploads:  h.Images != nil,
		Live:     views.LiveStream{URL: "/api/" + string(cat) + "/events", Version: snap.Version},
	})
	p.Error = errMsg
	h.render(w, r, status, "category", p)
}

// List renders the grid, with add/edit/delete controls for the admin.
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.category(w, r)
	if !ok {
		return
	}
	h.renderGrid(w, r, http.StatusOK, cat, catalog.Input{}, "", "")
}

func (h *ContentHandler) Detail(w http.ResponseWriter, r *http.Request) {
	cat, ok := models.ParseCategory(r.URL.Query().Get("category"))
	if !ok {
		h.NotFound(w, r)
		return
	}
	id := r.URL.Query().Get("id")
	lang := middleware.LangFromContext(r.Context())
	for _, it := range h.Hub.Items(cat).Items {
		if it.ID == id {
			item := locale.LocalizeItem(it, cat, lang)
			h.render(w, r, http.StatusOK, "detail", h.page(r, item.Title, views.DetailData{Category: cat, Item: item}))
			return
		}
	}
	h.NotFound(w, r)
}

// Create adds an item. On success the admin is redirected to an empty form.
func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.category(w, r)
	if !ok {
		return
	}
	who := middleware.IdentityFromContext(r.Context())
	in, err := h.readInput(w, r, who, cat)
	if err == nil {
		_, err = h.Catalog.Add(r.Context(), who, cat, in)
	}
	if err != nil {
		h.writeFailed(w, r, cat, in, "", err)
		return
	}
	http.Redirect(w, r, "/"+string(cat), http.StatusSeeOther)
}

// Edit renders the grid with the form pre-filled from the stored item.
func (h *ContentHandler) Edit(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.category(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	in, err := h.Catalog.Edit(r.Context(), middleware.IdentityFromContext(r.Context()), cat, id)
	if err != nil {
		h.writeFailed(w, r, cat, catalog.Input{}, "", err)
		return
	}
	h.renderGrid(w, r, http.StatusOK, cat, in, id, "")
}

func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.category(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	who := middleware.IdentityFromContext(r.Context())
	in, err := h.readInput(w, r, who, cat)
	if err == nil {
		err = h.Catalog.Update(r.Context(), who, cat, id, in)
	}
	if err != nil {
		h.writeFailed(w, r, cat, in, id, err)
		return
	}
	http.Redirect(w, r, "/"+string(cat), http.StatusSeeOther)
}

func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.category(w, r)
	if !ok {
		return
	}
	err := h.Catalog.Delete(r.Context(), middleware.IdentityFromContext(r.Context()), cat, chi.URLParam(r, "id"))
	if err != nil {
		h.writeFailed(w, r, cat, catalog.Input{}, "", err)
		return
	}
	http.Redirect(w, r, "/"+string(cat), http.StatusSeeOther)
}

// writeFailed re-renders the grid with the submitted values and a translated error.
func (h *ContentHandler) writeFailed(w http.ResponseWriter, r *http.Request, cat models.Category, in catalog.Input, editID string, err error) {
	status, key := writeError(err)
	if errors.Is(err, errUpload) {
		status, key = http.StatusBadGateway, "error.upload_failed"
	}
	h.Logger.Warn("content write failed", "category", cat, "id", editID, "status", status, "error", err)
	h.renderGrid(w, r, status, cat, in, editID, h.t(r, key))
}

var errUpload = errors.New("image upload failed")

// readInput parses the form, uploading any attached images once the caller is known to be
// allowed to write.
func (h *ContentHandler) readInput(w http.ResponseWriter, r *http.Request, who *auth.Identity, cat models.Category) (catalog.Input, error) {
	if h.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)
	}
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return catalog.Input{}, errors.Join(catalog.ErrInvalid, err)
	}
	in := catalog.Input{
		TitleEN:       r.FormValue("title_en"),
		TitleNO:       r.FormValue("title_no"),
		ImageEN:       r.FormValue("image_en"),
		ImageNO:       r.FormValue("image_no"),
		DescriptionEN: r.FormValue("description_en"),
		DescriptionNO: r.FormValue("description_no"),
		AuthorFirst:   r.FormValue("author_first"),
		AuthorMiddle:  r.FormValue("author_middle"),
		AuthorLast:    r.FormValue("author_last"),
	}
	if h.Images == nil || r.MultipartForm == nil {
		return in, nil
	}
	if err := h.Catalog.Authorize(who, cat); err != nil {
		return in, err
	}
	for field, dst := range map[string]*string{"image_en_file": &in.ImageEN, "image_no_file": &in.ImageNO} {
		url, err := h.upload(r, cat, field)
		if err != nil {
			return in, err
		}
		if url != "" {
			*dst = url
		}
	}
	return in, nil
}

func (h *ContentHandler) upload(r *http.Request, cat models.Category, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", errors.Join(errUpload, err)
	}
	defer file.Close()
	if header.Size == 0 {
		return "", nil
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", errors.Join(catalog.ErrInvalid, errors.New("only images can be uploaded"))
	}
	url, err := h.Images.Upload(r.Context(), cat, header.Filename, file, contentType)
	if err != nil {
		return "", errors.Join(errUpload, err)
	}
	h.Logger.Info("image uploaded", "category", cat, "field", field, "url", url)
	return url, nil
}

// Lookup returns ISBN metadata as JSON for the admin's add-book form.
func (h *ContentHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := h.Catalog.Authorize(middleware.IdentityFromContext(r.Context()), models.CategoryBooks); err != nil {
		status, _ := writeError(err)
		http.Error(w, `{"error":"forbidden"}`, status)
		return
	}
	if h.Books == nil {
		http.Error(w, `{"error":"lookup not configured"}`, http.StatusServiceUnavailable)
		return
	}
	meta, err := h.Books.Lookup(r.Context(), r.URL.Query().Get("isbn"))
	if errors.Is(err, service.ErrBookNotFound) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		h.Logger.Warn("isbn lookup failed", "error", err)
		http.Error(w, `{"error":"lookup failed"}`, http.StatusBadGateway)
		return
	}
	_ = json.NewEncoder(w).Encode(meta)
}
