package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kevinaaaquil/portfolio/backend/contentsync"
	"github.com/kevinaaaquil/portfolio/backend/locale"
	"github.com/kevinaaaquil/portfolio/backend/middleware"
	"github.com/kevinaaaquil/portfolio/backend/models"
)

const keepAliveInterval = 25 * time.Second

// APIHandler exposes the mirrored collections and CV as JSON and as server-sent events.
// It never writes; a missing CV is reported, not created.
type APIHandler struct {
	Hub    *contentsync.Hub
	Logger *slog.Logger
}

type itemsPayload struct {
	Category models.Category `json:"category"`
	Lang     locale.Lang     `json:"lang"`
	Loaded   bool            `json:"loaded"`
	Version  uint64          `json:"version"`
	Items    []locale.Item   `json:"items"`
}

type cvPayload struct {
	Lang    locale.Lang `json:"lang"`
	Loaded  bool        `json:"loaded"`
	Version uint64      `json:"version"`
	Exists  bool        `json:"exists"`
	CV      *locale.CV  `json:"cv,omitempty"`
}

// apiLang lets ?lang override the cookie and Accept-Language.
func apiLang(r *http.Request) locale.Lang {
	if l, ok := locale.Parse(r.URL.Query().Get("lang")); ok {
		return l
	}
	return middleware.LangFromContext(r.Context())
}

func itemsBody(s contentsync.Snapshot, l locale.Lang) itemsPayload {
	return itemsPayload{
		Category: s.Category,
		Lang:     l,
		Loaded:   s.Loaded,
		Version:  s.Version,
		Items:    locale.LocalizeItems(s.Items, s.Category, l),
	}
}

func cvBody(s contentsync.CVSnapshot, l locale.Lang) cvPayload {
	p := cvPayload{Lang: l, Loaded: s.Loaded, Version: s.Version, Exists: s.Exists}
	if p.Exists {
		doc := locale.LocalizeCV(s.CV, l)
		p.CV = &doc
	}
	return p
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *APIHandler) Items(w http.ResponseWriter, r *http.Request) {
	cat, ok := models.ParseCategory(chi.URLParam(r, "category"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown category"})
		return
	}
	writeJSON(w, http.StatusOK, itemsBody(h.Hub.Items(cat), apiLang(r)))
}

func (h *APIHandler) CV(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, cvBody(h.Hub.CV(), apiLang(r)))
}

// ItemEvents streams a "snapshot" event for the current state and every change after it.
func (h *APIHandler) ItemEvents(w http.ResponseWriter, r *http.Request) {
	cat, ok := models.ParseCategory(chi.URLParam(r, "category"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown category"})
		return
	}
	ch, cancel := h.Hub.Subscribe(cat)
	defer cancel()
	l := apiLang(r)
	stream(r.Context(), w, h.Logger, ch, func(s contentsync.Snapshot) any { return itemsBody(s, l) })
}

func (h *APIHandler) CVEvents(w http.ResponseWriter, r *http.Request) {
	ch, cancel := h.Hub.SubscribeCV()
	defer cancel()
	l := apiLang(r)
	stream(r.Context(), w, h.Logger, ch, func(s contentsync.CVSnapshot) any { return cvBody(s, l) })
}

func stream[T any](ctx context.Context, w http.ResponseWriter, logger *slog.Logger, ch <-chan T, body func(T) any) {
	rc := http.NewResponseController(w)
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
		case v, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(body(v))
			if err != nil {
				logger.Error("encoding snapshot failed", "error", err)
				return
			}
			if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			logger.Debug("event stream closed", "error", err)
			return
		}
	}
}
