package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/kevinaaaquil/portfolio/backend/middleware"
	"github.com/kevinaaaquil/portfolio/backend/service"
	"github.com/kevinaaaquil/portfolio/backend/views"
)

// ContactHandler serves the landing page and its contact form.
type ContactHandler struct {
	Base
	Relay   service.Relay
	Captcha *service.Captcha
	// SiteKey is the public reCAPTCHA key; empty hides the widget.
	SiteKey string
}

func (h *ContactHandler) home(w http.ResponseWriter, r *http.Request, status int, data views.HomeData) {
	data.RecaptchaSiteKey = h.SiteKey
	h.render(w, r, status, "home", h.page(r, h.t(r, "site.name"), data))
}

func (h *ContactHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.home(w, r, http.StatusOK, views.HomeData{})
}

// Send relays the form. The fields are kept on failure and cleared on success.
func (h *ContactHandler) Send(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.home(w, r, http.StatusBadRequest, views.HomeData{Status: h.t(r, "error.invalid")})
		return
	}
	form := views.ContactForm{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Email:   strings.TrimSpace(r.PostFormValue("email")),
		Message: strings.TrimSpace(r.PostFormValue("message")),
	}
	msg := service.ContactMessage{
		Name:         form.Name,
		Email:        form.Email,
		Message:      form.Message,
		CaptchaToken: r.PostFormValue(service.CaptchaField),
	}
	if err := msg.Validate(); err != nil {
		h.Logger.Debug("contact form invalid", "error", err)
		h.home(w, r, http.StatusUnprocessableEntity, views.HomeData{Contact: form, Status: h.t(r, "contact.invalid")})
		return
	}

	if h.Captcha.Enabled() {
		if err := h.Captcha.Verify(r.Context(), msg.CaptchaToken, middleware.ClientIP(r)); err != nil {
			h.Logger.Warn("contact captcha rejected", "error", err)
			h.home(w, r, http.StatusBadRequest, views.HomeData{Contact: form, Status: h.t(r, "contact.captcha")})
			return
		}
	}

	if h.Relay == nil {
		h.home(w, r, http.StatusServiceUnavailable, views.HomeData{Contact: form, Status: h.t(r, "contact.failed")})
		return
	}
	if err := h.Relay.Send(r.Context(), msg); err != nil {
		status, text := http.StatusBadGateway, h.t(r, "contact.failed")
		var rerr *service.RelayError
		switch {
		case errors.As(err, &rerr) && len(rerr.Messages) > 0:
			text = h.t(r, "contact.error", strings.Join(rerr.Messages, ", "))
		case errors.Is(err, service.ErrRelayUnreachable):
			status, text = http.StatusServiceUnavailable, h.t(r, "contact.network")
		}
		h.Logger.Warn("contact message not sent", "error", err)
		h.home(w, r, status, views.HomeData{Contact: form, Status: text})
		return
	}
	h.Logger.Info("contact message sent")
	h.home(w, r, http.StatusOK, views.HomeData{Status: h.t(r, "contact.sent"), Sent: true})
}
