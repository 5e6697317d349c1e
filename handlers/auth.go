package handlers

import (
	"net/http"
	"strings"

	"github.com/kevinaaaquil/portfolio/backend/auth"
	"github.com/kevinaaaquil/portfolio/backend/middleware"
	"github.com/kevinaaaquil/portfolio/backend/views"
)

type AuthHandler struct {
	Base
	Gateway *auth.Gateway
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.form(w, r, http.StatusOK, views.AuthData{}, "")
}

func (h *AuthHandler) SignupPage(w http.ResponseWriter, r *http.Request) {
	h.form(w, r, http.StatusOK, views.AuthData{Signup: true}, "")
}

func (h *AuthHandler) form(w http.ResponseWriter, r *http.Request, status int, data views.AuthData, errMsg string) {
	key := "nav.login"
	if data.Signup {
		key = "nav.signup"
	}
	p := h.page(r, h.t(r, key), data)
	p.Error = errMsg
	h.render(w, r, status, "auth", p)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.form(w, r, http.StatusBadRequest, views.AuthData{}, h.t(r, "error.invalid"))
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	sess, err := h.Gateway.Login(r.Context(), email, r.PostFormValue("password"))
	if err != nil {
		h.failed(w, r, "login", views.AuthData{Email: email}, err)
		return
	}
	h.Logger.Info("signed in", "uid", sess.Identity.UID, "role", sess.Identity.Role)
	middleware.SetSessionCookie(w, sess, h.Secure)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	data := views.AuthData{Signup: true}
	if err := r.ParseForm(); err != nil {
		h.form(w, r, http.StatusBadRequest, data, h.t(r, "error.invalid"))
		return
	}
	data.Email = strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	if password != r.PostFormValue("confirm_password") {
		h.form(w, r, http.StatusBadRequest, data, h.t(r, "auth.password_mismatch"))
		return
	}
	sess, err := h.Gateway.Signup(r.Context(), data.Email, password)
	if err != nil {
		h.failed(w, r, "signup", data, err)
		return
	}
	middleware.SetSessionCookie(w, sess, h.Secure)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout revokes the current token and drops the cookie. The next request starts a new
// anonymous session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(middleware.SessionCookie); err == nil && c.Value != "" {
		if err := h.Gateway.Logout(r.Context(), c.Value); err != nil {
			h.Logger.Error("revoking session failed", "error", err)
		}
	}
	middleware.ClearSessionCookie(w, h.Secure)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) failed(w http.ResponseWriter, r *http.Request, op string, data views.AuthData, err error) {
	status := http.StatusBadRequest
	switch auth.Code(err) {
	case auth.CodeInvalidCredential:
		status = http.StatusUnauthorized
	case auth.CodeOperationNotAllowed:
		status = http.StatusForbidden
	case auth.CodeInternal:
		status = http.StatusInternalServerError
		h.Logger.Error(op+" failed", "error", err)
	}
	msg := h.Messages.AuthError(middleware.LangFromContext(r.Context()), op, err)
	h.form(w, r, status, data, msg)
}
