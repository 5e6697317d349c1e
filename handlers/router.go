package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/kevinaaaquil/portfolio/backend/auth"
	"github.com/kevinaaaquil/portfolio/backend/catalog"
	"github.com/kevinaaaquil/portfolio/backend/contentsync"
	"github.com/kevinaaaquil/portfolio/backend/cv"
	"github.com/kevinaaaquil/portfolio/backend/locale"
	"github.com/kevinaaaquil/portfolio/backend/middleware"
	"github.com/kevinaaaquil/portfolio/backend/service"
	"github.com/kevinaaaquil/portfolio/backend/views"
)

// Deps is everything the router wires into handlers. Images, Books, Relay and Captcha are
// optional.
type Deps struct {
	Views    *views.Renderer
	Messages *locale.Catalog
	Logger   *slog.Logger
	Secure   bool

	Gateway *auth.Gateway
	Hub     *contentsync.Hub
	Catalog *catalog.Service
	CV      *cv.Service

	Images  ImageUploader
	Books   BookLooker
	Relay   service.Relay
	Captcha *service.Captcha

	RecaptchaSiteKey string
	PDFEnglish       string
	PDFNorwegian     string
	MaxUploadBytes   int64

	CSRFKey        []byte
	TrustedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func NewRouter(d Deps) http.Handler {
	base := Base{Views: d.Views, Messages: d.Messages, Logger: d.Logger, Secure: d.Secure}
	pages := &PageHandler{Base: base}
	contact := &ContactHandler{Base: base, Relay: d.Relay, Captcha: d.Captcha, SiteKey: d.RecaptchaSiteKey}
	authH := &AuthHandler{Base: base, Gateway: d.Gateway}
	content := &ContentHandler{Base: base, Hub: d.Hub, Catalog: d.Catalog, Images: d.Images, Books: d.Books, MaxBytes: d.MaxUploadBytes}
	cvH := &CVHandler{Base: base, Hub: d.Hub, CV: d.CV, PDFEnglish: d.PDFEnglish, PDFNorwegian: d.PDFNorwegian}
	api := &APIHandler{Hub: d.Hub, Logger: d.Logger}
	limiter := middleware.NewRateLimiter(d.RateLimitRPS, d.RateLimitBurst, http.HandlerFunc(base.RateLimited), d.Logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(chimw.Recoverer)

	r.Get("/health", Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.PublicRead())
		r.Use(middleware.Language())
		r.Get("/cv", api.CV)
		r.Get("/cv/events", api.CVEvents)
		r.Get("/{category}", api.Items)
		r.Get("/{category}/events", api.ItemEvents)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRF(d.CSRFKey, d.TrustedOrigins, http.HandlerFunc(base.CSRFRejected), d.Logger))
		r.Use(middleware.Session(d.Gateway, d.Secure, d.Logger))
		r.Use(middleware.Language())

		r.Get("/", contact.Home)
		r.With(limiter.Middleware).Post("/contact", contact.Send)
		r.Get("/recommendations", pages.Recommendations)
		r.Get("/lang/toggle", pages.LangToggle)

		r.Get("/login", authH.LoginPage)
		r.With(limiter.Middleware).Post("/login", authH.Login)
		r.Get("/signup", authH.SignupPage)
		r.With(limiter.Middleware).Post("/signup", authH.Signup)
		r.Post("/logout", authH.Logout)

		r.Get("/cv", cvH.Show)
		r.Route("/cv/edit", func(r chi.Router) {
			r.Get("/", cvH.EditPage)
			r.Post("/", cvH.Begin)
			r.Post("/personal", cvH.UpdatePersonal)
			r.Post("/{section}", cvH.AddEntry)
			r.Post("/{section}/{id}", cvH.UpdateEntry)
			r.Post("/{section}/{id}/delete", cvH.DeleteEntry)
		})
		r.Post("/cv/save", cvH.Save)
		r.Post("/cv/cancel", cvH.Cancel)

		r.Get("/detail", content.Detail)
		r.Get("/books/lookup", content.Lookup)
		r.Route("/{category}", func(r chi.Router) {
			r.Get("/", content.List)
			r.Post("/", content.Create)
			r.Get("/{id}/edit", content.Edit)
			r.Post("/{id}", content.Update)
			r.Post("/{id}/delete", content.Delete)
		})

		r.NotFound(base.NotFound)
	})

	return r
}
