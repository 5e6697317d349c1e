// Package views renders the site's server-side HTML pages from embedded templates.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/kevinaaaquil/portfolio/backend/auth"
	"github.com/kevinaaaquil/portfolio/backend/locale"
	"github.com/kevinaaaquil/portfolio/backend/models"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

//go:embed templates
var templatesFS embed.FS

// Static links shown on every page.
const (
	FooterLogo = "https://www.solheim.online/Kianosh%20F.%20Solheim%20Heraldry.svg"
	FlagNO     = "https://upload.wikimedia.org/wikipedia/commons/d/d9/Flag_of_Norway.svg"
	FlagEN     = "https://flagcdn.com/gb.svg"
)

type SocialLink struct {
	Title string
	URL   string
	Icon  string
}

var SocialLinks = []SocialLink{
	{"Facebook", "https://www.facebook.com/solheim.online/", "fa-brands fa-facebook"},
	{"Instagram", "https://www.instagram.com/solheim.online", "fa-brands fa-instagram"},
	{"LinkedIn", "https://www.linkedin.com/in/kianosh-solheim", "fa-brands fa-linkedin"},
	{"Bluesky", "https://bsky.app/profile/solheim.online", "fa-brands fa-bluesky"},
	{"Threads", "https://www.threads.net/@solheim.online", "fa-brands fa-threads"},
	{"Twitter", "https://x.com/Kianosh_Solheim", "fa-brands fa-twitter"},
}

var sanitizer = bluemonday.UGCPolicy()

// Page is the data every template receives. Data holds the page-specific part.
type Page struct {
	Lang     locale.Lang
	Identity *auth.Identity
	// Path is the current request URI; the language toggle sends the visitor back to it.
	Path   string
	Title  string
	Error  string
	Notice string
	Year   int
	Data   any
}

func (p Page) IsAdmin() bool { return p.Identity.IsAdmin() }

// LoggedIn reports whether the visitor signed in with an account.
func (p Page) LoggedIn() bool { return p.Identity != nil && !p.Identity.Anonymous }

type Renderer struct {
	templates map[string]*template.Template
	catalog   *locale.Catalog
	now       func() time.Time
}

func New(catalog *locale.Catalog) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		catalog:   catalog,
		now:       time.Now,
	}
	if err := r.parseTemplates(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) parseTemplates() error {
	partials, err := fs.Glob(templatesFS, "templates/partials/*.html")
	if err != nil {
		return fmt.Errorf("listing partials: %w", err)
	}
	pages, err := fs.Glob(templatesFS, "templates/pages/*.html")
	if err != nil {
		return fmt.Errorf("listing pages: %w", err)
	}
	for _, p := range pages {
		name := strings.TrimSuffix(path.Base(p), ".html")
		files := append([]string{"templates/layouts/base.html"}, partials...)
		files = append(files, p)
		tmpl, err := template.New("").Funcs(r.funcs()).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}
	return nil
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"t": func(l locale.Lang, key string, args ...any) string {
			return r.catalog.T(l, key, args...)
		},
		"ct": func(l locale.Lang, cat models.Category, key string) string {
			return r.catalog.T(l, "category."+string(cat)+"."+key)
		},
		"pick":     locale.Pick,
		"markdown": Markdown,
		"toggle":   func(l locale.Lang) locale.Lang { return l.Toggle() },
		"flag": func(l locale.Lang) string {
			// the button shows the language you switch to
			if l == locale.NO {
				return FlagEN
			}
			return FlagNO
		},
		"footerLogo": func() string { return FooterLogo },
		"social":     func() []SocialLink { return SocialLinks },
	}
}

// Markdown renders item descriptions. The output is sanitized, so stored HTML cannot inject script.
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}

// Render executes the named page into a buffer first, so a template error never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	if page.Year == 0 {
		page.Year = r.now().Year()
	}
	if page.Lang == "" {
		page.Lang = locale.Default
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", page); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}
