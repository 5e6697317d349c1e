package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kevinaaaquil/portfolio/backend/auth"
)

//go:embed locales
var localesFS embed.FS

type message struct {
	ID          string `json:"id"`
	Translation string `json:"translation"`
}

type messageFile struct {
	Language string    `json:"language"`
	Messages []message `json:"messages"`
}

// Catalog maps message ids to translations for every supported language.
type Catalog struct {
	translations map[Lang]map[string]string
	logger       *slog.Logger
}

// NewCatalog loads the embedded message files.
func NewCatalog(logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Catalog{translations: make(map[Lang]map[string]string), logger: logger}
	for _, l := range Supported {
		if err := c.load(l); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustCatalog is NewCatalog for callers that cannot run without translations.
func MustCatalog(logger *slog.Logger) *Catalog {
	c, err := NewCatalog(logger)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) load(l Lang) error {
	path := fmt.Sprintf("locales/%s.json", l)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	var f messageFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	m := make(map[string]string, len(f.Messages))
	for _, msg := range f.Messages {
		m[msg.ID] = msg.Translation
	}
	c.translations[l] = m
	return nil
}

// T translates key, falling back to English and then to the key itself.
func (c *Catalog) T(l Lang, key string, args ...any) string {
	s, ok := c.translations[l][key]
	if !ok {
		if s, ok = c.translations[Default][key]; ok {
			c.logger.Debug("missing translation", "key", key, "lang", l)
		} else {
			s = key
		}
	}
	if len(args) > 0 {
		return fmt.Sprintf(s, args...)
	}
	return s
}

// Has reports whether key exists in l without falling back.
func (c *Catalog) Has(l Lang, key string) bool {
	_, ok := c.translations[l][key]
	return ok
}

// AuthError renders a login or signup failure. op is "login" or "signup".
func (c *Catalog) AuthError(l Lang, op string, err error) string {
	code := auth.Code(err)
	if code == auth.CodeOperationNotAllowed {
		return c.T(l, "auth."+op+"_disabled")
	}
	detail := c.T(l, "auth.code."+strings.TrimPrefix(code, "auth/"))
	return c.T(l, "auth."+op+"_failed", detail)
}
