package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kevinaaaquil/portfolio/backend/models"
)

const GoogleBooksURL = "https://www.googleapis.com/books/v1/volumes"

var ErrBookNotFound = errors.New("no volume found for isbn")

type volumesResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo struct {
			Title               string   `json:"title"`
			Subtitle            string   `json:"subtitle"`
			Authors             []string `json:"authors"`
			Description         string   `json:"description"`
			IndustryIdentifiers []struct {
				Type       string `json:"type"`
				Identifier string `json:"identifier"`
			} `json:"industryIdentifiers"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// BookMetadata prefills the add-book form.
type BookMetadata struct {
	ISBN        string        `json:"isbn"`
	Title       string        `json:"title"`
	Author      models.Author `json:"author"`
	Description string        `json:"description"`
	CoverURL    string        `json:"cover_url,omitempty"`
}

type BookLookup struct {
	baseURL string
	client  *http.Client
}

// NewBookLookup queries the Google Books volumes API at baseURL (GoogleBooksURL when empty).
func NewBookLookup(baseURL string, client *http.Client) *BookLookup {
	if baseURL == "" {
		baseURL = GoogleBooksURL
	}
	if client == nil {
		// slow responses must not hold up the admin form
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &BookLookup{baseURL: baseURL, client: client}
}

func (b *BookLookup) Lookup(ctx context.Context, isbn string) (*BookMetadata, error) {
	isbn = strings.ReplaceAll(strings.TrimSpace(isbn), "-", "")
	if isbn == "" {
		return nil, fmt.Errorf("isbn is required")
	}
	q := url.Values{}
	q.Set("q", "isbn:"+isbn)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google books returned %d", resp.StatusCode)
	}
	var data volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}
	if data.TotalItems == 0 || len(data.Items) == 0 {
		return nil, fmt.Errorf("%w %s", ErrBookNotFound, isbn)
	}

	vi := data.Items[0].VolumeInfo
	meta := &BookMetadata{
		ISBN:        isbn,
		Title:       vi.Title,
		Description: strings.TrimSpace(vi.Description),
	}
	if vi.Subtitle != "" {
		meta.Title += ": " + vi.Subtitle
	}
	if len(vi.Authors) > 0 {
		meta.Author = SplitAuthor(vi.Authors[0])
	}
	for _, id := range vi.IndustryIdentifiers {
		if id.Type == "ISBN_13" || id.Type == "ISBN_10" {
			meta.ISBN = id.Identifier
			break
		}
	}
	// Google Books image links often sit behind a captcha; Open Library serves covers by ISBN directly.
	meta.CoverURL = openLibraryCoverURL(meta.ISBN, "L")
	return meta, nil
}

// SplitAuthor turns "Ayaan Hirsi Ali" into first "Ayaan", middle "Hirsi", last "Ali".
// A single name is treated as the last name.
func SplitAuthor(name string) models.Author {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return models.Author{}
	case 1:
		return models.Author{Last: parts[0]}
	}
	return models.Author{
		First:  parts[0],
		Middle: strings.Join(parts[1:len(parts)-1], " "),
		Last:   parts[len(parts)-1],
	}
}

// openLibraryCoverURL returns a cover image URL by ISBN. size is S, M or L.
func openLibraryCoverURL(isbn, size string) string {
	clean := strings.ReplaceAll(strings.TrimSpace(isbn), "-", "")
	if clean == "" {
		return ""
	}
	return "https://covers.openlibrary.org/b/isbn/" + url.PathEscape(clean) + "-" + size + ".jpg"
}
