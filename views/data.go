package views

import (
	"github.com/kevinaaaquil/portfolio/backend/catalog"
	"github.com/kevinaaaquil/portfolio/backend/cv"
	"github.com/kevinaaaquil/portfolio/backend/locale"
	"github.com/kevinaaaquil/portfolio/backend/models"
)

type ContactForm struct {
	Name    string
	Email   string
	Message string
}

type HomeData struct {
	Contact          ContactForm
	Status           string
	Sent             bool
	RecaptchaSiteKey string
}

// LiveStream points a page at the event stream of the state it was rendered from. The page
// reloads on the first event carrying a different Version.
type LiveStream struct {
	URL     string
	Version uint64
}

type RecommendationsData struct {
	Categories []models.Category
}

type CategoryData struct {
	Category models.Category
	Items    []locale.Item
	Loaded   bool
	Form     catalog.Input
	// EditID is set while the admin edits an existing item.
	EditID  string
	Uploads bool
	Live    LiveStream
}

type DetailData struct {
	Category models.Category
	Item     locale.Item
}

type CVData struct {
	CV           locale.CV
	PDFEnglish   string
	PDFNorwegian string
	Live         LiveStream
}

// CVSection is one editable section of the draft.
type CVSection struct {
	Section cv.Section
	Fields  []string
	Entries []cv.Entry
}

type CVEditData struct {
	Personal       models.Fields
	PersonalFields []string
	Sections       []CVSection
}

type AuthData struct {
	Email  string
	Signup bool
}
