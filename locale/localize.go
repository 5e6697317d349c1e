package locale

import (
	"fmt"
	"time"

	"github.com/kevinaaaquil/portfolio/backend/models"
)

// Image placeholders for items without any image.
const (
	PlaceholderSquare = "https://placehold.co/300x300/eeeeee/333333?text=No+Image"
	PlaceholderTall   = "https://placehold.co/300x450/eeeeee/333333?text=No+Image"
	PlaceholderDetail = "https://placehold.co/400x600/eeeeee/333333?text=No+Image"
	PlaceholderLogo   = "https://placehold.co/80x80/eeeeee/333333?text=Logo"
)

// Pick returns the value for l, or the other language's value when that one is empty.
func Pick(l Lang, en, no string) string {
	if l == NO {
		if no != "" {
			return no
		}
		return en
	}
	if en != "" {
		return en
	}
	return no
}

// PickImage is Pick with a placeholder for when neither language has an image.
func PickImage(l Lang, en, no, placeholder string) string {
	if img := Pick(l, en, no); img != "" {
		return img
	}
	return placeholder
}

func logo(src string) string {
	if src == "" {
		return PlaceholderLogo
	}
	return src
}

// Item is a content record resolved for one language.
type Item struct {
	ID          string          `json:"id"`
	Category    models.Category `json:"category"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	DetailImage string          `json:"detail_image"`
	Author      string          `json:"author,omitempty"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
}

func LocalizeItem(it models.Item, cat models.Category, l Lang) Item {
	tile := PlaceholderSquare
	if cat.Tall() {
		tile = PlaceholderTall
	}
	return Item{
		ID:          it.ID,
		Category:    cat,
		Title:       Pick(l, it.TitleEN, it.TitleNO),
		Description: Pick(l, it.DescriptionEN, it.DescriptionNO),
		Image:       PickImage(l, it.ImageEN, it.ImageNO, tile),
		DetailImage: PickImage(l, it.ImageEN, it.ImageNO, PlaceholderDetail),
		Author:      it.Author.FullName(),
		CreatedAt:   it.CreatedAt,
	}
}

func LocalizeItems(items []models.Item, cat models.Category, l Lang) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		out = append(out, LocalizeItem(it, cat, l))
	}
	return out
}

type Education struct {
	ID, Institution, Degree, Date, Thesis, Supervisor, Courses, Logo string
}

type Experience struct {
	ID, Company, Position, Date, Description, Logo string
}

type Role struct {
	ID, Organization, Role, Date, Description, Logo string
}

type Skill struct {
	ID    string
	Name  string
	Type  models.SkillMedia
	Icon  string
	Image string
	Flags []string
}

// CV is the CV resolved for one language. Updated is already formatted for display.
type CV struct {
	Born       string
	Languages  string
	Updated    string
	Education  []Education
	Experience []Experience
	Roles      []Role
	Skills     []Skill
}

// LocalizeCV resolves doc for l. The top-level updatedAt wins over the personal details
// stamp, which only the template sets.
func LocalizeCV(doc *models.CV, l Lang) CV {
	var out CV
	if doc == nil {
		return out
	}
	stamp := doc.UpdatedAt
	if pd := doc.PersonalDetails; pd != nil {
		out.Born = pd.Born
		out.Languages = Pick(l, pd.LanguagesEN, pd.LanguagesNO)
		if stamp == "" {
			stamp = pd.UpdatedAt
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, stamp); err == nil {
		out.Updated = FormatDate(l, t)
	}
	for _, e := range doc.Education {
		out.Education = append(out.Education, Education{
			ID:          e.ID,
			Institution: Pick(l, e.InstitutionEN, e.InstitutionNO),
			Degree:      Pick(l, e.DegreeEN, e.DegreeNO),
			Date:        e.Date,
			Thesis:      Pick(l, e.ThesisEN, e.ThesisNO),
			Supervisor:  Pick(l, e.SupervisorEN, e.SupervisorNO),
			Courses:     Pick(l, e.CoursesEN, e.CoursesNO),
			Logo:        logo(e.Logo),
		})
	}
	for _, e := range doc.Experience {
		out.Experience = append(out.Experience, Experience{
			ID:          e.ID,
			Company:     Pick(l, e.CompanyEN, e.CompanyNO),
			Position:    Pick(l, e.PositionEN, e.PositionNO),
			Date:        e.Date,
			Description: Pick(l, e.DescriptionEN, e.DescriptionNO),
			Logo:        logo(e.Logo),
		})
	}
	for _, r := range doc.Roles {
		out.Roles = append(out.Roles, Role{
			ID:           r.ID,
			Organization: Pick(l, r.OrganizationEN, r.OrganizationNO),
			Role:         Pick(l, r.RoleEN, r.RoleNO),
			Date:         r.Date,
			Description:  Pick(l, r.DescriptionEN, r.DescriptionNO),
			Logo:         logo(r.Logo),
		})
	}
	for _, s := range doc.Skills {
		out.Skills = append(out.Skills, Skill{
			ID:    s.ID,
			Name:  Pick(l, s.NameEN, s.NameNO),
			Type:  s.Type,
			Icon:  s.Icon,
			Image: s.Image,
			Flags: s.Flags,
		})
	}
	return out
}

var norwegianMonths = [...]string{
	"januar", "februar", "mars", "april", "mai", "juni",
	"juli", "august", "september", "oktober", "november", "desember",
}

// FormatDate renders a long date: "June 1, 2025" or "1. juni 2025".
func FormatDate(l Lang, t time.Time) string {
	if l == NO {
		return fmt.Sprintf("%d. %s %d", t.Day(), norwegianMonths[t.Month()-1], t.Year())
	}
	return t.Format("January 2, 2006")
}
