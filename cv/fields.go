package cv

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kevinaaaquil/portfolio/backend/models"
)

var sectionFields = map[Section][]string{
	SectionEducation: {
		"institution_en", "institution_no", "degree_en", "degree_no", "date",
		"thesis_en", "thesis_no", "supervisor_en", "supervisor_no", "courses_en", "courses_no", "logo",
	},
	SectionExperience: {
		"company_en", "company_no", "position_en", "position_no", "date",
		"description_en", "description_no", "logo",
	},
	SectionRoles: {
		"organization_en", "organization_no", "role_en", "role_no", "date",
		"description_en", "description_no", "logo",
	},
	SectionSkills: {"name_en", "name_no", "type", "icon", "image", "flags"},
}

// PersonalFields are the editable personal detail keys.
var PersonalFields = []string{"born", "languages_en", "languages_no"}

// Fields lists the form keys an entry of the section accepts, in display order.
func (s Section) Fields() []string {
	return sectionFields[s]
}

// Entry is a section entry flattened to form values.
type Entry struct {
	ID     string
	Values models.Fields
}

// Entries flattens the section of doc for the editor. Skill flags are joined with ", ".
func Entries(doc *models.CV, sec Section) ([]Entry, error) {
	if doc == nil {
		return nil, nil
	}
	switch sec {
	case SectionEducation:
		return toEntries(doc.Education)
	case SectionExperience:
		return toEntries(doc.Experience)
	case SectionRoles:
		return toEntries(doc.Roles)
	case SectionSkills:
		return toEntries(doc.Skills)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSection, sec)
}

func toEntries[T interface{ EntryID() string }](list []T) ([]Entry, error) {
	out := make([]Entry, 0, len(list))
	for _, e := range list {
		raw, err := json.Marshal(e)
		if err != nil {
			return nil, err
		}
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
		values := make(models.Fields, len(m))
		for k, v := range m {
			switch v := v.(type) {
			case string:
				values[k] = v
			case []any:
				parts := make([]string, 0, len(v))
				for _, p := range v {
					parts = append(parts, fmt.Sprint(p))
				}
				values[k] = strings.Join(parts, ", ")
			}
		}
		out = append(out, Entry{ID: e.EntryID(), Values: values})
	}
	return out, nil
}
