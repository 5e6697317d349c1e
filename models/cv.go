package models

import (
	"slices"
	"strings"
)

// SkillMedia is the discriminator for how a skill is illustrated.
type SkillMedia string

const (
	SkillIcon  SkillMedia = "icon"
	SkillImage SkillMedia = "image"
	SkillFlags SkillMedia = "flags"
)

type PersonalDetails struct {
	Born        string `bson:"born,omitempty" json:"born,omitempty"`
	LanguagesEN string `bson:"languages_en,omitempty" json:"languages_en,omitempty"`
	LanguagesNO string `bson:"languages_no,omitempty" json:"languages_no,omitempty"`
	UpdatedAt   string `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

type Education struct {
	ID            string `bson:"id" json:"id"`
	InstitutionEN string `bson:"institution_en,omitempty" json:"institution_en,omitempty"`
	InstitutionNO string `bson:"institution_no,omitempty" json:"institution_no,omitempty"`
	DegreeEN      string `bson:"degree_en,omitempty" json:"degree_en,omitempty"`
	DegreeNO      string `bson:"degree_no,omitempty" json:"degree_no,omitempty"`
	Date          string `bson:"date,omitempty" json:"date,omitempty"`
	ThesisEN      string `bson:"thesis_en,omitempty" json:"thesis_en,omitempty"`
	ThesisNO      string `bson:"thesis_no,omitempty" json:"thesis_no,omitempty"`
	SupervisorEN  string `bson:"supervisor_en,omitempty" json:"supervisor_en,omitempty"`
	SupervisorNO  string `bson:"supervisor_no,omitempty" json:"supervisor_no,omitempty"`
	CoursesEN     string `bson:"courses_en,omitempty" json:"courses_en,omitempty"`
	CoursesNO     string `bson:"courses_no,omitempty" json:"courses_no,omitempty"`
	Logo          string `bson:"logo,omitempty" json:"logo,omitempty"`
}

type Experience struct {
	ID            string `bson:"id" json:"id"`
	CompanyEN     string `bson:"company_en,omitempty" json:"company_en,omitempty"`
	CompanyNO     string `bson:"company_no,omitempty" json:"company_no,omitempty"`
	PositionEN    string `bson:"position_en,omitempty" json:"position_en,omitempty"`
	PositionNO    string `bson:"position_no,omitempty" json:"position_no,omitempty"`
	Date          string `bson:"date,omitempty" json:"date,omitempty"`
	DescriptionEN string `bson:"description_en,omitempty" json:"description_en,omitempty"`
	DescriptionNO string `bson:"description_no,omitempty" json:"description_no,omitempty"`
	Logo          string `bson:"logo,omitempty" json:"logo,omitempty"`
}

type Role struct {
	ID             string `bson:"id" json:"id"`
	OrganizationEN string `bson:"organization_en,omitempty" json:"organization_en,omitempty"`
	OrganizationNO string `bson:"organization_no,omitempty" json:"organization_no,omitempty"`
	RoleEN         string `bson:"role_en,omitempty" json:"role_en,omitempty"`
	RoleNO         string `bson:"role_no,omitempty" json:"role_no,omitempty"`
	Date           string `bson:"date,omitempty" json:"date,omitempty"`
	DescriptionEN  string `bson:"description_en,omitempty" json:"description_en,omitempty"`
	DescriptionNO  string `bson:"description_no,omitempty" json:"description_no,omitempty"`
	Logo           string `bson:"logo,omitempty" json:"logo,omitempty"`
}

type Skill struct {
	ID     string     `bson:"id" json:"id"`
	NameEN string     `bson:"name_en,omitempty" json:"name_en,omitempty"`
	NameNO string     `bson:"name_no,omitempty" json:"name_no,omitempty"`
	Type   SkillMedia `bson:"type,omitempty" json:"type,omitempty"`
	Icon   string     `bson:"icon,omitempty" json:"icon,omitempty"`
	Image  string     `bson:"image,omitempty" json:"image,omitempty"`
	Flags  []string   `bson:"flags,omitempty" json:"flags,omitempty"`
}

// CV is the singleton curriculum vitae document.
type CV struct {
	PersonalDetails *PersonalDetails `bson:"personalDetails,omitempty" json:"personalDetails,omitempty"`
	Education       []Education      `bson:"education,omitempty" json:"education,omitempty"`
	Experience      []Experience     `bson:"experience,omitempty" json:"experience,omitempty"`
	Roles           []Role           `bson:"roles,omitempty" json:"roles,omitempty"`
	Skills          []Skill          `bson:"skills,omitempty" json:"skills,omitempty"`
	UpdatedAt       string           `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// IsEmpty reports whether the document has no fields at all, as a stored `{}` decodes.
func (c *CV) IsEmpty() bool {
	return c == nil || (c.PersonalDetails == nil && len(c.Education) == 0 && len(c.Experience) == 0 &&
		len(c.Roles) == 0 && len(c.Skills) == 0 && c.UpdatedAt == "")
}

// Clone returns a deep copy.
func (c *CV) Clone() *CV {
	if c == nil {
		return nil
	}
	out := &CV{
		Education:  slices.Clone(c.Education),
		Experience: slices.Clone(c.Experience),
		Roles:      slices.Clone(c.Roles),
		Skills:     slices.Clone(c.Skills),
		UpdatedAt:  c.UpdatedAt,
	}
	for i := range out.Skills {
		out.Skills[i].Flags = slices.Clone(out.Skills[i].Flags)
	}
	if c.PersonalDetails != nil {
		pd := *c.PersonalDetails
		out.PersonalDetails = &pd
	}
	return out
}

// Fields holds form values keyed by the document's field names (institution_en, logo, ...).
// Keys that are absent leave the target field untouched.
type Fields map[string]string

func (f Fields) set(dst *string, key string) {
	if v, ok := f[key]; ok {
		*dst = strings.TrimSpace(v)
	}
}

func (p *PersonalDetails) Apply(f Fields) {
	f.set(&p.Born, "born")
	f.set(&p.LanguagesEN, "languages_en")
	f.set(&p.LanguagesNO, "languages_no")
}

func (e Education) EntryID() string { return e.ID }

func (e *Education) Apply(f Fields) {
	f.set(&e.InstitutionEN, "institution_en")
	f.set(&e.InstitutionNO, "institution_no")
	f.set(&e.DegreeEN, "degree_en")
	f.set(&e.DegreeNO, "degree_no")
	f.set(&e.Date, "date")
	f.set(&e.ThesisEN, "thesis_en")
	f.set(&e.ThesisNO, "thesis_no")
	f.set(&e.SupervisorEN, "supervisor_en")
	f.set(&e.SupervisorNO, "supervisor_no")
	f.set(&e.CoursesEN, "courses_en")
	f.set(&e.CoursesNO, "courses_no")
	f.set(&e.Logo, "logo")
}

func (e Experience) EntryID() string { return e.ID }

func (e *Experience) Apply(f Fields) {
	f.set(&e.CompanyEN, "company_en")
	f.set(&e.CompanyNO, "company_no")
	f.set(&e.PositionEN, "position_en")
	f.set(&e.PositionNO, "position_no")
	f.set(&e.Date, "date")
	f.set(&e.DescriptionEN, "description_en")
	f.set(&e.DescriptionNO, "description_no")
	f.set(&e.Logo, "logo")
}

func (r Role) EntryID() string { return r.ID }

func (r *Role) Apply(f Fields) {
	f.set(&r.OrganizationEN, "organization_en")
	f.set(&r.OrganizationNO, "organization_no")
	f.set(&r.RoleEN, "role_en")
	f.set(&r.RoleNO, "role_no")
	f.set(&r.Date, "date")
	f.set(&r.DescriptionEN, "description_en")
	f.set(&r.DescriptionNO, "description_no")
	f.set(&r.Logo, "logo")
}

func (s Skill) EntryID() string { return s.ID }

// Apply sets skill fields. flags is a comma or newline separated list of image URLs.
func (s *Skill) Apply(f Fields) {
	f.set(&s.NameEN, "name_en")
	f.set(&s.NameNO, "name_no")
	f.set(&s.Icon, "icon")
	f.set(&s.Image, "image")
	if v, ok := f["type"]; ok {
		s.Type = SkillMedia(strings.TrimSpace(v))
	}
	if v, ok := f["flags"]; ok {
		s.Flags = nil
		for _, u := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == '\n' || r == '\r' }) {
			if u = strings.TrimSpace(u); u != "" {
				s.Flags = append(s.Flags, u)
			}
		}
	}
}
