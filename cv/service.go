// Package cv resolves the CV singleton for display and runs the admin's edit sessions.
package cv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/kevinaaaquil/portfolio/backend/auth"
	"github.com/kevinaaaquil/portfolio/backend/models"
)

// timeLayout matches JavaScript's Date.toISOString, the format stored documents already use.
const timeLayout = "2006-01-02T15:04:05.000Z"

var (
	ErrNoData         = errors.New("no CV data available")
	ErrForbidden      = auth.ErrForbidden
	ErrUnavailable    = errors.New("cv store unavailable")
	ErrNoDraft        = errors.New("no CV edit in progress")
	ErrUnknownSection = errors.New("unknown CV section")
	ErrEntryNotFound  = errors.New("CV entry not found")
)

// Section names an editable list in the CV.
type Section string

const (
	SectionEducation  Section = "education"
	SectionExperience Section = "experience"
	SectionRoles      Section = "roles"
	SectionSkills     Section = "skills"
)

var Sections = []Section{SectionEducation, SectionExperience, SectionRoles, SectionSkills}

func ParseSection(s string) (Section, error) {
	for _, sec := range Sections {
		if string(sec) == s {
			return sec, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSection, s)
}

type DocStore interface {
	PutCV(ctx context.Context, cv *models.CV) error
}

// Publisher receives every document this package writes; contentsync.Hub implements it.
type Publisher interface {
	PublishCV(cv *models.CV)
}

type Service struct {
	store  DocStore
	pub    Publisher
	logger *slog.Logger
	now    func() time.Time

	mu     sync.Mutex
	drafts map[string]*models.CV
}

// NewService builds the CV service. store may be nil when no database is configured.
func NewService(store DocStore, pub Publisher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  store,
		pub:    pub,
		logger: logger,
		now:    time.Now,
		drafts: make(map[string]*models.CV),
	}
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// Resolve decides what the CV page shows for who, given the mirror's latest state.
// A missing document is created from Template for the admin; an empty one is repaired.
// Visitors never cause a write and get ErrNoData when there is no document.
func (s *Service) Resolve(ctx context.Context, who *auth.Identity, doc *models.CV, exists bool) (*models.CV, error) {
	if !exists {
		if !who.IsAdmin() {
			return nil, ErrNoData
		}
		return s.writeTemplate(ctx, "missing")
	}
	if doc.IsEmpty() && who.IsAdmin() {
		return s.writeTemplate(ctx, "empty")
	}
	return doc, nil
}

func (s *Service) writeTemplate(ctx context.Context, reason string) (*models.CV, error) {
	if s.store == nil {
		return nil, ErrUnavailable
	}
	doc := Template(s.now())
	if err := s.store.PutCV(ctx, doc); err != nil {
		s.logger.Error("writing cv template failed", "reason", reason, "error", err)
		return nil, fmt.Errorf("writing cv template: %w", err)
	}
	s.logger.Info("cv template written", "reason", reason)
	s.publish(doc)
	return doc, nil
}

// Begin starts an edit session for the admin with a deep copy of current.
func (s *Service) Begin(who *auth.Identity, current *models.CV) error {
	if err := auth.Authorize(who); err != nil {
		return err
	}
	draft := current.Clone()
	if draft == nil {
		draft = &models.CV{}
	}
	s.mu.Lock()
	s.drafts[who.UID] = draft
	s.mu.Unlock()
	return nil
}

// Draft returns a copy of who's scratch buffer.
func (s *Service) Draft(who *auth.Identity) (*models.CV, bool) {
	if who == nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[who.UID]
	return d.Clone(), ok
}

func (s *Service) edit(who *auth.Identity, fn func(d *models.CV) error) error {
	if err := auth.Authorize(who); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[who.UID]
	if !ok {
		return ErrNoDraft
	}
	return fn(d)
}

func (s *Service) UpdatePersonal(who *auth.Identity, f models.Fields) error {
	return s.edit(who, func(d *models.CV) error {
		if d.PersonalDetails == nil {
			d.PersonalDetails = &models.PersonalDetails{}
		}
		d.PersonalDetails.Apply(f)
		return nil
	})
}

func (s *Service) UpdateEntry(who *auth.Identity, sec Section, id string, f models.Fields) error {
	return s.edit(who, func(d *models.CV) error {
		var found bool
		switch sec {
		case SectionEducation:
			found = updateEntry(d.Education, id, f)
		case SectionExperience:
			found = updateEntry(d.Experience, id, f)
		case SectionRoles:
			found = updateEntry(d.Roles, id, f)
		case SectionSkills:
			found = updateEntry(d.Skills, id, f)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownSection, sec)
		}
		if !found {
			return ErrEntryNotFound
		}
		return nil
	})
}

// AddEntry appends a new entry built from f and returns its id, a millisecond timestamp.
func (s *Service) AddEntry(who *auth.Identity, sec Section, f models.Fields) (string, error) {
	var id string
	err := s.edit(who, func(d *models.CV) error {
		switch sec {
		case SectionEducation:
			id = newID(s.now(), d.Education)
			e := models.Education{ID: id}
			e.Apply(f)
			d.Education = append(d.Education, e)
		case SectionExperience:
			id = newID(s.now(), d.Experience)
			e := models.Experience{ID: id}
			e.Apply(f)
			d.Experience = append(d.Experience, e)
		case SectionRoles:
			id = newID(s.now(), d.Roles)
			r := models.Role{ID: id}
			r.Apply(f)
			d.Roles = append(d.Roles, r)
		case SectionSkills:
			id = newID(s.now(), d.Skills)
			sk := models.Skill{ID: id, Type: models.SkillIcon}
			sk.Apply(f)
			d.Skills = append(d.Skills, sk)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownSection, sec)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) DeleteEntry(who *auth.Identity, sec Section, id string) error {
	return s.edit(who, func(d *models.CV) error {
		var found bool
		switch sec {
		case SectionEducation:
			d.Education, found = deleteEntry(d.Education, id)
		case SectionExperience:
			d.Experience, found = deleteEntry(d.Experience, id)
		case SectionRoles:
			d.Roles, found = deleteEntry(d.Roles, id)
		case SectionSkills:
			d.Skills, found = deleteEntry(d.Skills, id)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownSection, sec)
		}
		if !found {
			return ErrEntryNotFound
		}
		return nil
	})
}

// Save replaces the stored CV with who's draft, stamped with an updatedAt later than the
// previous one, and ends the session. On failure the draft is kept so the admin can retry.
func (s *Service) Save(ctx context.Context, who *auth.Identity) (*models.CV, error) {
	if err := auth.Authorize(who); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, ErrUnavailable
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[who.UID]
	if !ok {
		return nil, ErrNoDraft
	}

	doc := d.Clone()
	doc.UpdatedAt = s.nextStamp(d.UpdatedAt)
	if err := s.store.PutCV(ctx, doc); err != nil {
		s.logger.Error("saving cv failed", "uid", who.UID, "error", err)
		return nil, fmt.Errorf("saving cv: %w", err)
	}
	delete(s.drafts, who.UID)
	s.logger.Info("cv saved", "uid", who.UID, "updatedAt", doc.UpdatedAt)
	s.publish(doc)
	return doc, nil
}

// Cancel drops who's draft without writing.
func (s *Service) Cancel(who *auth.Identity) {
	if who == nil {
		return
	}
	s.mu.Lock()
	delete(s.drafts, who.UID)
	s.mu.Unlock()
}

func (s *Service) nextStamp(prev string) string {
	now := s.now().UTC().Truncate(time.Millisecond)
	if p, err := time.Parse(time.RFC3339Nano, prev); err == nil && !now.After(p) {
		now = p.UTC().Truncate(time.Millisecond).Add(time.Millisecond)
	}
	return FormatTime(now)
}

func (s *Service) publish(doc *models.CV) {
	if s.pub != nil {
		s.pub.PublishCV(doc)
	}
}

type entryPtr[T any] interface {
	*T
	EntryID() string
	Apply(models.Fields)
}

func updateEntry[T any, PT entryPtr[T]](list []T, id string, f models.Fields) bool {
	for i := range list {
		if p := PT(&list[i]); p.EntryID() == id {
			p.Apply(f)
			return true
		}
	}
	return false
}

func deleteEntry[T any, PT entryPtr[T]](list []T, id string) ([]T, bool) {
	for i := range list {
		if PT(&list[i]).EntryID() == id {
			return append(list[:i:i], list[i+1:]...), true
		}
	}
	return list, false
}

func containsID[T interface{ EntryID() string }](list []T, id string) bool {
	for _, e := range list {
		if e.EntryID() == id {
			return true
		}
	}
	return false
}

// newID returns the millisecond timestamp of now, bumped past any id already in list.
func newID[T interface{ EntryID() string }](now time.Time, list []T) string {
	id := now.UnixMilli()
	for containsID(list, strconv.FormatInt(id, 10)) {
		id++
	}
	return strconv.FormatInt(id, 10)
}
