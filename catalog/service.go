// Package catalog implements the admin-only writes to the movie, app, book and podcast
// collections. Every operation runs auth.Authorize first.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kevinaaaquil/portfolio/backend/auth"
	"github.com/kevinaaaquil/portfolio/backend/models"
	"github.com/kevinaaaquil/portfolio/backend/store"
)

var (
	ErrForbidden   = auth.ErrForbidden
	ErrUnavailable = errors.New("content store unavailable")
	ErrInvalid     = errors.New("invalid item")
	ErrNotFound    = store.ErrNotFound
)

type ItemStore interface {
	InsertItem(ctx context.Context, cat models.Category, item *models.Item) (string, error)
	Item(ctx context.Context, cat models.Category, id string) (*models.Item, error)
	UpdateItem(ctx context.Context, cat models.Category, id string, item *models.Item) error
	DeleteItem(ctx context.Context, cat models.Category, id string) error
}

// Refresher is told about every successful write; contentsync.Hub implements it.
type Refresher interface {
	Refresh(ctx context.Context, cat models.Category)
}

type Service struct {
	items  ItemStore
	sync   Refresher
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires the write path. items may be nil when no store is configured; every
// write then fails with ErrUnavailable. sync may be nil.
func NewService(items ItemStore, sync Refresher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{items: items, sync: sync, logger: logger, now: time.Now}
}

func (s *Service) gate(who *auth.Identity, op string, cat models.Category) error {
	if err := auth.Authorize(who); err != nil {
		uid := ""
		if who != nil {
			uid = who.UID
		}
		s.logger.Warn("write rejected", "op", op, "category", cat, "uid", uid)
		return err
	}
	if s.items == nil {
		s.logger.Error("write skipped, no store", "op", op, "category", cat)
		return ErrUnavailable
	}
	if _, ok := models.ParseCategory(string(cat)); !ok {
		return fmt.Errorf("%w: unknown category %q", ErrInvalid, cat)
	}
	return nil
}

// Authorize runs the write gate alone. Handlers call it before side effects such as image uploads.
func (s *Service) Authorize(who *auth.Identity, cat models.Category) error {
	return s.gate(who, "authorize", cat)
}

func (s *Service) Add(ctx context.Context, who *auth.Identity, cat models.Category, in Input) (*models.Item, error) {
	if err := s.gate(who, "add", cat); err != nil {
		return nil, err
	}
	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	item := in.item(cat)
	now := s.now().UTC()
	item.CreatedAt = &now
	item.CreatedBy = who.UID
	id, err := s.items.InsertItem(ctx, cat, item)
	if err != nil {
		s.logger.Error("adding item failed", "category", cat, "error", err)
		return nil, fmt.Errorf("adding %s item: %w", cat, err)
	}
	item.ID = id
	s.logger.Info("item added", "category", cat, "id", id)
	s.refresh(ctx, cat)
	return item, nil
}

// Edit loads an item into an edit buffer. Nothing is written.
func (s *Service) Edit(ctx context.Context, who *auth.Identity, cat models.Category, id string) (Input, error) {
	if err := s.gate(who, "edit", cat); err != nil {
		return Input{}, err
	}
	item, err := s.items.Item(ctx, cat, id)
	if err != nil {
		return Input{}, err
	}
	return InputFromItem(item), nil
}

// Update replaces every editable field of the item and stamps updatedAt.
func (s *Service) Update(ctx context.Context, who *auth.Identity, cat models.Category, id string, in Input) error {
	if err := s.gate(who, "update", cat); err != nil {
		return err
	}
	in.normalize()
	if err := in.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	item := in.item(cat)
	if cat.HasAuthor() && item.Author == nil {
		item.Author = &models.Author{}
	}
	now := s.now().UTC()
	item.UpdatedAt = &now
	if err := s.items.UpdateItem(ctx, cat, id, item); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Error("updating item failed", "category", cat, "id", id, "error", err)
		}
		return fmt.Errorf("updating %s/%s: %w", cat, id, err)
	}
	s.logger.Info("item updated", "category", cat, "id", id)
	s.refresh(ctx, cat)
	return nil
}

// Delete removes the item immediately.
func (s *Service) Delete(ctx context.Context, who *auth.Identity, cat models.Category, id string) error {
	if err := s.gate(who, "delete", cat); err != nil {
		return err
	}
	if err := s.items.DeleteItem(ctx, cat, id); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Error("deleting item failed", "category", cat, "id", id, "error", err)
		}
		return fmt.Errorf("deleting %s/%s: %w", cat, id, err)
	}
	s.logger.Info("item deleted", "category", cat, "id", id)
	s.refresh(ctx, cat)
	return nil
}

func (s *Service) refresh(ctx context.Context, cat models.Category) {
	if s.sync != nil {
		s.sync.Refresh(ctx, cat)
	}
}
