package store

import (
	"context"
	"strings"
	"sync"

	"github.com/kevinaaaquil/portfolio/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-process document store with the same surface as DB. It backs
// STORE_DRIVER=memory for local runs and the package tests across the repo.
type Memory struct {
	mu       sync.RWMutex
	items    map[models.Category]map[string]models.Item
	users    map[string]models.User
	cv       *models.CV
	watchers map[string]map[int]func()
	nextID   int
}

func NewMemory() *Memory {
	m := &Memory{
		items:    make(map[models.Category]map[string]models.Item),
		users:    make(map[string]models.User),
		watchers: make(map[string]map[int]func()),
	}
	for _, c := range models.Categories {
		m.items[c] = make(map[string]models.Item)
	}
	return m
}

func copyItem(it models.Item) models.Item {
	if it.Author != nil {
		a := *it.Author
		it.Author = &a
	}
	if it.CreatedAt != nil {
		t := *it.CreatedAt
		it.CreatedAt = &t
	}
	if it.UpdatedAt != nil {
		t := *it.UpdatedAt
		it.UpdatedAt = &t
	}
	return it
}

func (m *Memory) InsertItem(ctx context.Context, cat models.Category, item *models.Item) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	doc := copyItem(*item)
	if doc.ID == "" {
		doc.ID = primitive.NewObjectID().Hex()
	}
	m.mu.Lock()
	if _, exists := m.items[cat][doc.ID]; exists {
		m.mu.Unlock()
		return "", ErrDuplicate
	}
	m.items[cat][doc.ID] = doc
	m.mu.Unlock()
	m.notify(string(cat))
	return doc.ID, nil
}

// Items returns the collection in no particular order; callers sort.
func (m *Memory) Items(ctx context.Context, cat models.Category) ([]models.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Item, 0, len(m.items[cat]))
	for _, it := range m.items[cat] {
		out = append(out, copyItem(it))
	}
	return out, nil
}

func (m *Memory) Item(ctx context.Context, cat models.Category, id string) (*models.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.items[cat][id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := copyItem(it)
	return &cp, nil
}

func (m *Memory) UpdateItem(ctx context.Context, cat models.Category, id string, item *models.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	cur, ok := m.items[cat][id]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	upd := copyItem(*item)
	cur.TitleEN, cur.TitleNO = upd.TitleEN, upd.TitleNO
	cur.ImageEN, cur.ImageNO = upd.ImageEN, upd.ImageNO
	cur.DescriptionEN, cur.DescriptionNO = upd.DescriptionEN, upd.DescriptionNO
	if upd.Author != nil {
		cur.Author = upd.Author
	}
	cur.UpdatedAt = upd.UpdatedAt
	m.items[cat][id] = cur
	m.mu.Unlock()
	m.notify(string(cat))
	return nil
}

func (m *Memory) DeleteItem(ctx context.Context, cat models.Category, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	if _, ok := m.items[cat][id]; !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	delete(m.items[cat], id)
	m.mu.Unlock()
	m.notify(string(cat))
	return nil
}

func (m *Memory) CV(ctx context.Context) (*models.CV, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cv == nil {
		return nil, ErrNotFound
	}
	return m.cv.Clone(), nil
}

func (m *Memory) PutCV(ctx context.Context, cv *models.CV) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.cv = cv.Clone()
	if m.cv == nil {
		m.cv = &models.CV{}
	}
	m.mu.Unlock()
	m.notify(CVTopic)
	return nil
}

func (m *Memory) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *Memory) CreateUser(ctx context.Context, user *models.User) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return "", ErrDuplicate
		}
	}
	doc := *user
	if doc.ID == "" {
		doc.ID = primitive.NewObjectID().Hex()
	}
	m.users[doc.ID] = doc
	return doc.ID, nil
}

// Watch registers notify for topic, calls ready, and blocks until ctx is done.
func (m *Memory) Watch(ctx context.Context, topic string, ready, notify func()) error {
	m.mu.Lock()
	if m.watchers[topic] == nil {
		m.watchers[topic] = make(map[int]func())
	}
	id := m.nextID
	m.nextID++
	m.watchers[topic][id] = notify
	m.mu.Unlock()
	signal(ready)

	<-ctx.Done()

	m.mu.Lock()
	delete(m.watchers[topic], id)
	m.mu.Unlock()
	return nil
}

// notify runs watchers outside the lock; they usually read the store back.
func (m *Memory) notify(topic string) {
	m.mu.RLock()
	fns := make([]func(), 0, len(m.watchers[topic]))
	for _, fn := range m.watchers[topic] {
		fns = append(fns, fn)
	}
	m.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}
