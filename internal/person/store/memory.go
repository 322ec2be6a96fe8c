package store

import (
	"context"
	"sort"
	"sync"

	"wordsrecord/internal/person/models"
	id "wordsrecord/pkg/domain"
	"wordsrecord/pkg/platform/sentinel"
)

// Memory is an in-memory person store for tests and local development.
type Memory struct {
	mu     sync.RWMutex
	byID   map[id.PersonID]*models.Person
	bySlug map[string]id.PersonID
}

func NewMemory() *Memory {
	return &Memory{
		byID:   make(map[id.PersonID]*models.Person),
		bySlug: make(map[string]id.PersonID),
	}
}

func (m *Memory) Create(_ context.Context, p *models.Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[p.ID]; exists {
		return sentinel.ErrConflict
	}
	if _, exists := m.bySlug[p.Slug]; exists {
		return sentinel.ErrConflict
	}

	cp := clonePerson(p)
	m.byID[cp.ID] = cp
	m.bySlug[cp.Slug] = cp.ID
	return nil
}

func (m *Memory) Update(_ context.Context, p *models.Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[p.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if other, taken := m.bySlug[p.Slug]; taken && other != p.ID {
		return sentinel.ErrConflict
	}

	// Cache columns are owned by UpdateNationalityCache; carry them over.
	cp := clonePerson(p)
	cp.NationalityPrimaryCode = existing.NationalityPrimaryCode
	cp.NationalityCodesCached = existing.NationalityCodesCached
	cp.LegacyNationality = existing.LegacyNationality

	if existing.Slug != cp.Slug {
		delete(m.bySlug, existing.Slug)
		m.bySlug[cp.Slug] = cp.ID
	}
	m.byID[cp.ID] = cp
	return nil
}

func (m *Memory) FindByID(_ context.Context, personID id.PersonID) (*models.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.byID[personID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clonePerson(p), nil
}

func (m *Memory) FindBySlug(_ context.Context, slug string) (*models.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	personID, ok := m.bySlug[slug]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clonePerson(m.byID[personID]), nil
}

func (m *Memory) List(_ context.Context, limit, offset int) ([]*models.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*models.Person, 0, len(m.byID))
	for _, p := range m.byID {
		all = append(all, clonePerson(p))
	}
	sortPersonsByCreatedAt(all)

	if offset >= len(all) {
		return []*models.Person{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *Memory) Delete(_ context.Context, personID id.PersonID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.byID[personID]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(m.bySlug, p.Slug)
	delete(m.byID, personID)
	return nil
}

// UpdateNationalityCache replaces the derived nationality columns.
func (m *Memory) UpdateNationalityCache(_ context.Context, personID id.PersonID, primary *string, codes []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.byID[personID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if primary != nil {
		v := *primary
		p.NationalityPrimaryCode = &v
	} else {
		p.NationalityPrimaryCode = nil
	}
	p.NationalityCodesCached = append([]string(nil), codes...)
	return nil
}

// LockForUpdate verifies the person exists. Row-level locking is a
// postgres concern; in memory the caller's mutex discipline suffices.
func (m *Memory) LockForUpdate(_ context.Context, personID id.PersonID) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.byID[personID]; !ok {
		return sentinel.ErrNotFound
	}
	return nil
}

func (m *Memory) ListWithLegacyNationality(_ context.Context) ([]*models.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*models.Person
	for _, p := range m.byID {
		if p.LegacyNationality != nil && *p.LegacyNationality != "" {
			out = append(out, clonePerson(p))
		}
	}
	sortPersonsByCreatedAt(out)
	return out, nil
}

// SetLegacyNationality seeds the legacy free-text column in tests.
func (m *Memory) SetLegacyNationality(_ context.Context, personID id.PersonID, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.byID[personID]
	if !ok {
		return sentinel.ErrNotFound
	}
	p.LegacyNationality = &value
	return nil
}

// ClearLegacyNationality marks a person as migrated.
func (m *Memory) ClearLegacyNationality(_ context.Context, personID id.PersonID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.byID[personID]
	if !ok {
		return sentinel.ErrNotFound
	}
	p.LegacyNationality = nil
	return nil
}

func clonePerson(p *models.Person) *models.Person {
	cp := *p
	if p.NationalityPrimaryCode != nil {
		v := *p.NationalityPrimaryCode
		cp.NationalityPrimaryCode = &v
	}
	cp.NationalityCodesCached = append([]string(nil), p.NationalityCodesCached...)
	if p.LegacyNationality != nil {
		v := *p.LegacyNationality
		cp.LegacyNationality = &v
	}
	return &cp
}

func sortPersonsByCreatedAt(ps []*models.Person) {
	sort.Slice(ps, func(i, j int) bool {
		return ps[i].CreatedAt.Before(ps[j].CreatedAt)
	})
}
