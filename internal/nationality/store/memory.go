package store

import (
	"context"
	"sort"
	"sync"

	"wordsrecord/internal/nationality/models"
	id "wordsrecord/pkg/domain"
	"wordsrecord/pkg/platform/sentinel"
)

// Memory is an in-memory fact store for tests and local development.
type Memory struct {
	mu    sync.RWMutex
	facts map[id.FactID]*models.Fact
}

func NewMemory() *Memory {
	return &Memory{facts: make(map[id.FactID]*models.Fact)}
}

func (m *Memory) Create(_ context.Context, f *models.Fact) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.facts[f.ID]; exists {
		return sentinel.ErrConflict
	}
	m.facts[f.ID] = cloneFact(f)
	return nil
}

func (m *Memory) Update(_ context.Context, f *models.Fact) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.facts[f.ID]; !exists {
		return sentinel.ErrNotFound
	}
	m.facts[f.ID] = cloneFact(f)
	return nil
}

func (m *Memory) FindByID(_ context.Context, factID id.FactID) (*models.Fact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.facts[factID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneFact(f), nil
}

// ListActiveByPerson returns the person's active facts in precedence
// order: primary citizenship first, then display order, type, creation
// time.
func (m *Memory) ListActiveByPerson(_ context.Context, personID id.PersonID) ([]*models.Fact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*models.Fact
	for _, f := range m.facts {
		if f.PersonID == personID && f.IsActive() {
			out = append(out, cloneFact(f))
		}
	}
	SortByPrecedence(out)
	return out, nil
}

func (m *Memory) ListByPerson(_ context.Context, personID id.PersonID) ([]*models.Fact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*models.Fact
	for _, f := range m.facts {
		if f.PersonID == personID {
			out = append(out, cloneFact(f))
		}
	}
	SortByPrecedence(out)
	return out, nil
}

// SortByPrecedence orders facts by the primary-selection tie-break
// policy. Exported so service tests can assert against the same order
// the stores produce.
func SortByPrecedence(facts []*models.Fact) {
	sort.SliceStable(facts, func(i, j int) bool {
		a, b := facts[i], facts[j]
		aPrimaryCitizenship := a.IsPrimary && a.Type == models.TypeCitizenship
		bPrimaryCitizenship := b.IsPrimary && b.Type == models.TypeCitizenship
		if aPrimaryCitizenship != bPrimaryCitizenship {
			return aPrimaryCitizenship
		}
		if a.DisplayOrder != b.DisplayOrder {
			return a.DisplayOrder < b.DisplayOrder
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

func cloneFact(f *models.Fact) *models.Fact {
	cp := *f
	if f.Acquisition != nil {
		v := *f.Acquisition
		cp.Acquisition = &v
	}
	if f.StartDate != nil {
		v := *f.StartDate
		cp.StartDate = &v
	}
	if f.EndDate != nil {
		v := *f.EndDate
		cp.EndDate = &v
	}
	if f.SourceID != nil {
		v := *f.SourceID
		cp.SourceID = &v
	}
	return &cp
}
