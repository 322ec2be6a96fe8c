package store

import (
	"context"
	"sort"
	"sync"

	"wordsrecord/internal/incident/models"
	id "wordsrecord/pkg/domain"
	"wordsrecord/pkg/platform/sentinel"
)

// Memory is an in-memory incident store for tests and local development.
type Memory struct {
	mu     sync.RWMutex
	byID   map[id.IncidentID]*models.Incident
	bySlug map[string]id.IncidentID
}

func NewMemory() *Memory {
	return &Memory{
		byID:   make(map[id.IncidentID]*models.Incident),
		bySlug: make(map[string]id.IncidentID),
	}
}

func (m *Memory) Create(_ context.Context, in *models.Incident) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[in.ID]; exists {
		return sentinel.ErrConflict
	}
	if _, exists := m.bySlug[in.Slug]; exists {
		return sentinel.ErrConflict
	}
	cp := *in
	m.byID[in.ID] = &cp
	m.bySlug[in.Slug] = in.ID
	return nil
}

func (m *Memory) Update(_ context.Context, in *models.Incident) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[in.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if other, taken := m.bySlug[in.Slug]; taken && other != in.ID {
		return sentinel.ErrConflict
	}
	if existing.Slug != in.Slug {
		delete(m.bySlug, existing.Slug)
		m.bySlug[in.Slug] = in.ID
	}
	cp := *in
	m.byID[in.ID] = &cp
	return nil
}

func (m *Memory) FindByID(_ context.Context, incidentID id.IncidentID) (*models.Incident, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	in, ok := m.byID[incidentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *in
	return &cp, nil
}

func (m *Memory) FindBySlug(_ context.Context, slug string) (*models.Incident, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	incidentID, ok := m.bySlug[slug]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *m.byID[incidentID]
	return &cp, nil
}

func (m *Memory) List(_ context.Context, limit, offset int) ([]*models.Incident, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*models.Incident, 0, len(m.byID))
	for _, in := range m.byID {
		cp := *in
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []*models.Incident{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}
