package store

import (
	"context"
	"sort"
	"sync"

	"wordsrecord/internal/source/models"
	id "wordsrecord/pkg/domain"
	"wordsrecord/pkg/platform/sentinel"
)

// Memory is an in-memory source store for tests and local development.
type Memory struct {
	mu      sync.RWMutex
	sources map[id.SourceID]*models.Source
}

func NewMemory() *Memory {
	return &Memory{sources: make(map[id.SourceID]*models.Source)}
}

func (m *Memory) Create(_ context.Context, src *models.Source) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sources[src.ID]; exists {
		return sentinel.ErrConflict
	}
	cp := *src
	m.sources[src.ID] = &cp
	return nil
}

func (m *Memory) Update(_ context.Context, src *models.Source) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sources[src.ID]; !exists {
		return sentinel.ErrNotFound
	}
	cp := *src
	m.sources[src.ID] = &cp
	return nil
}

func (m *Memory) FindByID(_ context.Context, sourceID id.SourceID) (*models.Source, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	src, ok := m.sources[sourceID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *src
	return &cp, nil
}

func (m *Memory) List(_ context.Context, limit, offset int) ([]*models.Source, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*models.Source, 0, len(m.sources))
	for _, src := range m.sources {
		cp := *src
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []*models.Source{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}
