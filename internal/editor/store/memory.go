package store

import (
	"context"
	"sync"

	"wordsrecord/internal/editor/models"
	id "wordsrecord/pkg/domain"
	"wordsrecord/pkg/platform/sentinel"
)

// Memory is an in-memory editor store for tests and local development.
type Memory struct {
	mu      sync.RWMutex
	byID    map[id.EditorID]*models.Editor
	byEmail map[string]id.EditorID
}

func NewMemory() *Memory {
	return &Memory{
		byID:    make(map[id.EditorID]*models.Editor),
		byEmail: make(map[string]id.EditorID),
	}
}

func (m *Memory) Create(_ context.Context, ed *models.Editor) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[ed.ID]; exists {
		return sentinel.ErrConflict
	}
	if _, exists := m.byEmail[ed.Email]; exists {
		return sentinel.ErrConflict
	}
	cp := *ed
	m.byID[ed.ID] = &cp
	m.byEmail[ed.Email] = ed.ID
	return nil
}

func (m *Memory) Update(_ context.Context, ed *models.Editor) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[ed.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if existing.Email != ed.Email {
		if _, taken := m.byEmail[ed.Email]; taken {
			return sentinel.ErrConflict
		}
		delete(m.byEmail, existing.Email)
		m.byEmail[ed.Email] = ed.ID
	}
	cp := *ed
	m.byID[ed.ID] = &cp
	return nil
}

func (m *Memory) FindByID(_ context.Context, editorID id.EditorID) (*models.Editor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ed, ok := m.byID[editorID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *ed
	return &cp, nil
}

func (m *Memory) FindByEmail(_ context.Context, email string) (*models.Editor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	editorID, ok := m.byEmail[email]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *m.byID[editorID]
	return &cp, nil
}
