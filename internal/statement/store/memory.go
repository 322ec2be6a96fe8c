package store

import (
	"context"
	"sort"
	"sync"

	"wordsrecord/internal/statement/models"
	id "wordsrecord/pkg/domain"
	"wordsrecord/pkg/platform/sentinel"
)

// Memory is an in-memory statement store for tests and local development.
type Memory struct {
	mu         sync.RWMutex
	statements map[id.StatementID]*models.Statement
}

func NewMemory() *Memory {
	return &Memory{statements: make(map[id.StatementID]*models.Statement)}
}

func (m *Memory) Create(_ context.Context, st *models.Statement) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.statements[st.ID]; exists {
		return sentinel.ErrConflict
	}
	m.statements[st.ID] = cloneStatement(st)
	return nil
}

func (m *Memory) Update(_ context.Context, st *models.Statement) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.statements[st.ID]; !exists {
		return sentinel.ErrNotFound
	}
	m.statements[st.ID] = cloneStatement(st)
	return nil
}

func (m *Memory) Delete(_ context.Context, statementID id.StatementID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.statements[statementID]; !exists {
		return sentinel.ErrNotFound
	}
	delete(m.statements, statementID)
	return nil
}

func (m *Memory) FindByID(_ context.Context, statementID id.StatementID) (*models.Statement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st, ok := m.statements[statementID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneStatement(st), nil
}

func (m *Memory) ListByPerson(_ context.Context, personID id.PersonID) ([]*models.Statement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*models.Statement
	for _, st := range m.statements {
		if st.PersonID == personID {
			out = append(out, cloneStatement(st))
		}
	}
	sortStatements(out)
	return out, nil
}

func (m *Memory) ListByIncident(_ context.Context, incidentID id.IncidentID) ([]*models.Statement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*models.Statement
	for _, st := range m.statements {
		if st.IncidentID != nil && *st.IncidentID == incidentID {
			out = append(out, cloneStatement(st))
		}
	}
	sortStatements(out)
	return out, nil
}

func (m *Memory) CountByPerson(_ context.Context, personID id.PersonID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, st := range m.statements {
		if st.PersonID == personID {
			count++
		}
	}
	return count, nil
}

// CountIncidentsByPerson counts the distinct incidents the person has
// statements in.
func (m *Memory) CountIncidentsByPerson(_ context.Context, personID id.PersonID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[id.IncidentID]bool)
	for _, st := range m.statements {
		if st.PersonID == personID && st.IncidentID != nil {
			seen[*st.IncidentID] = true
		}
	}
	return len(seen), nil
}

func cloneStatement(st *models.Statement) *models.Statement {
	cp := *st
	if st.IncidentID != nil {
		v := *st.IncidentID
		cp.IncidentID = &v
	}
	if st.SourceID != nil {
		v := *st.SourceID
		cp.SourceID = &v
	}
	if st.ResponseTo != nil {
		v := *st.ResponseTo
		cp.ResponseTo = &v
	}
	if st.SaidAt != nil {
		v := *st.SaidAt
		cp.SaidAt = &v
	}
	return &cp
}

func sortStatements(sts []*models.Statement) {
	sort.Slice(sts, func(i, j int) bool {
		return sts[i].CreatedAt.Before(sts[j].CreatedAt)
	})
}
