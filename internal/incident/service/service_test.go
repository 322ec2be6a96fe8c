package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordsrecord/internal/incident/models"
	"wordsrecord/internal/incident/store"
	id "wordsrecord/pkg/domain"
	dErrors "wordsrecord/pkg/domain-errors"
)

func TestCreateIncident(t *testing.T) {
	svc := New(store.NewMemory())
	ctx := context.Background()

	in, err := svc.Create(ctx, &models.CreateIncidentRequest{Title: "The 2024 Interview"})
	require.NoError(t, err)
	assert.Equal(t, "the-2024-interview", in.Slug)
	assert.Equal(t, models.StatusDraft, in.Status)
}

func TestCreateIncidentUnknownStatus(t *testing.T) {
	svc := New(store.NewMemory())
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CreateIncidentRequest{Title: "X", Status: "confirmed"})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestCreateIncidentSlugConflict(t *testing.T) {
	svc := New(store.NewMemory())
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CreateIncidentRequest{Title: "Same Title"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.CreateIncidentRequest{Title: "Same Title"})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestUpdateIncidentStatus(t *testing.T) {
	svc := New(store.NewMemory())
	ctx := context.Background()

	in, err := svc.Create(ctx, &models.CreateIncidentRequest{Title: "The 2024 Interview"})
	require.NoError(t, err)

	status := "documented"
	updated, err := svc.Update(ctx, in.ID, &models.UpdateIncidentRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDocumented, updated.Status)
}

func TestGetIncidentNotFound(t *testing.T) {
	svc := New(store.NewMemory())
	ctx := context.Background()

	_, err := svc.Get(ctx, id.NewIncidentID())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
