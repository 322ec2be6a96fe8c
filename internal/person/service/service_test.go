package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordsrecord/internal/audit"
	auditmemory "wordsrecord/internal/audit/memory"
	"wordsrecord/internal/person/models"
	"wordsrecord/internal/person/store"
	id "wordsrecord/pkg/domain"
	dErrors "wordsrecord/pkg/domain-errors"
)

func newTestService(t *testing.T) (*Service, *auditmemory.Sink) {
	t.Helper()
	sink := auditmemory.NewSink()
	svc := New(store.NewMemory(), WithAuditPublisher(audit.NewPublisher(sink)))
	return svc, sink
}

func TestCreatePerson(t *testing.T) {
	svc, sink := newTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, &models.CreatePersonRequest{FullName: "Ada Lovelace"})
	require.NoError(t, err)
	assert.Equal(t, "ada-lovelace", p.Slug)
	assert.False(t, p.ID.IsNil())
	assert.Nil(t, p.NationalityPrimaryCode)

	events := sink.ByAction(audit.EventPersonCreated)
	require.Len(t, events, 1)
	assert.Equal(t, p.ID.String(), events[0].EntityID)
}

func TestCreatePersonValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CreatePersonRequest{FullName: "   "})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestCreatePersonSlugConflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CreatePersonRequest{FullName: "Ada Lovelace"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &models.CreatePersonRequest{FullName: "Ada Lovelace"})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestGetPerson(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CreatePersonRequest{FullName: "Ada Lovelace"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	bySlug, err := svc.GetBySlug(ctx, "ada-lovelace")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)
}

func TestGetPersonNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, id.NewPersonID())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = svc.Get(ctx, id.PersonID{})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestUpdatePerson(t *testing.T) {
	svc, sink := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CreatePersonRequest{FullName: "Ada Lovelace"})
	require.NoError(t, err)

	bio := "Mathematician and writer"
	updated, err := svc.Update(ctx, created.ID, &models.UpdatePersonRequest{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, "ada-lovelace", updated.Slug)

	require.Len(t, sink.ByAction(audit.EventPersonUpdated), 1)
}

func TestUpdatePersonEmptyName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CreatePersonRequest{FullName: "Ada Lovelace"})
	require.NoError(t, err)

	empty := ""
	_, err = svc.Update(ctx, created.ID, &models.UpdatePersonRequest{FullName: &empty})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestDeletePerson(t *testing.T) {
	svc, sink := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CreatePersonRequest{FullName: "Ada Lovelace"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	require.Len(t, sink.ByAction(audit.EventPersonDeleted), 1)
}

func TestListPersons(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"Ada Lovelace", "Charles Babbage", "Alan Turing"} {
		_, err := svc.Create(ctx, &models.CreatePersonRequest{FullName: name})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	page, err := svc.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)
}
