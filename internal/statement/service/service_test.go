package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordsrecord/internal/statement/models"
	"wordsrecord/internal/statement/store"
	id "wordsrecord/pkg/domain"
	dErrors "wordsrecord/pkg/domain-errors"
)

func TestCreateStatement(t *testing.T) {
	svc := New(store.NewMemory())
	ctx := context.Background()
	personID := id.NewPersonID()

	st, err := svc.Create(ctx, &models.CreateStatementRequest{
		PersonID: personID.String(),
		Body:     "I never said that.",
	})
	require.NoError(t, err)
	assert.Equal(t, models.TypeStatement, st.Type)
	assert.Equal(t, personID, st.PersonID)
	assert.Nil(t, st.ResponseTo)
}

func TestCreateStatementEmptyBody(t *testing.T) {
	svc := New(store.NewMemory())
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CreateStatementRequest{
		PersonID: id.NewPersonID().String(),
		Body:     "   ",
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestCreateResponseRequiresTarget(t *testing.T) {
	svc := New(store.NewMemory())
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CreateStatementRequest{
		PersonID: id.NewPersonID().String(),
		Type:     "response",
		Body:     "That quote is fabricated.",
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func TestCreateResponseUnknownTarget(t *testing.T) {
	svc := New(store.NewMemory())
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CreateStatementRequest{
		PersonID:   id.NewPersonID().String(),
		Type:       "response",
		Body:       "That quote is fabricated.",
		ResponseTo: id.NewStatementID().String(),
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestCreateResponseChain(t *testing.T) {
	svc := New(store.NewMemory())
	ctx := context.Background()

	original, err := svc.Create(ctx, &models.CreateStatementRequest{
		PersonID: id.NewPersonID().String(),
		Body:     "The policy speaks for itself.",
	})
	require.NoError(t, err)

	response, err := svc.Create(ctx, &models.CreateStatementRequest{
		PersonID:   id.NewPersonID().String(),
		Type:       "response",
		Body:       "It does not.",
		ResponseTo: original.ID.String(),
	})
	require.NoError(t, err)
	require.NotNil(t, response.ResponseTo)
	assert.Equal(t, original.ID, *response.ResponseTo)
}

func TestUpdateStatementBody(t *testing.T) {
	svc := New(store.NewMemory())
	ctx := context.Background()

	st, err := svc.Create(ctx, &models.CreateStatementRequest{
		PersonID: id.NewPersonID().String(),
		Body:     "Original wording.",
	})
	require.NoError(t, err)

	body := "Corrected wording."
	updated, err := svc.Update(ctx, st.ID, &models.UpdateStatementRequest{Body: &body})
	require.NoError(t, err)
	assert.Equal(t, "Corrected wording.", updated.Body)
}

func TestDeleteStatement(t *testing.T) {
	svc := New(store.NewMemory())
	ctx := context.Background()

	st, err := svc.Create(ctx, &models.CreateStatementRequest{
		PersonID: id.NewPersonID().String(),
		Body:     "To be removed.",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, st.ID))

	_, err = svc.Get(ctx, st.ID)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestListByIncident(t *testing.T) {
	svc := New(store.NewMemory())
	ctx := context.Background()
	incidentID := id.NewIncidentID()

	_, err := svc.Create(ctx, &models.CreateStatementRequest{
		PersonID:   id.NewPersonID().String(),
		IncidentID: incidentID.String(),
		Body:       "On the record.",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.CreateStatementRequest{
		PersonID: id.NewPersonID().String(),
		Body:     "Unrelated remark.",
	})
	require.NoError(t, err)

	statements, err := svc.ListByIncident(ctx, incidentID)
	require.NoError(t, err)
	require.Len(t, statements, 1)
	assert.Equal(t, "On the record.", statements[0].Body)
}
