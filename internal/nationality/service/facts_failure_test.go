package service_test

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks FactStore,PersonCacheStore,StoreTx,AuditPublisher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"wordsrecord/internal/nationality/models"
	"wordsrecord/internal/nationality/service"
	"wordsrecord/internal/nationality/service/mocks"
	natstore "wordsrecord/internal/nationality/store"
	id "wordsrecord/pkg/domain"
	dErrors "wordsrecord/pkg/domain-errors"
	"wordsrecord/pkg/platform/sentinel"
)

// Storage failures must propagate to the caller unmodified in meaning:
// wrapped with context but keeping an internal error code, never
// silently downgraded or retried.

func TestUpsertStorageFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	facts := mocks.NewMockFactStore(ctrl)
	persons := mocks.NewMockPersonCacheStore(ctrl)
	svc := service.New(service.NewMemoryStoreTx(facts, persons), facts, persons)

	personID := id.NewPersonID()
	storageErr := errors.New("connection reset")

	persons.EXPECT().LockForUpdate(gomock.Any(), personID).Return(nil)
	facts.EXPECT().ListActiveByPerson(gomock.Any(), personID).Return(nil, nil)
	facts.EXPECT().Create(gomock.Any(), gomock.Any()).Return(storageErr)

	_, err := svc.Upsert(ctx, &models.UpsertFactRequest{
		PersonID: personID.String(), Country: "IL", Type: "citizenship",
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	assert.ErrorIs(t, err, storageErr)
}

func TestUpsertCacheWriteFailureAbortsTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	facts := mocks.NewMockFactStore(ctrl)
	persons := mocks.NewMockPersonCacheStore(ctrl)
	svc := service.New(service.NewMemoryStoreTx(facts, persons), facts, persons)

	personID := id.NewPersonID()

	persons.EXPECT().LockForUpdate(gomock.Any(), personID).Return(nil)
	facts.EXPECT().ListActiveByPerson(gomock.Any(), personID).Return(nil, nil).Times(2)
	facts.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	persons.EXPECT().UpdateNationalityCache(gomock.Any(), personID, gomock.Any(), gomock.Any()).
		Return(sentinel.ErrNotFound)

	_, err := svc.Upsert(ctx, &models.UpsertFactRequest{
		PersonID: personID.String(), Country: "IL", Type: "citizenship",
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestUpsertConcurrentUniqueViolation(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	facts := mocks.NewMockFactStore(ctrl)
	persons := mocks.NewMockPersonCacheStore(ctrl)
	svc := service.New(service.NewMemoryStoreTx(facts, persons), facts, persons)

	personID := id.NewPersonID()

	persons.EXPECT().LockForUpdate(gomock.Any(), personID).Return(nil)
	facts.EXPECT().ListActiveByPerson(gomock.Any(), personID).Return(nil, nil)
	// Partial unique index fires for a write that validation could not see.
	facts.EXPECT().Create(gomock.Any(), gomock.Any()).Return(sentinel.ErrConflict)

	_, err := svc.Upsert(ctx, &models.UpsertFactRequest{
		PersonID: personID.String(), Country: "IL", Type: "citizenship", IsPrimary: true,
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestCloseAuditFailureDoesNotFailOperation(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	facts := natstore.NewMemory()
	persons := mocks.NewMockPersonCacheStore(ctrl)
	publisher := mocks.NewMockAuditPublisher(ctrl)
	svc := service.New(service.NewMemoryStoreTx(facts, persons), facts, persons,
		service.WithAuditPublisher(publisher))

	personID := id.NewPersonID()
	persons.EXPECT().LockForUpdate(gomock.Any(), personID).Return(nil).AnyTimes()
	persons.EXPECT().UpdateNationalityCache(gomock.Any(), personID, gomock.Any(), gomock.Any()).
		Return(nil).AnyTimes()
	publisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("audit buffer full")).Times(2)

	res, err := svc.Upsert(ctx, &models.UpsertFactRequest{
		PersonID: personID.String(), Country: "IL", Type: "citizenship",
	})
	require.NoError(t, err)

	_, err = svc.Close(ctx, res.Fact.ID, nil)
	require.NoError(t, err)
}
