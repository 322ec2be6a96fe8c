//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"wordsrecord/internal/nationality/models"
	"wordsrecord/internal/nationality/store"
	id "wordsrecord/pkg/domain"
	"wordsrecord/pkg/platform/sentinel"
	"wordsrecord/pkg/testutil/containers"
)

type PostgresFactStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
	personID id.PersonID
}

func TestPostgresFactStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresFactStoreSuite))
}

func (s *PostgresFactStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresFactStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateModuleTables(ctx))
	s.personID = s.postgres.CreateTestPerson(ctx, s.T())
}

func (s *PostgresFactStoreSuite) newFact(code string, factType models.Type, primary bool) *models.Fact {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.Fact{
		ID:          id.NewFactID(),
		PersonID:    s.personID,
		CountryCode: code,
		Type:        factType,
		IsPrimary:   primary,
		Confidence:  100,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *PostgresFactStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	f := s.newFact("IL", models.TypeCitizenship, true)
	s.Require().NoError(s.store.Create(ctx, f))

	got, err := s.store.FindByID(ctx, f.ID)
	s.Require().NoError(err)
	s.Equal("IL", got.CountryCode)
	s.Equal(models.TypeCitizenship, got.Type)
	s.True(got.IsPrimary)
	s.Nil(got.EndDate)
}

func (s *PostgresFactStoreSuite) TestActivePrimaryCitizenshipIndex() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.newFact("IL", models.TypeCitizenship, true)))

	err := s.store.Create(ctx, s.newFact("FR", models.TypeCitizenship, true))
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}

func (s *PostgresFactStoreSuite) TestActiveCountryTypeIndex() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.newFact("IL", models.TypeCitizenship, false)))

	err := s.store.Create(ctx, s.newFact("IL", models.TypeCitizenship, false))
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}

func (s *PostgresFactStoreSuite) TestClosedFactFreesIndexSlot() {
	ctx := context.Background()
	f := s.newFact("IL", models.TypeCitizenship, true)
	s.Require().NoError(s.store.Create(ctx, f))

	end := time.Now().UTC()
	f.EndDate = &end
	f.IsPrimary = false
	s.Require().NoError(s.store.Update(ctx, f))

	s.Require().NoError(s.store.Create(ctx, s.newFact("IL", models.TypeCitizenship, true)))
}

func (s *PostgresFactStoreSuite) TestListActiveOrdering() {
	ctx := context.Background()

	residency := s.newFact("US", models.TypeResidencyStatus, false)
	residency.DisplayOrder = 0
	s.Require().NoError(s.store.Create(ctx, residency))

	secondary := s.newFact("FR", models.TypeCitizenship, false)
	secondary.DisplayOrder = 2
	s.Require().NoError(s.store.Create(ctx, secondary))

	primary := s.newFact("IL", models.TypeCitizenship, true)
	primary.DisplayOrder = 5
	s.Require().NoError(s.store.Create(ctx, primary))

	closed := s.newFact("GB", models.TypeCitizenship, false)
	end := time.Now().UTC()
	closed.EndDate = &end
	s.Require().NoError(s.store.Create(ctx, closed))

	active, err := s.store.ListActiveByPerson(ctx, s.personID)
	s.Require().NoError(err)
	s.Require().Len(active, 3)
	// Primary citizenship first despite the highest display order.
	s.Equal("IL", active[0].CountryCode)
	s.Equal("US", active[1].CountryCode)
	s.Equal("FR", active[2].CountryCode)

	all, err := s.store.ListByPerson(ctx, s.personID)
	s.Require().NoError(err)
	s.Len(all, 4)
}
