//go:build integration

// End-to-end coverage of the fact write path against real Postgres:
// validation, the transactional write, the cache recompute and the
// partial unique indexes all exercised through the service API the
// handlers call.
package nationality

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	natmodels "wordsrecord/internal/nationality/models"
	natservice "wordsrecord/internal/nationality/service"
	natstore "wordsrecord/internal/nationality/store"
	personstore "wordsrecord/internal/person/store"
	id "wordsrecord/pkg/domain"
	dErrors "wordsrecord/pkg/domain-errors"
	"wordsrecord/pkg/testutil/containers"
)

const txTimeout = 5 * time.Second

// postgresTx mirrors the transaction driver the server wires in main.
type postgresTx struct {
	db *sql.DB
}

func (t *postgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context, stores natservice.TxStores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, txTimeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stores := natservice.TxStores{
		Facts:   natstore.NewPostgresTx(tx),
		Persons: personstore.NewPostgresTx(tx),
	}
	if err := fn(ctx, stores); err != nil {
		return err
	}
	return tx.Commit()
}

type UpsertFlowSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	persons  *personstore.Postgres
	svc      *natservice.Service
	personID id.PersonID
}

func TestUpsertFlowSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UpsertFlowSuite))
}

func (s *UpsertFlowSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.persons = personstore.NewPostgres(s.postgres.DB)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.svc = natservice.New(
		&postgresTx{db: s.postgres.DB},
		natstore.NewPostgres(s.postgres.DB),
		s.persons,
		natservice.WithLogger(logger),
	)
}

func (s *UpsertFlowSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateModuleTables(ctx))
	s.personID = s.postgres.CreateTestPerson(ctx, s.T())
}

func (s *UpsertFlowSuite) upsert(req *natmodels.UpsertFactRequest) *natmodels.UpsertResult {
	res, err := s.svc.Upsert(context.Background(), req)
	s.Require().NoError(err)
	return res
}

func (s *UpsertFlowSuite) cacheColumns() (*string, []string) {
	p, err := s.persons.FindByID(context.Background(), s.personID)
	s.Require().NoError(err)
	return p.NationalityPrimaryCode, p.NationalityCodesCached
}

func (s *UpsertFlowSuite) TestUpsertRecomputesCache() {
	res := s.upsert(&natmodels.UpsertFactRequest{
		PersonID:  s.personID.String(),
		Country:   "Israel",
		Type:      "citizenship",
		IsPrimary: true,
	})
	s.True(res.Created)
	s.Equal("IL", res.Fact.CountryCode)

	primary, codes := s.cacheColumns()
	s.Require().NotNil(primary)
	s.Equal("IL", *primary)
	s.Equal([]string{"IL"}, codes)

	s.upsert(&natmodels.UpsertFactRequest{
		PersonID: s.personID.String(),
		Country:  "france",
		Type:     "citizenship",
	})

	primary, codes = s.cacheColumns()
	s.Require().NotNil(primary)
	s.Equal("IL", *primary)
	s.ElementsMatch([]string{"IL", "FR"}, codes)
}

func (s *UpsertFlowSuite) TestSecondActivePrimaryRejected() {
	s.upsert(&natmodels.UpsertFactRequest{
		PersonID:  s.personID.String(),
		Country:   "IL",
		Type:      "citizenship",
		IsPrimary: true,
	})

	_, err := s.svc.Upsert(context.Background(), &natmodels.UpsertFactRequest{
		PersonID:  s.personID.String(),
		Country:   "FR",
		Type:      "citizenship",
		IsPrimary: true,
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	// The rejected write must not have touched the cache.
	primary, codes := s.cacheColumns()
	s.Require().NotNil(primary)
	s.Equal("IL", *primary)
	s.Equal([]string{"IL"}, codes)
}

func (s *UpsertFlowSuite) TestDuplicateActiveCountryTypeRejected() {
	s.upsert(&natmodels.UpsertFactRequest{
		PersonID: s.personID.String(),
		Country:  "IL",
		Type:     "ethnic_origin",
	})

	_, err := s.svc.Upsert(context.Background(), &natmodels.UpsertFactRequest{
		PersonID: s.personID.String(),
		Country:  "Israel",
		Type:     "ethnic_origin",
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *UpsertFlowSuite) TestCloseEndsFactAndRecomputes() {
	res := s.upsert(&natmodels.UpsertFactRequest{
		PersonID:  s.personID.String(),
		Country:   "IL",
		Type:      "citizenship",
		IsPrimary: true,
	})
	s.upsert(&natmodels.UpsertFactRequest{
		PersonID: s.personID.String(),
		Country:  "FR",
		Type:     "citizenship",
	})

	closed, err := s.svc.Close(context.Background(), res.Fact.ID, nil)
	s.Require().NoError(err)
	s.Require().NotNil(closed.EndDate)

	// Precedence falls back to the remaining citizenship.
	primary, codes := s.cacheColumns()
	s.Require().NotNil(primary)
	s.Equal("FR", *primary)
	s.Equal([]string{"FR"}, codes)

	// The closed slot is free again.
	s.upsert(&natmodels.UpsertFactRequest{
		PersonID:  s.personID.String(),
		Country:   "IL",
		Type:      "citizenship",
		IsPrimary: true,
	})
	primary, _ = s.cacheColumns()
	s.Require().NotNil(primary)
	s.Equal("IL", *primary)
}

func (s *UpsertFlowSuite) TestUpdateByIDMovesCountry() {
	res := s.upsert(&natmodels.UpsertFactRequest{
		PersonID:  s.personID.String(),
		Country:   "IL",
		Type:      "citizenship",
		IsPrimary: true,
	})

	updated := s.upsert(&natmodels.UpsertFactRequest{
		ID:        res.Fact.ID.String(),
		PersonID:  s.personID.String(),
		Country:   "United Kingdom",
		Type:      "citizenship",
		IsPrimary: true,
	})
	s.False(updated.Created)
	s.Equal(res.Fact.ID, updated.Fact.ID)
	s.Equal("GB", updated.Fact.CountryCode)

	primary, codes := s.cacheColumns()
	s.Require().NotNil(primary)
	s.Equal("GB", *primary)
	s.Equal([]string{"GB"}, codes)
}

func (s *UpsertFlowSuite) TestUnknownPersonRejected() {
	_, err := s.svc.Upsert(context.Background(), &natmodels.UpsertFactRequest{
		PersonID: id.NewPersonID().String(),
		Country:  "IL",
		Type:     "citizenship",
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
