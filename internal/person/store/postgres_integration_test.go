//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"wordsrecord/internal/person/models"
	"wordsrecord/internal/person/store"
	id "wordsrecord/pkg/domain"
	"wordsrecord/pkg/platform/sentinel"
	"wordsrecord/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateModuleTables(context.Background())
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) newPerson(slug string) *models.Person {
	p, err := models.NewPerson(id.NewPersonID(), slug, "Test Person", "", time.Now().UTC())
	s.Require().NoError(err)
	return p
}

func (s *PostgresStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	p := s.newPerson("ada-lovelace")
	s.Require().NoError(s.store.Create(ctx, p))

	got, err := s.store.FindByID(ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(p.Slug, got.Slug)
	s.Nil(got.NationalityPrimaryCode)
	s.Empty(got.NationalityCodesCached)

	bySlug, err := s.store.FindBySlug(ctx, "ada-lovelace")
	s.Require().NoError(err)
	s.Equal(p.ID, bySlug.ID)
}

func (s *PostgresStoreSuite) TestDuplicateSlug() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.newPerson("same-slug")))

	err := s.store.Create(ctx, s.newPerson("same-slug"))
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestUpdateNationalityCache() {
	ctx := context.Background()
	p := s.newPerson("cached-person")
	s.Require().NoError(s.store.Create(ctx, p))

	primary := "IL"
	s.Require().NoError(s.store.UpdateNationalityCache(ctx, p.ID, &primary, []string{"IL", "FR"}))

	got, err := s.store.FindByID(ctx, p.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.NationalityPrimaryCode)
	s.Equal("IL", *got.NationalityPrimaryCode)
	s.Equal([]string{"IL", "FR"}, got.NationalityCodesCached)

	// Clearing writes NULL and an empty array.
	s.Require().NoError(s.store.UpdateNationalityCache(ctx, p.ID, nil, nil))
	got, err = s.store.FindByID(ctx, p.ID)
	s.Require().NoError(err)
	s.Nil(got.NationalityPrimaryCode)
	s.Empty(got.NationalityCodesCached)
}

func (s *PostgresStoreSuite) TestUpdateNationalityCacheMissingPerson() {
	err := s.postgres.TruncateModuleTables(context.Background())
	s.Require().NoError(err)

	err = s.store.UpdateNationalityCache(context.Background(), id.NewPersonID(), nil, nil)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestLockForUpdate() {
	ctx := context.Background()
	p := s.newPerson("locked-person")
	s.Require().NoError(s.store.Create(ctx, p))

	s.Require().NoError(s.store.LockForUpdate(ctx, p.ID))
	s.Require().ErrorIs(s.store.LockForUpdate(ctx, id.NewPersonID()), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListWithLegacyNationality() {
	ctx := context.Background()
	p := s.newPerson("legacy-person")
	s.Require().NoError(s.store.Create(ctx, p))

	_, err := s.postgres.Exec(ctx,
		`UPDATE persons SET legacy_nationality = 'Israeli-French' WHERE id = $1`, p.ID.String())
	s.Require().NoError(err)

	pending, err := s.store.ListWithLegacyNationality(ctx)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Require().NotNil(pending[0].LegacyNationality)
	s.Equal("Israeli-French", *pending[0].LegacyNationality)

	s.Require().NoError(s.store.ClearLegacyNationality(ctx, p.ID))
	pending, err = s.store.ListWithLegacyNationality(ctx)
	s.Require().NoError(err)
	s.Empty(pending)

	s.Require().ErrorIs(s.store.ClearLegacyNationality(ctx, id.NewPersonID()), sentinel.ErrNotFound)
}
