package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"wordsrecord/internal/person/models"
	id "wordsrecord/pkg/domain"
	"wordsrecord/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *Memory
	ctx   context.Context
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemory()
	s.ctx = context.Background()
}

func (s *MemoryStoreSuite) newPerson(slug, fullName string) *models.Person {
	p, err := models.NewPerson(id.NewPersonID(), slug, fullName, "", time.Now().UTC())
	s.Require().NoError(err)
	return p
}

func (s *MemoryStoreSuite) TestCreateAndFind() {
	p := s.newPerson("ada-lovelace", "Ada Lovelace")
	s.Require().NoError(s.store.Create(s.ctx, p))

	byID, err := s.store.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("ada-lovelace", byID.Slug)

	bySlug, err := s.store.FindBySlug(s.ctx, "ada-lovelace")
	s.Require().NoError(err)
	s.Equal(p.ID, bySlug.ID)
}

func (s *MemoryStoreSuite) TestCreateDuplicateSlug() {
	s.Require().NoError(s.store.Create(s.ctx, s.newPerson("ada-lovelace", "Ada Lovelace")))

	err := s.store.Create(s.ctx, s.newPerson("ada-lovelace", "Another Ada"))
	s.ErrorIs(err, sentinel.ErrConflict)
}

func (s *MemoryStoreSuite) TestFindMissing() {
	_, err := s.store.FindByID(s.ctx, id.NewPersonID())
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.FindBySlug(s.ctx, "nobody")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestUpdatePreservesNationalityCache() {
	p := s.newPerson("ada-lovelace", "Ada Lovelace")
	s.Require().NoError(s.store.Create(s.ctx, p))

	primary := "GB"
	s.Require().NoError(s.store.UpdateNationalityCache(s.ctx, p.ID, &primary, []string{"GB", "FR"}))

	p.Bio = "Mathematician"
	s.Require().NoError(s.store.Update(s.ctx, p))

	got, err := s.store.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("Mathematician", got.Bio)
	s.Require().NotNil(got.NationalityPrimaryCode)
	s.Equal("GB", *got.NationalityPrimaryCode)
	s.Equal([]string{"GB", "FR"}, got.NationalityCodesCached)
}

func (s *MemoryStoreSuite) TestUpdateSlugReindexes() {
	p := s.newPerson("ada-lovelace", "Ada Lovelace")
	s.Require().NoError(s.store.Create(s.ctx, p))

	p.Slug = "countess-of-lovelace"
	s.Require().NoError(s.store.Update(s.ctx, p))

	_, err := s.store.FindBySlug(s.ctx, "ada-lovelace")
	s.ErrorIs(err, sentinel.ErrNotFound)

	got, err := s.store.FindBySlug(s.ctx, "countess-of-lovelace")
	s.Require().NoError(err)
	s.Equal(p.ID, got.ID)
}

func (s *MemoryStoreSuite) TestUpdateSlugConflict() {
	first := s.newPerson("ada-lovelace", "Ada Lovelace")
	second := s.newPerson("charles-babbage", "Charles Babbage")
	s.Require().NoError(s.store.Create(s.ctx, first))
	s.Require().NoError(s.store.Create(s.ctx, second))

	second.Slug = "ada-lovelace"
	s.ErrorIs(s.store.Update(s.ctx, second), sentinel.ErrConflict)
}

func (s *MemoryStoreSuite) TestListPagination() {
	base := time.Now().UTC()
	for i, slug := range []string{"first", "second", "third"} {
		p, err := models.NewPerson(id.NewPersonID(), slug, "Person "+slug, "", base.Add(time.Duration(i)*time.Second))
		s.Require().NoError(err)
		s.Require().NoError(s.store.Create(s.ctx, p))
	}

	page, err := s.store.List(s.ctx, 2, 0)
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal("first", page[0].Slug)
	s.Equal("second", page[1].Slug)

	page, err = s.store.List(s.ctx, 2, 2)
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal("third", page[0].Slug)

	page, err = s.store.List(s.ctx, 2, 10)
	s.Require().NoError(err)
	s.Empty(page)
}

func (s *MemoryStoreSuite) TestDelete() {
	p := s.newPerson("ada-lovelace", "Ada Lovelace")
	s.Require().NoError(s.store.Create(s.ctx, p))
	s.Require().NoError(s.store.Delete(s.ctx, p.ID))

	_, err := s.store.FindByID(s.ctx, p.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.store.Delete(s.ctx, p.ID), sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestUpdateNationalityCacheClears() {
	p := s.newPerson("ada-lovelace", "Ada Lovelace")
	s.Require().NoError(s.store.Create(s.ctx, p))

	primary := "GB"
	s.Require().NoError(s.store.UpdateNationalityCache(s.ctx, p.ID, &primary, []string{"GB"}))
	s.Require().NoError(s.store.UpdateNationalityCache(s.ctx, p.ID, nil, nil))

	got, err := s.store.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Nil(got.NationalityPrimaryCode)
	s.Empty(got.NationalityCodesCached)
}

func (s *MemoryStoreSuite) TestUpdateNationalityCacheMissingPerson() {
	err := s.store.UpdateNationalityCache(s.ctx, id.NewPersonID(), nil, nil)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestLockForUpdate() {
	p := s.newPerson("ada-lovelace", "Ada Lovelace")
	s.Require().NoError(s.store.Create(s.ctx, p))

	s.NoError(s.store.LockForUpdate(s.ctx, p.ID))
	s.ErrorIs(s.store.LockForUpdate(s.ctx, id.NewPersonID()), sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestListWithLegacyNationality() {
	withLegacy := s.newPerson("ada-lovelace", "Ada Lovelace")
	without := s.newPerson("charles-babbage", "Charles Babbage")
	s.Require().NoError(s.store.Create(s.ctx, withLegacy))
	s.Require().NoError(s.store.Create(s.ctx, without))
	s.Require().NoError(s.store.SetLegacyNationality(s.ctx, withLegacy.ID, "British"))

	got, err := s.store.ListWithLegacyNationality(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(withLegacy.ID, got[0].ID)
	s.Require().NotNil(got[0].LegacyNationality)
	s.Equal("British", *got[0].LegacyNationality)
}

func (s *MemoryStoreSuite) TestClearLegacyNationality() {
	p := s.newPerson("ada-lovelace", "Ada Lovelace")
	s.Require().NoError(s.store.Create(s.ctx, p))
	s.Require().NoError(s.store.SetLegacyNationality(s.ctx, p.ID, "British"))

	s.Require().NoError(s.store.ClearLegacyNationality(s.ctx, p.ID))
	got, err := s.store.ListWithLegacyNationality(s.ctx)
	s.Require().NoError(err)
	s.Empty(got)

	s.ErrorIs(s.store.ClearLegacyNationality(s.ctx, id.NewPersonID()), sentinel.ErrNotFound)
}
