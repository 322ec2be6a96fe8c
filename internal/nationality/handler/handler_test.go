package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	natservice "wordsrecord/internal/nationality/service"
	natstore "wordsrecord/internal/nationality/store"
	personmodels "wordsrecord/internal/person/models"
	personstore "wordsrecord/internal/person/store"
	id "wordsrecord/pkg/domain"
	"wordsrecord/pkg/platform/httputil"
)

type HandlerSuite struct {
	suite.Suite
	router   http.Handler
	personID id.PersonID
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	facts := natstore.NewMemory()
	persons := personstore.NewMemory()
	svc := natservice.New(natservice.NewMemoryStoreTx(facts, persons), facts, persons,
		natservice.WithLogger(logger))

	p, err := personmodels.NewPerson(id.NewPersonID(), "", "Test Person", "", time.Now().UTC())
	s.Require().NoError(err)
	s.Require().NoError(persons.Create(context.Background(), p))
	s.personID = p.ID

	h := New(svc, logger)
	r := chi.NewRouter()
	h.Register(r)
	s.router = r
}

func (s *HandlerSuite) upsert(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/admin/nationality-facts", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) TestUpsertCreatesFact() {
	rec := s.upsert(fmt.Sprintf(
		`{"person_id": %q, "country": "Israel", "type": "citizenship", "is_primary": true}`, s.personID))
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var resp FactResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("IL", resp.CountryCode)
	s.Equal("Israel", resp.CountryName)
	s.True(resp.Active)
}

func (s *HandlerSuite) TestUpsertValidationReturnsViolations() {
	rec := s.upsert(fmt.Sprintf(
		`{"person_id": %q, "country": "IL", "type": "citizenship", "is_primary": true}`, s.personID))
	s.Require().Equal(http.StatusCreated, rec.Code)

	rec = s.upsert(fmt.Sprintf(
		`{"person_id": %q, "country": "IL", "type": "citizenship", "is_primary": true}`, s.personID))
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var resp httputil.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("validation_error", resp.Error)
	s.Len(resp.Violations, 2)
}

func (s *HandlerSuite) TestUpsertUnknownType() {
	rec := s.upsert(fmt.Sprintf(
		`{"person_id": %q, "country": "IL", "type": "allegiance"}`, s.personID))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestCloseFact() {
	rec := s.upsert(fmt.Sprintf(
		`{"person_id": %q, "country": "IL", "type": "citizenship"}`, s.personID))
	s.Require().Equal(http.StatusCreated, rec.Code)

	var created FactResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodPost,
		"/admin/nationality-facts/"+created.ID+"/close", strings.NewReader(`{}`))
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusOK, rec.Code)
	var closed FactResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &closed))
	s.False(closed.Active)
	s.NotNil(closed.EndDate)
}

func (s *HandlerSuite) TestCloseMissingFact() {
	req := httptest.NewRequest(http.MethodPost,
		"/admin/nationality-facts/"+uuid.New().String()+"/close", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerSuite) TestListForPerson() {
	s.upsert(fmt.Sprintf(`{"person_id": %q, "country": "IL", "type": "citizenship"}`, s.personID))
	s.upsert(fmt.Sprintf(`{"person_id": %q, "country": "FR", "type": "ethnic_origin"}`, s.personID))

	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/admin/persons/%s/nationality-facts", s.personID), nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusOK, rec.Code)
	var resp FactListResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(2, resp.Count)
}
