// Package service assembles the public profile view. It fans out to the
// person, nationality, and statement stores concurrently and renders the
// cached nationality columns for display, so a profile page costs one
// round of parallel reads.
package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"wordsrecord/internal/country"
	natmodels "wordsrecord/internal/nationality/models"
	personmodels "wordsrecord/internal/person/models"
	id "wordsrecord/pkg/domain"
	dErrors "wordsrecord/pkg/domain-errors"
	"wordsrecord/pkg/platform/sentinel"
)

type PersonStore interface {
	FindBySlug(ctx context.Context, slug string) (*personmodels.Person, error)
}

type FactStore interface {
	ListActiveByPerson(ctx context.Context, personID id.PersonID) ([]*natmodels.Fact, error)
}

type StatementStore interface {
	CountByPerson(ctx context.Context, personID id.PersonID) (int, error)
	CountIncidentsByPerson(ctx context.Context, personID id.PersonID) (int, error)
}

// Profile is the public, read-only view of a person.
type Profile struct {
	ID                 id.PersonID        `json:"id"`
	Slug               string             `json:"slug"`
	FullName           string             `json:"full_name"`
	Bio                string             `json:"bio,omitempty"`
	PrimaryNationality *NationalityEntry  `json:"primary_nationality"`
	Nationalities      []NationalityEntry `json:"nationalities"`
	NationalityDisplay string             `json:"nationality_display"`
	ActiveFacts        []*natmodels.Fact  `json:"active_facts"`
	StatementCount     int                `json:"statement_count"`
	IncidentCount      int                `json:"incident_count"`
}

type NationalityEntry struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Flag string `json:"flag"`
}

type Service struct {
	persons    PersonStore
	facts      FactStore
	statements StatementStore
	logger     *slog.Logger
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(persons PersonStore, facts FactStore, statements StatementStore, opts ...Option) *Service {
	s := &Service{persons: persons, facts: facts, statements: statements}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetBySlug loads a profile by its public slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Profile, error) {
	person, err := s.persons.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "person not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load person")
	}

	var (
		facts          []*natmodels.Fact
		statementCount int
		incidentCount  int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		facts, err = s.facts.ListActiveByPerson(gctx, person.ID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list active facts")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		statementCount, err = s.statements.CountByPerson(gctx, person.ID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to count statements")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		incidentCount, err = s.statements.CountIncidentsByPerson(gctx, person.ID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to count incidents")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buildProfile(person, facts, statementCount, incidentCount), nil
}

func buildProfile(person *personmodels.Person, facts []*natmodels.Fact, statementCount, incidentCount int) *Profile {
	p := &Profile{
		ID:             person.ID,
		Slug:           person.Slug,
		FullName:       person.FullName,
		Bio:            person.Bio,
		Nationalities:  []NationalityEntry{},
		ActiveFacts:    facts,
		StatementCount: statementCount,
		IncidentCount:  incidentCount,
	}
	if facts == nil {
		p.ActiveFacts = []*natmodels.Fact{}
	}

	for _, code := range person.NationalityCodesCached {
		p.Nationalities = append(p.Nationalities, nationalityEntry(code))
	}
	if person.NationalityPrimaryCode != nil {
		entry := nationalityEntry(*person.NationalityPrimaryCode)
		p.PrimaryNationality = &entry
	}
	p.NationalityDisplay = country.FormatDisplay(person.NationalityCodesCached, country.DisplayOptions{
		IncludeFlags: true,
	})
	return p
}

func nationalityEntry(code string) NationalityEntry {
	return NationalityEntry{
		Code: code,
		Name: country.Name(code),
		Flag: country.Flag(code),
	}
}
