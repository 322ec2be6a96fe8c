package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"wordsrecord/internal/audit"
	"wordsrecord/internal/country"
	"wordsrecord/internal/nationality/models"
	id "wordsrecord/pkg/domain"
	dErrors "wordsrecord/pkg/domain-errors"
	"wordsrecord/pkg/platform/sentinel"
	"wordsrecord/pkg/requestcontext"
)

// Upsert is one of the two mutation entry points. A request with an ID
// updates that fact in full; without one it creates a new fact. The
// rule validation, the write and the cache recompute run in a single
// transaction holding the person row lock, so concurrent writers
// serialize and the cache columns never drift from the fact table.
func (s *Service) Upsert(ctx context.Context, req *models.UpsertFactRequest) (*models.UpsertResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	personID, err := id.ParsePersonID(req.PersonID)
	if err != nil {
		return nil, err
	}
	countryCode, ok := country.Normalize(req.Country)
	if !ok {
		return nil, dErrors.NewValidation([]string{fmt.Sprintf("unrecognized country %q", req.Country)})
	}

	var factID id.FactID
	if req.ID != "" {
		factID, err = id.ParseFactID(req.ID)
		if err != nil {
			return nil, err
		}
	}
	var sourceID *id.SourceID
	if req.SourceID != "" {
		parsed, err := id.ParseSourceID(req.SourceID)
		if err != nil {
			return nil, err
		}
		sourceID = &parsed
	}

	ctx, span := s.tracer.Start(ctx, "nationality.Upsert", trace.WithAttributes(
		attribute.String("person_id", personID.String()),
		attribute.String("country_code", countryCode),
		attribute.String("fact_type", req.Type),
	))

	var result *models.UpsertResult
	err = s.tx.RunInTx(ctx, func(ctx context.Context, stores TxStores) error {
		if err := stores.Persons.LockForUpdate(ctx, personID); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "person not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to lock person")
		}

		now := requestcontext.Now(ctx)
		fact, created, err := s.buildCandidate(ctx, stores.Facts, req, factID, personID, countryCode, sourceID, now)
		if err != nil {
			return err
		}
		if err := fact.Validate(); err != nil {
			return err
		}

		violations, err := ruleViolations(ctx, stores.Facts, fact)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to validate fact rules")
		}
		if len(violations) > 0 {
			s.incrementValidationFailure()
			return dErrors.NewValidation(violations)
		}

		if created {
			err = stores.Facts.Create(ctx, fact)
		} else {
			err = stores.Facts.Update(ctx, fact)
		}
		if err != nil {
			// A unique index violation here means a concurrent writer won
			// the person lock race in a way validation could not see.
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict, "a conflicting active fact was written concurrently")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write fact")
		}

		if err := s.recomputeCaches(ctx, stores, personID); err != nil {
			return err
		}
		result = &models.UpsertResult{Fact: fact, Created: created}
		return nil
	})
	endSpan(span, err)
	if err != nil {
		return nil, err
	}

	s.incrementUpserted(result.Created)
	s.emitAudit(ctx, audit.EventFactUpserted, result.Fact, map[string]string{
		"country_code": result.Fact.CountryCode,
		"fact_type":    string(result.Fact.Type),
	})
	return result, nil
}

// Close is the other mutation entry point. It sets the end date on an
// active fact (default: request time) and recomputes the owning
// person's cache columns in the same transaction. Closed facts are
// terminal; there is no reopening path.
func (s *Service) Close(ctx context.Context, factID id.FactID, endDate *time.Time) (*models.Fact, error) {
	if factID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "fact ID required")
	}

	ctx, span := s.tracer.Start(ctx, "nationality.Close", trace.WithAttributes(
		attribute.String("fact_id", factID.String()),
	))

	var closed *models.Fact
	err := s.tx.RunInTx(ctx, func(ctx context.Context, stores TxStores) error {
		fact, err := stores.Facts.FindByID(ctx, factID)
		if err != nil {
			return wrapFactErr(err, "failed to load fact")
		}

		if err := stores.Persons.LockForUpdate(ctx, fact.PersonID); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "person not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to lock person")
		}
		// Re-read now that the person lock is held so concurrent
		// writers to the same fact set are settled.
		fact, err = stores.Facts.FindByID(ctx, factID)
		if err != nil {
			return wrapFactErr(err, "failed to load fact")
		}

		now := requestcontext.Now(ctx)
		end := now
		if endDate != nil {
			end = *endDate
		}
		if err := fact.Close(end, now); err != nil {
			return err
		}
		if err := stores.Facts.Update(ctx, fact); err != nil {
			return wrapFactErr(err, "failed to close fact")
		}

		if err := s.recomputeCaches(ctx, stores, fact.PersonID); err != nil {
			return err
		}
		closed = fact
		return nil
	})
	endSpan(span, err)
	if err != nil {
		return nil, err
	}

	s.incrementClosed()
	s.emitAudit(ctx, audit.EventFactClosed, closed, map[string]string{
		"country_code": closed.CountryCode,
		"fact_type":    string(closed.Type),
	})
	return closed, nil
}

// buildCandidate either constructs a fresh fact or loads the existing
// one and applies the request as a full-field update.
func (s *Service) buildCandidate(ctx context.Context, facts FactStore, req *models.UpsertFactRequest,
	factID id.FactID, personID id.PersonID, countryCode string, sourceID *id.SourceID, now time.Time,
) (*models.Fact, bool, error) {
	var acquisition *models.Acquisition
	if req.Acquisition != "" {
		a := models.Acquisition(req.Acquisition)
		acquisition = &a
	}
	confidence := 100
	if req.Confidence != nil {
		confidence = *req.Confidence
	}

	if factID.IsNil() {
		return &models.Fact{
			ID:           id.NewFactID(),
			PersonID:     personID,
			CountryCode:  countryCode,
			Type:         models.Type(req.Type),
			Acquisition:  acquisition,
			IsPrimary:    req.IsPrimary,
			DisplayOrder: req.DisplayOrder,
			StartDate:    req.StartDate,
			EndDate:      req.EndDate,
			SourceID:     sourceID,
			Confidence:   confidence,
			Note:         req.Note,
			CreatedAt:    now,
			UpdatedAt:    now,
		}, true, nil
	}

	existing, err := facts.FindByID(ctx, factID)
	if err != nil {
		return nil, false, wrapFactErr(err, "failed to load fact")
	}
	if existing.PersonID != personID {
		return nil, false, dErrors.New(dErrors.CodeBadRequest, "fact belongs to a different person")
	}

	existing.CountryCode = countryCode
	existing.Type = models.Type(req.Type)
	existing.Acquisition = acquisition
	existing.IsPrimary = req.IsPrimary
	existing.DisplayOrder = req.DisplayOrder
	existing.StartDate = req.StartDate
	existing.EndDate = req.EndDate
	existing.SourceID = sourceID
	existing.Confidence = confidence
	existing.Note = req.Note
	existing.UpdatedAt = now
	return existing, false, nil
}

// ruleViolations checks the two cross-fact invariants for a candidate
// write. All violations are collected so the caller sees every problem
// at once. The candidate's own ID is excluded, which makes updates of
// an existing fact self-consistent.
func ruleViolations(ctx context.Context, facts FactStore, candidate *models.Fact) ([]string, error) {
	if !candidate.IsActive() {
		return nil, nil
	}

	active, err := facts.ListActiveByPerson(ctx, candidate.PersonID)
	if err != nil {
		return nil, err
	}

	var violations []string
	for _, f := range active {
		if f.ID == candidate.ID {
			continue
		}
		if candidate.IsPrimary && candidate.Type == models.TypeCitizenship &&
			f.IsPrimary && f.Type == models.TypeCitizenship {
			violations = append(violations, "a primary citizenship already exists")
		}
		if f.CountryCode == candidate.CountryCode && f.Type == candidate.Type {
			violations = append(violations,
				fmt.Sprintf("an active %s fact for %s already exists; close it first", candidate.Type, candidate.CountryCode))
		}
	}
	return violations, nil
}

// ValidateRules runs the cross-fact rule checks without writing
// anything, for admin UI pre-flight validation.
func (s *Service) ValidateRules(ctx context.Context, candidate *models.Fact) ([]string, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	violations, err := ruleViolations(ctx, s.facts, candidate)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to validate fact rules")
	}
	return violations, nil
}

// recomputeCaches is the single writer of the person cache columns. It
// derives the distinct active country codes plus a primary code and
// overwrites both columns wholesale.
//
// Primary precedence: an explicit primary citizenship, else any
// citizenship, else the first active fact by the store ordering, else
// null when no active facts remain.
func (s *Service) recomputeCaches(ctx context.Context, stores TxStores, personID id.PersonID) error {
	start := time.Now()

	active, err := stores.Facts.ListActiveByPerson(ctx, personID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list active facts")
	}

	seen := make(map[string]bool, len(active))
	codes := make([]string, 0, len(active))
	for _, f := range active {
		if !seen[f.CountryCode] {
			seen[f.CountryCode] = true
			codes = append(codes, f.CountryCode)
		}
	}

	var primary *string
	for _, f := range active {
		if f.IsPrimary && f.Type == models.TypeCitizenship {
			primary = &f.CountryCode
			break
		}
	}
	if primary == nil {
		for _, f := range active {
			if f.Type == models.TypeCitizenship {
				primary = &f.CountryCode
				break
			}
		}
	}
	if primary == nil && len(active) > 0 {
		primary = &active[0].CountryCode
	}

	if err := stores.Persons.UpdateNationalityCache(ctx, personID, primary, codes); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "person not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update nationality cache")
	}

	s.observeRecompute(start)
	return nil
}

// RecomputeCaches rebuilds the cache columns for one person outside the
// normal mutation flow, for repair jobs and the legacy migration.
func (s *Service) RecomputeCaches(ctx context.Context, personID id.PersonID) error {
	if personID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "person ID required")
	}
	return s.tx.RunInTx(ctx, func(ctx context.Context, stores TxStores) error {
		if err := stores.Persons.LockForUpdate(ctx, personID); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "person not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to lock person")
		}
		return s.recomputeCaches(ctx, stores, personID)
	})
}

// GetFact loads a single fact by ID.
func (s *Service) GetFact(ctx context.Context, factID id.FactID) (*models.Fact, error) {
	if factID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "fact ID required")
	}
	fact, err := s.facts.FindByID(ctx, factID)
	if err != nil {
		return nil, wrapFactErr(err, "failed to load fact")
	}
	return fact, nil
}

// ListForPerson returns all facts for a person, active and closed, in
// precedence order.
func (s *Service) ListForPerson(ctx context.Context, personID id.PersonID) ([]*models.Fact, error) {
	if personID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "person ID required")
	}
	facts, err := s.facts.ListByPerson(ctx, personID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list facts")
	}
	return facts, nil
}

// ListActiveForPerson returns only the currently active facts.
func (s *Service) ListActiveForPerson(ctx context.Context, personID id.PersonID) ([]*models.Fact, error) {
	if personID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "person ID required")
	}
	facts, err := s.facts.ListActiveByPerson(ctx, personID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list facts")
	}
	return facts, nil
}

func (s *Service) emitAudit(ctx context.Context, action audit.Action, fact *models.Fact, detail map[string]string) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(action),
			"fact_id", fact.ID,
			"person_id", fact.PersonID,
			"country_code", fact.CountryCode,
			"log_type", "audit",
		)
	}
	if s.publisher == nil {
		return
	}
	err := s.publisher.Emit(ctx, audit.Event{
		Action:     action,
		EntityType: "nationality_fact",
		EntityID:   fact.ID.String(),
		Detail:     detail,
	})
	if err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", action,
			"error", err,
		)
	}
}

func (s *Service) incrementUpserted(created bool) {
	if s.metrics != nil {
		s.metrics.IncrementUpserted(created)
	}
}

func (s *Service) incrementClosed() {
	if s.metrics != nil {
		s.metrics.IncrementClosed()
	}
}

func (s *Service) incrementValidationFailure() {
	if s.metrics != nil {
		s.metrics.IncrementValidationFailure()
	}
}

func (s *Service) observeRecompute(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveRecompute(start)
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func wrapFactErr(err error, action string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "fact not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}
