package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"wordsrecord/internal/nationality/models"
	id "wordsrecord/pkg/domain"
	"wordsrecord/pkg/platform/sentinel"
)

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Postgres persists facts in the person_nationalities table. The two
// partial unique indexes on that table back the validation rules, so a
// racing writer that slips past validation still fails at commit.
type Postgres struct {
	db dbExecutor
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// NewPostgresTx returns a store bound to an open transaction.
func NewPostgresTx(tx *sql.Tx) *Postgres {
	return &Postgres{db: tx}
}

const factColumns = `id, person_id, country_code, type, acquisition, is_primary, display_order,
	start_date, end_date, source_id, confidence, note, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, f *models.Fact) error {
	query := `
		INSERT INTO person_nationalities
			(id, person_id, country_code, type, acquisition, is_primary, display_order,
			 start_date, end_date, source_id, confidence, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := s.db.ExecContext(ctx, query, factArgs(f)...)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert fact: %w", err)
	}
	return nil
}

func (s *Postgres) Update(ctx context.Context, f *models.Fact) error {
	query := `
		UPDATE person_nationalities
		SET person_id = $2, country_code = $3, type = $4, acquisition = $5, is_primary = $6,
			display_order = $7, start_date = $8, end_date = $9, source_id = $10,
			confidence = $11, note = $12, created_at = $13, updated_at = $14
		WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, factArgs(f)...)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("update fact: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update fact rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, factID id.FactID) (*models.Fact, error) {
	query := `SELECT ` + factColumns + ` FROM person_nationalities WHERE id = $1`
	return scanFact(s.db.QueryRowContext(ctx, query, factID.String()))
}

func (s *Postgres) ListActiveByPerson(ctx context.Context, personID id.PersonID) ([]*models.Fact, error) {
	query := `SELECT ` + factColumns + ` FROM person_nationalities
		WHERE person_id = $1 AND end_date IS NULL
		ORDER BY (is_primary AND type = 'citizenship') DESC, display_order ASC, type ASC, created_at ASC`

	return s.queryFacts(ctx, query, personID.String())
}

func (s *Postgres) ListByPerson(ctx context.Context, personID id.PersonID) ([]*models.Fact, error) {
	query := `SELECT ` + factColumns + ` FROM person_nationalities
		WHERE person_id = $1
		ORDER BY (is_primary AND type = 'citizenship') DESC, display_order ASC, type ASC, created_at ASC`

	return s.queryFacts(ctx, query, personID.String())
}

func (s *Postgres) queryFacts(ctx context.Context, query string, args ...any) ([]*models.Fact, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query facts: %w", err)
	}
	defer rows.Close()

	var out []*models.Fact
	for rows.Next() {
		f, err := scanFact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate facts: %w", err)
	}
	return out, nil
}

func factArgs(f *models.Fact) []any {
	var acquisition *string
	if f.Acquisition != nil {
		v := string(*f.Acquisition)
		acquisition = &v
	}
	var sourceID *string
	if f.SourceID != nil {
		v := f.SourceID.String()
		sourceID = &v
	}
	return []any{
		f.ID.String(), f.PersonID.String(), f.CountryCode, string(f.Type), acquisition,
		f.IsPrimary, f.DisplayOrder, f.StartDate, f.EndDate, sourceID,
		f.Confidence, f.Note, f.CreatedAt, f.UpdatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFact(row rowScanner) (*models.Fact, error) {
	var (
		f           models.Fact
		rawID       string
		rawPerson   string
		rawType     string
		acquisition sql.NullString
		startDate   sql.NullTime
		endDate     sql.NullTime
		rawSource   sql.NullString
	)
	err := row.Scan(&rawID, &rawPerson, &f.CountryCode, &rawType, &acquisition, &f.IsPrimary,
		&f.DisplayOrder, &startDate, &endDate, &rawSource, &f.Confidence, &f.Note,
		&f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan fact: %w", err)
	}

	factID, err := id.ParseFactID(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse fact id: %w", err)
	}
	personID, err := id.ParsePersonID(rawPerson)
	if err != nil {
		return nil, fmt.Errorf("parse person id: %w", err)
	}
	f.ID = factID
	f.PersonID = personID
	f.Type = models.Type(rawType)
	if acquisition.Valid {
		a := models.Acquisition(acquisition.String)
		f.Acquisition = &a
	}
	if startDate.Valid {
		f.StartDate = &startDate.Time
	}
	if endDate.Valid {
		f.EndDate = &endDate.Time
	}
	if rawSource.Valid {
		sourceID, err := id.ParseSourceID(rawSource.String)
		if err != nil {
			return nil, fmt.Errorf("parse source id: %w", err)
		}
		f.SourceID = &sourceID
	}
	return &f, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
