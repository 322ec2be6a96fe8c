package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"wordsrecord/internal/person/models"
	id "wordsrecord/pkg/domain"
	"wordsrecord/pkg/platform/sentinel"
)

// dbExecutor abstracts *sql.DB and *sql.Tx so the store can run inside
// an enclosing transaction.
type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Postgres persists persons in the persons table.
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

const personColumns = `id, slug, full_name, bio, nationality_primary_code, nationality_codes_cached, legacy_nationality, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, p *models.Person) error {
	query := `
		INSERT INTO persons (id, slug, full_name, bio, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		p.ID.String(), p.Slug, p.FullName, p.Bio, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

// Update writes the editable columns only; the nationality cache columns
// are written exclusively by UpdateNationalityCache.
func (s *Postgres) Update(ctx context.Context, p *models.Person) error {
	query := `
		UPDATE persons
		SET slug = $2, full_name = $3, bio = $4, updated_at = $5
		WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query,
		p.ID.String(), p.Slug, p.FullName, p.Bio, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("update person: %w", err)
	}
	return requireRowAffected(res, "update person")
}

func (s *Postgres) FindByID(ctx context.Context, personID id.PersonID) (*models.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons WHERE id = $1`
	return s.scanPerson(s.db.QueryRowContext(ctx, query, personID.String()))
}

func (s *Postgres) FindBySlug(ctx context.Context, slug string) (*models.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons WHERE slug = $1`
	return s.scanPerson(s.db.QueryRowContext(ctx, query, slug))
}

func (s *Postgres) List(ctx context.Context, limit, offset int) ([]*models.Person, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + personColumns + ` FROM persons ORDER BY created_at ASC LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	defer rows.Close()

	return s.collectPersons(rows)
}

func (s *Postgres) Delete(ctx context.Context, personID id.PersonID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM persons WHERE id = $1`, personID.String())
	if err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	return requireRowAffected(res, "delete person")
}

func (s *Postgres) UpdateNationalityCache(ctx context.Context, personID id.PersonID, primary *string, codes []string) error {
	query := `
		UPDATE persons
		SET nationality_primary_code = $2, nationality_codes_cached = $3, updated_at = now()
		WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, personID.String(), primary, pq.Array(codes))
	if err != nil {
		return fmt.Errorf("update nationality cache: %w", err)
	}
	return requireRowAffected(res, "update nationality cache")
}

// LockForUpdate takes a row lock on the person for the duration of the
// enclosing transaction, serialising concurrent fact writes.
func (s *Postgres) LockForUpdate(ctx context.Context, personID id.PersonID) error {
	var found string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM persons WHERE id = $1 FOR UPDATE`, personID.String()).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lock person: %w", err)
	}
	return nil
}

func (s *Postgres) ListWithLegacyNationality(ctx context.Context) ([]*models.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons
		WHERE legacy_nationality IS NOT NULL AND legacy_nationality <> ''
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list persons with legacy nationality: %w", err)
	}
	defer rows.Close()

	return s.collectPersons(rows)
}

// ClearLegacyNationality marks a person as migrated by nulling the legacy
// free-text column.
func (s *Postgres) ClearLegacyNationality(ctx context.Context, personID id.PersonID) error {
	query := `UPDATE persons SET legacy_nationality = NULL, updated_at = now() WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, personID.String())
	if err != nil {
		return fmt.Errorf("clear legacy nationality: %w", err)
	}
	return requireRowAffected(res, "clear legacy nationality")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Postgres) scanPerson(row rowScanner) (*models.Person, error) {
	var (
		p       models.Person
		rawID   string
		primary sql.NullString
		codes   pq.StringArray
		legacy  sql.NullString
	)
	err := row.Scan(&rawID, &p.Slug, &p.FullName, &p.Bio, &primary, &codes, &legacy, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan person: %w", err)
	}

	personID, err := id.ParsePersonID(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse person id: %w", err)
	}
	p.ID = personID
	if primary.Valid {
		p.NationalityPrimaryCode = &primary.String
	}
	p.NationalityCodesCached = []string(codes)
	if legacy.Valid {
		p.LegacyNationality = &legacy.String
	}
	return &p, nil
}

func (s *Postgres) collectPersons(rows *sql.Rows) ([]*models.Person, error) {
	var out []*models.Person
	for rows.Next() {
		p, err := s.scanPerson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate persons: %w", err)
	}
	return out, nil
}

func requireRowAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
