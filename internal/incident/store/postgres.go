package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"wordsrecord/internal/incident/models"
	id "wordsrecord/pkg/domain"
	"wordsrecord/pkg/platform/sentinel"
)

// Postgres persists incidents in the incidents table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const incidentColumns = `id, slug, title, summary, status, started_at, ended_at, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, in *models.Incident) error {
	query := `
		INSERT INTO incidents (id, slug, title, summary, status, started_at, ended_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(ctx, query,
		in.ID.String(), in.Slug, in.Title, in.Summary, string(in.Status),
		in.StartedAt, in.EndedAt, in.CreatedAt, in.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert incident: %w", err)
	}
	return nil
}

func (s *Postgres) Update(ctx context.Context, in *models.Incident) error {
	query := `
		UPDATE incidents
		SET slug = $2, title = $3, summary = $4, status = $5, started_at = $6, ended_at = $7, updated_at = $8
		WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query,
		in.ID.String(), in.Slug, in.Title, in.Summary, string(in.Status),
		in.StartedAt, in.EndedAt, in.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("update incident: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update incident rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, incidentID id.IncidentID) (*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1`
	return scanIncident(s.db.QueryRowContext(ctx, query, incidentID.String()))
}

func (s *Postgres) FindBySlug(ctx context.Context, slug string) (*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE slug = $1`
	return scanIncident(s.db.QueryRowContext(ctx, query, slug))
}

func (s *Postgres) List(ctx context.Context, limit, offset int) ([]*models.Incident, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + incidentColumns + ` FROM incidents ORDER BY created_at ASC LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	defer rows.Close()

	var out []*models.Incident
	for rows.Next() {
		in, err := scanIncident(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate incidents: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIncident(row rowScanner) (*models.Incident, error) {
	var (
		in        models.Incident
		rawID     string
		rawStatus string
		startedAt sql.NullTime
		endedAt   sql.NullTime
	)
	err := row.Scan(&rawID, &in.Slug, &in.Title, &in.Summary, &rawStatus, &startedAt, &endedAt,
		&in.CreatedAt, &in.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan incident: %w", err)
	}

	incidentID, err := id.ParseIncidentID(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse incident id: %w", err)
	}
	in.ID = incidentID
	in.Status = models.Status(rawStatus)
	if startedAt.Valid {
		in.StartedAt = &startedAt.Time
	}
	if endedAt.Valid {
		in.EndedAt = &endedAt.Time
	}
	return &in, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
