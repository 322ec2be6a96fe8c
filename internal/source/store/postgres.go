package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wordsrecord/internal/source/models"
	id "wordsrecord/pkg/domain"
	"wordsrecord/pkg/platform/sentinel"
)

// Postgres persists sources in the sources table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const sourceColumns = `id, title, url, publication, published_at, reliability, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, src *models.Source) error {
	query := `
		INSERT INTO sources (id, title, url, publication, published_at, reliability, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(ctx, query,
		src.ID.String(), src.Title, src.URL, src.Publication, src.PublishedAt,
		src.Reliability, src.CreatedAt, src.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert source: %w", err)
	}
	return nil
}

func (s *Postgres) Update(ctx context.Context, src *models.Source) error {
	query := `
		UPDATE sources
		SET title = $2, url = $3, publication = $4, published_at = $5, reliability = $6, updated_at = $7
		WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query,
		src.ID.String(), src.Title, src.URL, src.Publication, src.PublishedAt,
		src.Reliability, src.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update source: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update source rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, sourceID id.SourceID) (*models.Source, error) {
	query := `SELECT ` + sourceColumns + ` FROM sources WHERE id = $1`
	return scanSource(s.db.QueryRowContext(ctx, query, sourceID.String()))
}

func (s *Postgres) List(ctx context.Context, limit, offset int) ([]*models.Source, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + sourceColumns + ` FROM sources ORDER BY created_at ASC LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	var out []*models.Source
	for rows.Next() {
		src, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sources: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSource(row rowScanner) (*models.Source, error) {
	var (
		src         models.Source
		rawID       string
		publishedAt sql.NullTime
	)
	err := row.Scan(&rawID, &src.Title, &src.URL, &src.Publication, &publishedAt,
		&src.Reliability, &src.CreatedAt, &src.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan source: %w", err)
	}

	sourceID, err := id.ParseSourceID(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse source id: %w", err)
	}
	src.ID = sourceID
	if publishedAt.Valid {
		src.PublishedAt = &publishedAt.Time
	}
	return &src, nil
}
