package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"wordsrecord/internal/editor/models"
	id "wordsrecord/pkg/domain"
	"wordsrecord/pkg/platform/sentinel"
)

// Postgres persists editors in the editors table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const editorColumns = `id, email, password_hash, role, active, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, ed *models.Editor) error {
	query := `
		INSERT INTO editors (id, email, password_hash, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		ed.ID.String(), ed.Email, ed.PasswordHash, string(ed.Role), ed.Active,
		ed.CreatedAt, ed.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert editor: %w", err)
	}
	return nil
}

func (s *Postgres) Update(ctx context.Context, ed *models.Editor) error {
	query := `
		UPDATE editors
		SET email = $2, password_hash = $3, role = $4, active = $5, updated_at = $6
		WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query,
		ed.ID.String(), ed.Email, ed.PasswordHash, string(ed.Role), ed.Active, ed.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("update editor: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update editor rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, editorID id.EditorID) (*models.Editor, error) {
	query := `SELECT ` + editorColumns + ` FROM editors WHERE id = $1`
	return scanEditor(s.db.QueryRowContext(ctx, query, editorID.String()))
}

func (s *Postgres) FindByEmail(ctx context.Context, email string) (*models.Editor, error) {
	query := `SELECT ` + editorColumns + ` FROM editors WHERE email = $1`
	return scanEditor(s.db.QueryRowContext(ctx, query, email))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEditor(row rowScanner) (*models.Editor, error) {
	var (
		ed    models.Editor
		rawID string
		role  string
	)
	err := row.Scan(&rawID, &ed.Email, &ed.PasswordHash, &role, &ed.Active,
		&ed.CreatedAt, &ed.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan editor: %w", err)
	}

	editorID, err := id.ParseEditorID(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse editor id: %w", err)
	}
	ed.ID = editorID
	ed.Role = models.Role(role)
	return &ed, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
