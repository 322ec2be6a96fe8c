package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wordsrecord/internal/statement/models"
	id "wordsrecord/pkg/domain"
	"wordsrecord/pkg/platform/sentinel"
)

// Postgres persists statements in the statements table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const statementColumns = `id, person_id, incident_id, source_id, response_to, type, body, said_at, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, st *models.Statement) error {
	query := `
		INSERT INTO statements (id, person_id, incident_id, source_id, response_to, type, body, said_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.db.ExecContext(ctx, query, statementArgs(st)...)
	if err != nil {
		return fmt.Errorf("insert statement: %w", err)
	}
	return nil
}

func (s *Postgres) Update(ctx context.Context, st *models.Statement) error {
	query := `
		UPDATE statements
		SET person_id = $2, incident_id = $3, source_id = $4, response_to = $5, type = $6,
			body = $7, said_at = $8, created_at = $9, updated_at = $10
		WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, statementArgs(st)...)
	if err != nil {
		return fmt.Errorf("update statement: %w", err)
	}
	return requireRowAffected(res, "update statement")
}

func (s *Postgres) Delete(ctx context.Context, statementID id.StatementID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM statements WHERE id = $1`, statementID.String())
	if err != nil {
		return fmt.Errorf("delete statement: %w", err)
	}
	return requireRowAffected(res, "delete statement")
}

func (s *Postgres) FindByID(ctx context.Context, statementID id.StatementID) (*models.Statement, error) {
	query := `SELECT ` + statementColumns + ` FROM statements WHERE id = $1`
	return scanStatement(s.db.QueryRowContext(ctx, query, statementID.String()))
}

func (s *Postgres) ListByPerson(ctx context.Context, personID id.PersonID) ([]*models.Statement, error) {
	query := `SELECT ` + statementColumns + ` FROM statements WHERE person_id = $1 ORDER BY created_at ASC`
	return s.queryStatements(ctx, query, personID.String())
}

func (s *Postgres) ListByIncident(ctx context.Context, incidentID id.IncidentID) ([]*models.Statement, error) {
	query := `SELECT ` + statementColumns + ` FROM statements WHERE incident_id = $1 ORDER BY created_at ASC`
	return s.queryStatements(ctx, query, incidentID.String())
}

func (s *Postgres) CountByPerson(ctx context.Context, personID id.PersonID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM statements WHERE person_id = $1`, personID.String()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count statements: %w", err)
	}
	return count, nil
}

func (s *Postgres) CountIncidentsByPerson(ctx context.Context, personID id.PersonID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT incident_id) FROM statements WHERE person_id = $1 AND incident_id IS NOT NULL`,
		personID.String()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count incidents: %w", err)
	}
	return count, nil
}

func (s *Postgres) queryStatements(ctx context.Context, query string, args ...any) ([]*models.Statement, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query statements: %w", err)
	}
	defer rows.Close()

	var out []*models.Statement
	for rows.Next() {
		st, err := scanStatement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate statements: %w", err)
	}
	return out, nil
}

func statementArgs(st *models.Statement) []any {
	var incidentID, sourceID, responseTo *string
	if st.IncidentID != nil {
		v := st.IncidentID.String()
		incidentID = &v
	}
	if st.SourceID != nil {
		v := st.SourceID.String()
		sourceID = &v
	}
	if st.ResponseTo != nil {
		v := st.ResponseTo.String()
		responseTo = &v
	}
	return []any{
		st.ID.String(), st.PersonID.String(), incidentID, sourceID, responseTo,
		string(st.Type), st.Body, st.SaidAt, st.CreatedAt, st.UpdatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStatement(row rowScanner) (*models.Statement, error) {
	var (
		st         models.Statement
		rawID      string
		rawPerson  string
		incidentID sql.NullString
		sourceID   sql.NullString
		responseTo sql.NullString
		rawType    string
		saidAt     sql.NullTime
	)
	err := row.Scan(&rawID, &rawPerson, &incidentID, &sourceID, &responseTo, &rawType,
		&st.Body, &saidAt, &st.CreatedAt, &st.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan statement: %w", err)
	}

	statementID, err := id.ParseStatementID(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse statement id: %w", err)
	}
	personID, err := id.ParsePersonID(rawPerson)
	if err != nil {
		return nil, fmt.Errorf("parse person id: %w", err)
	}
	st.ID = statementID
	st.PersonID = personID
	st.Type = models.Type(rawType)
	if incidentID.Valid {
		parsed, err := id.ParseIncidentID(incidentID.String)
		if err != nil {
			return nil, fmt.Errorf("parse incident id: %w", err)
		}
		st.IncidentID = &parsed
	}
	if sourceID.Valid {
		parsed, err := id.ParseSourceID(sourceID.String)
		if err != nil {
			return nil, fmt.Errorf("parse source id: %w", err)
		}
		st.SourceID = &parsed
	}
	if responseTo.Valid {
		parsed, err := id.ParseStatementID(responseTo.String)
		if err != nil {
			return nil, fmt.Errorf("parse response statement id: %w", err)
		}
		st.ResponseTo = &parsed
	}
	if saidAt.Valid {
		st.SaidAt = &saidAt.Time
	}
	return &st, nil
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
