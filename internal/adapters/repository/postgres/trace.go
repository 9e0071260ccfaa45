// Package postgres provides a trace store backed by PostgreSQL for
// deployments where traces are shared across instances.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/algoviz/algoviz/internal/core/trace"
	"github.com/algoviz/algoviz/pkg/serialization"
)

// TraceSaver implements trace.Saver for PostgreSQL.
type TraceSaver struct {
	pool       *pgxpool.Pool
	serializer *serialization.Serializer
	tableName  string
}

// NewTraceSaver creates a new PostgreSQL trace saver.
func NewTraceSaver(pool *pgxpool.Pool, serializer *serialization.Serializer) *TraceSaver {
	if serializer == nil {
		serializer = serialization.Default()
	}
	return &TraceSaver{
		pool:       pool,
		serializer: serializer,
		tableName:  "traces",
	}
}

// InitSchema creates the trace table if it does not exist.
func (s *TraceSaver) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id         TEXT PRIMARY KEY,
			algorithm  TEXT NOT NULL,
			session_id TEXT NOT NULL,
			payload    BYTEA NOT NULL,
			timestamp  TIMESTAMPTZ NOT NULL,
			version    TEXT NOT NULL
		)
	`, s.tableName)
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create trace table: %w", err)
	}
	return nil
}

// Save stores a trace in PostgreSQL.
func (s *TraceSaver) Save(ctx context.Context, t *trace.Trace) error {
	if t == nil {
		return trace.ErrInvalidTraceID
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("trace validation failed: %w", err)
	}

	payload, err := s.serializer.Serialize(t)
	if err != nil {
		return fmt.Errorf("failed to serialize trace: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, algorithm, session_id, payload, timestamp, version)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			payload = EXCLUDED.payload,
			timestamp = EXCLUDED.timestamp
	`, s.tableName)

	_, err = s.pool.Exec(ctx, query,
		t.ID, t.Algorithm, t.SessionID, payload, t.Timestamp, t.Version)
	if err != nil {
		return fmt.Errorf("failed to save trace: %w", err)
	}
	return nil
}

// Load retrieves a trace by ID.
func (s *TraceSaver) Load(ctx context.Context, id string) (*trace.Trace, error) {
	if id == "" {
		return nil, trace.ErrInvalidTraceID
	}

	query := fmt.Sprintf(`SELECT payload FROM %s WHERE id = $1`, s.tableName)

	var payload []byte
	err := s.pool.QueryRow(ctx, query, id).Scan(&payload)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, trace.ErrTraceNotFound
		}
		return nil, fmt.Errorf("failed to load trace: %w", err)
	}

	var t trace.Trace
	if err := s.serializer.Deserialize(payload, &t); err != nil {
		return nil, fmt.Errorf("failed to deserialize trace: %w", err)
	}
	return &t, nil
}

// List returns traces matching the filter, newest first.
func (s *TraceSaver) List(ctx context.Context, filter trace.Filter) ([]*trace.Trace, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter validation failed: %w", err)
	}

	var conds []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Algorithm != "" {
		conds = append(conds, "algorithm = "+arg(filter.Algorithm))
	}
	if filter.SessionID != "" {
		conds = append(conds, "session_id = "+arg(filter.SessionID))
	}
	if filter.Since != nil {
		conds = append(conds, "timestamp >= "+arg(*filter.Since))
	}
	if filter.Before != nil {
		conds = append(conds, "timestamp <= "+arg(*filter.Before))
	}

	query := fmt.Sprintf(`SELECT payload FROM %s`, s.tableName)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY timestamp DESC"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + arg(filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list traces: %w", err)
	}
	defer rows.Close()

	var results []*trace.Trace
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan trace row: %w", err)
		}
		var t trace.Trace
		if err := s.serializer.Deserialize(payload, &t); err != nil {
			return nil, fmt.Errorf("failed to deserialize trace: %w", err)
		}
		results = append(results, &t)
	}
	return results, rows.Err()
}

// Delete removes a trace by ID.
func (s *TraceSaver) Delete(ctx context.Context, id string) error {
	if id == "" {
		return trace.ErrInvalidTraceID
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.tableName)
	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete trace: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return trace.ErrTraceNotFound
	}
	return nil
}
