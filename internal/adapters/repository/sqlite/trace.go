// Package sqlite provides a trace store backed by an embedded SQLite
// database, suitable for keeping lesson traces across restarts without an
// external service.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/algoviz/algoviz/internal/core/trace"
	"github.com/algoviz/algoviz/pkg/serialization"
)

// TraceSaver implements trace.Saver for SQLite.
type TraceSaver struct {
	db         *sql.DB
	serializer *serialization.Serializer
	tableName  string
}

// NewTraceSaver creates a new SQLite trace saver.
func NewTraceSaver(db *sql.DB, serializer *serialization.Serializer) *TraceSaver {
	if serializer == nil {
		serializer = serialization.Default()
	}
	return &TraceSaver{
		db:         db,
		serializer: serializer,
		tableName:  "traces",
	}
}

// WithTableName overrides the default table name. Only alphanumeric and
// underscore are permitted to prevent SQL injection via identifiers.
func (s *TraceSaver) WithTableName(name string) *TraceSaver {
	if isSafeIdent(name) {
		s.tableName = name
	}
	return s
}

// InitSchema creates the trace table if it does not exist.
func (s *TraceSaver) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id         TEXT PRIMARY KEY,
			algorithm  TEXT NOT NULL,
			session_id TEXT NOT NULL,
			payload    BLOB NOT NULL,
			timestamp  INTEGER NOT NULL,
			version    TEXT NOT NULL
		)
	`, s.tableName)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create trace table: %w", err)
	}
	return nil
}

// Save stores a trace in SQLite.
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
		INSERT OR REPLACE INTO %s (id, algorithm, session_id, payload, timestamp, version)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.tableName)

	_, err = s.db.ExecContext(ctx, query,
		t.ID, t.Algorithm, t.SessionID, payload, t.Timestamp.Unix(), t.Version)
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

	query := fmt.Sprintf(`SELECT payload FROM %s WHERE id = ?`, s.tableName)

	var payload []byte
	err := s.db.QueryRowContext(ctx, query, id).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
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
	if filter.Algorithm != "" {
		conds = append(conds, "algorithm = ?")
		args = append(args, filter.Algorithm)
	}
	if filter.SessionID != "" {
		conds = append(conds, "session_id = ?")
		args = append(args, filter.SessionID)
	}
	if filter.Since != nil {
		conds = append(conds, "timestamp >= ?")
		args = append(args, filter.Since.Unix())
	}
	if filter.Before != nil {
		conds = append(conds, "timestamp <= ?")
		args = append(args, filter.Before.Unix())
	}

	query := fmt.Sprintf(`SELECT payload FROM %s`, s.tableName)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY timestamp DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		if filter.Limit <= 0 {
			query += " LIMIT -1"
		}
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
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

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, s.tableName)
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete trace: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return trace.ErrTraceNotFound
	}
	return nil
}

// Open opens (or creates) a SQLite database at path and initializes the
// trace schema. Use ":memory:" for an ephemeral database.
func Open(ctx context.Context, path string, serializer *serialization.Serializer) (*TraceSaver, *sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	saver := NewTraceSaver(db, serializer)
	if err := saver.InitSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return saver, db, nil
}

func isSafeIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		return false
	}
	return true
}
