package source

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultTable is the posts table queried when none is configured.
const DefaultTable = "post"

// identRe restricts table names to plain identifiers since the table
// name is interpolated into the query text.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLite polls a SQLite database for post records. Every FetchBatch
// re-reads the whole table; the writer side (a separate ingest process)
// appends rows between polls.
type SQLite struct {
	db    *sql.DB
	table string
}

// OpenSQLite opens the database at path and prepares a source reading
// from the given table ("" means DefaultTable).
func OpenSQLite(path, table string) (*SQLite, error) {
	if table == "" {
		table = DefaultTable
	}
	if !identRe.MatchString(table) {
		return nil, fmt.Errorf("source: invalid table name %q", table)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", path, err)
	}
	// The source is read-only and single-consumer; one connection keeps
	// the pure-Go driver's locking behavior predictable.
	db.SetMaxOpenConns(1)

	return &SQLite{db: db, table: table}, nil
}

// Name implements Source.
func (s *SQLite) Name() string { return "sqlite" }

// FetchBatch reads every row of the posts table. Rows with NULL text are
// skipped; a NULL or unparseable created_at yields a zero time.
func (s *SQLite) FetchBatch(ctx context.Context) ([]Record, error) {
	query := fmt.Sprintf("SELECT id, text, created_at FROM %s ORDER BY id", s.table)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("source: query %s: %w", s.table, err)
	}
	defer rows.Close()

	var batch []Record
	for rows.Next() {
		var (
			id      int64
			body    sql.NullString
			created sql.NullString
		)
		if err := rows.Scan(&id, &body, &created); err != nil {
			return nil, fmt.Errorf("source: scan: %w", err)
		}
		if !body.Valid {
			continue
		}
		rec := Record{ID: id, Text: body.String}
		if created.Valid {
			if t, err := time.Parse(time.RFC3339, created.String); err == nil {
				rec.CreatedAt = t
			}
		}
		batch = append(batch, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("source: rows: %w", err)
	}
	return batch, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
