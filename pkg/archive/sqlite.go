package archive

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/matzehuels/geomech/pkg/errors"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	tool        TEXT NOT NULL,
	input       BLOB NOT NULL,
	output      BLOB,
	error_code  TEXT NOT NULL DEFAULT '',
	error       TEXT NOT NULL DEFAULT '',
	cached      INTEGER NOT NULL DEFAULT 0,
	duration_ns INTEGER NOT NULL,
	created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_tool_created ON runs (tool, created_at);
`

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore stores records in a local SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens or creates the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "geomech.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !stderrors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection; concurrent writers would otherwise see SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create runs table: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Save inserts rec.
func (s *SQLiteStore) Save(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, tool, input, output, error_code, error, cached, duration_ns, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Tool, []byte(rec.Input), []byte(rec.Output), rec.ErrorCode, rec.Error,
		rec.Cached, int64(rec.Duration), rec.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert run %s: %w", rec.ID, err)
	}
	return nil
}

// Get returns one record.
func (s *SQLiteStore) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, tool, input, output, error_code, error, cached, duration_ns, created_at
		 FROM runs WHERE id = ?`, id)
	rec, err := scanRecord(row.Scan)
	if stderrors.Is(err, sql.ErrNoRows) {
		return Record{}, errors.New(errors.ErrCodeNotFound, "run %s not found", id)
	}
	return rec, err
}

// List returns records newest first.
func (s *SQLiteStore) List(ctx context.Context, opts ListOptions) ([]Record, error) {
	query := `SELECT id, tool, input, output, error_code, error, cached, duration_ns, created_at FROM runs`
	args := []any{}
	if opts.Tool != "" {
		query += ` WHERE tool = ?`
		args = append(args, opts.Tool)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, opts.limit())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanRecord(scan func(...any) error) (Record, error) {
	var (
		rec      Record
		input    []byte
		output   []byte
		duration int64
		created  string
	)
	if err := scan(&rec.ID, &rec.Tool, &input, &output, &rec.ErrorCode, &rec.Error, &rec.Cached, &duration, &created); err != nil {
		return Record{}, err
	}
	rec.Input = input
	if len(output) > 0 {
		rec.Output = output
	}
	rec.Duration = time.Duration(duration)
	t, err := time.Parse(timeLayout, created)
	if err != nil {
		return Record{}, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	rec.CreatedAt = t
	return rec, nil
}

// Path returns the database file.
func (s *SQLiteStore) Path() string { return s.path }

// Close closes the database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

var _ Store = (*SQLiteStore)(nil)
