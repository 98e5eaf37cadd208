package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"beatmark/internal/fileutil"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes. Users will need to clear their history database after schema
// changes.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match
// the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Record is one completed analysis.
type Record struct {
	ID              string
	SourcePath      string
	OutputPath      string
	BeatCount       int
	Tempo           float64
	SampleRate      int
	DurationSeconds float64
	FrameRate       int64
	CreatedAt       time.Time
}

// Store persists analysis records backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database in stateDir.
func Open(stateDir string) (*Store, error) {
	if err := fileutil.EnsureDir(stateDir); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(stateDir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (run 'beatmark history clear' or delete the database)",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Add inserts a record and returns it with its generated ID and timestamp
// filled in.
func (s *Store) Add(ctx context.Context, record Record) (*Record, error) {
	record.ID = uuid.NewString()
	record.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO analyses (
            id, source_path, output_path, beat_count, tempo,
            sample_rate, duration_seconds, frame_rate, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.SourcePath,
		record.OutputPath,
		record.BeatCount,
		record.Tempo,
		record.SampleRate,
		record.DurationSeconds,
		record.FrameRate,
		record.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert analysis: %w", err)
	}
	return &record, nil
}

// Recent returns up to limit records, newest first. A non-positive limit
// returns everything.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	query := `SELECT id, source_path, output_path, beat_count, tempo,
        sample_rate, duration_seconds, frame_rate, created_at
        FROM analyses ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// BySource returns all records for one source path, newest first.
func (s *Store) BySource(ctx context.Context, sourcePath string) ([]Record, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, source_path, output_path, beat_count, tempo,
            sample_rate, duration_seconds, frame_rate, created_at
            FROM analyses WHERE source_path = ? ORDER BY created_at DESC`,
		sourcePath,
	)
	if err != nil {
		return nil, fmt.Errorf("query analyses by source: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Clear deletes all records and returns the number removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM analyses")
	if err != nil {
		return 0, fmt.Errorf("clear analyses: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return removed, nil
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var record Record
		var createdAt string
		if err := rows.Scan(
			&record.ID,
			&record.SourcePath,
			&record.OutputPath,
			&record.BeatCount,
			&record.Tempo,
			&record.SampleRate,
			&record.DurationSeconds,
			&record.FrameRate,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		record.CreatedAt = parsed
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analyses: %w", err)
	}
	return records, nil
}
