package journal

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/google/uuid"
)

// SQLiteConfig configures the persistent journal backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// BusyTimeout is how long writes wait on a locked database.
	// Default: 5 seconds
	BusyTimeout time.Duration

	// MaxOpenConns caps open connections. Default: 10
	MaxOpenConns int

	// MaxIdleConns caps idle connections. Default: 5
	MaxIdleConns int
}

// DefaultSQLiteConfig returns the default journal database configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/journal.db",
		BusyTimeout:  5 * time.Second,
		MaxOpenConns: 10,
		MaxIdleConns: 5,
	}
}

// SQLiteJournal persists entries in a SQLite database with WAL enabled.
type SQLiteJournal struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteJournal opens (creating if needed) the journal database at
// config.Path and applies the schema. A nil config uses defaults; a nil
// logger falls back to the process default.
func NewSQLiteJournal(config *SQLiteConfig, logger *slog.Logger) (*SQLiteJournal, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}
	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	j := &SQLiteJournal{
		db:     db,
		config: config,
		logger: logger.With("component", "journal.sqlite"),
	}

	if err := j.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	j.logger.Info("journal opened", "path", config.Path)
	return j, nil
}

// initialize enables WAL, sets the busy timeout, and applies the schema.
func (j *SQLiteJournal) initialize() error {
	if _, err := j.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return NewStorageError("sqlite", "enable_wal", err)
	}
	if _, err := j.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", j.config.BusyTimeout.Milliseconds())); err != nil {
		return NewStorageError("sqlite", "set_busy_timeout", err)
	}
	if _, err := j.db.Exec(schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}
	if _, err := j.db.Exec(insertSchemaVersion, schemaVersion); err != nil {
		return NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	if err := j.db.QueryRow(getSchemaVersion).Scan(&version); err != nil {
		return NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != schemaVersion {
		return NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", schemaVersion, version))
	}
	return nil
}

// Record inserts one entry.
func (j *SQLiteJournal) Record(ctx context.Context, entry *Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	var errorVal any
	if entry.Error != "" {
		errorVal = entry.Error
	}

	const query = `
		INSERT INTO imports (
			id, source, started_at, duration_ms, status, error,
			node_count, solid_count, group_count, light_count,
			pruned_count, skipped_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := j.db.ExecContext(ctx, query,
		entry.ID, entry.Source, entry.StartedAt, entry.Duration.Milliseconds(),
		entry.Status, errorVal,
		entry.Nodes, entry.Solids, entry.Groups, entry.Lights,
		entry.Pruned, entry.Skipped,
	)
	if err != nil {
		return NewStorageError("sqlite", "record", err)
	}
	return nil
}

// List returns matching entries, newest first.
func (j *SQLiteJournal) List(ctx context.Context, q Query) ([]*Entry, error) {
	where, args := buildWhereClause(q)

	sqlQuery := "SELECT id, source, started_at, duration_ms, status, error, " +
		"node_count, solid_count, group_count, light_count, pruned_count, skipped_count " +
		"FROM imports"
	if where != "" {
		sqlQuery += " WHERE " + where
	}
	sqlQuery += " ORDER BY started_at DESC"

	limit := q.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	sqlQuery += fmt.Sprintf(" LIMIT %d", limit)

	rows, err := j.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}
	defer rows.Close()

	entries := []*Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, NewStorageError("sqlite", "scan", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}
	return entries, nil
}

// Count returns the number of matching entries.
func (j *SQLiteJournal) Count(ctx context.Context, q Query) (int64, error) {
	where, args := buildWhereClause(q)

	sqlQuery := "SELECT COUNT(*) FROM imports"
	if where != "" {
		sqlQuery += " WHERE " + where
	}

	var count int64
	if err := j.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// Close closes the database.
func (j *SQLiteJournal) Close() error {
	if err := j.db.Close(); err != nil {
		return NewStorageError("sqlite", "close", err)
	}
	return nil
}

// buildWhereClause turns set query filters into a WHERE clause body and its
// arguments.
func buildWhereClause(q Query) (string, []any) {
	var conditions []string
	var args []any

	if q.Source != "" {
		conditions = append(conditions, "source = ?")
		args = append(args, q.Source)
	}
	if q.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, q.Status)
	}
	if !q.Since.IsZero() {
		conditions = append(conditions, "started_at >= ?")
		args = append(args, q.Since)
	}
	if !q.Until.IsZero() {
		conditions = append(conditions, "started_at <= ?")
		args = append(args, q.Until)
	}

	where := ""
	for i, condition := range conditions {
		if i > 0 {
			where += " AND "
		}
		where += condition
	}
	return where, args
}

// scanEntry scans one row into an Entry.
func scanEntry(rows *sql.Rows) (*Entry, error) {
	var entry Entry
	var durationMs int64
	var errorVal sql.NullString

	err := rows.Scan(
		&entry.ID, &entry.Source, &entry.StartedAt, &durationMs,
		&entry.Status, &errorVal,
		&entry.Nodes, &entry.Solids, &entry.Groups, &entry.Lights,
		&entry.Pruned, &entry.Skipped,
	)
	if err != nil {
		return nil, err
	}

	entry.Duration = time.Duration(durationMs) * time.Millisecond
	if errorVal.Valid {
		entry.Error = errorVal.String
	}
	return &entry, nil
}
