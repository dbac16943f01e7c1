package assets

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteCatalog implements Repository on a SQLite database, so material
// definitions survive between runs and can be shared by other tooling.
//
// The catalog opens the database in WAL mode with a busy timeout and keeps a
// single writer connection, which is all SQLite supports.
type SQLiteCatalog struct {
	db     *sql.DB
	dbPath string

	mu        sync.RWMutex
	closeOnce sync.Once

	resolveStmt *sql.Stmt
	putStmt     *sql.Stmt
	listStmt    *sql.Stmt
}

// SQLiteCatalogConfig configures the SQLite catalog.
type SQLiteCatalogConfig struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// NewSQLiteCatalog opens (or creates) a material catalog with defaults.
func NewSQLiteCatalog(dbPath string) (*SQLiteCatalog, error) {
	return NewSQLiteCatalogWithConfig(SQLiteCatalogConfig{
		DBPath:      dbPath,
		BusyTimeout: 5 * time.Second,
	})
}

// NewSQLiteCatalogWithConfig opens a catalog with custom configuration.
func NewSQLiteCatalogWithConfig(cfg SQLiteCatalogConfig) (*SQLiteCatalog, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.DBPath, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports single writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	catalog := &SQLiteCatalog{
		db:     db,
		dbPath: cfg.DBPath,
	}

	if err := catalog.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := catalog.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	return catalog, nil
}

// initSchema creates the database schema if it doesn't exist.
func (c *SQLiteCatalog) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS materials (
		path TEXT PRIMARY KEY,
		shader TEXT NOT NULL DEFAULT '',
		base_texture TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	);
	`

	_, err := c.db.Exec(schema)
	return err
}

// prepareStatements prepares SQL statements for reuse.
func (c *SQLiteCatalog) prepareStatements() error {
	var err error

	c.resolveStmt, err = c.db.Prepare(`
		SELECT path, shader, base_texture FROM materials WHERE path = ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare resolve statement: %w", err)
	}

	c.putStmt, err = c.db.Prepare(`
		INSERT INTO materials (path, shader, base_texture, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (path) DO UPDATE SET
			shader = excluded.shader,
			base_texture = excluded.base_texture
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare put statement: %w", err)
	}

	c.listStmt, err = c.db.Prepare(`
		SELECT path, shader, base_texture FROM materials ORDER BY path
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare list statement: %w", err)
	}

	return nil
}

// Resolve returns the material at path, or ErrNotFound.
func (c *SQLiteCatalog) Resolve(ctx context.Context, path string) (*Material, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	mat := &Material{}
	err := c.resolveStmt.QueryRowContext(ctx, path).Scan(&mat.Path, &mat.Shader, &mat.BaseTexture)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve material: %w", err)
	}

	return mat, nil
}

// Put adds or replaces a material definition.
func (c *SQLiteCatalog) Put(ctx context.Context, mat *Material) error {
	if mat == nil {
		return fmt.Errorf("material cannot be nil")
	}
	if mat.Path == "" {
		return fmt.Errorf("material path cannot be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.putStmt.ExecContext(ctx, mat.Path, mat.Shader, mat.BaseTexture, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to put material: %w", err)
	}
	return nil
}

// List returns every material in the catalog ordered by path.
func (c *SQLiteCatalog) List(ctx context.Context) ([]*Material, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rows, err := c.listStmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	defer rows.Close()

	var mats []*Material
	for rows.Next() {
		mat := &Material{}
		if err := rows.Scan(&mat.Path, &mat.Shader, &mat.BaseTexture); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		mats = append(mats, mat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return mats, nil
}

// Close releases the database. Close is idempotent.
func (c *SQLiteCatalog) Close() error {
	var closeErr error

	c.closeOnce.Do(func() {
		if c.resolveStmt != nil {
			c.resolveStmt.Close()
		}
		if c.putStmt != nil {
			c.putStmt.Close()
		}
		if c.listStmt != nil {
			c.listStmt.Close()
		}
		if c.db != nil {
			_, _ = c.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
			closeErr = c.db.Close()
		}
	})

	return closeErr
}
