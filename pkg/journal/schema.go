package journal

// schemaVersion is the current journal schema version.
const schemaVersion = 1

// schema creates the import journal tables and indexes.
const schema = `
CREATE TABLE IF NOT EXISTS imports (
    id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    started_at TIMESTAMP NOT NULL,
    duration_ms INTEGER NOT NULL,
    status TEXT NOT NULL,
    error TEXT,

    node_count INTEGER NOT NULL,
    solid_count INTEGER NOT NULL,
    group_count INTEGER NOT NULL,
    light_count INTEGER NOT NULL,
    pruned_count INTEGER NOT NULL,
    skipped_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_imports_started_at ON imports(started_at);
CREATE INDEX IF NOT EXISTS idx_imports_source ON imports(source);
CREATE INDEX IF NOT EXISTS idx_imports_status ON imports(status);
`

// insertSchemaVersion records the schema version on first initialization.
const insertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// getSchemaVersion reads the highest applied schema version.
const getSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`
