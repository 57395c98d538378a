package catalog

// SchemaVersion is the current catalog schema version.
const SchemaVersion = 1

// Schema creates the catalog tables.
const Schema = `
CREATE TABLE IF NOT EXISTS libraries (
    name TEXT PRIMARY KEY,
    version TEXT NOT NULL,
    root TEXT NOT NULL,
    build_id TEXT NOT NULL,
    indexed_at INTEGER NOT NULL,
    stats TEXT NOT NULL,
    dependencies TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS symbols (
    library TEXT NOT NULL,
    kind TEXT NOT NULL,
    name TEXT NOT NULL,
    type TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    file TEXT NOT NULL DEFAULT '',
    line INTEGER NOT NULL DEFAULT 0,
    seq INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_symbols_name ON symbols(name);
CREATE INDEX IF NOT EXISTS idx_symbols_library ON symbols(library, seq);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at INTEGER NOT NULL
);
`

const insertSchemaVersion = `INSERT OR IGNORE INTO schema_version (version, applied_at) VALUES (?, strftime('%s','now'))`

const getSchemaVersion = `SELECT MAX(version) FROM schema_version`

const upsertLibrary = `
INSERT INTO libraries (name, version, root, build_id, indexed_at, stats, dependencies)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
    version = excluded.version,
    root = excluded.root,
    build_id = excluded.build_id,
    indexed_at = excluded.indexed_at,
    stats = excluded.stats,
    dependencies = excluded.dependencies`

const insertSymbol = `
INSERT INTO symbols (library, kind, name, type, description, file, line, seq)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

const selectLibraries = `
SELECT name, version, root, build_id, indexed_at, stats, dependencies FROM libraries`

const selectSymbols = `
SELECT library, kind, name, type, description, file, line FROM symbols`
