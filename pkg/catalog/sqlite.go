package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite" // pure Go driver registered as "sqlite"

	"libscribe-hq/libscribe/pkg/iec/ast"
)

// Supported database/sql driver names.
const (
	DriverCGO    = "sqlite3"
	DriverPureGo = "sqlite"
)

// SQLiteConfig contains configuration for the SQLite store.
type SQLiteConfig struct {
	// Driver is DriverCGO or DriverPureGo.
	// Default: "sqlite3"
	Driver string

	// Path is the database file path, or ":memory:".
	Path string

	// WALMode enables Write-Ahead Logging mode.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Driver:      DriverCGO,
		Path:        "libscribe.db",
		WALMode:     true,
		BusyTimeout: 5 * time.Second,
	}
}

// SQLiteStore implements Store on SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore opens the database and creates the schema.
func NewSQLiteStore(config *SQLiteConfig, logger *slog.Logger) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if config.Driver == "" {
		config.Driver = DriverCGO
	}
	if config.Driver != DriverCGO && config.Driver != DriverPureGo {
		return nil, newStorageError(config.Driver, "open", fmt.Errorf("unsupported driver %q", config.Driver))
	}
	if config.Path == "" {
		return nil, newStorageError(config.Driver, "open", fmt.Errorf("db path cannot be empty"))
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "catalog.sqlite", "driver", config.Driver)

	db, err := sql.Open(config.Driver, config.Path)
	if err != nil {
		return nil, newStorageError(config.Driver, "open", err)
	}

	// SQLite only supports a single writer, and ":memory:" databases are
	// per connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLiteStore{db: db, config: config, logger: logger}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("catalog opened", "path", config.Path, "wal_mode", config.WALMode)
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return s.fail("enable_wal", err)
		}
	}
	if s.config.BusyTimeout > 0 {
		if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds())); err != nil {
			return s.fail("set_busy_timeout", err)
		}
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return s.fail("create_schema", err)
	}
	if _, err := s.db.Exec(insertSchemaVersion, SchemaVersion); err != nil {
		return s.fail("insert_schema_version", err)
	}

	var version sql.NullInt64
	if err := s.db.QueryRow(getSchemaVersion).Scan(&version); err != nil {
		return s.fail("get_schema_version", err)
	}
	if version.Int64 != SchemaVersion {
		return s.fail("schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version.Int64))
	}
	return nil
}

func (s *SQLiteStore) fail(operation string, err error) error {
	return newStorageError(s.config.Driver, operation, err)
}

// Put implements Store.
func (s *SQLiteStore) Put(ctx context.Context, entry *Entry) error {
	stats, err := json.Marshal(entry.Library.Stats)
	if err != nil {
		return s.fail("put", err)
	}
	deps, err := json.Marshal(entry.Library.Dependencies)
	if err != nil {
		return s.fail("put", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.fail("begin", err)
	}
	defer tx.Rollback()

	lib := entry.Library
	if _, err := tx.ExecContext(ctx, upsertLibrary, lib.Name, lib.Version, lib.Root, lib.BuildID,
		lib.IndexedAt.UnixNano(), string(stats), string(deps)); err != nil {
		return s.fail("put_library", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM symbols WHERE library = ?`, lib.Name); err != nil {
		return s.fail("clear_symbols", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertSymbol)
	if err != nil {
		return s.fail("prepare", err)
	}
	defer stmt.Close()
	for i, sym := range entry.Symbols {
		if _, err := stmt.ExecContext(ctx, lib.Name, string(sym.Kind), sym.Name, sym.Type,
			sym.Description, sym.File, sym.Line, i); err != nil {
			return s.fail("put_symbol", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return s.fail("commit", err)
	}
	s.logger.Debug("library stored", "library", lib.Name, "symbols", len(entry.Symbols))
	return nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, library string) (*Entry, error) {
	infos, err := s.libraries(ctx, selectLibraries+` WHERE name = ?`, library)
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, ErrNotFound
	}

	symbols, err := s.symbols(ctx, selectSymbols+` WHERE library = ? ORDER BY seq`, library)
	if err != nil {
		return nil, err
	}
	return &Entry{Library: *infos[0], Symbols: symbols}, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, library string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.fail("begin", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM symbols WHERE library = ?`, library); err != nil {
		return s.fail("delete", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM libraries WHERE name = ?`, library); err != nil {
		return s.fail("delete", err)
	}
	if err := tx.Commit(); err != nil {
		return s.fail("commit", err)
	}
	return nil
}

// List implements Store.
func (s *SQLiteStore) List(ctx context.Context) ([]*LibraryInfo, error) {
	return s.libraries(ctx, selectLibraries+` ORDER BY name`)
}

// Search implements Store.
func (s *SQLiteStore) Search(ctx context.Context, q *Query) ([]*Symbol, error) {
	if q == nil {
		q = &Query{}
	}

	var (
		where []string
		args  []any
	)
	if q.Text != "" {
		pattern := "%" + escapeLike(strings.ToLower(q.Text)) + "%"
		where = append(where, `(lower(name) LIKE ? ESCAPE '\' OR lower(description) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}
	if q.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, string(q.Kind))
	}
	if q.Library != "" {
		where = append(where, "library = ?")
		args = append(args, q.Library)
	}

	query := selectSymbols
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY library, kind, name, seq"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}
	return s.symbols(ctx, query, args...)
}

// Lookup implements Store.
func (s *SQLiteStore) Lookup(ctx context.Context, name string) ([]*Symbol, error) {
	return s.symbols(ctx, selectSymbols+` WHERE name = ? ORDER BY library, kind, name, seq`, name)
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) libraries(ctx context.Context, query string, args ...any) ([]*LibraryInfo, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.fail("query_libraries", err)
	}
	defer rows.Close()

	var infos []*LibraryInfo
	for rows.Next() {
		var (
			info      LibraryInfo
			indexedAt int64
			stats     string
			deps      string
		)
		if err := rows.Scan(&info.Name, &info.Version, &info.Root, &info.BuildID, &indexedAt, &stats, &deps); err != nil {
			return nil, s.fail("scan_library", err)
		}
		info.IndexedAt = time.Unix(0, indexedAt).UTC()
		if err := json.Unmarshal([]byte(stats), &info.Stats); err != nil {
			return nil, s.fail("decode_stats", err)
		}
		if err := json.Unmarshal([]byte(deps), &info.Dependencies); err != nil {
			return nil, s.fail("decode_dependencies", err)
		}
		infos = append(infos, &info)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("query_libraries", err)
	}
	return infos, nil
}

func (s *SQLiteStore) symbols(ctx context.Context, query string, args ...any) ([]*Symbol, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.fail("query_symbols", err)
	}
	defer rows.Close()

	var symbols []*Symbol
	for rows.Next() {
		var (
			sym  Symbol
			kind string
		)
		if err := rows.Scan(&sym.Library, &kind, &sym.Name, &sym.Type, &sym.Description, &sym.File, &sym.Line); err != nil {
			return nil, s.fail("scan_symbol", err)
		}
		sym.Kind = ast.DeclarationKind(kind)
		symbols = append(symbols, &sym)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("query_symbols", err)
	}
	return symbols, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
