package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
	_ "github.com/jackc/pgx/v5/stdlib" // postgresql driver
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // sqlite driver
)

// tsLayout keeps timestamps fixed-width, so text comparison orders them.
const tsLayout = "2006-01-02T15:04:05.000000Z"

// dialect is the engine specific part of the ledger setup.
type dialect struct {
	name       string
	driver     string
	setup      []string // executed once after connect
	serialPK   string   // auto-increment primary key column type
	maxConns   int
	concurrent bool // engine serializes writers itself, no store lock needed
}

var dialects = map[DBType]dialect{
	DBTypeSQLite: {
		name:   "sqlite",
		driver: "sqlite",
		setup: []string{
			"PRAGMA journal_mode=WAL",
			"PRAGMA busy_timeout=5000",
			"PRAGMA synchronous=NORMAL",
			"PRAGMA foreign_keys=ON",
		},
		serialPK: "INTEGER PRIMARY KEY AUTOINCREMENT",
		maxConns: 1, // pragmas are per connection
	},
	DBTypePostgres: {
		name:       "postgres",
		driver:     "pgx",
		serialPK:   "BIGSERIAL PRIMARY KEY",
		maxConns:   10,
		concurrent: true,
	},
}

// Store is the run ledger on SQLite or PostgreSQL.
type Store struct {
	db     *sqlx.DB
	dbType DBType
	mu     RWLocker
}

// New opens the ledger at dbURL, creating tables when missing.
// postgres:// and postgresql:// URLs select PostgreSQL, anything else is a SQLite path.
func New(dbURL string) (*Store, error) {
	dbType := detectDBType(dbURL)
	d := dialects[dbType]

	db, err := sqlx.Connect(d.driver, dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s ledger: %w", d.name, err)
	}
	db.SetMaxOpenConns(d.maxConns)
	if d.concurrent {
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	s := &Store{db: db, dbType: dbType, mu: &sync.RWMutex{}}
	if d.concurrent {
		s.mu = noopLocker{}
	}

	stmts := append(append([]string{}, d.setup...), schema(d.serialPK)...)
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to prepare %s ledger, %s: %w", d.name, firstLine(stmt), err)
		}
	}

	log.Printf("[DEBUG] %s run ledger ready", d.name)
	return s, nil
}

// schema returns the ledger DDL. Both tables keep timestamps as tsLayout text.
func schema(serialPK string) []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			base_url TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			total INTEGER NOT NULL DEFAULT 0,
			passed INTEGER NOT NULL DEFAULT 0,
			failed INTEGER NOT NULL DEFAULT 0,
			skipped INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
		`CREATE TABLE IF NOT EXISTS results (
			id ` + serialPK + `,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			outcome TEXT NOT NULL,
			messages TEXT NOT NULL DEFAULT '',
			started_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_run_id ON results(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_results_name ON results(name)`,
	}
}

func detectDBType(url string) DBType {
	switch scheme, _, _ := strings.Cut(strings.ToLower(url), "://"); scheme {
	case "postgres", "postgresql":
		return DBTypePostgres
	default:
		return DBTypeSQLite
	}
}

// Close closes the database connection.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close ledger: %w", err)
	}
	return nil
}

// rebind turns ? placeholders into the bind style of the engine.
func (s *Store) rebind(query string) string {
	return sqlx.Rebind(sqlx.BindType(dialects[s.dbType].driver), query)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}

func formatTS(t time.Time) string {
	return t.UTC().Format(tsLayout)
}

func parseTS(s string) time.Time {
	t, err := time.Parse(tsLayout, s)
	if err != nil {
		if t, err = time.Parse(time.RFC3339Nano, s); err != nil {
			log.Printf("[WARN] failed to parse timestamp %q: %v", s, err)
		}
	}
	return t
}
