package storefront

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// Supported persistence drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// PersistenceConfig selects the database the process talks to.
type PersistenceConfig struct {
	Driver string
	DSN    string
}

// Persistence is the process-wide database handle with an explicit lifecycle:
// Connect once on startup, Close on shutdown. Connect is safe to call from
// concurrent paths; only the first call opens the pool.
type Persistence struct {
	cfg    PersistenceConfig
	logger Logger

	once sync.Once
	db   *bun.DB
	err  error
}

type PersistenceOption func(*Persistence)

func NewPersistence(cfg PersistenceConfig, opts ...PersistenceOption) *Persistence {
	p := &Persistence{
		cfg:    cfg,
		logger: defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	return p
}

func WithPersistenceLogger(logger Logger) PersistenceOption {
	return func(p *Persistence) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Connect opens the pool and wraps it with the dialect matching the driver.
func (p *Persistence) Connect() (*bun.DB, error) {
	p.once.Do(func() {
		switch p.cfg.Driver {
		case DriverPostgres:
			sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(p.cfg.DSN)))
			p.db = bun.NewDB(sqldb, pgdialect.New())
		case DriverSQLite:
			sqldb, err := sql.Open(sqliteshim.ShimName, p.cfg.DSN)
			if err != nil {
				p.err = err
				return
			}
			p.db = bun.NewDB(sqldb, sqlitedialect.New())
		default:
			p.err = fmt.Errorf("unsupported persistence driver: %q", p.cfg.Driver)
			return
		}

		p.logger.Info("database pool opened driver=%s", p.cfg.Driver)
	})

	return p.db, p.err
}

// DB returns the handle opened by Connect, or nil before it ran.
func (p *Persistence) DB() *bun.DB {
	return p.db
}

// Close releases the pool. Safe to call when Connect never succeeded.
func (p *Persistence) Close() error {
	if p.db == nil {
		return nil
	}

	err := p.db.Close()
	if err == nil {
		p.logger.Info("database pool closed")
	}
	return err
}

// Migrate executes the embedded schema migrations in filename order. Every
// statement is idempotent (CREATE TABLE IF NOT EXISTS), so re-running on boot
// is safe.
func Migrate(ctx context.Context, db *bun.DB) error {
	entries, err := fs.ReadDir(migrationsFS, "data/sql/migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		stmt, err := fs.ReadFile(migrationsFS, "data/sql/migrations/"+name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		if _, err := db.ExecContext(ctx, string(stmt)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", name, err)
		}
	}

	return nil
}
