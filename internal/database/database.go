package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialect names the SQL flavour behind a Database.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DefaultMaxConnections bounds the pool when Options leaves it unset.
const DefaultMaxConnections = 5

type Options struct {
	// URL is the connection string: sqlite://path, file:path, a bare path,
	// or postgres://...
	URL            string
	MaxConnections int
	LogLevel       logger.LogLevel
}

func (o Options) maxConnections() int {
	if o.MaxConnections <= 0 {
		return DefaultMaxConnections
	}
	return o.MaxConnections
}

func (o Options) logLevel() logger.LogLevel {
	if o.LogLevel == 0 {
		return logger.Warn
	}
	return o.LogLevel
}

type Database struct {
	DB      *gorm.DB
	dialect Dialect
}

// New opens the connection pool and brings the schema up to date.
// Errors wrap ErrConnection or ErrMigration; callers must not serve
// traffic after either.
func New(ctx context.Context, opts Options) (*Database, error) {
	db, err := Open(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("Database initialized successfully (%s, pool of %d)", db.dialect, opts.maxConnections())
	return db, nil
}

// Open connects without migrating.
func Open(ctx context.Context, opts Options) (*Database, error) {
	dialect, dialector, maxConns, err := dialectorFor(opts.URL, opts.maxConnections())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(opts.logLevel()),
		TranslateError:         true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(maxConns)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	return &Database{DB: db, dialect: dialect}, nil
}

func (d *Database) Dialect() Dialect {
	return d.dialect
}

// Close shuts the pool down. In-flight scopes fail instead of hanging.
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the store is reachable.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func dialectorFor(rawURL string, maxConns int) (Dialect, gorm.Dialector, int, error) {
	switch {
	case rawURL == "":
		return "", nil, 0, errors.New("connection string is empty")
	case strings.HasPrefix(rawURL, "postgres://"), strings.HasPrefix(rawURL, "postgresql://"):
		return DialectPostgres, postgres.Open(rawURL), maxConns, nil
	case strings.HasPrefix(rawURL, "sqlite://"):
		rawURL = strings.TrimPrefix(rawURL, "sqlite://")
	case strings.Contains(rawURL, "://"):
		return "", nil, 0, fmt.Errorf("unsupported database scheme in %q", redact(rawURL))
	}

	if strings.HasPrefix(strings.TrimPrefix(rawURL, "file:"), ":memory:") {
		// every pooled connection would get its own empty in-memory database
		maxConns = 1
	}
	return DialectSQLite, sqlite.Open(sqliteDSN(rawURL)), maxConns, nil
}

// sqliteDSN enables foreign keys, WAL and a busy timeout. Transactions take
// the write lock up front so that read-then-write scopes never fail on lock
// upgrade.
func sqliteDSN(path string) string {
	params := "_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate"
	if strings.Contains(path, "?") {
		return path + "&" + params
	}
	return path + "?" + params
}

func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<unparseable>"
	}
	return u.Redacted()
}

// ParseLogLevel maps a config string to a gorm log level.
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
