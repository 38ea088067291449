package sqlstore

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	qb "github.com/riskibarqy/pfr-scraper/internal/platform/querybuilder"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	pingTimeout = 5 * time.Second
)

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Options configures Open. QueryFormatter shapes the statement text recorded on spans.
type Options struct {
	Driver         string
	DSN            string
	DBName         string
	QueryFormatter func(query string) string
}

// DB is a traced connection pool that knows which bind style its driver takes.
type DB struct {
	*sqlx.DB
	driver string
	format qb.Format
}

func (db *DB) Driver() string {
	return db.driver
}

// Open connects, pings, and for SQLite creates the schema in place.
func Open(ctx context.Context, opts Options) (*DB, error) {
	var (
		system string
		format qb.Format
	)
	switch opts.Driver {
	case DriverPostgres:
		system, format = "postgresql", qb.Dollar
	case DriverSQLite:
		system, format = "sqlite", qb.Question
	default:
		return nil, errors.Newf("unsupported db driver %q", opts.Driver)
	}

	otelOpts := []otelsql.Option{
		otelsql.WithDBSystem(system),
	}
	if opts.DBName != "" {
		otelOpts = append(otelOpts, otelsql.WithDBName(opts.DBName))
	}
	if opts.QueryFormatter != nil {
		otelOpts = append(otelOpts, otelsql.WithQueryFormatter(opts.QueryFormatter))
	}

	conn, err := otelsqlx.Open(opts.Driver, opts.DSN, otelOpts...)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", opts.Driver)
	}
	if opts.Driver == DriverSQLite {
		// one writer; the file is locked per connection
		conn.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, errors.Wrapf(err, "ping %s database", opts.Driver)
	}

	db := &DB{DB: conn, driver: opts.Driver, format: format}
	if opts.Driver == DriverSQLite {
		if err := ensureSQLiteSchema(ctx, db); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}
	return db, nil
}

func withTx(ctx context.Context, db *DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.WithSecondaryError(err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	return nil
}
