package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-job-tracker/internal/config"
	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/migrations"
)

// DB wraps a database/sql pool with the dialect-specific pieces the
// repositories need: a squirrel builder with the right placeholder format
// and an error classificator.
type DB struct {
	*sql.DB
	dialect            migrations.Dialect
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB opens the database named by cfg.DSN: "sqlite://path" selects SQLite,
// "postgres://" or "postgresql://" selects PostgreSQL through pgx.
func NewDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch {
	case cfg.IsSQLite():
		return NewConnectSQLite(ctx, cfg, log)
	case strings.HasPrefix(cfg.DSN, "postgres://"), strings.HasPrefix(cfg.DSN, "postgresql://"):
		return NewConnectPostgres(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: unknown DSN scheme", ErrUnsupportedDatabase)
	}
}

func newDB(conn *sql.DB, dialect migrations.Dialect, log *logger.Logger) *DB {
	placeholder := sq.PlaceholderFormat(sq.Question)
	classificator := ErrorClassificator(NewSQLiteErrorClassifier())
	if dialect == migrations.Postgres {
		placeholder = sq.Dollar
		classificator = NewPostgresErrorClassifier()
	}

	return &DB{
		DB:                 conn,
		dialect:            dialect,
		builder:            sq.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassificator: classificator,
		logger:             log,
	}
}

// Migrate applies the embedded schema of the DB's dialect.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.dialect)
}

// rebind rewrites "?" placeholders of a hand-written query for the dialect.
func (db *DB) rebind(query string) string {
	if db.dialect != migrations.Postgres {
		return query
	}

	rebound, err := sq.Dollar.ReplacePlaceholders(query)
	if err != nil {
		return query
	}
	return rebound
}

// classify maps a driver error to the ErrorClassification of the dialect.
// A context deadline counts as QueryCanceled regardless of the driver.
func (db *DB) classify(err error) ErrorClassification {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return QueryCanceled
	}
	if db.errorClassificator == nil {
		return Unclassified
	}
	return db.errorClassificator.Classify(err)
}

// queryError wraps err with ErrQueryTimeout when the statement was canceled
// and with base otherwise.
func (db *DB) queryError(base, err error) error {
	if db.classify(err) == QueryCanceled {
		return fmt.Errorf("%w: %w", ErrQueryTimeout, err)
	}
	return fmt.Errorf("%w: %w", base, err)
}
