// Package database opens the PostgreSQL pool used by the rest of the
// application. Queries run through the pgx stdlib driver wrapped with
// otelsql so every statement shows up in traces.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"clubapi/internal/config"
)

// pingTimeout bounds the connectivity check in NewPostgres.
const pingTimeout = 5 * time.Second

// sqlOpen is swapped out in tests.
var sqlOpen = sql.Open

// NewPostgres opens an instrumented connection pool and verifies it with a
// ping before returning. The caller owns the returned pool and must close it.
func NewPostgres(c config.DatabaseConfig) (*sql.DB, error) {
	dsn, err := c.DSN()
	if err != nil {
		return nil, err
	}

	driverName, err := otelsql.Register("pgx",
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithSQLCommenter(true),
	)
	if err != nil {
		return nil, fmt.Errorf("register otelsql driver: %w", err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	applyPool(db, c)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// applyPool copies pool limits from config onto the handle. Unset values
// keep database/sql defaults.
func applyPool(db *sql.DB, c config.DatabaseConfig) {
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if lifetime := c.ConnMaxLifetime(); lifetime > 0 {
		db.SetConnMaxLifetime(lifetime)
	}
}
