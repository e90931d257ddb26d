package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema_mysql.sql
var schemaMySQL string

//go:embed schema_sqlite.sql
var schemaSQLite string

// NewDB creates a new database connection pool for the given driver and DSN.
// Supported drivers are "mysql" and "sqlite3".
func NewDB(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if driver == "sqlite3" {
		// sqlite in-memory databases are per-connection, and file databases
		// only allow a single writer anyway.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		slog.Warn("database ping failed — continuing without DB", "error", err)
	}

	return db, nil
}

// InitSchema creates the tables for the given driver if they do not exist.
// Safe to run on every startup.
func InitSchema(ctx context.Context, db *sql.DB, driver string) error {
	var schema string
	switch driver {
	case "mysql":
		schema = schemaMySQL
	case "sqlite3":
		schema = schemaSQLite
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	return nil
}
