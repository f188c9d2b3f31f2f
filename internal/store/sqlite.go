// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/wanderlust-offline/internal/config"
	"github.com/MKhiriev/wanderlust-offline/internal/logger"
	"github.com/MKhiriev/wanderlust-offline/migrations"
)

// DB is the SQLite handle shared by the Local Store.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnectSQLite opens the SQLite database described by cfg.
//
// The pool is limited to a single connection: every statement is serialized
// and in-memory databases survive between calls. When cfg.MaxPageCount is
// set the database size is capped with PRAGMA max_page_count, which makes
// writes fail with SQLITE_FULL once the quota is used up. The pragma is
// connection scoped, so it is applied to every connection the pool opens.
func NewConnectSQLite(ctx context.Context, cfg config.ClientDB, log *logger.Logger) (*DB, error) {
	if err := ensureDBDir(cfg.DSN); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database directory")
		return nil, err
	}

	conn := sql.OpenDB(newSQLiteConnector(cfg))
	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)

	if err := conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Str("dsn", cfg.DSN).Msg("connected to database successfully")

	return NewDB(conn, log), nil
}

// sqliteConnector opens pooled connections through a driver whose
// ConnectHook applies the storage quota.
type sqliteConnector struct {
	dsn    string
	driver *sqlite3.SQLiteDriver
}

func newSQLiteConnector(cfg config.ClientDB) sqliteConnector {
	d := &sqlite3.SQLiteDriver{}
	if cfg.MaxPageCount > 0 {
		pragma := fmt.Sprintf("PRAGMA max_page_count = %d;", cfg.MaxPageCount)
		d.ConnectHook = func(c *sqlite3.SQLiteConn) error {
			if _, err := c.Exec(pragma, nil); err != nil {
				return fmt.Errorf("error applying storage quota: %w", err)
			}
			return nil
		}
	}
	return sqliteConnector{dsn: cfg.DSN, driver: d}
}

func (c sqliteConnector) Connect(context.Context) (driver.Conn, error) {
	return c.driver.Open(c.dsn)
}

func (c sqliteConnector) Driver() driver.Driver {
	return c.driver
}

// NewDB wraps an already opened connection.
func NewDB(conn *sql.DB, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		errorClassificator: NewSQLiteErrorClassifier(),
		logger:             log,
	}
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// ensureDBDir creates the parent directory of a file-backed DSN.
func ensureDBDir(dsn string) error {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || strings.Contains(path, ":memory:") || strings.HasPrefix(dsn, "file::memory:") {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating DB directory: %w", err)
	}
	return nil
}
