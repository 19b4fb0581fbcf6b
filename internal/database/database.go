package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// SupportedProviders lists every provider name Open and DialectFor accept.
var SupportedProviders = []string{"sqlite", "sqlite3", "postgresql", "postgres", "mysql"}

// NormalizeProvider maps provider aliases onto one canonical name.
func NormalizeProvider(provider string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "sqlite", "sqlite3":
		return "sqlite", nil
	case "postgresql", "postgres":
		return "postgres", nil
	case "mysql":
		return "mysql", nil
	default:
		return "", fmt.Errorf("unsupported database provider: %s. Supported providers: %v", provider, SupportedProviders)
	}
}

// Open opens a connection for the given provider and verifies it with a ping.
// The caller owns the returned handle and must close it.
func Open(ctx context.Context, provider, url string) (*sql.DB, error) {
	name, err := NormalizeProvider(provider)
	if err != nil {
		return nil, err
	}

	var driverName, dsn string
	switch name {
	case "sqlite":
		driverName = "sqlite3"
		dsn = sqliteDSN(url)
	case "postgres":
		driverName = "pgx"
		dsn = url
	case "mysql":
		driverName = "mysql"
		dsn = strings.TrimPrefix(url, "mysql://")
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", name, err)
	}

	if name == "sqlite" {
		// One writer, and ":memory:" databases are per connection.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(4)
		db.SetMaxIdleConns(2)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", name, err)
	}

	return db, nil
}

func sqliteDSN(url string) string {
	path := strings.TrimPrefix(url, "sqlite://")
	path = strings.TrimPrefix(path, "sqlite3://")
	if path == "" {
		path = "./db.sqlite"
	}
	if path == ":memory:" || strings.Contains(path, "?") {
		return path
	}
	return path + "?_busy_timeout=5000&_journal_mode=WAL"
}
