package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect captures what differs between the supported SQL engines.
type Dialect struct {
	Name       string
	driver     string
	primaryKey string
	timestamp  string
	numbered   bool
}

var (
	Postgres = Dialect{
		Name:       "postgres",
		driver:     "postgres",
		primaryKey: "SERIAL PRIMARY KEY",
		timestamp:  "TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP",
		numbered:   true,
	}
	SQLite = Dialect{
		Name:       "sqlite",
		driver:     "sqlite",
		primaryKey: "INTEGER PRIMARY KEY AUTOINCREMENT",
		timestamp:  "TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP",
	}
)

// Placeholder returns the bind parameter for the n-th argument (1-based).
func (d Dialect) Placeholder(n int) string {
	if d.numbered {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// DB is an open lead store.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// DialectFor picks the dialect and driver DSN for a DATABASE_URL.
func DialectFor(url string) (Dialect, string, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return Postgres, url, nil
	case strings.HasPrefix(url, "sqlite://"):
		return SQLite, strings.TrimPrefix(url, "sqlite://"), nil
	case strings.HasPrefix(url, "sqlite:"):
		return SQLite, strings.TrimPrefix(url, "sqlite:"), nil
	case strings.HasPrefix(url, "file:"), url == ":memory:":
		return SQLite, url, nil
	default:
		return Dialect{}, "", fmt.Errorf("unsupported database url %q", url)
	}
}

// Open connects to the database behind url and creates the lead tables.
func Open(ctx context.Context, url string) (*DB, error) {
	dialect, dsn, err := DialectFor(url)
	if err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open(dialect.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", dialect.Name, err)
	}
	if dialect == SQLite {
		// every pooled connection to :memory: would otherwise see its own database
		sqlDB.SetMaxOpenConns(1)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to reach %s database (ping): %w", dialect.Name, err)
	}
	log.Printf("DB: %s connection established", dialect.Name)

	db := &DB{DB: sqlDB, Dialect: dialect}
	if err := db.Migrate(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the lead tables if they don't exist.
func (db *DB) Migrate(ctx context.Context) error {
	for _, table := range db.schema() {
		if _, err := db.ExecContext(ctx, table.ddl); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	log.Println("DB: lead tables verified/created")
	return nil
}

type tableDef struct {
	name string
	ddl  string
}

func (db *DB) schema() []tableDef {
	pk, ts := db.Dialect.primaryKey, db.Dialect.timestamp
	return []tableDef{
		{"newsletter_subscriptions", `
    CREATE TABLE IF NOT EXISTS newsletter_subscriptions (
        id ` + pk + `,
        email VARCHAR(320) NOT NULL UNIQUE,
        source VARCHAR(64) NOT NULL,
        created_at ` + ts + `
    );`},
		{"contact_submissions", `
    CREATE TABLE IF NOT EXISTS contact_submissions (
        id ` + pk + `,
        full_name VARCHAR(255) NOT NULL,
        email VARCHAR(320) NOT NULL,
        company VARCHAR(255),
        phone VARCHAR(64),
        inquiry_type VARCHAR(64),
        message TEXT,
        created_at ` + ts + `
    );`},
		{"cv_submissions", `
    CREATE TABLE IF NOT EXISTS cv_submissions (
        id ` + pk + `,
        full_name VARCHAR(255) NOT NULL,
        email VARCHAR(320) NOT NULL,
        phone VARCHAR(64),
        linkedin_url TEXT,
        job_role VARCHAR(255),
        experience_years VARCHAR(32),
        preferred_industry VARCHAR(255),
        message TEXT,
        created_at ` + ts + `
    );`},
		{"consultation_requests", `
    CREATE TABLE IF NOT EXISTS consultation_requests (
        id ` + pk + `,
        full_name VARCHAR(255) NOT NULL,
        email VARCHAR(320) NOT NULL,
        company VARCHAR(255),
        phone VARCHAR(64),
        service_interest VARCHAR(255),
        preferred_date VARCHAR(64),
        message TEXT,
        created_at ` + ts + `
    );`},
	}
}
