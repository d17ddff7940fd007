package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDialectFor(t *testing.T) {
	tests := []struct {
		url     string
		dialect string
		dsn     string
	}{
		{"postgres://u:p@localhost/leads?sslmode=disable", "postgres", "postgres://u:p@localhost/leads?sslmode=disable"},
		{"postgresql://localhost/leads", "postgres", "postgresql://localhost/leads"},
		{"sqlite://./leads.db", "sqlite", "./leads.db"},
		{"sqlite:leads.db", "sqlite", "leads.db"},
		{"file:leads.db?cache=shared", "sqlite", "file:leads.db?cache=shared"},
		{":memory:", "sqlite", ":memory:"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			d, dsn, err := DialectFor(tt.url)
			require.NoError(t, err)
			require.Equal(t, tt.dialect, d.Name)
			require.Equal(t, tt.dsn, dsn)
		})
	}

	_, _, err := DialectFor("mysql://localhost/leads")
	require.Error(t, err)
}

func TestPlaceholder(t *testing.T) {
	require.Equal(t, "$3", Postgres.Placeholder(3))
	require.Equal(t, "?", SQLite.Placeholder(3))
}

func TestOpen_SQLiteCreatesTables(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.Equal(t, SQLite, db.Dialect)
	for _, table := range []string{
		"newsletter_subscriptions", "contact_submissions", "cv_submissions", "consultation_requests",
	} {
		var name string
		err := db.QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, table)
	}

	require.NoError(t, db.Migrate(ctx))
}
