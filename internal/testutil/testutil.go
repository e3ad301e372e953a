// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"grimoire/internal/db"
	"grimoire/internal/models"
)

// TestDB connects to TEST_DATABASE_URL, applies migrations and registers
// cleanup. The test is skipped when the variable is unset.
func TestDB(t *testing.T) *db.DB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanupTestData(ctx, database.Pool)
	t.Cleanup(func() {
		cleanupTestData(ctx, database.Pool)
		database.Close()
	})

	return database
}

// cleanupTestData removes all test data from the database.
func cleanupTestData(ctx context.Context, pool *pgxpool.Pool) {
	pool.Exec(ctx, "DELETE FROM slug_lookups")
}

// SeedSlugLookups records query n times under matchType.
func SeedSlugLookups(t *testing.T, database *db.DB, query string, matchType models.MatchType, n int) {
	t.Helper()
	ctx := context.Background()

	for i := 0; i < n; i++ {
		if err := database.IncrementSlugLookup(ctx, query, matchType); err != nil {
			t.Fatalf("failed to seed slug lookup %q: %v", query, err)
		}
	}
}
