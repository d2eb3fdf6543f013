//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ktgktg/blogsmith/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// TestTimeout bounds setup and cleanup statements.
const TestTimeout = 5 * time.Second

// GetTestDatabaseURL returns the database URL for tests, checking
// BLOGSMITH_TEST_DB_URL then DATABASE_URL.
func GetTestDatabaseURL() string {
	if u := strings.TrimSpace(os.Getenv("BLOGSMITH_TEST_DB_URL")); u != "" {
		return u
	}
	return strings.TrimSpace(os.Getenv("DATABASE_URL"))
}

// ShouldSkipDatabaseTest reports whether no test database is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// GetTestDBWithT opens a migrated connection to the test database and closes
// it when the test finishes. The test is skipped without a database URL.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()
	if ShouldSkipDatabaseTest() {
		t.Skip("BLOGSMITH_TEST_DB_URL not set - skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, GetTestDatabaseURL())
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close database connection: %v", err)
		}
	})

	require.NoError(t, postgres.Migrate(ctx, db, nil), "failed to migrate test database")
	return db
}

// UniqueOwner returns an owner id no other test uses and deletes its stored
// keys when the test finishes.
func UniqueOwner(t *testing.T, db *sql.DB) string {
	t.Helper()
	owner := "test-" + uuid.NewString()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
		defer cancel()
		if _, err := db.ExecContext(ctx, `DELETE FROM user_api_keys WHERE owner = $1`, owner); err != nil {
			t.Logf("Warning: failed to clean up keys for %s: %v", owner, err)
		}
	})
	return owner
}
