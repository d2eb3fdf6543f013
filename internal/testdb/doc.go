//go:build integration

// Package testdb provides helpers for tests that run against a real
// PostgreSQL database.
//
// Tests using it are compiled only with the integration build tag and are
// skipped when no database URL is configured:
//
//	func TestCredentialStoreRoundTrip(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    owner := testdb.UniqueOwner(t, db)
//	    ...
//	}
//
// # Environment Variables
//
// - BLOGSMITH_TEST_DB_URL: connection string used by tests
// - DATABASE_URL: fallback connection string
//
// GetTestDBWithT applies the embedded migrations once per connection, so
// tests never depend on the order they run in. Rows written by a test are
// keyed by an owner from UniqueOwner and removed in t.Cleanup.
package testdb
