// Package store defines the persistence interfaces for per-user provider
// credentials, together with an in-memory implementation and the shared
// transaction helper used by SQL-backed stores.
package store
