// Package auth issues and validates the signed session tokens used by the
// HTTP API. Users are checked against an external CredentialChecker; there
// is no server-side session state.
package auth
