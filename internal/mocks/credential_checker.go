package mocks

import "context"

// MockCredentialChecker implements auth.CredentialChecker for testing
type MockCredentialChecker struct {
	CheckCredentialsFn func(ctx context.Context, id, secret string) (bool, error)

	// Users maps login ids to passwords when CheckCredentialsFn is nil
	Users map[string]string
	Err   error
}

// CheckCredentials implements the auth.CredentialChecker interface
func (m *MockCredentialChecker) CheckCredentials(ctx context.Context, id, secret string) (bool, error) {
	if m.CheckCredentialsFn != nil {
		return m.CheckCredentialsFn(ctx, id, secret)
	}
	if m.Err != nil {
		return false, m.Err
	}
	stored, ok := m.Users[id]
	return ok && stored == secret, nil
}
