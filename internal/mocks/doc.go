// Package mocks provides hand-written test doubles for the generation
// providers, the article archive and the authentication collaborators.
//
// Each mock has a func field per method for per-test behavior and plain
// fields for the common case, and records its calls:
//
//	completer := mocks.NewMockCompleterWithText("초안 본문")
//	completer.CompleteFn = func(ctx context.Context, prompt string, p generation.CallParams, key string) (string, error) {
//	    return "", errors.New("Error code: 429 - {'error': {'code': 'rate_limit_exceeded'}}")
//	}
//	...
//	assert.Equal(t, 1, completer.CallCount())
package mocks
