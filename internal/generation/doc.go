// Package generation is the provider-agnostic core of blog article generation.
//
// A request flows through four pieces: the PromptBuilder renders the fixed
// instruction text for an operation, the Adapter dispatches exactly one call
// to the selected provider's Completer, a Sanitizer cleans the returned text
// according to the operation's profile, and on failure Classify maps the
// provider error to a Failure category with a user-facing message. Pipeline
// ties them together.
package generation
