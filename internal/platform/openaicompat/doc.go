// Package openaicompat implements generation.Completer for providers that
// speak the OpenAI chat completions protocol: OpenAI itself and Groq, which
// is reached through its OpenAI-compatible base URL.
package openaicompat
