// Package gemini provides an implementation of the generation.Completer
// interface that uses Google's Gemini API.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the generation pipeline to Google's external Gemini service.
//
// Key points:
//
// 1. Credentials:
//   - The API key is supplied per call; a short-lived genai client is built
//     for each call so no key is held on shared state
//
// 2. Request shaping:
//   - Temperature, output cap and JSON mode come from generation.CallParams
//
// 3. Error Handling:
//   - genai.APIError values are converted to generation.CallError so the
//     error classifier sees the HTTP code and status
//   - No retries are performed
package gemini
