// Package domain contains the value types shared by the generation pipeline,
// the archive, and the HTTP layer: providers, operations, requests, critiques,
// and article records. It has no dependencies on infrastructure.
package domain
