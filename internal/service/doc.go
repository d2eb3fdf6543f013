// Package service contains the application use cases. GenerationService
// orchestrates the generation pipeline, credential resolution and article
// archiving behind the entry points used by the HTTP API and the CLI.
//
// Services receive their collaborators through constructor injection and
// depend only on interfaces, never on a concrete provider or store.
package service
