// Package storage persists plan artifacts under stable, overwritable
// identities and serves them back by public URL.
//
// The identity of an artifact is its storage key, derived deterministically
// from (kind, client id) by the caller. Because the key never changes, a
// regeneration replaces the bytes behind the same URL and the owning record
// never needs a new pointer.
package storage

import "context"

// ArtifactStore is the binary store the plan pipeline writes to and the
// delivery notifier reads from. Implementations are injected into the
// orchestrator at construction so tests can substitute in-memory fakes.
type ArtifactStore interface {
	// Put uploads body under key with overwrite semantics and returns the
	// public retrieval URL. The same key always maps to the same URL.
	// Any existing object at key is best-effort deleted first; only the
	// upload itself failing is fatal.
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)

	// Fetch dereferences a public URL returned by Put and returns the
	// stored bytes. Used by delivery; authorization has already happened
	// at the orchestrator.
	Fetch(ctx context.Context, url string) ([]byte, error)

	// Remove deletes the object at key. Best-effort: a missing object is
	// not an error, and callers treat any failure as non-fatal.
	Remove(ctx context.Context, key string) error
}
