package persistence

import (
	"context"
	"encoding/json"
)

// DocumentStore reads and writes the top-level fields of one logical
// document, addressed by collection and document id.
type DocumentStore interface {
	// Fetch returns every stored field as raw JSON. A missing document
	// yields an empty map, not an error.
	Fetch(ctx context.Context) (map[string]json.RawMessage, error)

	// Merge replaces the given fields wholesale and leaves the others untouched
	Merge(ctx context.Context, fields map[string]json.RawMessage) error

	// Ping checks that the backing store is reachable
	Ping(ctx context.Context) error
}

// DocumentRef addresses a document
type DocumentRef struct {
	Collection string
	Document   string
}

// String returns collection/document
func (r DocumentRef) String() string {
	return r.Collection + "/" + r.Document
}
