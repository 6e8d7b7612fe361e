// Package repository maps the gateway's entities onto a document store.
//
// A DocumentStore organises documents into named collections keyed by
// string identifiers. Three drivers implement it: MongoDB (the default),
// Redis (one hash per collection) and an in-process memory store.
package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no document has the requested id.
var ErrNotFound = errors.New("document not found")

// Filter matches documents whose Field equals Value.
type Filter struct {
	Field string
	Value interface{}
}

func Eq(field string, value interface{}) Filter {
	return Filter{Field: field, Value: value}
}

// DocumentStore is the collection/document API the gateway is written
// against. Documents are bson-encodable values; the identifier is stored
// under "_id". The variadic stamps name fields the store sets to its own
// clock at write time.
type DocumentStore interface {
	// Get decodes the document into out or returns ErrNotFound.
	Get(ctx context.Context, collection, id string, out interface{}) error
	// Set creates or fully replaces the document.
	Set(ctx context.Context, collection, id string, doc interface{}, stamps ...string) error
	// Add inserts the document under a store-generated id.
	Add(ctx context.Context, collection string, doc interface{}, stamps ...string) (string, error)
	// Update merges fields into the document, creating it when absent.
	// Dotted keys address nested fields.
	Update(ctx context.Context, collection, id string, fields map[string]interface{}, stamps ...string) error
	// Delete removes the document. Deleting a missing id is not an error.
	Delete(ctx context.Context, collection, id string) error
	// Find decodes every matching document, ordered by id, into out, which
	// must point to a slice.
	Find(ctx context.Context, collection string, out interface{}, filters ...Filter) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
