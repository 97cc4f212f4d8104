// Package docstore describes the remote document store every StackQuery
// entity lives in: named collections of documents with a unique id, system
// timestamps and caller-defined fields, filtered with a small query language.
//
// The server backs it with Postgres; the CLI reaches it over gRPC. Code that
// only needs to read and write documents, such as the vote resolver, depends
// on the Store interface alone.
package docstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the document does not exist.
var ErrNotFound = errors.New("document not found")

// Collection names used by the application.
const (
	Questions = "questions"
	Answers   = "answers"
	Votes     = "votes"
)

// Store is the document CRUD surface consumed by the application.
type Store interface {
	// Create stores fields as a new document. An empty id asks the store to
	// generate one.
	Create(ctx context.Context, collection, id string, fields map[string]any) (*Document, error)

	// Get fetches one document. Only Select queries are honored.
	Get(ctx context.Context, collection, id string, queries ...Query) (*Document, error)

	// List returns the documents matching queries and the total number of
	// matches ignoring Offset and Limit.
	List(ctx context.Context, collection string, queries ...Query) (*DocumentList, error)
}

// DocumentList is one page of a List call.
type DocumentList struct {
	Total     int         `json:"total"`
	Documents []*Document `json:"documents"`
}
