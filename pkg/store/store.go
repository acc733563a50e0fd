// Package store persists saved tree documents for the HTTP API.
//
// A [Document] is the raw source of one tree block plus its format and a
// title. Sources are stored unparsed so a document always renders with the
// current parser.
//
// Backends:
//   - MemoryStore: process-local, for tests and single-instance servers
//   - FileStore: one JSON file per document, for local use
//   - MongoStore: shared storage for multi-instance deployments
//
// # Usage
//
//	st := store.NewMemoryStore()
//	doc, err := st.Create(ctx, &store.Document{Title: "src", Source: src})
//	if err != nil {
//	    return err
//	}
//	got, err := st.Get(ctx, doc.ID)
//	if got == nil {
//	    // not found
//	}
package store

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/treeview/pkg/errors"
	"github.com/matzehuels/treeview/pkg/tree"
)

// DefaultTitle is used for documents created without a title.
const DefaultTitle = "Untitled"

// Document is a saved tree source.
type Document struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	Format    string    `json:"format" bson:"format"`
	Source    string    `json:"source" bson:"source"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// TreeFormat returns the parsed Format of the document.
func (d *Document) TreeFormat() (tree.Format, error) {
	return tree.ParseFormat(d.Format)
}

// Parse parses the document source with its stored format.
func (d *Document) Parse() ([]*tree.Node, error) {
	format, err := d.TreeFormat()
	if err != nil {
		return nil, err
	}
	return tree.Parse(d.Source, format)
}

// Validate checks that the document can be stored.
func (d *Document) Validate() error {
	if strings.TrimSpace(d.Source) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "document source is empty")
	}
	if _, err := d.TreeFormat(); err != nil {
		return err
	}
	return nil
}

// Store is the interface for document storage backends.
// Implementations are safe for concurrent use.
type Store interface {
	// Create validates doc, assigns a new ID and timestamps, and stores a copy.
	// The stored document is returned.
	Create(ctx context.Context, doc *Document) (*Document, error)

	// Get retrieves a document by ID.
	// Returns nil, nil if the document doesn't exist.
	Get(ctx context.Context, id string) (*Document, error)

	// List returns all documents, newest first.
	List(ctx context.Context) ([]*Document, error)

	// Delete removes a document. A missing document yields an error with
	// code NOT_FOUND.
	Delete(ctx context.Context, id string) error

	// Close releases resources held by the store.
	Close() error
}

// prepare returns a stored copy of doc with a fresh ID, normalized format and
// creation timestamps.
func prepare(doc *Document, now time.Time) (*Document, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "document is nil")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	format, _ := doc.TreeFormat()

	out := *doc
	out.ID = uuid.NewString()
	out.Format = format.String()
	if strings.TrimSpace(out.Title) == "" {
		out.Title = DefaultTitle
	}
	out.CreatedAt = now.UTC()
	out.UpdatedAt = out.CreatedAt
	return &out, nil
}

// validID reports whether id has the shape of an ID assigned by Create.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "tree %q not found", id)
}

// sortNewestFirst orders docs by creation time descending, then by ID.
func sortNewestFirst(docs []*Document) {
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].CreatedAt.After(docs[j].CreatedAt)
		}
		return docs[i].ID < docs[j].ID
	})
}
