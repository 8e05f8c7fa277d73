// Package docstore provides a small document store with unit-of-work sessions.
//
// Documents are JSON encoded and grouped by collection. A Session stages
// writes with Store and applies them atomically on SaveChanges. Documents
// read through a session remember the version they were read at, and writing
// them back fails with ErrConcurrency if another session committed first.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNotFound is returned when no document matches.
	ErrNotFound = errors.New("docstore: document not found")
	// ErrConflict is returned when a write violates a unique index.
	ErrConflict = errors.New("docstore: unique index violated")
	// ErrConcurrency is returned when a document changed after it was loaded.
	ErrConcurrency = errors.New("docstore: document modified concurrently")
)

// Document is a value stored in a named collection under a string id.
type Document interface {
	Collection() string
	DocumentID() string
}

// UniqueIndex declares that a top-level field must be unique within a collection.
type UniqueIndex struct {
	Collection string
	Field      string
}

// Session is a unit of work scoped to a single request.
type Session interface {
	// Store stages an upsert of the given documents.
	Store(docs ...Document)
	// Load decodes the document into dst or returns ErrNotFound.
	Load(ctx context.Context, collection, id string, dst any) error
	// Query decodes every matching document into dst, a pointer to a slice,
	// in insertion order.
	Query(ctx context.Context, collection string, filter Filter, dst any) error
	// SaveChanges applies all staged writes atomically.
	SaveChanges(ctx context.Context) error
}

// Store opens sessions against a backing database.
type Store interface {
	OpenSession() Session
	Ping(ctx context.Context) error
}

type operator int

const (
	opEq operator = iota
	opIsNull
)

// Condition is a single predicate over a top-level document field.
type Condition struct {
	Field string
	op    operator
	Value any
}

// Eq matches documents whose field equals value.
func Eq(field string, value any) Condition {
	return Condition{Field: field, op: opEq, Value: value}
}

// IsNull matches documents whose field is null or absent.
func IsNull(field string) Condition {
	return Condition{Field: field, op: opIsNull}
}

// Filter is a conjunction of conditions. The zero Filter matches everything.
type Filter struct {
	Conditions []Condition
}

// Where builds a filter from conditions.
func Where(conds ...Condition) Filter {
	return Filter{Conditions: conds}
}

// stringify renders a condition value the way it appears inside the JSON document.
func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// Load reads a single document of type T.
func Load[T Document](ctx context.Context, s Session, id string) (*T, error) {
	var zero T
	var doc T
	if err := s.Load(ctx, zero.Collection(), id, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Query returns every document of type T matching filter.
func Query[T Document](ctx context.Context, s Session, filter Filter) ([]T, error) {
	var zero T
	docs := []T{}
	if err := s.Query(ctx, zero.Collection(), filter, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// First returns the first document of type T matching filter or ErrNotFound.
func First[T Document](ctx context.Context, s Session, filter Filter) (*T, error) {
	docs, err := Query[T](ctx, s, filter)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	return &docs[0], nil
}

type docKey struct {
	collection string
	id         string
}

// tracker holds the staged writes and observed versions shared by session implementations.
type tracker struct {
	pending  []Document
	versions map[docKey]int64
}

func newTracker() tracker {
	return tracker{versions: make(map[docKey]int64)}
}

func (t *tracker) Store(docs ...Document) {
	t.pending = append(t.pending, docs...)
}

func (t *tracker) observe(collection, id string, version int64) {
	t.versions[docKey{collection: collection, id: id}] = version
}

// expected returns the version a write must match, or false for a blind upsert.
func (t *tracker) expected(collection, id string) (int64, bool) {
	v, ok := t.versions[docKey{collection: collection, id: id}]
	return v, ok
}

type stagedWrite struct {
	key      docKey
	data     []byte
	expected int64
	checked  bool
}

// drain encodes the pending documents and clears the queue.
func (t *tracker) drain() ([]stagedWrite, error) {
	writes := make([]stagedWrite, 0, len(t.pending))
	for _, doc := range t.pending {
		data, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encode %s/%s: %w", doc.Collection(), doc.DocumentID(), err)
		}
		w := stagedWrite{key: docKey{collection: doc.Collection(), id: doc.DocumentID()}, data: data}
		w.expected, w.checked = t.expected(w.key.collection, w.key.id)
		writes = append(writes, w)
	}
	t.pending = nil
	return writes, nil
}

// decodeRows unmarshals raw JSON documents into dst, a pointer to a slice.
func decodeRows(rows []json.RawMessage, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("docstore: query destination must be a pointer to a slice, got %T", dst)
	}
	if len(rows) == 0 {
		rv.Elem().Set(reflect.MakeSlice(rv.Elem().Type(), 0, 0))
		return nil
	}
	buf, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, dst)
}
