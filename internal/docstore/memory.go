package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Memory is an in-process Store. It honours unique indexes, versions and
// atomic commits the same way the Postgres store does.
type Memory struct {
	mu      sync.RWMutex
	seq     int64
	docs    map[string]map[string]*memDoc
	indexes []UniqueIndex
}

type memDoc struct {
	data    []byte
	version int64
	seq     int64
}

// NewMemory builds an empty in-memory store enforcing the given indexes.
func NewMemory(indexes ...UniqueIndex) *Memory {
	return &Memory{
		docs:    make(map[string]map[string]*memDoc),
		indexes: indexes,
	}
}

// OpenSession starts a new unit of work.
func (m *Memory) OpenSession() Session {
	return &memSession{store: m, tracker: newTracker()}
}

// Ping always succeeds.
func (m *Memory) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Count returns the number of documents stored in a collection.
func (m *Memory) Count(collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs[collection])
}

type memSession struct {
	store *Memory
	tracker
}

func (s *memSession) Load(ctx context.Context, collection, id string, dst any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.store.mu.RLock()
	doc, ok := s.store.docs[collection][id]
	var data []byte
	var version int64
	if ok {
		data, version = doc.data, doc.version
	}
	s.store.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	s.observe(collection, id, version)
	return nil
}

func (s *memSession) Query(ctx context.Context, collection string, filter Filter, dst any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	type row struct {
		id  string
		doc memDoc
	}
	s.store.mu.RLock()
	rows := make([]row, 0, len(s.store.docs[collection]))
	for id, doc := range s.store.docs[collection] {
		rows = append(rows, row{id: id, doc: *doc})
	}
	s.store.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool { return rows[i].doc.seq < rows[j].doc.seq })

	matched := make([]json.RawMessage, 0, len(rows))
	for _, r := range rows {
		fields := map[string]any{}
		if err := json.Unmarshal(r.doc.data, &fields); err != nil {
			return fmt.Errorf("decode %s/%s: %w", collection, r.id, err)
		}
		if !matches(fields, filter) {
			continue
		}
		matched = append(matched, r.doc.data)
		s.observe(collection, r.id, r.doc.version)
	}
	return decodeRows(matched, dst)
}

func (s *memSession) SaveChanges(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	writes, err := s.drain()
	if err != nil {
		return err
	}
	if len(writes) == 0 {
		return nil
	}

	m := s.store
	m.mu.Lock()
	defer m.mu.Unlock()

	// stage into copies so a failing write leaves the store untouched
	staged := make(map[string]map[string]*memDoc)
	collectionFor := func(name string) map[string]*memDoc {
		if c, ok := staged[name]; ok {
			return c
		}
		c := make(map[string]*memDoc, len(m.docs[name]))
		for id, doc := range m.docs[name] {
			c[id] = doc
		}
		staged[name] = c
		return c
	}

	seq := m.seq
	committed := make(map[docKey]int64, len(writes))
	for _, w := range writes {
		coll := collectionFor(w.key.collection)
		current, exists := coll[w.key.id]
		if w.checked {
			if !exists || current.version != w.expected {
				return fmt.Errorf("%w: %s/%s", ErrConcurrency, w.key.collection, w.key.id)
			}
		}
		if err := m.checkUnique(coll, w); err != nil {
			return err
		}

		next := &memDoc{data: w.data, version: 1}
		if exists {
			next.version = current.version + 1
			next.seq = current.seq
		} else {
			seq++
			next.seq = seq
		}
		coll[w.key.id] = next
		committed[w.key] = next.version
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	for name, coll := range staged {
		m.docs[name] = coll
	}
	m.seq = seq
	for key, version := range committed {
		s.observe(key.collection, key.id, version)
	}
	return nil
}

func (m *Memory) checkUnique(coll map[string]*memDoc, w stagedWrite) error {
	for _, idx := range m.indexes {
		if idx.Collection != w.key.collection {
			continue
		}
		value, ok := fieldValue(w.data, idx.Field)
		if !ok {
			continue
		}
		for id, doc := range coll {
			if id == w.key.id {
				continue
			}
			if other, ok := fieldValue(doc.data, idx.Field); ok && other == value {
				return fmt.Errorf("%w: %s.%s=%q", ErrConflict, idx.Collection, idx.Field, value)
			}
		}
	}
	return nil
}

func fieldValue(data []byte, field string) (string, bool) {
	fields := map[string]any{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return "", false
	}
	v, ok := fields[field]
	if !ok || v == nil {
		return "", false
	}
	return stringify(v), true
}

func matches(fields map[string]any, filter Filter) bool {
	for _, cond := range filter.Conditions {
		v, present := fields[cond.Field]
		switch cond.op {
		case opIsNull:
			if present && v != nil {
				return false
			}
		case opEq:
			if !present || v == nil || stringify(v) != stringify(cond.Value) {
				return false
			}
		}
	}
	return true
}
