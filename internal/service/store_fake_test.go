package service

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"

	"github.com/noah-isme/univ-api/pkg/query"
)

// memStore is an in-memory entityStore. Filters are ignored by Count and Find.
type memStore[T any] struct {
	rows   map[string]*T
	id     func(*T) *string
	taken  func(conds map[string]interface{}, excludeID string) bool
	err     error
	lookup  []map[string]interface{}
	written [][]string
}

func newMemStore[T any](id func(*T) *string) *memStore[T] {
	return &memStore[T]{rows: map[string]*T{}, id: id}
}

func (m *memStore[T]) put(doc T) string {
	p := &doc
	if *m.id(p) == "" {
		*m.id(p) = uuid.NewString()
	}
	m.rows[*m.id(p)] = p
	return *m.id(p)
}

func (m *memStore[T]) Count(context.Context, query.Filter) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return len(m.rows), nil
}

func (m *memStore[T]) Find(_ context.Context, spec query.Spec) ([]*T, error) {
	if m.err != nil {
		return nil, m.err
	}
	ids := make([]string, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	start := spec.Skip
	if start > len(ids) {
		start = len(ids)
	}
	end := len(ids)
	if spec.Limit > 0 && start+spec.Limit < end {
		end = start + spec.Limit
	}
	out := make([]*T, 0, end-start)
	for _, id := range ids[start:end] {
		c := *m.rows[id]
		out = append(out, &c)
	}
	return out, nil
}

func (m *memStore[T]) Expand(context.Context, []*T, []query.Expansion) error { return nil }

func (m *memStore[T]) Exists(_ context.Context, conds map[string]interface{}, excludeID string) (bool, error) {
	m.lookup = append(m.lookup, conds)
	if m.taken == nil {
		return false, nil
	}
	return m.taken(conds, excludeID), nil
}

func (m *memStore[T]) FindByID(_ context.Context, id string, _ ...query.Expansion) (*T, error) {
	if m.err != nil {
		return nil, m.err
	}
	doc, ok := m.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	c := *doc
	return &c, nil
}

func (m *memStore[T]) Create(_ context.Context, doc *T) error {
	if m.err != nil {
		return m.err
	}
	if *m.id(doc) == "" {
		*m.id(doc) = uuid.NewString()
	}
	m.put(*doc)
	return nil
}

func (m *memStore[T]) Update(_ context.Context, doc *T, fields []string) error {
	if _, ok := m.rows[*m.id(doc)]; !ok {
		return sql.ErrNoRows
	}
	m.written = append(m.written, fields)
	c := *doc
	m.rows[*m.id(doc)] = &c
	return nil
}

func (m *memStore[T]) Delete(_ context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.rows, id)
	return nil
}
