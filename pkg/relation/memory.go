package relation

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-process Store keyed by table, row id and column.
type MemoryStore struct {
	mu   sync.Mutex
	rows map[string]map[string]map[string][]string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: map[string]map[string]map[string][]string{}}
}

// Seed registers a row with its initial column values.
func (m *MemoryStore) Seed(table, id string, columns map[string][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rows[table] == nil {
		m.rows[table] = map[string]map[string][]string{}
	}
	row := map[string][]string{}
	for col, ids := range columns {
		row[col] = append([]string(nil), ids...)
	}
	m.rows[table][id] = row
}

// Values returns the ids stored in one column of one row.
func (m *MemoryStore) Values(table, id, column string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[table][id]
	if !ok {
		return nil
	}
	out := append([]string(nil), row[column]...)
	sort.Strings(out)
	return out
}

// Pull implements Store.
func (m *MemoryStore) Pull(_ context.Context, table, column, ownerID string, keep []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := toSet(keep)
	var affected int64
	for id, row := range m.rows[table] {
		if _, skip := kept[id]; skip {
			continue
		}
		values := row[column]
		filtered := values[:0:0]
		for _, v := range values {
			if v != ownerID {
				filtered = append(filtered, v)
			}
		}
		if len(filtered) != len(values) {
			row[column] = filtered
			affected++
		}
	}
	return affected, nil
}

// AddToSet implements Store.
func (m *MemoryStore) AddToSet(_ context.Context, table, column, ownerID string, targets []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var affected int64
	for _, id := range targets {
		row, ok := m.rows[table][id]
		if !ok {
			continue
		}
		if contains(row[column], ownerID) {
			continue
		}
		row[column] = append(row[column], ownerID)
		affected++
	}
	return affected, nil
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func contains(ids []string, target string) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
