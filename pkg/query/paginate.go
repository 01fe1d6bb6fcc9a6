package query

import (
	"context"

	appErrors "github.com/noah-isme/univ-api/pkg/errors"
)

// Collection is anything the paginator can count, page through and expand.
type Collection[T any] interface {
	Count(ctx context.Context, filter Filter) (int, error)
	Find(ctx context.Context, spec Spec) ([]T, error)
	Expand(ctx context.Context, items []T, expansions []Expansion) error
}

// Expansion replaces the ids stored in a relation field with the referenced documents,
// projected to Fields of the target schema (all fields when empty).
type Expansion struct {
	Field  string
	Schema Schema
	Fields []string
}

// Reference is a single relation slot that can be filled with its target document.
type Reference interface {
	RefID() string
	Populate(doc map[string]interface{})
}

// Relational exposes relation slots by field name.
type Relational interface {
	References(field string) []Reference
}

// Result is one page of a list request.
type Result[T any] struct {
	Items      []T
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// TotalPages returns ceil(total/limit).
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Paginate counts the matching documents, fetches the requested page and expands
// relation fields. Requesting a page past the end is reported as ErrPageNotFound
// only when the caller explicitly asked for a page.
func Paginate[T any](ctx context.Context, coll Collection[T], spec Spec, expansions ...Expansion) (*Result[T], error) {
	spec = spec.Normalized()

	total, err := coll.Count(ctx, spec.Filter)
	if err != nil {
		return nil, err
	}
	if spec.PageRequested && spec.Skip >= total {
		return nil, appErrors.Clone(appErrors.ErrPageNotFound, "")
	}

	items, err := coll.Find(ctx, spec)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 && len(expansions) > 0 {
		if err := coll.Expand(ctx, items, expansions); err != nil {
			return nil, err
		}
	}
	if items == nil {
		items = []T{}
	}

	return &Result[T]{
		Items:      items,
		Total:      total,
		Page:       spec.Page,
		Limit:      spec.Limit,
		TotalPages: TotalPages(total, spec.Limit),
	}, nil
}

// CollectRefs gathers the distinct ids referenced by field across items.
func CollectRefs[T any](items []T, field string) []string {
	seen := map[string]struct{}{}
	var ids []string
	for _, item := range items {
		rel, ok := any(item).(Relational)
		if !ok {
			continue
		}
		for _, ref := range rel.References(field) {
			id := ref.RefID()
			if id == "" {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

// Fill populates every reference in field from docs keyed by id. Dangling ids stay as ids.
func Fill[T any](items []T, field string, docs map[string]map[string]interface{}) {
	for _, item := range items {
		rel, ok := any(item).(Relational)
		if !ok {
			continue
		}
		for _, ref := range rel.References(field) {
			if doc, found := docs[ref.RefID()]; found {
				ref.Populate(doc)
			}
		}
	}
}
