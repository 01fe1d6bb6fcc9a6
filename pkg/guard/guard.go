// Package guard enforces declarative reference, exclusivity and uniqueness constraints
// before an entity is written.
package guard

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	appErrors "github.com/noah-isme/univ-api/pkg/errors"
)

// Lookup answers existence queries against the entity's own table.
type Lookup interface {
	Exists(ctx context.Context, conds map[string]interface{}, excludeID string) (bool, error)
}

// Reference declares a relation field whose ids must be well formed.
type Reference[T any] struct {
	Field string
	IDs   func(T) []string
}

// Exclusive declares two fields of which exactly one must be set.
type Exclusive[T any] struct {
	A, B       string
	HasA, HasB func(T) bool
}

// Unique declares a column whose value may appear only once, optionally within a scope.
type Unique[T any] struct {
	Field     string
	Column    string
	Value     func(T) string
	Normalize func(string) string
	// Scope returns extra equality conditions that bound the uniqueness check.
	Scope   func(T) map[string]interface{}
	Message func(T) string
}

// Constraints bundles every rule for one entity type.
type Constraints[T any] struct {
	Entity     string
	References []Reference[T]
	Exclusive  []Exclusive[T]
	Unique     []Unique[T]
}

// IsValidID reports whether s is a well-formed entity identifier.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// ValidateID returns a validation error when id is malformed.
func ValidateID(field, id string) error {
	if IsValidID(id) {
		return nil
	}
	return appErrors.Validation(fmt.Sprintf("Invalid %s: %s", field, id), appErrors.FieldError{Field: field, Message: "invalid id"})
}

// Check runs reference, exclusivity and uniqueness rules in that order. id is the
// entity being updated and is excluded from uniqueness lookups; pass "" on create.
func (c Constraints[T]) Check(ctx context.Context, lookup Lookup, id string, doc T) error {
	if err := c.CheckReferences(doc); err != nil {
		return err
	}
	if err := c.CheckExclusive(doc); err != nil {
		return err
	}
	return c.CheckUnique(ctx, lookup, id, doc)
}

// CheckReferences validates the format of every declared relation id.
func (c Constraints[T]) CheckReferences(doc T) error {
	var details []appErrors.FieldError
	for _, ref := range c.References {
		for _, id := range ref.IDs(doc) {
			if id == "" {
				continue
			}
			if !IsValidID(id) {
				details = append(details, appErrors.FieldError{Field: ref.Field, Message: "invalid id: " + id})
			}
		}
	}
	if len(details) > 0 {
		return appErrors.Validation(fmt.Sprintf("invalid %s reference", c.label()), details...)
	}
	return nil
}

// CheckExclusive requires exactly one field of every declared pair.
func (c Constraints[T]) CheckExclusive(doc T) error {
	for _, ex := range c.Exclusive {
		hasA, hasB := ex.HasA(doc), ex.HasB(doc)
		if hasA == hasB {
			msg := fmt.Sprintf("%s must belong to exactly one of %s or %s", c.label(), ex.A, ex.B)
			return appErrors.Validation(msg,
				appErrors.FieldError{Field: ex.A, Message: "exactly one of " + ex.A + " or " + ex.B + " is required"},
				appErrors.FieldError{Field: ex.B, Message: "exactly one of " + ex.A + " or " + ex.B + " is required"},
			)
		}
	}
	return nil
}

// CheckUnique queries lookup for every declared unique column.
func (c Constraints[T]) CheckUnique(ctx context.Context, lookup Lookup, id string, doc T) error {
	for _, u := range c.Unique {
		value := u.Value(doc)
		if u.Normalize != nil {
			value = u.Normalize(value)
		}
		if value == "" {
			continue
		}

		conds := map[string]interface{}{u.Column: value}
		if u.Scope != nil {
			for k, v := range u.Scope(doc) {
				conds[k] = v
			}
		}

		exists, err := lookup.Exists(ctx, conds, id)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status,
				fmt.Sprintf("failed to check %s %s", c.label(), u.Field))
		}
		if exists {
			msg := fmt.Sprintf("%s with this %s already exists", c.label(), u.Field)
			if u.Message != nil {
				msg = u.Message(doc)
			}
			return appErrors.Clone(appErrors.ErrConflict, msg).WithDetails(appErrors.FieldError{Field: u.Field, Message: "already exists"})
		}
	}
	return nil
}

func (c Constraints[T]) label() string {
	if c.Entity == "" {
		return "entity"
	}
	return c.Entity
}

// UpperTrim is the normalizer for codes.
func UpperTrim(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Trim is the normalizer for names.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// Lower is the normalizer for emails.
func Lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
