package service

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/univ-api/pkg/errors"
	"github.com/noah-isme/univ-api/pkg/guard"
	"github.com/noah-isme/univ-api/pkg/query"
	"github.com/noah-isme/univ-api/pkg/relation"
	"github.com/noah-isme/univ-api/pkg/validation"
)

// entityStore is what every resource repository offers.
type entityStore[T any] interface {
	query.Collection[*T]
	guard.Lookup
	FindByID(ctx context.Context, id string, expansions ...query.Expansion) (*T, error)
	Create(ctx context.Context, doc *T) error
	Update(ctx context.Context, doc *T, fields []string) error
	Delete(ctx context.Context, id string) error
}

// referenceSyncer is the subset of relation.Synchronizer used by services.
type referenceSyncer interface {
	Replace(ctx context.Context, m relation.Mirror, ownerID string, targets []string) error
	Detach(ctx context.Context, ownerID string, mirrors ...relation.Mirror) error
}

// resource holds the shared read/write plumbing of one entity type.
type resource[T any] struct {
	entity      string
	store       entityStore[T]
	constraints guard.Constraints[*T]
	expansions  []query.Expansion
	validator   *validator.Validate
	logger      *zap.Logger
}

func newResource[T any](entity string, store entityStore[T], constraints guard.Constraints[*T], expansions []query.Expansion, validate *validator.Validate, logger *zap.Logger) resource[T] {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return resource[T]{
		entity:      entity,
		store:       store,
		constraints: constraints,
		expansions:  expansions,
		validator:   validate,
		logger:      logger,
	}
}

func (r resource[T]) noun() string {
	return strings.ToLower(r.entity)
}

func (r resource[T]) validate(req interface{}) error {
	if err := r.validator.Struct(req); err != nil {
		return validation.Error(err, "invalid "+r.noun()+" payload")
	}
	return nil
}

// required reports the fields flagged as missing, sorted by name.
func (r resource[T]) required(missing map[string]bool) error {
	var details []appErrors.FieldError
	for field, absent := range missing {
		if absent {
			details = append(details, appErrors.FieldError{Field: field, Message: "is required"})
		}
	}
	if len(details) == 0 {
		return nil
	}
	sort.Slice(details, func(i, j int) bool { return details[i].Field < details[j].Field })
	return appErrors.Validation("invalid "+r.noun()+" payload", details...)
}

func (r resource[T]) list(ctx context.Context, spec query.Spec) (*query.Result[*T], error) {
	result, err := query.Paginate[*T](ctx, r.store, spec, r.expansions...)
	if err != nil {
		return nil, appErrors.Ensure(err, "failed to list "+r.noun())
	}
	return result, nil
}

// listBy lists rows whose relation field holds id. param names the path parameter in errors.
func (r resource[T]) listBy(ctx context.Context, field, param, id string, spec query.Spec) (*query.Result[*T], error) {
	if err := guard.ValidateID(param, id); err != nil {
		return nil, err
	}
	return r.list(ctx, spec.With(query.Filter{field: id}))
}

func (r resource[T]) get(ctx context.Context, id string) (*T, error) {
	if err := guard.ValidateID("id", id); err != nil {
		return nil, err
	}
	doc, err := r.store.FindByID(ctx, id, r.expansions...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, r.entity+" not found")
		}
		return nil, appErrors.Ensure(err, "failed to load "+r.noun())
	}
	return doc, nil
}

// load fetches the raw row without expansions for modification.
func (r resource[T]) load(ctx context.Context, id string) (*T, error) {
	if err := guard.ValidateID("id", id); err != nil {
		return nil, err
	}
	doc, err := r.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, r.entity+" not found")
		}
		return nil, appErrors.Ensure(err, "failed to load "+r.noun())
	}
	return doc, nil
}

func (r resource[T]) create(ctx context.Context, doc *T) error {
	if err := r.constraints.Check(ctx, r.store, "", doc); err != nil {
		return err
	}
	if err := r.store.Create(ctx, doc); err != nil {
		return appErrors.Ensure(err, "failed to create "+r.noun())
	}
	return nil
}

// update stores the fields named in fields. Columns the request left out keep
// whatever value the row holds at write time.
func (r resource[T]) update(ctx context.Context, id string, doc *T, fields []string) error {
	if err := r.constraints.Check(ctx, r.store, id, doc); err != nil {
		return err
	}
	if err := r.store.Update(ctx, doc, fields); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, r.entity+" not found")
		}
		return appErrors.Ensure(err, "failed to update "+r.noun())
	}
	return nil
}

func (r resource[T]) remove(ctx context.Context, id string) error {
	if err := guard.ValidateID("id", id); err != nil {
		return err
	}
	if err := r.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, r.entity+" not found")
		}
		return appErrors.Ensure(err, "failed to delete "+r.noun())
	}
	return nil
}

// sentFields returns the json names of the non-nil pointer fields of a partial
// update request.
func sentFields(req interface{}) []string {
	v := reflect.Indirect(reflect.ValueOf(req))
	if v.Kind() != reflect.Struct {
		return nil
	}
	var fields []string
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() != reflect.Ptr || f.IsNil() {
			continue
		}
		name := strings.Split(v.Type().Field(i).Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		fields = append(fields, name)
	}
	return fields
}
