package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	appErrors "github.com/noah-isme/univ-api/pkg/errors"
	"github.com/noah-isme/univ-api/pkg/query"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// sqlstateInvalidRegex is raised by Postgres for patterns its regex engine rejects.
const sqlstateInvalidRegex = "2201B"

// QueryObserver records database timings.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// Collection is the sqlx implementation of query.Collection for one table.
type Collection[T any] struct {
	db       *sqlx.DB
	schema   query.Schema
	observer QueryObserver
}

// NewCollection binds a schema to a database handle.
func NewCollection[T any](db *sqlx.DB, schema query.Schema) *Collection[T] {
	return &Collection[T]{db: db, schema: schema}
}

// Observe attaches a timing observer and returns the collection.
func (c *Collection[T]) Observe(observer QueryObserver) *Collection[T] {
	c.observer = observer
	return c
}

// Schema returns the table description.
func (c *Collection[T]) Schema() query.Schema {
	return c.schema
}

func (c *Collection[T]) track(op string, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveDBQuery(c.schema.Table+"."+op, time.Since(start))
	}
}

// Count returns the number of rows matching filter.
func (c *Collection[T]) Count(ctx context.Context, filter query.Filter) (int, error) {
	pred, err := c.schema.Where(filter)
	if err != nil {
		return 0, err
	}
	stmt, args, err := psql.Select("COUNT(*)").From(c.schema.Table).Where(pred).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s count: %w", c.schema.Table, err)
	}

	defer c.track("count", time.Now())
	var total int
	if err := c.db.GetContext(ctx, &total, stmt, args...); err != nil {
		return 0, filterError(fmt.Errorf("count %s: %w", c.schema.Table, err))
	}
	return total, nil
}

// Find returns one window of rows matching spec, sorted and projected.
func (c *Collection[T]) Find(ctx context.Context, spec query.Spec) ([]*T, error) {
	pred, err := c.schema.Where(spec.Filter)
	if err != nil {
		return nil, err
	}
	cols, err := c.schema.Columns(spec.Fields, spec.ExcludeFields)
	if err != nil {
		return nil, err
	}
	order, err := c.schema.OrderBy(spec.Sort)
	if err != nil {
		return nil, err
	}

	builder := psql.Select(cols...).From(c.schema.Table).Where(pred).OrderBy(order...)
	if spec.Limit > 0 {
		builder = builder.Limit(uint64(spec.Limit)).Offset(uint64(spec.Skip))
	}
	stmt, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s find: %w", c.schema.Table, err)
	}

	defer c.track("find", time.Now())
	var items []*T
	if err := c.db.SelectContext(ctx, &items, stmt, args...); err != nil {
		return nil, filterError(fmt.Errorf("find %s: %w", c.schema.Table, err))
	}
	return items, nil
}

// filterError turns driver rejections of client-supplied filter values into
// validation errors.
func filterError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == sqlstateInvalidRegex {
		return appErrors.Validation("invalid filter",
			appErrors.FieldError{Field: "regex", Message: "invalid regular expression: " + pqErr.Message})
	}
	return err
}

// FindByID returns one row with every public column. sql.ErrNoRows is returned unwrapped.
func (c *Collection[T]) FindByID(ctx context.Context, id string, expansions ...query.Expansion) (*T, error) {
	cols, err := c.schema.Columns(nil, nil)
	if err != nil {
		return nil, err
	}
	stmt, args, err := psql.Select(cols...).From(c.schema.Table).Where(sq.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s get: %w", c.schema.Table, err)
	}

	start := time.Now()
	var item T
	err = c.db.GetContext(ctx, &item, stmt, args...)
	c.track("get", start)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find %s by id: %w", c.schema.Table, err)
	}

	if len(expansions) > 0 {
		if err := c.Expand(ctx, []*T{&item}, expansions); err != nil {
			return nil, err
		}
	}
	return &item, nil
}

// Expand replaces relation ids with their referenced documents. Lookups for
// different fields run concurrently; filling happens afterwards.
func (c *Collection[T]) Expand(ctx context.Context, items []*T, expansions []query.Expansion) error {
	results := make([]map[string]map[string]interface{}, len(expansions))

	g, gctx := errgroup.WithContext(ctx)
	for i, exp := range expansions {
		i, exp := i, exp
		ids := query.CollectRefs(items, exp.Field)
		if len(ids) == 0 {
			continue
		}
		g.Go(func() error {
			docs, err := c.documents(gctx, exp, ids)
			if err != nil {
				return err
			}
			results[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, exp := range expansions {
		if results[i] != nil {
			query.Fill(items, exp.Field, results[i])
		}
	}
	return nil
}

func (c *Collection[T]) documents(ctx context.Context, exp query.Expansion, ids []string) (map[string]map[string]interface{}, error) {
	cols, err := exp.Schema.Columns(exp.Fields, nil)
	if err != nil {
		return nil, err
	}
	stmt, args, err := psql.Select(cols...).
		From(exp.Schema.Table).
		Where(sq.Expr("id = ANY(?::uuid[])", pq.Array(ids))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s expansion: %w", exp.Field, err)
	}

	defer c.track("expand_"+exp.Field, time.Now())
	rows, err := c.db.QueryxContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("expand %s: %w", exp.Field, err)
	}
	defer rows.Close()

	docs := make(map[string]map[string]interface{}, len(ids))
	for rows.Next() {
		row := map[string]interface{}{}
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("scan %s expansion: %w", exp.Field, err)
		}
		doc := exp.Schema.Document(row)
		docs[fmt.Sprint(doc["id"])] = doc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s expansion: %w", exp.Field, err)
	}
	return docs, nil
}

// Exists reports whether a row other than excludeID matches every condition.
func (c *Collection[T]) Exists(ctx context.Context, conds map[string]interface{}, excludeID string) (bool, error) {
	inner := psql.Select("1").From(c.schema.Table).Where(sq.Eq(conds))
	if excludeID != "" {
		inner = inner.Where(sq.NotEq{"id": excludeID})
	}
	stmt, args, err := inner.Limit(1).ToSql()
	if err != nil {
		return false, fmt.Errorf("build %s exists: %w", c.schema.Table, err)
	}

	defer c.track("exists", time.Now())
	var exists bool
	if err := c.db.GetContext(ctx, &exists, "SELECT EXISTS ("+stmt+")", args...); err != nil {
		return false, fmt.Errorf("check %s exists: %w", c.schema.Table, err)
	}
	return exists, nil
}

// InsertColumns writes doc using its db-tagged fields for columns.
func (c *Collection[T]) InsertColumns(ctx context.Context, doc *T, columns []string) error {
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		placeholders[i] = ":" + col
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		c.schema.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	defer c.track("insert", time.Now())
	if _, err := c.db.NamedExecContext(ctx, stmt, doc); err != nil {
		return fmt.Errorf("insert %s: %w", c.schema.Table, err)
	}
	return nil
}

// UpdateColumns rewrites columns of the row identified by doc's id field.
// sql.ErrNoRows is returned when no row matched.
func (c *Collection[T]) UpdateColumns(ctx context.Context, doc *T, columns []string) error {
	sets := make([]string, len(columns))
	for i, col := range columns {
		sets[i] = col + " = :" + col
	}
	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE id = :id", c.schema.Table, strings.Join(sets, ", "))

	defer c.track("update", time.Now())
	res, err := c.db.NamedExecContext(ctx, stmt, doc)
	if err != nil {
		return fmt.Errorf("update %s: %w", c.schema.Table, err)
	}
	return affectedOrNoRows(res)
}

// UpdateFields rewrites updated_at plus the columns behind the named API fields.
// Fields outside writable are skipped, so columns kept in step by other writers
// are only touched when a caller names them.
func (c *Collection[T]) UpdateFields(ctx context.Context, doc *T, writable, fields []string) error {
	allowed := make(map[string]bool, len(writable))
	for _, col := range writable {
		allowed[col] = true
	}
	columns := []string{"updated_at"}
	seen := map[string]bool{"updated_at": true}
	for _, name := range fields {
		f, ok := c.schema.Lookup(name)
		if !ok || !allowed[f.Column] || seen[f.Column] {
			continue
		}
		seen[f.Column] = true
		columns = append(columns, f.Column)
	}
	return c.UpdateColumns(ctx, doc, columns)
}

// Delete removes a row. sql.ErrNoRows is returned when no row matched.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	stmt, args, err := psql.Delete(c.schema.Table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build %s delete: %w", c.schema.Table, err)
	}

	defer c.track("delete", time.Now())
	res, err := c.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.schema.Table, err)
	}
	return affectedOrNoRows(res)
}

func affectedOrNoRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
