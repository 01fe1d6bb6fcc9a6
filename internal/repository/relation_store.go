package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// RelationStore applies set-style updates to uuid[] back-reference columns.
type RelationStore struct {
	db       *sqlx.DB
	observer QueryObserver
}

// NewRelationStore creates a new instance of RelationStore.
func NewRelationStore(db *sqlx.DB, observer QueryObserver) *RelationStore {
	return &RelationStore{db: db, observer: observer}
}

// Pull removes ownerID from column on every row holding it, except rows whose id is in keep.
func (s *RelationStore) Pull(ctx context.Context, table, column, ownerID string, keep []string) (int64, error) {
	builder := psql.Update(table).
		Set(column, sq.Expr("array_remove("+column+", ?::uuid)", ownerID)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Expr("?::uuid = ANY("+column+")", ownerID))
	if len(keep) > 0 {
		builder = builder.Where(sq.Expr("NOT (id = ANY(?::uuid[]))", pq.Array(keep)))
	}
	return s.exec(ctx, "pull", table, column, builder)
}

// AddToSet appends ownerID to column on target rows that do not hold it yet.
func (s *RelationStore) AddToSet(ctx context.Context, table, column, ownerID string, targets []string) (int64, error) {
	if len(targets) == 0 {
		return 0, nil
	}
	builder := psql.Update(table).
		Set(column, sq.Expr("array_append("+column+", ?::uuid)", ownerID)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Expr("id = ANY(?::uuid[])", pq.Array(targets))).
		Where(sq.Expr("NOT (?::uuid = ANY("+column+"))", ownerID))
	return s.exec(ctx, "add", table, column, builder)
}

func (s *RelationStore) exec(ctx context.Context, op, table, column string, builder sq.UpdateBuilder) (int64, error) {
	stmt, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s %s.%s: %w", op, table, column, err)
	}

	start := time.Now()
	res, err := s.db.ExecContext(ctx, stmt, args...)
	if s.observer != nil {
		s.observer.ObserveDBQuery(table+"."+op, time.Since(start))
	}
	if err != nil {
		return 0, fmt.Errorf("%s %s.%s: %w", op, table, column, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
