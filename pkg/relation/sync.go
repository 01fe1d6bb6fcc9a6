// Package relation keeps many-to-many back-references consistent when one side changes.
package relation

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	appErrors "github.com/noah-isme/univ-api/pkg/errors"
)

// Mirror names the back-reference column that must reflect an owner's relation list.
type Mirror struct {
	Name   string
	Table  string
	Column string
}

// Store applies set-style updates to array columns.
type Store interface {
	// Pull removes ownerID from column on every row that holds it, except rows whose id is in keep.
	Pull(ctx context.Context, table, column, ownerID string, keep []string) (int64, error)
	// AddToSet appends ownerID to column on rows whose id is in targets and that do not hold it yet.
	AddToSet(ctx context.Context, table, column, ownerID string, targets []string) (int64, error)
}

// Observer receives one callback per store operation.
type Observer interface {
	ObserveReferenceSync(mirror, op string, affected int64, err error)
}

// Synchronizer applies Replace and Detach against a Store.
type Synchronizer struct {
	store    Store
	logger   *zap.Logger
	observer Observer
}

// NewSynchronizer constructs a synchronizer. observer may be nil.
func NewSynchronizer(store Store, logger *zap.Logger, observer Observer) *Synchronizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synchronizer{store: store, logger: logger, observer: observer}
}

// Replace makes m's back-references reflect targets exactly: ownerID is pulled from every
// row outside targets and added to every row inside it. Running it twice is a no-op.
func (s *Synchronizer) Replace(ctx context.Context, m Mirror, ownerID string, targets []string) error {
	targets = Distinct(targets)

	removed, err := s.store.Pull(ctx, m.Table, m.Column, ownerID, targets)
	s.observe(m, "pull", removed, err)
	if err != nil {
		return s.fail(m, ownerID, "pull", err)
	}

	added, err := s.store.AddToSet(ctx, m.Table, m.Column, ownerID, targets)
	s.observe(m, "add", added, err)
	if err != nil {
		return s.fail(m, ownerID, "add", err)
	}

	s.logger.Debug("references synchronized",
		zap.String("mirror", m.Name),
		zap.String("owner_id", ownerID),
		zap.Int64("removed", removed),
		zap.Int64("added", added),
	)
	return nil
}

// Detach removes ownerID from every listed mirror. Mirrors are cleaned concurrently.
func (s *Synchronizer) Detach(ctx context.Context, ownerID string, mirrors ...Mirror) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, m := range mirrors {
		m := m
		g.Go(func() error {
			removed, err := s.store.Pull(gctx, m.Table, m.Column, ownerID, nil)
			s.observe(m, "detach", removed, err)
			if err != nil {
				return s.fail(m, ownerID, "detach", err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *Synchronizer) observe(m Mirror, op string, affected int64, err error) {
	if s.observer != nil {
		s.observer.ObserveReferenceSync(m.Name, op, affected, err)
	}
}

func (s *Synchronizer) fail(m Mirror, ownerID, op string, err error) error {
	s.logger.Error("reference sync failed",
		zap.String("mirror", m.Name),
		zap.String("owner_id", ownerID),
		zap.String("op", op),
		zap.Error(err),
	)
	return appErrors.Wrap(
		fmt.Errorf("%s %s.%s: %w", op, m.Table, m.Column, err),
		appErrors.ErrReferenceSync.Code,
		appErrors.ErrReferenceSync.Status,
		appErrors.ErrReferenceSync.Message,
	)
}

// Distinct drops empty and duplicate ids while keeping order.
func Distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
