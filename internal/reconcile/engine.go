// Package reconcile merges mapped base events into the catalog store and
// keeps the summary projection in step, one atomic unit of work per cycle.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	v1 "github.com/aevon-lab/catalog-sync/internal/api/v1"
	"github.com/aevon-lab/catalog-sync/internal/core/catalog"
	"github.com/aevon-lab/catalog-sync/internal/core/storage"
)

// Stats counts what one reconciliation wrote.
type Stats struct {
	BaseEvents int // base events processed
	Unchanged  int // base events that needed no write

	Inserts int
	Updates int
	Deletes int

	SummaryInserts int
	SummaryUpdates int
	SummaryDeletes int
}

func (s *Stats) add(cs catalog.ChangeSet) {
	s.BaseEvents++
	if cs.Empty() {
		s.Unchanged++
		return
	}
	s.Inserts += len(cs.BaseEvents.Inserts) + len(cs.Events.Inserts) + len(cs.Zones.Inserts)
	s.Updates += len(cs.BaseEvents.Updates) + len(cs.Events.Updates) + len(cs.Zones.Updates)
	s.Deletes += len(cs.Zones.Deletes)
	s.SummaryInserts += len(cs.Summaries.Inserts)
	s.SummaryUpdates += len(cs.Summaries.Updates)
	s.SummaryDeletes += len(cs.Summaries.Deletes)
}

// Engine applies incoming base events to a catalog store.
type Engine struct {
	store storage.CatalogStore
	opts  catalog.DiffOptions
}

func NewEngine(store storage.CatalogStore, opts catalog.DiffOptions) *Engine {
	if store == nil {
		panic("reconcile: store must not be nil")
	}
	return &Engine{store: store, opts: opts}
}

// Reconcile applies incoming in a single unit of work. It commits only when
// every base event was applied and ctx is still live; otherwise nothing is
// written.
func (e *Engine) Reconcile(ctx context.Context, incoming []v1.BaseEvent) (Stats, error) {
	uow, err := e.store.Begin(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err := uow.Rollback(); err != nil {
			slog.Warn("[Reconciler] Rollback failed", "error", err)
		}
	}()

	stats, err := e.ReconcileInto(ctx, uow, incoming)
	if err != nil {
		return stats, err
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	if err := uow.Commit(); err != nil {
		return stats, fmt.Errorf("commit: %w", err)
	}

	slog.Info("[Reconciler] Committed",
		"base_events", stats.BaseEvents,
		"unchanged", stats.Unchanged,
		"inserts", stats.Inserts,
		"updates", stats.Updates,
		"deletes", stats.Deletes,
		"summary_inserts", stats.SummaryInserts,
		"summary_updates", stats.SummaryUpdates,
		"summary_deletes", stats.SummaryDeletes,
	)
	return stats, nil
}

// ReconcileInto applies incoming through uow without committing. Base
// events are processed in order; ctx is checked before each one.
func (e *Engine) ReconcileInto(ctx context.Context, uow storage.UnitOfWork, incoming []v1.BaseEvent) (Stats, error) {
	var stats Stats
	for _, be := range incoming {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		cs, err := e.diff(ctx, uow, be)
		if err != nil {
			return stats, fmt.Errorf("base event %d: %w", be.ID, err)
		}
		if err := apply(ctx, uow, cs); err != nil {
			return stats, fmt.Errorf("base event %d: %w", be.ID, err)
		}
		stats.add(cs)

		slog.Debug("[Reconciler] Base event reconciled",
			"base_event_id", be.ID,
			"events", len(be.Events),
			"changed", !cs.Empty(),
		)
	}
	return stats, nil
}

func (e *Engine) diff(ctx context.Context, uow storage.UnitOfWork, incoming v1.BaseEvent) (catalog.ChangeSet, error) {
	stored, err := uow.LoadBaseEvent(ctx, incoming.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return catalog.ComputeDiff(nil, nil, incoming, e.opts), nil
	}
	if err != nil {
		return catalog.ChangeSet{}, err
	}

	summaries, err := uow.LoadSummaries(ctx, incoming.ID)
	if err != nil {
		return catalog.ChangeSet{}, err
	}
	return catalog.ComputeDiff(stored, summaries, incoming, e.opts), nil
}

// apply writes cs parents first. Zone and summary deletes run before
// inserts so a replaced natural key never collides.
func apply(ctx context.Context, uow storage.UnitOfWork, cs catalog.ChangeSet) error {
	steps := []func() error{
		func() error { return each(cs.BaseEvents.Inserts, bind(ctx, uow.InsertBaseEvent)) },
		func() error { return each(cs.BaseEvents.Updates, bind(ctx, uow.UpdateBaseEvent)) },
		func() error { return each(cs.Events.Inserts, bind(ctx, uow.InsertEvent)) },
		func() error { return each(cs.Events.Updates, bind(ctx, uow.UpdateEvent)) },
		func() error {
			return each(cs.Zones.Deletes, func(z v1.Zone) error { return uow.DeleteZone(ctx, z.ID) })
		},
		func() error { return each(cs.Zones.Inserts, bind(ctx, uow.InsertZone)) },
		func() error { return each(cs.Zones.Updates, bind(ctx, uow.UpdateZone)) },
		func() error {
			return each(cs.Summaries.Deletes, func(s v1.Summary) error { return uow.DeleteSummary(ctx, s.EventID) })
		},
		func() error { return each(cs.Summaries.Inserts, bind(ctx, uow.InsertSummary)) },
		func() error { return each(cs.Summaries.Updates, bind(ctx, uow.UpdateSummary)) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func bind[T any](ctx context.Context, fn func(context.Context, T) error) func(T) error {
	return func(row T) error { return fn(ctx, row) }
}

func each[T any](rows []T, fn func(T) error) error {
	for _, row := range rows {
		if err := fn(row); err != nil {
			return err
		}
	}
	return nil
}
