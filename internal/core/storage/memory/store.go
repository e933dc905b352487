// Package memory is an in-process catalog store. It backs tests and the
// "memory" database type; state is lost on restart.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	v1 "github.com/aevon-lab/catalog-sync/internal/api/v1"
	"github.com/aevon-lab/catalog-sync/internal/core/storage"
	"github.com/google/uuid"
)

var (
	_ storage.CatalogStore  = (*Store)(nil)
	_ storage.SummaryReader = (*Store)(nil)
)

var errDuplicate = errors.New("duplicate key")

type state struct {
	baseEvents map[int64]v1.BaseEvent
	events     map[uuid.UUID]v1.Event
	zones      map[uuid.UUID]v1.Zone
	summaries  map[uuid.UUID]v1.Summary
}

func newState() *state {
	return &state{
		baseEvents: make(map[int64]v1.BaseEvent),
		events:     make(map[uuid.UUID]v1.Event),
		zones:      make(map[uuid.UUID]v1.Zone),
		summaries:  make(map[uuid.UUID]v1.Summary),
	}
}

// clone copies every row. Rows are stored without their child slices, so
// a shallow copy of each map is a deep copy of the state.
func (s *state) clone() *state {
	out := &state{
		baseEvents: make(map[int64]v1.BaseEvent, len(s.baseEvents)),
		events:     make(map[uuid.UUID]v1.Event, len(s.events)),
		zones:      make(map[uuid.UUID]v1.Zone, len(s.zones)),
		summaries:  make(map[uuid.UUID]v1.Summary, len(s.summaries)),
	}
	for k, v := range s.baseEvents {
		out.baseEvents[k] = v
	}
	for k, v := range s.events {
		out.events[k] = v
	}
	for k, v := range s.zones {
		out.zones[k] = v
	}
	for k, v := range s.summaries {
		out.summaries[k] = v
	}
	return out
}

// Store keeps the catalog in memory. A unit of work edits a private copy
// that replaces the shared state on Commit; one unit of work runs at a
// time, like the row lock taken by the postgres store.
type Store struct {
	mu    sync.RWMutex
	state *state

	// writer holds a token while a unit of work is open.
	writer chan struct{}
}

func NewStore() *Store {
	return &Store{
		state:  newState(),
		writer: make(chan struct{}, 1),
	}
}

// Begin blocks until no other unit of work is open or ctx is done.
func (s *Store) Begin(ctx context.Context) (storage.UnitOfWork, error) {
	select {
	case s.writer <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	s.mu.RLock()
	working := s.state.clone()
	s.mu.RUnlock()

	return &unitOfWork{store: s, state: working}, nil
}

// QuerySummaries filters committed summaries by the optional bounds.
func (s *Store) QuerySummaries(ctx context.Context, startsAt, endsAt *time.Time) ([]v1.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]v1.Summary, 0, len(s.state.summaries))
	for _, sum := range s.state.summaries {
		if startsAt != nil && sum.StartsAt.Before(*startsAt) {
			continue
		}
		if endsAt != nil && sum.EndsAt.After(*endsAt) {
			continue
		}
		out = append(out, sum)
	}
	sortSummaries(out)
	return out, nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) commit(working *state) {
	s.mu.Lock()
	s.state = working
	s.mu.Unlock()
}

type unitOfWork struct {
	store *Store
	state *state
	done  bool
}

func (u *unitOfWork) check(ctx context.Context) error {
	if u.done {
		return errors.New("unit of work already finished")
	}
	return ctx.Err()
}

func (u *unitOfWork) LoadBaseEvent(ctx context.Context, id int64) (*v1.BaseEvent, error) {
	if err := u.check(ctx); err != nil {
		return nil, err
	}

	be, ok := u.state.baseEvents[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	for _, evt := range u.state.events {
		if evt.BaseEventID == id {
			be.Events = append(be.Events, evt)
		}
	}
	sort.Slice(be.Events, func(i, j int) bool { return be.Events[i].ExternalID < be.Events[j].ExternalID })

	for i := range be.Events {
		for _, z := range u.state.zones {
			if z.EventID == be.Events[i].ID {
				be.Events[i].Zones = append(be.Events[i].Zones, z)
			}
		}
		zones := be.Events[i].Zones
		sort.Slice(zones, func(a, b int) bool { return zones[a].ExternalID < zones[b].ExternalID })
	}
	return &be, nil
}

func (u *unitOfWork) LoadSummaries(ctx context.Context, baseEventID int64) (map[uuid.UUID]v1.Summary, error) {
	if err := u.check(ctx); err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]v1.Summary)
	for id, sum := range u.state.summaries {
		if evt, ok := u.state.events[id]; ok && evt.BaseEventID == baseEventID {
			out[id] = sum
		}
	}
	return out, nil
}

func (u *unitOfWork) InsertBaseEvent(ctx context.Context, be v1.BaseEvent) error {
	if err := u.check(ctx); err != nil {
		return err
	}
	if _, ok := u.state.baseEvents[be.ID]; ok {
		return fmt.Errorf("insert base event %d: %w", be.ID, errDuplicate)
	}
	be.Events = nil
	u.state.baseEvents[be.ID] = be
	return nil
}

func (u *unitOfWork) UpdateBaseEvent(ctx context.Context, be v1.BaseEvent) error {
	if err := u.check(ctx); err != nil {
		return err
	}
	if _, ok := u.state.baseEvents[be.ID]; !ok {
		return fmt.Errorf("update base event %d: %w", be.ID, storage.ErrNotFound)
	}
	be.Events = nil
	u.state.baseEvents[be.ID] = be
	return nil
}

func (u *unitOfWork) InsertEvent(ctx context.Context, evt v1.Event) error {
	if err := u.check(ctx); err != nil {
		return err
	}
	if _, ok := u.state.baseEvents[evt.BaseEventID]; !ok {
		return fmt.Errorf("insert event %s: base event %d: %w", evt.ID, evt.BaseEventID, storage.ErrNotFound)
	}
	if _, ok := u.state.events[evt.ID]; ok {
		return fmt.Errorf("insert event %s: %w", evt.ID, errDuplicate)
	}
	for _, other := range u.state.events {
		if other.BaseEventID == evt.BaseEventID && other.ExternalID == evt.ExternalID {
			return fmt.Errorf("insert event (%d, %d): %w", evt.ExternalID, evt.BaseEventID, errDuplicate)
		}
	}
	evt.Zones = nil
	u.state.events[evt.ID] = evt
	return nil
}

func (u *unitOfWork) UpdateEvent(ctx context.Context, evt v1.Event) error {
	if err := u.check(ctx); err != nil {
		return err
	}
	existing, ok := u.state.events[evt.ID]
	if !ok {
		return fmt.Errorf("update event %s: %w", evt.ID, storage.ErrNotFound)
	}
	existing.StartsAt = evt.StartsAt
	existing.EndsAt = evt.EndsAt
	existing.SellFrom = evt.SellFrom
	existing.SellTo = evt.SellTo
	existing.SoldOut = evt.SoldOut
	u.state.events[evt.ID] = existing
	return nil
}

func (u *unitOfWork) InsertZone(ctx context.Context, z v1.Zone) error {
	if err := u.check(ctx); err != nil {
		return err
	}
	if _, ok := u.state.events[z.EventID]; !ok {
		return fmt.Errorf("insert zone %s: event %s: %w", z.ID, z.EventID, storage.ErrNotFound)
	}
	if _, ok := u.state.zones[z.ID]; ok {
		return fmt.Errorf("insert zone %s: %w", z.ID, errDuplicate)
	}
	for _, other := range u.state.zones {
		if other.EventID == z.EventID && other.ExternalID == z.ExternalID {
			return fmt.Errorf("insert zone (%d, %s): %w", z.ExternalID, z.EventID, errDuplicate)
		}
	}
	u.state.zones[z.ID] = z
	return nil
}

func (u *unitOfWork) UpdateZone(ctx context.Context, z v1.Zone) error {
	if err := u.check(ctx); err != nil {
		return err
	}
	existing, ok := u.state.zones[z.ID]
	if !ok {
		return fmt.Errorf("update zone %s: %w", z.ID, storage.ErrNotFound)
	}
	existing.Capacity = z.Capacity
	existing.Price = z.Price
	existing.Name = z.Name
	existing.Numbered = z.Numbered
	u.state.zones[z.ID] = existing
	return nil
}

func (u *unitOfWork) DeleteZone(ctx context.Context, id uuid.UUID) error {
	if err := u.check(ctx); err != nil {
		return err
	}
	if _, ok := u.state.zones[id]; !ok {
		return fmt.Errorf("delete zone %s: %w", id, storage.ErrNotFound)
	}
	delete(u.state.zones, id)
	return nil
}

func (u *unitOfWork) InsertSummary(ctx context.Context, s v1.Summary) error {
	if err := u.check(ctx); err != nil {
		return err
	}
	if _, ok := u.state.events[s.EventID]; !ok {
		return fmt.Errorf("insert summary: event %s: %w", s.EventID, storage.ErrNotFound)
	}
	if _, ok := u.state.summaries[s.EventID]; ok {
		return fmt.Errorf("insert summary %s: %w", s.EventID, errDuplicate)
	}
	u.state.summaries[s.EventID] = s
	return nil
}

func (u *unitOfWork) UpdateSummary(ctx context.Context, s v1.Summary) error {
	if err := u.check(ctx); err != nil {
		return err
	}
	if _, ok := u.state.summaries[s.EventID]; !ok {
		return fmt.Errorf("update summary %s: %w", s.EventID, storage.ErrNotFound)
	}
	u.state.summaries[s.EventID] = s
	return nil
}

func (u *unitOfWork) DeleteSummary(ctx context.Context, eventID uuid.UUID) error {
	if err := u.check(ctx); err != nil {
		return err
	}
	if _, ok := u.state.summaries[eventID]; !ok {
		return fmt.Errorf("delete summary %s: %w", eventID, storage.ErrNotFound)
	}
	delete(u.state.summaries, eventID)
	return nil
}

func (u *unitOfWork) Commit() error {
	if u.done {
		return errors.New("unit of work already finished")
	}
	u.done = true
	u.store.commit(u.state)
	<-u.store.writer
	return nil
}

func (u *unitOfWork) Rollback() error {
	if u.done {
		return nil
	}
	u.done = true
	<-u.store.writer
	return nil
}

func sortSummaries(summaries []v1.Summary) {
	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if !a.StartsAt.Equal(b.StartsAt) {
			return a.StartsAt.Before(b.StartsAt)
		}
		return a.EventID.String() < b.EventID.String()
	})
}
