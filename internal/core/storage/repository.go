package storage

import (
	"context"
	"errors"
	"time"

	v1 "github.com/aevon-lab/catalog-sync/internal/api/v1"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a base event has never been stored.
var ErrNotFound = errors.New("not found")

// CatalogStore hands out transactional units of work over the catalog.
type CatalogStore interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}

// UnitOfWork groups the reads and writes of one sync cycle. Nothing is
// visible to readers until Commit returns nil. Rollback after a successful
// Commit is a no-op, so callers can always defer it.
type UnitOfWork interface {
	// LoadBaseEvent returns the stored base event with all of its events
	// and their zones, or ErrNotFound.
	LoadBaseEvent(ctx context.Context, id int64) (*v1.BaseEvent, error)

	// LoadSummaries returns the stored summaries of the base event's
	// events keyed by event id.
	LoadSummaries(ctx context.Context, baseEventID int64) (map[uuid.UUID]v1.Summary, error)

	InsertBaseEvent(ctx context.Context, be v1.BaseEvent) error
	UpdateBaseEvent(ctx context.Context, be v1.BaseEvent) error

	// InsertEvent and UpdateEvent write the event row only; zones are
	// written through the zone methods.
	InsertEvent(ctx context.Context, evt v1.Event) error
	UpdateEvent(ctx context.Context, evt v1.Event) error

	InsertZone(ctx context.Context, z v1.Zone) error
	UpdateZone(ctx context.Context, z v1.Zone) error
	DeleteZone(ctx context.Context, id uuid.UUID) error

	InsertSummary(ctx context.Context, s v1.Summary) error
	UpdateSummary(ctx context.Context, s v1.Summary) error
	DeleteSummary(ctx context.Context, eventID uuid.UUID) error

	Commit() error
	Rollback() error
}

// SummaryReader serves the read side of the catalog.
type SummaryReader interface {
	// QuerySummaries returns summaries with StartsAt >= startsAt and
	// EndsAt <= endsAt. A nil bound is not applied. Results are ordered
	// by start then event id.
	QuerySummaries(ctx context.Context, startsAt, endsAt *time.Time) ([]v1.Summary, error)
}
