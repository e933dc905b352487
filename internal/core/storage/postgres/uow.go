package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	v1 "github.com/aevon-lab/catalog-sync/internal/api/v1"
	"github.com/aevon-lab/catalog-sync/internal/core/storage"
	"github.com/google/uuid"
)

// unitOfWork runs every read and write of one cycle in a single
// transaction.
type unitOfWork struct {
	tx *sql.Tx
}

func (u *unitOfWork) LoadBaseEvent(ctx context.Context, id int64) (*v1.BaseEvent, error) {
	var be v1.BaseEvent
	err := u.tx.QueryRowContext(ctx, querySelectBaseEventForUpdate, id).Scan(&be.ID, &be.SellMode, &be.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load base event %d: %w", id, err)
	}

	rows, err := u.tx.QueryContext(ctx, querySelectEventsByBaseEvent, id)
	if err != nil {
		return nil, fmt.Errorf("load events of base event %d: %w", id, err)
	}
	defer rows.Close()

	index := make(map[uuid.UUID]int)
	for rows.Next() {
		evt, err := scanEventRow(rows)
		if err != nil {
			return nil, err
		}
		index[evt.ID] = len(be.Events)
		be.Events = append(be.Events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}
	rows.Close()

	zoneRows, err := u.tx.QueryContext(ctx, querySelectZonesByBaseEvent, id)
	if err != nil {
		return nil, fmt.Errorf("load zones of base event %d: %w", id, err)
	}
	defer zoneRows.Close()

	for zoneRows.Next() {
		z, err := scanZoneRow(zoneRows)
		if err != nil {
			return nil, err
		}
		i, ok := index[z.EventID]
		if !ok {
			return nil, fmt.Errorf("zone %s references unknown event %s", z.ID, z.EventID)
		}
		be.Events[i].Zones = append(be.Events[i].Zones, z)
	}
	if err := zoneRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating zones: %w", err)
	}

	return &be, nil
}

func (u *unitOfWork) LoadSummaries(ctx context.Context, baseEventID int64) (map[uuid.UUID]v1.Summary, error) {
	rows, err := u.tx.QueryContext(ctx, querySelectSummariesByBaseEvent, baseEventID)
	if err != nil {
		return nil, fmt.Errorf("load summaries of base event %d: %w", baseEventID, err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]v1.Summary)
	for rows.Next() {
		s, err := scanSummaryRow(rows)
		if err != nil {
			return nil, err
		}
		out[s.EventID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating summaries: %w", err)
	}
	return out, nil
}

func (u *unitOfWork) InsertBaseEvent(ctx context.Context, be v1.BaseEvent) error {
	return u.exec(ctx, "insert base event", false, queryInsertBaseEvent, be.ID, be.SellMode, be.Title)
}

func (u *unitOfWork) UpdateBaseEvent(ctx context.Context, be v1.BaseEvent) error {
	return u.exec(ctx, "update base event", true, queryUpdateBaseEvent, be.ID, be.SellMode, be.Title)
}

func (u *unitOfWork) InsertEvent(ctx context.Context, evt v1.Event) error {
	return u.exec(ctx, "insert event", false, queryInsertEvent,
		evt.ID, evt.ExternalID, evt.BaseEventID,
		evt.StartsAt.UTC(), evt.EndsAt.UTC(), evt.SellFrom.UTC(), evt.SellTo.UTC(), evt.SoldOut)
}

func (u *unitOfWork) UpdateEvent(ctx context.Context, evt v1.Event) error {
	return u.exec(ctx, "update event", true, queryUpdateEvent,
		evt.ID, evt.StartsAt.UTC(), evt.EndsAt.UTC(), evt.SellFrom.UTC(), evt.SellTo.UTC(), evt.SoldOut)
}

func (u *unitOfWork) InsertZone(ctx context.Context, z v1.Zone) error {
	return u.exec(ctx, "insert zone", false, queryInsertZone,
		z.ID, z.ExternalID, z.Capacity, z.Price, z.Name, z.Numbered, z.EventID)
}

func (u *unitOfWork) UpdateZone(ctx context.Context, z v1.Zone) error {
	return u.exec(ctx, "update zone", true, queryUpdateZone, z.ID, z.Capacity, z.Price, z.Name, z.Numbered)
}

func (u *unitOfWork) DeleteZone(ctx context.Context, id uuid.UUID) error {
	return u.exec(ctx, "delete zone", true, queryDeleteZone, id)
}

func (u *unitOfWork) InsertSummary(ctx context.Context, s v1.Summary) error {
	return u.exec(ctx, "insert summary", false, queryInsertSummary,
		s.EventID, s.Title, s.StartsAt.UTC(), s.EndsAt.UTC(), s.MinPrice, s.MaxPrice)
}

func (u *unitOfWork) UpdateSummary(ctx context.Context, s v1.Summary) error {
	return u.exec(ctx, "update summary", true, queryUpdateSummary,
		s.EventID, s.Title, s.StartsAt.UTC(), s.EndsAt.UTC(), s.MinPrice, s.MaxPrice)
}

func (u *unitOfWork) DeleteSummary(ctx context.Context, eventID uuid.UUID) error {
	return u.exec(ctx, "delete summary", true, queryDeleteSummary, eventID)
}

func (u *unitOfWork) Commit() error {
	if err := u.tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (u *unitOfWork) Rollback() error {
	if err := u.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

// exec runs one write. With mustMatch, a statement that touches no row
// fails with storage.ErrNotFound.
func (u *unitOfWork) exec(ctx context.Context, op string, mustMatch bool, query string, args ...interface{}) error {
	result, err := u.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !mustMatch {
		return nil
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: check rows affected: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}
