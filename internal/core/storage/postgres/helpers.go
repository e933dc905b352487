package postgres

import (
	"database/sql"
	"fmt"
	"time"

	v1 "github.com/aevon-lab/catalog-sync/internal/api/v1"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEventRow(row scanner) (v1.Event, error) {
	var evt v1.Event
	err := row.Scan(
		&evt.ID,
		&evt.ExternalID,
		&evt.BaseEventID,
		&evt.StartsAt,
		&evt.EndsAt,
		&evt.SellFrom,
		&evt.SellTo,
		&evt.SoldOut,
	)
	if err != nil {
		return v1.Event{}, fmt.Errorf("failed to scan event row: %w", err)
	}
	evt.StartsAt = evt.StartsAt.UTC()
	evt.EndsAt = evt.EndsAt.UTC()
	evt.SellFrom = evt.SellFrom.UTC()
	evt.SellTo = evt.SellTo.UTC()
	return evt, nil
}

func scanZoneRow(row scanner) (v1.Zone, error) {
	var z v1.Zone
	err := row.Scan(
		&z.ID,
		&z.ExternalID,
		&z.Capacity,
		&z.Price,
		&z.Name,
		&z.Numbered,
		&z.EventID,
	)
	if err != nil {
		return v1.Zone{}, fmt.Errorf("failed to scan zone row: %w", err)
	}
	return z, nil
}

func scanSummaryRow(row scanner) (v1.Summary, error) {
	var s v1.Summary
	err := row.Scan(
		&s.EventID,
		&s.Title,
		&s.StartsAt,
		&s.EndsAt,
		&s.MinPrice,
		&s.MaxPrice,
	)
	if err != nil {
		return v1.Summary{}, fmt.Errorf("failed to scan summary row: %w", err)
	}
	s.StartsAt = s.StartsAt.UTC()
	s.EndsAt = s.EndsAt.UTC()
	return s, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
