package ingestion

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	v1 "github.com/aevon-lab/catalog-sync/internal/api/v1"
	"github.com/aevon-lab/catalog-sync/internal/feed"
	"github.com/araddon/dateparse"
	"github.com/google/uuid"
)

var errEmptyDateTime = errors.New("empty value")

// DateParseError reports an occurrence dropped because one of its date
// fields could not be parsed. Value is the raw provider string.
type DateParseError struct {
	BaseEventID int64
	EventID     int64
	Field       string
	Value       string
	Err         error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("incorrect datetime value %q for %s (base event %d, event %d)", e.Value, e.Field, e.BaseEventID, e.EventID)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}

// Mapper converts validated feed records into catalog entities.
type Mapper struct {
	newID    func() uuid.UUID
	location *time.Location
}

// NewMapper returns a Mapper that interprets zone-less provider timestamps in UTC.
func NewMapper() *Mapper {
	return &Mapper{
		newID:    uuid.New,
		location: time.UTC,
	}
}

// Result is the outcome of mapping one feed document.
// Warnings holds every record that was dropped: *feed.ValidationError for
// rejected base events and *DateParseError for rejected occurrences.
type Result struct {
	BaseEvents []v1.BaseEvent
	Warnings   []error
}

// Map converts every base-event record of doc. Invalid records are dropped
// and reported in Result.Warnings; mapping itself never fails.
func (m *Mapper) Map(doc *feed.Document) *Result {
	res := &Result{
		BaseEvents: make([]v1.BaseEvent, 0, len(doc.Output.BaseEvents)),
	}
	for _, rec := range doc.Output.BaseEvents {
		be, warnings := m.MapBaseEvent(rec)
		res.Warnings = append(res.Warnings, warnings...)
		if be != nil {
			res.BaseEvents = append(res.BaseEvents, *be)
		}
	}
	return res
}

// MapBaseEvent validates rec and maps it. It returns nil when the record is
// invalid; occurrences with unparsable dates are dropped individually.
// A base event left with no occurrences is still returned.
func (m *Mapper) MapBaseEvent(rec feed.BaseEventRecord) (*v1.BaseEvent, []error) {
	if err := feed.Validate(rec); err != nil {
		slog.Warn("[Mapper] Dropping invalid base event", "base_event_id", rec.BaseEventID, "error", err)
		return nil, []error{err}
	}

	var warnings []error
	events := make([]v1.Event, 0, len(rec.Events))
	for _, evtRec := range rec.Events {
		evt, err := m.MapOccurrence(evtRec, rec.BaseEventID)
		if err != nil {
			warnings = append(warnings, err)
			continue
		}
		events = append(events, *evt)
	}

	return &v1.BaseEvent{
		ID:       rec.BaseEventID,
		SellMode: v1.ParseSellMode(rec.SellMode),
		Title:    rec.Title,
		Events:   events,
	}, warnings
}

// MapOccurrence maps one occurrence record owned by baseEventID. If any of
// the four date fields fails to parse the occurrence is excluded: the
// returned event is nil and the error is a *DateParseError.
func (m *Mapper) MapOccurrence(rec feed.EventRecord, baseEventID int64) (*v1.Event, error) {
	evt := &v1.Event{
		ID:          m.newID(),
		ExternalID:  rec.EventID,
		BaseEventID: baseEventID,
		SoldOut:     rec.SoldOut,
	}

	fields := []struct {
		name string
		raw  string
		dst  *time.Time
	}{
		{name: "event_start_date", raw: rec.EventStartDate, dst: &evt.StartsAt},
		{name: "event_end_date", raw: rec.EventEndDate, dst: &evt.EndsAt},
		{name: "sell_from", raw: rec.SellFrom, dst: &evt.SellFrom},
		{name: "sell_to", raw: rec.SellTo, dst: &evt.SellTo},
	}

	for _, f := range fields {
		t, err := m.parseDateTime(f.raw)
		if err != nil {
			slog.Warn("[Mapper] Incorrect datetime value", "value", f.raw, "field", f.name,
				"base_event_id", baseEventID, "event_id", rec.EventID)
			return nil, &DateParseError{
				BaseEventID: baseEventID,
				EventID:     rec.EventID,
				Field:       f.name,
				Value:       f.raw,
				Err:         err,
			}
		}
		*f.dst = t
	}

	evt.Zones = make([]v1.Zone, 0, len(rec.Zones))
	for _, zoneRec := range rec.Zones {
		evt.Zones = append(evt.Zones, m.MapZone(zoneRec, evt.ID))
	}
	return evt, nil
}

// MapZone copies a zone record, rounding the price to v1.PriceScale.
// It always succeeds.
func (m *Mapper) MapZone(rec feed.ZoneRecord, eventID uuid.UUID) v1.Zone {
	return v1.Zone{
		ID:         m.newID(),
		ExternalID: rec.ZoneID,
		Capacity:   rec.Capacity,
		Price:      rec.Price.Round(v1.PriceScale),
		Name:       rec.Name,
		Numbered:   rec.Numbered,
		EventID:    eventID,
	}
}

func (m *Mapper) parseDateTime(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, errEmptyDateTime
	}
	t, err := dateparse.ParseIn(raw, m.location)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
