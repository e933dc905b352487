package feed

import "fmt"

// ValidationError describes why a base-event record was rejected.
// The whole base event, with everything nested under it, is dropped.
type ValidationError struct {
	BaseEventID int64
	EventID     int64
	ZoneID      int64
	Reason      string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("base event %d: event %d: zone %d: %s", e.BaseEventID, e.EventID, e.ZoneID, e.Reason)
}

const (
	reasonDuplicateZone    = "duplicate zone id"
	reasonNegativeCapacity = "negative capacity"
	reasonNegativePrice    = "negative price"
)

// Validate returns a *ValidationError for the first structural problem found
// in rec, or nil when the record can be imported whole.
func Validate(rec BaseEventRecord) error {
	for _, evt := range rec.Events {
		seen := make(map[int64]struct{}, len(evt.Zones))
		for _, zone := range evt.Zones {
			if _, dup := seen[zone.ZoneID]; dup {
				return &ValidationError{BaseEventID: rec.BaseEventID, EventID: evt.EventID, ZoneID: zone.ZoneID, Reason: reasonDuplicateZone}
			}
			seen[zone.ZoneID] = struct{}{}

			if zone.Capacity < 0 {
				return &ValidationError{BaseEventID: rec.BaseEventID, EventID: evt.EventID, ZoneID: zone.ZoneID, Reason: reasonNegativeCapacity}
			}
			if zone.Price.IsNegative() {
				return &ValidationError{BaseEventID: rec.BaseEventID, EventID: evt.EventID, ZoneID: zone.ZoneID, Reason: reasonNegativePrice}
			}
		}
	}
	return nil
}

// IsValid reports whether rec passes Validate.
func IsValid(rec BaseEventRecord) bool {
	return Validate(rec) == nil
}
