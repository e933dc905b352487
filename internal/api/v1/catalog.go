package v1

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SellMode is the closed set of sell modes the catalog distinguishes.
// The provider sends free text; only "online" carries meaning.
type SellMode uint8

const (
	// SellModeOther covers every provider value that is not "online".
	SellModeOther SellMode = iota
	SellModeOnline
)

const sellModeOnlineLabel = "online"

// ParseSellMode maps the provider's free-text sell mode onto SellMode.
// The comparison is exact, matching the provider contract.
func ParseSellMode(s string) SellMode {
	if s == sellModeOnlineLabel {
		return SellModeOnline
	}
	return SellModeOther
}

func (m SellMode) String() string {
	if m == SellModeOnline {
		return sellModeOnlineLabel
	}
	return "other"
}

// IsOnline reports whether events of this sell mode carry a Summary.
func (m SellMode) IsOnline() bool {
	return m == SellModeOnline
}

// Value implements driver.Valuer.
func (m SellMode) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan implements sql.Scanner.
func (m *SellMode) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*m = ParseSellMode(v)
	case []byte:
		*m = ParseSellMode(string(v))
	case nil:
		*m = SellModeOther
	default:
		return fmt.Errorf("cannot scan %T into SellMode", src)
	}
	return nil
}

// BaseEvent is a show or campaign published by the provider.
// It owns its Events; the provider's ID is the natural key.
type BaseEvent struct {
	ID       int64
	SellMode SellMode
	Title    string
	Events   []Event
}

// Event is one dated occurrence of a BaseEvent.
//
// ID is the internal surrogate key, generated once when the occurrence is
// first seen and kept for its whole life. (ExternalID, BaseEventID) is unique.
type Event struct {
	ID          uuid.UUID
	ExternalID  int64
	BaseEventID int64
	StartsAt    time.Time
	EndsAt      time.Time
	SellFrom    time.Time
	SellTo      time.Time
	SoldOut     bool
	Zones       []Zone
}

// PriceScale is the number of decimal places prices are stored with.
const PriceScale int32 = 2

// Zone is a pricing and capacity tier of one Event.
// (ExternalID, EventID) is unique.
type Zone struct {
	ID         uuid.UUID
	ExternalID int64
	Capacity   int
	Price      decimal.Decimal
	Name       string
	Numbered   bool
	EventID    uuid.UUID
}

// Summary is the denormalized, read-optimized projection of an Event.
// It exists only while the owning BaseEvent sells online.
// MinPrice and MaxPrice are invalid (NULL) when the Event has no zones.
type Summary struct {
	EventID  uuid.UUID
	Title    string
	StartsAt time.Time
	EndsAt   time.Time
	MinPrice decimal.NullDecimal
	MaxPrice decimal.NullDecimal
}

// FindEvent returns the event with the given external id, or nil.
func (b *BaseEvent) FindEvent(externalID int64) *Event {
	for i := range b.Events {
		if b.Events[i].ExternalID == externalID {
			return &b.Events[i]
		}
	}
	return nil
}

// FindZone returns the zone with the given external id, or nil.
func (e *Event) FindZone(externalID int64) *Zone {
	for i := range e.Zones {
		if e.Zones[i].ExternalID == externalID {
			return &e.Zones[i]
		}
	}
	return nil
}
