package feed

import (
	"encoding/xml"

	"github.com/shopspring/decimal"
)

// Document is the raw record tree of one provider feed.
// Field values are copied as-is; dates stay unparsed strings.
type Document struct {
	XMLName xml.Name     `xml:"eventList"`
	Version string       `xml:"version,attr"`
	Output  OutputRecord `xml:"output"`
}

// OutputRecord wraps the list of base events.
type OutputRecord struct {
	BaseEvents []BaseEventRecord `xml:"base_event"`
}

// BaseEventRecord is one <base_event> element.
type BaseEventRecord struct {
	BaseEventID        int64         `xml:"base_event_id,attr"`
	SellMode           string        `xml:"sell_mode,attr"`
	Title              string        `xml:"title,attr"`
	OrganizerCompanyID string        `xml:"organizer_company_id,attr"`
	Events             []EventRecord `xml:"event"`
}

// EventRecord is one <event> element, an occurrence of a base event.
type EventRecord struct {
	EventID        int64        `xml:"event_id,attr"`
	EventStartDate string       `xml:"event_start_date,attr"`
	EventEndDate   string       `xml:"event_end_date,attr"`
	SellFrom       string       `xml:"sell_from,attr"`
	SellTo         string       `xml:"sell_to,attr"`
	SoldOut        bool         `xml:"sold_out,attr"`
	Zones          []ZoneRecord `xml:"zone"`
}

// ZoneRecord is one <zone> element.
type ZoneRecord struct {
	ZoneID   int64           `xml:"zone_id,attr"`
	Capacity int             `xml:"capacity,attr"`
	Price    decimal.Decimal `xml:"price,attr"`
	Name     string          `xml:"name,attr"`
	Numbered bool            `xml:"numbered,attr"`
}
