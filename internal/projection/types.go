package projection

import (
	v1 "github.com/aevon-lab/catalog-sync/internal/api/v1"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// SummaryView is one search result.
type SummaryView struct {
	ID        uuid.UUID           `json:"id"`
	Title     string              `json:"title"`
	StartDate string              `json:"start_date"`
	StartTime string              `json:"start_time"`
	EndDate   string              `json:"end_date"`
	EndTime   string              `json:"end_time"`
	MinPrice  decimal.NullDecimal `json:"min_price"`
	MaxPrice  decimal.NullDecimal `json:"max_price"`
}

// SearchResponse is the data payload of GET /search.
type SearchResponse struct {
	Events []SummaryView `json:"events"`
}

// NewSummaryView projects a stored summary; dates and times are UTC.
func NewSummaryView(s v1.Summary) SummaryView {
	start, end := s.StartsAt.UTC(), s.EndsAt.UTC()
	return SummaryView{
		ID:        s.EventID,
		Title:     s.Title,
		StartDate: start.Format(dateLayout),
		StartTime: start.Format(timeLayout),
		EndDate:   end.Format(dateLayout),
		EndTime:   end.Format(timeLayout),
		MinPrice:  s.MinPrice,
		MaxPrice:  s.MaxPrice,
	}
}
