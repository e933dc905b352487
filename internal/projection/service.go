// Package projection answers time-range searches over the summary
// projection.
package projection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/catalog-sync/internal/core/storage"
)

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid search query")

// Service reads summaries; it never writes.
type Service struct {
	reader storage.SummaryReader
}

func NewService(reader storage.SummaryReader) *Service {
	return &Service{reader: reader}
}

// Query returns the summaries that start at or after startsAt and end at or
// before endsAt. A nil bound is open-ended.
func (s *Service) Query(ctx context.Context, startsAt, endsAt *time.Time) (*SearchResponse, error) {
	if startsAt != nil && endsAt != nil && startsAt.After(*endsAt) {
		return nil, fmt.Errorf("%w: starts_at %s is after ends_at %s",
			ErrInvalidQuery, startsAt.Format(time.RFC3339), endsAt.Format(time.RFC3339))
	}

	summaries, err := s.reader.QuerySummaries(ctx, startsAt, endsAt)
	if err != nil {
		slog.Error("[Projection] Summary query failed",
			"starts_at", startsAt,
			"ends_at", endsAt,
			"error", err,
		)
		return nil, fmt.Errorf("query summaries: %w", err)
	}

	resp := &SearchResponse{Events: make([]SummaryView, 0, len(summaries))}
	for _, sum := range summaries {
		resp.Events = append(resp.Events, NewSummaryView(sum))
	}
	return resp, nil
}
