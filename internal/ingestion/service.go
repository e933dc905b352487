// Package ingestion turns the provider feed into catalog entities:
// fetch, parse, validate and map, in that order.
package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aevon-lab/catalog-sync/internal/feed"
)

// Service runs the fetch → parse → map half of a sync cycle.
type Service struct {
	source feed.Source
	mapper *Mapper
}

func NewService(source feed.Source, mapper *Mapper) *Service {
	if source == nil {
		panic("ingestion: source must not be nil")
	}
	if mapper == nil {
		mapper = NewMapper()
	}
	return &Service{
		source: source,
		mapper: mapper,
	}
}

// Load fetches and maps one feed document. Fetch and parse failures are
// fatal and returned; dropped records are reported in Result.Warnings.
// The context is checked between steps.
func (s *Service) Load(ctx context.Context) (*Result, error) {
	raw, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := feed.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := s.mapper.Map(doc)

	slog.Info("[Ingestion] Feed mapped",
		"base_events_in", len(doc.Output.BaseEvents),
		"base_events_out", len(res.BaseEvents),
		"warnings", len(res.Warnings),
	)
	return res, nil
}
