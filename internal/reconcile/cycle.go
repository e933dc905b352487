package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/catalog-sync/internal/ingestion"
)

// Loader produces the mapped base events of one feed document.
type Loader interface {
	Load(ctx context.Context) (*ingestion.Result, error)
}

// Report describes one finished sync cycle.
type Report struct {
	Stats    Stats
	Warnings int
	Duration time.Duration
}

// Cycle is one fetch → map → reconcile pass.
type Cycle struct {
	loader Loader
	engine *Engine
}

func NewCycle(loader Loader, engine *Engine) *Cycle {
	return &Cycle{loader: loader, engine: engine}
}

// Run executes one cycle. Nothing is written unless the whole cycle
// succeeds.
func (c *Cycle) Run(ctx context.Context) (Report, error) {
	started := time.Now()

	res, err := c.loader.Load(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load feed: %w", err)
	}
	for _, w := range res.Warnings {
		slog.Warn("[Cycle] Record dropped", "error", w)
	}

	stats, err := c.engine.Reconcile(ctx, res.BaseEvents)
	if err != nil {
		return Report{}, fmt.Errorf("reconcile: %w", err)
	}

	return Report{
		Stats:    stats,
		Warnings: len(res.Warnings),
		Duration: time.Since(started),
	}, nil
}
