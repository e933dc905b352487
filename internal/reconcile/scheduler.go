package reconcile

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
)

const cycleKey = "sync"

// Runner runs one sync cycle.
type Runner interface {
	Run(ctx context.Context) (Report, error)
}

// Scheduler runs sync cycles on a fixed interval. Ticks and manual
// triggers share one in-flight cycle; a failed cycle is logged and the
// next tick starts over.
type Scheduler struct {
	interval     time.Duration
	cycleTimeout time.Duration
	runner       Runner
	group        singleflight.Group
}

// NewScheduler creates a scheduler. A zero cycleTimeout leaves cycles
// bounded only by the parent context.
func NewScheduler(interval, cycleTimeout time.Duration, runner Runner) *Scheduler {
	return &Scheduler{
		interval:     interval,
		cycleTimeout: cycleTimeout,
		runner:       runner,
	}
}

// Start runs a cycle immediately, then one per tick, until ctx is
// cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("[Scheduler] Starting sync scheduler",
		"interval", s.interval,
		"cycle_timeout", s.cycleTimeout,
	)

	s.runLogged(ctx)

	for {
		select {
		case <-ticker.C:
			s.runLogged(ctx)
		case <-ctx.Done():
			slog.Info("[Scheduler] Stopping (context cancelled)")
			return nil
		}
	}
}

// TriggerNow runs a cycle now, or joins the one already running. shared
// reports whether the result came from a cycle started elsewhere.
func (s *Scheduler) TriggerNow(ctx context.Context) (report Report, shared bool, err error) {
	ch := s.group.DoChan(cycleKey, func() (interface{}, error) {
		// Joined callers must not inherit the first caller's cancellation.
		cycleCtx := context.WithoutCancel(ctx)
		return s.run(cycleCtx)
	})

	select {
	case res := <-ch:
		r, _ := res.Val.(Report)
		return r, res.Shared, res.Err
	case <-ctx.Done():
		return Report{}, false, ctx.Err()
	}
}

func (s *Scheduler) runLogged(ctx context.Context) {
	v, err, shared := s.group.Do(cycleKey, func() (interface{}, error) {
		return s.run(ctx)
	})
	if err != nil {
		slog.Error("[Scheduler] Sync cycle failed", "error", err, "note", "will retry on next tick")
		return
	}
	if shared {
		return
	}

	report := v.(Report)
	slog.Info("[Scheduler] Sync cycle complete",
		"base_events", report.Stats.BaseEvents,
		"unchanged", report.Stats.Unchanged,
		"warnings", report.Warnings,
		"duration", report.Duration,
	)
}

func (s *Scheduler) run(ctx context.Context) (Report, error) {
	if s.cycleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cycleTimeout)
		defer cancel()
	}
	return s.runner.Run(ctx)
}
