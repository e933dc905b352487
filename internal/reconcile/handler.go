package reconcile

import (
	"net/http"

	httperr "github.com/aevon-lab/catalog-sync/internal/core/errors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the admin sync trigger.
func (s *Scheduler) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/sync", s.HandleTrigger)
}

// HandleTrigger handles POST /v1/sync: it runs a cycle now, or waits for
// the one in flight, and reports its outcome.
func (s *Scheduler) HandleTrigger(c *gin.Context) {
	report, shared, err := s.TriggerNow(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, httperr.Fail(httperr.HttpSyncFailedError, "Sync cycle failed", err.Error()))
		return
	}

	c.JSON(http.StatusOK, httperr.OK(gin.H{
		"shared":      shared,
		"base_events": report.Stats.BaseEvents,
		"unchanged":   report.Stats.Unchanged,
		"inserts":     report.Stats.Inserts,
		"updates":     report.Stats.Updates,
		"deletes":     report.Stats.Deletes,
		"warnings":    report.Warnings,
		"duration_ms": report.Duration.Milliseconds(),
	}))
}
