package projection

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	httperr "github.com/aevon-lab/catalog-sync/internal/core/errors"
	"github.com/araddon/dateparse"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the search API on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/search", s.HandleSearch)
}

// HandleSearch handles GET /search?starts_at=...&ends_at=...
// Both parameters are optional and accept any common date/time layout;
// values without a zone are read as UTC.
func (s *Service) HandleSearch(c *gin.Context) {
	startsAt, err := parseBound(c, "starts_at")
	if err != nil {
		c.JSON(http.StatusBadRequest, httperr.Fail(httperr.HttpInvalidQueryError, "Invalid query parameters", err.Error()))
		return
	}
	endsAt, err := parseBound(c, "ends_at")
	if err != nil {
		c.JSON(http.StatusBadRequest, httperr.Fail(httperr.HttpInvalidQueryError, "Invalid query parameters", err.Error()))
		return
	}

	resp, err := s.Query(c.Request.Context(), startsAt, endsAt)
	if err != nil {
		if errors.Is(err, ErrInvalidQuery) {
			c.JSON(http.StatusBadRequest, httperr.Fail(httperr.HttpInvalidRangeError, "Invalid date range", err.Error()))
			return
		}

		c.JSON(http.StatusInternalServerError, httperr.Fail(httperr.HttpStorageError, "Failed to query events", err.Error()))
		return
	}

	c.JSON(http.StatusOK, httperr.OK(resp))
}

func parseBound(c *gin.Context, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%s: cannot parse %q as a date", name, raw)
	}
	t = t.UTC()
	return &t, nil
}
