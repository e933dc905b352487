package reconcile

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func postSync(t *testing.T, s *Scheduler) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	s.RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/sync", nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHandleTrigger(t *testing.T) {
	runner := newBlockingRunner()
	close(runner.release)

	code, body := postSync(t, NewScheduler(time.Hour, 0, runner))
	require.Equal(t, http.StatusOK, code)
	require.Nil(t, body["error"])
	data := body["data"].(map[string]interface{})
	require.Equal(t, float64(1), data["base_events"])
	require.Equal(t, false, data["shared"])
}

func TestHandleTrigger_Failure(t *testing.T) {
	runner := newBlockingRunner()
	runner.err = errors.New("fetch: 502 bad gateway")
	close(runner.release)

	code, body := postSync(t, NewScheduler(time.Hour, 0, runner))
	require.Equal(t, http.StatusInternalServerError, code)
	require.Nil(t, body["data"])
	errBody := body["error"].(map[string]interface{})
	require.Equal(t, "sync_failed", errBody["error_type"])
	require.Contains(t, errBody["details"], "502 bad gateway")
}
