package errors

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvelope_JSON(t *testing.T) {
	ok, err := json.Marshal(OK(map[string]int{"n": 1}))
	require.NoError(t, err)
	require.JSONEq(t, `{"data":{"n":1},"error":null}`, string(ok))

	fail, err := json.Marshal(Fail(HttpInvalidRangeError, "bad range", "starts_at after ends_at"))
	require.NoError(t, err)
	require.JSONEq(t, `{"data":null,"error":{"error_type":"invalid_date_range","message":"bad range","details":"starts_at after ends_at"}}`, string(fail))
}
