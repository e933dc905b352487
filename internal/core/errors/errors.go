package errors

const (
	HttpInternalError     = "internal_error"
	HttpInvalidQueryError = "invalid_query"
	HttpInvalidRangeError = "invalid_date_range"
	HttpStorageError      = "storage_unavailable"
	HttpSyncFailedError   = "sync_failed"
)

// ErrorResponse is the error payload of every HTTP endpoint.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}

// Envelope wraps every response body: exactly one of Data and Error is
// non-null.
type Envelope struct {
	Data  interface{}    `json:"data"`
	Error *ErrorResponse `json:"error"`
}

// OK wraps data in a success envelope.
func OK(data interface{}) Envelope {
	return Envelope{Data: data}
}

// Fail wraps an error payload in an envelope.
func Fail(errorType, message string, details interface{}) Envelope {
	return Envelope{Error: &ErrorResponse{ErrorType: errorType, Message: message, Details: details}}
}
