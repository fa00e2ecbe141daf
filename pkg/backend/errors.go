package backend

import "fmt"

// generic text used when the backend omits a message field.
const genericFailureMessage = "request failed"

// APIError is a server-rejected request: a response arrived but carried
// success=false or a non-2xx status. Message is the backend's
// human-readable message, suitable for surfacing to the user.
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend rejected request (%d): %s", e.StatusCode, e.Message)
}

// TransportError is a request that never completed: dial failure, timeout,
// or an unreadable response body.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
