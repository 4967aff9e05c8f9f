package resource

import (
	"fmt"
)

// HTTPError is returned when the server answers with a status outside 200-299.
// The body is kept for diagnostics but never interpreted.
type HTTPError struct {
	Status int
	URL    string
	Body   []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request to %s returned status %d", e.URL, e.Status)
}

func (e *HTTPError) Is(tgt error) bool {
	_, ok := tgt.(*HTTPError)
	return ok
}

// ParseError is returned when a response body expected to be JSON is not.
type ParseError struct {
	URL     string
	RawBody []byte
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse response from %s as JSON: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(tgt error) bool {
	_, ok := tgt.(*ParseError)
	return ok
}

// CancelledError is returned when a request was aborted by its CancelToken
// or its context before a response was fully received.
type CancelledError struct {
	URL string
	Err error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("request to %s was cancelled: %v", e.URL, e.Err)
}

func (e *CancelledError) Unwrap() error {
	return e.Err
}

func (e *CancelledError) Is(tgt error) bool {
	_, ok := tgt.(*CancelledError)
	return ok
}

// NetworkError is returned for transport-level failures such as DNS
// resolution or refused connections.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) Is(tgt error) bool {
	_, ok := tgt.(*NetworkError)
	return ok
}
