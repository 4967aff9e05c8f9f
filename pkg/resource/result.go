package resource

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// Result is the resolved value of a request.
//
// In JSON mode Body holds the response bytes and Data their parsed form
// (nil for 204 No Content). In raw mode only Response is set and its body has
// not been read; the caller must close it.
type Result struct {
	StatusCode int
	Header     http.Header
	URL        string

	Body []byte
	Data any

	Response *http.Response
}

var errRawResult = errors.New("raw result has no buffered body")

// Raw reports whether the result carries an unread response.
func (r *Result) Raw() bool {
	return r.Response != nil
}

// Decode unmarshals the buffered body into v. A 204 No Content result leaves
// v untouched; any other empty body is a ParseError.
func (r *Result) Decode(v any) error {
	if r.Raw() {
		return errRawResult
	}
	if r.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return &ParseError{URL: r.URL, RawBody: r.Body, Err: err}
	}
	return nil
}

// releaseOnClose ties the lifetime of a request context to a raw body.
type releaseOnClose struct {
	io.ReadCloser
	release func()
}

func (b *releaseOnClose) Close() error {
	err := b.ReadCloser.Close()
	b.release()
	return err
}
