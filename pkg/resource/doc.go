// Package resource provides a thin REST client that binds CRUD verbs to a
// resource path under a base URL.
//
// # Overview
//
// A Client is created once from a ClientConfig. Each resource the host
// application talks to gets an Endpoint, which issues exactly one HTTP request
// per call:
//
//	client, err := resource.New(resource.ClientConfig{
//	  BaseURL:        "https://api.example.com",
//	  DefaultHeaders: map[string]string{"X-App": "toolbox"},
//	})
//	people := client.Endpoint("people")
//
//	person, err := people.GetOne(ctx, 1)                            // GET    /people/1
//	list, err := people.GetMany(ctx, resource.Pairs("name", "a"))   // GET    /people?name=a
//	created, err := people.Create(ctx, map[string]any{"x": 1})      // POST   /people
//	updated, err := people.Update(ctx, 3, body)                     // PUT    /people/3
//	status, err := people.Remove(ctx, 2)                            // DELETE /people/2
//
// # Queries
//
// GetMany accepts any Query: a RawQuery string passed through, a QueryList of
// preformatted "k=v" pieces joined with "&", ordered QueryPairs, or a
// QueryMap whose keys are emitted in sorted order.
//
// # Results
//
// By default the response body is parsed as JSON into Result.Data. WithRaw
// returns the *http.Response with an unread body instead; the caller must
// close it. Remove only ever reports the status code.
//
// # Errors
//
// Every verb fails with one of:
//   - *HTTPError when the status is outside 200-299
//   - *ParseError when the body is not valid JSON and JSON was expected
//   - *CancelledError when a CancelToken or the context aborted the request
//   - *NetworkError for transport failures
//
// The client never retries. Surfacing failures immediately leaves retry and
// backoff policy to the host application.
//
// # Cancellation
//
// There are no built-in timeouts. Callers bound latency either with the
// context or with a CancelToken passed through WithCancel.
package resource
