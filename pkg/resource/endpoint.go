package resource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"
)

// Endpoint is the set of CRUD verbs bound to one resource path. It holds no
// state beyond the path and may be shared freely.
type Endpoint struct {
	client       *Client
	basePath     string
	resourceName string
}

// Name returns the resource path the endpoint is bound to.
func (e *Endpoint) Name() string {
	return e.resourceName
}

// CollectionURL returns {baseURL}/{resourcePath}.
func (e *Endpoint) CollectionURL() string {
	if e.resourceName == "" {
		return e.basePath
	}
	return e.basePath + "/" + e.resourceName
}

// ItemURL returns {baseURL}/{resourcePath}/{id}. The id is formatted with
// fmt.Sprint and path-escaped.
func (e *Endpoint) ItemURL(id any) string {
	return e.CollectionURL() + "/" + url.PathEscape(fmt.Sprint(id))
}

// GetOne fetches a single item.
func (e *Endpoint) GetOne(ctx context.Context, id any, opts ...Option) (*Result, error) {
	return e.client.send(ctx, http.MethodGet, e.ItemURL(id), newRequestOptions(opts), expectJSON)
}

// GetMany fetches the collection. A nil query falls back to the one given
// through WithQuery, if any.
func (e *Endpoint) GetMany(ctx context.Context, query Query, opts ...Option) (*Result, error) {
	o := newRequestOptions(opts)
	if query != nil {
		o.Query = query
	}
	return e.client.send(ctx, http.MethodGet, e.CollectionURL(), o, expectJSON)
}

// Create posts body to the collection.
func (e *Endpoint) Create(ctx context.Context, body any, opts ...Option) (*Result, error) {
	o := newRequestOptions(opts)
	o.Body = body
	return e.client.send(ctx, http.MethodPost, e.CollectionURL(), o, expectJSON)
}

// Update replaces the item identified by id with body.
func (e *Endpoint) Update(ctx context.Context, id any, body any, opts ...Option) (*Result, error) {
	o := newRequestOptions(opts)
	o.Body = body
	return e.client.send(ctx, http.MethodPut, e.ItemURL(id), o, expectJSON)
}

// Remove deletes the item identified by id and returns the response status.
// The body is never parsed. On a non-2xx answer the status is returned along
// with the *HTTPError.
func (e *Endpoint) Remove(ctx context.Context, id any, opts ...Option) (int, error) {
	result, err := e.client.send(ctx, http.MethodDelete, e.ItemURL(id), newRequestOptions(opts), expectStatus)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			return httpErr.Status, err
		}
		return 0, err
	}
	return result.StatusCode, nil
}

// GetEach fetches every id concurrently, at most BatchConcurrency at a time.
// Results are returned in the order of ids. The first failure cancels the
// requests still in flight and is returned. A callback given through
// WithCallback may run concurrently.
func (e *Endpoint) GetEach(ctx context.Context, ids []any, opts ...Option) ([]*Result, error) {
	results := make([]*Result, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.client.config.BatchConcurrency)

	for i, id := range ids {
		g.Go(func() error {
			result, err := e.GetOne(ctx, id, opts...)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
