package resource

import "context"

// Typed wraps an Endpoint so that results are decoded into T.
//
//	type Person struct {
//	  ID   int    `json:"id"`
//	  Name string `json:"name"`
//	}
//
//	people := resource.Of[Person](client.Endpoint("people"))
//	p, err := people.GetOne(ctx, 1)
type Typed[T any] struct {
	endpoint *Endpoint
}

// Of returns a typed view of e.
func Of[T any](e *Endpoint) Typed[T] {
	return Typed[T]{endpoint: e}
}

// Endpoint returns the underlying untyped endpoint.
func (t Typed[T]) Endpoint() *Endpoint {
	return t.endpoint
}

func (t Typed[T]) GetOne(ctx context.Context, id any, opts ...Option) (*T, error) {
	result, err := t.endpoint.GetOne(ctx, id, jsonOnly(opts)...)
	if err != nil {
		return nil, err
	}
	return decodeInto[T](result)
}

func (t Typed[T]) GetMany(ctx context.Context, query Query, opts ...Option) ([]T, error) {
	result, err := t.endpoint.GetMany(ctx, query, jsonOnly(opts)...)
	if err != nil {
		return nil, err
	}

	var items []T
	if err := result.Decode(&items); err != nil {
		return nil, err
	}
	return items, nil
}

func (t Typed[T]) Create(ctx context.Context, body T, opts ...Option) (*T, error) {
	result, err := t.endpoint.Create(ctx, body, jsonOnly(opts)...)
	if err != nil {
		return nil, err
	}
	return decodeInto[T](result)
}

func (t Typed[T]) Update(ctx context.Context, id any, body T, opts ...Option) (*T, error) {
	result, err := t.endpoint.Update(ctx, id, body, jsonOnly(opts)...)
	if err != nil {
		return nil, err
	}
	return decodeInto[T](result)
}

func (t Typed[T]) Remove(ctx context.Context, id any, opts ...Option) (int, error) {
	return t.endpoint.Remove(ctx, id, opts...)
}

func decodeInto[T any](result *Result) (*T, error) {
	v := new(T)
	if err := result.Decode(v); err != nil {
		return nil, err
	}
	return v, nil
}

// jsonOnly appends an option that turns raw mode off, without touching the
// caller's slice.
func jsonOnly(opts []Option) []Option {
	return append(opts[:len(opts):len(opts)], func(o *RequestOptions) {
		o.ReturnRaw = false
	})
}
