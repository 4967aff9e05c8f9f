package resource

// RequestOptions holds the per-call settings of a single request. It is built
// from Options for each call and discarded once the call returns.
type RequestOptions struct {
	// Body is JSON encoded and sent as the request body when non-nil.
	Body any

	// Headers override ClientConfig.DefaultHeaders for this call.
	Headers map[string]string

	// Query is appended to the request URL.
	Query Query

	// ReturnRaw skips JSON parsing and hands back the unread response.
	ReturnRaw bool

	// Cancel aborts the request when cancelled.
	Cancel *CancelToken

	// Mode overrides ClientConfig.DefaultMode for this call.
	Mode string

	// Cache overrides ClientConfig.DefaultCache for this call.
	Cache string

	// Callback is invoked with the result of a successful call.
	Callback func(*Result)
}

// Option configures RequestOptions.
type Option func(*RequestOptions)

func newRequestOptions(opts []Option) *RequestOptions {
	o := &RequestOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithBody sets the JSON request body. Create and Update set it themselves.
func WithBody(body any) Option {
	return func(o *RequestOptions) {
		o.Body = body
	}
}

// WithHeader sets a single request header.
func WithHeader(key, value string) Option {
	return func(o *RequestOptions) {
		if o.Headers == nil {
			o.Headers = make(map[string]string)
		}
		o.Headers[key] = value
	}
}

// WithHeaders sets several request headers at once.
func WithHeaders(headers map[string]string) Option {
	return func(o *RequestOptions) {
		for k, v := range headers {
			WithHeader(k, v)(o)
		}
	}
}

// WithQuery appends q to the request URL.
func WithQuery(q Query) Option {
	return func(o *RequestOptions) {
		o.Query = q
	}
}

// WithRaw returns the raw *http.Response instead of parsed JSON.
func WithRaw() Option {
	return func(o *RequestOptions) {
		o.ReturnRaw = true
	}
}

// WithCancel binds the request to a CancelToken.
func WithCancel(t *CancelToken) Option {
	return func(o *RequestOptions) {
		o.Cancel = t
	}
}

// WithMode overrides the fetch mode for one call. The call fails with
// ErrUnknownMode if mode is not one of the Mode* constants.
func WithMode(mode string) Option {
	return func(o *RequestOptions) {
		o.Mode = mode
	}
}

// WithCache overrides the cache mode for one call.
func WithCache(mode string) Option {
	return func(o *RequestOptions) {
		o.Cache = mode
	}
}

// WithCallback registers fn to receive the result of a successful call. The
// verb still returns the result, so callbacks and return values compose.
func WithCallback(fn func(*Result)) Option {
	return func(o *RequestOptions) {
		o.Callback = fn
	}
}
