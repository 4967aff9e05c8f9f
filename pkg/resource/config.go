package resource

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
)

// Fetch modes accepted by ClientConfig.DefaultMode and WithMode. The mode is
// advertised to the server through the Sec-Fetch-Mode header.
const (
	ModeCORS       = "cors"
	ModeNoCORS     = "no-cors"
	ModeSameOrigin = "same-origin"
	ModeNavigate   = "navigate"
)

// Cache modes accepted by ClientConfig.DefaultCache and WithCache. The client
// keeps no cache of its own; a mode only sets the request headers a browser
// would send for it.
const (
	CacheDefault      = "default"
	CacheNoStore      = "no-store"
	CacheReload       = "reload"
	CacheNoCache      = "no-cache"
	CacheForceCache   = "force-cache"
	CacheOnlyIfCached = "only-if-cached"
)

const defaultBatchConcurrency = 4

var (
	ErrUnknownMode      = errors.New("unknown fetch mode")
	ErrUnknownCacheMode = errors.New("unknown cache mode")
)

var modes = []interface{}{ModeCORS, ModeNoCORS, ModeSameOrigin, ModeNavigate}

var cacheModes = []interface{}{
	CacheDefault, CacheNoStore, CacheReload,
	CacheNoCache, CacheForceCache, CacheOnlyIfCached,
}

// cacheHeaders are the request headers sent for each cache mode.
var cacheHeaders = map[string]map[string]string{
	CacheNoStore: {"Cache-Control": "no-cache", "Pragma": "no-cache"},
	CacheReload:  {"Cache-Control": "no-cache", "Pragma": "no-cache"},
	CacheNoCache: {"Cache-Control": "max-age=0"},
}

func isMode(s string) bool {
	return validation.In(modes...).Validate(s) == nil
}

func isCacheMode(s string) bool {
	return validation.In(cacheModes...).Validate(s) == nil
}

// ClientConfig contains configuration for a resource Client.
//
// A ClientConfig is copied by New; changing it afterwards has no effect on
// the client.
type ClientConfig struct {
	// BaseURL is the root every resource path is joined to.
	// Example: "https://api.example.com/v1"
	BaseURL string `json:"baseUrl"`

	// DefaultHeaders are sent with every request. Per-call headers win.
	DefaultHeaders map[string]string `json:"defaultHeaders,omitempty"`

	// DefaultMode is one of the Mode* constants, or empty for none.
	DefaultMode string `json:"defaultMode,omitempty"`

	// DefaultCache is one of the Cache* constants, or empty for none.
	DefaultCache string `json:"defaultCache,omitempty"`

	// BatchConcurrency bounds the number of parallel requests made by
	// Endpoint.GetEach.
	// Default: 4
	BatchConcurrency int `json:"batchConcurrency,omitempty"`

	// HTTPClient performs the requests. A client without a timeout is used
	// when nil.
	HTTPClient *http.Client `json:"-"`

	// Authenticator decorates every outgoing request (optional).
	Authenticator Authenticator `json:"-"`

	// Logger receives request-level debug logs (optional).
	Logger hclog.Logger `json:"-"`

	// Metrics instruments the transport (optional).
	Metrics *Metrics `json:"-"`
}

// DefaultConfig returns a ClientConfig with defaults applied. BaseURL still
// has to be set.
func DefaultConfig() ClientConfig {
	return ClientConfig{
		BatchConcurrency: defaultBatchConcurrency,
		Logger:           hclog.NewNullLogger(),
	}
}

// Validate checks if the configuration is valid.
func (c ClientConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required, validation.By(httpURL)),
		validation.Field(&c.DefaultMode, validation.In(modes...)),
		validation.Field(&c.DefaultCache, validation.In(cacheModes...)),
		validation.Field(&c.DefaultHeaders, validation.By(headerNames)),
		validation.Field(&c.BatchConcurrency, validation.Min(0)),
	)
}

func httpURL(value interface{}) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must use http or https scheme, got: %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("must include a host")
	}
	return nil
}

func headerNames(value interface{}) error {
	headers, _ := value.(map[string]string)
	for k := range headers {
		if k == "" {
			return fmt.Errorf("header names must not be empty")
		}
	}
	return nil
}

// Authenticator adds credentials to an outgoing request.
type Authenticator interface {
	Authenticate(req *http.Request) error
}

// AuthenticatorFunc adapts a function to an Authenticator.
type AuthenticatorFunc func(req *http.Request) error

func (f AuthenticatorFunc) Authenticate(req *http.Request) error {
	return f(req)
}
