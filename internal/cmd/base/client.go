package base

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/andzheyevskiy/Toolbox/internal/config"
	"github.com/andzheyevskiy/Toolbox/pkg/auth"
	"github.com/andzheyevskiy/Toolbox/pkg/resource"
)

// ClientFlags are the flags shared by every command that talks to the API.
type ClientFlags struct {
	ConfigPath string
	Headers    StringMapValue
	Timeout    time.Duration
	Raw        bool
}

// Add registers the flags on f. The raw flag is only offered by commands
// whose output can be passed through unparsed.
func (cf *ClientFlags) Add(f *FlagSet, withRaw bool) {
	if cf.Headers == nil {
		cf.Headers = StringMapValue{}
	}

	f.StringVar(
		&cf.ConfigPath, "config", "",
		"Path to the configuration file (HCL, JSON or YAML)",
	)
	f.Var(
		cf.Headers, "H",
		"Extra request header as key=value. May be repeated",
	)
	f.DurationVar(
		&cf.Timeout, "timeout", 0,
		"Cancel the request after this long. Overrides client.timeout",
	)
	if withRaw {
		f.BoolVar(
			&cf.Raw, "raw", false,
			"Print the response body as received instead of re-formatting it",
		)
	}
}

// Session is a loaded configuration and the client built from it.
type Session struct {
	Config *config.Config
	Client *resource.Client

	flags *ClientFlags
}

// Open loads the configuration named by the -config flag and builds a client
// from it.
func (c *Command) Open(cf *ClientFlags) (*Session, error) {
	cfg, err := config.Load(c.fs(), cf.ConfigPath)
	if err != nil {
		return nil, err
	}

	log := c.Log
	if log == nil {
		log = hclog.NewNullLogger()
	}
	log.SetLevel(hclog.LevelFromString(cfg.LogLevel))

	client, err := NewClient(cfg, log)
	if err != nil {
		return nil, err
	}

	return &Session{Config: cfg, Client: client, flags: cf}, nil
}

// Endpoint returns the endpoint for a configured resource name.
func (s *Session) Endpoint(name string) *resource.Endpoint {
	return s.Client.Endpoint(s.Config.ResourcePath(name))
}

// Options returns the per-call options implied by the flags. The returned
// stop function must be called once the call has finished; it releases the
// timeout timer.
func (s *Session) Options() ([]resource.Option, func()) {
	opts := []resource.Option{resource.WithHeaders(s.flags.Headers)}
	if s.flags.Raw {
		opts = append(opts, resource.WithRaw())
	}

	timeout := s.flags.Timeout
	if timeout == 0 {
		timeout = s.Config.RequestTimeout()
	}
	if timeout <= 0 {
		return opts, func() {}
	}

	token := resource.NewCancelToken()
	timer := time.AfterFunc(timeout, token.Cancel)
	return append(opts, resource.WithCancel(token)), func() { timer.Stop() }
}

// NewClient builds a resource client from a validated configuration.
func NewClient(cfg *config.Config, log hclog.Logger) (*resource.Client, error) {
	cc := resource.DefaultConfig()
	cc.BaseURL = cfg.Client.BaseURL
	cc.DefaultHeaders = cfg.Client.Headers
	cc.DefaultMode = cfg.Client.Mode
	cc.DefaultCache = cfg.Client.Cache
	cc.Logger = log

	if cfg.Client.TLSVerify != nil && !*cfg.Client.TLSVerify {
		log.Warn("TLS certificate verification is disabled")
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402
		cc.HTTPClient = &http.Client{Transport: transport}
	}

	if cfg.Auth != nil {
		switch cfg.Auth.Type {
		case config.AuthBearer:
			cc.Authenticator = auth.Bearer{Token: cfg.Auth.Token, Header: cfg.Auth.Header}
		case config.AuthJWT:
			signer := auth.NewJWTSigner([]byte(cfg.Auth.Secret), cfg.Auth.Subject, cfg.Auth.TokenTTL())
			signer.Issuer = cfg.Auth.Issuer
			signer.Header = cfg.Auth.Header
			cc.Authenticator = signer
		default:
			return nil, fmt.Errorf("unknown auth type: %s", cfg.Auth.Type)
		}
	}

	client, err := resource.New(cc)
	if err != nil {
		return nil, fmt.Errorf("error creating client: %w", err)
	}
	return client, nil
}

// ReadBody returns the JSON document in arg, or read from stdin when arg is
// "-".
func (c *Command) ReadBody(arg string) (json.RawMessage, error) {
	src := []byte(arg)
	if arg == "-" {
		b, err := io.ReadAll(c.stdin())
		if err != nil {
			return nil, fmt.Errorf("error reading body from stdin: %w", err)
		}
		src = b
	}

	src = bytes.TrimSpace(src)
	if !json.Valid(src) {
		return nil, fmt.Errorf("body is not valid JSON")
	}
	return json.RawMessage(src), nil
}

// Output prints a result. Raw results are copied through unchanged, parsed
// ones are printed as indented JSON.
func (c *Command) Output(result *resource.Result) error {
	if result.Raw() {
		defer result.Response.Body.Close()
		b, err := io.ReadAll(result.Response.Body)
		if err != nil {
			return fmt.Errorf("error reading response body: %w", err)
		}
		c.UI.Output(strings.TrimRight(string(b), "\n"))
		return nil
	}

	if result.Data == nil {
		return nil
	}
	b, err := json.MarshalIndent(result.Data, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting response: %w", err)
	}
	c.UI.Output(string(b))
	return nil
}

// ParseQuery turns "key=value" arguments into an ordered query.
func ParseQuery(args []string) (resource.QueryPairs, error) {
	q := make(resource.QueryPairs, 0, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid query parameter %q, expected key=value", arg)
		}
		q = append(q, resource.QueryParam{Key: k, Value: v})
	}
	return q, nil
}
