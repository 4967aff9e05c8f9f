package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/iancoleman/strcase"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"gopkg.in/yaml.v3"
)

// Config contains the restc configuration.
//
// Example configuration (HCL):
//
//	client {
//	  base_url = "https://api.example.com"
//	  mode     = "cors"
//	  cache    = "no-cache"
//	  headers  = { "X-App" = "toolbox" }
//	}
//
//	auth {
//	  type  = "bearer"
//	  token = env("RESTC_TOKEN")
//	}
//
//	resource "people" {
//	  path = "/people"
//	}
type Config struct {
	// LogLevel is the level of the CLI logger.
	// Default: "info"
	LogLevel string `hcl:"log_level,optional" yaml:"log_level"`

	// Client configures the resource client.
	Client *Client `hcl:"client,block" yaml:"client"`

	// Auth configures request authentication (optional).
	Auth *Auth `hcl:"auth,block" yaml:"auth"`

	// Resources are the named resource paths available to commands.
	Resources []Resource `hcl:"resource,block" yaml:"resources"`
}

// Client configures the resource client.
type Client struct {
	BaseURL string            `hcl:"base_url" yaml:"base_url"`
	Mode    string            `hcl:"mode,optional" yaml:"mode"`
	Cache   string            `hcl:"cache,optional" yaml:"cache"`
	Headers map[string]string `hcl:"headers,optional" yaml:"headers"`

	// Timeout bounds every CLI call through a cancel token. The library
	// itself has no timeouts.
	Timeout string `hcl:"timeout,optional" yaml:"timeout"`

	// TLSVerify controls TLS certificate verification.
	// Set to false only for development/testing with self-signed certs
	TLSVerify *bool `hcl:"tls_verify,optional" yaml:"tls_verify"`
}

// Auth types.
const (
	AuthBearer = "bearer"
	AuthJWT    = "jwt"
)

// Auth configures request authentication.
type Auth struct {
	// Type is "bearer" or "jwt".
	// Default: "bearer"
	Type string `hcl:"type,optional" yaml:"type"`

	// Token is used by the bearer type.
	Token string `hcl:"token,optional" yaml:"token"`

	// Secret, Subject, Issuer and TTL are used by the jwt type.
	Secret  string `hcl:"secret,optional" yaml:"secret"`
	Subject string `hcl:"subject,optional" yaml:"subject"`
	Issuer  string `hcl:"issuer,optional" yaml:"issuer"`
	TTL     string `hcl:"ttl,optional" yaml:"ttl"`

	// Header defaults to Authorization.
	Header string `hcl:"header,optional" yaml:"header"`
}

// Resource names a resource path.
type Resource struct {
	Name string `hcl:"name,label" yaml:"name"`
	Path string `hcl:"path" yaml:"path"`
}

// Load reads, decodes and validates the configuration file at path. HCL and
// JSON files are decoded with HCL, ".yaml" and ".yml" files with YAML.
//
// Environment variables are available in both formats: through env("NAME")
// in HCL and JSON, and as ${NAME} in YAML. A "$" not followed by "{" is left
// as is.
func Load(fs afero.Fs, path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("configuration file path is required")
	}

	src, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	cfg, err := Parse(path, src)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes src, choosing the format from the extension of filename. It
// applies defaults but does not validate.
func Parse(filename string, src []byte) (*Config, error) {
	var cfg Config

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(expandEnv(src), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file: %w", err)
		}
	case ".hcl", ".json":
		if err := hclsimple.Decode(filename, src, evalContext(), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported configuration file extension: %q", filepath.Ext(filename))
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Auth != nil && c.Auth.Type == "" {
		c.Auth.Type = AuthBearer
	}
}

// ResourcePath returns the path configured for name. Names are compared in
// kebab case, so "userProfiles" finds resource "user_profiles". Names that
// are not configured are used as paths verbatim.
func (c *Config) ResourcePath(name string) string {
	key := strcase.ToKebab(name)
	for _, r := range c.Resources {
		if strcase.ToKebab(r.Name) == key {
			return r.Path
		}
	}
	return name
}

// RequestTimeout returns the parsed client timeout, zero when unset.
func (c *Config) RequestTimeout() time.Duration {
	if c.Client == nil || c.Client.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Client.Timeout)
	return d
}

// TokenTTL returns the parsed JWT lifetime, zero when unset.
func (a *Auth) TokenTTL() time.Duration {
	if a == nil || a.TTL == "" {
		return 0
	}
	d, _ := time.ParseDuration(a.TTL)
	return d
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv replaces ${NAME} references with the value of the environment
// variable NAME, or the empty string when it is unset.
func expandEnv(src []byte) []byte {
	return envRef.ReplaceAllFunc(src, func(ref []byte) []byte {
		return []byte(os.Getenv(string(ref[2 : len(ref)-1])))
	})
}

// evalContext exposes env("NAME") to HCL configuration files.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"env": function.New(&function.Spec{
				Params: []function.Parameter{
					{Name: "name", Type: cty.String},
				},
				Type: function.StaticReturnType(cty.String),
				Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
					return cty.StringVal(os.Getenv(args[0].AsString())), nil
				},
			}),
		},
	}
}
