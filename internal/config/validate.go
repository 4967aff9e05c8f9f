package config

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/iancoleman/strcase"

	"github.com/andzheyevskiy/Toolbox/pkg/resource"
)

// Validate checks the whole configuration and reports every problem found.
func (c *Config) Validate() error {
	var result *multierror.Error

	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		result = multierror.Append(result,
			fmt.Errorf("log_level %q is not a valid level", c.LogLevel))
	}

	if c.Client == nil {
		result = multierror.Append(result, fmt.Errorf("client block is required"))
	} else {
		cfg := resource.ClientConfig{
			BaseURL:        c.Client.BaseURL,
			DefaultHeaders: c.Client.Headers,
			DefaultMode:    c.Client.Mode,
			DefaultCache:   c.Client.Cache,
		}
		if err := cfg.Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("client: %w", err))
		}
		if err := validDuration("client.timeout", c.Client.Timeout); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if c.Auth != nil {
		switch c.Auth.Type {
		case AuthBearer:
			if c.Auth.Token == "" {
				result = multierror.Append(result, fmt.Errorf("auth: token is required for bearer auth"))
			}
		case AuthJWT:
			if c.Auth.Secret == "" {
				result = multierror.Append(result, fmt.Errorf("auth: secret is required for jwt auth"))
			}
			if err := validDuration("auth.ttl", c.Auth.TTL); err != nil {
				result = multierror.Append(result, err)
			}
		default:
			result = multierror.Append(result,
				fmt.Errorf("auth: unknown type %q, must be %q or %q", c.Auth.Type, AuthBearer, AuthJWT))
		}
	}

	seen := make(map[string]string, len(c.Resources))
	for _, r := range c.Resources {
		if r.Name == "" {
			result = multierror.Append(result, fmt.Errorf("resource: name is required"))
			continue
		}
		if r.Path == "" {
			result = multierror.Append(result, fmt.Errorf("resource %q: path is required", r.Name))
		}
		key := strcase.ToKebab(r.Name)
		if prev, ok := seen[key]; ok {
			result = multierror.Append(result,
				fmt.Errorf("resource %q: duplicates resource %q", r.Name, prev))
			continue
		}
		seen[key] = r.Name
	}

	return result.ErrorOrNil()
}

func validDuration(field, value string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if d < 0 {
		return fmt.Errorf("%s must be non-negative, got: %v", field, d)
	}
	return nil
}
