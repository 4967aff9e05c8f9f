// Package auth provides request authenticators for the resource client:
// static bearer tokens, per-request signed JWTs and OAuth2 token sources.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

// DefaultHeader is the header credentials are written to unless configured
// otherwise.
const DefaultHeader = "Authorization"

var ErrMissingToken = errors.New("missing token")

// Bearer sets a static "Bearer <token>" header.
type Bearer struct {
	Token string

	// Header defaults to Authorization.
	Header string
}

func (b Bearer) Authenticate(req *http.Request) error {
	if b.Token == "" {
		return ErrMissingToken
	}
	req.Header.Set(headerOrDefault(b.Header), "Bearer "+b.Token)
	return nil
}

// TokenSource authenticates with tokens from an OAuth2 token source, which
// takes care of caching and refreshing them.
type TokenSource struct {
	Source oauth2.TokenSource
}

func (t TokenSource) Authenticate(req *http.Request) error {
	if t.Source == nil {
		return ErrMissingToken
	}
	tok, err := t.Source.Token()
	if err != nil {
		return fmt.Errorf("failed to get oauth2 token: %w", err)
	}
	tok.SetAuthHeader(req)
	return nil
}

// TokenFromHeader extracts the token from a "Bearer <token>" header value.
func TokenFromHeader(value string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(value), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func headerOrDefault(h string) string {
	if h == "" {
		return DefaultHeader
	}
	return h
}
