package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	return httptest.NewRequest(http.MethodGet, "http://example.com/people", nil)
}

func TestBearer(t *testing.T) {
	req := newRequest(t)
	require.NoError(t, Bearer{Token: "abc"}.Authenticate(req))
	assert.Equal(t, "Bearer abc", req.Header.Get("Authorization"))

	req = newRequest(t)
	require.NoError(t, Bearer{Token: "abc", Header: "X-Api-Key"}.Authenticate(req))
	assert.Equal(t, "Bearer abc", req.Header.Get("X-Api-Key"))
	assert.Empty(t, req.Header.Get("Authorization"))

	assert.ErrorIs(t, Bearer{}.Authenticate(newRequest(t)), ErrMissingToken)
}

func TestTokenSource(t *testing.T) {
	req := newRequest(t)
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "xyz", TokenType: "Bearer"})
	require.NoError(t, TokenSource{Source: src}.Authenticate(req))
	assert.Equal(t, "Bearer xyz", req.Header.Get("Authorization"))

	assert.ErrorIs(t, TokenSource{}.Authenticate(newRequest(t)), ErrMissingToken)

	failing := TokenSource{Source: failingSource{}}
	err := failing.Authenticate(newRequest(t))
	assert.ErrorContains(t, err, "failed to get oauth2 token")
}

type failingSource struct{}

func (failingSource) Token() (*oauth2.Token, error) {
	return nil, errors.New("refresh failed")
}

func TestTokenFromHeader(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"Bearer abc", "abc"},
		{"bearer  abc ", "abc"},
		{"Basic abc", ""},
		{"abc", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TokenFromHeader(tt.value), tt.value)
	}
}

func TestJWTSigner(t *testing.T) {
	secret := []byte("shh")
	issued := time.Now().Truncate(time.Second)

	s := NewJWTSigner(secret, "alice", time.Hour)
	s.Issuer = "restc"
	s.Claims = map[string]any{"role": "admin", "sub": "mallory"}
	s.now = func() time.Time { return issued }

	req := newRequest(t)
	require.NoError(t, s.Authenticate(req))

	claims, err := ParseToken(secret, TokenFromHeader(req.Header.Get("Authorization")))
	require.NoError(t, err)
	assert.Equal(t, "alice", claims["sub"])
	assert.Equal(t, "restc", claims["iss"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, float64(issued.Unix()), claims["iat"])
	assert.Equal(t, float64(issued.Add(time.Hour).Unix()), claims["exp"])

	t.Run("no ttl means no exp", func(t *testing.T) {
		token, err := NewJWTSigner(secret, "", 0).Sign()
		require.NoError(t, err)
		claims, err := ParseToken(secret, token)
		require.NoError(t, err)
		assert.NotContains(t, claims, "exp")
		assert.NotContains(t, claims, "sub")
	})

	t.Run("missing secret", func(t *testing.T) {
		_, err := NewJWTSigner(nil, "alice", 0).Sign()
		assert.ErrorIs(t, err, ErrMissingSecret)
		assert.ErrorIs(t, NewJWTSigner(nil, "alice", 0).Authenticate(newRequest(t)), ErrMissingSecret)
	})
}

func TestParseToken(t *testing.T) {
	secret := []byte("shh")

	_, err := ParseToken(secret, "")
	assert.ErrorIs(t, err, ErrMissingToken)

	token, err := NewJWTSigner([]byte("other"), "alice", 0).Sign()
	require.NoError(t, err)
	_, err = ParseToken(secret, token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	expired := NewJWTSigner(secret, "alice", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err = expired.Sign()
	require.NoError(t, err)
	_, err = ParseToken(secret, token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "alice"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseToken(secret, none)
	assert.Error(t, err)
}
