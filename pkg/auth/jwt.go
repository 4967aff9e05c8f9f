package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMissingSecret = errors.New("missing signing secret")

// JWTSigner mints a fresh HS256 token for every request.
type JWTSigner struct {
	Secret  []byte
	Subject string
	Issuer  string

	// TTL sets the exp claim. Zero means the token does not expire.
	TTL time.Duration

	// Header defaults to Authorization.
	Header string

	// Claims are added to the registered ones without overriding them.
	Claims map[string]any

	now func() time.Time
}

// NewJWTSigner returns a signer for subject with the given lifetime.
func NewJWTSigner(secret []byte, subject string, ttl time.Duration) *JWTSigner {
	return &JWTSigner{
		Secret:  secret,
		Subject: subject,
		TTL:     ttl,
	}
}

// Sign returns a signed token.
func (s *JWTSigner) Sign() (string, error) {
	if len(s.Secret) == 0 {
		return "", ErrMissingSecret
	}

	now := time.Now
	if s.now != nil {
		now = s.now
	}
	issuedAt := now()

	claims := jwt.MapClaims{
		"iat": issuedAt.Unix(),
	}
	if s.Subject != "" {
		claims["sub"] = s.Subject
	}
	if s.Issuer != "" {
		claims["iss"] = s.Issuer
	}
	if s.TTL > 0 {
		claims["exp"] = issuedAt.Add(s.TTL).Unix()
	}
	for k, v := range s.Claims {
		if _, ok := claims[k]; !ok {
			claims[k] = v
		}
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (s *JWTSigner) Authenticate(req *http.Request) error {
	token, err := s.Sign()
	if err != nil {
		return err
	}
	req.Header.Set(headerOrDefault(s.Header), "Bearer "+token)
	return nil
}

// ParseToken verifies an HS256 token against secret and returns its claims.
func ParseToken(secret []byte, raw string) (jwt.MapClaims, error) {
	if raw == "" {
		return nil, ErrMissingToken
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return claims, nil
}
