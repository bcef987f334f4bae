package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Signer issues signed session tokens.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier validates a session token and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// HS256 signs and verifies session tokens with a shared secret. It plays the
// role a signed session cookie plays in a server-rendered app: the secret is
// the application SECRET_KEY.
type HS256 struct {
	secret []byte
	issuer string

	// Now is overridable in tests.
	Now func() time.Time
}

// NewHS256 returns a signer/verifier for the given secret. An empty secret
// is rejected because it would make every token forgeable.
func NewHS256(secret, issuer string) (*HS256, error) {
	if len(secret) < 16 {
		return nil, errors.New("jwtx: secret must be at least 16 bytes")
	}
	return &HS256{secret: []byte(secret), issuer: issuer, Now: time.Now}, nil
}

func (h *HS256) Issuer() string { return h.issuer }

func (h *HS256) Sign(c Claims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	s, err := tok.SignedString(h.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return s, nil
}

func (h *HS256) Verify(token string) (Claims, error) {
	var c Claims

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(), // exp/nbf checked below against h.Now
	)
	_, err := parser.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return h.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return Claims{}, ErrInvalidSig
		default:
			return Claims{}, ErrMalformed
		}
	}

	if h.issuer != "" && c.Issuer != h.issuer {
		return Claims{}, ErrIssuer
	}
	if err := c.ValidateExpiry(h.Now().UTC()); err != nil {
		return Claims{}, err
	}
	if _, err := c.UserID(); err != nil {
		return Claims{}, err
	}
	return c, nil
}
