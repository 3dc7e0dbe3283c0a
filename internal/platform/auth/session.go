// Package auth is the doctor login gate. A doctor exchanges their PIN for a
// short-lived session token; doctor-scoped routes require that token. The
// gate is a session marker, not an authorization system: the domain services
// trust all callers equally and never consult it.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidPIN indicates the doctor id is unknown or the PIN does not match.
	// The two cases are deliberately indistinguishable to the caller.
	ErrInvalidPIN = errors.New("invalid doctor id or pin")

	// ErrInvalidToken indicates a session token that is missing, malformed,
	// expired, or signed with the wrong key.
	ErrInvalidToken = errors.New("invalid session token")
)

// SessionClaims is the payload of a doctor session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	DoctorID string `json:"doctor_id"`
}

// Gate verifies doctor PINs and mints/validates session tokens.
type Gate struct {
	pins   map[string]string
	secret []byte
	ttl    time.Duration
}

// NewGate builds a gate from the configured id→PIN map.
func NewGate(pins map[string]string, secret string, ttl time.Duration) *Gate {
	return &Gate{pins: pins, secret: []byte(secret), ttl: ttl}
}

// Login checks the PIN for the doctor and returns a signed session token.
func (g *Gate) Login(doctorID, pin string) (string, error) {
	want, ok := g.pins[doctorID]
	if !ok || pin == "" || pin != want {
		return "", ErrInvalidPIN
	}

	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   doctorID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
		DoctorID: doctorID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses a session token and returns its claims.
func (g *Gate) Verify(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil || !token.Valid || claims.DoctorID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
