// Package auth issues and validates the bearer tokens presented on API
// requests, and hashes user passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for malformed, expired, or badly-signed tokens.
var ErrInvalidToken = errors.New("invalid token")

// Tokens signs and verifies JWTs with a shared HMAC secret.
type Tokens struct {
	secret []byte
	method jwt.SigningMethod
}

// NewTokens creates a token signer/verifier for the configured algorithm.
// Only the HMAC family is supported.
func NewTokens(secret, algorithm string) (*Tokens, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown JWT algorithm: %s", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported JWT algorithm: %s (only HMAC variants are supported)", algorithm)
	}

	return &Tokens{
		secret: []byte(secret),
		method: method,
	}, nil
}

// Issue signs a token for the given username with the given lifetime.
func (t *Tokens) Issue(username string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": username,
		"iat": jwt.NewNumericDate(now),
		"exp": jwt.NewNumericDate(now.Add(ttl)),
		"jti": uuid.New().String(),
	}

	token := jwt.NewWithClaims(t.method, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}
	return signed, nil
}

// Validate verifies the token's signature and expiry and returns its subject.
func (t *Tokens) Validate(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrInvalidToken
	}

	return subject, nil
}
