package auth

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Caller verifies an HS256 bearer token against the server secret and
// returns the caller identifier from the sub claim. The identity provider
// issuing these tokens is external; this is verification only.
func Caller(token, secret string) (string, bool) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("caller: unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return "", false
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", false
	}
	return sub, true
}

// IssueToken signs a token for the subject. Used by tests and local tooling;
// production tokens come from the identity provider.
func IssueToken(subject, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("issueToken: error signing token: %w", err)
	}
	return signed, nil
}
