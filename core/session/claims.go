package session

import (
	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

// Claims is the identity hinted at by the bearer token's payload. The decode
// is local and unverified (the backend holds the signing key), so Claims may
// only be used to address a profile lookup, never to authorize anything.
type Claims struct {
	Subject string
	Email   string
}

var errMalformedToken = errors.New("malformed token")

// DecodeClaims extracts the subject/email claims from the token's payload
// segment without verifying its signature. A malformed token yields an error;
// callers must treat that as "cannot resolve profile", not as "unauthenticated"
// (guard decisions are independent of decodability).
func DecodeClaims(token string) (Claims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Claims{}, errors.Wrap(errMalformedToken, err.Error())
	}

	var c Claims
	if sub, ok := claims["sub"].(string); ok {
		c.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		c.Email = email
	}
	if c.Subject == "" && c.Email == "" {
		return Claims{}, errors.Wrap(errMalformedToken, "no identifying claim")
	}
	return c, nil
}

// Identity returns the claim to key a profile lookup with: the subject when
// present, the email otherwise.
func (c Claims) Identity() string {
	if c.Subject != "" {
		return c.Subject
	}
	return c.Email
}
