package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every token failure: bad signature,
// malformed payload, or expiry. Callers never learn which check failed.
var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer issues and validates signed bearer tokens. The signing key and
// lifetime are process-wide configuration, loaded once at startup.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
}

// NewTokenIssuer creates a token issuer with the given signing secret and
// token lifetime.
func NewTokenIssuer(secret string, expiry time.Duration) *TokenIssuer {
	if expiry <= 0 {
		expiry = 30 * time.Minute
	}
	return &TokenIssuer{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// IssueToken produces a signed HS256 token encoding the subject and an
// expiry offset from now by the configured lifetime.
func (ti *TokenIssuer) IssueToken(subject string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ti.expiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ti.secret)
}

// ValidateToken verifies the signature and expiry and returns the subject.
func (ti *TokenIssuer) ValidateToken(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return ti.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
