// Package utils provides helpers for token issuance, password hashing and
// identifier generation.
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles embedded in tokens. There is no hierarchy: an admin token is not
// accepted where a user token is required and vice versa.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// TokenTTL is the fixed validity of every issued token. Tokens are not
// persisted server-side, so they cannot be revoked before expiry.
const TokenTTL = 7 * 24 * time.Hour

// ErrInvalidToken covers missing, malformed, badly signed and expired
// tokens. Handlers translate it into HTTP 401.
var ErrInvalidToken = errors.New("invalid token")

// ErrWrongRole means the token verified fine but carries a different role
// than the endpoint requires. Handlers translate it into HTTP 403.
var ErrWrongRole = errors.New("wrong role")

// IssueToken builds and signs an HS256 JWT carrying the given claims plus
// the role, an expiry TokenTTL from now and an issued-at timestamp. The
// extra claims must not contain "role", "exp" or "iat"; those are owned
// here.
func IssueToken(secret string, role string, extra map[string]any) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"role": role,
		"exp":  now.Add(TokenTTL).Unix(),
		"iat":  now.Unix(),
	}
	for k, v := range extra {
		claims[k] = v
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// VerifyToken parses and validates a signed token and enforces the
// required role. It returns ErrInvalidToken when the signature does not
// check out or the token has expired, and ErrWrongRole when the token is
// valid but was issued for a different role. On success the decoded
// claims are returned for downstream authorization (e.g. email-based
// order filtering).
func VerifyToken(secret, raw, requiredRole string) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if role, _ := claims["role"].(string); requiredRole != "" && role != requiredRole {
		return nil, ErrWrongRole
	}
	return claims, nil
}
