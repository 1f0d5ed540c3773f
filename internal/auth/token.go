package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stellar-admin/stellar-admin/internal/shared"
)

// Claims carried inside an issued token. PV is the password version; it is
// reserved for invalidating tokens after a password change.
type Claims struct {
	UID int64 `json:"uid"`
	PV  int   `json:"pv"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies bearer tokens with a symmetric secret.
// It is a pure cryptographic primitive and knows nothing about the
// session store.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec constructs a codec with the shared signing secret.
func NewTokenCodec(secret []byte) *TokenCodec {
	return &TokenCodec{secret: secret}
}

// Issue signs a token for the subject expiring after ttl.
func (c *TokenCodec) Issue(userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UID: userID,
		PV:  1,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token. It fails closed: signature mismatch,
// structural corruption and expiry all yield ErrTokenInvalid, never a
// partial result.
func (c *TokenCodec) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, shared.ErrTokenInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UID == 0 {
		return nil, shared.ErrTokenInvalid
	}
	return claims, nil
}
