package auth

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// VerifyPassword compares a plaintext password against the stored hash.
// Legacy records carry an unsalted MD5 hex digest and must keep working;
// records rehashed with bcrypt are recognised by their "$2" prefix. The
// result is a plain bool so callers can map failure to a generic
// bad-credentials response without leaking which part failed.
func VerifyPassword(password, storedHash string) bool {
	if storedHash == "" {
		return false
	}
	if strings.HasPrefix(storedHash, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
	}
	digest := md5.Sum([]byte(password))
	sum := hex.EncodeToString(digest[:])
	return subtle.ConstantTimeCompare([]byte(sum), []byte(strings.ToLower(storedHash))) == 1
}

// HashPassword produces the legacy digest for a plaintext password. Kept for
// seeding and tests; new deployments should store bcrypt hashes instead.
func HashPassword(password string) string {
	digest := md5.Sum([]byte(password))
	return hex.EncodeToString(digest[:])
}
