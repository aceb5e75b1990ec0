package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

// One-time codes are committed to storage as a keyed hash, so the stored
// record by itself does not disclose the code.

const (
	CodeDigits = 6

	// CodeTTL is the window in which an issued code is accepted.
	CodeTTL = 10 * time.Minute
)

var codeSpace = big.NewInt(1_000_000)

// GenerateCode returns a zero-padded 6-digit numeric string, uniformly
// distributed over [000000, 999999].
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", CodeDigits, n), nil
}

// CommitCode returns the lowercase-hex HMAC-SHA256 of code under key.
func CommitCode(code, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(code))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyCode recomputes the commitment for code and compares it against
// the stored one, and independently checks whether the code has outlived
// ttl. The two outcomes are separate so callers can distinguish a stale
// code from a wrong one.
func VerifyCode(code, key, commitment string, issuedAt time.Time, ttl time.Duration) (valid, expired bool) {
	recomputed := CommitCode(code, key)
	valid = subtle.ConstantTimeCompare([]byte(recomputed), []byte(commitment)) == 1
	expired = time.Since(issuedAt) > ttl
	return valid, expired
}
