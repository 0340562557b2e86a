// Package identity normalizes and hashes contact identifiers so raw PII is
// never stored while equality comparisons remain possible.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashIdentifier normalizes a raw identifier (email or phone) and returns its
// SHA-256 hex digest. Returns nil when the normalized value is empty.
func HashIdentifier(raw *string) *string {
	if raw == nil {
		return nil
	}
	normalized := strings.ToLower(strings.TrimSpace(*raw))
	if normalized == "" {
		return nil
	}
	sum := sha256.Sum256([]byte(normalized))
	digest := hex.EncodeToString(sum[:])
	return &digest
}
