// Package adapter provides the concrete collaborators of the compiler: the
// YAML definition engine, the short-hash utility and the per-browser skip
// policy.
package adapter

import (
	"crypto/sha256"
	"encoding/hex"
)

const shortHashLength = 8

// ShortHasher computes deterministic short hashes for identity derivation.
type ShortHasher struct {
	length int
}

// NewShortHasher constructs a ShortHasher with the default output length.
func NewShortHasher() *ShortHasher {
	return &ShortHasher{length: shortHashLength}
}

// ShortHash returns a truncated hex SHA-256 of the input. Identical input
// always yields identical output.
func (h *ShortHasher) ShortHash(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])[:h.length]
}
