// Package digest computes whole-content SHA3-256 digests used to decide
// equality of two inputs without comparing them line by line.
package digest

import (
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Algorithm is the human-readable name of the digest algorithm.
const Algorithm = "SHA3-256"

// Size is the digest length in bytes.
const Size = 32

// Sum returns the lowercase hex encoded SHA3-256 digest of content.
func Sum(content []byte) string {
	sum := sha3.Sum256(content)

	return hex.EncodeToString(sum[:])
}

// SumString is Sum for string content.
func SumString(content string) string {
	return Sum([]byte(content))
}

// Equal reports whether two hex digests are identical.
func Equal(left, right string) bool {
	return subtle.ConstantTimeCompare([]byte(left), []byte(right)) == 1
}
