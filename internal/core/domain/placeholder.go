package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
)

// PlaceholderPrefix starts every worker asset placeholder token.
const PlaceholderPrefix = "__WORKER_ASSET__"

// PlaceholderPattern matches a placeholder token and captures its 8-character hash.
var PlaceholderPattern = regexp.MustCompile(`__WORKER_ASSET__([a-f0-9]{8})__`)

// Hash returns the 8-character lowercase hex fingerprint of a file name.
// It is the first 32 bits of the SHA-256 digest.
func Hash(fileName string) string {
	sum := sha256.Sum256([]byte(fileName))
	return hex.EncodeToString(sum[:4])
}

// Placeholder formats the token that stands in for the file with the given hash.
func Placeholder(hash string) string {
	return PlaceholderPrefix + hash + "__"
}

// PlaceholderFor returns the placeholder token for a file name.
func PlaceholderFor(fileName string) string {
	return Placeholder(Hash(fileName))
}
