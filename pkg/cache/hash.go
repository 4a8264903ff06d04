package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// HashParts hashes arbitrary JSON-encodable values into a short stable
// fingerprint. It is used to scope keys by extractor configuration.
func HashParts(parts ...any) string {
	data, _ := json.Marshal(parts)
	return Hash(data)[:16]
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
