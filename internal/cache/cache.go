// Package cache provides fingerprint-keyed caching of board results.
// Scoring is deterministic, so a result is fully identified by its inputs:
// the evidence snapshot, the weights and the ranking method.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching serialized results
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Fingerprint derives a stable cache key from the serialized scoring inputs
func Fingerprint(parts ...[]byte) string {
	h := sha256.New()
	for _, part := range parts {
		h.Write(part)
	}
	return "kompas:v1:" + hex.EncodeToString(h.Sum(nil))
}
