// Package cache memoizes analysis results by content-derived key.
package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/reliefmap/relief/internal/model"
)

// Cache defines the interface for result memoization.
type Cache interface {
	Get(key string) (*model.StructuralAnalysis, bool)
	Set(key string, result *model.StructuralAnalysis)
	Delete(key string)
	Clear()
}

// Key derives a cache key from serialized input content. Byte-identical
// inputs always produce the same key.
func Key(content []byte) string {
	hash := sha256.Sum256(content)
	return "relief:v1:" + hex.EncodeToString(hash[:])
}
