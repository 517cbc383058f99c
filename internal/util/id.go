package util

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID returns a crypto-random hex identifier, optionally prefixed.
// Quote identifiers use the bare form; uploaded assets get a kind prefix.
func NewID(prefix string) string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)
	if prefix == "" {
		return hex.EncodeToString(bytes)
	}
	return prefix + "_" + hex.EncodeToString(bytes)
}
