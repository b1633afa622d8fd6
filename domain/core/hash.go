package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Short returns the first 12 hex characters, enough for logs.
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// ModelHash fingerprints a factor model. Two models hash equal iff they have the
// same factor names and values in the same order.
type ModelHash Hash

func (h ModelHash) String() string { return Hash(h).String() }

// ParseModelHash accepts the 64-character hex form produced by ComputeModelHash.
func ParseModelHash(s string) (ModelHash, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2*sha256.Size {
		return "", fmt.Errorf("invalid model hash %q: want %d hex characters", s, 2*sha256.Size)
	}
	if _, err := hex.DecodeString(s); err != nil {
		return "", fmt.Errorf("invalid model hash %q: %w", s, err)
	}
	return ModelHash(s), nil
}

// ComputeModelHash hashes names and values with length prefixes so that
// ["ab"],["c"] and ["a"],["bc"] never collide.
func ComputeModelHash(names []string, values [][]string) ModelHash {
	var data strings.Builder
	writeField := func(s string) {
		data.WriteString(strconv.Itoa(len(s)))
		data.WriteByte(':')
		data.WriteString(s)
	}
	for i, name := range names {
		writeField(name)
		data.WriteByte('[')
		if i < len(values) {
			for _, v := range values[i] {
				writeField(v)
			}
		}
		data.WriteByte(']')
	}
	return ModelHash(NewHash([]byte(data.String())))
}
