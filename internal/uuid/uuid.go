// Package uuid wraps ID generation behind an interface so processing stays
// deterministic under test.
package uuid

import "github.com/google/uuid"

// Generator produces unique ID strings.
type Generator interface {
	New() string
}

// V4Generator implements Generator with random version-4 UUIDs.
type V4Generator struct{}

// NewV4Generator creates a V4Generator.
func NewV4Generator() *V4Generator {
	return &V4Generator{}
}

// New generates a new UUID string.
func (g *V4Generator) New() string {
	return uuid.New().String()
}
