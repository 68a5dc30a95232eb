// Package mock provides a deterministic Generator for tests.
package mock

import "fmt"

// SequenceGenerator hands out predictable IDs: prefix-1, prefix-2, ...
type SequenceGenerator struct {
	Prefix string
	next   int
}

// NewSequenceGenerator creates a SequenceGenerator with the given prefix.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{Prefix: prefix}
}

// New returns the next ID in the sequence.
func (g *SequenceGenerator) New() string {
	g.next++
	return fmt.Sprintf("%s-%d", g.Prefix, g.next)
}
