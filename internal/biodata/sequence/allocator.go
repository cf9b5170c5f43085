// Package sequence allocates the monotonic public biodata identifiers.
//
// The legacy scheme scanned storage for the highest existing identifier and
// added one, which races under concurrent creation. The Postgres allocator
// replaces it with an atomic counter upsert; the in-memory allocator keeps the
// legacy seed semantics (unparseable or absent maximum counts as zero) for
// single-process runs and tests.
package sequence

import (
	"context"
	"strconv"
	"sync"
)

// Allocator hands out the next biodata identifier. Every call returns a value
// strictly greater than any value returned before it.
type Allocator interface {
	Next(ctx context.Context) (int64, error)
}

// ParseLegacyID interprets an identifier recovered from legacy records. A
// missing or non-numeric value is treated as "no prior id", not an error.
func ParseLegacyID(raw string) int64 {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Memory is a mutex-guarded counter allocator.
type Memory struct {
	mu   sync.Mutex
	last int64
}

// NewMemory creates an allocator starting after seed. Use SeedFromLegacy when
// the seed comes from an untyped source.
func NewMemory(seed int64) *Memory {
	if seed < 0 {
		seed = 0
	}
	return &Memory{last: seed}
}

// SeedFromLegacy creates an allocator from a legacy identifier string.
func SeedFromLegacy(raw string) *Memory {
	return NewMemory(ParseLegacyID(raw))
}

func (m *Memory) Next(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last++
	return m.last, nil
}
