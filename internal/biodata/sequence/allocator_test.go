package sequence

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStartsAtOne(t *testing.T) {
	alloc := NewMemory(0)

	next, err := alloc.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)
}

func TestMemoryContinuesAfterSeed(t *testing.T) {
	alloc := NewMemory(7)

	next, err := alloc.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(8), next)
}

func TestSeedFromLegacy(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int64
	}{
		{"numeric seed continues", "7", 8},
		{"empty seed restarts", "", 1},
		{"non-numeric seed restarts", "not-a-number", 1},
		{"negative seed restarts", "-3", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := SeedFromLegacy(tt.raw)
			next, err := alloc.Next(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, next)
		})
	}
}

func TestMemoryIsMonotonicUnderConcurrency(t *testing.T) {
	alloc := NewMemory(0)
	const goroutines = 50

	var wg sync.WaitGroup
	seen := make(chan int64, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			next, err := alloc.Next(context.Background())
			assert.NoError(t, err)
			seen <- next
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[int64]bool)
	for v := range seen {
		assert.False(t, unique[v], "duplicate id %d allocated", v)
		unique[v] = true
	}
	assert.Len(t, unique, goroutines)
}
