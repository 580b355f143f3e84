package id

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomGenerator_NewID(t *testing.T) {
	gen := NewRandomGenerator()

	first, err := gen.NewID()
	require.NoError(t, err)
	second, err := gen.NewID()
	require.NoError(t, err)

	assert.Len(t, first, 36)
	assert.NotEqual(t, first, second)
}

func TestSequence_Concurrent(t *testing.T) {
	seq := NewSequence(10)

	const workers = 50
	seen := make(chan int64, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			seen <- seq.Next()
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[int64]bool, workers)
	for v := range seen {
		require.Greater(t, v, int64(10))
		require.False(t, unique[v], "duplicate id %d", v)
		unique[v] = true
	}
	assert.Equal(t, int64(10+workers), seq.Current())
}

func TestSequence_Observe(t *testing.T) {
	var seq Sequence
	seq.Observe(41)
	seq.Observe(5)

	assert.Equal(t, int64(42), seq.Next())
}
