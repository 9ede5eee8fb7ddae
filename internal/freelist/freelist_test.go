package freelist

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewRejectsInvalidSizes(t *testing.T) {
	_, err := New[int](0, 4)
	assert.Error(t, err)

	_, err = New[int](4, -1)
	assert.Error(t, err)
}

func Test_GetUntilExhausted(t *testing.T) {
	const Capacity = 3
	f, err := New[int](Capacity, 8)
	require.NoError(t, err)

	for i := 0; i < Capacity; i++ {
		b := f.Get()
		require.True(t, b.OK())
		assert.Empty(t, b.MustValue())
		assert.Equal(t, 8, cap(b.MustValue()))
	}

	assert.Zero(t, f.Available())

	res := f.Get()
	assert.False(t, res.OK())
	assert.Equal(t, ErrExhausted, res.Code())
}

func Test_PutMakesBatchReusable(t *testing.T) {
	f, err := New[int](1, 2)
	require.NoError(t, err)

	b := f.Get().MustValue()
	b = append(b, 1, 2)
	assert.False(t, f.Get().OK())

	f.Put(b)
	assert.Equal(t, 1, f.Available())

	again := f.Get()
	require.True(t, again.OK())
	assert.Empty(t, again.MustValue())
	assert.Equal(t, []int{0, 0}, again.MustValue()[:2], "reused batches are cleared")
}

func Test_PutIgnoresForeignBatches(t *testing.T) {
	f, err := New[int](1, 2)
	require.NoError(t, err)

	f.Put(make([]int, 0, 5))
	f.Put(make([]int, 0, 2))
	assert.Equal(t, 1, f.Available())
}

func Test_ConcurrentGetPut(t *testing.T) {
	const Concurrency = 8
	const Rounds = 500
	f, err := New[int](Concurrency, 4)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(Concurrency)
	for it := 0; it < Concurrency; it++ {
		go func() {
			defer wg.Done()

			for i := 0; i < Rounds; i++ {
				res := f.Get()
				if assert.True(t, res.OK()) {
					f.Put(res.MustValue())
				}
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, Concurrency, f.Available())
}
