package mutex

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Philanthropists/erroror/internal/queue"
	"github.com/Philanthropists/erroror/pkg/erroror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type someType struct {
	id int
}

func Test_QueueShouldReachMaxSizeIfSpecified(t *testing.T) {
	const Size = 10
	q := CreateQueue[someType](Size)

	for i := 0; i < Size; i++ {
		assert.False(t, q.IsFull())
		assert.Equal(t, erroror.NoError, q.PushBack(someType{id: i}))
		assert.Equal(t, i+1, q.Size())
	}

	assert.True(t, q.IsFull())
	assert.Equal(t, queue.ErrFull, q.PushBack(someType{}))
	assert.Equal(t, Size, q.Size())
}

func Test_PushBackWithoutMaxLimit(t *testing.T) {
	const Size = 10000
	q := CreateQueue[someType](0)

	for i := 0; i < Size; i++ {
		assert.Equal(t, erroror.NoError, q.PushBack(someType{id: i}))
		assert.Equal(t, i+1, q.Size())
		assert.False(t, q.IsFull())
		assert.False(t, q.IsEmpty())
	}

	assert.Equal(t, Size, q.Size())
}

func Test_PopKeepsInsertionOrder(t *testing.T) {
	q := CreateQueue[someType](0)

	for i := 0; i < 5; i++ {
		q.PushBack(someType{id: i})
	}

	for i := 0; i < 5; i++ {
		res := q.TryPop()
		require.True(t, res.OK())
		assert.Equal(t, i, res.MustValue().id)
	}
}

func Test_IsConsistentWithMultipleCorroutines(t *testing.T) {
	const Concurrency = 16
	const Size = 1000
	q := CreateQueue[someType](0)

	assert.True(t, q.IsEmpty())

	var wg sync.WaitGroup
	wg.Add(Concurrency)
	for it := 0; it < Concurrency; it++ {
		go func() {
			defer wg.Done()

			for i := 0; i < Size; i++ {
				assert.Equal(t, erroror.NoError, q.PushBack(someType{id: i}))
				assert.False(t, q.IsFull())
				assert.False(t, q.IsEmpty())
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, Concurrency*Size, q.Size())
}

func Test_IfPopElementSizeShouldDecrease(t *testing.T) {
	const Insertions = 10
	const Deletions = 7
	q := CreateQueue[someType](0)

	assert.True(t, q.IsEmpty())

	for i := 0; i < Insertions; i++ {
		assert.Equal(t, erroror.NoError, q.PushBack(someType{id: i}))

		assert.False(t, q.IsFull())
		assert.False(t, q.IsEmpty())
	}

	for i := 0; i < Deletions; i++ {
		res := q.TryPop()
		assert.NoError(t, res.Err())

		assert.False(t, q.IsFull())
		assert.False(t, q.IsEmpty())
	}

	assert.Equal(t, Insertions-Deletions, q.Size())
	assert.False(t, q.IsFull())
	assert.False(t, q.IsEmpty())
}

func Test_IfPopOnEmptyShouldGiveError(t *testing.T) {
	q := CreateQueue[someType](0)

	assert.True(t, q.IsEmpty())

	res := q.TryPop()

	assert.False(t, res.OK())
	assert.Equal(t, queue.ErrEmpty, res.Code())

	_, err := res.Value()
	assert.ErrorIs(t, err, queue.ErrEmpty)
	assert.ErrorIs(t, err, erroror.ErrBadAccess)
}

func Test_ClosedQueueDrainsThenReportsClosed(t *testing.T) {
	q := CreateQueue[someType](0)
	q.PushBack(someType{id: 1})
	q.Close()
	q.Close()

	assert.Equal(t, queue.ErrClosed, q.PushBack(someType{id: 2}))

	res := q.TryPop()
	require.True(t, res.OK())
	assert.Equal(t, 1, res.MustValue().id)

	assert.Equal(t, queue.ErrClosed, q.TryPop().Code())
	assert.Equal(t, queue.ErrClosed, q.Pop(context.Background()).Code())
}

func Test_PopBlocksUntilPush(t *testing.T) {
	q := CreateQueue[someType](0)

	done := make(chan erroror.ErrorOr[someType])
	go func() {
		done <- q.Pop(context.Background())
	}()

	<-time.After(5 * time.Millisecond)
	q.PushBack(someType{id: 42})

	select {
	case res := <-done:
		require.True(t, res.OK())
		assert.Equal(t, 42, res.MustValue().id)
	case <-time.After(time.Second):
		t.Fatal("pop did not wake up after push")
	}
}

func Test_PopWakesOnClose(t *testing.T) {
	q := CreateQueue[someType](0)

	done := make(chan erroror.ErrorOr[someType])
	go func() {
		done <- q.Pop(context.Background())
	}()

	q.Close()

	select {
	case res := <-done:
		assert.Equal(t, queue.ErrClosed, res.Code())
	case <-time.After(time.Second):
		t.Fatal("pop did not wake up after close")
	}
}

func Test_PopHonoursContext(t *testing.T) {
	q := CreateQueue[someType](0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	res := q.Pop(ctx)
	assert.False(t, res.OK())
	assert.Equal(t, erroror.MakeCode(erroror.TimedOut, erroror.GenericCategory()), res.Code())
}

func Test_ConcurrentInsertionsAndDeletionsShouldBeConsistent(t *testing.T) {
	const Concurrency = 7
	const Insertions = 100
	const Deletions = 99

	q := CreateQueue[someType](0)

	assert.True(t, q.IsEmpty())

	var wg sync.WaitGroup
	wg.Add(2 * Concurrency)

	for it := 0; it < Concurrency; it++ {
		go func(q queue.FIFOQueue[someType]) {
			defer wg.Done()

			for i := 0; i < Insertions; i++ {
				assert.Equal(t, erroror.NoError, q.PushBack(someType{id: i}))
				assert.False(t, q.IsFull())
			}
		}(q)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for it := 0; it < Concurrency; it++ {
		go func(q queue.FIFOQueue[someType]) {
			defer wg.Done()

			for i := 0; i < Deletions; i++ {
				res := q.Pop(ctx)

				assert.True(t, res.OK())
				assert.NoError(t, res.Err())
			}
		}(q)
	}

	wg.Wait()
	assert.Equal(t, Concurrency*(Insertions-Deletions), q.Size())
}
