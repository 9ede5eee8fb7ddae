package mutex

import (
	"context"
	"sync"

	"github.com/Philanthropists/erroror/internal/queue"
	"github.com/Philanthropists/erroror/pkg/erroror"
)

type mutexFifoQueue[T any] struct {
	MaxSize int
	Store   []T
	Mutex   *sync.Mutex

	closed bool
	// closed and replaced on every push and on Close
	signal chan struct{}
}

func CreateQueue[T any](maxsize int) *mutexFifoQueue[T] {
	return &mutexFifoQueue[T]{
		MaxSize: maxsize,
		Mutex:   &sync.Mutex{},
		signal:  make(chan struct{}),
	}
}

func (q *mutexFifoQueue[T]) PushBack(e T) erroror.Code {
	q.Mutex.Lock()
	defer q.Mutex.Unlock()

	if q.closed {
		return queue.ErrClosed
	}

	if q.MaxSize > 0 && len(q.Store) == q.MaxSize {
		return queue.ErrFull
	}

	q.Store = append(q.Store, e)
	q.wakeLocked()

	return erroror.NoError
}

func (q *mutexFifoQueue[T]) TryPop() erroror.ErrorOr[T] {
	q.Mutex.Lock()
	defer q.Mutex.Unlock()

	return q.popLocked()
}

func (q *mutexFifoQueue[T]) Pop(ctx context.Context) erroror.ErrorOr[T] {
	for {
		q.Mutex.Lock()
		res := q.popLocked()
		wait := q.signal
		q.Mutex.Unlock()

		if res.Code() != queue.ErrEmpty {
			return res
		}

		select {
		case <-ctx.Done():
			return erroror.FromError[T](ctx.Err())
		case <-wait:
		}
	}
}

func (q *mutexFifoQueue[T]) Close() {
	q.Mutex.Lock()
	defer q.Mutex.Unlock()

	if q.closed {
		return
	}

	q.closed = true
	q.wakeLocked()
}

func (q *mutexFifoQueue[T]) popLocked() erroror.ErrorOr[T] {
	if len(q.Store) == 0 {
		if q.closed {
			return erroror.Fail[T](queue.ErrClosed)
		}
		return erroror.Fail[T](queue.ErrEmpty)
	}

	var zero T
	topElement := q.Store[0]
	q.Store[0] = zero
	q.Store = q.Store[1:]

	return erroror.Value(topElement)
}

func (q *mutexFifoQueue[T]) wakeLocked() {
	close(q.signal)
	q.signal = make(chan struct{})
}

func (q *mutexFifoQueue[T]) Size() int {
	q.Mutex.Lock()
	defer q.Mutex.Unlock()
	return len(q.Store)
}

func (q *mutexFifoQueue[T]) IsEmpty() bool {
	return q.Size() == 0
}

func (q *mutexFifoQueue[T]) IsFull() bool {
	length := q.Size()
	return (q.MaxSize > 0 && length == q.MaxSize)
}
