package queue

import (
	"context"

	"github.com/Philanthropists/erroror/pkg/erroror"
)

const (
	empty = iota + 1
	full
	closed
)

var category = erroror.NewCategory("queue", map[int]string{
	empty:  "queue is empty",
	full:   "queue is full",
	closed: "queue is closed",
})

var (
	ErrEmpty  = erroror.MakeCode(empty, category)
	ErrFull   = erroror.MakeCode(full, category)
	ErrClosed = erroror.MakeCode(closed, category)
)

// Category is the error domain of queue codes.
func Category() erroror.Category {
	return category
}

type FIFOQueue[T any] interface {
	// PushBack returns NoError, ErrFull or ErrClosed.
	PushBack(T) erroror.Code
	// TryPop never blocks; it fails with ErrEmpty, or ErrClosed once the
	// queue is closed and drained.
	TryPop() erroror.ErrorOr[T]
	// Pop blocks until an element is available, the queue is closed and
	// drained, or ctx is done.
	Pop(ctx context.Context) erroror.ErrorOr[T]
	Close()
	Size() int
	IsEmpty() bool
	IsFull() bool
}
