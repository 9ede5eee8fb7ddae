// Package freelist hands out fixed-size slices from a bounded pool and takes
// them back for reuse.
package freelist

import (
	"sync"

	"github.com/zeebo/errs"

	"github.com/Philanthropists/erroror/pkg/erroror"
)

var category = erroror.NewCategory("freelist", map[int]string{
	1: "freelist exhausted",
})

var ErrExhausted = erroror.MakeCode(1, category)

type Freelist[T any] struct {
	batchSize int
	capacity  int

	mu        sync.Mutex
	free      [][]T
	allocated int
}

// New creates a freelist able to hold capacity batches of batchSize
// elements each. Batches are allocated lazily.
func New[T any](capacity, batchSize int) (*Freelist[T], error) {
	if capacity <= 0 {
		return nil, errs.New("capacity:%d must be greater than zero", capacity)
	}

	if batchSize <= 0 {
		return nil, errs.New("batch size:%d must be greater than zero", batchSize)
	}

	return &Freelist[T]{
		batchSize: batchSize,
		capacity:  capacity,
	}, nil
}

// Get returns an empty batch with room for BatchSize elements, or
// ErrExhausted when every batch is in use.
func (f *Freelist[T]) Get() erroror.ErrorOr[[]T] {
	f.mu.Lock()
	defer f.mu.Unlock()

	if n := len(f.free); n > 0 {
		b := f.free[n-1]
		f.free[n-1] = nil
		f.free = f.free[:n-1]
		return erroror.Value(b[:0])
	}

	if f.allocated == f.capacity {
		return erroror.Fail[[]T](ErrExhausted)
	}

	f.allocated++
	return erroror.Value(make([]T, 0, f.batchSize))
}

// Put returns a batch obtained from Get. Batches with a foreign capacity
// are dropped.
func (f *Freelist[T]) Put(b []T) {
	if cap(b) != f.batchSize {
		return
	}

	var zero T
	b = b[:cap(b)]
	for i := range b {
		b[i] = zero
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.free) < f.allocated {
		f.free = append(f.free, b[:0])
	}
}

func (f *Freelist[T]) BatchSize() int {
	return f.batchSize
}

// Available is the number of batches Get can still hand out.
func (f *Freelist[T]) Available() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.capacity - f.allocated + len(f.free)
}
