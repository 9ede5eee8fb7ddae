package wombat

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/zeebo/errs"

	"github.com/Philanthropists/erroror/internal/logging"
	"github.com/Philanthropists/erroror/internal/queue"
	"github.com/Philanthropists/erroror/pkg/erroror"
)

const defaultDedupWindow = 5 * time.Minute

// Processor receives every accepted batch, e.g. to upload it. The batch is
// released once Process returns, so it must not be retained.
type Processor interface {
	Process(ctx context.Context, b Batch) error
}

type ProcessorFunc func(ctx context.Context, b Batch) error

func (f ProcessorFunc) Process(ctx context.Context, b Batch) error {
	return f(ctx, b)
}

type inMemoryCache interface {
	Add(k string, v any, d time.Duration) error
}

type Stats struct {
	Processed int
	Failures  map[erroror.Code]int
}

func (s *Stats) Record(res erroror.ErrorOr[Summary]) {
	if res.OK() {
		s.Processed++
		return
	}

	if s.Failures == nil {
		s.Failures = make(map[erroror.Code]int)
	}
	s.Failures[res.Code()]++
}

// Consumer drains batches from Queue. Batch IDs seen within DedupWindow are
// rejected with ErrDuplicate.
type Consumer struct {
	Queue       queue.FIFOQueue[Batch]
	Processor   Processor
	DedupWindow time.Duration
	Log         *logging.Logger

	once sync.Once
	seen inMemoryCache
}

func (c *Consumer) init() {
	c.once.Do(func() {
		window := defaultDedupWindow
		if c.DedupWindow != 0 {
			window = c.DedupWindow
		}

		c.seen = cache.New(window, 2*window)

		if c.Log == nil {
			c.Log = logging.New()
		}
	})
}

// Handle processes b and releases it.
func (c *Consumer) Handle(ctx context.Context, b Batch) erroror.ErrorOr[Summary] {
	c.init()
	defer b.Release()

	if err := c.seen.Add(b.ID, struct{}{}, cache.DefaultExpiration); err != nil {
		c.Log.Warn("dropping duplicate batch", logging.String("batch", b.ID))
		return erroror.Fail[Summary](ErrDuplicate)
	}

	if len(b.Wombats) == 0 {
		return erroror.Fail[Summary](ErrEmptyBatch)
	}

	if c.Processor != nil {
		if err := c.Processor.Process(ctx, b); err != nil {
			c.Log.Error("could not process batch", logging.String("batch", b.ID), logging.Error(err))
			return erroror.FromError[Summary](err)
		}
	}

	return erroror.Value(summarize(b))
}

// Run pops and handles batches until the queue is closed and drained.
func (c *Consumer) Run(ctx context.Context) (Stats, error) {
	c.init()

	var stats Stats
	for {
		res := c.Queue.Pop(ctx)
		if !res.OK() {
			if res.Code() == queue.ErrClosed {
				return stats, nil
			}

			c.Log.Error("could not pop batch", logging.Code(res.Code()))
			return stats, errs.Wrap(res.Err())
		}

		stats.Record(c.Handle(ctx, res.MustTake()))
	}
}

// Drain streams queue results until the queue is closed and drained or ctx
// is done. Only ErrClosed ends the stream quietly; any other failure is
// delivered before the channel closes.
func Drain(ctx context.Context, q queue.FIFOQueue[Batch]) <-chan erroror.ErrorOr[Batch] {
	out := make(chan erroror.ErrorOr[Batch])

	go func() {
		defer close(out)

		for {
			res := q.Pop(ctx)
			if res.Code() == queue.ErrClosed {
				return
			}

			select {
			case <-ctx.Done():
				res.Release()
				return
			case out <- res:
			}

			if !res.OK() {
				return
			}
		}
	}()

	return out
}
