package wombat

import (
	"context"
	"fmt"
	"time"

	"github.com/zeebo/errs"

	"github.com/Philanthropists/erroror/internal/freelist"
	"github.com/Philanthropists/erroror/internal/logging"
	"github.com/Philanthropists/erroror/internal/queue"
	"github.com/Philanthropists/erroror/pkg/erroror"
)

const defaultBackoff = 10 * time.Millisecond

// Producer builds batches from Source into Freelist slices and pushes them
// onto Queue.
type Producer struct {
	ID       int
	Queue    queue.FIFOQueue[Batch]
	Freelist *freelist.Freelist[Wombat]
	Source   Source
	Log      *logging.Logger

	// Backoff is how long Run waits when the queue is full or the freelist
	// is exhausted.
	Backoff time.Duration

	seq int
}

func (p *Producer) log() *logging.Logger {
	if p.Log == nil {
		p.Log = logging.New()
	}

	return p.Log
}

func (p *Producer) backoff() time.Duration {
	if p.Backoff == 0 {
		return defaultBackoff
	}

	return p.Backoff
}

// Build fills one batch. A source that ends midway yields a short batch;
// one that ends before the first wombat yields ErrEndOfInput.
func (p *Producer) Build(ctx context.Context) erroror.ErrorOr[Batch] {
	slot := p.Freelist.Get()
	if !slot.OK() {
		return erroror.Fail[Batch](slot.Code())
	}

	ws := slot.MustTake()
	for len(ws) < cap(ws) {
		w := p.Source.Next(ctx)
		if !w.OK() {
			if w.Code() == ErrEndOfInput && len(ws) > 0 {
				break
			}

			p.Freelist.Put(ws)
			return erroror.Fail[Batch](w.Code())
		}

		ws = append(ws, w.MustTake())
	}

	p.seq++
	return erroror.Value(Batch{
		ID:      fmt.Sprintf("%d-%d", p.ID, p.seq),
		Wombats: ws,
		release: p.Freelist.Put,
	})
}

// Run produces until the source ends and returns the number of batches
// pushed.
func (p *Producer) Run(ctx context.Context) (int, error) {
	log := p.log().With(logging.Int("producer", p.ID))

	var pushed int
	for {
		res := p.Build(ctx)
		switch code := res.Code(); code {
		case erroror.NoError:
		case ErrEndOfInput:
			log.Debug("source exhausted", logging.Int("batches", pushed))
			return pushed, nil
		case freelist.ErrExhausted:
			if err := p.wait(ctx); err != nil {
				return pushed, err
			}
			continue
		default:
			return pushed, errs.Wrap(code)
		}

		batch := res.MustTake()
		if err := p.push(ctx, &batch); err != nil {
			batch.Release()
			return pushed, err
		}

		log.Debug("pushed batch", logging.String("batch", batch.ID), logging.Int("size", len(batch.Wombats)))
		pushed++
	}
}

func (p *Producer) push(ctx context.Context, batch *Batch) error {
	for {
		switch code := p.Queue.PushBack(*batch); code {
		case erroror.NoError:
			return nil
		case queue.ErrFull:
			if err := p.wait(ctx); err != nil {
				return err
			}
		default:
			return errs.Wrap(code)
		}
	}
}

func (p *Producer) wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return errs.Wrap(ctx.Err())
	case <-time.After(p.backoff()):
		return nil
	}
}
