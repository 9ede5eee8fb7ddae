// Package wombat is a producer/consumer pipeline moving batches of wombats
// through a shared queue. Every step reports its outcome as an ErrorOr.
package wombat

import (
	"github.com/Philanthropists/erroror/pkg/erroror"
)

var category = erroror.NewCategory("wombat", map[int]string{
	1: "no more wombats",
	2: "batch already processed",
	3: "batch has no wombats",
})

var (
	ErrEndOfInput = erroror.MakeCode(1, category)
	ErrDuplicate  = erroror.MakeCode(2, category)
	ErrEmptyBatch = erroror.MakeCode(3, category)
)

type Wombat struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// Batch is a group of wombats whose backing slice belongs to a freelist.
// Release hands the slice back; a released batch is empty.
type Batch struct {
	ID      string
	Wombats []Wombat

	release func([]Wombat)
}

func (b *Batch) Release() {
	if b.release != nil && b.Wombats != nil {
		b.release(b.Wombats)
	}

	b.Wombats = nil
	b.release = nil
}

type Summary struct {
	BatchID     string  `json:"batch_id"`
	Count       int     `json:"count"`
	TotalWeight float64 `json:"total_weight"`
	Heaviest    string  `json:"heaviest"`
}

func summarize(b Batch) Summary {
	s := Summary{
		BatchID: b.ID,
		Count:   len(b.Wombats),
	}

	var top float64
	for _, w := range b.Wombats {
		s.TotalWeight += w.Weight
		if w.Weight > top {
			top = w.Weight
			s.Heaviest = w.Name
		}
	}

	return s
}
