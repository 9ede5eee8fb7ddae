package wombat

import (
	"context"
	"math/rand"
	"sync"

	"github.com/Philanthropists/erroror/pkg/erroror"
)

type Source interface {
	// Next fails with ErrEndOfInput once the source is exhausted.
	Next(ctx context.Context) erroror.ErrorOr[Wombat]
}

var names = []string{"Bruno", "Dusty", "Hazel", "Kip", "Matilda", "Nugget", "Pip", "Tilly"}

// Generator produces random wombats. It is safe for concurrent use.
type Generator struct {
	limit int

	mu  sync.Mutex
	rnd *rand.Rand
	n   int
}

// NewGenerator returns a generator that stops after limit wombats; zero
// means no limit.
func NewGenerator(seed int64, limit int) *Generator {
	return &Generator{
		limit: limit,
		rnd:   rand.New(rand.NewSource(seed)),
	}
}

func (g *Generator) Next(ctx context.Context) erroror.ErrorOr[Wombat] {
	if err := ctx.Err(); err != nil {
		return erroror.FromError[Wombat](err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.limit > 0 && g.n >= g.limit {
		return erroror.Fail[Wombat](ErrEndOfInput)
	}

	g.n++
	return erroror.Value(Wombat{
		ID:     g.n,
		Name:   names[g.rnd.Intn(len(names))],
		Weight: 20 + g.rnd.Float64()*15,
	})
}

// SliceSource replays a fixed list of wombats.
type SliceSource struct {
	Wombats []Wombat

	mu  sync.Mutex
	pos int
}

func (s *SliceSource) Next(ctx context.Context) erroror.ErrorOr[Wombat] {
	if err := ctx.Err(); err != nil {
		return erroror.FromError[Wombat](err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pos >= len(s.Wombats) {
		return erroror.Fail[Wombat](ErrEndOfInput)
	}

	w := s.Wombats[s.pos]
	s.pos++
	return erroror.Value(w)
}
