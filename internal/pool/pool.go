package pool

import (
	"math/rand/v2"

	"github.com/abhisek/quizbank/internal/bank"
)

// Builder turns a filtered question list into a randomized, ready-to-serve
// pool.
type Builder struct {
	rng        *rand.Rand
	fixedOrder map[string]bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithRand sets the randomness source. Tests pass a seeded source.
func WithRand(r *rand.Rand) Option {
	return func(b *Builder) { b.rng = r }
}

// WithFixedOptionOrder keeps bank option order for the given subjects.
func WithFixedOptionOrder(subjects ...string) Option {
	return func(b *Builder) {
		for _, s := range subjects {
			b.fixedOrder[s] = true
		}
	}
}

// NewBuilder creates a Builder seeded from the global source.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{fixedOrder: make(map[string]bool)}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return b
}

// ShufflesOptions reports whether option order is randomized for subject.
func (b *Builder) ShufflesOptions(subject string) bool {
	return !b.fixedOrder[subject]
}

// Build returns a new pool: question order is a uniform random permutation,
// and each question's options are independently shuffled unless its subject
// has fixed option order. The input is never modified. An empty input gives
// an empty pool, which cannot start a session.
func (b *Builder) Build(filtered []bank.Question) []bank.Question {
	out := make([]bank.Question, len(filtered))
	for i, q := range filtered {
		out[i] = q.Clone()
	}

	// rand.Shuffle is Fisher-Yates: every permutation equally likely.
	b.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})

	for i := range out {
		if !b.ShufflesOptions(out[i].Subject) {
			continue
		}
		opts := out[i].Options
		b.rng.Shuffle(len(opts), func(x, y int) {
			opts[x], opts[y] = opts[y], opts[x]
		})
	}

	return out
}
