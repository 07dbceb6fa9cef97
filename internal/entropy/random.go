// Package entropy supplies the randomness behind gameplay rolls: expedition
// loss and flavor-text choice. Map generation never draws from here; it
// uses its own seeded noise so maps stay reproducible.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	mrand "math/rand"
	"sync"
)

// Source yields uniform floats in [0, 1).
type Source interface {
	Float() float64
}

// poolSize is how many values a refill draws at once.
const poolSize = 100

// Pool serves floats from a locally buffered batch, refilled when low.
type Pool struct {
	mu     sync.Mutex
	pool   []float64
	fill   func(n int) []float64
	refill int
}

// NewCrypto returns a pooled source backed by crypto/rand.
func NewCrypto() *Pool {
	return &Pool{fill: cryptoBatch}
}

// Float returns a random float64 in [0, 1).
func (p *Pool) Float() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.pool) < 10 {
		p.pool = append(p.pool, p.fill(poolSize)...)
		p.refill++
		slog.Debug("entropy pool refilled", "count", len(p.pool), "refills", p.refill)
	}
	if len(p.pool) == 0 {
		return cryptoRandFloat()
	}

	val := p.pool[0]
	p.pool = p.pool[1:]
	return val
}

func cryptoBatch(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = cryptoRandFloat()
	}
	return out
}

// cryptoRandFloat generates a random float64 using crypto/rand.
func cryptoRandFloat() float64 {
	var buf [8]byte
	_, err := rand.Read(buf[:])
	if err != nil {
		// This should never happen but return 0.5 as a safe default.
		return 0.5
	}
	// Use only 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}

// Seeded is a reproducible source for replays and soak runs.
type Seeded struct {
	mu  sync.Mutex
	rng *mrand.Rand
}

// NewSeeded returns a source whose sequence is fixed by seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: mrand.New(mrand.NewSource(seed))}
}

func (s *Seeded) Float() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Sequence replays a fixed list of values, cycling when exhausted.
// An empty Sequence always returns 0.
type Sequence struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewSequence returns a source that yields values in order.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) Float() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// Chance reports whether a roll from src lands under p.
func Chance(src Source, p float64) bool {
	return src.Float() < p
}

// Intn returns a value in [0, n). n must be positive.
func Intn(src Source, n int) int {
	i := int(src.Float() * float64(n))
	return min(max(i, 0), n-1)
}
