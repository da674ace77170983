// Package filler provides the cyclic background sequence source used to
// pad constructs between placed parts.
package filler

import (
	"errors"
	"math/rand"
)

// ErrEmptyFiller indicates a background sequence with zero usable bytes.
var ErrEmptyFiller = errors.New("empty filler sequence")

// Cycler draws background bases from an underlying sequence, wrapping to
// index zero when the end is reached. The cursor advances with every draw
// so repeated draws deterministically continue where the previous one
// stopped, whatever the total length requested.
type Cycler struct {
	seq    string
	cursor int
}

// NewCycler creates a Cycler over the given background sequence.
func NewCycler(seq string) (*Cycler, error) {
	if len(seq) == 0 {
		return nil, ErrEmptyFiller
	}
	return &Cycler{seq: seq}, nil
}

// Take returns exactly n bases starting at the cursor and advances the
// cursor by n modulo the underlying length. Non-positive n returns the
// empty string without moving the cursor.
func (c *Cycler) Take(n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]byte, 0, n)
	for n > 0 {
		chunk := len(c.seq) - c.cursor
		if chunk > n {
			chunk = n
		}
		out = append(out, c.seq[c.cursor:c.cursor+chunk]...)
		c.cursor = (c.cursor + chunk) % len(c.seq)
		n -= chunk
	}
	return string(out)
}

// Cursor returns the next read position within the underlying sequence.
func (c *Cycler) Cursor() int { return c.cursor }

// Len returns the length of the underlying sequence.
func (c *Cycler) Len() int { return len(c.seq) }

// Permute returns a new sequence holding the same multiset of bases as
// seq, shuffled deterministically under the given seed. Replicate
// constructs cycle over a permuted background so their filler spans differ
// while base composition stays identical.
func Permute(seq string, seed int64) string {
	b := []byte(seq)
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(b), func(i, j int) { b[i], b[j] = b[j], b[i] })
	return string(b)
}
