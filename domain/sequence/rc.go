package sequence

import (
	"errors"
	"fmt"
)

// ErrInvalidBase indicates a character outside the A, C, G, T alphabet.
var ErrInvalidBase = errors.New("invalid base")

// complement maps each canonical base to its pairing partner. Entries left
// zero are outside the recognized alphabet.
var complement [256]byte

func init() {
	complement['A'] = 'T'
	complement['C'] = 'G'
	complement['G'] = 'C'
	complement['T'] = 'A'
}

// ReverseComplement returns the base-pair complement of s read in reverse
// order. Bytes outside the alphabet pass through unchanged so the
// involution property holds for any input; callers are expected to
// validate sequences at the load boundary.
func ReverseComplement(s string) string {
	n := len(s)
	if n == 0 {
		return ""
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b := s[n-1-i]
		c := complement[b]
		if c == 0 {
			c = b
		}
		out[i] = c
	}
	return string(out)
}

// Validate checks that s contains only the four canonical bases.
func Validate(s string) error {
	for i := 0; i < len(s); i++ {
		if complement[s[i]] == 0 {
			return fmt.Errorf("%w: %q at position %d", ErrInvalidBase, string(s[i]), i)
		}
	}
	return nil
}
