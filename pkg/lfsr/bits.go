package lfsr

import (
	"strings"

	"github.com/matzehuels/galdraw/pkg/errors"
)

// MaxLength is the longest register galdraw lays out.
const MaxLength = 32

// Bits is an ordered bit vector. Index 0 is the rightmost register cell.
// Every element is 0 or 1.
type Bits []uint8

// ParseTaps parses a tap sequence such as "1001".
func ParseTaps(s string) (Bits, error) { return parseBits("taps", s) }

// ParseValues parses an initial value vector such as "1111".
func ParseValues(s string) (Bits, error) { return parseBits("init-values", s) }

// ParseBits parses a string of '0' and '1' characters. The rightmost
// character becomes index 0.
func ParseBits(s string) (Bits, error) { return parseBits("bit string", s) }

func parseBits(name, s string) (Bits, error) {
	if err := errors.ValidateBitString(name, s, MaxLength); err != nil {
		return nil, err
	}
	b := make(Bits, len(s))
	for i := 0; i < len(s); i++ {
		b[len(s)-1-i] = s[i] - '0'
	}
	return b, nil
}

// Ones returns a vector of n set bits.
func Ones(n int) Bits {
	b := make(Bits, n)
	for i := range b {
		b[i] = 1
	}
	return b
}

// String renders the vector with index 0 as the rightmost character.
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for i := len(b) - 1; i >= 0; i-- {
		sb.WriteByte('0' + b[i])
	}
	return sb.String()
}

// Count returns the number of set bits.
func (b Bits) Count() int {
	n := 0
	for _, v := range b {
		if v == 1 {
			n++
		}
	}
	return n
}

// Indices returns the ascending positions of set bits.
func (b Bits) Indices() []int {
	idx := make([]int, 0, b.Count())
	for i, v := range b {
		if v == 1 {
			idx = append(idx, i)
		}
	}
	return idx
}

// Clone returns an independent copy.
func (b Bits) Clone() Bits {
	if b == nil {
		return nil
	}
	out := make(Bits, len(b))
	copy(out, b)
	return out
}

// Toggle returns a copy with bit i flipped. Out-of-range indices return an
// unchanged copy.
func (b Bits) Toggle(i int) Bits {
	out := b.Clone()
	if i >= 0 && i < len(out) {
		out[i] ^= 1
	}
	return out
}
