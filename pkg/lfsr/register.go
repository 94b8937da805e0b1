package lfsr

import (
	"github.com/matzehuels/galdraw/pkg/errors"
)

// Register is one static snapshot of a Galois LFSR: which cells are tapped
// and what each cell holds.
type Register struct {
	Taps   Bits `json:"taps"`
	Values Bits `json:"values"`
}

// NewRegister parses and validates a tap string and a value string.
// Both use the rightmost character as index 0.
func NewRegister(taps, values string) (Register, error) {
	t, err := ParseTaps(taps)
	if err != nil {
		return Register{}, err
	}
	v, err := ParseValues(values)
	if err != nil {
		return Register{}, err
	}
	r := Register{Taps: t, Values: v}
	if err := r.Validate(); err != nil {
		return Register{}, err
	}
	return r, nil
}

// Validate checks the layout preconditions: equal lengths, 1 ≤ L ≤ MaxLength
// and binary elements.
func (r Register) Validate() error {
	if err := errors.ValidateSameLength(len(r.Taps), len(r.Values)); err != nil {
		return err
	}
	if len(r.Taps) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "LFSR length must be at least 1")
	}
	if len(r.Taps) > MaxLength {
		return errors.New(errors.ErrCodeInvalidInput, "LFSR length cannot exceed %d bits", MaxLength)
	}
	for i := range r.Taps {
		if r.Taps[i] > 1 {
			return errors.New(errors.ErrCodeInvalidInput, "tap %d is not a bit: %d", i, r.Taps[i])
		}
		if r.Values[i] > 1 {
			return errors.New(errors.ErrCodeInvalidInput, "value %d is not a bit: %d", i, r.Values[i])
		}
	}
	return nil
}

// Len returns the number of register cells.
func (r Register) Len() int { return len(r.Taps) }

// Feedback returns the XOR of the tapped values.
func (r Register) Feedback() uint8 { return Feedback(r.Taps, r.Values) }

// LastTap returns the highest tapped index, or (0, false) without taps.
func (r Register) LastTap() (int, bool) {
	for i := len(r.Taps) - 1; i >= 0; i-- {
		if r.Taps[i] == 1 {
			return i, true
		}
	}
	return 0, false
}

// Output returns the value of the last cell, the bit shifted out next.
func (r Register) Output() uint8 {
	if len(r.Values) == 0 {
		return 0
	}
	return r.Values[len(r.Values)-1]
}

// Clone returns a deep copy.
func (r Register) Clone() Register {
	return Register{Taps: r.Taps.Clone(), Values: r.Values.Clone()}
}
