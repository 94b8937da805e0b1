// Package lfsr models the contents of a Galois linear feedback shift register
// as it is drawn by galdraw.
//
// # Overview
//
// A register of length L is described by two bit vectors of the same length:
//
//   - the tap mask ([Bits]), where a 1 marks a cell whose value feeds the
//     XOR feedback;
//   - the value vector ([Bits]), the initial contents of each cell.
//
// Index 0 is the rightmost, least significant cell. Bit strings are written
// the way a human reads a register, so the rightmost character of "1001" is
// index 0:
//
//	taps, _ := lfsr.ParseTaps("1001")   // taps[0] == 1, taps[3] == 1
//
// # Feedback
//
// [Feedback] XOR-reduces the values at tapped positions. The result does not
// depend on iteration order, and it is 0 when no tap is set.
//
// # Validation
//
// [NewRegister] and [Register.Validate] enforce the preconditions of the
// layout engine: equal lengths, 1 ≤ L ≤ [MaxLength], binary characters only.
// Violations are reported as INVALID_INPUT errors from package
// github.com/matzehuels/galdraw/pkg/errors and are never coerced.
//
// # Polynomial Notation
//
// [ParsePolynomial] accepts the characteristic polynomial of the register,
// e.g. "x^4 + x^3 + 1". A polynomial of degree n yields a tap mask of length n
// where tap i is the coefficient of x^i, so the example above is "1001".
// [FormatPolynomial] is the inverse.
package lfsr
