package errors

import (
	"slices"
	"strings"
	"unicode"
)

// ValidateBitString validates a register vector given as a string of '0' and
// '1' characters. name is used in the message ("taps", "init-values").
//
// The validation rules follow the register model:
//   - No empty strings
//   - At most maxLen characters
//   - Only '0' and '1'; whitespace and other characters are rejected, never skipped
func ValidateBitString(name, s string, maxLen int) error {
	if s == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", name)
	}

	if len(s) > maxLen {
		return New(ErrCodeInvalidInput, "LFSR length cannot exceed %d bits (%s has %d)", maxLen, name, len(s))
	}

	for i, r := range s {
		if r != '0' && r != '1' {
			if unicode.IsPrint(r) {
				return New(ErrCodeInvalidInput, "%s must be a string of 0s and 1s: invalid character %q at position %d", name, r, i)
			}
			return New(ErrCodeInvalidInput, "%s must be a string of 0s and 1s: invalid character at position %d", name, i)
		}
	}

	return nil
}

// ValidateSameLength checks that the tap sequence and the initial values
// describe the same number of register cells.
func ValidateSameLength(taps, values int) error {
	if taps != values {
		return New(ErrCodeInvalidInput, "tap sequence and initial values must have the same length (%d vs %d)", taps, values)
	}
	return nil
}

// ValidateChoice checks that value is one of allowed and returns an error with
// the given code otherwise. The comparison is case-sensitive.
func ValidateChoice(code Code, kind, value string, allowed ...string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	quoted := make([]string, len(allowed))
	for i, a := range allowed {
		quoted[i] = "'" + a + "'"
	}
	return New(code, "invalid %s: %q (must be one of: %s)", kind, value, strings.Join(quoted, ", "))
}
