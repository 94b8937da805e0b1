package pipeline

import (
	"strings"

	"github.com/matzehuels/galdraw/pkg/errors"
	"github.com/matzehuels/galdraw/pkg/lfsr"
)

// Resolve builds a validated register from the user's input.
//
// With a polynomial, taps come from [lfsr.ParsePolynomial] and values default
// to all ones. Explicit taps must then agree with the polynomial.
func Resolve(taps, values, poly string) (lfsr.Register, error) {
	if strings.TrimSpace(poly) == "" {
		return lfsr.NewRegister(taps, values)
	}

	t, err := lfsr.ParsePolynomial(poly)
	if err != nil {
		return lfsr.Register{}, err
	}
	if taps != "" && taps != t.String() {
		return lfsr.Register{}, errors.New(errors.ErrCodeInvalidInput,
			"taps %q disagree with polynomial %q (taps %s)", taps, poly, t.String())
	}

	v := lfsr.Ones(len(t))
	if values != "" {
		if v, err = lfsr.ParseValues(values); err != nil {
			return lfsr.Register{}, err
		}
	}
	r := lfsr.Register{Taps: t, Values: v}
	if err := r.Validate(); err != nil {
		return lfsr.Register{}, err
	}
	return r, nil
}
