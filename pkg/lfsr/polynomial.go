package lfsr

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/matzehuels/galdraw/pkg/errors"
)

var (
	polyLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Int", Pattern: `\d+`},
		{Name: "Var", Pattern: `[xX]`},
		{Name: "Op", Pattern: `\*\*|[+^]`},
	})

	polyParser = participle.MustBuild[polynomial](
		participle.Lexer(polyLexer),
		participle.Elide("Whitespace"),
	)
)

type polynomial struct {
	Terms []*term `parser:"@@ ( '+' @@ )*"`
}

type term struct {
	Power *power `parser:"  @@"`
	Const *int   `parser:"| @Int"`
}

type power struct {
	Var      string `parser:"@Var"`
	Exponent *int   `parser:"( ( '^' | '**' ) @Int )?"`
}

// ParsePolynomial parses a characteristic polynomial over GF(2), such as
// "x^4 + x^3 + 1" or "x**16 + x**14 + x**13 + x**11 + 1", into a tap mask.
//
// The degree n of the polynomial becomes the register length and tap i is the
// coefficient of x^i for i < n. Repeated terms cancel, as addition in GF(2)
// is XOR, and the degree limit applies after cancellation. Constants other
// than 0 and 1 are rejected.
func ParsePolynomial(s string) (Bits, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "polynomial cannot be empty")
	}
	ast, err := polyParser.ParseString("", s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid polynomial %q", s)
	}

	coeff := make(map[int]uint8)
	for _, t := range ast.Terms {
		exp, err := t.exponent()
		if err != nil {
			return nil, err
		}
		if exp >= 0 {
			coeff[exp] ^= 1
		}
	}

	degree := 0
	for exp, c := range coeff {
		if c == 1 && exp > degree {
			degree = exp
		}
	}
	if degree < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "polynomial %q must have degree at least 1", s)
	}
	if degree > MaxLength {
		return nil, errors.New(errors.ErrCodeInvalidInput, "LFSR length cannot exceed %d bits (polynomial degree %d)", MaxLength, degree)
	}

	taps := make(Bits, degree)
	for i := range taps {
		taps[i] = coeff[i]
	}
	return taps, nil
}

// exponent returns the power of x a term contributes, or -1 for a zero term.
func (t *term) exponent() (int, error) {
	if t.Power != nil {
		if t.Power.Exponent == nil {
			return 1, nil
		}
		return *t.Power.Exponent, nil
	}
	switch *t.Const {
	case 0:
		return -1, nil
	case 1:
		return 0, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidInput, "polynomial coefficients must be 0 or 1, got %d", *t.Const)
	}
}

// FormatPolynomial renders the characteristic polynomial of a tap mask, the
// inverse of [ParsePolynomial]. A mask of length n has leading term x^n.
func FormatPolynomial(taps Bits) string {
	if len(taps) == 0 {
		return ""
	}
	terms := []string{monomial(len(taps))}
	for i := len(taps) - 1; i >= 0; i-- {
		if taps[i] == 1 {
			terms = append(terms, monomial(i))
		}
	}
	return strings.Join(terms, " + ")
}

func monomial(exp int) string {
	switch exp {
	case 0:
		return "1"
	case 1:
		return "x"
	default:
		return fmt.Sprintf("x^%d", exp)
	}
}
