package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/galdraw/pkg/lfsr"
)

func TestInspectCommand(t *testing.T) {
	c, _ := newTestCLI(t)
	out, err := run(t, c, "inspect", "--taps", "1001", "--init-values", "1101")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"x^4 + x^3 + 1", "x3", "x0", "Contributes", "box size", "feedback"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInspectCommandPolynomial(t *testing.T) {
	c, _ := newTestCLI(t)
	out, err := run(t, c, "inspect", "--poly", "x^5 + x^2 + 1")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.Contains(out, "x4") {
		t.Errorf("five cells expected:\n%s", out)
	}
}

func TestCellTable(t *testing.T) {
	reg, err := lfsr.NewRegister("1001", "1011")
	if err != nil {
		t.Fatal(err)
	}
	tbl := cellTable(reg)

	// Rows run from the highest cell down; x3 is tapped and set, x0 too.
	if strings.Index(tbl, "x3") > strings.Index(tbl, "x0") {
		t.Errorf("x3 should be listed before x0:\n%s", tbl)
	}
	if strings.Count(tbl, "yes") != 2 {
		t.Errorf("want two contributing cells:\n%s", tbl)
	}
}
