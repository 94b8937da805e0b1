package lfsr

import (
	"strings"
	"testing"

	"github.com/matzehuels/galdraw/pkg/errors"
)

func TestNewRegister(t *testing.T) {
	tests := []struct {
		name    string
		taps    string
		values  string
		wantErr bool
	}{
		{"defaults", "1001", "1111", false},
		{"single cell", "1", "0", false},
		{"max length", strings.Repeat("1", 32), strings.Repeat("0", 32), false},

		{"length mismatch", "1001", "111", true},
		{"too long", strings.Repeat("1", 33), strings.Repeat("1", 33), true},
		{"bad taps", "10x1", "1111", true},
		{"bad values", "1001", "1121", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRegister(tt.taps, tt.values)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewRegister(%q, %q) error = %v, wantErr %v", tt.taps, tt.values, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Errorf("want INVALID_INPUT, got %v", err)
				}
				return
			}
			if r.Len() != len(tt.taps) {
				t.Errorf("Len() = %d, want %d", r.Len(), len(tt.taps))
			}
		})
	}
}

func TestRegisterValidateRejectsNonBits(t *testing.T) {
	r := Register{Taps: Bits{1, 2}, Values: Bits{0, 0}}
	if err := r.Validate(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Validate() = %v, want INVALID_INPUT", err)
	}
}

func TestRegisterLastTap(t *testing.T) {
	tests := []struct {
		taps   string
		want   int
		wantOK bool
	}{
		{"1001", 3, true},
		{"0011", 1, true},
		{"0001", 0, true},
		{"0000", 0, false},
	}
	for _, tt := range tests {
		r, err := NewRegister(tt.taps, strings.Repeat("0", len(tt.taps)))
		if err != nil {
			t.Fatal(err)
		}
		got, ok := r.LastTap()
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("LastTap(%s) = (%d, %v), want (%d, %v)", tt.taps, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRegisterOutput(t *testing.T) {
	r, _ := NewRegister("0001", "1000")
	if got := r.Output(); got != 1 {
		t.Errorf("Output() = %d, want 1 (leftmost character)", got)
	}
}

func TestRegisterClone(t *testing.T) {
	r, _ := NewRegister("1001", "1111")
	c := r.Clone()
	c.Taps[0] = 0
	if r.Taps[0] != 1 {
		t.Error("Clone shares tap storage")
	}
}
