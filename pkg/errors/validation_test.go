package errors

import (
	"strings"
	"testing"
)

func TestValidateBitString(t *testing.T) {
	tests := []struct {
		in      string
		wantErr string
	}{
		{"1", ""},
		{"1001", ""},
		{"0000", ""},
		{strings.Repeat("10", 16), ""},
		{"", "taps cannot be empty"},
		{strings.Repeat("1", 33), "cannot exceed 32 bits (taps has 33)"},
		{"10a1", `invalid character 'a' at position 2`},
		{"1021", `invalid character '2' at position 2`},
		{"10 01", `invalid character ' ' at position 2`},
		{"10\x0001", "invalid character at position 2"},
		{"10０1", `invalid character '０' at position 2`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := ValidateBitString("taps", tt.in, 32)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !Is(err, ErrCodeInvalidInput) {
				t.Fatalf("err = %v, want INVALID_INPUT", err)
			}
			if !strings.Contains(UserMessage(err), tt.wantErr) {
				t.Errorf("message %q does not contain %q", UserMessage(err), tt.wantErr)
			}
		})
	}
}

func TestValidateBitStringNamesField(t *testing.T) {
	err := ValidateBitString("init-values", "12", 32)
	if err == nil || !strings.HasPrefix(UserMessage(err), "init-values ") {
		t.Errorf("message should start with the field name: %v", err)
	}
}

func TestValidateSameLength(t *testing.T) {
	if err := ValidateSameLength(4, 4); err != nil {
		t.Errorf("equal lengths rejected: %v", err)
	}
	err := ValidateSameLength(4, 5)
	if !Is(err, ErrCodeInvalidInput) || !strings.Contains(UserMessage(err), "(4 vs 5)") {
		t.Errorf("ValidateSameLength(4, 5) = %v", err)
	}
}

func TestValidateChoice(t *testing.T) {
	allowed := []string{"native", "latex"}
	for _, ok := range allowed {
		if err := ValidateChoice(ErrCodeInvalidEngine, "engine", ok, allowed...); err != nil {
			t.Errorf("%q rejected: %v", ok, err)
		}
	}
	for _, bad := range []string{"xelatex", "Native", ""} {
		err := ValidateChoice(ErrCodeInvalidEngine, "engine", bad, allowed...)
		if !Is(err, ErrCodeInvalidEngine) {
			t.Errorf("%q: err = %v, want INVALID_ENGINE", bad, err)
			continue
		}
		if !strings.Contains(UserMessage(err), "'native', 'latex'") {
			t.Errorf("%q: message %q should list the choices", bad, UserMessage(err))
		}
	}
}
