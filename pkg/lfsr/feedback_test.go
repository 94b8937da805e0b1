package lfsr

import (
	"math/rand"
	"testing"
)

func TestFeedback(t *testing.T) {
	tests := []struct {
		name   string
		taps   string
		values string
		want   uint8
	}{
		{"defaults cancel", "1001", "1111", 0},
		{"no taps", "0000", "1111", 0},
		{"single tap set", "0001", "0001", 1},
		{"single tap clear", "0001", "1110", 0},
		{"three ones", "1101", "1111", 1},
		{"untapped ignored", "0110", "1001", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRegister(tt.taps, tt.values)
			if err != nil {
				t.Fatal(err)
			}
			if got := r.Feedback(); got != tt.want {
				t.Errorf("Feedback(%s, %s) = %d, want %d", tt.taps, tt.values, got, tt.want)
			}
		})
	}
}

func TestFeedbackIsParityOfTappedOnes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for n := 0; n < 200; n++ {
		l := 1 + rng.Intn(MaxLength)
		taps, values := make(Bits, l), make(Bits, l)
		ones := 0
		for i := 0; i < l; i++ {
			taps[i] = uint8(rng.Intn(2))
			values[i] = uint8(rng.Intn(2))
			if taps[i] == 1 && values[i] == 1 {
				ones++
			}
		}
		if got, want := Feedback(taps, values), uint8(ones%2); got != want {
			t.Fatalf("Feedback(%s, %s) = %d, want %d", taps, values, got, want)
		}
	}
}

func TestFeedbackOrderIndependent(t *testing.T) {
	taps := Bits{1, 1, 0, 1, 1, 0, 1}
	values := Bits{1, 0, 1, 1, 0, 1, 1}
	want := Feedback(taps, values)

	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 50; n++ {
		perm := rng.Perm(len(taps))
		pt, pv := make(Bits, len(taps)), make(Bits, len(taps))
		for i, j := range perm {
			pt[i], pv[i] = taps[j], values[j]
		}
		if got := Feedback(pt, pv); got != want {
			t.Fatalf("permutation %v changed feedback: %d != %d", perm, got, want)
		}
	}
}

func TestFeedbackZeroTaps(t *testing.T) {
	for l := 1; l <= MaxLength; l++ {
		if got := Feedback(make(Bits, l), Ones(l)); got != 0 {
			t.Fatalf("L=%d: Feedback with no taps = %d", l, got)
		}
	}
}
