package lfsr

// Feedback returns the XOR of values[i] over every i with taps[i] == 1.
//
// The reduction starts from 0, so an all-zero tap mask yields 0. XOR is
// associative and commutative; the result is independent of the order in
// which tapped positions are visited. Only indices present in both vectors
// are read; equal lengths are the caller's precondition.
func Feedback(taps, values Bits) uint8 {
	var fb uint8
	n := min(len(taps), len(values))
	for i := 0; i < n; i++ {
		if taps[i] == 1 {
			fb ^= values[i] & 1
		}
	}
	return fb
}
