package systems

// clampInt clamps x to [min, max].
func clampInt(x, min, max int) int {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// absf returns |x|.
func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
