package common

// Frame step used by the fixed-rate update loop; velocities are in pixels per frame.
const StepDT = 1.0

// Lerp moves t of the way from a to b.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
