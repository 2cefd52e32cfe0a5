package mathutil

import "math"

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// NormalizeAngle maps a into (-Pi, Pi]. Inputs are expected to be at most a
// few turns away from the range, so the adjustment loops are bounded to keep
// a NaN or huge value from spinning forever.
func NormalizeAngle(a float64) float64 {
	for i := 0; a > math.Pi && i < 8; i++ {
		a -= 2 * math.Pi
	}
	for i := 0; a <= -math.Pi && i < 8; i++ {
		a += 2 * math.Pi
	}
	if a > math.Pi || a <= -math.Pi {
		a = math.Remainder(a, 2*math.Pi)
		if a <= -math.Pi {
			a += 2 * math.Pi
		}
	}
	return a
}

// Distance returns the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// FracPart returns x - floor(x), always in [0, 1).
func FracPart(x float64) float64 {
	f := x - math.Floor(x)
	if f >= 1 {
		return 0
	}
	return f
}
