// Package ease provides timing curves for presentation animations.
package ease

import "math"

// Func maps linear progress in [0, 1] to eased progress.
type Func func(t float64) float64

// Linear is the identity curve.
func Linear(t float64) float64 { return clamp01(t) }

// InOut is a sinusoidal ease-in-out.
func InOut(t float64) float64 {
	t = clamp01(t)
	return 0.5 - 0.5*math.Cos(math.Pi*t)
}

// CubicBezier returns the CSS-style cubic-bezier(x1, y1, x2, y2) curve.
// x1 and x2 are clamped to [0, 1] so the curve stays a function of t.
func CubicBezier(x1, y1, x2, y2 float64) Func {
	x1 = clamp01(x1)
	x2 = clamp01(x2)

	// Polynomial coefficients for B(s) = ((a*s + b)*s + c)*s
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(s float64) float64 { return ((ax*s+bx)*s + cx) * s }
	sampleY := func(s float64) float64 { return ((ay*s+by)*s + cy) * s }
	slopeX := func(s float64) float64 { return (3*ax*s+2*bx)*s + cx }

	return func(t float64) float64 {
		t = clamp01(t)
		if t == 0 || t == 1 {
			return t
		}

		// Newton-Raphson, falling back to bisection when the slope flattens.
		s := t
		for i := 0; i < 8; i++ {
			dx := sampleX(s) - t
			if math.Abs(dx) < 1e-7 {
				return sampleY(s)
			}
			d := slopeX(s)
			if math.Abs(d) < 1e-6 {
				break
			}
			s -= dx / d
		}

		lo, hi := 0.0, 1.0
		s = t
		for i := 0; i < 40; i++ {
			x := sampleX(s)
			if math.Abs(x-t) < 1e-7 {
				break
			}
			if x < t {
				lo = s
			} else {
				hi = s
			}
			s = (lo + hi) / 2
		}
		return sampleY(s)
	}
}

// Out is the CSS "ease-out" curve.
var Out = CubicBezier(0, 0, 0.58, 1)

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
