package effects

import (
	"fmt"

	"gonum.org/v1/gonum/interp"

	"github.com/pthm-cable/dusk/ease"
)

// track is a keyframed value over normalized time [0, 1] with evenly spaced
// keys. Each segment between two keys is eased independently.
type track struct {
	pl    interp.PiecewiseLinear
	keys  int
	curve ease.Func
}

// newTrack fits evenly spaced keyframes. At least two values are required.
func newTrack(values []float64, curve ease.Func) (track, error) {
	if len(values) < 2 {
		return track{}, fmt.Errorf("keyframe track needs at least 2 values, got %d", len(values))
	}
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i) / float64(len(values)-1)
	}
	ys := append([]float64(nil), values...)

	var tr track
	if err := tr.pl.Fit(xs, ys); err != nil {
		return track{}, fmt.Errorf("fitting keyframes: %w", err)
	}
	tr.keys = len(values)
	tr.curve = curve
	return tr, nil
}

// mustTrack is newTrack for keys validated by config loading.
func mustTrack(values []float64, curve ease.Func) track {
	tr, err := newTrack(values, curve)
	if err != nil {
		panic(err)
	}
	return tr
}

// at returns the value at progress p in [0, 1].
func (t *track) at(p float64) float64 {
	if p <= 0 {
		return t.pl.Predict(0)
	}
	if p >= 1 {
		return t.pl.Predict(1)
	}
	segments := float64(t.keys - 1)
	pos := p * segments
	k := float64(int(pos))
	local := pos - k
	if t.curve != nil {
		local = t.curve(local)
	}
	return t.pl.Predict((k + local) / segments)
}
