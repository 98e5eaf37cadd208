package timecode

import (
	"errors"
	"fmt"
	"math"
)

// ErrNegativeSeconds indicates a caller supplied a negative offset or
// duration. Timeline positions are non-negative by construction.
var ErrNegativeSeconds = errors.New("timecode: negative seconds")

// ErrInvalidScale indicates a non-positive frame scale.
var ErrInvalidScale = errors.New("timecode: frame scale must be positive")

// Rational is an exact instant or duration expressed as Frames/Scale
// seconds. It is the single representation used for every timing field in
// the exported document; floating-point seconds are converted once, at the
// boundary, and never re-derived.
type Rational struct {
	Frames int64
	Scale  int64
}

// Zero is the canonical zero instant, serialized as "0/1s".
var Zero = Rational{Frames: 0, Scale: 1}

// FromSeconds converts a non-negative second offset to a Rational at the
// given frame scale. Rounding is half-away-from-zero, so repeated
// FromSeconds(Seconds(...)) conversions are idempotent.
func FromSeconds(seconds float64, scale int64) (Rational, error) {
	if scale <= 0 {
		return Rational{}, fmt.Errorf("%w: %d", ErrInvalidScale, scale)
	}
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return Rational{}, fmt.Errorf("timecode: seconds is not finite: %v", seconds)
	}
	if seconds < 0 {
		return Rational{}, fmt.Errorf("%w: %v", ErrNegativeSeconds, seconds)
	}
	frames := int64(math.Floor(seconds*float64(scale) + 0.5))
	return Rational{Frames: frames, Scale: scale}, nil
}

// Seconds evaluates the rational as a floating-point second value.
func (r Rational) Seconds() float64 {
	if r.Scale == 0 {
		return 0
	}
	return float64(r.Frames) / float64(r.Scale)
}

// IsZero reports whether the rational represents instant zero.
func (r Rational) IsZero() bool {
	return r.Frames == 0
}

// String renders the literal "<frames>/<scale>s" wire form. Downstream
// editors parse this text directly, so the format is load-bearing.
func (r Rational) String() string {
	scale := r.Scale
	if scale == 0 {
		scale = 1
	}
	return fmt.Sprintf("%d/%ds", r.Frames, scale)
}

// OneFrame returns the duration of a single frame at the given scale.
func OneFrame(scale int64) Rational {
	if scale <= 0 {
		scale = 1
	}
	return Rational{Frames: 1, Scale: scale}
}
