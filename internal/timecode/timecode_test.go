package timecode_test

import (
	"errors"
	"math"
	"testing"

	"beatmark/internal/timecode"
)

func TestFromSecondsRoundTripWithinHalfFrame(t *testing.T) {
	rates := []int64{24, 25, 30, 50, 60}
	for _, rate := range rates {
		for s := 0.0; s < 3600.0; s += 7.3217 {
			rt, err := timecode.FromSeconds(s, rate)
			if err != nil {
				t.Fatalf("FromSeconds(%v, %d) returned error: %v", s, rate, err)
			}
			diff := math.Abs(rt.Seconds() - s)
			if diff > 0.5/float64(rate) {
				t.Fatalf("round trip at rate %d drifted %v for %v (got %v)", rate, diff, s, rt)
			}
		}
	}
}

func TestFromSecondsIdempotent(t *testing.T) {
	rates := []int64{24, 25, 30, 50, 60}
	values := []float64{0, 0.0166, 0.5, 1.0 / 3.0, 59.94, 100.005, 3599.999}
	for _, rate := range rates {
		for _, s := range values {
			first, err := timecode.FromSeconds(s, rate)
			if err != nil {
				t.Fatalf("FromSeconds(%v, %d): %v", s, rate, err)
			}
			second, err := timecode.FromSeconds(first.Seconds(), rate)
			if err != nil {
				t.Fatalf("re-encode FromSeconds(%v, %d): %v", first.Seconds(), rate, err)
			}
			if first != second {
				t.Fatalf("re-encoding changed value at rate %d: %v -> %v", rate, first, second)
			}
		}
	}
}

func TestFromSecondsRejectsNegative(t *testing.T) {
	_, err := timecode.FromSeconds(-0.001, 30)
	if !errors.Is(err, timecode.ErrNegativeSeconds) {
		t.Fatalf("expected ErrNegativeSeconds, got %v", err)
	}
}

func TestFromSecondsRejectsInvalidScale(t *testing.T) {
	for _, scale := range []int64{0, -30} {
		if _, err := timecode.FromSeconds(1.0, scale); !errors.Is(err, timecode.ErrInvalidScale) {
			t.Fatalf("scale %d: expected ErrInvalidScale, got %v", scale, err)
		}
	}
}

func TestZeroInputsYieldFrameZero(t *testing.T) {
	rt, err := timecode.FromSeconds(0, 30)
	if err != nil {
		t.Fatalf("FromSeconds(0, 30): %v", err)
	}
	if rt.Frames != 0 {
		t.Fatalf("expected frame 0, got %d", rt.Frames)
	}
	if !rt.IsZero() {
		t.Fatal("expected IsZero")
	}
	if got := rt.String(); got != "0/30s" {
		t.Fatalf("unexpected literal: %q", got)
	}
}

func TestStringLiteralForm(t *testing.T) {
	cases := []struct {
		seconds float64
		scale   int64
		want    string
	}{
		{2.0, 30, "60/30s"},
		{0.5, 30, "15/30s"},
		{10.0, 44100, "441000/44100s"},
		{1.5, 30, "45/30s"},
	}
	for _, tc := range cases {
		rt, err := timecode.FromSeconds(tc.seconds, tc.scale)
		if err != nil {
			t.Fatalf("FromSeconds(%v, %d): %v", tc.seconds, tc.scale, err)
		}
		if got := rt.String(); got != tc.want {
			t.Fatalf("FromSeconds(%v, %d) = %q, want %q", tc.seconds, tc.scale, got, tc.want)
		}
	}
}

func TestRoundingHalfAwayFromZero(t *testing.T) {
	// 1.55 s at 10 fps is 15.5 frames; the half rounds away from zero.
	rt, err := timecode.FromSeconds(1.55, 10)
	if err != nil {
		t.Fatalf("FromSeconds: %v", err)
	}
	if rt.Frames != 16 {
		t.Fatalf("expected half frame to round up, got %d", rt.Frames)
	}
}

func TestOneFrame(t *testing.T) {
	if got := timecode.OneFrame(30).String(); got != "1/30s" {
		t.Fatalf("unexpected one-frame literal: %q", got)
	}
}
