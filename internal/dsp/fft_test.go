package dsp

import (
	"math"
	"testing"
)

func TestFFTImpulseIsFlat(t *testing.T) {
	n := 64
	x := make([]complex128, n)
	x[0] = 1
	FFT(x)
	for k, v := range x {
		mag := math.Hypot(real(v), imag(v))
		if math.Abs(mag-1) > 1e-9 {
			t.Fatalf("bin %d: expected unit magnitude, got %v", k, mag)
		}
	}
}

func TestFFTSinePeaksAtBin(t *testing.T) {
	n := 256
	bin := 8
	x := make([]complex128, n)
	for i := range x {
		x[i] = complex(math.Sin(2*math.Pi*float64(bin)*float64(i)/float64(n)), 0)
	}
	FFT(x)

	mags := make([]float64, n)
	for k, v := range x {
		mags[k] = math.Hypot(real(v), imag(v))
	}
	want := float64(n) / 2
	if math.Abs(mags[bin]-want) > 1e-6 {
		t.Fatalf("bin %d magnitude: got %v want %v", bin, mags[bin], want)
	}
	if math.Abs(mags[n-bin]-want) > 1e-6 {
		t.Fatalf("mirror bin magnitude: got %v want %v", mags[n-bin], want)
	}
	for k, mag := range mags {
		if k == bin || k == n-bin {
			continue
		}
		if mag > 1e-6 {
			t.Fatalf("bin %d should be empty, got %v", k, mag)
		}
	}
}

func TestIFFTInvertsFFT(t *testing.T) {
	n := 128
	x := make([]complex128, n)
	for i := range x {
		x[i] = complex(math.Sin(0.3*float64(i))+0.5*math.Cos(1.7*float64(i)), 0)
	}
	original := make([]complex128, n)
	copy(original, x)

	FFT(x)
	IFFT(x)

	for i := range x {
		if math.Abs(real(x[i])-real(original[i])) > 1e-9 {
			t.Fatalf("sample %d: got %v want %v", i, real(x[i]), real(original[i]))
		}
		if math.Abs(imag(x[i])) > 1e-9 {
			t.Fatalf("sample %d: unexpected imaginary part %v", i, imag(x[i]))
		}
	}
}
