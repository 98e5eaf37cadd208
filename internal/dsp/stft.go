package dsp

import "math"

// STFT computes framed, windowed short-time transforms and their inverse.
// Frames are centered: the signal is reflection-padded by half a window on
// each side so frame i is centered on sample i*hop, and Inverse recovers
// the original signal length exactly.
type STFT struct {
	windowSize int
	hopSize    int
	window     []float64
}

// NewSTFT constructs a transform with the given window and hop sizes.
// windowSize must be a power of two and hopSize in 1..windowSize.
func NewSTFT(windowSize, hopSize int) *STFT {
	return &STFT{
		windowSize: windowSize,
		hopSize:    hopSize,
		window:     HannWindow(windowSize),
	}
}

// WindowSize returns the analysis window length in samples.
func (s *STFT) WindowSize() int { return s.windowSize }

// HopSize returns the analysis hop in samples.
func (s *STFT) HopSize() int { return s.hopSize }

// Analyze returns the complex spectrogram of samples: one full-length
// spectrum per frame.
func (s *STFT) Analyze(samples []float64) [][]complex128 {
	padded := reflectPad(samples, s.windowSize/2)
	if len(padded) < s.windowSize {
		return nil
	}
	numFrames := 1 + (len(padded)-s.windowSize)/s.hopSize

	frames := make([][]complex128, numFrames)
	for i := 0; i < numFrames; i++ {
		start := i * s.hopSize
		frame := make([]complex128, s.windowSize)
		for n := 0; n < s.windowSize; n++ {
			frame[n] = complex(padded[start+n]*s.window[n], 0)
		}
		FFT(frame)
		frames[i] = frame
	}
	return frames
}

// Inverse reconstructs a time-domain signal of originalLen samples from
// a spectrogram produced by Analyze, using windowed overlap-add with
// squared-window normalization.
func (s *STFT) Inverse(frames [][]complex128, originalLen int) []float64 {
	if len(frames) == 0 {
		return make([]float64, originalLen)
	}

	paddedLen := (len(frames)-1)*s.hopSize + s.windowSize
	signal := make([]float64, paddedLen)
	norm := make([]float64, paddedLen)

	buf := make([]complex128, s.windowSize)
	for i, frame := range frames {
		copy(buf, frame)
		IFFT(buf)
		start := i * s.hopSize
		for n := 0; n < s.windowSize; n++ {
			signal[start+n] += real(buf[n]) * s.window[n]
			norm[start+n] += s.window[n] * s.window[n]
		}
	}

	const tiny = 1e-12
	for i := range signal {
		if norm[i] > tiny {
			signal[i] /= norm[i]
		}
	}

	offset := s.windowSize / 2
	out := make([]float64, originalLen)
	for i := 0; i < originalLen && offset+i < len(signal); i++ {
		out[i] = signal[offset+i]
	}
	return out
}

// HannWindow returns a periodic Hann window of length n.
func HannWindow(n int) []float64 {
	window := make([]float64, n)
	for i := range window {
		window[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return window
}

// Magnitudes returns the per-frame magnitude spectra of a complex
// spectrogram.
func Magnitudes(frames [][]complex128) [][]float64 {
	mags := make([][]float64, len(frames))
	for i, frame := range frames {
		row := make([]float64, len(frame))
		for k, v := range frame {
			row[k] = math.Hypot(real(v), imag(v))
		}
		mags[i] = row
	}
	return mags
}

// reflectPad pads x with pad samples of edge reflection on both sides.
// Signals shorter than the pad fall back to zero padding for the
// out-of-range region.
func reflectPad(x []float64, pad int) []float64 {
	out := make([]float64, len(x)+2*pad)
	copy(out[pad:], x)
	for i := 0; i < pad; i++ {
		src := i + 1
		if src < len(x) {
			out[pad-1-i] = x[src]
		}
		src = len(x) - 2 - i
		if src >= 0 {
			out[pad+len(x)+i] = x[src]
		}
	}
	return out
}
