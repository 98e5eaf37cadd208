package dsp

import "math"

// Separator performs harmonic-percussive source separation and extracts
// the percussive-emphasized component of a signal.
type Separator struct {
	stft   *STFT
	margin float64
	kernel int
	power  float64
}

// SeparatorConfig tunes the separation.
type SeparatorConfig struct {
	// WindowSize and HopSize parameterize the short-time transform.
	WindowSize int
	HopSize    int
	// Margin controls how aggressively energy is assigned to the
	// percussive mask; higher values bias ambiguous energy toward the
	// harmonic side.
	Margin float64
	// KernelSize is the median filter length for both axes (odd).
	KernelSize int
}

// NewSeparator constructs a Separator. Zero-valued fields fall back to the
// conventional defaults (2048-sample window, 512 hop, margin 3, kernel 31).
func NewSeparator(cfg SeparatorConfig) *Separator {
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = 2048
	}
	if cfg.HopSize <= 0 {
		cfg.HopSize = 512
	}
	if cfg.Margin < 1 {
		cfg.Margin = 3.0
	}
	if cfg.KernelSize < 3 {
		cfg.KernelSize = 31
	}
	return &Separator{
		stft:   NewSTFT(cfg.WindowSize, cfg.HopSize),
		margin: cfg.Margin,
		kernel: cfg.KernelSize,
		power:  2.0,
	}
}

// STFT exposes the separator's transform so downstream analysis can share
// its framing parameters.
func (s *Separator) STFT() *STFT { return s.stft }

// Percussive returns the percussive-emphasized component of samples, the
// same length as the input. Inputs shorter than one analysis window are
// returned unmodified (copied): there is nothing to separate.
func (s *Separator) Percussive(samples []float64) []float64 {
	if len(samples) < s.stft.WindowSize() {
		out := make([]float64, len(samples))
		copy(out, samples)
		return out
	}

	frames := s.stft.Analyze(samples)
	mag := Magnitudes(frames)

	harmonic := medianAcrossTime(mag, s.kernel)
	percussive := medianAcrossFrequency(mag, s.kernel)

	// Soft mask: perc^p / (perc^p + (margin*harm)^p). Where neither
	// component has energy the mask is zero, which keeps silence silent.
	const tiny = 1e-30
	for t := range frames {
		for k := range frames[t] {
			num := math.Pow(percussive[t][k], s.power)
			den := num + math.Pow(s.margin*harmonic[t][k], s.power)
			if den < tiny {
				frames[t][k] = 0
				continue
			}
			mask := num / den
			frames[t][k] = frames[t][k] * complex(mask, 0)
		}
	}

	return s.stft.Inverse(frames, len(samples))
}
