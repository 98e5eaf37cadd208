package beat

import (
	"math"

	"beatmark/internal/dsp"
)

// onsetEnvelope computes a spectral-flux onset strength envelope: one
// value per analysis frame measuring how much new transient energy
// appears in that frame.
//
// Magnitudes are log-compressed before differencing so quiet onsets are
// not drowned out by loud sustained content, and only positive changes
// (rising energy) contribute. The frame before the signal is treated as
// silence, so an onset at time zero registers in frame zero.
func onsetEnvelope(stft *dsp.STFT, samples []float64) []float64 {
	frames := stft.Analyze(samples)
	if len(frames) == 0 {
		return nil
	}
	mag := dsp.Magnitudes(frames)

	// Only the non-redundant half of the spectrum carries information for
	// a real signal.
	bins := stft.WindowSize()/2 + 1

	logMag := make([][]float64, len(mag))
	for t, row := range mag {
		compressed := make([]float64, bins)
		for k := 0; k < bins; k++ {
			compressed[k] = math.Log1p(row[k])
		}
		logMag[t] = compressed
	}

	env := make([]float64, len(logMag))
	for t := range logMag {
		total := 0.0
		for k := 0; k < bins; k++ {
			prev := 0.0
			if t > 0 {
				prev = logMag[t-1][k]
			}
			if rise := logMag[t][k] - prev; rise > 0 {
				total += rise
			}
		}
		env[t] = total / float64(bins)
	}
	return env
}
