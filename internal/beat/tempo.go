package beat

import "math"

// estimateTempo selects the tempo whose beat period best matches the
// onset envelope's autocorrelation, within [minTempo, maxTempo] BPM.
//
// Candidate correlations are weighted by a log-normal prior centered on
// referenceTempo, so when the autocorrelation peak is broad or multi-modal
// (octave ambiguity) the estimate settles near the reference. A silent
// envelope yields 0; an envelope with no periodic structure in range
// yields the reference tempo itself.
func estimateTempo(env []float64, frameRate, minTempo, maxTempo, referenceTempo float64) float64 {
	maxVal := 0.0
	for _, v := range env {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		return 0
	}

	lagMin := int(math.Ceil(60 * frameRate / maxTempo))
	if lagMin < 1 {
		lagMin = 1
	}
	lagMax := int(math.Floor(60 * frameRate / minTempo))
	if lagMax >= len(env) {
		lagMax = len(env) - 1
	}
	if lagMax < lagMin {
		return referenceTempo
	}

	// Mean-removed autocorrelation keeps a DC-heavy envelope from drowning
	// the periodic structure.
	mean := 0.0
	for _, v := range env {
		mean += v
	}
	mean /= float64(len(env))
	centered := make([]float64, len(env))
	for i, v := range env {
		centered[i] = v - mean
	}

	bestScore := 0.0
	bestTempo := referenceTempo
	for lag := lagMin; lag <= lagMax; lag++ {
		ac := 0.0
		for i := 0; i+lag < len(centered); i++ {
			ac += centered[i] * centered[i+lag]
		}
		if ac <= 0 {
			continue
		}
		bpm := 60 * frameRate / float64(lag)
		octaves := math.Log2(bpm / referenceTempo)
		score := ac * math.Exp(-0.5*octaves*octaves)
		if score > bestScore {
			bestScore = score
			bestTempo = bpm
		}
	}
	return bestTempo
}
