package beat

import (
	"math"
	"sort"

	"beatmark/internal/dsp"
)

// TrackerConfig tunes beat tracking.
type TrackerConfig struct {
	// WindowSize and HopSize parameterize onset analysis framing.
	WindowSize int
	HopSize    int
	// Tightness penalizes deviation from the expected inter-beat
	// interval; larger values enforce a rigid grid.
	Tightness float64
	// MinTempo and MaxTempo bound the tempo search in BPM.
	MinTempo float64
	MaxTempo float64
	// ReferenceTempo breaks ties when the autocorrelation is ambiguous.
	ReferenceTempo float64
}

// Tracker estimates a beat grid from a percussive signal using
// onset-strength analysis and dynamic-programming beat alignment.
type Tracker struct {
	cfg  TrackerConfig
	stft *dsp.STFT
}

// NewTracker constructs a Tracker. Zero-valued fields fall back to the
// conventional defaults.
func NewTracker(cfg TrackerConfig) *Tracker {
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = 2048
	}
	if cfg.HopSize <= 0 {
		cfg.HopSize = 512
	}
	if cfg.Tightness <= 0 {
		cfg.Tightness = 100
	}
	if cfg.MinTempo <= 0 {
		cfg.MinTempo = 60
	}
	if cfg.MaxTempo <= cfg.MinTempo {
		cfg.MaxTempo = 240
	}
	if cfg.ReferenceTempo < cfg.MinTempo || cfg.ReferenceTempo > cfg.MaxTempo {
		cfg.ReferenceTempo = 120
	}
	return &Tracker{cfg: cfg, stft: dsp.NewSTFT(cfg.WindowSize, cfg.HopSize)}
}

// Track analyzes a percussive signal and returns its beat grid. A signal
// with no detectable onsets yields an empty grid with tempo 0; that is a
// valid result, not an error.
func (t *Tracker) Track(samples []float64, sampleRate int) Grid {
	if len(samples) == 0 || sampleRate <= 0 {
		return Grid{}
	}

	env := onsetEnvelope(t.stft, samples)
	frameRate := float64(sampleRate) / float64(t.stft.HopSize())

	tempo := estimateTempo(env, frameRate, t.cfg.MinTempo, t.cfg.MaxTempo, t.cfg.ReferenceTempo)
	if tempo == 0 {
		return Grid{}
	}

	beatFrames := t.alignBeats(env, frameRate, tempo)
	if len(beatFrames) == 0 {
		return Grid{}
	}

	duration := float64(len(samples)) / float64(sampleRate)
	beats := make([]float64, 0, len(beatFrames))
	for _, frame := range beatFrames {
		when := float64(frame) * float64(t.stft.HopSize()) / float64(sampleRate)
		if when > duration {
			when = duration
		}
		beats = append(beats, when)
	}
	return Grid{Beats: beats, Tempo: tempo}
}

// alignBeats runs the dynamic-programming search for the globally
// best-scoring beat sequence consistent with the estimated tempo,
// trading onset strength at chosen positions against deviation from the
// expected inter-beat interval.
func (t *Tracker) alignBeats(env []float64, frameRate, tempo float64) []int {
	n := len(env)
	if n == 0 {
		return nil
	}

	period := int(math.Round(60 * frameRate / tempo))
	if period < 1 {
		period = 1
	}

	local := localScore(env, period)

	maxLocal := 0.0
	for _, v := range local {
		if v > maxLocal {
			maxLocal = v
		}
	}
	if maxLocal == 0 {
		return nil
	}

	backlink := make([]int, n)
	cumscore := make([]float64, n)
	windowLo := 2 * period
	windowHi := int(math.Round(float64(period) / 2))
	if windowHi < 1 {
		windowHi = 1
	}

	firstBeat := true
	for i := 0; i < n; i++ {
		bestScore := math.Inf(-1)
		bestPrev := -1
		for gap := windowHi; gap <= windowLo; gap++ {
			prev := i - gap
			if prev < 0 {
				break
			}
			offset := math.Log(float64(gap) / float64(period))
			score := cumscore[prev] - t.cfg.Tightness*offset*offset
			if score > bestScore {
				bestScore = score
				bestPrev = prev
			}
		}

		cumscore[i] = local[i]
		backlink[i] = -1
		if bestPrev >= 0 {
			cumscore[i] += bestScore
		}
		// Leading frames with no onset energy never start the chain.
		if firstBeat && local[i] < 0.01*maxLocal {
			continue
		}
		if bestPrev >= 0 {
			backlink[i] = bestPrev
		}
		firstBeat = false
	}

	tail := chooseTail(cumscore)
	if tail < 0 {
		return nil
	}

	var beats []int
	for i := tail; i >= 0; i = backlink[i] {
		beats = append(beats, i)
	}
	sort.Ints(beats)

	return trimBeats(local, beats)
}

// localScore smooths the onset envelope with a tempo-scaled gaussian so
// the search rewards positions near onset peaks without demanding exact
// frame alignment.
func localScore(env []float64, period int) []float64 {
	// Normalize so tightness penalties are comparable across signals.
	var sumsq float64
	for _, v := range env {
		sumsq += v * v
	}
	std := math.Sqrt(sumsq / float64(len(env)))
	if std == 0 {
		return make([]float64, len(env))
	}

	sigma := float64(period) / 32
	weights := make([]float64, 2*period+1)
	for d := -period; d <= period; d++ {
		weights[d+period] = math.Exp(-0.5 * math.Pow(float64(d)/sigma, 2))
	}

	out := make([]float64, len(env))
	for i := range env {
		total := 0.0
		for d := -period; d <= period; d++ {
			j := i + d
			if j < 0 || j >= len(env) {
				continue
			}
			total += env[j] / std * weights[d+period]
		}
		out[i] = total
	}
	return out
}

// chooseTail picks the final beat: the last local maximum of the
// cumulative score that reaches at least half the median peak score.
func chooseTail(cumscore []float64) int {
	var peaks []int
	for i := range cumscore {
		prev := math.Inf(-1)
		if i > 0 {
			prev = cumscore[i-1]
		}
		next := math.Inf(-1)
		if i+1 < len(cumscore) {
			next = cumscore[i+1]
		}
		if cumscore[i] > 0 && cumscore[i] >= prev && cumscore[i] > next {
			peaks = append(peaks, i)
		}
	}
	if len(peaks) == 0 {
		return -1
	}

	values := make([]float64, len(peaks))
	for i, p := range peaks {
		values[i] = cumscore[p]
	}
	sort.Float64s(values)
	threshold := 0.5 * values[len(values)/2]

	tail := -1
	for _, p := range peaks {
		if cumscore[p] >= threshold {
			tail = p
		}
	}
	return tail
}

// trimBeats drops weak leading and trailing beats whose local onset
// support falls below half the RMS over the chosen sequence. Interior
// beats are kept even when weak so the grid stays evenly spaced.
func trimBeats(local []float64, beats []int) []int {
	if len(beats) == 0 {
		return nil
	}

	var sumsq float64
	for _, b := range beats {
		sumsq += local[b] * local[b]
	}
	threshold := 0.5 * math.Sqrt(sumsq/float64(len(beats)))

	lo := 0
	for lo < len(beats) && local[beats[lo]] <= threshold {
		lo++
	}
	hi := len(beats)
	for hi > lo && local[beats[hi-1]] <= threshold {
		hi--
	}
	return beats[lo:hi]
}
