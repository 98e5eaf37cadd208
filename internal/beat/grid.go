package beat

// Grid is the primary output of beat analysis: an ordered sequence of beat
// onset times plus a single global tempo estimate.
//
// An empty grid with tempo 0 is a valid result, produced when the signal
// carries no detectable onsets. Callers decide how to surface it; the
// tracker never treats it as an error.
type Grid struct {
	// Beats holds onset times in seconds, ascending, all within
	// [0, signal duration].
	Beats []float64
	// Tempo is the global estimate in beats per minute, 0 when no beats
	// were found.
	Tempo float64
}

// Empty reports whether the grid contains no beats.
func (g Grid) Empty() bool {
	return len(g.Beats) == 0
}
