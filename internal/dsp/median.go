package dsp

import "sort"

// medianFilter applies a sliding median of odd length kernel to x.
// Windows shrink near the edges, matching a zero-free treatment of the
// boundary.
func medianFilter(x []float64, kernel int) []float64 {
	out := make([]float64, len(x))
	half := kernel / 2
	scratch := make([]float64, 0, kernel)
	for i := range x {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half + 1
		if hi > len(x) {
			hi = len(x)
		}
		scratch = append(scratch[:0], x[lo:hi]...)
		sort.Float64s(scratch)
		mid := len(scratch) / 2
		if len(scratch)%2 == 1 {
			out[i] = scratch[mid]
		} else {
			out[i] = 0.5 * (scratch[mid-1] + scratch[mid])
		}
	}
	return out
}

// medianAcrossTime filters each frequency bin's trajectory over time,
// emphasizing energy sustained across frames.
func medianAcrossTime(mag [][]float64, kernel int) [][]float64 {
	if len(mag) == 0 {
		return nil
	}
	bins := len(mag[0])
	out := make([][]float64, len(mag))
	for t := range out {
		out[t] = make([]float64, bins)
	}
	column := make([]float64, len(mag))
	for k := 0; k < bins; k++ {
		for t := range mag {
			column[t] = mag[t][k]
		}
		filtered := medianFilter(column, kernel)
		for t := range filtered {
			out[t][k] = filtered[t]
		}
	}
	return out
}

// medianAcrossFrequency filters each frame's spectrum over frequency,
// emphasizing broadband transient energy.
func medianAcrossFrequency(mag [][]float64, kernel int) [][]float64 {
	out := make([][]float64, len(mag))
	for t, row := range mag {
		out[t] = medianFilter(row, kernel)
	}
	return out
}
