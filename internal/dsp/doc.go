// Package dsp implements the signal-processing primitives behind beat
// analysis: a radix-2 FFT, a centered short-time transform with exact
// overlap-add inversion, and median-filter based harmonic-percussive
// source separation.
//
// Separation follows the standard two-pass median scheme: filtering each
// frequency bin across time estimates the harmonic (sustained) component,
// filtering each frame across frequency estimates the percussive
// (broadband transient) component, and a soft mask built from the two
// keeps only percussive energy before inverting with the original phase.
package dsp
