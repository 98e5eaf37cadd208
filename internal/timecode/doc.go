// Package timecode converts floating-point second offsets to the exact
// fractional frame counts the project document serializes.
//
// Every timing field in an exported document is a Rational: an integer
// frame count over an integer frame scale. Conversions round half away
// from zero so the textual form round-trips to within half a frame of the
// originating value and re-encoding an already-encoded value is a no-op.
package timecode
