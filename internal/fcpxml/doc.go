// Package fcpxml builds Final Cut Pro XML documents from a beat grid.
//
// A document references the analyzed media in place via a file URI and
// annotates it with one marker per beat. All times are exact rational
// timecodes: the asset duration is counted in audio samples, everything
// on the timeline in project frames.
package fcpxml
