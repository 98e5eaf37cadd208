// Package export orchestrates a single analysis run: decode the media,
// isolate the percussive signal, track beats, and write the marker
// document atomically. Each stage failure is tagged with the sentinel
// that names its cause so callers can present actionable messages.
package export
