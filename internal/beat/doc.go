// Package beat estimates a beat grid (tempo plus beat onset times) from a
// percussive signal.
//
// The tracker follows the classic two-step approach: an onset-strength
// envelope summarizes transient energy per analysis frame, autocorrelation
// of that envelope picks the global tempo, and a dynamic-programming
// search selects the beat sequence that best balances onset strength
// against even inter-beat spacing.
package beat
