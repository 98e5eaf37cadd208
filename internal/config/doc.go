// Package config loads, normalizes, and validates beatmark configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI and pipeline need: project frame rate and presentation
// properties, the hand-tuned analysis constants (separation margin, beat
// tightness, tempo search range), batch worker counts, and logging output.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
