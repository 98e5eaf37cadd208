package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound marks missing inputs: the audio file does not exist or
	// the output directory cannot be written. User-fixable, never retried.
	ErrNotFound = errors.New("input not found")
	// ErrExternalTool marks decode failures reported by the external codec
	// tools (ffprobe/ffmpeg). The underlying cause is always attached.
	ErrExternalTool = errors.New("external tool error")
	// ErrEmptyBeatGrid marks an analysis that found no beats. Structurally
	// valid, but the export aborts instead of writing a markerless document.
	ErrEmptyBeatGrid = errors.New("no beats detected")
	// ErrSerialization marks a failure to write the project document.
	ErrSerialization = errors.New("serialization error")
	// ErrValidation marks malformed requests or configuration.
	ErrValidation = errors.New("validation error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// UserActionable reports whether the failure is something the caller can fix
// directly (missing file, bad flag, silent input) rather than a tool or I/O
// fault.
func UserActionable(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrEmptyBeatGrid)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
