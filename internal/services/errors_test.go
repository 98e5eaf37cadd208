package services_test

import (
	"errors"
	"fmt"
	"testing"

	"beatmark/internal/services"
)

func TestWrapTagsMarkerAndCause(t *testing.T) {
	cause := fmt.Errorf("exit status 1")
	err := services.Wrap(services.ErrExternalTool, "decode", "run ffmpeg", "decoder exited", cause)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool marker, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause preserved, got %v", err)
	}
	want := "external tool error: decode: run ffmpeg: decoder exited: exit status 1"
	if err.Error() != want {
		t.Fatalf("unexpected message:\n got %q\nwant %q", err.Error(), want)
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := services.Wrap(services.ErrEmptyBeatGrid, "export", "", "beat tracking found no beats", nil)
	if !errors.Is(err, services.ErrEmptyBeatGrid) {
		t.Fatalf("expected ErrEmptyBeatGrid marker, got %v", err)
	}
}

func TestWrapNilMarkerDefaultsToValidation(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation fallback, got %v", err)
	}
}

func TestUserActionable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{services.Wrap(services.ErrNotFound, "export", "stat input", "missing", nil), true},
		{services.Wrap(services.ErrEmptyBeatGrid, "export", "", "silent input", nil), true},
		{services.Wrap(services.ErrValidation, "export", "", "bad frame rate", nil), true},
		{services.Wrap(services.ErrExternalTool, "decode", "", "ffmpeg failed", nil), false},
		{services.Wrap(services.ErrSerialization, "write", "", "disk full", nil), false},
	}
	for _, tc := range cases {
		if got := services.UserActionable(tc.err); got != tc.want {
			t.Fatalf("UserActionable(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
