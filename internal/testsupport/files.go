package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates path with the given contents, making parent
// directories as needed.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create parent directories for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ImpulseTrain builds a mono signal of the given duration with unit
// impulses at the listed times. It is the standard fixture for beat
// detection tests: every impulse should register as an onset.
func ImpulseTrain(durationSec float64, sampleRate int, times ...float64) []float64 {
	samples := make([]float64, int(durationSec*float64(sampleRate)))
	for _, at := range times {
		index := int(at * float64(sampleRate))
		if index >= 0 && index < len(samples) {
			samples[index] = 1.0
		}
	}
	return samples
}
