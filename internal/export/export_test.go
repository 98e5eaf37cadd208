package export_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"beatmark/internal/config"
	"beatmark/internal/export"
	"beatmark/internal/media/ffmpeg"
	"beatmark/internal/services"
	"beatmark/internal/testsupport"
)

type stubSource struct {
	buffer *ffmpeg.Buffer
	err    error
	calls  int
}

func (s *stubSource) Decode(ctx context.Context, path string) (*ffmpeg.Buffer, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.buffer, nil
}

func impulseBuffer(durationSec float64, sampleRate int, times ...float64) *ffmpeg.Buffer {
	return &ffmpeg.Buffer{
		Samples:    testsupport.ImpulseTrain(durationSec, sampleRate, times...),
		SampleRate: sampleRate,
		Channels:   2,
	}
}

func writeAudioFixture(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	testsupport.WriteFile(t, path, []byte("audio"))
	return path
}

func testConfig() *config.Config {
	cfg := config.Default()
	return &cfg
}

func TestRunWritesDocument(t *testing.T) {
	audio := writeAudioFixture(t, "track.wav")
	source := &stubSource{buffer: impulseBuffer(2.0, 48000, 0, 0.5, 1.0, 1.5)}
	pipeline := export.New(testConfig(), source, nil)

	result, err := pipeline.Run(context.Background(), export.Request{AudioPath: audio})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantOutput := filepath.Join(filepath.Dir(audio), "track_beatmap.fcpxml")
	if result.OutputPath != wantOutput {
		t.Errorf("output path = %q, want %q", result.OutputPath, wantOutput)
	}
	if result.BeatCount != 4 {
		t.Errorf("beat count = %d, want 4", result.BeatCount)
	}
	if result.Tempo < 110 || result.Tempo > 130 {
		t.Errorf("tempo = %.2f, want ~120", result.Tempo)
	}
	if result.SampleRate != 48000 || result.Channels != 2 {
		t.Errorf("audio properties = %d Hz %d ch, want 48000/2", result.SampleRate, result.Channels)
	}
	if result.FrameRate != 30 {
		t.Errorf("frame rate = %d, want 30", result.FrameRate)
	}

	data, err := os.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, `<fcpxml version="1.10">`) {
		t.Error("output missing fcpxml root element")
	}
	if !strings.Contains(content, `value="Beat 4"`) {
		t.Error("output missing final beat marker")
	}
	if !strings.Contains(content, `duration="60/30s"`) {
		t.Error("output missing frame-accurate clip duration")
	}
}

func TestRunExplicitOutputPath(t *testing.T) {
	audio := writeAudioFixture(t, "track.wav")
	output := filepath.Join(t.TempDir(), "custom.fcpxml")
	source := &stubSource{buffer: impulseBuffer(2.0, 48000, 0, 0.5, 1.0, 1.5)}
	pipeline := export.New(testConfig(), source, nil)

	result, err := pipeline.Run(context.Background(), export.Request{AudioPath: audio, OutputPath: output})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.OutputPath != output {
		t.Errorf("output path = %q, want %q", result.OutputPath, output)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestRunUsesConfiguredOutputDir(t *testing.T) {
	audio := writeAudioFixture(t, "track.wav")
	outputDir := t.TempDir()
	cfg := testConfig()
	cfg.Paths.OutputDir = outputDir
	source := &stubSource{buffer: impulseBuffer(2.0, 48000, 0, 0.5, 1.0, 1.5)}
	pipeline := export.New(cfg, source, nil)

	result, err := pipeline.Run(context.Background(), export.Request{AudioPath: audio})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got, want := result.OutputPath, filepath.Join(outputDir, "track_beatmap.fcpxml"); got != want {
		t.Errorf("output path = %q, want %q", got, want)
	}
}

func TestRunFrameRateOverride(t *testing.T) {
	audio := writeAudioFixture(t, "track.wav")
	source := &stubSource{buffer: impulseBuffer(2.0, 48000, 0, 0.5, 1.0, 1.5)}
	pipeline := export.New(testConfig(), source, nil)

	result, err := pipeline.Run(context.Background(), export.Request{AudioPath: audio, FrameRate: 25})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.FrameRate != 25 {
		t.Errorf("frame rate = %d, want 25", result.FrameRate)
	}

	data, err := os.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), `duration="50/25s"`) {
		t.Error("output missing clip duration at overridden frame rate")
	}
}

func TestRunMissingInput(t *testing.T) {
	source := &stubSource{buffer: impulseBuffer(2.0, 48000, 0.5)}
	pipeline := export.New(testConfig(), source, nil)

	_, err := pipeline.Run(context.Background(), export.Request{
		AudioPath: filepath.Join(t.TempDir(), "missing.wav"),
	})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if source.calls != 0 {
		t.Error("decode attempted for missing input")
	}
}

func TestRunEmptyAudioPath(t *testing.T) {
	pipeline := export.New(testConfig(), &stubSource{}, nil)
	_, err := pipeline.Run(context.Background(), export.Request{})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestRunDecodeFailure(t *testing.T) {
	audio := writeAudioFixture(t, "track.wav")
	source := &stubSource{err: errors.New("codec exploded")}
	pipeline := export.New(testConfig(), source, nil)

	_, err := pipeline.Run(context.Background(), export.Request{AudioPath: audio})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("err = %v, want ErrExternalTool", err)
	}
}

func TestRunSilenceAbortsBeforeWriting(t *testing.T) {
	audio := writeAudioFixture(t, "silence.wav")
	silent := &ffmpeg.Buffer{Samples: make([]float64, 96000), SampleRate: 48000, Channels: 2}
	pipeline := export.New(testConfig(), &stubSource{buffer: silent}, nil)

	_, err := pipeline.Run(context.Background(), export.Request{AudioPath: audio})
	if !errors.Is(err, services.ErrEmptyBeatGrid) {
		t.Fatalf("err = %v, want ErrEmptyBeatGrid", err)
	}

	entries, readErr := os.ReadDir(filepath.Dir(audio))
	if readErr != nil {
		t.Fatalf("read dir: %v", readErr)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".fcpxml") {
			t.Errorf("output %s written despite empty beat grid", entry.Name())
		}
	}
}
