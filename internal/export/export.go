package export

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"beatmark/internal/beat"
	"beatmark/internal/config"
	"beatmark/internal/dsp"
	"beatmark/internal/fcpxml"
	"beatmark/internal/fileutil"
	"beatmark/internal/logging"
	"beatmark/internal/media/ffmpeg"
	"beatmark/internal/services"
)

// SampleSource decodes media into an analysis buffer. *ffmpeg.CLI is the
// production implementation.
type SampleSource interface {
	Decode(ctx context.Context, path string) (*ffmpeg.Buffer, error)
}

// Request names the media to analyze and where to write the document.
type Request struct {
	// AudioPath is the media file to analyze.
	AudioPath string
	// OutputPath overrides the derived destination when non-empty.
	OutputPath string
	// FrameRate overrides the configured project frame rate when positive.
	FrameRate int
}

// Result summarizes a completed analysis.
type Result struct {
	SourcePath      string
	OutputPath      string
	BeatCount       int
	Tempo           float64
	SampleRate      int
	Channels        int
	DurationSeconds float64
	FrameRate       int64
}

// Pipeline runs the full analysis chain: decode, percussive separation,
// beat tracking, document serialization.
type Pipeline struct {
	cfg    *config.Config
	source SampleSource
	logger *slog.Logger
}

// New constructs a Pipeline. A nil logger disables logging.
func New(cfg *config.Config, source SampleSource, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		cfg:    cfg,
		source: source,
		logger: logging.WithComponent(logger, "export"),
	}
}

// Run executes one analysis. No output file is created unless the whole
// chain succeeds: an empty beat grid aborts before anything touches disk.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	audioPath := strings.TrimSpace(req.AudioPath)
	if audioPath == "" {
		return nil, services.Wrap(services.ErrValidation, "export", "run", "audio path is required", nil)
	}
	if req.FrameRate < 0 {
		return nil, services.Wrap(services.ErrValidation, "export", "run", "frame rate must be positive", nil)
	}
	audioPath, err := filepath.Abs(audioPath)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "export", "run", "resolve audio path", err)
	}
	if _, err := os.Stat(audioPath); err != nil {
		return nil, services.Wrap(services.ErrNotFound, "export", "run", audioPath, err)
	}

	p.logger.Info("decoding audio", "path", audioPath)
	buffer, err := p.source.Decode(ctx, audioPath)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "export", "decode", audioPath, err)
	}
	duration := buffer.Duration()
	p.logger.Debug("audio decoded",
		"samples", len(buffer.Samples),
		"sample_rate", buffer.SampleRate,
		"channels", buffer.Channels,
		"duration_seconds", duration)

	separator := dsp.NewSeparator(dsp.SeparatorConfig{
		WindowSize: p.cfg.Analysis.WindowSize,
		HopSize:    p.cfg.Analysis.HopSize,
		Margin:     p.cfg.Analysis.Margin,
		KernelSize: p.cfg.Analysis.KernelSize,
	})
	percussive := separator.Percussive(buffer.Samples)
	p.logger.Debug("percussive separation complete", "samples", len(percussive))

	tracker := beat.NewTracker(beat.TrackerConfig{
		WindowSize:     p.cfg.Analysis.WindowSize,
		HopSize:        p.cfg.Analysis.HopSize,
		Tightness:      p.cfg.Analysis.Tightness,
		MinTempo:       p.cfg.Analysis.MinTempo,
		MaxTempo:       p.cfg.Analysis.MaxTempo,
		ReferenceTempo: p.cfg.Analysis.ReferenceTempo,
	})
	grid := tracker.Track(percussive, buffer.SampleRate)
	if grid.Empty() {
		return nil, services.Wrap(services.ErrEmptyBeatGrid, "export", "track", audioPath, nil)
	}
	p.logger.Info("beat grid extracted",
		"beats", len(grid.Beats),
		"tempo_bpm", grid.Tempo)

	outputPath := strings.TrimSpace(req.OutputPath)
	if outputPath == "" {
		outputPath = p.derivedOutputPath(audioPath)
	}

	frameRate := int64(p.cfg.Project.FrameRate)
	if req.FrameRate > 0 {
		frameRate = int64(req.FrameRate)
	}
	channels := p.cfg.Project.AudioChannels
	if channels == 0 {
		channels = buffer.Channels
	}
	doc, err := fcpxml.Build(grid,
		fcpxml.Source{
			Path:            audioPath,
			DurationSeconds: duration,
			SampleRate:      int64(buffer.SampleRate),
		},
		fcpxml.Settings{
			FrameRate:     frameRate,
			Width:         p.cfg.Project.Width,
			Height:        p.cfg.Project.Height,
			AudioChannels: channels,
			EventName:     p.cfg.Project.EventName,
			AudioRole:     p.cfg.Project.AudioRole,
		})
	if err != nil {
		return nil, services.Wrap(services.ErrSerialization, "export", "build document", audioPath, err)
	}

	var serialized bytes.Buffer
	if err := doc.Serialize(&serialized); err != nil {
		return nil, services.Wrap(services.ErrSerialization, "export", "serialize document", outputPath, err)
	}
	if err := fileutil.WriteFileAtomic(outputPath, serialized.Bytes(), 0o644); err != nil {
		return nil, services.Wrap(services.ErrSerialization, "export", "write document", outputPath, err)
	}
	p.logger.Info("document written", "output", outputPath, "markers", len(grid.Beats))

	return &Result{
		SourcePath:      audioPath,
		OutputPath:      outputPath,
		BeatCount:       len(grid.Beats),
		Tempo:           grid.Tempo,
		SampleRate:      buffer.SampleRate,
		Channels:        buffer.Channels,
		DurationSeconds: duration,
		FrameRate:       frameRate,
	}, nil
}

// derivedOutputPath places <stem>_beatmap.fcpxml next to the input, or in
// the configured output directory when one is set.
func (p *Pipeline) derivedOutputPath(audioPath string) string {
	base := filepath.Base(audioPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	name := stem + "_beatmap.fcpxml"
	if dir := strings.TrimSpace(p.cfg.Paths.OutputDir); dir != "" {
		return filepath.Join(dir, name)
	}
	return filepath.Join(filepath.Dir(audioPath), name)
}
