package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
	StateDir  string `toml:"state_dir"`
}

// Project describes the exported timeline: frame rate and the presentation
// properties the document declares.
type Project struct {
	FrameRate     int    `toml:"frame_rate"`
	Width         int    `toml:"width"`
	Height        int    `toml:"height"`
	AudioChannels int    `toml:"audio_channels"`
	EventName     string `toml:"event_name"`
	AudioRole     string `toml:"audio_role"`
}

// Analysis contains the signal-processing tuning knobs. The defaults are
// hand-tuned; expose them rather than bake them in so they can be
// calibrated against known material.
type Analysis struct {
	// WindowSize is the short-time transform length in samples (power of two).
	WindowSize int `toml:"window_size"`
	// HopSize is the analysis hop in samples.
	HopSize int `toml:"hop_size"`
	// Margin is the harmonic/percussive separation margin. Higher values
	// assign more ambiguous energy to the harmonic side, yielding a cleaner
	// but sparser percussive signal.
	Margin float64 `toml:"margin"`
	// KernelSize is the median filter length used for both the time-axis
	// (harmonic) and frequency-axis (percussive) passes.
	KernelSize int `toml:"kernel_size"`
	// Tightness controls how strongly the beat tracker enforces even
	// inter-beat spacing versus allowing tempo drift.
	Tightness float64 `toml:"tightness"`
	// MinTempo and MaxTempo bound the tempo search in BPM.
	MinTempo float64 `toml:"min_tempo"`
	MaxTempo float64 `toml:"max_tempo"`
	// ReferenceTempo biases tempo selection when the autocorrelation peak
	// is broad or multi-modal.
	ReferenceTempo float64 `toml:"reference_tempo"`
}

// Batch contains settings for directory batch runs.
type Batch struct {
	Jobs       int      `toml:"jobs"`
	Extensions []string `toml:"extensions"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for beatmark.
//
// Sections:
//   - Paths: output, log, and state directories
//   - Project: frame rate and declared presentation properties
//   - Analysis: separation and beat-tracking tuning
//   - Batch: worker count and recognized file extensions
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Project  Project  `toml:"project"`
	Analysis Analysis `toml:"analysis"`
	Batch    Batch    `toml:"batch"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/beatmark/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. When no file exists
// the defaults are returned and exists is false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("beatmark.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the pipeline writes to.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.StateDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if strings.TrimSpace(c.Paths.OutputDir) != "" {
		if err := os.MkdirAll(c.Paths.OutputDir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", c.Paths.OutputDir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the executable used to decode audio samples.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the executable used to inspect media metadata.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
