package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateProject(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateProject() error {
	// Integer frame rates keep the N/Ms literal form exact. Fractional
	// NTSC rates are not supported.
	if c.Project.FrameRate <= 0 {
		return fmt.Errorf("project.frame_rate must be a positive integer, got %d", c.Project.FrameRate)
	}
	if c.Project.Width <= 0 || c.Project.Height <= 0 {
		return fmt.Errorf("project.width and project.height must be positive, got %dx%d", c.Project.Width, c.Project.Height)
	}
	// Zero means "advertise whatever channel count the source media has".
	if c.Project.AudioChannels < 0 {
		return fmt.Errorf("project.audio_channels must be >= 0, got %d", c.Project.AudioChannels)
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	a := c.Analysis
	if a.WindowSize <= 0 || a.WindowSize&(a.WindowSize-1) != 0 {
		return fmt.Errorf("analysis.window_size must be a positive power of two, got %d", a.WindowSize)
	}
	if a.HopSize <= 0 || a.HopSize > a.WindowSize {
		return fmt.Errorf("analysis.hop_size must be in 1..window_size, got %d", a.HopSize)
	}
	if a.Margin < 1 {
		return fmt.Errorf("analysis.margin must be >= 1, got %v", a.Margin)
	}
	if a.KernelSize < 3 || a.KernelSize%2 == 0 {
		return fmt.Errorf("analysis.kernel_size must be an odd integer >= 3, got %d", a.KernelSize)
	}
	if a.Tightness <= 0 {
		return fmt.Errorf("analysis.tightness must be positive, got %v", a.Tightness)
	}
	if a.MinTempo <= 0 || a.MaxTempo <= a.MinTempo {
		return fmt.Errorf("analysis tempo range must satisfy 0 < min < max, got %v..%v", a.MinTempo, a.MaxTempo)
	}
	if a.ReferenceTempo < a.MinTempo || a.ReferenceTempo > a.MaxTempo {
		return fmt.Errorf("analysis.reference_tempo %v outside range %v..%v", a.ReferenceTempo, a.MinTempo, a.MaxTempo)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("logging.level must be one of debug, info, warn, error")
	}
	return nil
}
