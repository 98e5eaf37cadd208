package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeProject()
	c.normalizeBatch()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) != "" {
		if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
			return fmt.Errorf("paths.output_dir: %w", err)
		}
	} else {
		c.Paths.OutputDir = ""
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeProject() {
	// An empty event_name is preserved: the exporter then derives the
	// event name from the media filename.
	c.Project.EventName = strings.TrimSpace(c.Project.EventName)
	c.Project.AudioRole = strings.TrimSpace(c.Project.AudioRole)
	if c.Project.AudioRole == "" {
		c.Project.AudioRole = defaultAudioRole
	}
}

func (c *Config) normalizeBatch() {
	if c.Batch.Jobs <= 0 {
		c.Batch.Jobs = defaultBatchJobs
	}
	if len(c.Batch.Extensions) == 0 {
		c.Batch.Extensions = defaultExtensions()
	}
	normalized := make([]string, 0, len(c.Batch.Extensions))
	for _, ext := range c.Batch.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	c.Batch.Extensions = normalized
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// RecognizesExtension reports whether the batch scanner should pick up a
// file with the given path.
func (c *Config) RecognizesExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range c.Batch.Extensions {
		if ext == candidate {
			return true
		}
	}
	return false
}
