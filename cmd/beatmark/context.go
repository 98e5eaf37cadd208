package main

import (
	"log/slog"
	"strings"
	"sync"

	"beatmark/internal/config"
	"beatmark/internal/export"
	"beatmark/internal/logging"
	"beatmark/internal/media/ffmpeg"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the process logger from config. Failures fall back
// to a no-op logger so command output is never blocked on log setup.
func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) newPipeline() (*export.Pipeline, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	source := ffmpeg.NewCLI(
		ffmpeg.WithFFmpegBinary(cfg.FFmpegBinary()),
		ffmpeg.WithFFprobeBinary(cfg.FFprobeBinary()),
	)
	return export.New(cfg, source, c.ensureLogger()), nil
}
