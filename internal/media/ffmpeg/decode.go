package ffmpeg

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// Option configures the CLI client.
type Option func(*CLI)

// WithFFmpegBinary overrides the default ffmpeg binary name.
func WithFFmpegBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.ffmpeg = binary
		}
	}
}

// WithFFprobeBinary overrides the default ffprobe binary name.
func WithFFprobeBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.ffprobe = binary
		}
	}
}

// CLI decodes media through the ffmpeg and ffprobe command-line tools.
type CLI struct {
	ffmpeg  string
	ffprobe string
}

// NewCLI constructs a client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{ffmpeg: "ffmpeg", ffprobe: "ffprobe"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Decode probes path and decodes its audio to a mono float buffer at the
// source's native sample rate. ffmpeg writes raw little-endian float32
// PCM to stdout; no intermediate file is produced.
func (c *CLI) Decode(ctx context.Context, path string) (*Buffer, error) {
	info, err := c.Probe(ctx, path)
	if err != nil {
		return nil, err
	}

	args := []string{
		"-v", "error", "-hide_banner", "-nostdin",
		"-i", path,
		"-map", "0:a:0",
		"-ac", "1",
		"-f", "f32le",
		"-c:a", "pcm_f32le",
		"pipe:1",
	}
	cmd := commandContext(ctx, c.ffmpeg, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg decode: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	raw := stdout.Bytes()
	if len(raw)%4 != 0 {
		raw = raw[:len(raw)-len(raw)%4]
	}
	if len(raw) == 0 {
		return nil, errors.New("ffmpeg decode: empty sample stream")
	}

	samples := make([]float64, len(raw)/4)
	for i := range samples {
		bits := binary.LittleEndian.Uint32(raw[i*4:])
		samples[i] = float64(math.Float32frombits(bits))
	}

	return &Buffer{
		Samples:    samples,
		SampleRate: info.SampleRate,
		Channels:   info.Channels,
	}, nil
}
