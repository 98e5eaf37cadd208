package ffmpeg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Info summarizes the audio properties of a media file as reported by
// ffprobe.
type Info struct {
	Path            string
	DurationSeconds float64
	SampleRate      int
	Channels        int
	CodecName       string
	FormatName      string
}

type probeResult struct {
	Streams []probeStream `json:"streams"`
	Format  probeFormat   `json:"format"`
}

type probeStream struct {
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	SampleRate string `json:"sample_rate"`
	Channels   int    `json:"channels"`
	Duration   string `json:"duration"`
}

type probeFormat struct {
	Duration   string `json:"duration"`
	FormatName string `json:"format_name"`
}

// Probe executes ffprobe against the provided path and extracts the first
// audio stream's properties.
func (c *CLI) Probe(ctx context.Context, path string) (Info, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Info{}, errors.New("ffprobe: empty path")
	}

	cmd := commandContext(ctx, c.ffprobe, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Info{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(output)))
	}

	var result probeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return Info{}, fmt.Errorf("ffprobe parse: %w", err)
	}

	info := Info{
		Path:            path,
		DurationSeconds: parseFloat(result.Format.Duration),
		FormatName:      result.Format.FormatName,
	}
	for _, stream := range result.Streams {
		if !strings.EqualFold(stream.CodecType, "audio") {
			continue
		}
		info.CodecName = stream.CodecName
		info.Channels = stream.Channels
		if rate, err := strconv.Atoi(strings.TrimSpace(stream.SampleRate)); err == nil {
			info.SampleRate = rate
		}
		if info.DurationSeconds == 0 {
			info.DurationSeconds = parseFloat(stream.Duration)
		}
		break
	}

	if info.SampleRate <= 0 {
		return Info{}, fmt.Errorf("ffprobe: no audio stream in %s", path)
	}
	return info, nil
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(parsed) || parsed < 0 {
		return 0
	}
	return parsed
}
