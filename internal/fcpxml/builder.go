package fcpxml

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"beatmark/internal/beat"
	"beatmark/internal/timecode"
)

const (
	formatID = "r1"
	assetID  = "r2"
)

// Source describes the analyzed media the document will reference.
type Source struct {
	// Path to the media file. Relative paths are resolved against the
	// working directory before being embedded as a file URI.
	Path string

	// DurationSeconds is the decoded audio duration.
	DurationSeconds float64

	// SampleRate is the native audio sample rate in Hz.
	SampleRate int64
}

// Settings controls the project-level attributes of the document.
type Settings struct {
	FrameRate     int64
	Width         int
	Height        int
	AudioChannels int

	// EventName labels the containing event. When empty the name is
	// derived from the media filename.
	EventName string

	AudioRole string
}

// Build assembles a validated document from a beat grid and its source
// media. The asset duration is expressed at the audio sample rate while
// the clip duration and all markers are expressed at the project frame
// rate, so sample-accurate media length and frame-accurate timeline
// placement coexist in one document.
func Build(grid beat.Grid, src Source, settings Settings) (*Document, error) {
	abs, err := filepath.Abs(src.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve media path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("stat media file: %w", err)
	}
	if settings.FrameRate <= 0 {
		return nil, fmt.Errorf("frame rate must be positive, got %d", settings.FrameRate)
	}
	if src.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", src.SampleRate)
	}

	assetDuration, err := timecode.FromSeconds(src.DurationSeconds, src.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("asset duration: %w", err)
	}
	clipDuration, err := timecode.FromSeconds(src.DurationSeconds, settings.FrameRate)
	if err != nil {
		return nil, fmt.Errorf("clip duration: %w", err)
	}

	markers := make([]Marker, 0, len(grid.Beats))
	previous := -1.0
	for i, beatTime := range grid.Beats {
		if beatTime < previous {
			return nil, fmt.Errorf("beat %d at %.6fs precedes beat %d at %.6fs", i+1, beatTime, i, previous)
		}
		previous = beatTime
		start, err := timecode.FromSeconds(beatTime, settings.FrameRate)
		if err != nil {
			return nil, fmt.Errorf("marker %d: %w", i+1, err)
		}
		markers = append(markers, Marker{
			Start:     start.String(),
			Duration:  timecode.OneFrame(settings.FrameRate).String(),
			Value:     fmt.Sprintf("Beat %d", i+1),
			Completed: "0",
			Note:      fmt.Sprintf("Beat detected at %.3fs", beatTime),
		})
	}

	base := filepath.Base(abs)
	eventName := settings.EventName
	if eventName == "" {
		eventName = eventTitle(base)
	}

	doc := &Document{
		Version: Version,
		Resources: Resources{
			Format: Format{
				ID:            formatID,
				Name:          fmt.Sprintf("FFVideoFormat%dp", settings.FrameRate),
				FrameDuration: fmt.Sprintf("1000/%ds", settings.FrameRate*1000),
				Width:         settings.Width,
				Height:        settings.Height,
			},
			Asset: Asset{
				ID:            assetID,
				Name:          stem(base),
				Start:         timecode.Zero.String(),
				Duration:      assetDuration.String(),
				HasAudio:      "1",
				AudioSources:  "1",
				AudioChannels: strconv.Itoa(settings.AudioChannels),
				AudioRate:     strconv.FormatInt(src.SampleRate, 10),
				MediaRep: MediaRep{
					Kind: "original-media",
					Src:  fileURI(abs),
				},
			},
		},
		Library: Library{
			Event: Event{
				Name: eventName,
				Clip: AssetClip{
					Name:      base,
					Ref:       assetID,
					Offset:    timecode.Zero.String(),
					Duration:  clipDuration.String(),
					Format:    formatID,
					AudioRole: settings.AudioRole,
					TCFormat:  "NDF",
					Markers:   markers,
				},
			},
		},
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func fileURI(abs string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}

func stem(base string) string {
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// eventTitle turns a media filename into a presentable event name:
// "my_mix-v2.wav" becomes "My Mix V2".
func eventTitle(base string) string {
	name := stem(base)
	name = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "Beat Marked Clips"
	}
	return cases.Title(language.Und).String(name)
}
