// Package ffmpeg is the external codec boundary: it decodes audio files
// into sample buffers through the ffmpeg and ffprobe command-line tools
// rather than reimplementing container parsing.
//
// Probe extracts audio stream metadata (sample rate, channels, duration)
// as JSON from ffprobe; Decode streams raw float32 PCM from ffmpeg's
// stdout, downmixed to mono at the source's native rate.
package ffmpeg
