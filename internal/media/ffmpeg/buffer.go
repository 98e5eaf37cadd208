package ffmpeg

// Buffer holds a decoded audio signal: an ordered sequence of amplitude
// samples at a fixed rate. Buffers are immutable once decoded; the
// pipeline owns one per analysis run and discards it afterwards.
type Buffer struct {
	// Samples is the mono analysis signal.
	Samples []float64
	// SampleRate is the native rate of the source media in Hz.
	SampleRate int
	// Channels is the channel count of the source media. The samples
	// themselves are downmixed to mono for analysis.
	Channels int
}

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	if b == nil || b.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}
