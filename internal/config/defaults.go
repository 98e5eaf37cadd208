package config

const (
	defaultOutputDir = ""
	defaultLogDir    = "~/.local/share/beatmark/logs"
	defaultStateDir  = "~/.local/share/beatmark/state"

	defaultFrameRate     = 30
	defaultWidth         = 1920
	defaultHeight        = 1080
	defaultAudioChannels = 2
	defaultEventName     = "Beat Marked Clips"
	defaultAudioRole     = "music"

	defaultWindowSize     = 2048
	defaultHopSize        = 512
	defaultMargin         = 3.0
	defaultKernelSize     = 31
	defaultTightness      = 100.0
	defaultMinTempo       = 60.0
	defaultMaxTempo       = 240.0
	defaultReferenceTempo = 120.0

	defaultBatchJobs = 4

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

func defaultExtensions() []string {
	return []string{".wav", ".mp3", ".aif", ".aiff", ".flac", ".m4a", ".ogg"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			StateDir:  defaultStateDir,
		},
		Project: Project{
			FrameRate:     defaultFrameRate,
			Width:         defaultWidth,
			Height:        defaultHeight,
			AudioChannels: defaultAudioChannels,
			EventName:     defaultEventName,
			AudioRole:     defaultAudioRole,
		},
		Analysis: Analysis{
			WindowSize:     defaultWindowSize,
			HopSize:        defaultHopSize,
			Margin:         defaultMargin,
			KernelSize:     defaultKernelSize,
			Tightness:      defaultTightness,
			MinTempo:       defaultMinTempo,
			MaxTempo:       defaultMaxTempo,
			ReferenceTempo: defaultReferenceTempo,
		},
		Batch: Batch{
			Jobs:       defaultBatchJobs,
			Extensions: defaultExtensions(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
