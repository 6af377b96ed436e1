package config

const (
	defaultMusicDir            = "~/music"
	defaultLogDir              = "~/.local/share/curator/logs"
	defaultExtension           = ".flac"
	defaultSimilarityThreshold = 0.9
	defaultFetchListFile       = "list.txt"
	defaultFetchBinary         = "yt-dlp"
	defaultFetchAudioFormat    = "flac"
	defaultFetchAudioQuality   = "0"
	defaultMPDBinary           = "mpc"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			MusicDir: defaultMusicDir,
			LogDir:   defaultLogDir,
		},
		Scan: Scan{
			Extension:           defaultExtension,
			SimilarityThreshold: defaultSimilarityThreshold,
		},
		Fetch: Fetch{
			ListFile:      defaultFetchListFile,
			Binary:        defaultFetchBinary,
			AudioFormat:   defaultFetchAudioFormat,
			AudioQuality:  defaultFetchAudioQuality,
			EmbedMetadata: true,
		},
		MPD: MPD{
			Enabled: true,
			Binary:  defaultMPDBinary,
		},
		Relocate: Relocate{
			UpdateMPD: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
