package config

const (
	defaultMovieDir           = "movie"
	defaultSoundDir           = "sound"
	defaultOutputDir          = "outcome"
	defaultEventsDir          = "events"
	defaultCacheDir           = "~/.cache/eventkit"
	defaultVideoStart         = 0
	defaultVideoEnd           = 15
	defaultAudioStart         = 40
	defaultAudioEnd           = 60
	defaultOutputExt          = "mp4"
	defaultVideoCodec         = "libx264"
	defaultAudioCodec         = "aac"
	defaultFFmpegBinary       = "ffmpeg"
	defaultFFprobeBinary      = "ffprobe"
	defaultGeocodeBaseURL     = "https://maps.googleapis.com/maps/api"
	defaultGeocodeInput       = "events/multiple_events.json"
	defaultGeocodeOutput      = "events/latlng"
	defaultGeocodeIntervalMS  = 100
	defaultGeocodeTimeout     = 10
	defaultServerBind         = "127.0.0.1:5000"
	defaultServerTitle        = "Event heatmap"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultGeocodeCacheEnable = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			MovieDir:  defaultMovieDir,
			SoundDir:  defaultSoundDir,
			OutputDir: defaultOutputDir,
			EventsDir: defaultEventsDir,
			CacheDir:  defaultCacheDir,
		},
		Combine: Combine{
			VideoStart:    defaultVideoStart,
			VideoEnd:      defaultVideoEnd,
			AudioStart:    defaultAudioStart,
			AudioEnd:      defaultAudioEnd,
			OutputExt:     defaultOutputExt,
			VideoCodec:    defaultVideoCodec,
			AudioCodec:    defaultAudioCodec,
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
		},
		Geocode: Geocode{
			BaseURL:        defaultGeocodeBaseURL,
			InputFile:      defaultGeocodeInput,
			OutputFile:     defaultGeocodeOutput,
			MinIntervalMS:  defaultGeocodeIntervalMS,
			TimeoutSeconds: defaultGeocodeTimeout,
			CacheEnabled:   defaultGeocodeCacheEnable,
		},
		Server: Server{
			Bind:  defaultServerBind,
			Title: defaultServerTitle,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
