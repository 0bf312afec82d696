package config

const (
	defaultOutputDir             = "~/.local/share/overdub/output"
	defaultLogDir                = "~/.local/share/overdub/logs"
	defaultRunLogDB              = "~/.local/share/overdub/runlog.db"
	defaultWhisperCacheDir       = "~/.local/share/overdub/cache/whisperx"
	defaultOriginalLanguage      = "en-US"
	defaultTargetLanguage        = "es-ES"
	defaultNumberOfSpeakers      = 1
	defaultMinimumMergeThreshold = 0.001
	defaultGeminiModel           = "gemini-2.5-flash"
	defaultGeminiTemperature     = 1.0
	defaultGeminiTopP            = 0.95
	defaultGeminiTopK            = 64
	defaultGeminiMaxOutputTokens = 8192
	defaultTTSModel              = "gemini-2.5-flash-preview-tts"
	defaultMaleVoice             = "Charon"
	defaultFemaleVoice           = "Aoede"
	defaultWhisperModel          = "large-v3-turbo"
	defaultSeparationModel       = "htdemucs"
	defaultAssetPollInterval     = 10
	defaultAssetMaxWait          = 300
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			RunLogDB:  defaultRunLogDB,
		},
		Dubbing: Dubbing{
			OriginalLanguage:      defaultOriginalLanguage,
			TargetLanguage:        defaultTargetLanguage,
			NumberOfSpeakers:      defaultNumberOfSpeakers,
			MergeUtterances:       true,
			MinimumMergeThreshold: defaultMinimumMergeThreshold,
			CleanupIntermediates:  false,
		},
		Gemini: Gemini{
			Model:           defaultGeminiModel,
			Temperature:     defaultGeminiTemperature,
			TopP:            defaultGeminiTopP,
			TopK:            defaultGeminiTopK,
			MaxOutputTokens: defaultGeminiMaxOutputTokens,
		},
		TTS: TTS{
			Model:        defaultTTSModel,
			MaleVoice:    defaultMaleVoice,
			FemaleVoice:  defaultFemaleVoice,
			DefaultVoice: defaultFemaleVoice,
		},
		Whisper: Whisper{
			Model:    defaultWhisperModel,
			CacheDir: defaultWhisperCacheDir,
		},
		Separation: Separation{
			Enabled: true,
			Model:   defaultSeparationModel,
		},
		Workflow: Workflow{
			AssetPollInterval: defaultAssetPollInterval,
			AssetMaxWait:      defaultAssetMaxWait,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
