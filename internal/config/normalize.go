package config

import (
	"fmt"
	"os"
	"strings"

	langpkg "overdub/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeDubbing(); err != nil {
		return err
	}
	c.normalizeGemini()
	c.normalizeTTS()
	if err := c.normalizeWhisper(); err != nil {
		return err
	}
	c.normalizeSeparation()
	c.normalizeWorkflow()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.RunLogDB) == "" {
		c.Paths.RunLogDB = defaultRunLogDB
	}
	if c.Paths.RunLogDB, err = expandPath(c.Paths.RunLogDB); err != nil {
		return fmt.Errorf("paths.runlog_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeDubbing() error {
	c.Dubbing.OriginalLanguage = strings.TrimSpace(c.Dubbing.OriginalLanguage)
	if c.Dubbing.OriginalLanguage != "" {
		tag, err := langpkg.Normalize(c.Dubbing.OriginalLanguage)
		if err != nil {
			return fmt.Errorf("dubbing.original_language: %w", err)
		}
		c.Dubbing.OriginalLanguage = tag
	}
	c.Dubbing.TargetLanguage = strings.TrimSpace(c.Dubbing.TargetLanguage)
	if c.Dubbing.TargetLanguage != "" {
		tag, err := langpkg.Normalize(c.Dubbing.TargetLanguage)
		if err != nil {
			return fmt.Errorf("dubbing.target_language: %w", err)
		}
		c.Dubbing.TargetLanguage = tag
	}
	if c.Dubbing.NumberOfSpeakers <= 0 {
		c.Dubbing.NumberOfSpeakers = defaultNumberOfSpeakers
	}
	if c.Dubbing.MinimumMergeThreshold <= 0 {
		c.Dubbing.MinimumMergeThreshold = defaultMinimumMergeThreshold
	}
	voices := make([]string, 0, len(c.Dubbing.PreferredVoices))
	for _, voice := range c.Dubbing.PreferredVoices {
		if trimmed := strings.TrimSpace(voice); trimmed != "" {
			voices = append(voices, trimmed)
		}
	}
	c.Dubbing.PreferredVoices = voices
	return nil
}

func (c *Config) normalizeGemini() {
	c.Gemini.APIKey = strings.TrimSpace(c.Gemini.APIKey)
	if c.Gemini.APIKey == "" {
		if value, ok := os.LookupEnv("GEMINI_TOKEN"); ok {
			c.Gemini.APIKey = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("GEMINI_API_KEY"); ok {
			c.Gemini.APIKey = strings.TrimSpace(value)
		}
	}
	c.Gemini.Model = strings.TrimSpace(c.Gemini.Model)
	if c.Gemini.Model == "" {
		c.Gemini.Model = defaultGeminiModel
	}
	if c.Gemini.Temperature <= 0 {
		c.Gemini.Temperature = defaultGeminiTemperature
	}
	if c.Gemini.TopP <= 0 {
		c.Gemini.TopP = defaultGeminiTopP
	}
	if c.Gemini.TopK <= 0 {
		c.Gemini.TopK = defaultGeminiTopK
	}
	if c.Gemini.MaxOutputTokens <= 0 {
		c.Gemini.MaxOutputTokens = defaultGeminiMaxOutputTokens
	}
}

func (c *Config) normalizeTTS() {
	c.TTS.Model = strings.TrimSpace(c.TTS.Model)
	if c.TTS.Model == "" {
		c.TTS.Model = defaultTTSModel
	}
	c.TTS.MaleVoice = strings.TrimSpace(c.TTS.MaleVoice)
	if c.TTS.MaleVoice == "" {
		c.TTS.MaleVoice = defaultMaleVoice
	}
	c.TTS.FemaleVoice = strings.TrimSpace(c.TTS.FemaleVoice)
	if c.TTS.FemaleVoice == "" {
		c.TTS.FemaleVoice = defaultFemaleVoice
	}
	c.TTS.DefaultVoice = strings.TrimSpace(c.TTS.DefaultVoice)
	if c.TTS.DefaultVoice == "" {
		c.TTS.DefaultVoice = c.TTS.FemaleVoice
	}
}

func (c *Config) normalizeWhisper() error {
	c.Whisper.Model = strings.TrimSpace(c.Whisper.Model)
	if c.Whisper.Model == "" {
		c.Whisper.Model = defaultWhisperModel
	}
	c.Whisper.HuggingFaceToken = strings.TrimSpace(c.Whisper.HuggingFaceToken)
	if c.Whisper.HuggingFaceToken == "" {
		if value, ok := os.LookupEnv("HUGGING_FACE_TOKEN"); ok {
			c.Whisper.HuggingFaceToken = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("HF_TOKEN"); ok {
			c.Whisper.HuggingFaceToken = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.Whisper.CacheDir) == "" {
		c.Whisper.CacheDir = defaultWhisperCacheDir
	}
	var err error
	if c.Whisper.CacheDir, err = expandPath(c.Whisper.CacheDir); err != nil {
		return fmt.Errorf("whisper.cache_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSeparation() {
	c.Separation.Model = strings.TrimSpace(c.Separation.Model)
	if c.Separation.Model == "" {
		c.Separation.Model = defaultSeparationModel
	}
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.AssetPollInterval <= 0 {
		c.Workflow.AssetPollInterval = defaultAssetPollInterval
	}
	if c.Workflow.AssetMaxWait <= 0 {
		c.Workflow.AssetMaxWait = defaultAssetMaxWait
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
