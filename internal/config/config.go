package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
	RunLogDB  string `toml:"runlog_db"`
}

// Dubbing contains the core dubbing run settings.
type Dubbing struct {
	OriginalLanguage        string   `toml:"original_language"`
	TargetLanguage          string   `toml:"target_language"`
	NumberOfSpeakers        int      `toml:"number_of_speakers"`
	MergeUtterances         bool     `toml:"merge_utterances"`
	MinimumMergeThreshold   float64  `toml:"minimum_merge_threshold"`
	PreferredVoices         []string `toml:"preferred_voices"`
	CleanupIntermediates    bool     `toml:"cleanup_intermediates"`
	DiarizationInstructions string   `toml:"diarization_instructions"`
	TranslationInstructions string   `toml:"translation_instructions"`
}

// Gemini contains generative model connection and sampling settings.
type Gemini struct {
	APIKey          string  `toml:"api_key"`
	Model           string  `toml:"model"`
	Temperature     float64 `toml:"temperature"`
	TopP            float64 `toml:"top_p"`
	TopK            int     `toml:"top_k"`
	MaxOutputTokens int     `toml:"max_output_tokens"`
}

// TTS contains speech synthesis settings.
type TTS struct {
	Model        string `toml:"model"`
	MaleVoice    string `toml:"male_voice"`
	FemaleVoice  string `toml:"female_voice"`
	DefaultVoice string `toml:"default_voice"`
}

// Whisper contains speech-to-text settings for the exec-wrapped whisperx tool.
type Whisper struct {
	Model            string `toml:"model"`
	CUDAEnabled      bool   `toml:"cuda_enabled"`
	HuggingFaceToken string `toml:"hf_token"`
	CacheDir         string `toml:"cache_dir"`
}

// Separation contains vocal/background source separation settings.
type Separation struct {
	Enabled bool   `toml:"enabled"`
	Model   string `toml:"model"`
}

// Workflow contains timing for remote asset polling.
type Workflow struct {
	AssetPollInterval int `toml:"asset_poll_interval"`
	AssetMaxWait      int `toml:"asset_max_wait"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Overdub.
//
// Configuration sections by subsystem:
//   - Paths: output, log, and run ledger locations
//   - Dubbing: languages, speaker count, merge and cleanup behavior
//   - Gemini: generative model connection and sampling parameters
//   - TTS: speech synthesis model and voice assignment
//   - Whisper: transcription model and Hugging Face access
//   - Separation: vocal/background stem splitting
//   - Workflow: remote asset polling cadence
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Dubbing    Dubbing    `toml:"dubbing"`
	Gemini     Gemini     `toml:"gemini"`
	TTS        TTS        `toml:"tts"`
	Whisper    Whisper    `toml:"whisper"`
	Separation Separation `toml:"separation"`
	Workflow   Workflow   `toml:"workflow"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/overdub/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/overdub/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("overdub.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for a dubbing run.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.OutputDir, c.Paths.LogDir}
	if dir := filepath.Dir(c.Paths.RunLogDB); dir != "" && dir != "." {
		dirs = append(dirs, dir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable name used for media processing.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable name used for media inspection.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	sample := sampleConfig

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
