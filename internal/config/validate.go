package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateGemini(); err != nil {
		return err
	}
	if err := c.validateDubbing(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateGemini() error {
	if c.Gemini.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/overdub/config.toml"
		}
		return fmt.Errorf("gemini.api_key is required. Set GEMINI_TOKEN env var or edit %s (create with 'overdub config init')", defaultPath)
	}
	if c.Gemini.TopP > 1 {
		return errors.New("gemini.top_p must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateDubbing() error {
	if c.Dubbing.OriginalLanguage == "" {
		return errors.New("dubbing.original_language must be set")
	}
	if c.Dubbing.TargetLanguage == "" {
		return errors.New("dubbing.target_language must be set")
	}
	if c.Dubbing.OriginalLanguage == c.Dubbing.TargetLanguage {
		return errors.New("dubbing.target_language must differ from dubbing.original_language")
	}
	if c.Dubbing.NumberOfSpeakers < 1 {
		return errors.New("dubbing.number_of_speakers must be at least 1")
	}
	if c.Dubbing.MergeUtterances && c.Dubbing.MinimumMergeThreshold <= 0 {
		return errors.New("dubbing.minimum_merge_threshold must be positive when dubbing.merge_utterances is true")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if err := ensurePositiveMap(map[string]int{
		"workflow.asset_poll_interval": c.Workflow.AssetPollInterval,
		"workflow.asset_max_wait":      c.Workflow.AssetMaxWait,
	}); err != nil {
		return err
	}
	if c.Workflow.AssetMaxWait <= c.Workflow.AssetPollInterval {
		return errors.New("workflow.asset_max_wait must be greater than workflow.asset_poll_interval")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
