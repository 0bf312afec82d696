package demucs

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"overdub/internal/services"
)

// Command is the demucs executable name.
const Command = "demucs"

// DefaultModel is the pretrained separation model.
const DefaultModel = "htdemucs"

// Service runs Demucs to split an audio file into vocal and background stems.
type Service struct {
	model         string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a separation service for the given model.
func NewService(model string) *Service {
	if model == "" {
		model = DefaultModel
	}
	return &Service{model: model}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Stems holds the paths Demucs writes for a two-stem split.
type Stems struct {
	Vocals     string
	Background string
}

// Separate splits source into vocals and background under outputDir and
// returns the stem paths Demucs produces.
func (s *Service) Separate(ctx context.Context, source, outputDir string) (Stems, error) {
	if source == "" {
		return Stems{}, services.Wrap(services.ErrConfiguration, "preprocess", "separate stems", "source path required", nil)
	}
	args := s.buildArgs(source, outputDir)
	if err := s.run(ctx, args...); err != nil {
		return Stems{}, services.Wrap(services.ErrExternalTool, "preprocess", "separate stems", "demucs failed", err)
	}
	return s.stemPaths(source, outputDir), nil
}

func (s *Service) run(ctx context.Context, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, Command, args...)
	}
	cmd := exec.CommandContext(ctx, Command, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", Command, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (s *Service) buildArgs(source, outputDir string) []string {
	return []string{
		"--two-stems", "vocals",
		"-n", s.model,
		"-o", outputDir,
		source,
	}
}

// stemPaths mirrors the demucs output layout:
// <outputDir>/<model>/<track>/vocals.wav and no_vocals.wav.
func (s *Service) stemPaths(source, outputDir string) Stems {
	track := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	base := filepath.Join(outputDir, s.model, track)
	return Stems{
		Vocals:     filepath.Join(base, "vocals.wav"),
		Background: filepath.Join(base, "no_vocals.wav"),
	}
}
