package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"overdub/internal/fileutil"
	langpkg "overdub/internal/language"
	"overdub/internal/services"
	"overdub/internal/utterance"
)

// Service runs WhisperX through uvx to segment and transcribe speech.
type Service struct {
	cfg           Config
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a WhisperX service with the given configuration.
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

func (s *Service) run(ctx context.Context, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, UVXCommand, args...)
	}
	cmd := exec.CommandContext(ctx, UVXCommand, args...) //nolint:gosec

	// Torch 2.6 changed torch.load default to weights_only=true, breaking
	// WhisperX/pyannote checkpoint loading. Force legacy behavior.
	if os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		cmd.Env = append(os.Environ(), "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", UVXCommand, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Transcribe segments and transcribes a vocals-only WAV file, returning one
// timed record per spoken utterance in order of appearance.
func (s *Service) Transcribe(ctx context.Context, source, outputDir, languageTag string) ([]utterance.Record, error) {
	if source == "" {
		return nil, services.Wrap(services.ErrConfiguration, "transcribe", "run whisperx", "source path required", nil)
	}
	if outputDir == "" {
		outputDir = filepath.Dir(source)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "transcribe", "run whisperx", "ensure output dir", err)
	}

	args := s.buildArgs(source, outputDir, languageTag)
	if err := s.run(ctx, args...); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "transcribe", "run whisperx", "transcription failed", err)
	}

	jsonPath := filepath.Join(outputDir, filepath.Base(fileutil.ReplaceExt(source, ".json")))
	segments, err := LoadSegments(jsonPath)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "transcribe", "read whisperx output", jsonPath, err)
	}

	records := make([]utterance.Record, 0, len(segments))
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		records = append(records, utterance.Record{
			Start: seg.Start,
			End:   seg.End,
			Text:  text,
		})
	}
	return records, nil
}

// buildArgs constructs the uvx command arguments for WhisperX.
func (s *Service) buildArgs(source, outputDir, languageTag string) []string {
	args := make([]string, 0, 24)

	if s.cfg.CUDAEnabled {
		args = append(args,
			"--index-url", CUDAIndexURL,
			"--extra-index-url", PypiIndexURL,
		)
	} else {
		args = append(args, "--index-url", PypiIndexURL)
	}

	args = append(args,
		"whisperx",
		source,
		"--model", s.Model(),
		"--batch_size", BatchSize,
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--segment_resolution", SegmentResolution,
	)

	if s.cfg.CacheDir != "" {
		args = append(args, "--model_cache_only", "False", "--model_dir", s.cfg.CacheDir)
	}

	if s.cfg.HFToken != "" {
		args = append(args, "--vad_method", VADMethodPyannote, "--hf_token", s.cfg.HFToken)
	} else {
		args = append(args, "--vad_method", VADMethodSilero)
	}

	if lang := langpkg.ISO1(languageTag); lang != "" {
		args = append(args, "--language", lang)
	}

	if s.cfg.CUDAEnabled {
		args = append(args, "--device", CUDADevice)
	} else {
		args = append(args, "--device", CPUDevice, "--compute_type", CPUComputeType)
	}

	return args
}

// Segment represents a transcribed segment from WhisperX JSON output.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type whisperXPayload struct {
	Segments []Segment `json:"segments"`
}

// LoadSegments loads segments from a WhisperX JSON file.
func LoadSegments(jsonPath string) ([]Segment, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	var payload whisperXPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse whisperx json: %w", err)
	}
	return payload.Segments, nil
}
