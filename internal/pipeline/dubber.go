package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"overdub/internal/fileutil"
	"overdub/internal/logging"
	"overdub/internal/runlog"
	"overdub/internal/services"
	"overdub/internal/services/demucs"
	"overdub/internal/utterance"
)

// Stage names one pipeline stage.
type Stage string

const (
	StagePreprocess   Stage = "preprocess"
	StageTranscribe   Stage = "transcribe"
	StageTranslate    Stage = "translate"
	StageSynthesize   Stage = "synthesize"
	StageSaveMetadata Stage = "save_metadata"
	StagePostprocess  Stage = "postprocess"
	StageCleanup      Stage = "cleanup"
)

// PreprocessingArtifacts holds the file layout produced by the preprocess
// stage; every later stage works from these paths.
type PreprocessingArtifacts struct {
	WorkDir        string
	IsVideo        bool
	VideoPath      string
	AudioPath      string
	VocalsPath     string
	BackgroundPath string
}

// MediaProcessor covers the ffmpeg operations the pipeline needs.
type MediaProcessor interface {
	ExtractAudio(ctx context.Context, source, dest string) error
	ExtractVideo(ctx context.Context, source, dest string) error
	CutChunk(ctx context.Context, source string, start, end float64, dest string) error
	AssembleDubbedTrack(ctx context.Context, background string, records []utterance.Record, dest string) error
	MergeAudioVideo(ctx context.Context, video, audio, dest string) error
}

// Separator splits audio into vocal and background stems.
type Separator interface {
	Separate(ctx context.Context, source, outputDir string) (demucs.Stems, error)
}

// Transcriber segments and transcribes speech into timed records.
type Transcriber interface {
	Transcribe(ctx context.Context, source, outputDir, languageTag string) ([]utterance.Record, error)
}

// SpeakerAnalyzer attributes a speaker and gender to every utterance.
type SpeakerAnalyzer interface {
	AnalyzeSpeakers(ctx context.Context, inputPath string, records []utterance.Record, speakerCount int, instructions string) ([]utterance.SpeakerInfo, error)
}

// Translator translates utterance texts preserving count and order.
type Translator interface {
	TranslateUtterances(ctx context.Context, texts []string, sourceLanguage, targetLanguage, instructions string) ([]string, error)
}

// Synthesizer renders translated utterances into dubbed audio chunks.
type Synthesizer interface {
	DubUtterances(ctx context.Context, store *utterance.Store, outputDir string) error
}

// Config describes one dubbing run.
type Config struct {
	InputPath               string
	OutputDir               string
	SourceLanguage          string
	TargetLanguage          string
	NumberOfSpeakers        int
	MergeUtterances         bool
	MergeThreshold          float64
	DiarizationInstructions string
	TranslationInstructions string
	SeparationEnabled       bool
	CleanupIntermediates    bool
}

// Dubber runs the dubbing pipeline. Each stage executes at most once per
// run; its output is cached and reused by later stages.
type Dubber struct {
	cfg         Config
	media       MediaProcessor
	separator   Separator
	transcriber Transcriber
	analyzer    SpeakerAnalyzer
	translator  Translator
	synthesizer Synthesizer
	ledger      *runlog.Store
	logger      *slog.Logger

	runID    string
	progress *progressCounter
	results  results
}

// Options bundles the collaborators a Dubber needs.
type Options struct {
	Media       MediaProcessor
	Separator   Separator
	Transcriber Transcriber
	Analyzer    SpeakerAnalyzer
	Translator  Translator
	Synthesizer Synthesizer
	Ledger      *runlog.Store
	Logger      *slog.Logger
}

// NewDubber validates config and collaborators and prepares a run.
func NewDubber(cfg Config, opts Options) (*Dubber, error) {
	if strings.TrimSpace(cfg.InputPath) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "", "new dubber", "input path required", nil)
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "", "new dubber", "output directory required", nil)
	}
	if opts.Media == nil || opts.Transcriber == nil || opts.Analyzer == nil ||
		opts.Translator == nil || opts.Synthesizer == nil {
		return nil, services.Wrap(services.ErrConfiguration, "", "new dubber", "missing pipeline collaborator", nil)
	}
	if cfg.SeparationEnabled && opts.Separator == nil {
		return nil, services.Wrap(services.ErrConfiguration, "", "new dubber", "separation enabled but no separator configured", nil)
	}
	if cfg.NumberOfSpeakers < 1 {
		cfg.NumberOfSpeakers = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Dubber{
		cfg:         cfg,
		media:       opts.Media,
		separator:   opts.Separator,
		transcriber: opts.Transcriber,
		analyzer:    opts.Analyzer,
		translator:  opts.Translator,
		synthesizer: opts.Synthesizer,
		ledger:      opts.Ledger,
		logger:      logger,
		runID:       uuid.NewString(),
		progress:    newProgressCounter(logger, cfg.CleanupIntermediates),
	}, nil
}

// RunID identifies this run in logs and the ledger.
func (d *Dubber) RunID() string {
	return d.runID
}

// Run executes the full pipeline and returns the dubbed output path.
func (d *Dubber) Run(ctx context.Context) (string, error) {
	ctx = services.WithRunID(ctx, d.runID)
	d.logger = logging.WithContext(ctx, d.logger)
	started := time.Now()

	if err := fileutil.EnsureDir(d.cfg.OutputDir); err != nil {
		return "", services.Wrap(services.ErrConfiguration, string(StagePreprocess), "prepare output", "create output directory", err)
	}

	lock := flock.New(filepath.Join(d.cfg.OutputDir, ".overdub.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, string(StagePreprocess), "lock output", "acquire output directory lock", err)
	}
	if !locked {
		return "", services.Wrap(services.ErrConfiguration, string(StagePreprocess), "lock output",
			fmt.Sprintf("output directory %q is in use by another run", d.cfg.OutputDir), nil)
	}
	defer func() { _ = lock.Unlock() }()

	if d.ledger != nil {
		if err := d.ledger.RecordStart(ctx, runlog.Run{
			ID:             d.runID,
			InputPath:      d.cfg.InputPath,
			SourceLanguage: d.cfg.SourceLanguage,
			TargetLanguage: d.cfg.TargetLanguage,
		}); err != nil {
			d.logger.Warn("run ledger unavailable", logging.Error(err))
		}
	}

	output, err := d.run(ctx)
	d.recordFinish(ctx, output, err)
	if err != nil {
		return "", err
	}

	d.logger.Info("dubbing complete",
		logging.String("output", output),
		logging.Duration("elapsed", time.Since(started)))
	return output, nil
}

func (d *Dubber) run(ctx context.Context) (string, error) {
	output, err := d.ensurePostprocessed(ctx)
	if err != nil {
		return "", err
	}
	if d.cfg.CleanupIntermediates {
		if err := d.runCleanup(ctx); err != nil {
			return "", err
		}
	}
	return output, nil
}

func (d *Dubber) recordFinish(ctx context.Context, output string, runErr error) {
	if d.ledger == nil {
		return
	}
	status := runlog.StatusCompleted
	message := ""
	if runErr != nil {
		status = runlog.StatusFailed
		message = runErr.Error()
	}
	if err := d.ledger.RecordFinish(ctx, d.runID, status, output, message); err != nil {
		d.logger.Warn("run ledger update failed", logging.Error(err))
	}
}
