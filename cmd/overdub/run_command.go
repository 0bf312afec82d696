package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"overdub/internal/config"
	"overdub/internal/deps"
	"overdub/internal/logging"
	"overdub/internal/media"
	"overdub/internal/pipeline"
	"overdub/internal/remoteasset"
	"overdub/internal/runlog"
	"overdub/internal/services/demucs"
	"overdub/internal/services/gemini"
	"overdub/internal/services/tts"
	"overdub/internal/services/whisper"
)

func newRunCommand(cctx *commandContext) *cobra.Command {
	var outputDir string
	var sourceLanguage string
	var targetLanguage string
	var speakers int
	var keepIntermediates bool

	cmd := &cobra.Command{
		Use:   "run <input>",
		Short: "Dub a video or audio file into the target language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cctx.ensureLogger()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg.Separation.Enabled))
			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return fmt.Errorf("missing required tools: %s (run `overdub deps` for details)",
					strings.Join(missing, ", "))
			}

			input, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve input path: %w", err)
			}

			runCfg, err := dubRunConfig(cfg, input, outputDir, sourceLanguage, targetLanguage, speakers, keepIntermediates)
			if err != nil {
				return err
			}
			dubber, ledger, err := buildDubber(cmd.Context(), cfg, runCfg, logger)
			if err != nil {
				return err
			}
			if ledger != nil {
				defer ledger.Close()
			}

			output, err := dubber.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dubbed output: %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (defaults to paths.output_dir)")
	cmd.Flags().StringVar(&sourceLanguage, "source-language", "", "Override the configured original language")
	cmd.Flags().StringVar(&targetLanguage, "target-language", "", "Override the configured target language")
	cmd.Flags().IntVar(&speakers, "speakers", 0, "Override the configured number of speakers")
	cmd.Flags().BoolVar(&keepIntermediates, "keep-intermediates", false, "Keep intermediate files even when cleanup is configured")
	return cmd
}

// dubRunConfig merges command-line overrides onto the configured defaults.
// Instruction settings may name .txt files; they are resolved here.
func dubRunConfig(cfg *config.Config, input, outputDir, sourceLanguage, targetLanguage string, speakers int, keepIntermediates bool) (pipeline.Config, error) {
	diarization, err := config.ReadSystemInstructions(cfg.Dubbing.DiarizationInstructions)
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("dubbing.diarization_instructions: %w", err)
	}
	translation, err := config.ReadSystemInstructions(cfg.Dubbing.TranslationInstructions)
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("dubbing.translation_instructions: %w", err)
	}

	runCfg := pipeline.Config{
		InputPath:               input,
		OutputDir:               cfg.Paths.OutputDir,
		SourceLanguage:          cfg.Dubbing.OriginalLanguage,
		TargetLanguage:          cfg.Dubbing.TargetLanguage,
		NumberOfSpeakers:        cfg.Dubbing.NumberOfSpeakers,
		MergeUtterances:         cfg.Dubbing.MergeUtterances,
		MergeThreshold:          cfg.Dubbing.MinimumMergeThreshold,
		DiarizationInstructions: diarization,
		TranslationInstructions: translation,
		SeparationEnabled:       cfg.Separation.Enabled,
		CleanupIntermediates:    cfg.Dubbing.CleanupIntermediates,
	}
	if strings.TrimSpace(outputDir) != "" {
		if expanded, err := config.ExpandPath(outputDir); err == nil {
			runCfg.OutputDir = expanded
		}
	}
	if strings.TrimSpace(sourceLanguage) != "" {
		runCfg.SourceLanguage = sourceLanguage
	}
	if strings.TrimSpace(targetLanguage) != "" {
		runCfg.TargetLanguage = targetLanguage
	}
	if speakers > 0 {
		runCfg.NumberOfSpeakers = speakers
	}
	if keepIntermediates {
		runCfg.CleanupIntermediates = false
	}
	return runCfg, nil
}

// buildDubber wires the external services behind the pipeline interfaces.
func buildDubber(ctx context.Context, cfg *config.Config, runCfg pipeline.Config, logger *slog.Logger) (*pipeline.Dubber, *runlog.Store, error) {
	client, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:          cfg.Gemini.APIKey,
		Model:           cfg.Gemini.Model,
		Temperature:     cfg.Gemini.Temperature,
		TopP:            cfg.Gemini.TopP,
		TopK:            cfg.Gemini.TopK,
		MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("gemini client ready", logging.String("model", client.Model()))

	poller := remoteasset.NewPoller(
		remoteasset.WithInterval(time.Duration(cfg.Workflow.AssetPollInterval)*time.Second),
		remoteasset.WithMaxWait(time.Duration(cfg.Workflow.AssetMaxWait)*time.Second),
	)

	synth := tts.NewService(tts.Config{
		Defaults: tts.VoiceDefaults{
			Male:    cfg.TTS.MaleVoice,
			Female:  cfg.TTS.FemaleVoice,
			Default: cfg.TTS.DefaultVoice,
		},
		PreferredVoices: cfg.Dubbing.PreferredVoices,
	}, func(ctx context.Context, voice, text string) ([]byte, error) {
		return client.Synthesize(ctx, cfg.TTS.Model, voice, text)
	})

	ledger, err := runlog.Open(cfg.Paths.RunLogDB)
	if err != nil {
		// A broken ledger should not block dubbing; the run proceeds unrecorded.
		logger.Warn("run ledger unavailable", logging.Error(err))
		ledger = nil
	}

	dubber, err := pipeline.NewDubber(runCfg, pipeline.Options{
		Media:     media.NewProcessor(cfg.FFmpegBinary()),
		Separator: demucs.NewService(cfg.Separation.Model),
		Transcriber: whisper.NewService(whisper.Config{
			Model:       cfg.Whisper.Model,
			CUDAEnabled: cfg.Whisper.CUDAEnabled,
			HFToken:     cfg.Whisper.HuggingFaceToken,
			CacheDir:    cfg.Whisper.CacheDir,
		}),
		Analyzer:    pipeline.NewGeminiAnalyzer(client, poller, logging.NewComponentLogger(logger, "diarizer")),
		Translator:  pipeline.NewGeminiTranslator(client),
		Synthesizer: synth,
		Ledger:      ledger,
		Logger:      logging.NewComponentLogger(logger, "pipeline"),
	})
	if err != nil {
		if ledger != nil {
			_ = ledger.Close()
		}
		return nil, nil, err
	}
	return dubber, ledger, nil
}
