package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"overdub/internal/fileutil"
	"overdub/internal/logging"
	"overdub/internal/media"
	"overdub/internal/services"
	"overdub/internal/utterance"
)

// preprocess checks the input format, lays out the working directory, demuxes
// the input, and splits vocals from background.
func (d *Dubber) preprocess(ctx context.Context) (*PreprocessingArtifacts, error) {
	ctx = services.WithStage(ctx, string(StagePreprocess))

	isVideo, err := media.IsVideo(d.cfg.InputPath)
	if err != nil {
		return nil, err
	}

	baseName := strings.TrimSuffix(filepath.Base(d.cfg.InputPath), filepath.Ext(d.cfg.InputPath))
	workDir := filepath.Join(d.cfg.OutputDir, baseName)
	if err := fileutil.EnsureDir(workDir); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, string(StagePreprocess), "prepare workdir", workDir, err)
	}

	artifacts := &PreprocessingArtifacts{
		WorkDir:   workDir,
		IsVideo:   isVideo,
		AudioPath: filepath.Join(workDir, "audio.wav"),
	}

	if isVideo {
		artifacts.VideoPath = filepath.Join(workDir, "video"+filepath.Ext(d.cfg.InputPath))
		if err := d.media.ExtractVideo(ctx, d.cfg.InputPath, artifacts.VideoPath); err != nil {
			return nil, err
		}
	}
	if err := d.media.ExtractAudio(ctx, d.cfg.InputPath, artifacts.AudioPath); err != nil {
		return nil, err
	}

	if d.cfg.SeparationEnabled {
		stems, err := d.separator.Separate(ctx, artifacts.AudioPath, filepath.Join(workDir, "stems"))
		if err != nil {
			return nil, err
		}
		artifacts.VocalsPath = stems.Vocals
		artifacts.BackgroundPath = stems.Background
	} else {
		// Without separation the dubbed chunks are laid over the full mix.
		artifacts.VocalsPath = artifacts.AudioPath
		artifacts.BackgroundPath = artifacts.AudioPath
	}

	d.logger.Info("preprocessing complete",
		logging.Bool("video", isVideo),
		logging.String("workdir", workDir))
	return artifacts, nil
}

// transcribe produces timed utterance records and attributes speakers.
func (d *Dubber) transcribe(ctx context.Context) (*utterance.Store, error) {
	ctx = services.WithStage(ctx, string(StageTranscribe))

	artifacts, err := d.ensurePreprocessed(ctx)
	if err != nil {
		return nil, err
	}

	records, err := d.transcriber.Transcribe(ctx, artifacts.VocalsPath, artifacts.WorkDir, d.cfg.SourceLanguage)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, services.Wrap(services.ErrExternalTool, string(StageTranscribe), "transcribe",
			"no speech found in input", nil)
	}

	chunkDir := filepath.Join(artifacts.WorkDir, "source_chunks")
	if err := fileutil.EnsureDir(chunkDir); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, string(StageTranscribe), "prepare chunk dir", chunkDir, err)
	}
	for i := range records {
		chunk := filepath.Join(chunkDir, fmt.Sprintf("utterance_%04d.wav", i))
		if err := d.media.CutChunk(ctx, artifacts.VocalsPath, records[i].Start, records[i].End, chunk); err != nil {
			return nil, err
		}
		records[i].AudioPath = chunk
	}

	store, err := utterance.NewStore(records)
	if err != nil {
		return nil, err
	}

	speakers, err := d.analyzer.AnalyzeSpeakers(ctx, d.cfg.InputPath, records,
		d.cfg.NumberOfSpeakers, d.cfg.DiarizationInstructions)
	if err != nil {
		return nil, err
	}
	if err := store.AddSpeakerInfo(speakers); err != nil {
		return nil, err
	}

	var speech float64
	for _, record := range store.Records() {
		speech += record.Duration()
	}
	d.logger.Info("transcription complete",
		logging.Int("utterances", store.Len()),
		logging.Float64("speech_seconds", speech))
	return store, nil
}

// translate translates all utterance texts and optionally merges adjacent
// utterances of the same speaker.
func (d *Dubber) translate(ctx context.Context) (*utterance.Store, error) {
	ctx = services.WithStage(ctx, string(StageTranslate))

	store, err := d.ensureTranscribed(ctx)
	if err != nil {
		return nil, err
	}

	records := store.Records()
	texts := make([]string, len(records))
	for i, record := range records {
		texts[i] = record.Text
	}

	translated, err := d.translator.TranslateUtterances(ctx, texts,
		d.cfg.SourceLanguage, d.cfg.TargetLanguage, d.cfg.TranslationInstructions)
	if err != nil {
		return nil, err
	}
	if err := store.SetTranslations(translated); err != nil {
		return nil, err
	}

	if d.cfg.MergeUtterances {
		before := store.Len()
		store.MergeAdjacent(d.cfg.MergeThreshold)
		if merged := before - store.Len(); merged > 0 {
			d.logger.Info("merged adjacent utterances", logging.Int("merged", merged))
		}
	}

	d.logger.Info("translation complete", logging.Int("utterances", store.Len()))
	return store, nil
}

// synthesize renders dubbed chunks for every translated utterance.
func (d *Dubber) synthesize(ctx context.Context) (*utterance.Store, error) {
	ctx = services.WithStage(ctx, string(StageSynthesize))

	store, err := d.ensureTranslated(ctx)
	if err != nil {
		return nil, err
	}
	artifacts := d.results.preprocessing

	chunkDir := filepath.Join(artifacts.WorkDir, "chunks")
	if err := fileutil.EnsureDir(chunkDir); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, string(StageSynthesize), "prepare chunk dir", chunkDir, err)
	}
	if err := d.synthesizer.DubUtterances(ctx, store, chunkDir); err != nil {
		return nil, err
	}

	d.logger.Info("synthesis complete", logging.Int("chunks", store.Len()))
	return store, nil
}

// saveMetadata writes the utterance metadata checkpoint, running any
// unrealized predecessor stages first. Write failures come back tagged
// ErrPersistence so the orchestrator can classify them as non-fatal;
// predecessor failures keep their own markers and stay fatal.
func (d *Dubber) saveMetadata(ctx context.Context) (string, error) {
	store, err := d.ensureSynthesized(ctx)
	if err != nil {
		return "", err
	}
	artifacts := d.results.preprocessing

	path := filepath.Join(artifacts.WorkDir, utterance.MetadataFileName)
	if err := store.Save(path); err != nil {
		return "", services.Wrap(services.ErrPersistence, string(StageSaveMetadata), "write checkpoint", path, err)
	}
	d.logger.Info("saved utterance metadata", logging.String("path", path))
	return path, nil
}

// postprocess assembles the dubbed audio track and, for video inputs,
// remuxes it with the original video stream.
func (d *Dubber) postprocess(ctx context.Context) (string, error) {
	ctx = services.WithStage(ctx, string(StagePostprocess))

	store, err := d.ensureSynthesized(ctx)
	if err != nil {
		return "", err
	}
	if _, err := d.ensureMetadataSaved(ctx); err != nil {
		return "", err
	}
	artifacts := d.results.preprocessing

	baseName := strings.TrimSuffix(filepath.Base(d.cfg.InputPath), filepath.Ext(d.cfg.InputPath))

	dubbedAudio := filepath.Join(artifacts.WorkDir, baseName+"_dubbed.wav")
	if err := d.media.AssembleDubbedTrack(ctx, artifacts.BackgroundPath, store.Records(), dubbedAudio); err != nil {
		return "", err
	}

	if !artifacts.IsVideo {
		return dubbedAudio, nil
	}

	output := filepath.Join(artifacts.WorkDir, baseName+"_dubbed"+filepath.Ext(d.cfg.InputPath))
	if err := d.media.MergeAudioVideo(ctx, artifacts.VideoPath, dubbedAudio, output); err != nil {
		return "", err
	}
	return output, nil
}

// cleanup removes intermediate files; only the dubbed output survives.
// Failures are collected and logged, never escalated: the final artifact
// already exists by the time cleanup runs, and one stubborn file must not
// stop the sweep or fail the run.
func (d *Dubber) cleanup(_ context.Context) {
	artifacts := d.results.preprocessing
	if artifacts == nil {
		return
	}

	keep := map[string]struct{}{
		d.results.outputPath: {},
	}

	entries, err := os.ReadDir(artifacts.WorkDir)
	if err != nil {
		d.logger.Warn("could not list working directory for cleanup",
			logging.String("workdir", artifacts.WorkDir),
			logging.Error(err))
		return
	}

	var failures []error
	for _, entry := range entries {
		path := filepath.Join(artifacts.WorkDir, entry.Name())
		if _, keepIt := keep[path]; keepIt {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			failures = append(failures, fmt.Errorf("remove %q: %w", path, err))
		}
	}
	if len(failures) > 0 {
		d.logger.Warn("some intermediate files were not removed",
			logging.Int("failed", len(failures)),
			logging.Int("entries", len(entries)),
			logging.Error(errors.Join(failures...)))
		return
	}

	d.logger.Info("cleaned intermediate files", logging.String("workdir", artifacts.WorkDir))
}
