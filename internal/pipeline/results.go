package pipeline

import (
	"context"
	"fmt"

	"overdub/internal/logging"
	"overdub/internal/services"
	"overdub/internal/utterance"
)

// results caches each stage's output so a stage runs at most once per run.
// Slots are independent: a stage consults only the slots of its
// predecessors and fills its own.
type results struct {
	preprocessing *PreprocessingArtifacts
	metadata      *utterance.Store
	translated    bool
	synthesized   bool
	metadataSaved bool
	metadataPath  string
	outputPath    string
	cleaned       bool
}

// StageOutput returns the cached output for a stage, running it (and its
// predecessors) first if needed.
func (d *Dubber) StageOutput(ctx context.Context, stage Stage) (any, error) {
	switch stage {
	case StagePreprocess:
		return d.ensurePreprocessed(ctx)
	case StageTranscribe:
		return d.ensureTranscribed(ctx)
	case StageTranslate:
		return d.ensureTranslated(ctx)
	case StageSynthesize:
		return d.ensureSynthesized(ctx)
	case StageSaveMetadata:
		return d.ensureMetadataSaved(ctx)
	case StagePostprocess:
		return d.ensurePostprocessed(ctx)
	case StageCleanup:
		if err := d.runCleanup(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, string(stage), "stage output",
			fmt.Sprintf("unknown stage %q", stage), nil)
	}
}

func (d *Dubber) ensurePreprocessed(ctx context.Context) (*PreprocessingArtifacts, error) {
	if d.results.preprocessing != nil {
		return d.results.preprocessing, nil
	}
	artifacts, err := d.preprocess(ctx)
	if err != nil {
		return nil, err
	}
	d.results.preprocessing = artifacts
	d.progress.tick(StagePreprocess)
	return artifacts, nil
}

func (d *Dubber) ensureTranscribed(ctx context.Context) (*utterance.Store, error) {
	if d.results.metadata != nil {
		return d.results.metadata, nil
	}
	store, err := d.transcribe(ctx)
	if err != nil {
		return nil, err
	}
	d.results.metadata = store
	d.progress.tick(StageTranscribe)
	return store, nil
}

func (d *Dubber) ensureTranslated(ctx context.Context) (*utterance.Store, error) {
	if d.results.translated {
		return d.results.metadata, nil
	}
	store, err := d.translate(ctx)
	if err != nil {
		return nil, err
	}
	d.results.metadata = store
	d.results.translated = true
	d.progress.tick(StageTranslate)
	return store, nil
}

func (d *Dubber) ensureSynthesized(ctx context.Context) (*utterance.Store, error) {
	if d.results.synthesized {
		return d.results.metadata, nil
	}
	store, err := d.synthesize(ctx)
	if err != nil {
		return nil, err
	}
	d.results.synthesized = true
	d.progress.tick(StageSynthesize)
	return store, nil
}

func (d *Dubber) ensureMetadataSaved(ctx context.Context) (string, error) {
	if d.results.metadataSaved {
		return d.results.metadataPath, nil
	}
	path, err := d.saveMetadata(ctx)
	if err != nil {
		if services.Fatal(err) {
			return "", err
		}
		// Losing the checkpoint is worth a warning, not a failed run.
		d.logger.Warn("could not save utterance metadata", logging.Error(err))
		path = ""
	}
	d.results.metadataSaved = true
	d.results.metadataPath = path
	return path, nil
}

func (d *Dubber) ensurePostprocessed(ctx context.Context) (string, error) {
	if d.results.outputPath != "" {
		return d.results.outputPath, nil
	}
	output, err := d.postprocess(ctx)
	if err != nil {
		return "", err
	}
	d.results.outputPath = output
	d.progress.tick(StagePostprocess)
	return output, nil
}

func (d *Dubber) runCleanup(ctx context.Context) error {
	if d.results.cleaned {
		return nil
	}
	if _, err := d.ensurePostprocessed(ctx); err != nil {
		return err
	}
	d.cleanup(ctx)
	d.results.cleaned = true
	d.progress.tick(StageCleanup)
	return nil
}
