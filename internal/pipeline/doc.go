// Package pipeline orchestrates a dubbing run: preprocess, transcribe,
// translate, synthesize, save metadata, postprocess, and optional cleanup.
//
// Every stage runs at most once per run; its output is cached on the Dubber
// and reused when later stages (or StageOutput callers) ask for it again.
// All failures are fatal except the metadata checkpoint write, which only
// logs a warning.
package pipeline
