// Package diarize builds the speaker attribution prompt and parses the
// generative model's freeform reply into validated speaker tuples.
//
// Parsing is deliberately strict: the model is told to emit one
// "(speaker, gender)" tuple per line, and anything that deviates is a typed
// parse error rather than a skipped line, because a lost tuple silently
// shifts attribution for every following utterance.
package diarize
