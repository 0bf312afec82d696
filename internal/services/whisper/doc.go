// Package whisper wraps WhisperX (run via uvx) for speech segmentation and
// transcription. Its output becomes the initial set of utterance records.
package whisper
