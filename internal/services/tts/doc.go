// Package tts assigns voices to speakers and synthesizes translated
// utterances into per-utterance WAV chunks.
package tts
