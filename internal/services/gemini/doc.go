// Package gemini wraps the Google Gemini SDK for the generative pieces of a
// dubbing run: media uploads, multi-turn diarization chat, and script
// translation.
package gemini
