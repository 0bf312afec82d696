// Package services defines the shared error taxonomy and context annotations
// used across pipeline stages and external service clients.
//
// Stage code wraps collaborator failures with Wrap and one of the sentinel
// errors so the orchestrator and CLI can classify outcomes with errors.Is
// without inspecting message text. Concrete clients for the external AI
// services live in subpackages (gemini, tts, whisper, demucs).
package services
