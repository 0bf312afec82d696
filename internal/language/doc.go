// Package language normalizes BCP-47 tags and renders human-readable names.
//
// Dubbing configuration names languages by tag ("en-US", "es-ES"); prompts to
// the generative model want English names ("European Spanish") and the
// transcription tool wants bare two-letter codes. All conversions live here.
package language
