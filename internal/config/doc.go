// Package config loads, normalizes, and validates Overdub's TOML
// configuration. Defaults come from Default, file values layer on top, and a
// handful of secrets (Gemini and Hugging Face tokens) may also arrive via
// environment variables. All path fields are tilde-expanded and absolute
// after Load returns.
package config
