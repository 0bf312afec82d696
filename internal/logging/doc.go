// Package logging wraps log/slog with the handlers and attribute helpers the
// rest of the tool uses.
//
// Two output formats exist: "console" renders compact single-line records for
// interactive use, "json" emits structured records for log collection. Field
// key constants keep attribute names consistent across packages, and
// WithContext derives run/stage fields from context annotations so stage code
// never threads identifiers by hand.
package logging
