// Package media detects input formats and wraps the ffmpeg operations used
// to take an input apart and put the dubbed result back together.
package media
