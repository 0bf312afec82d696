// Package demucs wraps the Demucs source separation tool. Splitting the
// input into vocal and background stems lets dubbing replace speech while
// music and effects survive untouched.
package demucs
