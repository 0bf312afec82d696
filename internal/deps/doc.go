// Package deps checks that the external tools a dubbing run shells out to
// are installed before any work starts.
package deps
