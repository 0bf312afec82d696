// Command overdub is the CLI for the Overdub dubbing pipeline. It dubs a
// video or audio file into a target language, manages configuration, and
// reports on past runs and external tool availability.
package main
