package main

import (
	"strings"
	"testing"
)

func TestRenderStatusLine(t *testing.T) {
	line := renderStatusLine("FFmpeg", statusOK, "Demuxing", false)
	requireContains(t, line, "FFmpeg:")
	requireContains(t, line, "[OK] Demuxing")
	if strings.Contains(line, ansiGreen) {
		t.Fatal("plain rendering must not contain ANSI codes")
	}

	colored := renderStatusLine("Demucs", statusWarn, "not found", true)
	requireContains(t, colored, ansiYellow)
	requireContains(t, colored, ansiReset)
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable(
		[]string{"Setting", "Value"},
		[][]string{{"Speakers", "2"}, {"only-one-cell"}},
		1)
	requireContains(t, out, "Speakers")
	requireContains(t, out, "only-one-cell")
}
