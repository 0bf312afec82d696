package media

import (
	"errors"
	"testing"

	"overdub/internal/services"
)

func TestIsVideo(t *testing.T) {
	cases := []struct {
		path  string
		video bool
	}{
		{"movie.mp4", true},
		{"MOVIE.MP4", true},
		{"speech.wav", false},
		{"podcast.mp3", false},
		{"track.flac", false},
	}
	for _, tc := range cases {
		got, err := IsVideo(tc.path)
		if err != nil {
			t.Fatalf("IsVideo(%q): %v", tc.path, err)
		}
		if got != tc.video {
			t.Errorf("IsVideo(%q) = %v, want %v", tc.path, got, tc.video)
		}
	}
}

func TestIsVideoRejectsUnknownFormat(t *testing.T) {
	for _, path := range []string{"clip.mkv", "clip.avi", "notes.txt", "noext"} {
		_, err := IsVideo(path)
		if !errors.Is(err, services.ErrUnsupportedFormat) {
			t.Errorf("IsVideo(%q): expected ErrUnsupportedFormat, got %v", path, err)
		}
	}
}
