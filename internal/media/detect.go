package media

import (
	"fmt"
	"path/filepath"
	"strings"

	"overdub/internal/services"
)

// Accepted input containers. Video inputs are demuxed and get their dubbed
// audio remuxed back in; audio inputs are dubbed in place.
var (
	videoExtensions = map[string]struct{}{
		".mp4": {},
	}
	audioExtensions = map[string]struct{}{
		".wav":  {},
		".mp3":  {},
		".flac": {},
	}
)

// IsVideo reports whether path names a video input. Extensions outside the
// accepted set are rejected with services.ErrUnsupportedFormat.
func IsVideo(path string) (bool, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := videoExtensions[ext]; ok {
		return true, nil
	}
	if _, ok := audioExtensions[ext]; ok {
		return false, nil
	}
	return false, services.Wrap(
		services.ErrUnsupportedFormat, "preprocess", "inspect input",
		fmt.Sprintf("unsupported file format %q (accepted: %s)", ext, AcceptedFormats()), nil)
}

// AcceptedFormats returns the accepted extensions as a display string.
func AcceptedFormats() string {
	return ".mp4, .wav, .mp3, .flac"
}
