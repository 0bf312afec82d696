package demucs

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"overdub/internal/services"
)

func TestSeparateBuildsCommandAndStemPaths(t *testing.T) {
	svc := NewService("")
	var gotName string
	var gotArgs []string
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	})

	stems, err := svc.Separate(context.Background(), "/work/audio.wav", "/work/stems")
	if err != nil {
		t.Fatalf("Separate: %v", err)
	}
	if gotName != Command {
		t.Fatalf("unexpected command %q", gotName)
	}
	joined := strings.Join(gotArgs, " ")
	for _, want := range []string{"--two-stems vocals", "-n htdemucs", "-o /work/stems", "/work/audio.wav"} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %s", want, joined)
		}
	}

	wantVocals := filepath.Join("/work/stems", "htdemucs", "audio", "vocals.wav")
	wantBackground := filepath.Join("/work/stems", "htdemucs", "audio", "no_vocals.wav")
	if stems.Vocals != wantVocals {
		t.Errorf("vocals = %q, want %q", stems.Vocals, wantVocals)
	}
	if stems.Background != wantBackground {
		t.Errorf("background = %q, want %q", stems.Background, wantBackground)
	}
}

func TestSeparateWrapsFailure(t *testing.T) {
	svc := NewService("htdemucs")
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return errors.New("exit status 1")
	})
	_, err := svc.Separate(context.Background(), "/work/audio.wav", "/work/stems")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
}

func TestSeparateRequiresSource(t *testing.T) {
	svc := NewService("")
	_, err := svc.Separate(context.Background(), "", "/work/stems")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}
