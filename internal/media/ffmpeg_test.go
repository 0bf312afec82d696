package media

import (
	"context"
	"errors"
	"strings"
	"testing"

	"overdub/internal/services"
	"overdub/internal/utterance"
)

func TestExtractAudioArgs(t *testing.T) {
	args := buildExtractAudioArgs("in.mp4", "out.wav")
	joined := strings.Join(args, " ")
	for _, want := range []string{"-i in.mp4", "-vn", "-ac 2", "-ar 44100", "pcm_s16le", "out.wav"} {
		if !strings.Contains(joined, want) {
			t.Errorf("extract audio args missing %q: %s", want, joined)
		}
	}
}

func TestExtractVideoArgs(t *testing.T) {
	joined := strings.Join(buildExtractVideoArgs("in.mp4", "video.mp4"), " ")
	for _, want := range []string{"-an", "-c:v copy", "video.mp4"} {
		if !strings.Contains(joined, want) {
			t.Errorf("extract video args missing %q: %s", want, joined)
		}
	}
}

func TestCutChunkArgs(t *testing.T) {
	joined := strings.Join(buildCutChunkArgs("audio.wav", 1.25, 3.5, "chunk.wav"), " ")
	for _, want := range []string{"-ss 1.250", "-to 3.500", "-i audio.wav", "chunk.wav"} {
		if !strings.Contains(joined, want) {
			t.Errorf("cut chunk args missing %q: %s", want, joined)
		}
	}
}

func TestCutChunkRejectsInvalidWindow(t *testing.T) {
	p := NewProcessor("")
	err := p.CutChunk(context.Background(), "audio.wav", 5, 5, "chunk.wav")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestAssembleArgsPlacesChunksByStartTime(t *testing.T) {
	records := []utterance.Record{
		{Start: 4.5, End: 6, DubbedPath: "late.wav"},
		{Start: 1.2, End: 3, DubbedPath: "early.wav"},
		{Start: 7, End: 8, Text: "no dubbed chunk yet"},
	}
	args, err := buildAssembleArgs("background.wav", records, "dubbed.wav")
	if err != nil {
		t.Fatalf("buildAssembleArgs: %v", err)
	}
	joined := strings.Join(args, " ")

	// Two dubbed inputs after the background, earliest first.
	if !strings.Contains(joined, "-i background.wav -i early.wav -i late.wav") {
		t.Fatalf("unexpected input ordering: %s", joined)
	}
	for _, want := range []string{"adelay=1200|1200", "adelay=4500|4500", "amix=inputs=3", "-map [out]"} {
		if !strings.Contains(joined, want) {
			t.Errorf("assemble args missing %q: %s", want, joined)
		}
	}
}

func TestAssembleArgsRequiresDubbedChunks(t *testing.T) {
	_, err := buildAssembleArgs("background.wav", []utterance.Record{{Start: 0, End: 1}}, "dubbed.wav")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestMergeArgs(t *testing.T) {
	joined := strings.Join(buildMergeArgs("video.mp4", "dubbed.wav", "final.mp4"), " ")
	for _, want := range []string{"-map 0:v", "-map 1:a", "-c:v copy", "-c:a aac", "final.mp4"} {
		if !strings.Contains(joined, want) {
			t.Errorf("merge args missing %q: %s", want, joined)
		}
	}
}

func TestProcessorUsesCommandRunner(t *testing.T) {
	p := NewProcessor("ffmpeg")
	var gotName string
	var gotArgs []string
	p.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	})

	if err := p.ExtractAudio(context.Background(), "in.mp4", "out.wav"); err != nil {
		t.Fatalf("ExtractAudio: %v", err)
	}
	if gotName != "ffmpeg" {
		t.Fatalf("unexpected binary: %q", gotName)
	}
	if len(gotArgs) == 0 || gotArgs[len(gotArgs)-1] != "out.wav" {
		t.Fatalf("unexpected args: %v", gotArgs)
	}
}

func TestProcessorWrapsRunnerFailure(t *testing.T) {
	p := NewProcessor("ffmpeg")
	p.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return errors.New("exit status 1")
	})

	err := p.ExtractAudio(context.Background(), "in.mp4", "out.wav")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
}
