package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"overdub/internal/diarize"
	"overdub/internal/logging"
	"overdub/internal/remoteasset"
	"overdub/internal/services/gemini"
	"overdub/internal/utterance"
)

const diarizationSystemInstructions = `You are a professional dubbing studio ` +
	`assistant. You watch source media and attribute every utterance in a ` +
	`transcript to a speaker and that speaker's gender. You answer in exactly ` +
	`the format requested, with no commentary.`

const diarizationFormatReminder = `Reply with exactly one "(speaker, gender)" ` +
	`tuple per line, one line per utterance, and nothing else.`

// GeminiAnalyzer attributes speakers by showing the source media to Gemini
// alongside the transcript.
type GeminiAnalyzer struct {
	client *gemini.Client
	poller *remoteasset.Poller
	logger *slog.Logger
}

// NewGeminiAnalyzer builds the analyzer around a Gemini client and an asset
// readiness poller.
func NewGeminiAnalyzer(client *gemini.Client, poller *remoteasset.Poller, logger *slog.Logger) *GeminiAnalyzer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &GeminiAnalyzer{client: client, poller: poller, logger: logger}
}

// AnalyzeSpeakers uploads the input media, waits for it to become active,
// and asks the model for one speaker tuple per utterance. One malformed
// reply earns a single correction turn before the run fails.
func (a *GeminiAnalyzer) AnalyzeSpeakers(ctx context.Context, inputPath string, records []utterance.Record, speakerCount int, instructions string) ([]utterance.SpeakerInfo, error) {
	handle, err := a.client.UploadFile(ctx, inputPath, mimeForPath(inputPath))
	if err != nil {
		return nil, err
	}
	handle, err = a.poller.WaitUntilActive(ctx, handle, a.client.FileStatus)
	if err != nil {
		return nil, err
	}

	session := a.client.NewSession(diarizationSystemInstructions)
	prompt := diarize.BuildPrompt(records, speakerCount, instructions)

	reply, err := session.Send(ctx, &handle, prompt)
	if err != nil {
		return nil, err
	}
	speakers, parseErr := diarize.ParseSpeakerResponse(reply)
	if parseErr == nil {
		return speakers, nil
	}

	// Exactly one retry, with the malformed exchange removed from history.
	a.logger.Warn("diarization response unparseable, retrying once", logging.Error(parseErr))
	session.Rewind()
	reply, err = session.Send(ctx, &handle, prompt+"\n\n"+diarizationFormatReminder)
	if err != nil {
		return nil, err
	}
	return diarize.ParseSpeakerResponse(reply)
}

func mimeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4":
		return "video/mp4"
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".flac":
		return "audio/flac"
	default:
		return "application/octet-stream"
	}
}
