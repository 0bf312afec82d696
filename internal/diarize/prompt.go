package diarize

import (
	"fmt"
	"strings"

	"overdub/internal/utterance"
)

const promptTemplate = `You got the audio attached to this conversation. The transcript of the
conversation is: %s. The number of speakers in the conversation is: %d.
For each of the %d utterances, tell me which speaker said it and whether
they sound male or female. Respond with exactly one line per utterance in
the form (speaker_N, male) or (speaker_N, female), in utterance order, and
nothing else.%s`

// BuildPrompt renders the diarization request sent alongside the uploaded
// media asset. One response line is requested per utterance so the reply can
// be attached positionally.
func BuildPrompt(records []utterance.Record, speakerCount int, instructions string) string {
	transcript := make([]string, 0, len(records))
	for _, rec := range records {
		transcript = append(transcript, fmt.Sprintf("[%.2f-%.2f] %s", rec.Start, rec.End, rec.Text))
	}
	extra := ""
	if trimmed := strings.TrimSpace(instructions); trimmed != "" {
		extra = " " + trimmed
	}
	return fmt.Sprintf(promptTemplate, strings.Join(transcript, " | "), speakerCount, len(records), extra)
}
