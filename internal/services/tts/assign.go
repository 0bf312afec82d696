package tts

import (
	"strings"

	"overdub/internal/utterance"
)

// VoiceDefaults maps genders and the catch-all case to prebuilt voice names.
type VoiceDefaults struct {
	Male    string
	Female  string
	Default string
}

// AssignVoices maps each speaker to a voice. Preferred voices are handed out
// to speakers in order of first appearance in the records; any remaining
// speakers fall back to a gender-based default.
func AssignVoices(records []utterance.Record, preferred []string, defaults VoiceDefaults) map[string]string {
	assignments := make(map[string]string)
	order := make([]string, 0)
	for _, record := range records {
		if record.SpeakerID == "" {
			continue
		}
		if _, seen := assignments[record.SpeakerID]; seen {
			continue
		}
		assignments[record.SpeakerID] = voiceForGender(record.Gender, defaults)
		order = append(order, record.SpeakerID)
	}
	for i, speaker := range order {
		if i >= len(preferred) {
			break
		}
		if voice := strings.TrimSpace(preferred[i]); voice != "" {
			assignments[speaker] = voice
		}
	}
	return assignments
}

func voiceForGender(gender string, defaults VoiceDefaults) string {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "male", "m":
		return defaults.Male
	case "female", "f":
		return defaults.Female
	default:
		return defaults.Default
	}
}
