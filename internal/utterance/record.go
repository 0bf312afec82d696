package utterance

import "fmt"

// Record is one detected speech segment. AudioPath, Start and End are set
// during preprocessing; every other field is filled by a later stage and
// stays empty until that stage runs. Fields are append-only: a stage never
// clears what an earlier stage wrote.
type Record struct {
	AudioPath      string  `json:"path"`
	Start          float64 `json:"start"`
	End            float64 `json:"end"`
	Text           string  `json:"text,omitempty"`
	SpeakerID      string  `json:"speaker_id,omitempty"`
	Gender         string  `json:"gender,omitempty"`
	TranslatedText string  `json:"translated_text,omitempty"`
	AssignedVoice  string  `json:"assigned_voice,omitempty"`
	DubbedPath     string  `json:"dubbed_path,omitempty"`
}

// SpeakerInfo is one (speaker, gender) attribution tuple, ordered by the
// speaker's first appearance among the utterances.
type SpeakerInfo struct {
	ID     string `json:"speaker_id"`
	Gender string `json:"gender"`
}

// Duration returns the segment length in seconds.
func (r Record) Duration() float64 {
	return r.End - r.Start
}

// Validate checks the timing invariant 0 <= start < end.
func (r Record) Validate() error {
	if r.Start < 0 {
		return fmt.Errorf("utterance start %.3f must not be negative", r.Start)
	}
	if r.End <= r.Start {
		return fmt.Errorf("utterance end %.3f must be after start %.3f", r.End, r.Start)
	}
	return nil
}
