package utterance

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"overdub/internal/services"
)

// MetadataFileName is the well-known checkpoint file written into the run's
// output directory.
const MetadataFileName = "utterance_metadata.json"

// Store holds the ordered utterance records for one pipeline run. Order is
// chronological appearance in the source audio and is preserved end-to-end;
// downstream merge and reassembly logic depends on it. A Store is owned by a
// single run and is never shared.
type Store struct {
	records []Record
}

// NewStore builds a store from preprocessed records, validating timing.
func NewStore(records []Record) (*Store, error) {
	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	s := &Store{records: make([]Record, len(records))}
	copy(s.records, records)
	return s, nil
}

// Len returns the number of utterances.
func (s *Store) Len() int {
	return len(s.records)
}

// Records returns a snapshot copy of the current records.
func (s *Store) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// SetTexts attaches original-language transcripts positionally.
func (s *Store) SetTexts(texts []string) error {
	if len(texts) != len(s.records) {
		return fmt.Errorf("transcript count %d does not match utterance count %d", len(texts), len(s.records))
	}
	for i, text := range texts {
		s.records[i].Text = text
	}
	return nil
}

// AddSpeakerInfo attaches speaker attribution positionally. The lengths must
// match exactly; a mismatch corrupts every downstream assignment, so it is
// fatal rather than a best-effort zip.
func (s *Store) AddSpeakerInfo(info []SpeakerInfo) error {
	if len(info) != len(s.records) {
		return services.Wrap(
			services.ErrAttribution, "transcribe", "add speaker info",
			fmt.Sprintf("utterance count %d does not match speaker info count %d", len(s.records), len(info)),
			nil)
	}
	for i, speaker := range info {
		s.records[i].SpeakerID = speaker.ID
		s.records[i].Gender = speaker.Gender
	}
	return nil
}

// SetTranslations attaches translated text positionally.
func (s *Store) SetTranslations(texts []string) error {
	if len(texts) != len(s.records) {
		return fmt.Errorf("translation count %d does not match utterance count %d", len(texts), len(s.records))
	}
	for i, text := range texts {
		s.records[i].TranslatedText = text
	}
	return nil
}

// SetVoice records the assigned synthesis voice for utterance i.
func (s *Store) SetVoice(i int, voice string) error {
	if i < 0 || i >= len(s.records) {
		return fmt.Errorf("utterance index %d out of range", i)
	}
	s.records[i].AssignedVoice = voice
	return nil
}

// SetDubbedPath records the synthesized audio chunk for utterance i.
func (s *Store) SetDubbedPath(i int, path string) error {
	if i < 0 || i >= len(s.records) {
		return fmt.Errorf("utterance index %d out of range", i)
	}
	s.records[i].DubbedPath = path
	return nil
}

// MergeAdjacent merges consecutive utterances spoken by the same speaker when
// the silence between them is below threshold seconds. Text fields are joined
// with a space; timing spans the merged range. Called after translation so
// synthesized speech covers natural phrases instead of clipped fragments.
func (s *Store) MergeAdjacent(threshold float64) {
	if len(s.records) < 2 {
		return
	}
	merged := make([]Record, 0, len(s.records))
	current := s.records[0]
	for _, next := range s.records[1:] {
		gap := next.Start - current.End
		if next.SpeakerID == current.SpeakerID && gap <= threshold {
			current.End = next.End
			current.Text = joinText(current.Text, next.Text)
			current.TranslatedText = joinText(current.TranslatedText, next.TranslatedText)
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)
	s.records = merged
}

func joinText(a, b string) string {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}

// Save writes the records as JSON to path.
func (s *Store) Save(path string) error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode utterance metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write utterance metadata: %w", err)
	}
	return nil
}

// Load reads a previously saved metadata checkpoint.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read utterance metadata: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode utterance metadata: %w", err)
	}
	return &Store{records: records}, nil
}
