package utterance

import (
	"errors"
	"path/filepath"
	"testing"

	"overdub/internal/services"
)

func twoRecords() []Record {
	return []Record{
		{AudioPath: "chunk_0.wav", Start: 0.0, End: 1.0, Text: "Hello"},
		{AudioPath: "chunk_1.wav", Start: 1.0, End: 2.0, Text: "world"},
	}
}

func TestNewStoreValidatesTiming(t *testing.T) {
	if _, err := NewStore([]Record{{AudioPath: "a.wav", Start: 2.0, End: 1.0}}); err == nil {
		t.Fatal("expected timing validation error")
	}
	if _, err := NewStore([]Record{{AudioPath: "a.wav", Start: -0.5, End: 1.0}}); err == nil {
		t.Fatal("expected negative start to be rejected")
	}
}

func TestAddSpeakerInfoPositional(t *testing.T) {
	store, err := NewStore(twoRecords())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	info := []SpeakerInfo{{ID: "s1", Gender: "male"}, {ID: "s2", Gender: "female"}}
	if err := store.AddSpeakerInfo(info); err != nil {
		t.Fatalf("AddSpeakerInfo: %v", err)
	}

	records := store.Records()
	if records[0].SpeakerID != "s1" || records[0].Gender != "male" {
		t.Fatalf("first record attribution wrong: %+v", records[0])
	}
	if records[1].SpeakerID != "s2" || records[1].Gender != "female" {
		t.Fatalf("second record attribution wrong: %+v", records[1])
	}
	// Prior fields must be untouched.
	if records[0].Text != "Hello" || records[0].Start != 0.0 || records[0].End != 1.0 {
		t.Fatalf("earlier fields changed: %+v", records[0])
	}
}

func TestAddSpeakerInfoLengthMismatch(t *testing.T) {
	cases := []struct {
		name string
		info []SpeakerInfo
	}{
		{"shorter", []SpeakerInfo{{ID: "s1", Gender: "male"}}},
		{"longer", []SpeakerInfo{{ID: "s1", Gender: "male"}, {ID: "s2", Gender: "female"}, {ID: "s3", Gender: "male"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, err := NewStore(twoRecords())
			if err != nil {
				t.Fatalf("NewStore: %v", err)
			}
			err = store.AddSpeakerInfo(tc.info)
			if !errors.Is(err, services.ErrAttribution) {
				t.Fatalf("expected ErrAttribution, got %v", err)
			}
			// No partial attribution on failure.
			for _, rec := range store.Records() {
				if rec.SpeakerID != "" {
					t.Fatalf("record mutated despite mismatch: %+v", rec)
				}
			}
		})
	}
}

func TestMergeAdjacent(t *testing.T) {
	store, err := NewStore([]Record{
		{AudioPath: "c0.wav", Start: 0.0, End: 1.0},
		{AudioPath: "c1.wav", Start: 1.0005, End: 2.0},
		{AudioPath: "c2.wav", Start: 5.0, End: 6.0},
	})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.SetTexts([]string{"one", "two", "three"}); err != nil {
		t.Fatalf("SetTexts: %v", err)
	}
	if err := store.AddSpeakerInfo([]SpeakerInfo{
		{ID: "s1", Gender: "male"}, {ID: "s1", Gender: "male"}, {ID: "s1", Gender: "male"},
	}); err != nil {
		t.Fatalf("AddSpeakerInfo: %v", err)
	}
	if err := store.SetTranslations([]string{"uno", "dos", "tres"}); err != nil {
		t.Fatalf("SetTranslations: %v", err)
	}

	store.MergeAdjacent(0.001)

	records := store.Records()
	if len(records) != 2 {
		t.Fatalf("expected 2 records after merge, got %d", len(records))
	}
	first := records[0]
	if first.Start != 0.0 || first.End != 2.0 {
		t.Fatalf("merged span wrong: %+v", first)
	}
	if first.Text != "one two" || first.TranslatedText != "uno dos" {
		t.Fatalf("merged text wrong: %+v", first)
	}
	if records[1].Text != "three" {
		t.Fatalf("distant record should be untouched: %+v", records[1])
	}
}

func TestMergeAdjacentDifferentSpeakers(t *testing.T) {
	store, err := NewStore([]Record{
		{AudioPath: "c0.wav", Start: 0.0, End: 1.0},
		{AudioPath: "c1.wav", Start: 1.0, End: 2.0},
	})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.AddSpeakerInfo([]SpeakerInfo{
		{ID: "s1", Gender: "male"}, {ID: "s2", Gender: "female"},
	}); err != nil {
		t.Fatalf("AddSpeakerInfo: %v", err)
	}

	store.MergeAdjacent(1.0)
	if store.Len() != 2 {
		t.Fatalf("different speakers must not merge, got %d records", store.Len())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := NewStore(twoRecords())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.AddSpeakerInfo([]SpeakerInfo{
		{ID: "s1", Gender: "male"}, {ID: "s2", Gender: "female"},
	}); err != nil {
		t.Fatalf("AddSpeakerInfo: %v", err)
	}

	path := filepath.Join(t.TempDir(), MetadataFileName)
	if err := store.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Len() != store.Len() {
		t.Fatalf("round trip length mismatch: %d vs %d", loaded.Len(), store.Len())
	}
	got := loaded.Records()[1]
	if got.SpeakerID != "s2" || got.Gender != "female" || got.Text != "world" {
		t.Fatalf("round trip record mismatch: %+v", got)
	}
}

func TestSetVoiceAndDubbedPath(t *testing.T) {
	store, err := NewStore(twoRecords())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.SetVoice(0, "Kore"); err != nil {
		t.Fatalf("SetVoice: %v", err)
	}
	if err := store.SetDubbedPath(0, "dubbed_0.wav"); err != nil {
		t.Fatalf("SetDubbedPath: %v", err)
	}
	if err := store.SetVoice(5, "Puck"); err == nil {
		t.Fatal("expected out of range error")
	}
	rec := store.Records()[0]
	if rec.AssignedVoice != "Kore" || rec.DubbedPath != "dubbed_0.wav" {
		t.Fatalf("voice fields not set: %+v", rec)
	}
}
