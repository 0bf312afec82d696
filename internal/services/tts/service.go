package tts

import (
	"context"
	"fmt"
	"path/filepath"

	"overdub/internal/services"
	"overdub/internal/utterance"
)

// SynthFunc renders text as raw PCM with the given voice.
type SynthFunc func(ctx context.Context, voice, text string) ([]byte, error)

// Config captures voice assignment settings for a dubbing run.
type Config struct {
	Defaults        VoiceDefaults
	PreferredVoices []string
}

// Service turns translated utterances into dubbed audio chunks.
type Service struct {
	cfg   Config
	synth SynthFunc
}

// NewService creates a dubbing service around a synthesis function.
func NewService(cfg Config, synth SynthFunc) *Service {
	return &Service{cfg: cfg, synth: synth}
}

// DubUtterances synthesizes every translated utterance into a WAV chunk
// under outputDir and records voice and chunk path on the store.
func (s *Service) DubUtterances(ctx context.Context, store *utterance.Store, outputDir string) error {
	if s.synth == nil {
		return services.Wrap(services.ErrConfiguration, "synthesize", "dub utterances", "no synthesizer configured", nil)
	}

	records := store.Records()
	assignments := AssignVoices(records, s.cfg.PreferredVoices, s.cfg.Defaults)

	for i, record := range records {
		voice := assignments[record.SpeakerID]
		if voice == "" {
			voice = s.cfg.Defaults.Default
		}
		if err := store.SetVoice(i, voice); err != nil {
			return err
		}

		pcm, err := s.synth(ctx, voice, record.TranslatedText)
		if err != nil {
			return services.Wrap(services.ErrExternalTool, "synthesize", "dub utterance",
				fmt.Sprintf("synthesize utterance %d with voice %q", i, voice), err)
		}

		chunkPath := filepath.Join(outputDir, fmt.Sprintf("dubbed_%04d.wav", i))
		if err := WriteWAV(chunkPath, pcm); err != nil {
			return services.Wrap(services.ErrExternalTool, "synthesize", "dub utterance",
				fmt.Sprintf("write chunk %q", chunkPath), err)
		}
		if err := store.SetDubbedPath(i, chunkPath); err != nil {
			return err
		}
	}
	return nil
}
