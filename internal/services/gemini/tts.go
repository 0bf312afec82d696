package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"overdub/internal/services"
)

// Synthesize renders text as speech with the given prebuilt voice, using a
// TTS-capable model. The result is raw 16-bit mono PCM at 24kHz.
func (c *Client) Synthesize(ctx context.Context, model, voice, text string) ([]byte, error) {
	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{genai.NewPartFromText(text)},
	}}
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	}
	resp, err := c.api.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "synthesize", "text to speech", "generate audio", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, services.Wrap(services.ErrExternalTool, "synthesize", "text to speech", "empty response", nil)
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data, nil
		}
	}
	return nil, services.Wrap(services.ErrExternalTool, "synthesize", "text to speech",
		fmt.Sprintf("no audio data for voice %q", voice), nil)
}
