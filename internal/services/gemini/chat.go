package gemini

import (
	"context"

	"google.golang.org/genai"

	"overdub/internal/remoteasset"
	"overdub/internal/services"
)

// Session is a multi-turn conversation with client-held history. Diarization
// uses it so a correction prompt can reference the earlier exchange.
type Session struct {
	client  *Client
	system  string
	history []*genai.Content
}

// NewSession starts a conversation with the given system instructions.
func (c *Client) NewSession(systemInstructions string) *Session {
	return &Session{client: c, system: systemInstructions}
}

// Send appends a user turn (optionally referencing an uploaded media asset)
// and returns the model's reply. Both turns join the session history.
func (s *Session) Send(ctx context.Context, asset *remoteasset.Handle, text string) (string, error) {
	parts := make([]*genai.Part, 0, 2)
	if asset != nil {
		parts = append(parts, genai.NewPartFromURI(asset.URI, asset.MIMEType))
	}
	parts = append(parts, genai.NewPartFromText(text))
	userTurn := &genai.Content{Role: genai.RoleUser, Parts: parts}

	contents := append(append([]*genai.Content{}, s.history...), userTurn)
	resp, err := s.client.api.Models.GenerateContent(ctx, s.client.cfg.Model, contents, s.client.generationConfig(s.system))
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "transcribe", "chat turn", "generate content", err)
	}
	reply, err := responseText(resp)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "transcribe", "chat turn", "read response", err)
	}

	s.history = append(s.history, userTurn, &genai.Content{
		Role:  genai.RoleModel,
		Parts: []*genai.Part{genai.NewPartFromText(reply)},
	})
	return reply, nil
}

// Rewind drops the last user/model exchange so a follow-up prompt can retry
// from the prior state. A no-op on an empty session.
func (s *Session) Rewind() {
	if len(s.history) >= 2 {
		s.history = s.history[:len(s.history)-2]
	}
}
