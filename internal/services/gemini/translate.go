package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"overdub/internal/services"
)

// BreakToken separates utterances in the translation script. The model is
// asked to preserve it so the reply can be split back into one translation
// per utterance.
const BreakToken = "<BREAK>"

const translatePromptTemplate = `Translate the following script from %s to %s.
The script is a sequence of utterances separated by the token %s.
Return the translation as one utterance per input utterance, separated by the
same %s token, with no extra commentary.%s

Script:
%s`

// BuildScript joins utterance texts into a single translation script.
func BuildScript(texts []string) string {
	return strings.Join(texts, " "+BreakToken+" ")
}

// Translate sends a whole script for translation in one call.
// sourceLanguage and targetLanguage are human-readable names.
func (c *Client) Translate(ctx context.Context, script, sourceLanguage, targetLanguage, instructions, systemInstructions string) (string, error) {
	extra := ""
	if strings.TrimSpace(instructions) != "" {
		extra = "\n" + strings.TrimSpace(instructions)
	}
	prompt := fmt.Sprintf(translatePromptTemplate,
		sourceLanguage, targetLanguage, BreakToken, BreakToken, extra, script)

	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{genai.NewPartFromText(prompt)},
	}}
	resp, err := c.api.Models.GenerateContent(ctx, c.cfg.Model, contents, c.generationConfig(systemInstructions))
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "translate", "translate script", "generate content", err)
	}
	text, err := responseText(resp)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "translate", "translate script", "read response", err)
	}
	return text, nil
}

// SplitTranslation splits a translated script back into per-utterance texts.
// A count mismatch means translations can no longer be attributed to
// utterances, so it fails rather than guessing.
func SplitTranslation(translatedScript string, want int) ([]string, error) {
	raw := strings.Split(translatedScript, BreakToken)
	texts := make([]string, 0, len(raw))
	for _, chunk := range raw {
		texts = append(texts, strings.TrimSpace(chunk))
	}
	// A trailing break token produces one empty final chunk; tolerate it.
	if len(texts) == want+1 && texts[len(texts)-1] == "" {
		texts = texts[:want]
	}
	if len(texts) != want {
		return nil, services.Wrap(services.ErrParse, "translate", "split translation",
			fmt.Sprintf("expected %d translated utterances, got %d", want, len(texts)), nil)
	}
	return texts, nil
}
