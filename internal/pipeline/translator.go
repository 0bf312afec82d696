package pipeline

import (
	"context"

	"overdub/internal/language"
	"overdub/internal/services/gemini"
)

const translationSystemInstructions = `You are a professional dubbing ` +
	`translator. You translate scripts faithfully, keeping register and tone, ` +
	`and you preserve every separator token in your output exactly.`

// GeminiTranslator translates utterance scripts through the Gemini API.
type GeminiTranslator struct {
	client *gemini.Client
}

// NewGeminiTranslator wraps a Gemini client for script translation.
func NewGeminiTranslator(client *gemini.Client) *GeminiTranslator {
	return &GeminiTranslator{client: client}
}

// TranslateUtterances translates texts in one call, preserving count and
// order so translations line up positionally with their utterances.
func (t *GeminiTranslator) TranslateUtterances(ctx context.Context, texts []string, sourceLanguage, targetLanguage, instructions string) ([]string, error) {
	script := gemini.BuildScript(texts)
	translated, err := t.client.Translate(ctx, script,
		language.DisplayName(sourceLanguage), language.DisplayName(targetLanguage),
		instructions, translationSystemInstructions)
	if err != nil {
		return nil, err
	}
	return gemini.SplitTranslation(translated, len(texts))
}
