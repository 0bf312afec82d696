package language

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Normalize parses a language tag and returns its canonical BCP-47 form,
// e.g. "EN-us" becomes "en-US". Unparseable input is an error rather than a
// silent passthrough so bad config surfaces before any model call.
func Normalize(tag string) (string, error) {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return "", fmt.Errorf("empty language tag")
	}
	parsed, err := language.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse language tag %q: %w", trimmed, err)
	}
	return parsed.String(), nil
}

// DisplayName returns the English name for a language tag ("es-ES" becomes
// "European Spanish"). Unrecognized tags come back uppercased so prompts and
// log lines still show something readable.
func DisplayName(tag string) string {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return "Unknown"
	}
	parsed, err := language.Parse(trimmed)
	if err != nil {
		return strings.ToUpper(trimmed)
	}
	if name := display.English.Tags().Name(parsed); name != "" {
		return name
	}
	return strings.ToUpper(trimmed)
}

// ISO1 returns the two-letter base code for a tag ("pt-BR" becomes "pt"),
// which is what the transcription tool expects. Empty when unparseable.
func ISO1(tag string) string {
	parsed, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return ""
	}
	base, _ := parsed.Base()
	return base.String()
}
