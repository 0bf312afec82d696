package gemini

import (
	"errors"
	"strings"
	"testing"

	"overdub/internal/services"
)

func TestBuildScript(t *testing.T) {
	script := BuildScript([]string{"Hello.", "How are you?", "Goodbye."})
	want := "Hello. <BREAK> How are you? <BREAK> Goodbye."
	if script != want {
		t.Fatalf("BuildScript = %q, want %q", script, want)
	}
}

func TestSplitTranslation(t *testing.T) {
	texts, err := SplitTranslation("Hola. <BREAK> ¿Cómo estás? <BREAK> Adiós.", 3)
	if err != nil {
		t.Fatalf("SplitTranslation: %v", err)
	}
	want := []string{"Hola.", "¿Cómo estás?", "Adiós."}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("text %d = %q, want %q", i, texts[i], want[i])
		}
	}
}

func TestSplitTranslationToleratesTrailingBreak(t *testing.T) {
	texts, err := SplitTranslation("Uno. <BREAK> Dos. <BREAK>", 2)
	if err != nil {
		t.Fatalf("SplitTranslation: %v", err)
	}
	if len(texts) != 2 || texts[1] != "Dos." {
		t.Fatalf("unexpected texts: %v", texts)
	}
}

func TestSplitTranslationCountMismatch(t *testing.T) {
	_, err := SplitTranslation("Uno. <BREAK> Dos.", 3)
	if !errors.Is(err, services.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
	if !strings.Contains(err.Error(), "expected 3") {
		t.Fatalf("error should name the expected count: %v", err)
	}
}
