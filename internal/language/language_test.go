package language

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"en-US", "en-US"},
		{"EN-us", "en-US"},
		{" es-ES ", "es-ES"},
		{"pt-br", "pt-BR"},
		{"de", "de"},
	}
	for _, tc := range cases {
		got, err := Normalize(tc.input)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", tc.input, err)
		}
		if got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "   ", "not a tag"} {
		if _, err := Normalize(input); err == nil {
			t.Errorf("Normalize(%q) should fail", input)
		}
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"en-US", "American English"},
		{"es-ES", "European Spanish"},
		{"de", "German"},
		{"", "Unknown"},
	}
	for _, tc := range cases {
		if got := DisplayName(tc.input); got != tc.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestISO1(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"en-US", "en"},
		{"pt-BR", "pt"},
		{"de", "de"},
		{"garbage tag", ""},
	}
	for _, tc := range cases {
		if got := ISO1(tc.input); got != tc.want {
			t.Errorf("ISO1(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
