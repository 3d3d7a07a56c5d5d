package slug

import (
	"strings"
	"testing"
)

// TestGenerate exercises the slug generator with typical names, special
// characters, and edge cases.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Normal names ---
		{name: "simple two words", input: "Hello World", want: "hello-world"},
		{name: "name with year", input: "Hello World 2026", want: "hello-world-2026"},
		{name: "already lowercase", input: "already lowercase", want: "already-lowercase"},
		{name: "single word", input: "GoLang", want: "golang"},

		// --- Special characters ---
		{name: "ampersand and bang", input: "Tech & Science!", want: "tech-science"},
		{name: "punctuation marks", input: "Hello, World! How's it going?", want: "hello-world-hows-it-going"},
		{name: "parentheses", input: "Version (2.0) [Beta]", want: "version-20-beta"},
		{name: "existing hyphens kept", input: "state-of-the-art tools", want: "state-of-the-art-tools"},
		{name: "consecutive separators collapse", input: "a  --  b", want: "a-b"},

		// --- Whitespace ---
		{name: "leading and trailing spaces", input: "   padded title   ", want: "padded-title"},
		{name: "tabs become part of strip", input: "no\ttabs", want: "no-tabs"},

		// --- Edge cases ---
		{name: "empty string", input: "", want: ""},
		{name: "only punctuation", input: "!!! ??? ...", want: ""},
		{name: "digits only", input: "2026", want: "2026"},
		{name: "unicode stripped", input: "Café Déjà Vu", want: "caf-dj-vu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerateDeterministic verifies that generating a slug twice from
// the same input yields identical results.
func TestGenerateDeterministic(t *testing.T) {
	inputs := []string{"Tech & Science!", "Hello World", "  padded  "}
	for _, in := range inputs {
		if a, b := Generate(in), Generate(in); a != b {
			t.Errorf("Generate(%q) not deterministic: %q vs %q", in, a, b)
		}
	}
}

// TestGenerateIdempotent verifies that a slug run through the generator
// again is unchanged.
func TestGenerateIdempotent(t *testing.T) {
	inputs := []string{"Tech & Science!", "Version (2.0) [Beta]", "Hello World 2026"}
	for _, in := range inputs {
		once := Generate(in)
		twice := Generate(once)
		if once != twice {
			t.Errorf("Generate not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

// TestGenerateLengthCap verifies very long inputs are truncated at a
// hyphen boundary and stay within the cap.
func TestGenerateLengthCap(t *testing.T) {
	long := strings.Repeat("lengthy word ", 20)
	got := Generate(long)
	if len(got) > maxLen {
		t.Errorf("slug length %d exceeds cap %d", len(got), maxLen)
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("slug %q ends with a hyphen", got)
	}
	if strings.Contains(got, "--") {
		t.Errorf("slug %q contains consecutive hyphens", got)
	}
}
