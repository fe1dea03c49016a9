package tokenizer

import (
	"slices"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", " \t\n ", nil},
		{"lowercases", "Machine Learning", []string{"machine", "learning"}},
		{"dedupes keeping first", "AI and ai AND Ai", []string{"ai", "and"}},
		{"whitespace runs", "deep\t\tlearning \n models", []string{"deep", "learning", "models"}},
		{"keeps punctuation", "AI. AI, (AI)", []string{"ai.", "ai,", "(ai)"}},
		{"unicode", "Émotion ÉMOTION", []string{"émotion"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"COGNITION":        "cognition",
		"  Padded ":        "  padded ",
		"machine learning": "machine learning",
		"":                 "",
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func BenchmarkTokenize(b *testing.B) {
	text := strings.Repeat("Distributed search engines process queries across multiple shards ", 20)
	b.ReportAllocs()
	b.SetBytes(int64(len(text)))
	for i := 0; i < b.N; i++ {
		_ = Tokenize(text)
	}
}
