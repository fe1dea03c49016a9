// Package tokenizer turns study text into index terms. Terms are the
// lowercased whitespace-separated words of the input; punctuation is kept
// and no stemming or stop-word removal is applied, so "AI." and "ai" are
// different terms.
package tokenizer

import "strings"

// Tokenize lowercases text, splits it on runs of Unicode whitespace and
// returns each distinct term once, in order of first occurrence.
func Tokenize(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(words))
	terms := words[:0]
	for _, word := range words {
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		terms = append(terms, word)
	}
	return terms
}

// Normalize maps a query keyword onto the term space. Only case is folded:
// surrounding or inner whitespace is preserved, so a multi-word keyword
// never matches a term.
func Normalize(keyword string) string {
	return strings.ToLower(keyword)
}
