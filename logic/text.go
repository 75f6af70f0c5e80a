package logic

import (
	"strings"
	"unicode"
)

// Control words steer the query rather than describe content. They never
// become content keywords.
var controlWords = map[string]bool{
	"male": true, "female": true, "man": true, "woman": true, "men": true, "women": true,
	"only": true, "also": true, "except": true, "in": true, "on": true, "from": true,
	"who": true, "show": true, "me": true, "ny": true, "nyc": true, "la": true,
	"creators": true, "creator": true, "users": true, "influencers": true, "people": true,
	"limit": true, "add": true, "remove": true, "more": true, "than": true, "over": true,
	"under": true, "less": true, "engagement": true, "followers": true, "rate": true,
	"min": true, "max": true,
	"tiktok": true, "youtube": true, "instagram": true,
	"and": true, "or": true, "not": true, "the": true, "with": true, "for": true,
}

// Multi-word control phrases, removed before single-word filtering.
var controlPhrases = [][]string{
	{"new", "york"},
	{"los", "angeles"},
}

// tokenize splits text on whitespace and commas, lowercases, and trims
// surrounding punctuation. Percent signs are kept.
func tokenize(text string) []string {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".!?;:'\"-()[]{}+"))
		if cleaned != "" {
			tokens = append(tokens, cleaned)
		}
	}
	return tokens
}

// hasPhrase reports whether phrase occurs as consecutive whole tokens.
func hasPhrase(tokens []string, phrase ...string) bool {
	if len(phrase) == 0 || len(phrase) > len(tokens) {
		return false
	}
outer:
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		for j, word := range phrase {
			if tokens[i+j] != word {
				continue outer
			}
		}
		return true
	}
	return false
}

// stripPhrases removes every occurrence of the control phrases.
func stripPhrases(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		skipped := false
		for _, phrase := range controlPhrases {
			if hasPhrase(tokens[i:min(i+len(phrase), len(tokens))], phrase...) {
				i += len(phrase)
				skipped = true
				break
			}
		}
		if !skipped {
			out = append(out, tokens[i])
			i++
		}
	}
	return out
}

// ContentKeywords returns the content-bearing words of topics: control
// words and phrases, numbers, single characters and any token containing
// "%" or "k" are dropped. Duplicates are removed; order is kept.
func ContentKeywords(topics []string) []string {
	tokens := stripPhrases(tokenize(strings.Join(topics, " ")))
	seen := make(map[string]bool, len(tokens))
	keywords := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if seen[tok] || !isContentWord(tok) {
			continue
		}
		seen[tok] = true
		keywords = append(keywords, tok)
	}
	return keywords
}

func isContentWord(tok string) bool {
	switch {
	case len(tok) <= 1:
		return false
	case controlWords[tok]:
		return false
	case strings.Contains(tok, "%"):
		return false
	case isNumber(tok):
		return false
	case strings.Contains(tok, "k"):
		return false
	}
	return true
}

// isNumber reports whether s is a non-negative decimal number.
func isNumber(s string) bool {
	if s == "" {
		return false
	}
	dot := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' && !dot && i > 0 && i < len(s)-1:
			dot = true
		default:
			return false
		}
	}
	return true
}
