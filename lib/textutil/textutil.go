package textutil

import (
	_ "embed"
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases and strips all whitespace so that names can be
// compared loosely.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.TrimSpace(name)
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// tokens are maximal runs of two or more letters, digits or underscores
var tokenRegex = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize lowercases text and splits it into word tokens, single
// character words are dropped.
func Tokenize(text string) []string {
	return tokenRegex.FindAllString(strings.ToLower(text), -1)
}

//go:embed stopwords_english.txt
var englishStopWords string

// EnglishStopWords returns the standard english stop word list, in its
// canonical order.
func EnglishStopWords() []string {
	var out []string
	for _, line := range strings.Split(englishStopWords, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// WordSet builds a lookup set out of words, normalizing each one.
func WordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[NormalizeName(w)] = struct{}{}
	}
	return set
}
