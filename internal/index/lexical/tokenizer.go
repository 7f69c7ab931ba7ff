package lexical

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// tokenPattern matches runs of two or more word characters; punctuation and single characters are dropped.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize lower-cases text and splits it into terms, dropping English stop words.
func Tokenize(text string) []string {
	lower := strings.ToLower(norm.NFKC.String(text))
	raw := tokenPattern.FindAllString(lower, -1)
	out := raw[:0]
	for _, t := range raw {
		if _, stop := stopWords[t]; stop {
			continue
		}
		out = append(out, t)
	}
	return out
}
