package features

import (
	"regexp"
	"strings"
)

var tokenizeRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokenize extracts Unicode word tokens (letters, digits and underscore).
func Tokenize(text string) []string {
	return tokenizeRe.FindAllString(text, -1)
}

// TokenNgrams returns the minN..maxN token n-grams, joined by a space.
func TokenNgrams(tokens []string, minN, maxN int) []string {
	var res []string
	for n := minN; n <= maxN && n <= len(tokens); n++ {
		for i := 0; i+n <= len(tokens); i++ {
			res = append(res, strings.Join(tokens[i:i+n], " "))
		}
	}
	return res
}

// CharNgrams returns the minN..maxN character n-grams of every token,
// each token padded with one space on both sides so that n-grams never
// cross a word boundary.
func CharNgrams(tokens []string, minN, maxN int) []string {
	var res []string
	for _, token := range tokens {
		runes := []rune(" " + token + " ")
		for n := minN; n <= maxN && n <= len(runes); n++ {
			for i := 0; i+n <= len(runes); i++ {
				res = append(res, string(runes[i:i+n]))
			}
		}
	}
	return res
}

var spaceRe = regexp.MustCompile(`\s+`)

// NormalizeSpace collapses runs of whitespace into one space and trims.
func NormalizeSpace(text string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}
