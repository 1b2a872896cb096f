package ingestion

import (
	"regexp"
	"strings"
)

var (
	newlineRuns    = regexp.MustCompile(`\n+`)
	whitespaceRuns = regexp.MustCompile(`[\s\v\p{Z}]+`)
	// word characters, whitespace and . , - + @ / # survive
	disallowedChars = regexp.MustCompile(`[^\p{L}\p{N}_\s\v\p{Z}.,\-+@/#]`)
)

// CleanText flattens extracted text to a single line: whitespace runs become one space and
// characters other than letters, digits, underscore and . , - + @ / # are removed.
func CleanText(text string) string {
	text = newlineRuns.ReplaceAllString(text, "\n")
	text = whitespaceRuns.ReplaceAllString(text, " ")
	text = disallowedChars.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
