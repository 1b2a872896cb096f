// Package keywords extracts technical keywords from job description text.
//
// Extraction runs a fixed, ordered list of candidate generators over the text and
// passes the concatenated candidates through a single filter stage that drops
// blacklisted, short, numeric and duplicate tokens and caps the result.
package keywords

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/taxonomy"
)

// MaxKeywords is the most keywords Extract returns
const MaxKeywords = 40

// minKeywordLength is the shortest accepted keyword, in characters
const minKeywordLength = 2

var (
	camelCasePattern = regexp.MustCompile(`\b(?:[A-Z][a-z]+){2,}\w*\b`)
	suffixPattern    = regexp.MustCompile(`(?i)\b\w+(?:\.js|\.py|API|ML|AI)\b`)
	acronymPattern   = regexp.MustCompile(`\b[A-Z]{2,5}\b`)
)

// Generator produces raw keyword candidates from text, in order of appearance
type Generator interface {
	Name() string
	Candidates(text string) []string
}

// regexGenerator emits every non-overlapping match of a pattern
type regexGenerator struct {
	name    string
	pattern *regexp.Regexp
}

func (g regexGenerator) Name() string { return g.name }

func (g regexGenerator) Candidates(text string) []string {
	return g.pattern.FindAllString(text, -1)
}

// CamelCase matches two or more glued capitalized fragments plus trailing word characters (e.g. SpringBoot, GitHubActions).
func CamelCase() Generator {
	return regexGenerator{name: "camel_case", pattern: camelCasePattern}
}

// TechSuffix matches tokens ending in .js, .py, API, ML or AI, case-insensitively.
func TechSuffix() Generator {
	return regexGenerator{name: "tech_suffix", pattern: suffixPattern}
}

// Acronym matches bare upper-case tokens of 2 to 5 letters.
func Acronym() Generator {
	return regexGenerator{name: "acronym", pattern: acronymPattern}
}

// taxonomyGenerator emits each taxonomy name or alias found in the text, in taxonomy order
type taxonomyGenerator struct {
	patterns []string
	regexps  []*regexp.Regexp
}

// TaxonomyTerms matches every name and alias in the taxonomy as a bounded, case-insensitive literal.
// Hits are reported with the taxonomy's casing, not the casing found in the text.
func TaxonomyTerms(tax *taxonomy.Taxonomy) Generator {
	g := &taxonomyGenerator{}
	for _, p := range tax.Patterns() {
		if re := skills.ExactPattern(p); re != nil {
			g.patterns = append(g.patterns, p)
			g.regexps = append(g.regexps, re)
		}
	}
	return g
}

func (g *taxonomyGenerator) Name() string { return "taxonomy" }

func (g *taxonomyGenerator) Candidates(text string) []string {
	var hits []string
	for i, re := range g.regexps {
		if re.MatchString(text) {
			hits = append(hits, g.patterns[i])
		}
	}
	return hits
}

// Extractor runs generators in order and filters their combined output.
// It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	generators []Generator
}

// NewExtractor returns the standard extractor: taxonomy terms, CamelCase, tech suffixes, acronyms.
func NewExtractor(tax *taxonomy.Taxonomy) *Extractor {
	return NewExtractorWithGenerators(TaxonomyTerms(tax), CamelCase(), TechSuffix(), Acronym())
}

// NewExtractorWithGenerators builds an extractor from a custom generator list.
func NewExtractorWithGenerators(generators ...Generator) *Extractor {
	return &Extractor{generators: generators}
}

// Extract returns up to MaxKeywords keywords from text in first-seen order.
// Empty input, or input with no candidates, yields an empty slice.
func (e *Extractor) Extract(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	var candidates []string
	for _, g := range e.generators {
		candidates = append(candidates, g.Candidates(text)...)
	}

	return Filter(candidates)
}

// Filter applies the keyword rules to raw candidates in order: trim, drop blacklisted,
// drop shorter than two characters, drop all-digit, drop case-insensitive repeats.
// Accepting stops at MaxKeywords.
func Filter(candidates []string) []string {
	result := make([]string, 0)
	seen := make(map[string]bool)

	for _, c := range candidates {
		kw := strings.TrimSpace(c)
		key := lower(kw)

		if !blacklist[key] &&
			len([]rune(kw)) >= minKeywordLength &&
			!isDigits(kw) &&
			!seen[key] {
			seen[key] = true
			result = append(result, kw)
		}
		if len(result) >= MaxKeywords {
			break
		}
	}

	return result
}

func lower(s string) string {
	return strings.ToLower(s)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
