// Package skills detects taxonomy skills in free text and compares resume skills against job skills.
package skills

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/taxonomy"
)

// Boundary guards for pattern edges that are not word characters (C++, .NET, C#).
// RE2 has no look-around, so "not preceded/followed by a word character" is spelled as a group.
const (
	leadingGuard  = `(?:^|\W)`
	trailingGuard = `(?:\W|$)`
)

// Pattern compiles the matcher form of a taxonomy pattern: case-insensitive, bounded on both sides,
// with internal whitespace matching one or more whitespace characters. Returns nil for an empty pattern.
func Pattern(pattern string) *regexp.Regexp {
	words := strings.Fields(pattern)
	if len(words) == 0 {
		return nil
	}

	escaped := make([]string, len(words))
	for i, w := range words {
		escaped[i] = regexp.QuoteMeta(w)
	}

	body := strings.Join(escaped, `\s+`)
	return regexp.MustCompile(`(?i)` + leading(words[0]) + body + trailing(words[len(words)-1]))
}

// ExactPattern compiles a case-insensitive, bounded literal match of pattern, spaces included.
// Returns nil for an empty pattern.
func ExactPattern(pattern string) *regexp.Regexp {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil
	}
	return regexp.MustCompile(`(?i)` + leading(pattern) + regexp.QuoteMeta(pattern) + trailing(pattern))
}

func leading(s string) string {
	if isWordByte(s[0]) {
		return `\b`
	}
	return leadingGuard
}

func trailing(s string) string {
	if isWordByte(s[len(s)-1]) {
		return `\b`
	}
	return trailingGuard
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// MatchSkill reports whether any of the skill's patterns appears in text.
// Patterns are tried in order (name, then aliases) and empty ones are skipped.
func MatchSkill(skill taxonomy.Skill, text string) bool {
	for _, p := range skill.Patterns() {
		re := Pattern(p)
		if re != nil && re.MatchString(text) {
			return true
		}
	}
	return false
}

// compiledSkill holds the precompiled patterns of one taxonomy skill
type compiledSkill struct {
	name     string
	patterns []*regexp.Regexp
}

func (c *compiledSkill) matches(text string) bool {
	for _, re := range c.patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Extractor finds canonical skill names in text.
// Patterns are compiled once; an Extractor is safe for concurrent use.
type Extractor struct {
	skills []compiledSkill
}

// NewExtractor compiles every pattern in the taxonomy.
func NewExtractor(tax *taxonomy.Taxonomy) *Extractor {
	e := &Extractor{skills: make([]compiledSkill, 0, tax.Len())}
	for _, s := range tax.Skills() {
		cs := compiledSkill{name: s.Name}
		for _, p := range s.Patterns() {
			if re := Pattern(p); re != nil {
				cs.patterns = append(cs.patterns, re)
			}
		}
		e.skills = append(e.skills, cs)
	}
	return e
}

// Extract returns the sorted canonical names of every skill present in text.
func (e *Extractor) Extract(text string) []string {
	found := make([]string, 0)
	if strings.TrimSpace(text) == "" {
		return found
	}

	for i := range e.skills {
		if e.skills[i].matches(text) {
			found = append(found, e.skills[i].name)
		}
	}

	sort.Strings(found)
	return found
}
