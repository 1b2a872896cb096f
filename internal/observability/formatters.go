// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 8
)

// Printer handles formatted output for verbose mode. Colour is used only when out is a terminal.
type Printer struct {
	out   io.Writer
	title lipgloss.Style
	good  lipgloss.Style
	fair  lipgloss.Style
	poor  lipgloss.Style
	muted lipgloss.Style
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:   out,
		title: r.NewStyle().Bold(true),
		good:  r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		fair:  r.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		poor:  r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		muted: r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// scoreStyle picks a colour band for a 0-100 score
func (p *Printer) scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 80:
		return p.good
	case score >= 60:
		return p.fair
	default:
		return p.poor
	}
}

// printBox prints a formatted box with a title and content. Lines are padded before styling
// so escape codes never break alignment.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string, style lipgloss.Style) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", style.Render(pad(title, inner)))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// writeList appends up to limit items, then a count of the rest
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s (%d):\n", heading, len(items))
	for _, item := range items[:min(len(items), limit)] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
}

// PrintATSScore outputs the composite score, label and component breakdown.
func (p *Printer) PrintATSScore(score *types.ATSScore) {
	if score == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Score:    %.2f / 100\n", score.Score)
	fmt.Fprintf(&sb, "Label:    %s\n\n", score.Label)

	b := score.Breakdown
	for _, c := range []struct {
		name string
		c    types.ComponentScore
	}{
		{"Keyword match", b.KeywordMatch},
		{"Skill coverage", b.SkillCoverage},
		{"Section structure", b.SectionStructure},
		{"Achievements", b.Achievements},
	} {
		fmt.Fprintf(&sb, "  %-18s %6.2f  (weight %d%%)\n", c.name, c.c.Score, c.c.Weight)
	}

	if len(score.MissingKeywords) > 0 {
		sb.WriteString("\n")
		writeList(&sb, "Missing keywords", score.MissingKeywords, maxItemsToShow)
	}

	p.printBox(fmt.Sprintf("ATS SCORE  %.2f  %s", score.Score, score.Label),
		strings.TrimSuffix(sb.String(), "\n"), p.scoreStyle(score.Score))
}

// PrintSkillGap outputs matched, missing and extra skills.
func (p *Printer) PrintSkillGap(gap *types.SkillGapResult) {
	if gap == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Job skills:  %d   matched: %d   missing: %d\n",
		gap.TotalJobSkills, gap.TotalMatched, gap.TotalMissing)
	fmt.Fprintf(&sb, "Coverage:    %.2f%%\n", gap.SkillMatchPercent)

	for _, section := range []struct {
		heading string
		items   []string
	}{
		{"Matched", gap.MatchedSkills},
		{"Missing", gap.MissingSkills},
		{"Extra", gap.ExtraSkills},
	} {
		if len(section.items) > 0 {
			sb.WriteString("\n")
			writeList(&sb, section.heading, section.items, maxItemsToShow)
		}
	}

	p.printBox("SKILL GAP", strings.TrimSuffix(sb.String(), "\n"), p.scoreStyle(gap.SkillMatchPercent))
}

// PrintMatch outputs the semantic score with the most and least relevant resume sections.
func (p *Printer) PrintMatch(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Similarity: %.2f%%  (%s)\n", result.Score, result.Label)
	fmt.Fprintf(&sb, "Chunks:     %d\n", len(result.AllChunks))

	writeChunks := func(heading string, chunks []types.ChunkScore) {
		if len(chunks) == 0 {
			return
		}
		fmt.Fprintf(&sb, "\n%s:\n", heading)
		for _, c := range chunks {
			fmt.Fprintf(&sb, "  %6.2f  %s\n", c.Score, c.Text)
		}
	}
	writeChunks("Most relevant", result.MostRelevantSections)
	writeChunks("Least relevant", result.LeastRelevantSections)

	p.printBox("SEMANTIC MATCH", strings.TrimSuffix(sb.String(), "\n"), p.scoreStyle(result.Score))
}

// PrintKeywords outputs extracted keywords.
func (p *Printer) PrintKeywords(keywords []string) {
	if len(keywords) == 0 {
		p.printBox("KEYWORDS", "No keywords found", p.muted)
		return
	}
	var sb strings.Builder
	writeList(&sb, "Keywords", keywords, len(keywords))
	p.printBox("KEYWORDS", strings.TrimSuffix(sb.String(), "\n"), p.title)
}

// PrintReport outputs every section of a full analysis.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintReport(report *types.AnalysisReport) {
	if report == nil {
		return
	}

	if report.Source != "" || report.ID != "" {
		header := fmt.Sprintf("%s  (%d words)", report.Source, report.WordCount)
		if report.ID != "" {
			header += "  id " + report.ID
		}
		fmt.Fprintln(p.out, p.muted.Render(header))
	}

	p.PrintATSScore(&types.ATSScore{
		Score:           report.ATSScore,
		Label:           report.ATSLabel,
		Breakdown:       report.ATSBreakdown,
		MatchedKeywords: report.MatchedKeywords,
		MissingKeywords: report.MissingKeywords,
	})
	p.PrintSkillGap(&types.SkillGapResult{
		MatchedSkills:     report.MatchedSkills,
		MissingSkills:     report.MissingSkills,
		ExtraSkills:       report.ExtraSkills,
		SkillMatchPercent: report.SkillMatchPercent,
		TotalJobSkills:    report.TotalJobSkills,
		TotalMatched:      report.TotalMatched,
		TotalMissing:      report.TotalMissing,
	})
	p.PrintMatch(report.Semantic)
}

// PrintAnalyses outputs a history listing, one line per analysis.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintAnalyses(analyses []types.AnalysisSummary) {
	if len(analyses) == 0 {
		fmt.Fprintln(p.out, p.muted.Render("No analyses recorded"))
		return
	}
	for _, a := range analyses {
		score := p.scoreStyle(a.ATSScore).Render(fmt.Sprintf("%6.2f", a.ATSScore))
		fmt.Fprintf(p.out, "%s  %s  %-14s  %s  %s\n",
			a.CreatedAt.Local().Format("2006-01-02 15:04"), score, a.ATSLabel, a.ID, a.Source)
	}
}

// PrintProgress outputs one pipeline progress line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(event pipeline.ProgressEvent) {
	fmt.Fprintf(p.out, "%s %s\n", p.muted.Render("["+event.Category+"/"+event.Step+"]"), event.Message)
}
