package ingestion

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-matcher/internal/fetch"
)

// JobFromURL fetches a job posting and returns its cleaned description with metadata.
func JobFromURL(ctx context.Context, urlStr string, opts fetch.JobOptions) (string, *Metadata, error) {
	page, err := fetch.JobPosting(ctx, urlStr, opts)
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch job posting: %w", err)
	}

	clean := CleanText(page.Text)
	if clean == "" {
		return "", nil, fmt.Errorf("no job description text found at %s", urlStr)
	}

	meta := NewMetadata(clean, urlStr, "html")
	meta.Platform = string(page.Platform)
	return clean, meta, nil
}

// JobFromFile reads a job description from a text, Markdown, PDF or DOCX file.
func JobFromFile(path string) (string, *Metadata, error) {
	res, err := ParseFile(path)
	if err != nil {
		return "", nil, err
	}
	if !res.Success {
		return "", nil, res.Err()
	}
	return res.CleanText, NewMetadata(res.CleanText, path, res.FileType), nil
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
