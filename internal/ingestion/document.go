// Package ingestion turns uploaded resumes and job postings into clean plain text.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// File types
const (
	FileTypePDF      = "pdf"
	FileTypeDOCX     = "docx"
	FileTypeText     = "txt"
	FileTypeMarkdown = "md"
)

// Messages reported in Result.Error
const (
	MsgUnsupported   = "Unsupported file type. Please upload PDF or DOCX only."
	MsgNoText        = "Could not extract text. File might be scanned or image-based."
	msgFailedToParse = "Failed to parse document: "
)

// minExtractedChars is the least text, in characters after trimming, a parsable document must yield
const minExtractedChars = 50

// Result is the outcome of parsing a document. When Success is false only Error is set.
type Result struct {
	Success   bool   `json:"success"`
	FileType  string `json:"file_type,omitempty"`
	RawText   string `json:"raw_text,omitempty"`
	CleanText string `json:"clean_text,omitempty"`
	WordCount int    `json:"word_count,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Err returns the failure as a *ParseError, or nil on success.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	return &ParseError{Message: r.Error}
}

// ParseError carries a failed parse's user-facing message.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

type extractor func(data []byte) (string, error)

var extractors = map[string]extractor{
	".pdf":  extractPDF,
	".docx": extractDOCX,
	".txt":  extractPlain,
	".md":   extractPlain,
}

// Uploadable reports whether filename has an extension accepted for resume uploads (PDF or DOCX).
func Uploadable(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".pdf" || ext == ".docx"
}

// ParseDocument extracts and cleans the text of a PDF, DOCX, plain text or Markdown document.
// Failures are reported in the result, never as a panic.
func ParseDocument(data []byte, filename string) (result Result) {
	ext := strings.ToLower(filepath.Ext(filename))
	extract, ok := extractors[ext]
	if !ok {
		return failure(MsgUnsupported)
	}

	// the PDF and DOCX readers panic on some malformed files
	defer func() {
		if r := recover(); r != nil {
			result = failure(fmt.Sprintf("%s%v", msgFailedToParse, r))
		}
	}()

	raw, err := extract(data)
	if err != nil {
		return failure(msgFailedToParse + err.Error())
	}
	if utf8.RuneCountInString(strings.TrimSpace(raw)) < minExtractedChars {
		return failure(MsgNoText)
	}

	clean := CleanText(raw)
	return Result{
		Success:   true,
		FileType:  strings.TrimPrefix(ext, "."),
		RawText:   raw,
		CleanText: clean,
		WordCount: len(strings.Fields(clean)),
	}
}

// ParseFile reads path and parses it. Only a read failure is returned as an error.
func ParseFile(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, fmt.Errorf("file not found: %w", err)
		}
		return Result{}, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseDocument(data, filepath.Base(path)), nil
}

func failure(msg string) Result {
	return Result{Success: false, Error: msg}
}

func extractPlain(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("text is not valid UTF-8")
	}
	return string(data), nil
}
