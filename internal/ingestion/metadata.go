package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Metadata describes where a piece of ingested text came from
type Metadata struct {
	Source    string `json:"source"`              // file path or URL
	FileType  string `json:"file_type,omitempty"` // pdf, docx, txt, md or html
	Platform  string `json:"platform,omitempty"`  // job board, for URLs
	Timestamp string `json:"timestamp"`           // RFC3339
	Hash      string `json:"hash"`                // SHA256 of the clean text
	WordCount int    `json:"word_count"`
}

// NewMetadata stamps clean text from source with the current time and its hash
func NewMetadata(clean, source, fileType string) *Metadata {
	return &Metadata{
		Source:    source,
		FileType:  fileType,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(clean),
		WordCount: wordCount(clean),
	}
}

func computeHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// WriteOutput writes <name>.cleaned.txt and <name>.meta.json into outDir
func WriteOutput(outDir, name, clean string, meta *Metadata) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	textPath := filepath.Join(outDir, name+".cleaned.txt")
	if err := os.WriteFile(textPath, []byte(clean), 0644); err != nil {
		return fmt.Errorf("failed to write cleaned text file: %w", err)
	}

	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	metaPath := filepath.Join(outDir, name+".meta.json")
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	return nil
}
