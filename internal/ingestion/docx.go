package ingestion

import (
	"bytes"

	"code.sajari.com/docconv"
)

// extractDOCX returns the body text of a DOCX file along with its headers and footers.
func extractDOCX(data []byte) (string, error) {
	text, _, err := docconv.ConvertDocx(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	return text, nil
}
