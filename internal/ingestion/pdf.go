package ingestion

import (
	"bytes"
	"io"

	"github.com/ledongthuc/pdf"
)

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		if text != "" {
			buf.WriteString(text)
			buf.WriteString("\n")
		}
	}

	if buf.Len() == 0 {
		// some producers only expose text through the document-level stream
		rs, err := r.GetPlainText()
		if err != nil {
			return "", err
		}
		if _, err := io.Copy(&buf, rs); err != nil {
			return "", err
		}
	}

	return buf.String(), nil
}
