package ingest

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// minExtractedLength is the minimum stripped text length for a PDF or DOC
// extraction to count as successful. Shorter output almost always means the
// file is scanned images or garbage.
const minExtractedLength = 100

// Extractor turns uploaded resume documents into plain text. PDF extraction
// shells out to pdftotext (poppler-utils), DOC to antiword; DOCX is unpacked
// in-process.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the plain text of one document, dispatching on the file
// extension.
func (e *Extractor) Extract(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return string(data), nil
	case ".pdf":
		return extractPDF(data)
	case ".docx":
		return extractDOCX(data)
	case ".doc":
		return extractDOC(data)
	default:
		return "", fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}
}

// extractPDF writes the blob to a temp file and runs pdftotext over it.
func extractPDF(data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "resume-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	out, err := exec.Command("pdftotext", "-layout", tmp.Name(), "-").Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext (install poppler-utils): %w", err)
	}

	text := string(out)
	if len(strings.TrimSpace(text)) < minExtractedLength {
		return "", fmt.Errorf("extracted text too short, PDF likely has no text layer")
	}
	return text, nil
}

var docxTagPattern = regexp.MustCompile(`<[^>]*>`)

func extractDOCX(data []byte) (string, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer r.Close()

	content := r.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = docxTagPattern.ReplaceAllString(content, "")
	return html.UnescapeString(content), nil
}

func extractDOC(data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "resume-*.doc")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	out, err := exec.Command("antiword", tmp.Name()).Output()
	if err != nil {
		return "", fmt.Errorf("antiword: %w", err)
	}

	text := string(out)
	if len(strings.TrimSpace(text)) < minExtractedLength {
		return "", fmt.Errorf("extracted text too short")
	}
	return text, nil
}
