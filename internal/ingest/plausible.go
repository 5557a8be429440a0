package ingest

import "strings"

// resumeKeywords are the terms a real resume almost always contains at least
// two of.
var resumeKeywords = []string{
	"experience", "education", "skills", "work", "resume",
	"curriculum vitae", "employment", "university", "college",
	"degree", "certification", "project", "professional",
}

// minPlausibleLength is the minimum stripped text length for a document to
// even be considered.
const minPlausibleLength = 100

// IsPlausibleResume reports whether extracted text looks like a resume:
// enough content plus at least two resume keywords.
func (e *Extractor) IsPlausibleResume(text string) bool {
	if len(strings.TrimSpace(text)) < minPlausibleLength {
		return false
	}

	lower := strings.ToLower(text)
	found := 0
	for _, keyword := range resumeKeywords {
		if strings.Contains(lower, keyword) {
			found++
			if found >= 2 {
				return true
			}
		}
	}
	return false
}
