package ingest

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`(\+?1[-.\s]?)?(\(?[0-9]{3}\)?[-.\s]?)?[0-9]{3}[-.\s]?[0-9]{4}`)
)

const maxPhoneLength = 15

// ContactFinder pulls contact details out of raw resume text with regex
// heuristics. It is a fallback for when the model response left the fields
// empty, so every result is best-effort.
type ContactFinder struct{}

func NewContactFinder() ContactFinder {
	return ContactFinder{}
}

// Find returns the candidate name, email and phone it could locate. The name
// heuristic is the trimmed first line of the document; a phone number only
// counts when it carries a country or area prefix, bare seven-digit runs are
// too noisy.
func (ContactFinder) Find(text string) (name, email, phone string) {
	if m := emailPattern.FindString(text); m != "" {
		email = m
	}

	for _, m := range phonePattern.FindAllStringSubmatch(text, -1) {
		if m[1] == "" && m[2] == "" {
			continue
		}
		phone = m[0]
		if len(phone) > maxPhoneLength {
			phone = phone[:maxPhoneLength]
		}
		break
	}

	if i := strings.IndexByte(text, '\n'); i >= 0 {
		name = strings.TrimSpace(text[:i])
	} else {
		name = strings.TrimSpace(text)
	}

	return name, email, phone
}
