package ingest

import (
	"strings"
	"testing"
)

const sampleResume = `John Smith
john.smith@example.com | (555) 123-4567

Professional Summary
Senior backend engineer with 8 years of experience building distributed systems.

Work Experience
Acme Corp, 2018-2024. Led a team of five engineers.

Education
B.S. Computer Science, State University

Skills
Go, PostgreSQL, Redis, Kubernetes
`

func TestExtractTxt(t *testing.T) {
	e := NewExtractor()

	text, err := e.Extract("resume.txt", []byte(sampleResume))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != sampleResume {
		t.Fatal("txt extraction altered content")
	}
}

func TestExtractUnsupportedType(t *testing.T) {
	e := NewExtractor()

	if _, err := e.Extract("resume.png", []byte("x")); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
	if _, err := e.Extract("README", []byte("x")); err == nil {
		t.Fatal("expected error for missing extension")
	}
}

func TestIsPlausibleResume(t *testing.T) {
	e := NewExtractor()

	if !e.IsPlausibleResume(sampleResume) {
		t.Error("real resume rejected")
	}

	if e.IsPlausibleResume("short") {
		t.Error("short text accepted")
	}

	// Long enough but no resume vocabulary.
	long := strings.Repeat("the quick brown fox jumps over the lazy dog ", 10)
	if e.IsPlausibleResume(long) {
		t.Error("keyword-free text accepted")
	}

	// One keyword is not enough.
	oneKeyword := "education " + strings.Repeat("lorem ipsum dolor sit amet ", 10)
	if e.IsPlausibleResume(oneKeyword) {
		t.Error("single-keyword text accepted")
	}
}

func TestContactFinder(t *testing.T) {
	f := NewContactFinder()

	name, email, phone := f.Find(sampleResume)
	if name != "John Smith" {
		t.Errorf("name: got %q", name)
	}
	if email != "john.smith@example.com" {
		t.Errorf("email: got %q", email)
	}
	if !strings.HasPrefix(phone, "(555) 123") {
		t.Errorf("phone: got %q", phone)
	}
}

func TestContactFinderIgnoresBareDigitRuns(t *testing.T) {
	f := NewContactFinder()

	// A seven-digit run with no area code should not be mistaken for a phone.
	_, _, phone := f.Find("Jane Doe\nemployee id 123-4567\n")
	if phone != "" {
		t.Errorf("got %q, want empty", phone)
	}
}

func TestContactFinderEmptyText(t *testing.T) {
	f := NewContactFinder()

	name, email, phone := f.Find("")
	if name != "" || email != "" || phone != "" {
		t.Errorf("got %q/%q/%q, want all empty", name, email, phone)
	}
}
