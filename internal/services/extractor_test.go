package services

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSupportedExtension(t *testing.T) {
	extractor := NewTextExtractorService()

	for _, name := range []string{"resume.pdf", "resume.PDF", "resume.txt", "notes.md"} {
		if !extractor.SupportedExtension(name) {
			t.Errorf("SupportedExtension(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"resume.docx", "resume.png", "resume", "archive.zip"} {
		if extractor.SupportedExtension(name) {
			t.Errorf("SupportedExtension(%q) = true, want false", name)
		}
	}
}

func TestExtractTextFromTxt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	content := "  John Doe  \n\n   Backend Engineer\n\n\nGo, Postgres, Kubernetes   \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	extractor := NewTextExtractorService()
	text, err := extractor.ExtractText(path)
	if err != nil {
		t.Fatalf("ExtractText returned error: %v", err)
	}

	want := "John Doe\nBackend Engineer\nGo, Postgres, Kubernetes"
	if text != want {
		t.Errorf("ExtractText = %q, want %q", text, want)
	}
}

func TestExtractTextEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(path, []byte("   \n \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	extractor := NewTextExtractorService()
	if _, err := extractor.ExtractText(path); err == nil {
		t.Error("ExtractText accepted a file with no text content")
	}
}

func TestExtractTextUnsupportedType(t *testing.T) {
	extractor := NewTextExtractorService()
	if _, err := extractor.ExtractText("resume.docx"); err == nil {
		t.Error("ExtractText accepted an unsupported file type")
	}
}

func TestCleanText(t *testing.T) {
	in := "\n\n  line one  \n\n\n line two\n   \nline three  \n"
	want := "line one\nline two\nline three"
	if got := CleanText(in); got != want {
		t.Errorf("CleanText = %q, want %q", got, want)
	}

	if got := CleanText("   \n\n  "); got != "" {
		t.Errorf("CleanText(blank) = %q, want empty", got)
	}
}
