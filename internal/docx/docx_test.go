package docx

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.docx")

	doc := &Document{}
	doc.AddParagraph("Trading Journal")
	doc.AddParagraph("Monday, January 5, 2026 09:30 AM EST")
	doc.AddParagraph("Bought SPX calls at the open.")

	if err := Write(path, doc); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(got.Paragraphs) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d", len(got.Paragraphs))
	}
	for i, want := range doc.Paragraphs {
		if got.Paragraphs[i] != want {
			t.Errorf("paragraph %d: expected %q, got %q", i, want, got.Paragraphs[i])
		}
	}
}

func TestRoundTripEscaping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.docx")

	text := `Risk < 1% & reward > 3% on the "breakout" setup`
	doc := &Document{}
	doc.AddParagraph(text)

	if err := Write(path, doc); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.Paragraphs[0] != text {
		t.Errorf("markup characters not preserved: %q", got.Paragraphs[0])
	}
}

func TestRoundTripEmbeddedNewlines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.docx")

	doc := &Document{}
	doc.AddParagraph("first line\nsecond line")

	if err := Write(path, doc); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.Paragraphs[0] != "first line\nsecond line" {
		t.Errorf("line break not preserved: %q", got.Paragraphs[0])
	}
}

func TestRoundTripUnicode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.docx")

	text := strings.Repeat("═", 60) + " 🟢"
	doc := &Document{}
	doc.AddParagraph(text)

	if err := Write(path, doc); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.Paragraphs[0] != text {
		t.Errorf("unicode not preserved: %q", got.Paragraphs[0])
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "missing.docx")); err == nil {
		t.Fatalf("expected an error reading a missing file")
	}
}
