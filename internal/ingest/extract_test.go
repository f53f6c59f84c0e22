package ingest

import (
	"errors"
	"strings"
	"testing"
)

func TestExtractText_PlainText(t *testing.T) {
	text, err := ExtractText([]byte("hello world"), "notes.txt")
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if text != "hello world" {
		t.Errorf("ExtractText() = %q, want %q", text, "hello world")
	}
}

func TestExtractText_Markdown(t *testing.T) {
	md := "# Leave Policy\n\nEmployees get **14 days** of leave.\n\n- Apply early\n- Get approval\n"
	text, err := ExtractText([]byte(md), "policy.md")
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}

	for _, want := range []string{"Leave Policy", "14 days", "Apply early", "Get approval"} {
		if !strings.Contains(text, want) {
			t.Errorf("extracted markdown missing %q, got %q", want, text)
		}
	}
	if strings.Contains(text, "#") || strings.Contains(text, "**") {
		t.Errorf("extracted markdown still contains formatting: %q", text)
	}
}

func TestExtractText_ExtensionCase(t *testing.T) {
	text, err := ExtractText([]byte("upper"), "README.TXT")
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if text != "upper" {
		t.Errorf("ExtractText() = %q, want %q", text, "upper")
	}
}

func TestExtractText_UnsupportedType(t *testing.T) {
	tests := []string{"malware.exe", "archive.zip", "noextension", "image.png"}
	for _, filename := range tests {
		t.Run(filename, func(t *testing.T) {
			_, err := ExtractText([]byte("data"), filename)
			if !errors.Is(err, ErrUnsupportedFileType) {
				t.Errorf("ExtractText(%q) error = %v, want ErrUnsupportedFileType", filename, err)
			}
		})
	}
}

func TestExtractText_CorruptPDF(t *testing.T) {
	_, err := ExtractText([]byte("not a real pdf"), "broken.pdf")
	if err == nil {
		t.Fatal("ExtractText() on corrupt pdf should fail")
	}
}

func TestExtractText_CorruptDocx(t *testing.T) {
	_, err := ExtractText([]byte("not a real docx"), "broken.docx")
	if err == nil {
		t.Fatal("ExtractText() on corrupt docx should fail")
	}
}
