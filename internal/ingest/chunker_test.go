package ingest

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
)

// buildSentences generates n sentences of roughly the given rune length.
func buildSentences(n, length int) []string {
	sentences := make([]string, 0, n)
	for i := 0; i < n; i++ {
		body := fmt.Sprintf("Sentence %02d ", i)
		for utf8.RuneCountInString(body) < length-2 {
			body += "a"
		}
		sentences = append(sentences, body+". ")
	}
	return sentences
}

func TestChunk_ShortTextSingleChunk(t *testing.T) {
	text := "First sentence here. Second sentence here. Third sentence here."
	chunks := Chunk(text, 800, 200)

	if len(chunks) != 1 {
		t.Fatalf("Chunk() returned %d chunks, want 1", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("Chunk() = %q, want %q", chunks[0], text)
	}
}

func TestChunk_EmptyInput(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty string", ""},
		{"whitespace only", "   \n\t  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Chunk(tt.text, 800, 200); got != nil {
				t.Errorf("Chunk(%q) = %v, want nil", tt.text, got)
			}
		})
	}
}

func TestChunk_NoSentenceBoundaries(t *testing.T) {
	text := "just words without terminal punctuation"
	chunks := Chunk(text, 800, 200)

	if len(chunks) != 1 {
		t.Fatalf("Chunk() returned %d chunks, want 1", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("Chunk() = %q, want %q", chunks[0], text)
	}
}

func TestChunk_SizeBound(t *testing.T) {
	text := strings.Join(buildSentences(40, 80), "")
	chunkSize, overlap := 200, 50

	chunks := Chunk(text, chunkSize, overlap)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if n := utf8.RuneCountInString(c); n > chunkSize {
			t.Errorf("chunk %d has %d runes, exceeds chunkSize %d", i, n, chunkSize)
		}
	}
}

func TestChunk_OversizedSentenceKeptWhole(t *testing.T) {
	long := strings.Repeat("a", 500) + "."
	chunks := Chunk(long, 100, 20)

	if len(chunks) != 1 {
		t.Fatalf("Chunk() returned %d chunks, want 1", len(chunks))
	}
	if utf8.RuneCountInString(chunks[0]) != 501 {
		t.Errorf("oversized sentence was split: got %d runes", utf8.RuneCountInString(chunks[0]))
	}
}

func TestChunk_Reconstruction(t *testing.T) {
	sentences := buildSentences(30, 60)
	text := strings.Join(sentences, "")

	chunks := Chunk(text, 250, 60)
	joined := strings.Join(chunks, " ")
	for i, s := range sentences {
		if !strings.Contains(joined, strings.TrimSpace(s)) {
			t.Errorf("sentence %d missing from chunk output", i)
		}
	}
}

func TestChunk_OverlapCarriesTail(t *testing.T) {
	// Sentences of ~20 runes with a 60-rune overlap: each new chunk must
	// start with content from the end of the previous one.
	sentences := buildSentences(20, 20)
	text := strings.Join(sentences, "")

	chunks := Chunk(text, 120, 60)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i := 1; i < len(chunks); i++ {
		prev, cur := chunks[i-1], chunks[i]
		// Last complete sentence of the previous chunk fits inside the
		// overlap window, so it must reappear in the current chunk.
		idx := strings.LastIndex(prev[:len(prev)-1], ".")
		lastSentence := strings.TrimSpace(prev[idx+1:])
		if !strings.Contains(cur, lastSentence) {
			t.Errorf("chunk %d does not carry overlap from chunk %d: %q not in %q", i, i-1, lastSentence, cur)
		}
	}
}

func TestChunk_Idempotence(t *testing.T) {
	text := "A short text. With two sentences."
	first := Chunk(text, 800, 200)
	if len(first) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(first))
	}
	second := Chunk(first[0], 800, 200)
	if len(second) != 1 || second[0] != first[0] {
		t.Errorf("re-chunking a short chunk changed it: %v", second)
	}
}

func TestChunk_Deterministic(t *testing.T) {
	text := strings.Join(buildSentences(15, 70), "")
	a := Chunk(text, 300, 80)
	b := Chunk(text, 300, 80)

	if len(a) != len(b) {
		t.Fatalf("chunk counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}
