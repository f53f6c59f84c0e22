package ingest

import (
	"regexp"
	"strings"
)

// sentencePattern matches a sentence-like unit: text up to terminal
// punctuation followed by whitespace or end of input.
var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+(?:\s+|$)`)

// Chunk splits text into ordered, sentence-aligned segments of at most
// chunkSize runes, where consecutive chunks share an overlap of up to overlap
// runes so context survives a cut. A single sentence longer than chunkSize is
// emitted as one oversized chunk; splitting mid-sentence would cost more
// retrieval quality than the size bound is worth. Empty input yields nil.
//
// The function is pure and deterministic.
func Chunk(text string, chunkSize, overlap int) []string {
	sentences := sentencePattern.FindAllString(text, -1)
	if len(sentences) == 0 {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		// No sentence boundaries at all: treat the whole text as one unit.
		sentences = []string{text}
	}

	var chunks []string
	var current []rune

	for _, sentence := range sentences {
		runes := []rune(sentence)
		if len(current)+len(runes) > chunkSize && len(current) > 0 {
			chunks = append(chunks, strings.TrimSpace(string(current)))

			// Seed the next buffer with the tail of the flushed one.
			tail := current
			if len(tail) > overlap {
				tail = tail[len(tail)-overlap:]
			}
			next := make([]rune, 0, len(tail)+len(runes))
			next = append(next, tail...)
			current = append(next, runes...)
		} else {
			current = append(current, runes...)
		}
	}

	if strings.TrimSpace(string(current)) != "" {
		chunks = append(chunks, strings.TrimSpace(string(current)))
	}

	return chunks
}
