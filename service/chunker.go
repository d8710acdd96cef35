package service

import (
	"strings"
	"unicode/utf8"
)

const (
	DefaultChunkSize   = 500
	DefaultOverlapSize = 50
)

// SplitText splits text into overlapping windows of at most chunkSize bytes,
// advancing by chunkSize-overlap per step. Cuts prefer paragraph breaks, then
// sentence ends, then spaces, before falling back to a hard cut. The output
// never contains an empty chunk and is deterministic for the same input and
// parameters, which keeps chunk IDs stable across runs.
func SplitText(text string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 2
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	pos := 0
	for pos < len(text) {
		end := pos + chunkSize
		if end >= len(text) {
			if chunk := strings.TrimSpace(text[pos:]); chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}

		cut := breakpoint(text, pos, end)
		if cut <= pos {
			cut = end
		}
		if chunk := strings.TrimSpace(text[pos:cut]); chunk != "" {
			chunks = append(chunks, chunk)
		}

		// Step back by the overlap, but always make forward progress.
		next := cut - overlap
		if next <= pos {
			next = cut
		}
		pos = next
	}
	return chunks
}

// breakpoint picks the cut position for a window ending at the hard limit end,
// preferring a paragraph break, then a sentence end, then a word boundary.
func breakpoint(text string, start, end int) int {
	window := text[start:end]
	if i := strings.LastIndex(window, "\n\n"); i > 0 {
		return start + i + 2
	}
	for i := end - 1; i > start; i-- {
		if text[i] == '.' || text[i] == '?' || text[i] == '!' {
			return i + 1
		}
	}
	if i := strings.LastIndexByte(window, ' '); i > 0 {
		return start + i
	}
	// Hard cut: back off to a rune start so multi-byte characters stay whole.
	for end > start && !utf8.RuneStart(text[end]) {
		end--
	}
	return end
}
