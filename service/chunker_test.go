package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTextEmpty(t *testing.T) {
	assert.Nil(t, SplitText("", 500, 50))
	assert.Nil(t, SplitText("   \n\n  ", 500, 50))
}

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short text", 500, 50)
	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0])
}

func TestSplitTextRespectsChunkSize(t *testing.T) {
	text := strings.Repeat("Some sentence about nothing in particular. ", 60)
	chunks := SplitText(text, 500, 50)

	require.Greater(t, len(chunks), 1)
	for i, chunk := range chunks {
		assert.LessOrEqualf(t, len(chunk), 500, "chunk %d exceeds size", i)
		assert.NotEmptyf(t, chunk, "chunk %d is empty", i)
	}
}

func TestSplitTextPrefersSentenceBoundary(t *testing.T) {
	text := strings.Repeat("First sentence here. Second sentence follows. ", 30)
	chunks := SplitText(text, 200, 20)

	for i, chunk := range chunks[:len(chunks)-1] {
		last := chunk[len(chunk)-1]
		assert.Containsf(t, ".?!", string(last), "chunk %d should end at a sentence boundary, got %q", i, chunk)
	}
}

func TestSplitTextPrefersParagraphBoundary(t *testing.T) {
	para := strings.Repeat("word ", 30) // ~150 chars, no sentence ends
	text := para + "\n\n" + para + "\n\n" + para

	chunks := SplitText(text, 200, 0)
	require.Greater(t, len(chunks), 1)
	assert.Equal(t, strings.TrimSpace(para), chunks[0])
}

func TestSplitTextDeterministic(t *testing.T) {
	text := strings.Repeat("Deterministic chunking is required for stable IDs. ", 40)

	first := SplitText(text, 500, 50)
	second := SplitText(text, 500, 50)
	assert.Equal(t, first, second)
}

func TestSplitTextOverlap(t *testing.T) {
	text := strings.Repeat("abcdefghij ", 100)
	chunks := SplitText(text, 100, 30)

	require.Greater(t, len(chunks), 1)
	// The tail of each chunk reappears at the head of the next.
	for i := 0; i < len(chunks)-1; i++ {
		tail := chunks[i][len(chunks[i])-10:]
		assert.Containsf(t, chunks[i+1], strings.TrimSpace(tail), "chunk %d should overlap chunk %d", i+1, i)
	}
}

func TestSplitTextDegenerateParams(t *testing.T) {
	text := strings.Repeat("x", 2000)

	// No boundaries at all: hard cuts, still no empty chunks, still terminates.
	chunks := SplitText(text, 500, 600)
	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.NotEmpty(t, chunk)
	}

	chunks = SplitText(text, 0, -5)
	require.NotEmpty(t, chunks)
}
