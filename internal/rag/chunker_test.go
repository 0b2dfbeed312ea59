package rag

import (
	"fmt"
	"strings"
	"testing"
)

func TestChunker_ChunkText(t *testing.T) {
	tests := []struct {
		name         string
		chunkSize    int
		chunkOverlap int
		text         string
		want         []string
	}{
		{
			name:         "empty text",
			chunkSize:    100,
			chunkOverlap: 20,
			text:         "",
			want:         []string{},
		},
		{
			name:         "whitespace only",
			chunkSize:    100,
			chunkOverlap: 20,
			text:         " \n\t ",
			want:         []string{},
		},
		{
			name:         "text smaller than chunk size",
			chunkSize:    100,
			chunkOverlap: 20,
			text:         "This is a short text",
			want:         []string{"This is a short text"},
		},
		{
			name:         "line breaks are normalized",
			chunkSize:    100,
			chunkOverlap: 0,
			text:         "Revenue grew\n30%\tin Q2",
			want:         []string{"Revenue grew 30% in Q2"},
		},
		{
			name:         "text exactly chunk size",
			chunkSize:    20,
			chunkOverlap: 5,
			text:         "This is exactly 20",
			want:         []string{"This is exactly 20"},
		},
		{
			name:         "text larger than chunk size, no overlap",
			chunkSize:    10,
			chunkOverlap: 0,
			text:         "one two three four five six",
			// "one two" = 7 chars, "three" = 5 chars, "four five" = 9 chars, "six" = 3 chars
			want: []string{"one two", "three", "four five", "six"},
		},
		{
			name:         "text larger than chunk size, with overlap",
			chunkSize:    15,
			chunkOverlap: 5,
			text:         "one two three four five six seven eight",
			// Overlap is capped so each chunk drops at least one word and the next word still fits
			want: []string{"one two three", "two three four", "four five six", "five six seven", "seven eight"},
		},
		{
			name:         "overlap capped below chunk length",
			chunkSize:    12,
			chunkOverlap: 3,
			text:         "aaaa bbbb cccc",
			want:         []string{"aaaa bbbb", "bbbb cccc"},
		},
		{
			name:         "overlap dropped when the next word cannot fit",
			chunkSize:    12,
			chunkOverlap: 3,
			text:         "aaaa bbbb cccccccc",
			want:         []string{"aaaa bbbb", "cccccccc"},
		},
		{
			name:         "single word larger than chunk size",
			chunkSize:    5,
			chunkOverlap: 2,
			text:         "verylongword",
			want:         []string{"verylongword"},
		},
		{
			name:         "long words never fit with overlap",
			chunkSize:    5,
			chunkOverlap: 2,
			text:         "alpha bravo charlie",
			want:         []string{"alpha", "bravo", "charlie"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChunker(tt.chunkSize, tt.chunkOverlap)
			got := c.ChunkText(tt.text)

			if len(got) != len(tt.want) {
				t.Errorf("ChunkText() returned %d chunks, want %d. Got: %q", len(got), len(tt.want), got)
				return
			}

			for i, chunk := range got {
				if chunk != tt.want[i] {
					t.Errorf("ChunkText() chunk[%d] = %q, want %q", i, chunk, tt.want[i])
				}
			}
		})
	}
}

func TestChunker_ChunkText_CoversAllWords(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 600; i++ {
		fmt.Fprintf(&sb, "w%d ", i)
	}
	text := sb.String()
	c := NewChunker(64, 4)

	chunks := c.ChunkText(text)
	if len(chunks) < 2 {
		t.Fatalf("ChunkText() returned %d chunks, want several", len(chunks))
	}

	last := strings.Fields(chunks[len(chunks)-1])
	words := strings.Fields(text)
	if last[len(last)-1] != words[len(words)-1] {
		t.Errorf("last chunk does not end with the last word")
	}
	for i, chunk := range chunks {
		if chunk == "" {
			t.Errorf("ChunkText() chunk[%d] is empty", i)
		}
		if i > 0 && chunk == chunks[i-1] {
			t.Errorf("ChunkText() chunk[%d] repeats the previous chunk", i)
		}
	}
}

func TestChunker_getOverlapWords(t *testing.T) {
	tests := []struct {
		name         string
		chunkOverlap int
		words        []string
		want         []string
	}{
		{
			name:         "no overlap",
			chunkOverlap: 0,
			words:        []string{"one", "two", "three"},
			want:         []string{},
		},
		{
			name:         "overlap smaller than words",
			chunkOverlap: 2,
			words:        []string{"one", "two", "three", "four", "five"},
			want:         []string{"four", "five"},
		},
		{
			name:         "overlap equal to words",
			chunkOverlap: 3,
			words:        []string{"one", "two", "three"},
			want:         []string{"two", "three"},
		},
		{
			name:         "overlap larger than words",
			chunkOverlap: 10,
			words:        []string{"one", "two", "three"},
			want:         []string{"two", "three"},
		},
		{
			name:         "single word",
			chunkOverlap: 10,
			words:        []string{"one"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChunker(100, tt.chunkOverlap)
			got := c.getOverlapWords(tt.words)

			if len(got) != len(tt.want) {
				t.Errorf("getOverlapWords() = %v, want %v", got, tt.want)
				return
			}

			for i, word := range got {
				if word != tt.want[i] {
					t.Errorf("getOverlapWords()[%d] = %q, want %q", i, word, tt.want[i])
				}
			}
		})
	}
}

func TestChunker_calculateSize(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		want  int
	}{
		{
			name:  "empty words",
			words: []string{},
			want:  0,
		},
		{
			name:  "single word",
			words: []string{"hello"},
			want:  5,
		},
		{
			name:  "multiple words",
			words: []string{"one", "two", "three"},
			want:  13, // "one two three" = 3 + 1 + 3 + 1 + 5 = 13
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChunker(100, 20)
			got := c.calculateSize(tt.words)

			if got != tt.want {
				t.Errorf("calculateSize() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewChunker(t *testing.T) {
	tests := []struct {
		name        string
		size        int
		overlap     int
		wantSize    int
		wantOverlap int
	}{
		{name: "explicit values", size: 100, overlap: 20, wantSize: 100, wantOverlap: 20},
		{name: "zero size uses default", size: 0, overlap: 5, wantSize: defaultChunkSize, wantOverlap: 5},
		{name: "negative overlap clamped", size: 10, overlap: -3, wantSize: 10, wantOverlap: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunker := NewChunker(tt.size, tt.overlap)
			if chunker.chunkSize != tt.wantSize {
				t.Errorf("NewChunker() chunkSize = %d, want %d", chunker.chunkSize, tt.wantSize)
			}
			if chunker.chunkOverlap != tt.wantOverlap {
				t.Errorf("NewChunker() chunkOverlap = %d, want %d", chunker.chunkOverlap, tt.wantOverlap)
			}
		})
	}
}
