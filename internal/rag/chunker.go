package rag

import (
	"strings"
)

const (
	defaultChunkSize = 2048
)

// Chunker splits transcripts into word-aligned chunks.
// Size is measured in bytes, overlap in words carried over from the previous chunk.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

// NewChunker creates a new chunker with specified size and overlap
func NewChunker(chunkSize, chunkOverlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = 0
	}
	return &Chunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

// ChunkText splits text into chunks with overlap
func (c *Chunker) ChunkText(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{}
	}

	chunks := []string{}
	currentChunk := []string{}
	currentSize := 0

	for _, word := range words {
		wordSize := len(word) + 1 // +1 for space

		if currentSize+wordSize > c.chunkSize && len(currentChunk) > 0 {
			chunks = append(chunks, strings.Join(currentChunk, " "))

			// Carry the tail over, but never so much that the next word cannot fit
			carried := c.getOverlapWords(currentChunk)
			for len(carried) > 0 && c.calculateSize(carried)+1+wordSize > c.chunkSize {
				carried = carried[1:]
			}
			currentChunk = append([]string{}, carried...)
			currentSize = 0
			if len(currentChunk) > 0 {
				currentSize = c.calculateSize(currentChunk) + 1
			}
		}

		currentChunk = append(currentChunk, word)
		currentSize += wordSize
	}

	if len(currentChunk) > 0 {
		chunks = append(chunks, strings.Join(currentChunk, " "))
	}

	return chunks
}

// getOverlapWords returns the last N words of a finished chunk, always
// leaving at least one word behind so consecutive chunks differ.
func (c *Chunker) getOverlapWords(words []string) []string {
	if c.chunkOverlap <= 0 || len(words) < 2 {
		return []string{}
	}

	overlapCount := c.chunkOverlap
	if overlapCount > len(words)-1 {
		overlapCount = len(words) - 1
	}

	return words[len(words)-overlapCount:]
}

// calculateSize calculates the total size of words including spaces
func (c *Chunker) calculateSize(words []string) int {
	size := 0
	for _, word := range words {
		size += len(word) + 1 // +1 for space
	}
	if size > 0 {
		size-- // Remove last space
	}
	return size
}
