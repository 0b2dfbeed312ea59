package rag

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoDocuments is returned when a transcripts directory holds nothing to index.
var ErrNoDocuments = errors.New("no documents found")

// Document is one transcript loaded from disk
type Document struct {
	ID   string
	Text string
}

var documentExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// LoadFile loads text content from a file
func LoadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return string(data), nil
}

// LoadDirectory reads every .txt and .md file directly under dir, ordered by name.
// The file name is used as the document id.
func LoadDirectory(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcripts directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if documentExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDocuments, dir)
	}

	docs := make([]Document, 0, len(names))
	for _, name := range names {
		text, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{ID: name, Text: text})
	}
	return docs, nil
}
