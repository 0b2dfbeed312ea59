// Package output writes the single JSON record a command prints on stdout.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vokinneberg/earnings-qa/internal/types"
)

// WriteJSON encodes v as one compact line. HTML characters are left as is
// so answers read the same as the transcripts they quote.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// WriteResult writes an answer record
func WriteResult(w io.Writer, result *types.AnswerResult) error {
	return WriteJSON(w, result)
}

// WriteError writes an error record
func WriteError(w io.Writer, errText, message string) error {
	return WriteJSON(w, types.ErrorResponse{
		Error:   errText,
		Message: message,
	})
}
