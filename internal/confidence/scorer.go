// Package confidence assigns heuristic scores to answers.
//
// The score reflects how data-rich an answer looks and which path produced it.
// It is not a calibrated probability.
package confidence

import (
	"strings"
	"unicode/utf8"
)

const (
	// Fallback is returned whenever a score cannot be computed.
	Fallback = 0.5

	engineDisclaimer = 0.4
	engineShort      = 0.6
	engineDataRich   = 0.9
	enginePlain      = 0.8
	catalogDataRich  = 0.7
	catalogPlain     = 0.6

	shortAnswerRunes = 50
)

var (
	disclaimers = []string{"not available", "don't have", "don’t have"}
	dataMarkers = []string{"₹", "crores", "percent", "%", "growth"}
)

// Score rates response. fromEngine reports whether the answer engine produced
// it rather than the canned catalog. Score never panics.
func Score(response string, fromEngine bool) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			score = Fallback
		}
	}()

	lower := strings.ToLower(response)
	if !fromEngine {
		if containsAny(lower, dataMarkers) {
			return catalogDataRich
		}
		return catalogPlain
	}

	switch {
	case containsAny(lower, disclaimers):
		return engineDisclaimer
	case utf8.RuneCountInString(response) < shortAnswerRunes:
		return engineShort
	case containsAny(lower, dataMarkers):
		return engineDataRich
	default:
		return enginePlain
	}
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
