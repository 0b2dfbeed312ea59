package confidence

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	long := strings.Repeat("The management discussed the outlook in detail. ", 3)

	tests := []struct {
		name       string
		response   string
		fromEngine bool
		want       float64
	}{
		{name: "engine disclaimer", response: "That figure is NOT AVAILABLE in the transcripts provided to me today.", fromEngine: true, want: 0.4},
		{name: "engine disclaimer wins over short", response: "I don't have that.", fromEngine: true, want: 0.4},
		{name: "engine disclaimer wins over markers", response: long + "I don't have the 2023 growth figure.", fromEngine: true, want: 0.4},
		{name: "engine short", response: "ROE was strong.", fromEngine: true, want: 0.6},
		{name: "engine short with marker", response: "ROE was 19%.", fromEngine: true, want: 0.6},
		{name: "engine data rich crores", response: long + "Profit was 546 crores.", fromEngine: true, want: 0.9},
		{name: "engine data rich rupee", response: long + "Revenue ₹33,703.", fromEngine: true, want: 0.9},
		{name: "engine data rich growth uppercase", response: long + "GROWTH was robust.", fromEngine: true, want: 0.9},
		{name: "engine plain", response: long, fromEngine: true, want: 0.8},
		{name: "fallback percent sign", response: "ROE of 19.08%", fromEngine: false, want: 0.7},
		{name: "fallback percent word", response: "up ten percent", fromEngine: false, want: 0.7},
		{name: "fallback plain", response: "No numbers here.", fromEngine: false, want: 0.6},
		{name: "fallback empty", response: "", fromEngine: false, want: 0.6},
		{name: "engine empty", response: "", fromEngine: true, want: 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.response, tt.fromEngine))
		})
	}
}

func TestScore_ShortCountsCharacters(t *testing.T) {
	// 49 runes but well over 50 bytes.
	response := strings.Repeat("₹", 49)
	assert.Equal(t, 0.6, Score(response, true))

	response = strings.Repeat("₹", 50)
	assert.Equal(t, 0.9, Score(response, true))
}

func TestScore_Total(t *testing.T) {
	inputs := []string{"", "\xff\xfe", "%", strings.Repeat("x", 10000), "don’t have"}
	for _, in := range inputs {
		for _, fromEngine := range []bool{true, false} {
			got := Score(in, fromEngine)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		}
	}
}
