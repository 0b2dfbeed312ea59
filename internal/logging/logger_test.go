package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOutput_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{level: "debug", want: logrus.DebugLevel},
		{level: "INFO", want: logrus.InfoLevel},
		{level: "warning", want: logrus.WarnLevel},
		{level: "error", want: logrus.ErrorLevel},
		{level: "", want: logrus.WarnLevel},
		{level: "verbose", want: logrus.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := NewWithOutput(&bytes.Buffer{}, tt.level, "text")
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestNewWithOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput(&buf, "info", "json")

	logger.WithField("mode", "fallback").Info("answered")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "answered", entry["msg"])
	assert.Equal(t, "fallback", entry["mode"])
}
