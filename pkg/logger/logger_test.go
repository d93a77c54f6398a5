package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"info", LevelInfo},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, LevelWarn)

	log.Infof("hidden %d", 1)
	log.Warnf("shown %d", 2)

	assert.NotContains(t, buf.String(), "hidden 1")
	assert.Contains(t, buf.String(), "shown 2")
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, LevelDebug).WithFields(Fields{"provider": "streamtp", "link_index": 2})

	log.Errorf("[Resolver] attempt failed")

	out := buf.String()
	assert.Contains(t, out, "attempt failed")
	assert.Contains(t, out, "provider=streamtp")
	assert.Contains(t, out, "link_index=2")
}

func TestValidLevel(t *testing.T) {
	assert.True(t, ValidLevel("Warning"))
	assert.False(t, ValidLevel("trace"))
}
