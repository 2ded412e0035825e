package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_Creation(t *testing.T) {
	reset(map[string]bool{"test": true})

	enabledLog := New("test")
	disabledLog := New("other")

	assert.True(t, enabledLog.Enabled(), "Logger for enabled topic should be enabled")
	assert.False(t, disabledLog.Enabled(), "Logger for disabled topic should be disabled")
}

func TestLogger_AllTopics(t *testing.T) {
	reset(map[string]bool{"*": true})

	assert.True(t, New("anything").Enabled(), "All topics should be enabled with wildcard")
	assert.True(t, New("whatever").Enabled(), "All topics should be enabled with wildcard")
}

func TestLogger_NoTopics(t *testing.T) {
	reset(map[string]bool{})

	assert.False(t, New("anything").Enabled(), "Logger should be disabled when no topics enabled")
}

func TestEnable_PicksUpExistingLoggers(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)
	reset(map[string]bool{})

	log := New("tables")
	assert.False(t, log.Enabled())

	var buf bytes.Buffer
	Enable(" tables , analyzer ", &buf)

	assert.True(t, log.Enabled())
	assert.True(t, New("analyzer").Enabled())
	assert.False(t, New("engine").Enabled())

	log.Debug("built table", "rows", 3)
	assert.Contains(t, buf.String(), "topic=tables")
	assert.Contains(t, buf.String(), "rows=3")
}

func TestEnable_EmptyIsNoop(t *testing.T) {
	reset(map[string]bool{})
	Enable("", &bytes.Buffer{})
	assert.False(t, New("tables").Enabled())
}

func BenchmarkLogger_Disabled(b *testing.B) {
	reset(map[string]bool{})
	log := New("benchmark")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		log.Debug("test message", "key", "value", "number", 42)
	}
}
