package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetLogger() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer resetLogger()

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("test message %s", "arg")

	output := buf.String()
	assert.Contains(t, output, "DEBUG")
	assert.Contains(t, output, "test message arg")
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("test message")

	assert.Zero(t, buf.Len(), "expected no output when verbose is disabled")
}

func TestSection(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Dashboard")

	assert.Contains(t, buf.String(), "=== Dashboard ===")
}

func TestLevels(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Info("uploading %d files", 2)
	Warn("upload failed: %s", "boom")
	Error("decode: %s", "bad")

	output := buf.String()
	assert.Contains(t, output, "INFO")
	assert.Contains(t, output, "uploading 2 files")
	assert.Contains(t, output, "WARN")
	assert.Contains(t, output, "upload failed: boom")
	assert.Contains(t, output, "ERROR")
	assert.Contains(t, output, "decode: bad")
}

func TestSetOutput_WhileSilent(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)

	Info("hidden")
	Warn("hidden")

	assert.Zero(t, buf.Len())
}
