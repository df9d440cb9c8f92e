package colors

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Debug(msg string, args ...any) { r.add("debug", msg) }
func (r *recordingLogger) Info(msg string, args ...any)  { r.add("info", msg) }
func (r *recordingLogger) Warn(msg string, args ...any)  { r.add("warn", msg) }
func (r *recordingLogger) Error(msg string, args ...any) { r.add("error", msg) }

func (r *recordingLogger) add(level, msg string) {
	r.lines = append(r.lines, fmt.Sprintf("%s: %s", level, msg))
}

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	t.Cleanup(func() {
		SetOutput(nil, nil)
		SetDebug(false)
		SetQuiet(false)
		SetLogger(nil)
	})
	return &out, &errOut
}

func TestError(t *testing.T) {
	out, errOut := captureOutput(t)

	Error("something", "broke")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Error:")
	assert.Contains(t, errOut.String(), Red)
	assert.Contains(t, errOut.String(), "something broke")
}

func TestWarningGoesToStderr(t *testing.T) {
	out, errOut := captureOutput(t)

	Warning("careful")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Warning:")
	assert.Contains(t, errOut.String(), "careful")
}

func TestSuccessAndInfo(t *testing.T) {
	out, errOut := captureOutput(t)

	Success("saved")
	Info("hello")

	assert.Empty(t, errOut.String())
	assert.Contains(t, out.String(), checkmark+Reset+" saved")
	assert.Contains(t, out.String(), Blue+"hello")
}

func TestQuietSuppressesInfoButNotErrors(t *testing.T) {
	out, errOut := captureOutput(t)
	SetQuiet(true)

	Info("hidden")
	Success("hidden")
	Error("shown")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "shown")
}

func TestPlainHasNoDecoration(t *testing.T) {
	out, _ := captureOutput(t)

	Plain("1. [T][ ] read")

	assert.Equal(t, "1. [T][ ] read\n", out.String())
}

func TestDebugRespectsFlag(t *testing.T) {
	_, errOut := captureOutput(t)

	Debug("invisible")
	require.Empty(t, errOut.String())

	SetDebug(true)
	Debug("visible")
	assert.Contains(t, errOut.String(), "Debug:")
	assert.Contains(t, errOut.String(), "visible")
}

func TestLoggerMirrorsOutput(t *testing.T) {
	captureOutput(t)
	l := &recordingLogger{}
	SetLogger(l)

	Error("e")
	Warning("w")
	Info("i")
	Debug("hidden")

	assert.Equal(t, []string{"error: e", "warn: w", "info: i"}, l.lines)
}
