package errors

import (
	"bytes"
	"testing"

	"github.com/cristianoliveira/catbot/internal/colors"
	"github.com/stretchr/testify/assert"
)

func captureColors(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	colors.SetOutput(&out, &errOut)
	t.Cleanup(func() { colors.SetOutput(nil, nil) })
	return &out, &errOut
}

func TestDefaultCLIHandlerWritesThroughColors(t *testing.T) {
	out, errOut := captureColors(t)
	h := NewDefaultCLIHandler()

	h.Error("broken")
	h.Warning("careful")
	h.Info("hello")
	h.Success("done")
	h.Plain("1. [T][ ] read")

	assert.Contains(t, errOut.String(), "Error:")
	assert.Contains(t, errOut.String(), "broken")
	assert.Contains(t, errOut.String(), "careful")
	assert.Contains(t, out.String(), "hello")
	assert.Contains(t, out.String(), "done")
	assert.Contains(t, out.String(), "1. [T][ ] read\n")
	assert.NotContains(t, out.String(), "broken")
}
