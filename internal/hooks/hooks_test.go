package hooks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cristianoliveira/catbot/internal/bot"
	"github.com/cristianoliveira/catbot/internal/command"
	"github.com/cristianoliveira/catbot/internal/config"
	"github.com/cristianoliveira/catbot/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ bot.Observer = (*Runner)(nil)

// writeScript creates an executable shell script under dir/point.
func writeScript(t *testing.T, dir, point, name, body string) {
	t.Helper()
	hookDir := filepath.Join(dir, point)
	require.NoError(t, os.MkdirAll(hookDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(hookDir, name), []byte("#!/bin/sh\n"+body+"\n"), 0755))
}

func readOut(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func newTodo(t *testing.T, description string) task.Task {
	t.Helper()
	todo, err := task.NewTodo(command.ParseSlash(description))
	require.NoError(t, err)
	return todo
}

func TestRunWithoutDirectoryIsNoop(t *testing.T) {
	r := New("", time.Second, FailureWarn, nil)
	assert.NoError(t, r.Run(context.Background(), "post-add", nil))

	r = New(filepath.Join(t.TempDir(), "missing"), time.Second, FailureWarn, nil)
	assert.NoError(t, r.Run(context.Background(), "post-add", nil))
}

func TestRunPassesEnvironment(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	t.Setenv("HOOK_OUT", out)
	writeScript(t, dir, "post-add", "record.sh", `echo "$CATBOT_HOOK_POINT $FOO" > "$HOOK_OUT"`)

	r := New(dir, 5*time.Second, FailureWarn, nil)
	require.NoError(t, r.Run(context.Background(), "post-add", map[string]string{"FOO": "bar"}))

	assert.Equal(t, "post-add bar\n", readOut(t, out))
}

func TestRunOrderAndExecutableOnly(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	t.Setenv("HOOK_OUT", out)
	writeScript(t, dir, "post-mark", "20-second.sh", `echo second >> "$HOOK_OUT"`)
	writeScript(t, dir, "post-mark", "10-first.sh", `echo first >> "$HOOK_OUT"`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "post-mark", "00-notes.txt"), []byte("echo nope"), 0644))

	r := New(dir, 5*time.Second, FailureWarn, nil)
	require.NoError(t, r.Run(context.Background(), "post-mark", nil))

	assert.Equal(t, "first\nsecond\n", readOut(t, out))
}

func TestFailureModes(t *testing.T) {
	tests := []struct {
		mode    string
		wantOut string
	}{
		{FailureWarn, "after\n"},
		{FailureIgnore, "after\n"},
		{FailureAbort, ""},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			dir := t.TempDir()
			out := filepath.Join(t.TempDir(), "out")
			require.NoError(t, os.WriteFile(out, nil, 0644))
			t.Setenv("HOOK_OUT", out)
			writeScript(t, dir, "post-delete", "1-fail.sh", "echo broken; exit 3")
			writeScript(t, dir, "post-delete", "2-after.sh", `echo after >> "$HOOK_OUT"`)

			r := New(dir, 5*time.Second, tt.mode, nil)
			err := r.Run(context.Background(), "post-delete", nil)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "1-fail.sh")
			assert.Contains(t, err.Error(), "broken")
			assert.Equal(t, tt.wantOut, readOut(t, out))
		})
	}
}

func TestTimeout(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "post-add", "slow.sh", "exec sleep 5")

	r := New(dir, 100*time.Millisecond, FailureWarn, nil)
	start := time.Now()
	err := r.Run(context.Background(), "post-add", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestTaskEnv(t *testing.T) {
	deadline, err := task.NewDeadline(command.ParseSlash("report /by 2024-01-01"))
	require.NoError(t, err)

	env := TaskEnv(3, deadline)

	assert.Equal(t, "3", env["CATBOT_TASK_INDEX"])
	assert.Equal(t, deadline.ID, env["CATBOT_TASK_ID"])
	assert.Equal(t, "deadline", env["CATBOT_TASK_KIND"])
	assert.Equal(t, "false", env["CATBOT_TASK_DONE"])
	assert.Equal(t, "report", env["CATBOT_TASK_DESCRIPTION"])
	assert.True(t, strings.HasPrefix(env["CATBOT_TASK_BY"], "2024-01-01"))
	assert.NotContains(t, env, "CATBOT_TASK_FROM")
}

func TestTaskChangedReportsFailures(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	t.Setenv("HOOK_OUT", out)
	writeScript(t, dir, "post-add", "ok.sh", `echo "$CATBOT_TASK_INDEX $CATBOT_TASK_DESCRIPTION" > "$HOOK_OUT"`)
	writeScript(t, dir, "post-unmark", "bad.sh", "exit 1")

	r := New(dir, 5*time.Second, FailureWarn, nil)
	var failures []error
	r.OnFailure(func(err error) { failures = append(failures, err) })

	r.TaskChanged(bot.ChangeAdded, 1, newTodo(t, "buy milk"))
	assert.Equal(t, "1 buy milk\n", readOut(t, out))
	assert.Empty(t, failures)

	r.TaskChanged(bot.ChangeUnmarked, 1, newTodo(t, "buy milk"))
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0].Error(), "bad.sh")
}

func TestIgnoreModeDoesNotReport(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "post-add", "bad.sh", "exit 1")

	r := New(dir, 5*time.Second, FailureIgnore, nil)
	called := false
	r.OnFailure(func(error) { called = true })

	r.TaskChanged(bot.ChangeAdded, 1, newTodo(t, "x"))

	assert.False(t, called)
}

func TestNewFromConfig(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	t.Setenv("CATBOT_CONFIG_PATH", "")
	t.Setenv("CATBOT_HOOKS_TIMEOUT", "3")
	config.Load()

	r := NewFromConfig(nil)
	assert.Equal(t, filepath.Join(tmp, "config", "catbot", "hooks"), r.Dir())
	assert.Equal(t, 3*time.Second, r.timeout)
	assert.Equal(t, FailureWarn, r.failureMode)

	t.Setenv("CATBOT_HOOKS_ENABLED", "false")
	config.Load()
	assert.Empty(t, NewFromConfig(nil).Dir())
}
