// Package hooks runs user scripts after the task list changes.
//
// Scripts live in {hooks_dir}/post-<change>/ where change is one of add,
// mark, unmark or delete. Every executable file in that directory runs in
// name order with the task described in CATBOT_TASK_* variables.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cristianoliveira/catbot/internal/config"
	"github.com/cristianoliveira/catbot/internal/logging"
	"github.com/cristianoliveira/catbot/internal/storage/record"
	"github.com/cristianoliveira/catbot/internal/task"
)

// Failure modes.
const (
	// FailureWarn reports a failed script and keeps running the rest.
	FailureWarn = "warn"
	// FailureIgnore keeps running and reports nothing.
	FailureIgnore = "ignore"
	// FailureAbort stops at the first failed script.
	FailureAbort = "abort"
)

const pointPrefix = "post-"

// Runner executes hook scripts. A Runner with an empty dir does nothing.
type Runner struct {
	dir         string
	timeout     time.Duration
	failureMode string
	logger      logging.Logger
	onFailure   func(error)
}

// New creates a runner over dir.
func New(dir string, timeout time.Duration, failureMode string, logger logging.Logger) *Runner {
	if logger == nil {
		logger = logging.GetGlobal()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Runner{dir: dir, timeout: timeout, failureMode: failureMode, logger: logger}
}

// NewFromConfig creates a runner from hooks_enabled, hooks_dir,
// hooks_timeout and hooks_failure_mode.
func NewFromConfig(logger logging.Logger) *Runner {
	dir := config.Get("hooks_dir", "")
	if !config.GetBool("hooks_enabled", true) {
		dir = ""
	}
	timeout := time.Duration(config.GetInt("hooks_timeout", 10)) * time.Second
	return New(dir, timeout, config.Get("hooks_failure_mode", FailureWarn), logger)
}

// OnFailure sets where failures are reported besides the log. It is not
// called in ignore mode.
func (r *Runner) OnFailure(fn func(error)) {
	r.onFailure = fn
}

// Dir returns the hooks directory, empty when hooks are disabled.
func (r *Runner) Dir() string {
	return r.dir
}

// TaskChanged runs the post-<change> scripts for t.
func (r *Runner) TaskChanged(change string, index int, t task.Task) {
	err := r.Run(context.Background(), pointPrefix+change, TaskEnv(index, t))
	if err == nil || r.failureMode == FailureIgnore {
		return
	}
	r.logger.Warn("hooks failed", "point", pointPrefix+change, "error", err.Error())
	if r.onFailure != nil {
		r.onFailure(err)
	}
}

// Run executes every script for hookPoint with env added to the process
// environment. Failures of separate scripts are joined.
func (r *Runner) Run(ctx context.Context, hookPoint string, env map[string]string) error {
	if r.dir == "" {
		return nil
	}
	scripts, err := r.scripts(hookPoint)
	if err != nil {
		return err
	}
	if len(scripts) == 0 {
		return nil
	}
	r.logger.Debug("running hooks", "point", hookPoint, "count", len(scripts))

	environ := buildEnv(hookPoint, env)
	var errs []error
	for _, script := range scripts {
		if err := r.runScript(ctx, script, environ); err != nil {
			errs = append(errs, err)
			if r.failureMode == FailureAbort {
				break
			}
		}
	}
	return errors.Join(errs...)
}

// scripts lists the executable files for hookPoint sorted by name. A missing
// directory means no hooks.
func (r *Runner) scripts(hookPoint string) ([]string, error) {
	hookDir := filepath.Join(r.dir, hookPoint)
	entries, err := os.ReadDir(hookDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read hooks directory %s: %w", hookDir, err)
	}

	var scripts []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(hookDir, entry.Name())
		info, err := os.Stat(path)
		if err != nil || info.Mode()&0111 == 0 {
			continue
		}
		scripts = append(scripts, path)
	}
	sort.Strings(scripts)
	return scripts, nil
}

func (r *Runner) runScript(ctx context.Context, path string, environ []string) error {
	name := filepath.Base(path)
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(ctx, path)
	cmd.Env = environ
	cmd.WaitDelay = time.Second
	output, err := cmd.CombinedOutput()
	out := strings.TrimSpace(string(output))
	r.logger.Debug("hook finished", "script", name, "duration", time.Since(start).String(), "output", out)

	switch {
	case err == nil:
		return nil
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("hook %s timed out after %s", name, r.timeout)
	case out != "":
		return fmt.Errorf("hook %s failed: %w: %s", name, err, out)
	default:
		return fmt.Errorf("hook %s failed: %w", name, err)
	}
}

func buildEnv(hookPoint string, env map[string]string) []string {
	environ := append(os.Environ(),
		"CATBOT_HOOK_POINT="+hookPoint,
		"CATBOT_HOOK_TIMESTAMP="+time.Now().Format(time.RFC3339),
	)
	if exe, err := os.Executable(); err == nil {
		environ = append(environ, "CATBOT_BINARY="+exe)
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		environ = append(environ, k+"="+env[k])
	}
	return environ
}

// TaskEnv describes t for a hook script. Unused dates are left out.
func TaskEnv(index int, t task.Task) map[string]string {
	r := record.FromTask(t)
	env := map[string]string{
		"CATBOT_TASK_INDEX":       strconv.Itoa(index),
		"CATBOT_TASK_ID":          r.ID,
		"CATBOT_TASK_KIND":        r.Kind,
		"CATBOT_TASK_DONE":        strconv.FormatBool(r.Done),
		"CATBOT_TASK_DESCRIPTION": r.Description,
	}
	for key, value := range map[string]string{"BY": r.By, "FROM": r.From, "TO": r.To} {
		if value != "" {
			env["CATBOT_TASK_"+key] = value
		}
	}
	return env
}
