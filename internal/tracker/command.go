package tracker

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// CommandTracker invokes an external logging process with the decision
// fields as command-line arguments. Exit code 0 is success; anything else is
// a failure carrying the process's stderr.
type CommandTracker struct {
	command string
	script  string
	timeout time.Duration
	runner  runner
}

// runner abstracts process execution for tests.
type runner func(ctx context.Context, command string, args []string) (stdout, stderr string, err error)

// NewCommandTracker creates a tracker spawning command script --flags.
func NewCommandTracker(command, script string, timeoutSecs int) *CommandTracker {
	timeout := 30 * time.Second
	if timeoutSecs > 0 {
		timeout = time.Duration(timeoutSecs) * time.Second
	}
	return &CommandTracker{
		command: command,
		script:  script,
		timeout: timeout,
		runner:  execRunner,
	}
}

func (t *CommandTracker) Track(ctx context.Context, rec Record) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	args := t.buildArgs(rec)
	stdout, stderr, err := t.runner(cctx, t.command, args)
	if err != nil {
		return "", eris.Wrapf(err, "tracker: command failed: %s", strings.TrimSpace(stderr))
	}

	return strings.TrimSpace(stdout), nil
}

func (t *CommandTracker) buildArgs(rec Record) []string {
	args := []string{
		t.script,
		"--platform", rec.Platform,
		"--title", rec.Title,
		"--budget", rec.Budget,
		"--decision", string(rec.Decision),
		"--reason", rec.Reason,
	}
	if rec.Link != "" {
		args = append(args, "--link", rec.Link)
	}
	if rec.Urgency > 0 {
		args = append(args, "--urgency", strconv.Itoa(rec.Urgency))
	}
	if rec.Pain > 0 {
		args = append(args, "--pain", strconv.Itoa(rec.Pain))
	}
	return args
}

func execRunner(ctx context.Context, command string, args []string) (string, string, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
