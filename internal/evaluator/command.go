package evaluator

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/scopelock/leadflow/internal/model"
)

// CommandEngine evaluates jobs by piping the prompt to an external decision
// process and parsing its free-text output. The process is killed when the
// deadline expires.
type CommandEngine struct {
	command string
	args    []string
	workDir string
	timeout time.Duration
}

// CommandOption configures the CommandEngine.
type CommandOption func(*CommandEngine)

// WithWorkDir sets the working directory for the spawned process.
func WithWorkDir(dir string) CommandOption {
	return func(e *CommandEngine) {
		e.workDir = dir
	}
}

// WithTimeout overrides the default 60s wall-clock deadline.
func WithTimeout(d time.Duration) CommandOption {
	return func(e *CommandEngine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// NewCommandEngine creates an engine that spawns command with args for each
// evaluation, the prompt appended as the final argument.
func NewCommandEngine(command string, args []string, opts ...CommandOption) *CommandEngine {
	e := &CommandEngine{
		command: command,
		args:    args,
		timeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *CommandEngine) Evaluate(ctx context.Context, job model.Job) (model.Evaluation, error) {
	prompt := BuildPrompt(job)

	cctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	args := append(append([]string{}, e.args...), prompt)
	cmd := exec.CommandContext(cctx, e.command, args...)
	if e.workDir != "" {
		cmd.Dir = e.workDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(cctx.Err(), context.DeadlineExceeded) {
			return model.Evaluation{}, eris.Errorf("evaluator: command timeout after %s", e.timeout)
		}
		return model.Evaluation{}, eris.Wrapf(err, "evaluator: command failed: %s", strings.TrimSpace(stderr.String()))
	}

	zap.L().Debug("evaluator: command complete",
		zap.String("job_id", job.ID),
		zap.Duration("elapsed", elapsed),
	)

	return ParseResponse(stdout.String()), nil
}
