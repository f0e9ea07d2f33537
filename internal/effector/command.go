package effector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"ratebridge/internal/logging"
	"ratebridge/internal/services"
)

// Exit codes the submission command uses to report per-entry outcomes.
// Anything else (including signals and timeouts) counts as transient.
const (
	exitSuccess      = 0
	exitAlreadyRated = 2
	exitNotFound     = 3
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) ([]byte, error)
}

type systemExecutor struct{}

func (systemExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	err := cmd.Run()
	return output.Bytes(), err
}

// Command invokes a user-configured program once per rating, passing the
// identifier and the converted rating as arguments.
type Command struct {
	binary  string
	args    []string
	timeout time.Duration
	exec    Executor
	logger  *slog.Logger
}

// Option configures the command effector.
type Option func(*Command)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Command) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// NewCommand builds a command effector from a shell-style command line. The
// first word is the binary, the rest become leading arguments.
func NewCommand(commandLine string, timeout time.Duration, logger *slog.Logger, opts ...Option) (*Command, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "effector", "command",
			"effector command is empty", nil)
	}
	command := &Command{
		binary:  fields[0],
		args:    fields[1:],
		timeout: timeout,
		exec:    systemExecutor{},
		logger:  logging.NewComponentLogger(logger, "effector"),
	}
	for _, opt := range opts {
		opt(command)
	}
	return command, nil
}

// Rate runs the command with the entry appended as "<target_id> <rating>"
// and maps its exit code to an outcome.
func (c *Command) Rate(ctx context.Context, targetID string, rating int) (Outcome, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := append(append([]string(nil), c.args...), targetID, strconv.Itoa(rating))
	output, err := c.exec.Run(ctx, c.binary, args)
	if err == nil {
		return Success, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		switch exitErr.ExitCode() {
		case exitAlreadyRated:
			return AlreadyRated, nil
		case exitNotFound:
			return NotFound, nil
		}
	}

	c.logger.Warn("effector command failed",
		logging.String(logging.FieldTargetID, targetID),
		logging.String("output", truncateOutput(output)),
		logging.Error(err))
	return TransientError, services.Wrap(services.ErrTransient, "effector", "rate",
		fmt.Sprintf("command exited abnormally for %s", targetID), err)
}

func truncateOutput(output []byte) string {
	const limit = 512
	text := strings.TrimSpace(string(output))
	if len(text) > limit {
		return text[:limit] + "..."
	}
	return text
}
