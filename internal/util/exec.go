package util

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// SensorCommand is an executable followed by its arguments.
type SensorCommand []string

// NewSensorCommand copies the given argv, so later changes to the
// caller's slice are not visible.
func NewSensorCommand(argv ...string) SensorCommand {
	command := make(SensorCommand, len(argv))
	copy(command, argv)
	return command
}

func (c SensorCommand) Executable() string {
	if len(c) == 0 {
		return ""
	}
	return c[0]
}

func (c SensorCommand) Args() []string {
	if len(c) <= 1 {
		return nil
	}
	return c[1:]
}

func (c SensorCommand) String() string {
	return strings.Join(c, " ")
}

// CommandRunner executes a command and returns its trimmed stdout.
type CommandRunner interface {
	Run(ctx context.Context, command SensorCommand) (string, error)
}

// LaunchError means the process could not be started at all.
type LaunchError struct {
	Executable string
	Err        error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("cannot execute %s: %v", e.Executable, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// ExitError means the process ran but exited with a non-zero status.
type ExitError struct {
	Executable  string
	Status      int
	Stderr      string
	Description string
}

func (e *ExitError) Error() string {
	if len(e.Stderr) > 0 {
		return e.Stderr
	}
	return e.Description
}

// ExecRunner runs commands as child processes. A zero Timeout means the
// command may run forever.
type ExecRunner struct {
	Timeout time.Duration
}

func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{Timeout: timeout}
}

func (r *ExecRunner) Run(ctx context.Context, command SensorCommand) (string, error) {
	executable := command.Executable()
	if len(executable) <= 0 {
		return "", &LaunchError{Executable: executable, Err: errors.New("empty command")}
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, executable, command.Args()...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return "", &LaunchError{Executable: executable, Err: err}
	}

	err := cmd.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", fmt.Errorf("command %s aborted: %w", command, ctxErr)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &ExitError{
				Executable:  executable,
				Status:      exitErr.ExitCode(),
				Stderr:      strings.TrimSpace(stderr.String()),
				Description: exitErr.ProcessState.String(),
			}
		}
		return "", &LaunchError{Executable: executable, Err: err}
	}

	return strings.TrimSpace(stdout.String()), nil
}
