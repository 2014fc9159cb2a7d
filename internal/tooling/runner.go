package tooling

import (
	"bytes"
	"os/exec"

	"huemcp/internal/domain"
)

// CommandRunner abstracts command execution for testability.
type CommandRunner interface {
	Run(command string) (stdout string, stderr string, err error)
}

// ExitCoder is satisfied by errors that carry a process exit code
// (e.g., *exec.ExitError).
type ExitCoder interface {
	ExitCode() int
}

// ExecCommandRunner executes commands using os/exec via "sh -c".
type ExecCommandRunner struct{}

// Run executes the command string in a shell and returns stdout, stderr, and any error.
func (e *ExecCommandRunner) Run(command string) (string, string, error) {
	cmd := exec.Command("sh", "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Executor runs one command line as a single subprocess and classifies the
// outcome. No retries, no timeout: one invocation maps to one subprocess
// lifetime, and a launched subprocess is never aborted mid-flight.
type Executor struct {
	runner CommandRunner
}

// NewExecutor creates an Executor backed by the given runner.
func NewExecutor(runner CommandRunner) *Executor {
	return &Executor{runner: runner}
}

// Execute runs the command and returns its captured output. The error is
// a *SpawnError when the subprocess could not start, a *ExternalError when
// it ran but exited non-zero or wrote to stderr, and nil on success. The
// ExecutionResult is populated in the external-failure case as well, so the
// caller can inspect whatever the CLI managed to emit.
func (e *Executor) Execute(command string) (domain.ExecutionResult, error) {
	stdout, stderr, err := e.runner.Run(command)
	res := domain.ExecutionResult{Stdout: stdout, Stderr: stderr}

	if err != nil {
		exitErr, ok := err.(ExitCoder)
		if !ok {
			return res, &SpawnError{Err: err}
		}
		res.ExitCode = exitErr.ExitCode()
	}

	if res.Failed() {
		return res, &ExternalError{Stderr: res.Stderr, ExitCode: res.ExitCode}
	}
	return res, nil
}
