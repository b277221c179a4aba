// Package runner is the process-spawning side of a built command: it takes a
// program name and an ordered argument vector, spawns the process, and
// reports captured streams and the exit code. Tokens pass through without
// shell interpretation on the local path; the SSH path quotes them only for
// transport through the remote shell.
package runner

import (
	"bytes"
	"errors"
	"io"
	"os/exec"
)

// Result captures one completed invocation.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int32
}

// Runner abstracts command execution for local and remote targets.
type Runner interface {
	Run(name string, args ...string) (Result, error)
	RunStreaming(name string, args []string, stdout, stderr io.Writer) error
}

// ExecRunner executes commands on the local host through os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(name string, args ...string) (Result, error) {
	cmd := exec.Command(name, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = int32(exitErr.ExitCode())
		return res, err
	}

	res.ExitCode = 1
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		// Program not found or not runnable; mirror the shell convention.
		res.ExitCode = 127
	}
	return res, err
}

func (ExecRunner) RunStreaming(name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	if stdout != nil {
		cmd.Stdout = stdout
	}
	if stderr != nil {
		cmd.Stderr = stderr
	}
	return cmd.Run()
}
