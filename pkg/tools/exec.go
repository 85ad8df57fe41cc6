package tools

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strings"
)

// ExecError is a structured command execution error carrying enough context
// to diagnose the failure.
type ExecError struct {
	Cmd    string
	Args   []string
	Stderr string
	Err    error
}

// Error implements the error interface with a detailed, multi-line message.
func (e *ExecError) Error() string {
	args := strings.Join(e.Args, " ")
	stderr := e.CleanStderr()

	code := e.ExitCode()
	codeStr := "unknown"
	if code >= 0 {
		codeStr = fmt.Sprintf("%d", code)
	}

	if stderr == "" {
		return fmt.Sprintf("command execution failed: %s %s, exit-code: %s, err: %v", e.Cmd, args, codeStr, e.Err)
	}

	lines := strings.Split(stderr, "\n")
	for i, l := range lines {
		lines[i] = "\t" + l
	}

	return fmt.Sprintf("command execution failed: %s %s, exit-code: %s, err: %v\nstderr:\n%s",
		e.Cmd, args, codeStr, e.Err, strings.Join(lines, "\n"))
}

// Unwrap allows errors.Is and errors.As to inspect the underlying error.
func (e *ExecError) Unwrap() error {
	return e.Err
}

// ansiRegexp matches ANSI color/formatting control sequences like "\x1b[31m".
var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// CleanStderr returns the stderr text with ANSI control codes stripped and
// whitespace trimmed.
func (e *ExecError) CleanStderr() string {
	if strings.TrimSpace(e.Stderr) == "" {
		return ""
	}
	return strings.TrimSpace(ansiRegexp.ReplaceAllString(e.Stderr, ""))
}

// ExitCode returns the exit code of the underlying process, or -1 when not
// available.
func (e *ExecError) ExitCode() int {
	if exitErr, ok := e.Err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	return -1
}

// Executor is a builder for a single external command invocation. It is
// configured through chained calls and executed once through Run, Output or
// RunStreaming.
type Executor struct {
	cmd *exec.Cmd
}

// NewExecutor creates an executor for the given command and arguments.
func NewExecutor(name string, args ...string) *Executor {
	return &Executor{
		cmd: exec.Command(name, args...),
	}
}

// WithDir sets the working directory of the command.
func (e *Executor) WithDir(dir string) *Executor {
	e.cmd.Dir = dir
	return e
}

// WithEnv appends environment variables on top of the current process
// environment.
func (e *Executor) WithEnv(envs ...string) *Executor {
	e.cmd.Env = append(e.cmd.Environ(), envs...)
	return e
}

// Run executes the command and returns captured stdout and stderr
// separately. Both are returned even when the command fails.
func (e *Executor) Run() (stdout, stderr string, err error) {
	var outBuf, errBuf bytes.Buffer
	e.cmd.Stdout = &outBuf
	e.cmd.Stderr = &errBuf

	runErr := e.cmd.Run()
	stdout = outBuf.String()
	stderr = errBuf.String()

	if runErr != nil {
		err = &ExecError{
			Cmd:    e.cmd.Path,
			Args:   e.cmd.Args[1:],
			Stderr: stderr,
			Err:    runErr,
		}
	}

	return stdout, stderr, err
}

// Output executes the command and returns its standard output. On failure
// the error carries the captured stderr.
func (e *Executor) Output() (string, error) {
	output, err := e.cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(output), &ExecError{
				Cmd:    e.cmd.Path,
				Args:   e.cmd.Args[1:],
				Stderr: string(exitErr.Stderr),
				Err:    err,
			}
		}
		return string(output), &ExecError{
			Cmd:  e.cmd.Path,
			Args: e.cmd.Args[1:],
			Err:  err,
		}
	}
	return string(output), nil
}

// RunStreaming executes the command, streaming stdout/stderr to the given
// writers. Stderr is additionally captured so it can be returned in the
// error on failure.
func (e *Executor) RunStreaming(stdout, stderr io.Writer) error {
	var errBuf bytes.Buffer

	if stdout != nil {
		e.cmd.Stdout = stdout
	}
	if stderr != nil {
		e.cmd.Stderr = io.MultiWriter(stderr, &errBuf)
	} else {
		e.cmd.Stderr = &errBuf
	}

	if err := e.cmd.Run(); err != nil {
		return &ExecError{
			Cmd:    e.cmd.Path,
			Args:   e.cmd.Args[1:],
			Stderr: errBuf.String(),
			Err:    err,
		}
	}
	return nil
}
