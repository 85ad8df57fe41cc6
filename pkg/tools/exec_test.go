package tools

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

func TestExecutorRun(t *testing.T) {
	stdout, stderr, err := NewExecutor("echo", "hello").Run()
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(stdout) != "hello" {
		t.Errorf("stdout = %q, want %q", stdout, "hello")
	}
	if stderr != "" {
		t.Errorf("stderr = %q, want empty", stderr)
	}
}

func TestExecutorRunFailure(t *testing.T) {
	_, _, err := NewExecutor("sh", "-c", "echo oops >&2; exit 3").Run()
	if err == nil {
		t.Fatal("expected error for failing command")
	}

	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("error type = %T, want *ExecError", err)
	}
	if execErr.ExitCode() != 3 {
		t.Errorf("exit code = %d, want 3", execErr.ExitCode())
	}
	if execErr.CleanStderr() != "oops" {
		t.Errorf("stderr = %q, want %q", execErr.CleanStderr(), "oops")
	}
	if !strings.Contains(execErr.Error(), "oops") {
		t.Error("error message should carry stderr")
	}
}

func TestExecutorRunMissingCommand(t *testing.T) {
	_, _, err := NewExecutor("definitely-not-a-command-xyz").Run()
	if err == nil {
		t.Fatal("expected error for missing command")
	}

	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("error type = %T, want *ExecError", err)
	}
	if execErr.ExitCode() != -1 {
		t.Errorf("exit code = %d, want -1", execErr.ExitCode())
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Error("expected wrapped exec.ErrNotFound")
	}
}

func TestExecutorWithDir(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := NewExecutor("pwd").WithDir(dir).Run()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, dir) {
		t.Errorf("pwd = %q, want it to contain %q", stdout, dir)
	}
}

func TestExecutorWithEnv(t *testing.T) {
	stdout, _, err := NewExecutor("sh", "-c", "echo $WASMUP_TEST_VAR").
		WithEnv("WASMUP_TEST_VAR=42").
		Run()
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(stdout) != "42" {
		t.Errorf("stdout = %q, want %q", stdout, "42")
	}
}

func TestExecutorOutput(t *testing.T) {
	out, err := NewExecutor("echo", "out").Output()
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "out" {
		t.Errorf("output = %q, want %q", out, "out")
	}
}

func TestExecutorRunStreaming(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := NewExecutor("sh", "-c", "echo one; echo two >&2").RunStreaming(&stdout, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(stdout.String()) != "one" {
		t.Errorf("stdout = %q, want %q", stdout.String(), "one")
	}
	if strings.TrimSpace(stderr.String()) != "two" {
		t.Errorf("stderr = %q, want %q", stderr.String(), "two")
	}
}

func TestCleanStderrStripsANSI(t *testing.T) {
	e := &ExecError{Stderr: "\x1b[31merror:\x1b[0m boom\n"}
	if got := e.CleanStderr(); got != "error: boom" {
		t.Errorf("CleanStderr() = %q, want %q", got, "error: boom")
	}
}
