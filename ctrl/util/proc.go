package util

import (
	"bytes"
	"github.com/pkg/errors"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"
)

type Status int

const (
	StatusOK Status = iota
	StatusNotFound
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not found"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Command describes one invocation of an external tool. When Passthrough is
// set the tool shares the caller's stdout and stderr; otherwise both streams
// are captured into the Result.
type Command struct {
	Path        string
	Args        []string
	Dir         string
	Passthrough bool
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}

type Result struct {
	Status   Status
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (r Result) OK() bool {
	return r.Status == StatusOK
}

type Runner interface {
	Run(cmd Command) Result
	LookPath(file string) (string, error)
}

// ExecRunner runs commands as child processes and blocks until they exit.
// There is no timeout: a hung tool hangs the caller.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

var _ Runner = ExecRunner{}

func (e ExecRunner) Run(c Command) Result {
	cmd := exec.Command(c.Path, c.Args...)
	cmd.Dir = c.Dir
	var stdout, stderr bytes.Buffer
	if c.Passthrough {
		cmd.Stdin = os.Stdin
		cmd.Stdout, cmd.Stderr = e.Stdout, e.Stderr
		if cmd.Stdout == nil {
			cmd.Stdout = os.Stdout
		}
		if cmd.Stderr == nil {
			cmd.Stderr = os.Stderr
		}
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}
	err := cmd.Run()
	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.Status = StatusOK
	case errors.As(err, &exitErr):
		result.Status = StatusFailed
		result.ExitCode = exitErr.ExitCode()
		result.Err = errors.Wrapf(err, "%s exited with status %d", c.Path, result.ExitCode)
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		result.Status = StatusNotFound
		result.ExitCode = -1
		result.Err = errors.Wrapf(err, "command not found: %s", c.Path)
	default:
		result.Status = StatusFailed
		result.ExitCode = -1
		result.Err = errors.Wrapf(err, "cannot run %s", c.Path)
	}
	return result
}

func (ExecRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}
