// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package command runs the external programs the actions depend on (the
// dialog binary, pdftk, ghostscript, img2pdf) behind an Executor interface so
// callers can be tested without spawning processes.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// Result is the outcome of a finished process.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Output returns stdout followed by stderr, the way a user would have seen
// it in a terminal.
func (r Result) Output() string {
	var b strings.Builder
	b.Write(r.Stdout)
	if len(r.Stderr) > 0 {
		if b.Len() > 0 && !bytes.HasSuffix(r.Stdout, []byte("\n")) {
			b.WriteByte('\n')
		}
		b.Write(r.Stderr)
	}
	return b.String()
}

// Process is a running child whose standard input is held open by the
// caller. Writes go straight to the child's stdin pipe.
type Process interface {
	io.Writer

	// CloseInput closes the child's stdin.
	CloseInput() error

	// Done is closed once the child has exited.
	Done() <-chan struct{}

	// Wait closes stdin if still open, waits for the child, and returns its
	// result. It may be called more than once.
	Wait() (Result, error)

	// Kill terminates the child.
	Kill() error
}

// Executor abstracts process execution.
type Executor interface {
	// LookPath resolves file against PATH.
	LookPath(file string) (string, error)

	// Run executes name with args, feeding stdin when non-nil, and waits for
	// it. A non-zero exit status is reported in Result.ExitCode, not as an
	// error; err is reserved for failures to start or wait.
	Run(ctx context.Context, name string, args []string, stdin io.Reader) (Result, error)

	// Start launches name with args and a stdin pipe, without waiting.
	Start(ctx context.Context, name string, args []string) (Process, error)
}

// ExitError reports a process that exited with a non-zero status.
type ExitError struct {
	Name     string
	Args     []string
	ExitCode int
	Output   string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Name, e.ExitCode)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

// Check converts a non-zero exit status into an *ExitError.
func Check(name string, args []string, res Result) error {
	if res.ExitCode == 0 {
		return nil
	}
	return &ExitError{Name: name, Args: args, ExitCode: res.ExitCode, Output: res.Output()}
}

// Exec runs name with args and returns its result, failing with an
// *ExitError when the process exits non-zero.
func Exec(ctx context.Context, ex Executor, name string, args ...string) (Result, error) {
	res, err := ex.Run(ctx, name, args, nil)
	if err != nil {
		return res, err
	}
	return res, Check(name, args, res)
}

// Resolve picks the binary to use for a tool. A non-empty override (from
// config or an environment variable) wins unconditionally; otherwise the
// first candidate that exists as an absolute path or is found on PATH is
// returned. Resolve fails when nothing is found.
func Resolve(ex Executor, override string, candidates ...string) (string, error) {
	if override != "" {
		return override, nil
	}
	for _, c := range candidates {
		if strings.ContainsRune(c, os.PathSeparator) {
			if _, err := os.Stat(c); err == nil {
				return c, nil
			}
			continue
		}
		if p, err := ex.LookPath(c); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("none of %s found", strings.Join(candidates, ", "))
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

// Default is the Executor backed by os/exec.
var Default Executor = osExecutor{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Run(ctx context.Context, name string, args []string, stdin io.Reader) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdin = stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("running %s: %w", name, err)
	}
	return res, nil
}

func (osExecutor) Start(ctx context.Context, name string, args []string) (Process, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("opening stdin of %s: %w", name, err)
	}
	p := &osProcess{cmd: cmd, stdin: stdin, done: make(chan struct{})}
	cmd.Stdout = &p.stdout
	cmd.Stderr = &p.stderr
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", name, err)
	}
	go p.reap()
	return p, nil
}

type osProcess struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout bytes.Buffer
	stderr bytes.Buffer

	done    chan struct{}
	waitErr error

	closeOnce sync.Once
	closeErr  error
}

func (p *osProcess) reap() {
	p.waitErr = p.cmd.Wait()
	close(p.done)
}

func (p *osProcess) Write(b []byte) (int, error) { return p.stdin.Write(b) }

func (p *osProcess) CloseInput() error {
	p.closeOnce.Do(func() { p.closeErr = p.stdin.Close() })
	return p.closeErr
}

func (p *osProcess) Done() <-chan struct{} { return p.done }

func (p *osProcess) Wait() (Result, error) {
	_ = p.CloseInput()
	<-p.done
	res := Result{Stdout: p.stdout.Bytes(), Stderr: p.stderr.Bytes()}
	var exitErr *exec.ExitError
	if errors.As(p.waitErr, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	if p.waitErr != nil {
		return res, fmt.Errorf("waiting for %s: %w", p.cmd.Path, p.waitErr)
	}
	return res, nil
}

func (p *osProcess) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}
