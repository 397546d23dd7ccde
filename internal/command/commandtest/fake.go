// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package commandtest provides a scriptable command.Executor for tests.
package commandtest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/softgeekro/nemo-actions/internal/command"
)

// Call records one Run invocation.
type Call struct {
	Name  string
	Args  []string
	Stdin string
}

// Line returns the call as a single space-joined command line.
func (c Call) Line() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Handler produces the result of a Run call.
type Handler func(call Call) (command.Result, error)

// StartHandler configures a freshly started fake process.
type StartHandler func(p *Process)

// Fake implements command.Executor. Handlers are queued per binary name; the
// last handler queued for a name keeps answering once the queue drains.
// Binaries without handlers exit 0 with no output.
type Fake struct {
	mu       sync.Mutex
	paths    map[string]string
	handlers map[string][]Handler
	starts   map[string][]StartHandler

	Calls   []Call
	Started []*Process
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{
		paths:    map[string]string{},
		handlers: map[string][]Handler{},
		starts:   map[string][]StartHandler{},
	}
}

// Install makes LookPath find name at /usr/bin/name.
func (f *Fake) Install(names ...string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range names {
		f.paths[n] = "/usr/bin/" + n
	}
	return f
}

// On queues a handler for Run calls of name.
func (f *Fake) On(name string, h Handler) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[name] = append(f.handlers[name], h)
	return f
}

// Reply queues a canned stdout and exit code for name.
func (f *Fake) Reply(name, stdout string, exitCode int) *Fake {
	return f.On(name, func(Call) (command.Result, error) {
		return command.Result{Stdout: []byte(stdout), ExitCode: exitCode}, nil
	})
}

// OnStart queues a configuration hook for processes started as name.
func (f *Fake) OnStart(name string, h StartHandler) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts[name] = append(f.starts[name], h)
	return f
}

// CallsTo returns the recorded Run calls of name.
func (f *Fake) CallsTo(name string) []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Call
	for _, c := range f.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func (f *Fake) LookPath(file string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.paths[file]; ok {
		return p, nil
	}
	return "", errors.New("not found: " + file)
}

func (f *Fake) Run(ctx context.Context, name string, args []string, stdin io.Reader) (command.Result, error) {
	call := Call{Name: name, Args: append([]string(nil), args...)}
	if stdin != nil {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return command.Result{}, err
		}
		call.Stdin = string(b)
	}

	f.mu.Lock()
	f.Calls = append(f.Calls, call)
	h, ok := pop(f.handlers, name)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return command.Result{}, err
	}
	if !ok {
		return command.Result{}, nil
	}
	return h(call)
}

func (f *Fake) Start(ctx context.Context, name string, args []string) (command.Process, error) {
	p := &Process{
		Name: name,
		Args: append([]string(nil), args...),
		done: make(chan struct{}),
	}

	f.mu.Lock()
	f.Started = append(f.Started, p)
	h, ok := pop(f.starts, name)
	f.mu.Unlock()

	if ok {
		h(p)
	}
	return p, nil
}

// pop returns the head of the queue for name, keeping the last entry in
// place so it answers every later call.
func pop[T any](queues map[string][]T, name string) (T, bool) {
	var zero T
	q := queues[name]
	if len(q) == 0 {
		return zero, false
	}
	if len(q) > 1 {
		queues[name] = q[1:]
	}
	return q[0], true
}

// Process is a fake co-process. It records everything written to its stdin
// and exits either when its input is closed or when a scripted trigger
// fires.
type Process struct {
	Name string
	Args []string

	mu        sync.Mutex
	written   strings.Builder
	lines     int
	exited    bool
	result    command.Result
	final     command.Result
	exitAfter int
	exitWith  command.Result
	done      chan struct{}
}

// Finish sets the result reported when the input is closed.
func (p *Process) Finish(res command.Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.final = res
}

// ExitAfter makes the process exit with res once n complete lines have been
// written, the way a dialog does when the user clicks Cancel or when it
// auto-closes.
func (p *Process) ExitAfter(n int, res command.Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.exitAfter = n
	p.exitWith = res
}

// Exit terminates the process with res immediately.
func (p *Process) Exit(res command.Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.exitLocked(res)
}

func (p *Process) exitLocked(res command.Result) {
	if p.exited {
		return
	}
	p.exited = true
	p.result = res
	close(p.done)
}

// Input returns everything written to the process so far.
func (p *Process) Input() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.written.String()
}

// Lines returns the complete lines written to the process.
func (p *Process) Lines() []string {
	in := strings.TrimSuffix(p.Input(), "\n")
	if in == "" {
		return nil
	}
	return strings.Split(in, "\n")
}

func (p *Process) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.exited {
		return 0, fmt.Errorf("write |1: %w", io.ErrClosedPipe)
	}
	p.written.Write(b)
	p.lines += strings.Count(string(b), "\n")
	if p.exitAfter > 0 && p.lines >= p.exitAfter {
		p.exitLocked(p.exitWith)
	}
	return len(b), nil
}

func (p *Process) CloseInput() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.exitLocked(p.final)
	return nil
}

func (p *Process) Done() <-chan struct{} { return p.done }

func (p *Process) Wait() (command.Result, error) {
	_ = p.CloseInput()
	<-p.done
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result, nil
}

func (p *Process) Kill() error {
	p.Exit(command.Result{ExitCode: -1})
	return nil
}
