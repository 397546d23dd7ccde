// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package yad drives the yad dialog program. Every dialog kind is described
// by its own struct; Client turns it into a yad command line, runs it, and
// parses what the user entered. Dialogs that take live updates (progress
// bars, listening lists) are driven through a line-oriented Channel.
package yad

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/softgeekro/nemo-actions/internal/command"
)

// DefaultBinary is the dialog program used when none is configured.
const DefaultBinary = "yad"

// Response is the raw outcome of a dialog.
type Response struct {
	Output   string
	ExitCode int
}

// Client runs dialogs through the yad binary.
type Client struct {
	binary   string
	baseArgs []string
	exec     command.Executor
	log      logrus.FieldLogger
}

// Option configures a Client.
type Option func(*Client)

// WithExecutor replaces the process executor.
func WithExecutor(ex command.Executor) Option {
	return func(c *Client) { c.exec = ex }
}

// WithBaseArgs sets arguments passed to every dialog, e.g. "--fixed".
func WithBaseArgs(args ...string) Option {
	return func(c *Client) { c.baseArgs = append([]string(nil), args...) }
}

// WithLogger sets the logger that receives option warnings and debug
// traces of each invocation.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

// New returns a Client for binary. An empty binary selects DefaultBinary.
func New(binary string, opts ...Option) *Client {
	c := &Client{
		binary: orDefault(binary, DefaultBinary),
		exec:   command.Default,
		log:    discardLogger(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Binary returns the dialog program path.
func (c *Client) Binary() string { return c.binary }

// Args returns the full argument vector for d without running it.
func (c *Client) Args(d Dialog) ([]string, error) {
	return c.args(d)
}

// args builds the vector for d with extra options placed ahead of any
// positional values.
func (c *Client) args(d Dialog, extra ...string) ([]string, error) {
	b := newArgBuilder(c.log)
	if err := d.build(b); err != nil {
		return nil, err
	}
	d.common().build(b)
	b.args = append(b.args, extra...)
	return append(append([]string(nil), c.baseArgs...), b.list()...), nil
}

// Run shows d, waits for the user, and returns the trimmed output and exit
// code. Exit codes are not interpreted; see the typed helpers for that.
func (c *Client) Run(ctx context.Context, d Dialog) (Response, error) {
	if l, ok := d.(listener); ok && l.listens() {
		return Response{}, fmt.Errorf("listening dialog must be started with Listen")
	}
	args, err := c.Args(d)
	if err != nil {
		return Response{}, err
	}
	c.log.WithField("args", args).Debug("running dialog")
	res, err := c.exec.Run(ctx, c.binary, args, nil)
	if err != nil {
		return Response{}, fmt.Errorf("running %s: %w", c.binary, err)
	}
	return Response{Output: trimOutput(string(res.Stdout)), ExitCode: res.ExitCode}, nil
}

// value runs d and requires an affirmative exit.
func (c *Client) value(ctx context.Context, d Dialog) (string, error) {
	resp, err := c.Run(ctx, d)
	if err != nil {
		return "", err
	}
	if err := statusError(resp.ExitCode); err != nil {
		return "", err
	}
	if resp.ExitCode != 0 {
		return "", &command.ExitError{Name: c.binary, ExitCode: resp.ExitCode, Output: resp.Output}
	}
	return resp.Output, nil
}

// Info shows an information message with a single OK button.
func (c *Client) Info(ctx context.Context, d Message) error {
	if d.Image == "" {
		d.Image = "dialog-information"
	}
	if len(d.Buttons) == 0 {
		d.Buttons = []Button{{Label: "OK", Code: 0}}
	}
	_, err := c.Run(ctx, &d)
	return err
}

// Error shows an error message with a single OK button.
func (c *Client) Error(ctx context.Context, d Message) error {
	if d.Image == "" {
		d.Image = "dialog-error"
	}
	if len(d.Buttons) == 0 {
		d.Buttons = []Button{{Label: "OK", Code: 0}}
	}
	_, err := c.Run(ctx, &d)
	return err
}

// Question asks a yes/no question. It returns false when the user answers
// No and ErrCancelled when the dialog is closed without an answer.
func (c *Client) Question(ctx context.Context, d Message) (bool, error) {
	if d.Image == "" {
		d.Image = "dialog-question"
	}
	if len(d.Buttons) == 0 {
		d.Buttons = []Button{{Label: "Yes", Code: 0}, {Label: "No", Code: exitCancel}}
	}
	resp, err := c.Run(ctx, &d)
	if err != nil {
		return false, err
	}
	switch resp.ExitCode {
	case 0:
		return true, nil
	case exitCancel:
		return false, nil
	}
	if err := statusError(resp.ExitCode); err != nil {
		return false, err
	}
	return false, &command.ExitError{Name: c.binary, ExitCode: resp.ExitCode, Output: resp.Output}
}

// Calendar asks for a date.
func (c *Client) Calendar(ctx context.Context, d Calendar) (time.Time, error) {
	out, err := c.value(ctx, &d)
	if err != nil {
		return time.Time{}, err
	}
	lines := strings.Split(out, "\n")
	t, err := time.ParseInLocation(calendarLayout, trimOutput(lines[len(lines)-1]), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing calendar output: %w", err)
	}
	return t, nil
}

// Color asks for a color.
func (c *Client) Color(ctx context.Context, d Color) (color.NRGBA, error) {
	out, err := c.value(ctx, &d)
	if err != nil {
		return color.NRGBA{}, err
	}
	return ParseColor(out)
}

// DND shows a drop target and returns what was dropped.
func (c *Client) DND(ctx context.Context, d DND) (string, error) {
	return c.value(ctx, &d)
}

// Entry asks for a line of text.
func (c *Client) Entry(ctx context.Context, d Entry) (string, error) {
	return c.value(ctx, &d)
}

// File asks for paths.
func (c *Client) File(ctx context.Context, d File) ([]string, error) {
	out, err := c.value(ctx, &d)
	if err != nil {
		return nil, err
	}
	return splitValues(out, d.separator(), d.Quoted), nil
}

// Font asks for a font.
func (c *Client) Font(ctx context.Context, d Font) (FontSpec, error) {
	out, err := c.value(ctx, &d)
	if err != nil {
		return FontSpec{}, err
	}
	return ParseFont(out)
}

// List shows a list and returns the selected rows, one slice of cells per
// row.
func (c *Client) List(ctx context.Context, d List) ([][]string, error) {
	out, err := c.value(ctx, &d)
	if err != nil {
		return nil, err
	}
	var rows [][]string
	for _, line := range strings.Split(out, "\n") {
		if cells := splitValues(line, d.separator(), d.Quoted); cells != nil {
			rows = append(rows, cells)
		}
	}
	return rows, nil
}

// Scale asks for an integer.
func (c *Client) Scale(ctx context.Context, d Scale) (int, error) {
	out, err := c.value(ctx, &d)
	if err != nil {
		return 0, err
	}
	lines := strings.Split(out, "\n")
	n, err := strconv.Atoi(trimOutput(lines[len(lines)-1]))
	if err != nil {
		return 0, fmt.Errorf("parsing scale output: %w", err)
	}
	return n, nil
}

// TextInfo shows text and returns the (possibly edited) contents.
func (c *Client) TextInfo(ctx context.Context, d TextInfo) (string, error) {
	return c.value(ctx, &d)
}

// Notify shows a notification icon and returns its output once closed.
func (c *Client) Notify(ctx context.Context, d Notify) (string, error) {
	return c.value(ctx, &d)
}

// Icons shows an icon box and returns the exit code.
func (c *Client) Icons(ctx context.Context, d Icons) (int, error) {
	resp, err := c.Run(ctx, &d)
	if err != nil {
		return 0, err
	}
	return resp.ExitCode, nil
}

// Print shows the print dialog.
func (c *Client) Print(ctx context.Context, d Print) error {
	_, err := c.value(ctx, &d)
	return err
}

// HTML shows a web page and returns its output.
func (c *Client) HTML(ctx context.Context, d HTML) (string, error) {
	return c.value(ctx, &d)
}

// Picture shows an image.
func (c *Client) Picture(ctx context.Context, d Picture) error {
	_, err := c.value(ctx, &d)
	return err
}

// Form shows a form and returns the value of every field by index.
// Cancel, Escape, and timeout yield ErrCancelled; custom button codes are
// reported in FormResult.ExitCode alongside the values.
func (c *Client) Form(ctx context.Context, d Form) (FormResult, error) {
	resp, err := c.Run(ctx, &d)
	if err != nil {
		return FormResult{}, err
	}
	if err := statusError(resp.ExitCode); err != nil {
		return FormResult{}, err
	}
	return FormResult{
		Values:   parseForm(resp.Output, d.Fields, d.separator(), d.Quoted),
		ExitCode: resp.ExitCode,
	}, nil
}
