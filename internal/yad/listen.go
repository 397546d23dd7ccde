// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package yad

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/softgeekro/nemo-actions/internal/command"
)

// Channel is the input side of a listening dialog. Every value is written as
// one line and flushed immediately so the dialog reflects it at once.
type Channel struct {
	proc   command.Process
	binary string

	mu sync.Mutex
	w  *bufio.Writer
}

// Listen starts d in listening mode. Only progress dialogs and list, text,
// notification, and icon dialogs with Listen set qualify.
func (c *Client) Listen(ctx context.Context, d Dialog) (*Channel, error) {
	l, ok := d.(listener)
	if !ok || !l.listens() {
		return nil, ErrNotListening
	}
	args, err := c.Args(d)
	if err != nil {
		return nil, err
	}
	c.log.WithField("args", args).Debug("starting listening dialog")
	proc, err := c.exec.Start(ctx, c.binary, args)
	if err != nil {
		return nil, fmt.Errorf("starting %s: %w", c.binary, err)
	}
	return &Channel{proc: proc, binary: c.binary, w: bufio.NewWriter(proc)}, nil
}

// Send writes each value on its own line. It returns ErrCancelled once the
// dialog has exited.
func (ch *Channel) Send(values ...string) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.Exited() {
		return ErrCancelled
	}
	for _, v := range values {
		// A value must not break the one-value-per-line framing.
		v = strings.ReplaceAll(v, "\n", " ")
		ch.w.WriteString(v)
		ch.w.WriteByte('\n')
	}
	if err := ch.w.Flush(); err != nil {
		ch.w.Reset(ch.proc)
		if ch.Exited() {
			return ErrCancelled
		}
		return fmt.Errorf("writing to %s: %w", ch.binary, err)
	}
	return nil
}

// SendPair writes a "key:value" command, the form notification and
// multi-progress dialogs expect.
func (ch *Channel) SendPair(key, value string) error {
	return ch.Send(key + ":" + value)
}

// Progress sets a progress dialog's bar to percent and, when msg is not
// empty, its label.
func (ch *Channel) Progress(percent float64, msg string) error {
	lines := []string{formatPercent(percent)}
	if msg != "" {
		lines = append(lines, "# "+msg)
	}
	return ch.Send(lines...)
}

// Bar sets bar n (1-based) of a multi-progress dialog.
func (ch *Channel) Bar(n int, percent float64, msg string) error {
	key := strconv.Itoa(n)
	lines := []string{key + ":" + formatPercent(percent)}
	if msg != "" {
		lines = append(lines, key+":#"+msg)
	}
	return ch.Send(lines...)
}

func formatPercent(p float64) string {
	p = math.Max(0, math.Min(100, p))
	if p == math.Trunc(p) {
		return strconv.Itoa(int(p))
	}
	return strconv.FormatFloat(p, 'f', 2, 64)
}

// Done is closed when the dialog process exits.
func (ch *Channel) Done() <-chan struct{} { return ch.proc.Done() }

// Exited reports whether the dialog has already exited.
func (ch *Channel) Exited() bool {
	select {
	case <-ch.proc.Done():
		return true
	default:
		return false
	}
}

// Close ends the input stream and waits for the dialog to exit.
func (ch *Channel) Close() (Response, error) {
	res, err := ch.proc.Wait()
	if err != nil {
		return Response{}, err
	}
	return Response{Output: trimOutput(string(res.Stdout)), ExitCode: res.ExitCode}, nil
}

// Kill closes the dialog without waiting for the user.
func (ch *Channel) Kill() error {
	return ch.proc.Kill()
}
