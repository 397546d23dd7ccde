// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package progress drives a listening progress dialog across a fixed number
// of work items and notices when the user closes it early.
package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/softgeekro/nemo-actions/internal/yad"
)

// State is the lifecycle position of a Driver.
type State int

const (
	Idle State = iota
	Running
	Cancelled
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Cancelled:
		return "cancelled"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Opener starts listening dialogs. *yad.Client implements it.
type Opener interface {
	Listen(ctx context.Context, d yad.Dialog) (*yad.Channel, error)
}

// Driver feeds one progress dialog. It is not safe for concurrent use.
type Driver struct {
	opener Opener
	dialog yad.Progress
	total  int

	done  int
	state State
	ch    *yad.Channel
}

// New returns an idle driver for total items.
func New(o Opener, d yad.Progress, total int) *Driver {
	return &Driver{opener: o, dialog: d, total: total}
}

// Percent returns done as a percentage of total. An empty batch is complete.
func Percent(done, total int) float64 {
	if total <= 0 {
		return 100
	}
	return float64(done) / float64(total) * 100
}

// Start opens the dialog.
func (d *Driver) Start(ctx context.Context) error {
	if d.state != Idle {
		return fmt.Errorf("progress already started (%s)", d.state)
	}
	ch, err := d.opener.Listen(ctx, &d.dialog)
	if err != nil {
		return fmt.Errorf("opening progress dialog: %w", err)
	}
	d.ch = ch
	d.state = Running
	if d.total <= 0 {
		d.state = Completed
	}
	return nil
}

// Step records one finished item and updates the bar, adding msg to the
// label when it is not empty. It returns yad.ErrCancelled once the user has
// closed the dialog.
func (d *Driver) Step(msg string) error {
	switch d.state {
	case Idle:
		return errors.New("progress not started")
	case Cancelled:
		return yad.ErrCancelled
	case Completed:
		return errors.New("progress already completed")
	}
	d.done++
	if err := d.ch.Progress(Percent(d.done, d.total), msg); err != nil {
		if yad.IsCancelled(err) {
			d.state = Cancelled
		}
		return err
	}
	if d.done >= d.total {
		d.state = Completed
	}
	return nil
}

// Cancelled reports whether the user closed the dialog before every item was
// done. Call it between items.
func (d *Driver) Cancelled() bool {
	if d.state == Running && d.ch != nil && d.ch.Exited() {
		d.state = Cancelled
	}
	return d.state == Cancelled
}

// State returns the current state.
func (d *Driver) State() State { return d.state }

// Done returns the number of finished items.
func (d *Driver) Done() int { return d.done }

// Finish closes the dialog's input and waits for it. A dialog still running
// with items left is killed first.
func (d *Driver) Finish() error {
	if d.ch == nil {
		return nil
	}
	if d.state == Running {
		_ = d.ch.Kill()
	}
	_, err := d.ch.Close()
	d.ch = nil
	return err
}
