// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package yad

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/softgeekro/nemo-actions/internal/command"
)

// Tab is one dialog swallowed by a notebook or paned container.
type Tab struct {
	Label  string
	Dialog Dialog
}

// Notebook shows several dialogs as tabs of one window.
type Notebook struct {
	Common
	// Key identifies the container to its plugs; zero picks a random key.
	Key int
	// TabPos is one of top, bottom, left, right.
	TabPos     string
	TabBorders int
	Tabs       []Tab
}

func (d *Notebook) common() *Common { return &d.Common }

func (d *Notebook) build(b *argBuilder) error {
	b.mode("notebook")
	b.always("key", strconv.Itoa(d.Key))
	b.choice("tab-pos", d.TabPos, "top", "bottom", "left", "right")
	if d.TabBorders < 0 {
		b.warn("tab-borders", d.TabBorders, "negative value")
	} else {
		b.num("tab-borders", d.TabBorders)
	}
	for _, t := range d.Tabs {
		b.always("tab", t.Label)
	}
	return nil
}

// Paned shows two dialogs side by side in one window.
type Paned struct {
	Common
	Key int
	// Orient is horizontal or vertical.
	Orient   string
	Splitter int
	Panes    [2]Tab
}

func (d *Paned) common() *Common { return &d.Common }

func (d *Paned) build(b *argBuilder) error {
	b.mode("paned")
	b.always("key", strconv.Itoa(d.Key))
	b.choice("orient", d.Orient, "horizontal", "vertical")
	if d.Splitter < 0 {
		b.warn("splitter", d.Splitter, "negative value")
	} else {
		b.num("splitter", d.Splitter)
	}
	return nil
}

func containerKey() int {
	return 10000 + rand.IntN(10000)
}

// Notebook shows the tabs and returns each tab's output by 1-based tab
// number.
func (c *Client) Notebook(ctx context.Context, d Notebook) (map[int]string, error) {
	if d.Key == 0 {
		d.Key = containerKey()
	}
	return c.runContainer(ctx, &d, d.Key, d.Tabs)
}

// Paned shows both panes and returns each pane's output by 1-based number.
func (c *Client) Paned(ctx context.Context, d Paned) (map[int]string, error) {
	if d.Key == 0 {
		d.Key = containerKey()
	}
	return c.runContainer(ctx, &d, d.Key, d.Panes[:])
}

// runContainer starts every tab as a plug of key, runs the container dialog,
// and collects the plugs' output once it closes.
func (c *Client) runContainer(ctx context.Context, container Dialog, key int, tabs []Tab) (map[int]string, error) {
	plugs := make([]command.Process, 0, len(tabs))
	stop := func() {
		for _, p := range plugs {
			_ = p.Kill()
			_, _ = p.Wait()
		}
	}

	for i, t := range tabs {
		if t.Dialog == nil {
			stop()
			return nil, fmt.Errorf("tab %d (%s) has no dialog", i+1, t.Label)
		}
		switch t.Dialog.(type) {
		case *Notebook, *Paned:
			stop()
			return nil, fmt.Errorf("tab %d (%s): containers cannot be nested", i+1, t.Label)
		}
		if l, ok := t.Dialog.(listener); ok && l.listens() {
			stop()
			return nil, fmt.Errorf("tab %d (%s): plug and listen cannot be used together", i+1, t.Label)
		}
		args, err := c.args(t.Dialog, "--plug="+strconv.Itoa(key), "--tabnum="+strconv.Itoa(i+1))
		if err != nil {
			stop()
			return nil, fmt.Errorf("tab %d (%s): %w", i+1, t.Label, err)
		}
		p, err := c.exec.Start(ctx, c.binary, args)
		if err != nil {
			stop()
			return nil, fmt.Errorf("starting tab %d (%s): %w", i+1, t.Label, err)
		}
		_ = p.CloseInput()
		plugs = append(plugs, p)
	}

	resp, err := c.Run(ctx, container)
	if err != nil {
		stop()
		return nil, err
	}
	if err := statusError(resp.ExitCode); err != nil {
		stop()
		return nil, err
	}

	out := make(map[int]string, len(plugs))
	for i, p := range plugs {
		res, err := p.Wait()
		if err != nil {
			return nil, fmt.Errorf("collecting tab %d: %w", i+1, err)
		}
		out[i+1] = trimOutput(string(res.Stdout))
	}
	return out, nil
}
