// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package yad

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Param is a yad option not modelled by a dialog struct. Keys may be given
// in snake_case; they are emitted in kebab-case. A true bool emits a bare
// flag, false emits nothing, strings and numbers emit --key=value.
type Param struct {
	Key   string
	Value any
}

// Button adds a dialog button. Code is the exit status the button yields;
// when Command is set the button runs it instead and leaves the dialog open.
type Button struct {
	Label   string
	Code    int
	Command string
}

// Common holds the options shared by every dialog kind.
type Common struct {
	Title      string
	Text       string
	Image      string
	WindowIcon string
	Width      int
	Height     int
	Borders    int
	Timeout    int
	Geometry   string

	// TimeoutIndicator is one of top, bottom, left, right.
	TimeoutIndicator string
	// TextAlign is one of left, right, center, fill.
	TextAlign string
	// ButtonsLayout is one of spread, edge, start, end, center.
	ButtonsLayout string

	Buttons []Button

	Center            bool
	Mouse             bool
	OnTop             bool
	Fixed             bool
	Sticky            bool
	Undecorated       bool
	SkipTaskbar       bool
	Maximized         bool
	Fullscreen        bool
	NoButtons         bool
	NoMarkup          bool
	NoEscape          bool
	AlwaysPrintResult bool
	SelectableLabels  bool
	ImageOnTop        bool

	Extra []Param
}

func (c *Common) build(b *argBuilder) {
	b.str("title", c.Title)
	b.str("text", c.Text)
	b.str("image", c.Image)
	b.str("window-icon", c.WindowIcon)
	b.num("width", c.Width)
	b.num("height", c.Height)
	b.num("borders", c.Borders)
	b.num("timeout", c.Timeout)
	b.str("geometry", c.Geometry)
	b.choice("timeout-indicator", c.TimeoutIndicator, "top", "bottom", "left", "right")
	b.choice("text-align", c.TextAlign, "left", "right", "center", "fill")
	b.choice("buttons-layout", c.ButtonsLayout, "spread", "edge", "start", "end", "center")

	for _, btn := range c.Buttons {
		if btn.Label == "" {
			b.warn("button", btn, "empty label")
			continue
		}
		action := strconv.Itoa(btn.Code)
		if btn.Command != "" {
			action = btn.Command
		}
		b.always("button", btn.Label+":"+action)
	}

	b.flag("center", c.Center)
	b.flag("mouse", c.Mouse)
	b.flag("on-top", c.OnTop)
	b.flag("fixed", c.Fixed)
	b.flag("sticky", c.Sticky)
	b.flag("undecorated", c.Undecorated)
	b.flag("skip-taskbar", c.SkipTaskbar)
	b.flag("maximized", c.Maximized)
	b.flag("fullscreen", c.Fullscreen)
	b.flag("no-buttons", c.NoButtons)
	b.flag("no-markup", c.NoMarkup)
	b.flag("no-escape", c.NoEscape)
	b.flag("always-print-result", c.AlwaysPrintResult)
	b.flag("selectable-labels", c.SelectableLabels)
	b.flag("image-on-top", c.ImageOnTop)

	for _, p := range c.Extra {
		b.param(p)
	}
}

// argBuilder accumulates a yad argument vector. Options come first,
// positional values (form field values, list rows) last.
type argBuilder struct {
	args       []string
	positional []string
	log        logrus.FieldLogger
}

func newArgBuilder(log logrus.FieldLogger) *argBuilder {
	return &argBuilder{log: log}
}

func (b *argBuilder) mode(name string) {
	b.args = append(b.args, "--"+name)
}

func (b *argBuilder) flag(name string, on bool) {
	if on {
		b.args = append(b.args, "--"+name)
	}
}

func (b *argBuilder) always(name, value string) {
	b.args = append(b.args, "--"+name+"="+value)
}

func (b *argBuilder) str(name, value string) {
	if value != "" {
		b.always(name, value)
	}
}

func (b *argBuilder) num(name string, value int) {
	if value != 0 {
		b.always(name, strconv.Itoa(value))
	}
}

// choice emits value when it is one of allowed and warns otherwise.
func (b *argBuilder) choice(name, value string, allowed ...string) {
	if value == "" {
		return
	}
	if !slices.Contains(allowed, value) {
		b.warn(name, value, "must be one of "+strings.Join(allowed, ", "))
		return
	}
	b.always(name, value)
}

// file emits path after checking it exists.
func (b *argBuilder) file(name, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return &MissingFileError{Option: name, Path: path}
	}
	b.always(name, path)
	return nil
}

// icon emits an icon option. Values containing a path separator must be
// existing files; anything else is taken as an icon theme name.
func (b *argBuilder) icon(name, value string) error {
	if strings.ContainsRune(value, os.PathSeparator) {
		return b.file(name, value)
	}
	b.str(name, value)
	return nil
}

func (b *argBuilder) value(v string) {
	b.positional = append(b.positional, v)
}

func (b *argBuilder) param(p Param) {
	key := strings.ReplaceAll(strings.TrimLeft(p.Key, "-"), "_", "-")
	if key == "" {
		b.warn("param", p.Value, "empty key")
		return
	}
	switch v := p.Value.(type) {
	case bool:
		b.flag(key, v)
	case string:
		b.always(key, v)
	case int:
		b.always(key, strconv.Itoa(v))
	case int64:
		b.always(key, strconv.FormatInt(v, 10))
	case float64:
		b.always(key, strconv.FormatFloat(v, 'f', -1, 64))
	case fmt.Stringer:
		b.always(key, v.String())
	default:
		b.warn(key, p.Value, fmt.Sprintf("unsupported value type %T", p.Value))
	}
}

func (b *argBuilder) warn(option string, value any, reason string) {
	b.log.WithFields(logrus.Fields{
		"option": option,
		"value":  value,
	}).Warn("dropping invalid dialog option: " + reason)
}

// list returns the final argument vector. A "--" terminator is inserted when
// a positional value could be mistaken for an option.
func (b *argBuilder) list() []string {
	out := append([]string(nil), b.args...)
	for _, v := range b.positional {
		if strings.HasPrefix(v, "-") {
			out = append(out, "--")
			break
		}
	}
	return append(out, b.positional...)
}
