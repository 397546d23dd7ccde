// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package yad

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Dialog is one yad invocation. Each dialog kind is its own struct; the set
// is closed to this package.
type Dialog interface {
	common() *Common
	build(b *argBuilder) error
}

// listener is implemented by dialogs that can run in listening mode.
type listener interface {
	listens() bool
}

const (
	defaultSeparator     = "|"
	defaultItemSeparator = "!"

	// calendarLayout is the output format the wrapper requests from the
	// calendar dialog so parsing does not depend on the user's locale.
	calendarLayout = "2006-01-02"
	calendarFormat = "%Y-%m-%d"
)

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Message is a plain text dialog. With the default buttons it doubles as an
// information box; Client.Error and Client.Question set image and buttons
// for the other uses.
type Message struct {
	Common
}

func (d *Message) common() *Common { return &d.Common }

func (d *Message) build(b *argBuilder) error { return nil }

// Calendar asks for a date.
type Calendar struct {
	Common
	Day   int
	Month int
	Year  int
	// Details is a file of "<date> <description>" lines with dates in
	// %m/%d/%Y format.
	Details string
}

func (d *Calendar) common() *Common { return &d.Common }

func (d *Calendar) build(b *argBuilder) error {
	b.mode("calendar")
	if d.Day < 0 || d.Day > 31 {
		b.warn("day", d.Day, "out of range")
	} else {
		b.num("day", d.Day)
	}
	if d.Month < 0 || d.Month > 12 {
		b.warn("month", d.Month, "out of range")
	} else {
		b.num("month", d.Month)
	}
	if d.Year < 0 {
		b.warn("year", d.Year, "out of range")
	} else {
		b.num("year", d.Year)
	}
	if err := b.file("details", d.Details); err != nil {
		return err
	}
	b.always("date-format", calendarFormat)
	return nil
}

// ColorMode selects the output notation of the color dialog.
type ColorMode string

const (
	ColorHex ColorMode = "hex"
	ColorRGB ColorMode = "rgb"
)

// Color asks for a color.
type Color struct {
	Common
	// Init is the preselected color, "#rrggbb".
	Init string
	// ShowExtra adds the extra color widgets.
	ShowExtra bool
	Palette   string
	Alpha     bool
	Mode      ColorMode
}

func (d *Color) common() *Common { return &d.Common }

func (d *Color) build(b *argBuilder) error {
	b.mode("color")
	if d.Init != "" {
		if strings.HasPrefix(d.Init, "#") {
			b.always("init-color", d.Init)
		} else {
			b.warn("init-color", d.Init, "must start with #")
		}
	}
	b.flag("extra", d.ShowExtra)
	if err := b.file("palette", d.Palette); err != nil {
		return err
	}
	b.flag("alpha", d.Alpha)
	switch d.Mode {
	case "":
	case ColorHex, ColorRGB:
		b.always("mode", string(d.Mode))
	default:
		b.warn("mode", d.Mode, "must be hex or rgb")
		b.always("mode", string(ColorHex))
	}
	return nil
}

// DND shows a drop target.
type DND struct {
	Common
	// Command runs for every dropped item.
	Command string
	Tooltip bool
}

func (d *DND) common() *Common { return &d.Common }

func (d *DND) build(b *argBuilder) error {
	b.mode("dnd")
	b.str("command", d.Command)
	b.flag("tooltip", d.Tooltip)
	return nil
}

// NumericRange configures a spin button.
type NumericRange struct {
	Min       float64
	Max       float64
	Step      float64
	Precision int
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Entry asks for a line of text, optionally picked from Items.
type Entry struct {
	Common
	Label      string
	Value      string
	HideText   bool
	Completion bool
	Editable   bool
	Numeric    *NumericRange

	LeftIcon        string
	LeftIconAction  string
	RightIcon       string
	RightIconAction string

	Items []string
}

func (d *Entry) common() *Common { return &d.Common }

func (d *Entry) build(b *argBuilder) error {
	b.mode("entry")
	b.str("entry-label", d.Label)
	b.str("entry-text", d.Value)
	b.flag("hide-text", d.HideText)
	b.flag("completion", d.Completion)
	b.flag("editable", d.Editable)
	if err := b.icon("licon", d.LeftIcon); err != nil {
		return err
	}
	b.str("licon-action", d.LeftIconAction)
	if err := b.icon("ricon", d.RightIcon); err != nil {
		return err
	}
	b.str("ricon-action", d.RightIconAction)

	if n := d.Numeric; n != nil {
		if n.Min > n.Max || n.Step < 0 || n.Precision < 0 {
			b.warn("numeric", *n, "invalid range")
		} else {
			b.flag("numeric", true)
			b.value(formatNumber(n.Min))
			b.value(formatNumber(n.Max))
			b.value(formatNumber(n.Step))
			b.value(strconv.Itoa(n.Precision))
		}
	}
	for _, item := range d.Items {
		b.value(item)
	}
	return nil
}

// Icons shows a box of launchers read from .desktop files.
type Icons struct {
	Common
	Dir         string
	Generic     bool
	SortByName  bool
	Descend     bool
	Listen      bool
	ItemWidth   int
	Compact     bool
	SingleClick bool
	// Term is the terminal pattern, e.g. "xterm -e %s".
	Term string
}

func (d *Icons) common() *Common { return &d.Common }
func (d *Icons) listens() bool   { return d.Listen }

func (d *Icons) build(b *argBuilder) error {
	b.mode("icons")
	if d.Dir != "" {
		info, err := os.Stat(d.Dir)
		if err != nil || !info.IsDir() {
			return &MissingFileError{Option: "read-dir", Path: d.Dir}
		}
		b.always("read-dir", d.Dir)
	}
	b.flag("generic", d.Generic)
	b.flag("sort-by-name", d.SortByName)
	b.flag("descend", d.Descend)
	b.flag("listen", d.Listen)
	if d.ItemWidth < 0 {
		b.warn("item-width", d.ItemWidth, "negative width")
	} else {
		b.num("item-width", d.ItemWidth)
	}
	b.flag("compact", d.Compact)
	b.flag("single-click", d.SingleClick)
	b.str("term", d.Term)
	return nil
}

// FileFilter restricts the file chooser to Patterns, shown as Name.
type FileFilter struct {
	Name     string
	Patterns []string
}

// File asks for one or more paths.
type File struct {
	Common
	Filename  string
	Multiple  bool
	Directory bool
	Save      bool
	Preview   bool
	Quoted    bool
	// ConfirmOverwrite, when set, is the question shown before overwriting
	// in save mode.
	ConfirmOverwrite string
	Separator        string
	Filters          []FileFilter
}

func (d *File) common() *Common { return &d.Common }

func (d *File) separator() string { return orDefault(d.Separator, defaultSeparator) }

func (d *File) build(b *argBuilder) error {
	b.mode("file")
	b.str("filename", d.Filename)
	b.flag("multiple", d.Multiple)
	b.flag("directory", d.Directory)
	b.flag("save", d.Save)
	b.always("separator", d.separator())
	b.flag("add-preview", d.Preview)
	b.flag("quoted-output", d.Quoted)
	b.str("confirm-overwrite", d.ConfirmOverwrite)
	for _, f := range d.Filters {
		if len(f.Patterns) == 0 {
			b.warn("file-filter", f, "no patterns")
			continue
		}
		spec := strings.Join(f.Patterns, " ")
		if f.Name != "" {
			spec = f.Name + " | " + spec
		}
		b.always("file-filter", spec)
	}
	return nil
}

// FontSpec is a Pango font description split into its parts.
type FontSpec struct {
	Family string
	Style  string
	Size   int
}

func (f FontSpec) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{f.Family, f.Style} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if f.Size > 0 {
		parts = append(parts, strconv.Itoa(f.Size))
	}
	return strings.Join(parts, " ")
}

// Font asks for a font.
type Font struct {
	Common
	Font    FontSpec
	Preview string
}

func (d *Font) common() *Common { return &d.Common }

func (d *Font) build(b *argBuilder) error {
	b.mode("font")
	b.str("fontname", d.Font.String())
	b.str("preview", d.Preview)
	return nil
}

// ColumnType is the renderer of a list column.
type ColumnType string

const (
	ColumnText    ColumnType = "TEXT"
	ColumnNumber  ColumnType = "NUM"
	ColumnFloat   ColumnType = "FLT"
	ColumnCheck   ColumnType = "CHK"
	ColumnRadio   ColumnType = "RD"
	ColumnBar     ColumnType = "BAR"
	ColumnImage   ColumnType = "IMG"
	ColumnHidden  ColumnType = "HD"
	ColumnTooltip ColumnType = "TIP"
)

var columnTypes = map[ColumnType]bool{
	ColumnText: true, ColumnNumber: true, ColumnFloat: true, ColumnCheck: true,
	ColumnRadio: true, ColumnBar: true, ColumnImage: true, ColumnHidden: true,
	ColumnTooltip: true,
}

// Column is one list column.
type Column struct {
	Name string
	Type ColumnType
}

// List shows rows in columns and returns the selected rows.
type List struct {
	Common
	Columns []Column
	// BoolStyle is "checklist" or "radiolist".
	BoolStyle    string
	Separator    string
	Multiple     bool
	Editable     bool
	NoHeaders    bool
	NoClick      bool
	PrintAll     bool
	Listen       bool
	Quoted       bool
	PrintColumn  int
	HideColumn   int
	ExpandColumn int
	SearchColumn int
	Limit        int
	// Ellipsize is one of none, start, middle, end.
	Ellipsize    string
	DClickAction string
	RegexSearch  bool
	Rows         [][]string
}

func (d *List) common() *Common { return &d.Common }
func (d *List) listens() bool   { return d.Listen }

func (d *List) separator() string { return orDefault(d.Separator, defaultSeparator) }

func (d *List) build(b *argBuilder) error {
	b.mode("list")
	for _, col := range d.Columns {
		typ := col.Type
		if typ == "" {
			typ = ColumnText
		}
		if !columnTypes[typ] {
			b.warn("column", col.Type, "unknown column type, using TEXT")
			typ = ColumnText
		}
		b.always("column", col.Name+":"+string(typ))
	}
	switch d.BoolStyle {
	case "":
	case "checklist", "radiolist":
		b.flag(d.BoolStyle, true)
	default:
		b.warn("bool-style", d.BoolStyle, "must be checklist or radiolist")
	}
	b.always("separator", d.separator())
	b.flag("multiple", d.Multiple)
	b.flag("editable", d.Editable)
	b.flag("no-headers", d.NoHeaders)
	b.flag("no-click", d.NoClick)
	b.flag("print-all", d.PrintAll)
	b.flag("listen", d.Listen)
	b.flag("quoted-output", d.Quoted)
	for _, c := range []struct {
		name  string
		value int
	}{
		{"print-column", d.PrintColumn},
		{"hide-column", d.HideColumn},
		{"expand-column", d.ExpandColumn},
		{"search-column", d.SearchColumn},
		{"limit", d.Limit},
	} {
		if c.value < 0 {
			b.warn(c.name, c.value, "negative value")
			continue
		}
		b.num(c.name, c.value)
	}
	b.choice("ellipsize", d.Ellipsize, "none", "start", "middle", "end")
	b.str("dclick-action", d.DClickAction)
	b.flag("regex-search", d.RegexSearch)

	width := len(d.Columns)
	for i, row := range d.Rows {
		if width > 0 && len(row) != width {
			return fmt.Errorf("list row %d has %d cells, want %d", i, len(row), width)
		}
		for _, cell := range row {
			b.value(cell)
		}
	}
	return nil
}

// MenuItem is one entry of a notification icon's popup menu.
type MenuItem struct {
	Label  string
	Action string
	Icon   string
}

// Notify shows a notification-area icon.
type Notify struct {
	Common
	Command       string
	Listen        bool
	Separator     string
	ItemSeparator string
	Menu          []MenuItem
	NoMiddle      bool
	Hidden        bool
	Icon          string
}

func (d *Notify) common() *Common { return &d.Common }
func (d *Notify) listens() bool   { return d.Listen }

func (d *Notify) build(b *argBuilder) error {
	b.mode("notification")
	b.str("command", d.Command)
	b.flag("listen", d.Listen)
	sep := orDefault(d.Separator, defaultSeparator)
	itemSep := orDefault(d.ItemSeparator, defaultItemSeparator)
	b.always("separator", sep)
	b.always("item-separator", itemSep)
	if len(d.Menu) > 0 {
		b.always("menu", menuSpec(d.Menu, sep, itemSep))
	}
	b.flag("no-middle", d.NoMiddle)
	b.flag("hidden", d.Hidden)
	if err := b.icon("image", d.Icon); err != nil {
		return err
	}
	return nil
}

func menuSpec(items []MenuItem, sep, itemSep string) string {
	entries := make([]string, 0, len(items))
	for _, m := range items {
		parts := []string{m.Label, m.Action}
		if m.Icon != "" {
			parts = append(parts, m.Icon)
		}
		entries = append(entries, strings.Join(parts, itemSep))
	}
	return strings.Join(entries, sep)
}

// Print shows the print dialog for a file.
type Print struct {
	Common
	Filename string
	// Type is one of TEXT, IMAGE, RAW.
	Type     string
	Headers  bool
	Preview  bool
	Fontname string
}

func (d *Print) common() *Common { return &d.Common }

func (d *Print) build(b *argBuilder) error {
	b.mode("print")
	if d.Filename == "" {
		return fmt.Errorf("print dialog needs a filename")
	}
	if err := b.file("filename", d.Filename); err != nil {
		return err
	}
	b.choice("type", d.Type, "TEXT", "IMAGE", "RAW")
	b.flag("headers", d.Headers)
	b.flag("add-preview", d.Preview)
	b.str("fontname", d.Fontname)
	return nil
}

// TextInfo shows text from a file or, when listening, from stdin.
type TextInfo struct {
	Common
	Filename string
	Editable bool
	Fore     string
	Back     string
	Fontname string
	Wrap     bool
	// Justify is one of left, right, center, fill.
	Justify string
	Margins int
	Tail    bool
	ShowURI bool
	Listen  bool
}

func (d *TextInfo) common() *Common { return &d.Common }
func (d *TextInfo) listens() bool   { return d.Listen }

func (d *TextInfo) build(b *argBuilder) error {
	b.mode("text-info")
	if err := b.file("filename", d.Filename); err != nil {
		return err
	}
	b.flag("editable", d.Editable)
	for _, c := range []struct{ name, value string }{{"fore", d.Fore}, {"back", d.Back}} {
		if c.value != "" && !strings.HasPrefix(c.value, "#") {
			b.warn(c.name, c.value, "must start with #")
			continue
		}
		b.str(c.name, c.value)
	}
	b.str("fontname", d.Fontname)
	b.flag("wrap", d.Wrap)
	b.choice("justify", d.Justify, "left", "right", "center", "fill")
	if d.Margins < 0 {
		b.warn("margins", d.Margins, "negative value")
	} else {
		b.num("margins", d.Margins)
	}
	b.flag("tail", d.Tail)
	b.flag("show-uri", d.ShowURI)
	b.flag("listen", d.Listen)
	return nil
}

// Mark labels a position on a scale.
type Mark struct {
	Name  string
	Value int
}

// Scale asks for an integer on a slider.
type Scale struct {
	Common
	Value int
	Min   int
	Max   int
	Step  int
	Page  int

	PrintPartial bool
	HideValue    bool
	Vertical     bool
	Invert       bool
	Marks        []Mark
}

func (d *Scale) common() *Common { return &d.Common }

func (d *Scale) build(b *argBuilder) error {
	b.mode("scale")
	hasRange := d.Min != 0 || d.Max != 0
	if hasRange && d.Min > d.Max {
		b.warn("max-value", d.Max, "less than min-value")
		hasRange = false
	} else if hasRange {
		b.always("min-value", strconv.Itoa(d.Min))
		b.always("max-value", strconv.Itoa(d.Max))
	}
	if hasRange && (d.Value < d.Min || d.Value > d.Max) {
		b.warn("value", d.Value, "outside min..max")
	} else {
		b.num("value", d.Value)
	}
	if d.Step < 0 {
		b.warn("step", d.Step, "negative value")
	} else {
		b.num("step", d.Step)
	}
	if d.Page < 0 {
		b.warn("page", d.Page, "negative value")
	} else if d.Page > 0 {
		b.num("page", d.Page)
	} else if d.Step > 0 {
		b.num("page", d.Step*10)
	}
	b.flag("print-partial", d.PrintPartial)
	b.flag("hide-value", d.HideValue)
	b.flag("vertical", d.Vertical)
	b.flag("invert", d.Invert)
	for _, m := range d.Marks {
		b.always("mark", m.Name+":"+strconv.Itoa(m.Value))
	}
	return nil
}

// Progress shows a progress bar fed over stdin. It is always a listening
// dialog.
type Progress struct {
	Common
	ProgressText string
	Percentage   int
	RTL          bool
	AutoClose    bool
	AutoKill     bool
	Pulsate      bool
	// EnableLog shows a log pane with this label; lines starting with "#"
	// go there.
	EnableLog   string
	LogOnTop    bool
	LogExpanded bool
	LogHeight   int
}

func (d *Progress) common() *Common { return &d.Common }
func (d *Progress) listens() bool   { return true }

func (d *Progress) build(b *argBuilder) error {
	b.mode("progress")
	b.str("progress-text", d.ProgressText)
	if d.Percentage < 0 || d.Percentage > 100 {
		b.warn("percentage", d.Percentage, "outside 0..100")
	} else {
		b.num("percentage", d.Percentage)
	}
	b.flag("rtl", d.RTL)
	b.flag("auto-close", d.AutoClose)
	b.flag("auto-kill", d.AutoKill)
	b.flag("pulsate", d.Pulsate)
	b.str("enable-log", d.EnableLog)
	b.flag("log-on-top", d.LogOnTop)
	b.flag("log-expanded", d.LogExpanded)
	if d.LogHeight < 0 {
		b.warn("log-height", d.LogHeight, "negative value")
	} else {
		b.num("log-height", d.LogHeight)
	}
	return nil
}

// BarType is the style of one bar in a multi-progress dialog.
type BarType string

const (
	BarNormal  BarType = "NORM"
	BarRTL     BarType = "RTL"
	BarPulsate BarType = "PULSE"
)

// Bar is one bar of a multi-progress dialog.
type Bar struct {
	Label string
	Type  BarType
}

// MultiProgress shows several progress bars fed over stdin.
type MultiProgress struct {
	Common
	Bars      []Bar
	Vertical  bool
	Align     string
	AutoClose bool
	AutoKill  bool
	EnableLog string
	LogOnTop  bool
	LogExpand bool
}

func (d *MultiProgress) common() *Common { return &d.Common }
func (d *MultiProgress) listens() bool   { return true }

func (d *MultiProgress) build(b *argBuilder) error {
	b.mode("multi-progress")
	if len(d.Bars) == 0 {
		return fmt.Errorf("multi-progress dialog needs at least one bar")
	}
	for _, bar := range d.Bars {
		typ := bar.Type
		switch typ {
		case BarNormal, BarRTL, BarPulsate:
		case "":
			typ = BarNormal
		default:
			b.warn("bar", bar.Type, "unknown bar type, using NORM")
			typ = BarNormal
		}
		b.always("bar", bar.Label+":"+string(typ))
	}
	b.flag("vertical", d.Vertical)
	b.choice("align", d.Align, "left", "center", "right")
	b.flag("auto-close", d.AutoClose)
	b.flag("auto-kill", d.AutoKill)
	b.str("enable-log", d.EnableLog)
	b.flag("log-on-top", d.LogOnTop)
	b.flag("log-expanded", d.LogExpand)
	return nil
}

// HTML shows a web page.
type HTML struct {
	Common
	URI      string
	Browser  bool
	PrintURI bool
	MIME     string
	Encoding string
}

func (d *HTML) common() *Common { return &d.Common }

func (d *HTML) build(b *argBuilder) error {
	b.mode("html")
	b.str("uri", d.URI)
	b.flag("browser", d.Browser)
	b.flag("print-uri", d.PrintURI)
	b.str("mime", d.MIME)
	b.str("encoding", d.Encoding)
	return nil
}

// Picture shows an image.
type Picture struct {
	Common
	Filename string
	// Size is "orig" or "fit".
	Size string
	// Inc is the zoom step.
	Inc int
}

func (d *Picture) common() *Common { return &d.Common }

func (d *Picture) build(b *argBuilder) error {
	b.mode("picture")
	if d.Filename == "" {
		return fmt.Errorf("picture dialog needs a filename")
	}
	if err := b.file("filename", d.Filename); err != nil {
		return err
	}
	b.choice("size", d.Size, "orig", "fit")
	if d.Inc < 0 {
		b.warn("inc", d.Inc, "negative value")
	} else {
		b.num("inc", d.Inc)
	}
	return nil
}
