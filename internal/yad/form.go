// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package yad

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldKind is the yad form field type.
type FieldKind string

const (
	FieldEntry         FieldKind = ""
	FieldLabel         FieldKind = "LBL"
	FieldHidden        FieldKind = "H"
	FieldReadOnly      FieldKind = "RO"
	FieldNumeric       FieldKind = "NUM"
	FieldCheck         FieldKind = "CHK"
	FieldCombo         FieldKind = "CB"
	FieldEditableCombo FieldKind = "CBE"
	FieldCompletion    FieldKind = "CE"
	FieldFile          FieldKind = "FL"
	FieldSaveFile      FieldKind = "SFL"
	FieldDir           FieldKind = "DIR"
	FieldCreateDir     FieldKind = "CDIR"
	FieldFont          FieldKind = "FN"
	FieldMultiFile     FieldKind = "MFL"
	FieldMultiDir      FieldKind = "MDIR"
	FieldDate          FieldKind = "DT"
	FieldScale         FieldKind = "SCL"
	FieldColor         FieldKind = "CLR"
	FieldButton        FieldKind = "BTN"
	FieldFullButton    FieldKind = "FBTN"
	FieldText          FieldKind = "TXT"
	FieldLink          FieldKind = "LINK"
)

var fieldKinds = map[FieldKind]bool{
	FieldEntry: true, FieldLabel: true, FieldHidden: true, FieldReadOnly: true,
	FieldNumeric: true, FieldCheck: true, FieldCombo: true, FieldEditableCombo: true,
	FieldCompletion: true, FieldFile: true, FieldSaveFile: true, FieldDir: true,
	FieldCreateDir: true, FieldFont: true, FieldMultiFile: true, FieldMultiDir: true,
	FieldDate: true, FieldScale: true, FieldColor: true, FieldButton: true,
	FieldFullButton: true, FieldText: true, FieldLink: true,
}

// NumericValue is the initial state of a NUM field.
type NumericValue struct {
	Value     float64
	Min       float64
	Max       float64
	Step      float64
	Precision int
}

// Field is one row of a form: its kind, its label, and its initial value.
// Combo and font fields take their choices from Items; a combo item
// prefixed with "^" is preselected. NUM fields read Numeric when set.
type Field struct {
	Kind    FieldKind
	Label   string
	Value   string
	Items   []string
	Numeric *NumericValue
}

// Text returns a plain entry field.
func Text(label, value string) Field {
	return Field{Kind: FieldEntry, Label: label, Value: value}
}

// Label returns a label-only field.
func Label(text string) Field {
	return Field{Kind: FieldLabel, Label: text}
}

// Combo returns a read-only combo field.
func Combo(label string, items ...string) Field {
	return Field{Kind: FieldCombo, Label: label, Items: items}
}

// Check returns a checkbox field.
func Check(label string, checked bool) Field {
	return Field{Kind: FieldCheck, Label: label, Value: strings.ToUpper(strconv.FormatBool(checked))}
}

// Form shows a set of input fields and returns their values.
type Form struct {
	Common
	Fields []Field
	// Align is the label alignment: left, center, or right.
	Align         string
	Columns       int
	Separator     string
	ItemSeparator string
	Scroll        bool
	Quoted        bool
	// DateFormat is the strftime format of DT fields.
	DateFormat  string
	OutputByRow bool
}

func (d *Form) common() *Common { return &d.Common }

func (d *Form) separator() string     { return orDefault(d.Separator, defaultSeparator) }
func (d *Form) itemSeparator() string { return orDefault(d.ItemSeparator, defaultItemSeparator) }

func (d *Form) build(b *argBuilder) error {
	b.mode("form")
	b.choice("align", d.Align, "left", "right", "center")
	if d.Columns < 0 {
		b.warn("columns", d.Columns, "negative value")
	} else {
		b.num("columns", d.Columns)
	}
	b.always("separator", d.separator())
	b.always("item-separator", d.itemSeparator())
	b.flag("scroll", d.Scroll)
	b.flag("quoted-output", d.Quoted)
	b.str("date-format", d.DateFormat)
	b.flag("output-by-row", d.OutputByRow)

	for _, f := range d.Fields {
		kind := f.Kind
		if !fieldKinds[kind] {
			b.warn("field", f.Kind, "unknown field type, using a text entry")
			kind = FieldEntry
		}
		if kind == FieldEntry {
			b.always("field", f.Label)
		} else {
			b.always("field", f.Label+":"+string(kind))
		}
		b.value(fieldValue(b, kind, f, d.itemSeparator()))
	}
	return nil
}

func fieldValue(b *argBuilder, kind FieldKind, f Field, itemSep string) string {
	switch kind {
	case FieldLabel:
		return ""
	case FieldNumeric:
		n := f.Numeric
		if n == nil {
			return f.Value
		}
		if n.Min > n.Max || n.Value < n.Min || n.Value > n.Max {
			b.warn("field", *n, "numeric value outside its range")
			return formatNumber(n.Value)
		}
		return formatNumber(n.Value) + itemSep +
			formatNumber(n.Min) + ".." + formatNumber(n.Max) + itemSep +
			formatNumber(n.Step) + itemSep + strconv.Itoa(n.Precision)
	case FieldCheck:
		v := strings.ToUpper(f.Value)
		if v != "TRUE" && v != "FALSE" {
			if f.Value != "" {
				b.warn("field", f.Value, "check value must be TRUE or FALSE")
			}
			return "FALSE"
		}
		return v
	case FieldCombo, FieldEditableCombo, FieldCompletion:
		if len(f.Items) == 0 {
			return f.Value
		}
		return strings.Join(f.Items, itemSep)
	case FieldFont:
		if len(f.Items) == 0 {
			return f.Value
		}
		return strings.Join(f.Items, " ")
	}
	return f.Value
}

// FormResult holds the values a form returned, keyed by field index.
type FormResult struct {
	Values   map[int]string
	ExitCode int
}

// Get returns the value of field i, or "" when the form returned none.
func (r FormResult) Get(i int) string {
	return r.Values[i]
}

// Bool reports whether field i, a check field, was ticked.
func (r FormResult) Bool(i int) bool {
	return strings.EqualFold(r.Values[i], "TRUE")
}

// parseForm zips the last line of out, split on sep, with the fields.
// Missing trailing values are left out of the map.
func parseForm(out string, fields []Field, sep string, quoted bool) map[int]string {
	values := make(map[int]string, len(fields))
	out = trimOutput(out)
	if out == "" {
		return values
	}
	lines := strings.Split(out, "\n")
	parts := strings.Split(lines[len(lines)-1], sep)
	for i := range fields {
		if i >= len(parts) {
			break
		}
		v := trimOutput(parts[i])
		if quoted {
			v = unquote(v)
		}
		values[i] = v
	}
	return values
}

// ParseFields reads a form description with one field per line in the
// form "TYPE:LABEL:VALUE". TYPE may be empty for a plain entry. Combo and
// font values list their items separated by itemSep ("!" when empty).
// Blank lines are skipped.
func ParseFields(spec, itemSep string) ([]Field, error) {
	itemSep = orDefault(itemSep, defaultItemSeparator)
	var fields []Field
	for n, line := range strings.Split(spec, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ":", 3)
		if len(parts) < 2 {
			return nil, fmt.Errorf("field line %d: want TYPE:LABEL[:VALUE], got %q", n+1, line)
		}
		f := Field{Kind: FieldKind(strings.ToUpper(parts[0])), Label: parts[1]}
		if len(parts) == 3 {
			f.Value = parts[2]
		}
		switch f.Kind {
		case FieldCombo, FieldEditableCombo, FieldCompletion, FieldFont:
			if f.Value != "" {
				f.Items = strings.Split(f.Value, itemSep)
				f.Value = ""
			}
		}
		if !fieldKinds[f.Kind] {
			return nil, fmt.Errorf("field line %d: unknown field type %q", n+1, parts[0])
		}
		fields = append(fields, f)
	}
	return fields, nil
}
