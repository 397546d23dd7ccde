// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package yad

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"unicode"
)

// trimOutput strips surrounding whitespace and control characters from
// dialog output.
func trimOutput(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
}

// unquote reverses yad's shell-style --quoted-output for one value.
func unquote(s string) string {
	if len(s) < 2 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return s
	}
	return strings.ReplaceAll(s[1:len(s)-1], `'\''`, "'")
}

// splitValues splits one line of dialog output on sep. A trailing separator
// does not produce an empty last value.
func splitValues(line, sep string, quoted bool) []string {
	line = strings.TrimSuffix(trimOutput(line), sep)
	if line == "" {
		return nil
	}
	parts := strings.Split(line, sep)
	for i, p := range parts {
		if quoted {
			parts[i] = unquote(p)
		}
	}
	return parts
}

// ParseColor parses the output of the color dialog in either hex
// ("#rrggbb", "#rrggbbaa", "#rgb") or rgb ("rgb(r, g, b)", "rgba(r, g, b,
// a)" with a in 0..1) notation.
func ParseColor(s string) (color.NRGBA, error) {
	s = trimOutput(s)
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s)
	case strings.HasPrefix(s, "rgb"):
		return parseRGBColor(s)
	}
	return color.NRGBA{}, fmt.Errorf("unrecognized color %q", s)
}

func parseHexColor(s string) (color.NRGBA, error) {
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("unrecognized color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("unrecognized color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func parseRGBColor(s string) (color.NRGBA, error) {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return color.NRGBA{}, fmt.Errorf("unrecognized color %q", s)
	}
	fields := strings.Split(s[open+1:end], ",")
	if len(fields) != 3 && len(fields) != 4 {
		return color.NRGBA{}, fmt.Errorf("unrecognized color %q", s)
	}
	var c [3]uint8
	for i := range c {
		n, err := strconv.Atoi(strings.TrimSpace(fields[i]))
		if err != nil || n < 0 || n > 255 {
			return color.NRGBA{}, fmt.Errorf("unrecognized color %q", s)
		}
		c[i] = uint8(n)
	}
	alpha := uint8(0xff)
	if len(fields) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return color.NRGBA{}, fmt.Errorf("unrecognized color %q", s)
		}
		alpha = uint8(a*255 + 0.5)
	}
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: alpha}, nil
}

var fontStyles = map[string]bool{
	"regular": true, "normal": true, "bold": true, "italic": true,
	"oblique": true, "light": true, "medium": true, "thin": true,
	"semibold": true, "heavy": true, "black": true, "condensed": true,
	"book": true, "ultra-light": true, "extra-bold": true,
}

// ParseFont splits a Pango font description such as "DejaVu Sans Bold
// Italic 12" into family, style words, and point size.
func ParseFont(s string) (FontSpec, error) {
	words := strings.Fields(trimOutput(s))
	if len(words) == 0 {
		return FontSpec{}, fmt.Errorf("empty font description")
	}
	var spec FontSpec
	if n, err := strconv.Atoi(words[len(words)-1]); err == nil {
		spec.Size = n
		words = words[:len(words)-1]
	}
	styleStart := len(words)
	for styleStart > 1 && fontStyles[strings.ToLower(words[styleStart-1])] {
		styleStart--
	}
	spec.Family = strings.Join(words[:styleStart], " ")
	spec.Style = strings.Join(words[styleStart:], " ")
	if spec.Family == "" {
		return FontSpec{}, fmt.Errorf("font description %q has no family", s)
	}
	return spec, nil
}
