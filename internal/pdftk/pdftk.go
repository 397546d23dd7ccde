// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftk drives the pdftk command-line toolkit for the operations the
// actions need from it: reading and rewriting the document Info dictionary
// and concatenating files.
package pdftk

import (
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/softgeekro/nemo-actions/internal/command"
)

// EnvPath names the environment variable that overrides the binary location.
const EnvPath = "PDFTK_PATH"

// DefaultPath is tried before searching PATH.
const DefaultPath = "/usr/bin/pdftk"

// Locate picks the pdftk binary: configured, then $PDFTK_PATH, then
// DefaultPath, then "pdftk" on PATH.
func Locate(ex command.Executor, configured string) (string, error) {
	override := configured
	if override == "" {
		override = os.Getenv(EnvPath)
	}
	p, err := command.Resolve(ex, override, DefaultPath, "pdftk")
	if err != nil {
		return "", fmt.Errorf("locating pdftk: %w", err)
	}
	return p, nil
}

// Client runs pdftk.
type Client struct {
	path string
	exec command.Executor
	log  logrus.FieldLogger
}

// New returns a Client for the binary at path.
func New(path string, ex command.Executor, log logrus.FieldLogger) *Client {
	if ex == nil {
		ex = command.Default
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Client{path: path, exec: ex, log: log.WithField("binary", path)}
}

func (c *Client) run(ctx context.Context, args ...string) (command.Result, error) {
	c.log.WithField("args", args).Debug("running pdftk")
	return command.Exec(ctx, c.exec, c.path, args...)
}

// Record is one block of dump_data output. A key that occurs more than once
// in the block keeps every value in order.
type Record map[string][]string

// Get returns the first value of key.
func (r Record) Get(key string) string {
	if v := r[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// DumpData returns the records pdftk reports for file. Lines without a
// "key: value" shape, such as InfoBegin, separate records.
func (c *Client) DumpData(ctx context.Context, file string) ([]Record, error) {
	res, err := c.run(ctx, file, "dump_data")
	if err != nil {
		return nil, fmt.Errorf("dumping data of %s: %w", file, err)
	}
	return parseRecords(string(res.Stdout)), nil
}

func parseRecords(out string) []Record {
	var (
		records []Record
		cur     Record
	)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		key, value, ok := strings.Cut(line, ":")
		if !ok || key == "" {
			if cur != nil {
				records = append(records, cur)
				cur = nil
			}
			continue
		}
		if cur == nil {
			cur = Record{}
		}
		cur[key] = append(cur[key], strings.TrimPrefix(value, " "))
	}
	if cur != nil {
		records = append(records, cur)
	}
	return records
}

// Report is the document-level part of dump_data.
type Report struct {
	Info  map[string]string
	Pages int
}

// Info reads the Info dictionary and page count of file. Values are decoded
// from pdftk's numeric character references.
func (c *Client) Info(ctx context.Context, file string) (Report, error) {
	records, err := c.DumpData(ctx, file)
	if err != nil {
		return Report{}, err
	}
	return reportFromRecords(records)
}

func reportFromRecords(records []Record) (Report, error) {
	r := Report{Info: map[string]string{}}
	for _, rec := range records {
		if key, ok := rec["InfoKey"]; ok {
			r.Info[html.UnescapeString(key[0])] = html.UnescapeString(rec.Get("InfoValue"))
		}
		if n, ok := rec["NumberOfPages"]; ok {
			pages, err := strconv.Atoi(strings.TrimSpace(n[0]))
			if err != nil {
				return Report{}, fmt.Errorf("parsing page count %q: %w", n[0], err)
			}
			r.Pages = pages
		}
	}
	return r, nil
}

// UpdateInfo writes a copy of in to out with the given Info entries set.
// Entries not named in info are left as they are in the source.
func (c *Client) UpdateInfo(ctx context.Context, in string, info map[string]string, out string) error {
	f, err := os.CreateTemp(filepath.Dir(out), ".info-*.txt")
	if err != nil {
		return fmt.Errorf("creating info file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := io.WriteString(f, EncodeInfo(info)); err != nil {
		f.Close()
		return fmt.Errorf("writing info file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing info file: %w", err)
	}

	if _, err := c.run(ctx, in, "update_info", f.Name(), "output", out); err != nil {
		return fmt.Errorf("updating info of %s: %w", in, err)
	}
	return nil
}

// EncodeInfo renders info in the update_info input format, one
// InfoBegin/InfoKey/InfoValue block per key in key order.
func EncodeInfo(info map[string]string) string {
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString("InfoBegin\n")
		b.WriteString("InfoKey: " + encodeValue(k) + "\n")
		b.WriteString("InfoValue: " + encodeValue(info[k]) + "\n")
	}
	return b.String()
}

// encodeValue escapes non-ASCII and markup characters as numeric character
// references and folds line breaks, since every value occupies one line.
func encodeValue(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r':
			b.WriteByte(' ')
		case r == '&' || r == '<' || r == '>' || r > 0x7e || r < 0x20:
			b.WriteString("&#" + strconv.Itoa(int(r)) + ";")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Concat writes the pages of files, in order, to out.
func (c *Client) Concat(ctx context.Context, files []string, out string) error {
	if len(files) == 0 {
		return fmt.Errorf("nothing to concatenate")
	}
	args := append(append([]string(nil), files...), "cat", "output", out)
	if _, err := c.run(ctx, args...); err != nil {
		return fmt.Errorf("concatenating into %s: %w", out, err)
	}
	return nil
}
