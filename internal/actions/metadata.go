// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package actions

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/softgeekro/nemo-actions/internal/convert"
	"github.com/softgeekro/nemo-actions/internal/yad"
)

// MetadataKeys are the Info entries the metadata form edits, in form order.
var MetadataKeys = []string{"Title", "Author", "Creator", "Producer"}

// MetadataForm returns the metadata dialog for file prefilled from info.
func MetadataForm(file string, info map[string]string) yad.Form {
	title, ok := info["Title"]
	if !ok {
		title = convert.Stem(file)
	}
	return yad.Form{
		Common:  yad.Common{Title: "Edit Metadata of " + filepath.Base(file)},
		Columns: 2,
		Fields: []yad.Field{
			yad.Text("PDF Title:", title),
			yad.Text("PDF Author:", info["Author"]),
			yad.Text("PDF Creator:", info["Creator"]),
			yad.Text("PDF Producer:", info["Producer"]),
			yad.Label("If empty, fallback to filename"),
			yad.Label("Authors name that edited the file"),
			yad.Label("Original app that created the pdf file"),
			yad.Label("Application name that converted the file"),
		},
	}
}

// EditMetadata shows the Info dictionary of the first working file in a
// form and writes the edited entries back in place. Entries the form does
// not edit are preserved. It returns the entries written.
func (s *Session) EditMetadata(ctx context.Context) (map[string]string, error) {
	if err := s.requireFiles(); err != nil {
		return nil, err
	}
	if s.deps.Pdftk == nil {
		return nil, s.missing("pdftk")
	}
	file := s.Files[0]

	report, err := s.deps.Pdftk.Info(ctx, file)
	if err != nil {
		return nil, err
	}
	res, err := s.deps.Dialogs.Form(ctx, s.form(MetadataForm(file, report.Info)))
	if err != nil {
		return nil, err
	}

	info := maps.Clone(report.Info)
	if info == nil {
		info = map[string]string{}
	}
	for i, key := range MetadataKeys {
		v := res.Get(i)
		switch {
		case key == "Title" && v == "":
			v = convert.Stem(file)
		case key == "Producer" && v == "":
			v = s.deps.Producer
		}
		info[key] = v
	}

	tmp, err := os.CreateTemp(filepath.Dir(file), ".metadata-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file: %w", err)
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := s.deps.Pdftk.UpdateInfo(ctx, file, info, tmp.Name()); err != nil {
		return nil, err
	}
	src, err := os.Stat(file)
	if err != nil {
		return nil, err
	}
	if err := replaceFile(tmp.Name(), file, src.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("replacing %s: %w", file, err)
	}
	s.log.WithField("file", file).Info("updated metadata")
	fmt.Fprintf(s.deps.Out, "updated: %s\n", file)
	return info, nil
}
