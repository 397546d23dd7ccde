// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package actions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/softgeekro/nemo-actions/internal/yad"
)

const (
	mergeAccept = "Accept"
	mergeDeny   = "Deny"
)

// MergeForm returns the merge dialog for files.
func MergeForm(files []string) yad.Form {
	return yad.Form{
		Common:  yad.Common{Title: "Config the PDF merge files", Width: 500, Height: 100},
		Columns: 1,
		Fields: []yad.Field{
			yad.Text("Output filename(omit extension)", joinedStem(files)),
			yad.Combo("Delete source files?", mergeAccept, "^"+mergeDeny),
		},
	}
}

// Merge asks for an output name and whether to delete the sources, then
// writes the pages of every working file, in order, to one document beside
// the first file. The page count of the result is checked against the
// inputs before any source is deleted. It returns the output path.
func (s *Session) Merge(ctx context.Context) (string, error) {
	if err := s.requireFiles(); err != nil {
		return "", err
	}
	if s.deps.PDF == nil {
		return "", s.missing("pdf engine")
	}

	res, err := s.deps.Dialogs.Form(ctx, MergeForm(s.Files))
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(res.Get(0))
	name = strings.TrimSuffix(name, ".pdf")
	if name == "" {
		name = joinedStem(s.Files)
	}
	out := filepath.Join(filepath.Dir(s.Files[0]), name+".pdf")
	if err := checkOutput(out, s.Files); err != nil {
		return "", err
	}

	want := 0
	for _, f := range s.Files {
		n, err := s.deps.PDF.PageCount(ctx, f)
		if err != nil {
			return "", err
		}
		want += n
	}

	tmp, err := os.CreateTemp(filepath.Dir(out), ".merge-*.pdf")
	if err != nil {
		return "", fmt.Errorf("creating merge output: %w", err)
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := s.deps.PDF.Merge(ctx, s.Files, tmp.Name()); err != nil {
		return "", err
	}
	got, err := s.deps.PDF.PageCount(ctx, tmp.Name())
	if err != nil {
		return "", err
	}
	if got != want {
		return "", fmt.Errorf("merged document has %d pages, want %d", got, want)
	}
	if err := replaceFile(tmp.Name(), out, newFileMode()); err != nil {
		return "", fmt.Errorf("moving %s into place: %w", out, err)
	}
	s.log.WithField("output", out).Info("merged pdfs")
	fmt.Fprintf(s.deps.Out, "merged: %d files (%d pages) -> %s\n", len(s.Files), got, out)

	if res.Get(1) == mergeAccept {
		for _, f := range s.Files {
			if f == out {
				continue
			}
			if err := os.Remove(f); err != nil {
				return out, fmt.Errorf("deleting source %s: %w", f, err)
			}
			fmt.Fprintf(s.deps.Out, "deleted: %s\n", f)
		}
	}
	return out, nil
}
