// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package actions implements the file-manager actions: it owns the working
// file set of one invocation, asks the user for options through dialogs,
// and runs the PDF tools over the files.
package actions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/softgeekro/nemo-actions/internal/command"
	"github.com/softgeekro/nemo-actions/internal/convert"
	"github.com/softgeekro/nemo-actions/internal/ghostscript"
	"github.com/softgeekro/nemo-actions/internal/pdf"
	"github.com/softgeekro/nemo-actions/internal/pdftk"
	"github.com/softgeekro/nemo-actions/internal/yad"
	"github.com/softgeekro/nemo-actions/pkg/types"
)

// ErrOutputExists is returned when an action's output would replace one of
// its own input files.
var ErrOutputExists = errors.New("output would overwrite an input file")

// ErrNoFiles is returned when an action is invoked without files.
var ErrNoFiles = errors.New("no files given")

// ReportedError marks an error the user has already been shown in a dialog.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }

func (e *ReportedError) Unwrap() error { return e.Err }

// Prompter shows dialogs. *yad.Client implements it.
type Prompter interface {
	Form(ctx context.Context, d yad.Form) (yad.FormResult, error)
	Info(ctx context.Context, d yad.Message) error
	Error(ctx context.Context, d yad.Message) error
	Question(ctx context.Context, d yad.Message) (bool, error)
	Listen(ctx context.Context, d yad.Dialog) (*yad.Channel, error)
}

// PDFEngine is the native PDF toolbox. *pdf.Engine implements it.
type PDFEngine interface {
	Merge(ctx context.Context, files []string, out string) error
	PageCount(ctx context.Context, file string) (int, error)
	Optimize(ctx context.Context, in, out string, opts pdf.OptimizeOptions) error
}

// Toolkit is the pdftk binding. *pdftk.Client implements it.
type Toolkit interface {
	Info(ctx context.Context, file string) (pdftk.Report, error)
	UpdateInfo(ctx context.Context, in string, info map[string]string, out string) error
	Concat(ctx context.Context, files []string, out string) error
}

// Rewriter recompresses images. *ghostscript.Client implements it.
type Rewriter interface {
	Rewrite(ctx context.Context, in, out string, opts ghostscript.Options) error
}

// Deps are the collaborators of a Session. Tools an action does not use may
// be left nil; an action whose tool is missing fails with MissingTools'
// error for it.
type Deps struct {
	Dialogs     Prompter
	PDF         PDFEngine
	Pdftk       Toolkit
	Ghostscript Rewriter
	Converter   convert.Converter
	Exec        command.Executor
	Config      types.Config
	// Out receives one status line per processed file.
	Out io.Writer
	Log logrus.FieldLogger
	// Now defaults to time.Now.
	Now func() time.Time
	// Producer is the fallback PDF producer; it defaults to DefaultProducer.
	Producer string
	// MissingTools explains, per tool name, why a nil tool is unavailable.
	MissingTools map[string]error
}

// Session is one invocation of an action over its working files.
type Session struct {
	Files []string

	args []string
	// paths are the arguments exactly as given, for actions that take
	// arbitrary paths rather than file-list selections.
	paths []string
	deps Deps
	log  logrus.FieldLogger
}

// NewSession builds the working file set from args and returns a session
// over d.
func NewSession(args []string, d Deps) *Session {
	if d.Out == nil {
		d.Out = io.Discard
	}
	if d.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		d.Log = l
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Exec == nil {
		d.Exec = command.Default
	}
	if d.Producer == "" {
		d.Producer = DefaultProducer()
	}
	return &Session{
		Files: ParseFiles(args),
		args:  splitLists(args),
		paths: slices.DeleteFunc(slices.Clone(args), func(a string) bool { return a == "" }),
		deps:  d,
		log:   d.Log,
	}
}

// ParseFiles returns the working file set for command-line arguments. The
// arguments are sorted, then each is split on commas; empty segments are
// dropped and nothing is de-duplicated.
func ParseFiles(args []string) []string {
	sorted := slices.Clone(args)
	slices.Sort(sorted)
	return splitLists(sorted)
}

func splitLists(args []string) []string {
	var files []string
	for _, a := range args {
		for _, f := range strings.Split(a, ",") {
			if f != "" {
				files = append(files, f)
			}
		}
	}
	return files
}

// requireFiles checks that the working set is not empty and that every file
// exists.
func (s *Session) requireFiles() error {
	if len(s.Files) == 0 {
		return ErrNoFiles
	}
	for _, f := range s.Files {
		info, err := os.Stat(f)
		if err != nil {
			return fmt.Errorf("input %s: %w", f, err)
		}
		if info.IsDir() {
			return fmt.Errorf("input %s is a directory", f)
		}
	}
	return nil
}

func (s *Session) missing(tool string) error {
	if err := s.deps.MissingTools[tool]; err != nil {
		return fmt.Errorf("%s is not available: %w", tool, err)
	}
	return fmt.Errorf("%s is not available", tool)
}

// joinedStem joins the stems of files with "_", with spaces in each stem
// replaced by "_".
func joinedStem(files []string) string {
	stems := make([]string, len(files))
	for i, f := range files {
		stems[i] = strings.ReplaceAll(convert.Stem(f), " ", "_")
	}
	return strings.Join(stems, "_")
}

// replaceFile gives tmp the permissions perm and renames it to dst.
func replaceFile(tmp, dst string, perm os.FileMode) error {
	if err := os.Chmod(tmp, perm); err != nil {
		return err
	}
	return os.Rename(tmp, dst)
}

// checkOutput rejects an output path that names one of the inputs.
func checkOutput(out string, inputs []string) error {
	abs, err := filepath.Abs(out)
	if err != nil {
		return err
	}
	for _, in := range inputs {
		if a, err := filepath.Abs(in); err == nil && a == abs {
			return fmt.Errorf("%s: %w", out, ErrOutputExists)
		}
	}
	return nil
}

// form applies the configured default size to a form without one.
func (s *Session) form(f yad.Form) yad.Form {
	if f.Width == 0 {
		f.Width = s.deps.Config.Dialog.Width
	}
	if f.Height == 0 {
		f.Height = s.deps.Config.Dialog.Height
	}
	return f
}
