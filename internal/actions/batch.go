// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package actions

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/softgeekro/nemo-actions/internal/command"
	"github.com/softgeekro/nemo-actions/internal/convert"
	"github.com/softgeekro/nemo-actions/internal/progress"
	"github.com/softgeekro/nemo-actions/internal/yad"
)

// Placeholder is replaced by each file path in a batch command template.
const Placeholder = "{}"

// Concat writes the pages of every working file, in order, to one document
// beside the first file named after their joined stems, without asking
// anything. It returns the output path.
func (s *Session) Concat(ctx context.Context) (string, error) {
	if err := s.requireFiles(); err != nil {
		return "", err
	}
	if s.deps.Pdftk == nil {
		return "", s.missing("pdftk")
	}
	out := filepath.Join(filepath.Dir(s.Files[0]), joinedStem(s.Files)+".pdf")
	if err := checkOutput(out, s.Files); err != nil {
		return "", err
	}
	if err := s.deps.Pdftk.Concat(ctx, s.Files, out); err != nil {
		return "", err
	}
	fmt.Fprintf(s.deps.Out, "concatenated: %d files -> %s\n", len(s.Files), out)
	return out, nil
}

// ImagesToPDF converts the working images into one document through the
// configured converter. It returns the output path.
func (s *Session) ImagesToPDF(ctx context.Context) (string, error) {
	if len(s.args) == 0 {
		return "", ErrNoFiles
	}
	if s.deps.Converter == nil {
		return "", s.missing("converter")
	}
	meta := convert.MetadataFrom(s.deps.Config.Convert)
	return convert.ConvertImages(ctx, s.deps.Converter, s.args, meta, s.deps.Out)
}

// Batch runs template through sh once per path argument, in the order given
// and without splitting on commas, with every Placeholder replaced by the
// path, under a progress dialog. A failing
// command stops the batch: its output is shown in an error dialog and the
// returned error is a *ReportedError wrapping the *command.ExitError. A
// completed batch ends with an information dialog.
func (s *Session) Batch(ctx context.Context, template string) error {
	if strings.TrimSpace(template) == "" {
		return fmt.Errorf("empty command")
	}
	if len(s.paths) == 0 {
		return ErrNoFiles
	}
	fmt.Fprintf(s.deps.Out, "Will apply command %q on %d files\n\n", template, len(s.paths))

	driver := progress.New(s.deps.Dialogs, yad.Progress{
		Common:    yad.Common{Title: "Working..."},
		AutoClose: true,
	}, len(s.paths))
	if err := driver.Start(ctx); err != nil {
		return err
	}
	defer driver.Finish()

	for _, f := range s.paths {
		if driver.Cancelled() {
			return yad.ErrCancelled
		}
		line := strings.ReplaceAll(template, Placeholder, f)
		fmt.Fprintf(s.deps.Out, "=> file: %s\n", f)
		s.log.WithField("command", line).Debug("running batch command")

		args := []string{"-c", line}
		res, err := s.deps.Exec.Run(ctx, "sh", args, nil)
		if err != nil {
			return err
		}
		if err := command.Check("sh", args, res); err != nil {
			_ = driver.Finish()
			if derr := s.deps.Dialogs.Error(ctx, yad.Message{Common: yad.Common{
				Title:    "Batch command failed",
				Text:     "Subprocess error:\n\n" + res.Output(),
				Width:    500,
				NoMarkup: true,
			}}); derr != nil {
				s.log.WithError(derr).Warn("showing error dialog")
			}
			return &ReportedError{Err: err}
		}
		if err := driver.Step(""); err != nil && !yad.IsCancelled(err) {
			return err
		}
	}
	if err := driver.Finish(); err != nil {
		s.log.WithError(err).Warn("closing progress dialog")
	}

	fmt.Fprintln(s.deps.Out, "\nEND")
	return s.deps.Dialogs.Info(ctx, yad.Message{Common: yad.Common{Text: "End"}})
}
