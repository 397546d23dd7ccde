// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package actions

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/softgeekro/nemo-actions/internal/convert"
	"github.com/softgeekro/nemo-actions/internal/ghostscript"
	"github.com/softgeekro/nemo-actions/internal/pdf"
	"github.com/softgeekro/nemo-actions/internal/progress"
	"github.com/softgeekro/nemo-actions/internal/yad"
	"github.com/softgeekro/nemo-actions/pkg/types"
)

const (
	answerYes = "YES"
	answerNo  = "NO"
)

// ShrinkForm is the dialog collecting ShrinkOptions.
var ShrinkForm = yad.Form{
	Common:  yad.Common{Title: "Shrink PDF files"},
	Columns: 1,
	Fields: []yad.Field{
		yad.Combo("Remove duplicated objects?", "^"+answerYes, answerNo),
		yad.Combo("Remove images?", answerYes, "^"+answerNo),
		yad.Combo("Image quality", string(types.QualityNone), string(types.QualityLow), "^"+string(types.QualityMedium), string(types.QualityHigh)),
		yad.Combo("Compress?", "^"+answerYes, answerNo),
		yad.Combo("Output suffix", "^"+string(types.SuffixFixed), string(types.SuffixTimestamp)),
	},
}

// rejectNoOp is shown when the options would produce a copy under a fixed
// suffix, which is never what the user wants.
const rejectNoOp = "All shrink options are set to NO.\n\n" +
	"Choose at least one operation, or the Timestamp suffix to make a plain copy."

// parseShrinkForm reads ShrinkForm's answers.
func parseShrinkForm(res yad.FormResult) (types.ShrinkOptions, error) {
	quality, err := types.ParseQuality(res.Get(2))
	if err != nil {
		return types.ShrinkOptions{}, err
	}
	suffix, err := types.ParseSuffix(res.Get(4))
	if err != nil {
		return types.ShrinkOptions{}, err
	}
	return types.ShrinkOptions{
		RemoveDuplicates: res.Get(0) == answerYes,
		RemoveImages:     res.Get(1) == answerYes,
		Quality:          quality,
		Compress:         res.Get(3) == answerYes,
		Suffix:           suffix,
	}, nil
}

// Shrink asks for ShrinkOptions and writes a smaller copy of every working
// file beside it, under a progress dialog. Outputs that turn out no smaller
// than their source are offered for deletion once all files are done.
// Options that would change nothing under the fixed suffix are refused with
// an error dialog and no file is written; the result is then nil.
func (s *Session) Shrink(ctx context.Context) ([]types.ShrinkResult, error) {
	if err := s.requireFiles(); err != nil {
		return nil, err
	}
	res, err := s.deps.Dialogs.Form(ctx, s.form(ShrinkForm))
	if err != nil {
		return nil, err
	}
	opts, err := parseShrinkForm(res)
	if err != nil {
		return nil, err
	}
	if opts.NoOp() && opts.Suffix == types.SuffixFixed {
		s.log.Warn("shrink refused: no operation selected")
		if err := s.deps.Dialogs.Error(ctx, yad.Message{Common: yad.Common{Title: "Shrink PDF files", Text: rejectNoOp}}); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return s.ShrinkWith(ctx, opts)
}

// ShrinkWith shrinks every working file with opts. The options are not
// changed while the files are processed.
func (s *Session) ShrinkWith(ctx context.Context, opts types.ShrinkOptions) ([]types.ShrinkResult, error) {
	if err := s.requireFiles(); err != nil {
		return nil, err
	}
	gsOpts := ghostscript.Options{RemoveImages: opts.RemoveImages, DPI: s.deps.Config.Shrink.DPI(opts.Quality)}
	if !gsOpts.Empty() && s.deps.Ghostscript == nil {
		return nil, s.missing("ghostscript")
	}
	optimize := opts.RemoveDuplicates || opts.Compress
	if optimize && s.deps.PDF == nil {
		return nil, s.missing("pdf engine")
	}

	suffix := s.deps.Config.Shrink.Suffix
	if opts.Suffix == types.SuffixTimestamp {
		suffix = "_" + s.deps.Now().Format(s.deps.Config.Shrink.TimestampLayout)
	}

	driver := progress.New(s.deps.Dialogs, yad.Progress{
		Common:    yad.Common{Title: "Shrinking PDF files"},
		AutoClose: true,
	}, len(s.Files))
	if err := driver.Start(ctx); err != nil {
		return nil, err
	}
	defer driver.Finish()

	results, err := s.shrinkAll(ctx, driver, suffix, gsOpts, optimize, pdf.OptimizeOptions{
		DuplicateContent: opts.RemoveDuplicates,
		ObjectStreams:    opts.Compress,
	})
	if ferr := driver.Finish(); ferr != nil {
		s.log.WithError(ferr).Warn("closing progress dialog")
	}

	// Outputs already written are offered for deletion even when the run
	// stopped early.
	for i := range results {
		if results[i].Smaller() {
			continue
		}
		if derr := s.offerDeletion(ctx, &results[i]); derr != nil {
			if err == nil {
				err = derr
			}
			break
		}
	}
	return results, err
}

// shrinkAll processes the working files in order until the progress dialog
// is cancelled or a file fails. It returns the results of the files done.
func (s *Session) shrinkAll(ctx context.Context, driver *progress.Driver, suffix string, gsOpts ghostscript.Options, optimize bool, optOpts pdf.OptimizeOptions) ([]types.ShrinkResult, error) {
	var results []types.ShrinkResult
	for _, f := range s.Files {
		if driver.Cancelled() {
			s.log.WithField("done", driver.Done()).Info("shrink cancelled")
			return results, yad.ErrCancelled
		}
		r, err := s.shrinkFile(ctx, f, suffix, gsOpts, optimize, optOpts)
		if err != nil {
			return results, err
		}
		results = append(results, r)
		fmt.Fprintf(s.deps.Out, "shrunk: %s -> %s (%d -> %d bytes, %.1f%%)\n",
			r.Source, r.Output, r.Before, r.After, r.Ratio()*100)
		if err := driver.Step(filepath.Base(f)); err != nil && !yad.IsCancelled(err) {
			return results, err
		}
	}
	return results, nil
}

func (s *Session) offerDeletion(ctx context.Context, r *types.ShrinkResult) error {
	del, err := s.deps.Dialogs.Question(ctx, yad.Message{Common: yad.Common{
		Title: "Shrink PDF files",
		Text: fmt.Sprintf("%s is not smaller than %s (%d vs %d bytes).\n\nDelete it?",
			filepath.Base(r.Output), filepath.Base(r.Source), r.After, r.Before),
	}})
	if err != nil {
		return err
	}
	if !del {
		return nil
	}
	if err := os.Remove(r.Output); err != nil {
		return fmt.Errorf("deleting %s: %w", r.Output, err)
	}
	r.Kept = false
	fmt.Fprintf(s.deps.Out, "deleted: %s (not smaller)\n", r.Output)
	return nil
}

// shrinkFile runs the selected passes over in inside a scratch directory
// and moves the final result into place.
func (s *Session) shrinkFile(ctx context.Context, in, suffix string, gsOpts ghostscript.Options, optimize bool, optOpts pdf.OptimizeOptions) (types.ShrinkResult, error) {
	dir := filepath.Dir(in)
	out := filepath.Join(dir, convert.Stem(in)+suffix+".pdf")
	if err := checkOutput(out, []string{in}); err != nil {
		return types.ShrinkResult{}, err
	}
	before, err := fileSize(in)
	if err != nil {
		return types.ShrinkResult{}, err
	}

	work, err := os.MkdirTemp(dir, ".shrink-*")
	if err != nil {
		return types.ShrinkResult{}, fmt.Errorf("creating work directory: %w", err)
	}
	defer os.RemoveAll(work)

	log := s.log.WithFields(logrus.Fields{"file": in, "output": out})
	cur := in
	if !gsOpts.Empty() {
		next := filepath.Join(work, "images.pdf")
		log.WithField("dpi", gsOpts.DPI).Debug("recompressing images")
		if err := s.deps.Ghostscript.Rewrite(ctx, cur, next, gsOpts); err != nil {
			return types.ShrinkResult{}, err
		}
		cur = next
	}
	if optimize {
		next := filepath.Join(work, "optimized.pdf")
		log.Debug("optimizing")
		if err := s.deps.PDF.Optimize(ctx, cur, next, optOpts); err != nil {
			return types.ShrinkResult{}, err
		}
		cur = next
	}
	if cur == in {
		next := filepath.Join(work, "copy.pdf")
		if err := copyFile(in, next); err != nil {
			return types.ShrinkResult{}, err
		}
		cur = next
	}

	if err := os.Rename(cur, out); err != nil {
		return types.ShrinkResult{}, fmt.Errorf("moving %s into place: %w", out, err)
	}
	after, err := fileSize(out)
	if err != nil {
		return types.ShrinkResult{}, err
	}
	return types.ShrinkResult{Source: in, Output: out, Before: before, After: after, Kept: true}, nil
}

func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return out.Close()
}
