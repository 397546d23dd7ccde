// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdf performs document operations natively on pdfcpu: merging,
// page counting, optimizing, and building a document from images.
package pdf

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"
)

// OptimizeOptions selects the optimize passes beyond pdfcpu's default
// de-duplication of fonts and images.
type OptimizeOptions struct {
	// DuplicateContent also merges identical page content streams.
	DuplicateContent bool
	// ObjectStreams packs objects and the cross-reference table into
	// compressed streams.
	ObjectStreams bool
}

// Engine runs pdfcpu operations on files.
type Engine struct {
	log logrus.FieldLogger
}

// New returns an Engine that logs to log.
func New(log logrus.FieldLogger) *Engine {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Engine{log: log}
}

// configuration returns a fresh pdfcpu configuration. Real-world inputs are
// often slightly off-spec, so validation is relaxed.
func configuration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Merge writes the pages of files, in order, to out.
func (e *Engine) Merge(ctx context.Context, files []string, out string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("nothing to merge")
	}
	e.log.WithFields(logrus.Fields{"files": len(files), "output": out}).Debug("merging pdfs")
	if err := api.MergeCreateFile(files, out, false, configuration()); err != nil {
		return fmt.Errorf("merging into %s: %w", out, err)
	}
	return nil
}

// PageCount returns the number of pages of file.
func (e *Engine) PageCount(ctx context.Context, file string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n, err := api.PageCountFile(file)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", file, err)
	}
	return n, nil
}

// Optimize rewrites in to out with redundant objects removed.
func (e *Engine) Optimize(ctx context.Context, in, out string, opts OptimizeOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	conf := configuration()
	conf.OptimizeDuplicateContentStreams = opts.DuplicateContent
	conf.WriteObjectStream = opts.ObjectStreams
	conf.WriteXRefStream = opts.ObjectStreams
	e.log.WithFields(logrus.Fields{
		"file":              in,
		"duplicate_content": opts.DuplicateContent,
		"object_streams":    opts.ObjectStreams,
	}).Debug("optimizing pdf")
	if err := api.OptimizeFile(in, out, conf); err != nil {
		return fmt.Errorf("optimizing %s: %w", in, err)
	}
	return nil
}

// ImportImages writes a new document to out with one page per image. An
// existing out is replaced, not appended to.
func (e *Engine) ImportImages(ctx context.Context, images []string, out string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(images) == 0 {
		return fmt.Errorf("no images to convert")
	}
	if err := os.Remove(out); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("replacing %s: %w", out, err)
	}
	e.log.WithFields(logrus.Fields{"images": len(images), "output": out}).Debug("importing images")
	if err := api.ImportImagesFile(images, out, pdfcpu.DefaultImportConfig(), configuration()); err != nil {
		return fmt.Errorf("importing images into %s: %w", out, err)
	}
	return nil
}
