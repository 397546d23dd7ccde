// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ghostscript rewrites PDFs through Ghostscript's pdfwrite device to
// strip or downsample their images.
package ghostscript

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/softgeekro/nemo-actions/internal/command"
)

// Locate picks the gs binary: configured, else "gs" on PATH.
func Locate(ex command.Executor, configured string) (string, error) {
	p, err := command.Resolve(ex, configured, "gs")
	if err != nil {
		return "", fmt.Errorf("locating ghostscript: %w", err)
	}
	return p, nil
}

// Options selects what a rewrite does to images.
type Options struct {
	// RemoveImages drops every raster image.
	RemoveImages bool
	// DPI downsamples color, gray, and mono images above this resolution.
	// Zero keeps the original resolution.
	DPI int
}

// Empty reports whether the options would leave images untouched.
func (o Options) Empty() bool {
	return !o.RemoveImages && o.DPI <= 0
}

// Client runs Ghostscript.
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

// Args returns the Ghostscript command line for rewriting in into out.
func Args(in, out string, opts Options) []string {
	args := []string{
		"-sDEVICE=pdfwrite",
		"-dCompatibilityLevel=1.5",
		"-dNOPAUSE",
		"-dBATCH",
		"-dQUIET",
		"-dSAFER",
	}
	if opts.RemoveImages {
		args = append(args, "-dFILTERIMAGE")
	}
	if opts.DPI > 0 {
		dpi := strconv.Itoa(opts.DPI)
		for _, kind := range []string{"Color", "Gray", "Mono"} {
			args = append(args,
				"-dDownsample"+kind+"Images=true",
				"-d"+kind+"ImageResolution="+dpi,
			)
		}
		args = append(args,
			"-dColorImageDownsampleType=/Bicubic",
			"-dGrayImageDownsampleType=/Bicubic",
		)
	}
	return append(args, "-sOutputFile="+out, in)
}

// Rewrite writes in to out through pdfwrite with opts applied.
func (c *Client) Rewrite(ctx context.Context, in, out string, opts Options) error {
	args := Args(in, out, opts)
	c.log.WithFields(logrus.Fields{"file": in, "dpi": opts.DPI, "remove_images": opts.RemoveImages}).Debug("rewriting pdf")
	if _, err := command.Exec(ctx, c.exec, c.path, args...); err != nil {
		return fmt.Errorf("rewriting %s: %w", in, err)
	}
	return nil
}
