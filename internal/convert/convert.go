// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements image-to-PDF conversion with pluggable backends.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/softgeekro/nemo-actions/internal/command"
	"github.com/softgeekro/nemo-actions/pkg/types"
)

// Metadata is stamped into every generated document.
type Metadata struct {
	Creator  string
	Producer string
}

// Converter turns images into a single PDF with one page per image.
// Different backends (img2pdf, pdfcpu) implement this interface.
type Converter interface {
	// Name identifies the backend in status output.
	Name() string
	// Convert writes images, in order, to out.
	Convert(ctx context.Context, images []string, out string, meta Metadata) error
}

// Plan returns the images in conversion order and the output path for a set
// of command-line arguments. Images are sorted by path; the output is named
// after their stems joined with "_" and placed beside the first argument as
// given, e.g. page1.jpg, page2.jpg -> page1_page2.pdf.
func Plan(args []string) (images []string, out string) {
	if len(args) == 0 {
		return nil, ""
	}
	images = slices.Clone(args)
	slices.Sort(images)
	stems := make([]string, len(images))
	for i, img := range images {
		stems[i] = Stem(img)
	}
	return images, filepath.Join(filepath.Dir(args[0]), strings.Join(stems, "_")+".pdf")
}

// Stem returns the file name of p without its extension.
func Stem(p string) string {
	base := filepath.Base(p)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ConvertImages converts the images named by args through c, printing the
// outcome to w, and returns the output path.
func ConvertImages(ctx context.Context, c Converter, args []string, meta Metadata, w io.Writer) (string, error) {
	images, out := Plan(args)
	if len(images) == 0 {
		return "", fmt.Errorf("no images given")
	}
	for _, img := range images {
		if _, err := os.Stat(img); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", filepath.Base(out), err)
			return "", fmt.Errorf("image %s: %w", img, err)
		}
	}
	if err := c.Convert(ctx, images, out, meta); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", filepath.Base(out), err)
		return "", err
	}
	fmt.Fprintf(w, "converted: %d images -> %s (%s)\n", len(images), out, c.Name())
	return out, nil
}

// MetadataFrom returns the metadata configured in cfg.
func MetadataFrom(cfg types.ConvertConfig) Metadata {
	return Metadata{Creator: cfg.Creator, Producer: cfg.Producer}
}

// New returns the converter selected by cfg.Backend.
func New(cfg types.ConvertConfig, ex command.Executor, importer ImageImporter, info InfoWriter) (Converter, error) {
	switch cfg.Backend {
	case types.BackendImg2pdf, "":
		c, err := NewImg2pdfConverter(ex, cfg.Img2pdfPath)
		if err != nil {
			return nil, err
		}
		return c, nil
	case types.BackendPdfcpu:
		return NewNativeConverter(importer, info), nil
	}
	return nil, fmt.Errorf("unknown conversion backend %q", cfg.Backend)
}
