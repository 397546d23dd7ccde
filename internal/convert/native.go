// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ImageImporter builds a PDF from images. *pdf.Engine implements it.
type ImageImporter interface {
	ImportImages(ctx context.Context, images []string, out string) error
}

// InfoWriter rewrites a document's Info dictionary. *pdftk.Client
// implements it.
type InfoWriter interface {
	UpdateInfo(ctx context.Context, in string, info map[string]string, out string) error
}

// NativeConverter converts images in-process with pdfcpu. When an
// InfoWriter is set, Creator and Producer are stamped afterwards.
type NativeConverter struct {
	importer ImageImporter
	info     InfoWriter
}

// NewNativeConverter returns a converter over importer. info may be nil, in
// which case the document keeps pdfcpu's own producer entry.
func NewNativeConverter(importer ImageImporter, info InfoWriter) *NativeConverter {
	return &NativeConverter{importer: importer, info: info}
}

// Name implements Converter.
func (c *NativeConverter) Name() string { return "pdfcpu" }

// Convert implements Converter.
func (c *NativeConverter) Convert(ctx context.Context, images []string, out string, meta Metadata) error {
	if c.info == nil || (meta.Creator == "" && meta.Producer == "") {
		return c.importer.ImportImages(ctx, images, out)
	}

	tmp, err := os.MkdirTemp(filepath.Dir(out), ".img2pdf-*")
	if err != nil {
		return fmt.Errorf("creating work directory: %w", err)
	}
	defer os.RemoveAll(tmp)

	raw := filepath.Join(tmp, "raw.pdf")
	if err := c.importer.ImportImages(ctx, images, raw); err != nil {
		return err
	}
	info := map[string]string{}
	if meta.Creator != "" {
		info["Creator"] = meta.Creator
	}
	if meta.Producer != "" {
		info["Producer"] = meta.Producer
	}
	stamped := filepath.Join(tmp, "stamped.pdf")
	if err := c.info.UpdateInfo(ctx, raw, info, stamped); err != nil {
		return fmt.Errorf("stamping metadata: %w", err)
	}
	if err := os.Rename(stamped, out); err != nil {
		return fmt.Errorf("moving %s into place: %w", out, err)
	}
	return nil
}
