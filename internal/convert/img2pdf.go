// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"

	"github.com/softgeekro/nemo-actions/internal/command"
)

// Img2pdfConverter converts images by running the img2pdf program, which
// embeds JPEG and PNG data without re-encoding.
type Img2pdfConverter struct {
	path string
	exec command.Executor
}

// NewImg2pdfConverter locates img2pdf (override first, then PATH) and
// returns a converter that runs it through ex.
func NewImg2pdfConverter(ex command.Executor, override string) (*Img2pdfConverter, error) {
	p, err := command.Resolve(ex, override, "img2pdf")
	if err != nil {
		return nil, fmt.Errorf("img2pdf not available: %w", err)
	}
	return &Img2pdfConverter{path: p, exec: ex}, nil
}

// Name implements Converter.
func (c *Img2pdfConverter) Name() string { return "img2pdf" }

// Convert implements Converter.
func (c *Img2pdfConverter) Convert(ctx context.Context, images []string, out string, meta Metadata) error {
	args := append([]string(nil), images...)
	args = append(args, "--output", out)
	if meta.Creator != "" {
		args = append(args, "--creator", meta.Creator)
	}
	if meta.Producer != "" {
		args = append(args, "--producer", meta.Producer)
	}
	if _, err := command.Exec(ctx, c.exec, c.path, args...); err != nil {
		return fmt.Errorf("converting with img2pdf: %w", err)
	}
	return nil
}
