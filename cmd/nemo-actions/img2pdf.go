package main

import (
	"github.com/spf13/cobra"
)

var img2pdfCmd = &cobra.Command{
	Use:   "img2pdf IMAGE...",
	Short: "Convert images into one PDF, one page per image",
	Long: `img2pdf sorts the images, converts them with the configured backend, and
writes the result beside the first image, named after the joined image stems.

Backends (convert.backend):
  img2pdf  the img2pdf program (default)
  pdfcpu   in-process conversion`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImg2pdf,
}

func init() {
	rootCmd.AddCommand(img2pdfCmd)
}

func runImg2pdf(cmd *cobra.Command, args []string) error {
	_, err := current.session(args).ImagesToPDF(cmd.Context())
	return err
}
