package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/softgeekro/nemo-actions/internal/actions"
	"github.com/softgeekro/nemo-actions/internal/pdf"
	"github.com/softgeekro/nemo-actions/internal/pdftk"
)

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "PDF actions: merge, metadata, shrink, concat, info",
}

var pdfMergeCmd = &cobra.Command{
	Use:   "merge FILE...",
	Short: "Merge PDF files into one document",
	Long: `Merge asks for the output name and whether to delete the sources, then
writes the concatenated pages of every file in order. The output goes in the
directory of the first file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

var pdfMetadataCmd = &cobra.Command{
	Use:   "metadata FILE",
	Short: "Edit the Info dictionary of a PDF file",
	Long: `Metadata shows the title, author, creator, and producer of the first file
in a form and writes the edited values back in place. Other Info entries are
kept unchanged.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMetadata,
}

var pdfShrinkCmd = &cobra.Command{
	Use:   "shrink FILE...",
	Short: "Write smaller copies of PDF files",
	Long: `Shrink asks which reductions to apply and how to name the outputs, then
rewrites every file under a progress dialog. An output that did not get
smaller can be deleted at the end.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShrink,
}

var pdfConcatCmd = &cobra.Command{
	Use:   "concat FILE...",
	Short: "Concatenate PDF files without asking",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runConcat,
}

var pdfInfoCmd = &cobra.Command{
	Use:   "info FILE...",
	Short: "Print the page count and Info dictionary of PDF files as YAML",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInfo,
}

func init() {
	pdfCmd.AddCommand(pdfMergeCmd, pdfMetadataCmd, pdfShrinkCmd, pdfConcatCmd, pdfInfoCmd)
	rootCmd.AddCommand(pdfCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	_, err := current.session(args).Merge(cmd.Context())
	return err
}

func runMetadata(cmd *cobra.Command, args []string) error {
	_, err := current.session(args).EditMetadata(cmd.Context())
	return err
}

func runShrink(cmd *cobra.Command, args []string) error {
	_, err := current.session(args).Shrink(cmd.Context())
	return err
}

func runConcat(cmd *cobra.Command, args []string) error {
	_, err := current.session(args).Concat(cmd.Context())
	return err
}

// documentInfo is one entry of the info listing.
type documentInfo struct {
	File  string            `yaml:"file"`
	Pages int               `yaml:"pages"`
	Info  map[string]string `yaml:"info,omitempty"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	engine := pdf.New(current.log.WithField("component", "pdf"))

	var toolkit *pdftk.Client
	if path, err := pdftk.Locate(current.exec, current.cfg.Pdftk.Path); err == nil {
		toolkit = pdftk.New(path, current.exec, current.log.WithField("component", "pdftk"))
	} else {
		current.log.WithError(err).Info("pdftk not found, printing page counts only")
	}

	files := actions.ParseFiles(args)
	docs := make([]documentInfo, 0, len(files))
	for _, f := range files {
		d := documentInfo{File: f}
		if toolkit != nil {
			report, err := toolkit.Info(ctx, f)
			if err != nil {
				return err
			}
			d.Pages, d.Info = report.Pages, report.Info
		} else {
			n, err := engine.PageCount(ctx, f)
			if err != nil {
				return err
			}
			d.Pages = n
		}
		docs = append(docs, d)
	}

	out, err := yaml.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encoding info: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
