package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/softgeekro/nemo-actions/pkg/types"
)

// setDefaults registers every configuration key with its default so that
// environment overrides are seen by Unmarshal.
func setDefaults(v *viper.Viper, d types.Config) {
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("dialog.binary", d.Dialog.Binary)
	v.SetDefault("dialog.base_args", d.Dialog.BaseArgs)
	v.SetDefault("dialog.width", d.Dialog.Width)
	v.SetDefault("dialog.height", d.Dialog.Height)
	v.SetDefault("pdftk.path", d.Pdftk.Path)
	v.SetDefault("ghostscript.path", d.Ghostscript.Path)
	v.SetDefault("shrink.suffix", d.Shrink.Suffix)
	v.SetDefault("shrink.timestamp_layout", d.Shrink.TimestampLayout)
	v.SetDefault("shrink.dpi_low", d.Shrink.DPILow)
	v.SetDefault("shrink.dpi_medium", d.Shrink.DPIMedium)
	v.SetDefault("shrink.dpi_high", d.Shrink.DPIHigh)
	v.SetDefault("convert.backend", string(d.Convert.Backend))
	v.SetDefault("convert.img2pdf_path", d.Convert.Img2pdfPath)
	v.SetDefault("convert.creator", d.Convert.Creator)
	v.SetDefault("convert.producer", d.Convert.Producer)
}

// loadConfig decodes v into a Config and checks the values that would
// otherwise fail late.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	switch cfg.Convert.Backend {
	case types.BackendImg2pdf, types.BackendPdfcpu:
	default:
		return types.Config{}, fmt.Errorf("convert.backend must be %s or %s, got %q",
			types.BackendImg2pdf, types.BackendPdfcpu, cfg.Convert.Backend)
	}
	for name, dpi := range map[string]int{
		"shrink.dpi_low":    cfg.Shrink.DPILow,
		"shrink.dpi_medium": cfg.Shrink.DPIMedium,
		"shrink.dpi_high":   cfg.Shrink.DPIHigh,
	} {
		if dpi <= 0 {
			return types.Config{}, fmt.Errorf("%s must be positive, got %d", name, dpi)
		}
	}
	return cfg, nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := yaml.Marshal(current.cfg)
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
