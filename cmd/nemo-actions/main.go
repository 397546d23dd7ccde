// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the nemo-actions CLI. Every
// file-manager action is a subcommand; the .nemo_action files written by
// "install" call them with the selected paths.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/softgeekro/nemo-actions/internal/actions"
	"github.com/softgeekro/nemo-actions/internal/command"
	"github.com/softgeekro/nemo-actions/internal/yad"
	"github.com/softgeekro/nemo-actions/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// current is the application state built by the root command before any
// subcommand runs.
var current *app

// rootCmd is the base command for the nemo-actions CLI.
var rootCmd = &cobra.Command{
	Use:   "nemo-actions",
	Short: "PDF and image actions for the Nemo file manager",
	Long: `nemo-actions implements the context-menu actions registered with the Nemo
file manager: merging, shrinking, and editing the metadata of PDF files,
converting images to PDF, and running a command over a batch of files.

Options are collected through yad dialogs. Paths are given as arguments, and
each argument may itself be a comma-separated list.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		log, err := newLogger(cfg.LogLevel, os.Stderr)
		if err != nil {
			return err
		}
		if f := viper.ConfigFileUsed(); f != "" {
			log.WithField("file", f).Debug("using config file")
		}
		current = newApp(cfg, log, cmd.OutOrStdout(), command.Default)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./nemo-actions.yaml or ~/.config/nemo-actions/nemo-actions.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warning, error")
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("nemo-actions")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "nemo-actions"))
		}
	}

	setDefaults(viper.GetViper(), types.DefaultConfig())
	viper.SetEnvPrefix("NEMO_ACTIONS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && cfgFile != "" {
			fmt.Fprintln(os.Stderr, "Reading config file:", err)
		}
	}
}

// newLogger returns a text logger on w at the named level.
func newLogger(level string, w io.Writer) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if level == "" {
		return log, nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(lvl)
	return log, nil
}

// exitCode reports err to the user and returns the process exit status.
// A cancelled dialog is a normal way out and exits 0. Errors not yet shown
// in a dialog are shown in one when a dialog program is available.
func exitCode(ctx context.Context, err error, a *app, stderr io.Writer) int {
	if err == nil || yad.IsCancelled(err) {
		return 0
	}
	fmt.Fprintln(stderr, "Error:", err)

	var reported *actions.ReportedError
	if errors.As(err, &reported) || a == nil {
		return 1
	}
	if derr := a.dialogs.Error(ctx, yad.Message{Common: yad.Common{
		Title:    "nemo-actions",
		Text:     err.Error(),
		Width:    500,
		NoMarkup: true,
	}}); derr != nil {
		a.log.WithError(derr).Warn("showing error dialog")
	}
	return 1
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	code := exitCode(context.Background(), err, current, os.Stderr)
	stop()
	os.Exit(code)
}
