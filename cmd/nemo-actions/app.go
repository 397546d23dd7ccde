package main

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/softgeekro/nemo-actions/internal/actions"
	"github.com/softgeekro/nemo-actions/internal/command"
	"github.com/softgeekro/nemo-actions/internal/convert"
	"github.com/softgeekro/nemo-actions/internal/ghostscript"
	"github.com/softgeekro/nemo-actions/internal/pdf"
	"github.com/softgeekro/nemo-actions/internal/pdftk"
	"github.com/softgeekro/nemo-actions/internal/yad"
	"github.com/softgeekro/nemo-actions/pkg/types"
)

// app holds what every subcommand shares: the configuration, the logger,
// and the dialog client.
type app struct {
	cfg     types.Config
	log     *logrus.Logger
	exec    command.Executor
	out     io.Writer
	dialogs *yad.Client
}

func newApp(cfg types.Config, log *logrus.Logger, out io.Writer, ex command.Executor) *app {
	dialogs := yad.New(cfg.Dialog.Binary,
		yad.WithExecutor(ex),
		yad.WithBaseArgs(cfg.Dialog.BaseArgs...),
		yad.WithLogger(log.WithField("component", "yad")),
	)
	return &app{cfg: cfg, log: log, exec: ex, out: out, dialogs: dialogs}
}

// session locates the external tools and returns a session over args.
// A tool that cannot be found is left nil and recorded so that only the
// actions needing it fail.
func (a *app) session(args []string) *actions.Session {
	missing := make(map[string]error)
	engine := pdf.New(a.log.WithField("component", "pdf"))

	var toolkit *pdftk.Client
	deps := actions.Deps{
		Dialogs:      a.dialogs,
		PDF:          engine,
		Exec:         a.exec,
		Config:       a.cfg,
		Out:          a.out,
		Log:          a.log,
		MissingTools: missing,
	}
	if path, err := pdftk.Locate(a.exec, a.cfg.Pdftk.Path); err != nil {
		missing["pdftk"] = err
	} else {
		toolkit = pdftk.New(path, a.exec, a.log.WithField("component", "pdftk"))
		deps.Pdftk = toolkit
	}
	if path, err := ghostscript.Locate(a.exec, a.cfg.Ghostscript.Path); err != nil {
		missing["ghostscript"] = err
	} else {
		deps.Ghostscript = ghostscript.New(path, a.exec, a.log.WithField("component", "ghostscript"))
	}

	var info convert.InfoWriter
	if toolkit != nil {
		info = toolkit
	}
	if c, err := convert.New(a.cfg.Convert, a.exec, engine, info); err != nil {
		missing["converter"] = err
	} else {
		deps.Converter = c
	}

	for tool, err := range missing {
		a.log.WithError(err).WithField("tool", tool).Debug("tool not found")
	}
	return actions.NewSession(args, deps)
}
