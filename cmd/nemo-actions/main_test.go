package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softgeekro/nemo-actions/internal/actions"
	"github.com/softgeekro/nemo-actions/internal/command/commandtest"
	"github.com/softgeekro/nemo-actions/internal/yad"
	"github.com/softgeekro/nemo-actions/pkg/types"
)

func testApp(t *testing.T) (*app, *commandtest.Fake) {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	fake := commandtest.New().Install("yad")
	return newApp(types.DefaultConfig(), log, &bytes.Buffer{}, fake), fake
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		want       int
		wantDialog bool
	}{
		{"success", nil, 0, false},
		{"cancelled", yad.ErrCancelled, 0, false},
		{"wrapped cancel", errors.Join(errors.New("merge"), yad.ErrCancelled), 0, false},
		{"already reported", &actions.ReportedError{Err: errors.New("boom")}, 1, false},
		{"plain failure", errors.New("pdftk is not available"), 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, fake := testApp(t)
			var stderr bytes.Buffer

			got := exitCode(context.Background(), tt.err, a, &stderr)
			assert.Equal(t, tt.want, got)

			calls := fake.CallsTo("yad")
			if tt.wantDialog {
				require.Len(t, calls, 1)
				assert.Contains(t, calls[0].Args, "--text=pdftk is not available")
				assert.Contains(t, calls[0].Args, "--image=dialog-error")
			} else {
				assert.Empty(t, calls)
			}
			if tt.want != 0 {
				assert.True(t, strings.HasPrefix(stderr.String(), "Error: "), stderr.String())
			}
		})
	}
}

func TestExitCodeWithoutApp(t *testing.T) {
	var stderr bytes.Buffer
	assert.Equal(t, 1, exitCode(context.Background(), errors.New("unknown flag"), nil, &stderr))
	assert.Equal(t, "Error: unknown flag\n", stderr.String())
}

func TestLoadConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v, types.DefaultConfig())
	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultConfig(), cfg)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nemo-actions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
dialog:
  base_args: ["--fixed", "--center"]
shrink:
  suffix: _small
  dpi_low: 50
convert:
  backend: pdfcpu
`), 0o644))

	v := viper.New()
	setDefaults(v, types.DefaultConfig())
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"--fixed", "--center"}, cfg.Dialog.BaseArgs)
	assert.Equal(t, "_small", cfg.Shrink.Suffix)
	assert.Equal(t, 50, cfg.Shrink.DPILow)
	assert.Equal(t, 150, cfg.Shrink.DPIMedium)
	assert.Equal(t, types.BackendPdfcpu, cfg.Convert.Backend)
	assert.Equal(t, "yad", cfg.Dialog.Binary)
}

func TestLoadConfigRejects(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"unknown backend", "convert.backend", "magick"},
		{"zero dpi", "shrink.dpi_high", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			setDefaults(v, types.DefaultConfig())
			v.Set(tt.key, tt.val)
			_, err := loadConfig(v)
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	log, err := newLogger("debug", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "debug", log.GetLevel().String())

	_, err = newLogger("loud", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestSessionRecordsMissingTools(t *testing.T) {
	if _, err := os.Stat("/usr/bin/pdftk"); err == nil {
		t.Skip("pdftk installed at its default path")
	}
	t.Setenv("PDFTK_PATH", "")
	a, _ := testApp(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "a.pdf")
	require.NoError(t, os.WriteFile(in, []byte("%PDF-1.4\n"), 0o644))

	_, err := a.session([]string{in}).Concat(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftk is not available")
}

func TestSessionUsesLocatedPdftk(t *testing.T) {
	a, fake := testApp(t)
	a.cfg.Pdftk.Path = "/usr/bin/pdftk"
	dir := t.TempDir()
	first := filepath.Join(dir, "a.pdf")
	second := filepath.Join(dir, "b.pdf")
	for _, f := range []string{first, second} {
		require.NoError(t, os.WriteFile(f, []byte("%PDF-1.4\n"), 0o644))
	}

	out, err := a.session([]string{first + "," + second}).Concat(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a_b.pdf"), out)

	calls := fake.CallsTo("/usr/bin/pdftk")
	require.Len(t, calls, 1)
	assert.Equal(t, []string{first, second, "cat", "output", out}, calls[0].Args)
}

func TestInstallCommand(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"install", "--dir", dir, "--bin", "/opt/nemo-actions"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
	assert.Contains(t, out.String(), "installed: "+filepath.Join(dir, "sgs-pdf-merge.nemo_action"))

	data, err := os.ReadFile(filepath.Join(dir, "sgs-pdf-merge.nemo_action"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Exec=/opt/nemo-actions pdf merge %F")
}
