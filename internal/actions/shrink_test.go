// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package actions

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softgeekro/nemo-actions/internal/command"
	"github.com/softgeekro/nemo-actions/internal/command/commandtest"
	"github.com/softgeekro/nemo-actions/internal/yad"
	"github.com/softgeekro/nemo-actions/pkg/types"
)

// scriptGhostscript makes gs write its input to -sOutputFile with extra
// bytes appended (grow) or with its size halved.
func scriptGhostscript(fake *commandtest.Fake, grow bool) {
	fake.On("gs", func(call commandtest.Call) (command.Result, error) {
		in := call.Args[len(call.Args)-1]
		out := strings.TrimPrefix(call.Args[len(call.Args)-2], "-sOutputFile=")
		b, err := os.ReadFile(in)
		if err != nil {
			return command.Result{}, err
		}
		if grow {
			b = append(b, make([]byte, 4096)...)
		} else {
			b = b[:len(b)/2]
		}
		return command.Result{}, os.WriteFile(out, b, 0o644)
	})
}

func (e *testEnv) writeFile(t *testing.T, name string, size int) string {
	t.Helper()
	p := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(p, make([]byte, size), 0o644))
	return p
}

func TestParseShrinkForm(t *testing.T) {
	got, err := parseShrinkForm(yad.FormResult{Values: map[int]string{
		0: "YES", 1: "NO", 2: "High", 3: "NO", 4: "Timestamp",
	}})
	require.NoError(t, err)
	assert.Equal(t, types.ShrinkOptions{
		RemoveDuplicates: true,
		Quality:          types.QualityHigh,
		Suffix:           types.SuffixTimestamp,
	}, got)

	_, err = parseShrinkForm(yad.FormResult{Values: map[int]string{2: "Ultra", 4: "Subfix"}})
	assert.Error(t, err)
}

func TestShrinkFormDefaults(t *testing.T) {
	args, err := yad.New("yad").Args(&ShrinkForm)
	require.NoError(t, err)
	values := args[len(args)-5:]
	assert.Equal(t, []string{"^YES!NO", "YES!^NO", "NO!Low!^Medium!High", "^YES!NO", "^Subfix!Timestamp"}, values)
}

func TestShrinkRejectsNoOp(t *testing.T) {
	e := newEnv(t)
	a := e.writeFile(t, "a.pdf", 100)
	e.fake.Reply("yad", "NO|NO|NO|NO|Subfix|\n", 0)
	e.fake.Reply("yad", "", 0)

	results, err := e.session(a).Shrink(context.Background())
	require.NoError(t, err)
	assert.Nil(t, results)

	dlg := e.dialogCalls()
	require.Len(t, dlg, 2)
	assert.Contains(t, dlg[1].Args, "--image=dialog-error")
	assert.Empty(t, e.fake.Started, "no progress dialog")
	assert.Empty(t, e.fake.CallsTo("gs"))
	assert.Equal(t, []string{"a.pdf"}, dirNames(t, e.dir))
}

func TestShrinkCancelledForm(t *testing.T) {
	e := newEnv(t)
	a := e.writeFile(t, "a.pdf", 100)
	e.fake.Reply("yad", "", 70)

	_, err := e.session(a).Shrink(context.Background())
	require.ErrorIs(t, err, yad.ErrTimeout)
	assert.True(t, yad.IsCancelled(err))
	assert.Equal(t, []string{"a.pdf"}, dirNames(t, e.dir))
}

func TestShrinkTimestampCopyKeptOnNo(t *testing.T) {
	e := newEnv(t)
	a := e.writeFile(t, "a.pdf", 100)
	e.fake.Reply("yad", "NO|NO|NO|NO|Timestamp|\n", 0)
	e.fake.Reply("yad", "", 1)

	results, err := e.session(a).Shrink(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)

	want := filepath.Join(e.dir, "a_20260102-150405.pdf")
	assert.Equal(t, want, results[0].Output)
	assert.True(t, results[0].Kept)
	assert.FileExists(t, want)

	dlg := e.dialogCalls()
	require.Len(t, dlg, 2)
	assert.Contains(t, dlg[1].Args, "--image=dialog-question")
	assert.Empty(t, e.fake.CallsTo("gs"))
	assert.ElementsMatch(t, []string{"a.pdf", "a_20260102-150405.pdf"}, dirNames(t, e.dir))
}

func TestShrinkLargerOutputDeletedOnYes(t *testing.T) {
	e := newEnv(t)
	a := e.writeFile(t, "a.pdf", 100)
	scriptGhostscript(e.fake, true)
	e.fake.Reply("yad", "NO|YES|NO|NO|Subfix|\n", 0)
	e.fake.Reply("yad", "", 0)

	results, err := e.session(a).Shrink(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Kept)
	assert.Greater(t, results[0].After, results[0].Before)
	assert.NoFileExists(t, filepath.Join(e.dir, "a_compressed.pdf"))

	gs := e.fake.CallsTo("gs")[0].Args
	assert.Contains(t, gs, "-dFILTERIMAGE")
	assert.Equal(t, []string{"a.pdf"}, dirNames(t, e.dir))
}

func TestShrinkQualityTier(t *testing.T) {
	e := newEnv(t)
	a := e.writeFile(t, "a.pdf", 100)
	b := e.writeFile(t, "b.pdf", 200)
	scriptGhostscript(e.fake, false)
	e.fake.Reply("yad", "NO|NO|Low|NO|Subfix|\n", 0)

	results, err := e.session(b, a).Shrink(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.Smaller())
		assert.True(t, r.Kept)
	}
	assert.Equal(t, filepath.Join(e.dir, "a_compressed.pdf"), results[0].Output)
	assert.Equal(t, int64(50), results[0].After)

	gs := e.fake.CallsTo("gs")[0].Args
	assert.Contains(t, gs, "-dColorImageResolution=72")
	assert.NotContains(t, gs, "-dFILTERIMAGE")
	assert.Equal(t, []string{"50", "# a.pdf", "100", "# b.pdf"}, e.fake.Started[0].Lines())
	assert.Len(t, e.dialogCalls(), 1, "no question for smaller outputs")
}

func TestShrinkOptimizesRealDocument(t *testing.T) {
	e := newEnv(t)
	a := e.makePDF(t, "a.pdf", 2)
	e.fake.Reply("yad", "YES|NO|NO|YES|Subfix|\n", 0)
	e.fake.Reply("yad", "", 1)

	results, err := e.session(a).Shrink(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)

	out := filepath.Join(e.dir, "a_compressed.pdf")
	assert.FileExists(t, out)
	n, err := e.engine.PageCount(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, e.fake.CallsTo("gs"))
}

func TestShrinkCancelStopsBeforeNextFile(t *testing.T) {
	e := newEnv(t)
	a := e.writeFile(t, "a.pdf", 100)
	b := e.writeFile(t, "b.pdf", 100)
	e.fake.Reply("yad", "NO|NO|NO|NO|Timestamp|\n", 0)
	e.fake.Reply("yad", "", 0)
	e.fake.OnStart("yad", func(p *commandtest.Process) {
		p.ExitAfter(1, command.Result{ExitCode: 1})
	})

	results, err := e.session(a, b).Shrink(context.Background())
	require.ErrorIs(t, err, yad.ErrCancelled)
	require.Len(t, results, 1)
	assert.False(t, results[0].Kept)

	dlg := e.dialogCalls()
	require.Len(t, dlg, 2, "the copy of a.pdf is still offered for deletion")
	assert.Contains(t, dlg[1].Args, "--image=dialog-question")
	assert.ElementsMatch(t, []string{"a.pdf", "b.pdf"}, dirNames(t, e.dir))
}

func TestShrinkFailureStillOffersDeletion(t *testing.T) {
	e := newEnv(t)
	a := e.writeFile(t, "a.pdf", 100)
	b := e.writeFile(t, "b.pdf", 100)
	scriptGhostscript(e.fake, true)
	e.fake.Reply("gs", "", 1)
	e.fake.Reply("yad", "NO|YES|NO|NO|Subfix|\n", 0)
	e.fake.Reply("yad", "", 0)

	results, err := e.session(a, b).Shrink(context.Background())
	var ee *command.ExitError
	require.ErrorAs(t, err, &ee)
	require.Len(t, results, 1)
	assert.False(t, results[0].Kept)
	assert.Len(t, e.dialogCalls(), 2)
	assert.ElementsMatch(t, []string{"a.pdf", "b.pdf"}, dirNames(t, e.dir))
}

func TestShrinkWithoutGhostscript(t *testing.T) {
	e := newEnv(t)
	a := e.writeFile(t, "a.pdf", 100)
	e.deps.Ghostscript = nil

	_, err := e.session(a).ShrinkWith(context.Background(), types.ShrinkOptions{RemoveImages: true, Suffix: types.SuffixFixed})
	assert.ErrorContains(t, err, "ghostscript is not available")
	assert.Empty(t, e.fake.Started)
}

func TestShrinkRefusesEmptySuffix(t *testing.T) {
	e := newEnv(t)
	a := e.writeFile(t, "a.pdf", 100)
	e.deps.Config.Shrink.Suffix = ""

	_, err := e.session(a).ShrinkWith(context.Background(), types.ShrinkOptions{Compress: true, Suffix: types.SuffixFixed})
	assert.ErrorIs(t, err, ErrOutputExists)
}
