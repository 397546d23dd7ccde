// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softgeekro/nemo-actions/internal/command"
	"github.com/softgeekro/nemo-actions/internal/command/commandtest"
	"github.com/softgeekro/nemo-actions/internal/yad"
)

func newDriver(t *testing.T, total int) (*Driver, *commandtest.Fake) {
	t.Helper()
	fake := commandtest.New()
	client := yad.New("yad", yad.WithExecutor(fake))
	return New(client, yad.Progress{Common: yad.Common{Title: "Working..."}, AutoClose: true}, total), fake
}

func TestPercent(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 4, 0},
		{1, 4, 25},
		{4, 4, 100},
		{1, 3, 100.0 / 3},
		{0, 0, 100},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Percent(tt.done, tt.total), 1e-9)
	}
}

func TestDriverCompletes(t *testing.T) {
	d, fake := newDriver(t, 2)
	assert.Equal(t, Idle, d.State())
	require.NoError(t, d.Start(context.Background()))
	assert.Equal(t, Running, d.State())

	require.NoError(t, d.Step("a.pdf"))
	assert.False(t, d.Cancelled())
	require.NoError(t, d.Step(""))
	assert.Equal(t, Completed, d.State())
	require.NoError(t, d.Finish())

	proc := fake.Started[0]
	assert.Equal(t, []string{"--progress", "--auto-close", "--title=Working..."}, proc.Args)
	assert.Equal(t, []string{"50", "# a.pdf", "100"}, proc.Lines())
	assert.Equal(t, 2, d.Done())
}

func TestDriverUserCancels(t *testing.T) {
	d, fake := newDriver(t, 3)
	fake.OnStart("yad", func(p *commandtest.Process) {
		p.ExitAfter(1, command.Result{ExitCode: 1})
	})
	require.NoError(t, d.Start(context.Background()))
	require.NoError(t, d.Step(""))

	assert.True(t, d.Cancelled())
	assert.Equal(t, Cancelled, d.State())
	assert.ErrorIs(t, d.Step(""), yad.ErrCancelled)
	require.NoError(t, d.Finish())
	assert.Equal(t, 1, d.Done())
}

func TestDriverStepBeforeStart(t *testing.T) {
	d, _ := newDriver(t, 1)
	assert.Error(t, d.Step(""))
	assert.NoError(t, d.Finish())
}

func TestDriverFinishKillsUnfinishedDialog(t *testing.T) {
	d, fake := newDriver(t, 3)
	require.NoError(t, d.Start(context.Background()))
	require.NoError(t, d.Step(""))
	require.NoError(t, d.Finish())

	select {
	case <-fake.Started[0].Done():
	default:
		t.Fatal("dialog still running after Finish")
	}
	assert.False(t, d.Cancelled())
}

func TestDriverEmptyBatch(t *testing.T) {
	d, _ := newDriver(t, 0)
	require.NoError(t, d.Start(context.Background()))
	assert.Equal(t, Completed, d.State())
	assert.Error(t, d.Start(context.Background()))
}
