// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ghostscript

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softgeekro/nemo-actions/internal/command"
	"github.com/softgeekro/nemo-actions/internal/command/commandtest"
)

func TestArgs(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		want    []string
		wantNot []string
	}{
		{
			name:    "remove images only",
			opts:    Options{RemoveImages: true},
			want:    []string{"-dFILTERIMAGE"},
			wantNot: []string{"-dColorImageResolution=150"},
		},
		{
			name: "downsample",
			opts: Options{DPI: 150},
			want: []string{
				"-dDownsampleColorImages=true", "-dColorImageResolution=150",
				"-dGrayImageResolution=150", "-dMonoImageResolution=150",
			},
			wantNot: []string{"-dFILTERIMAGE"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := Args("in.pdf", "out.pdf", tt.opts)
			assert.Equal(t, "-sDEVICE=pdfwrite", args[0])
			assert.Equal(t, []string{"-sOutputFile=out.pdf", "in.pdf"}, args[len(args)-2:])
			for _, w := range tt.want {
				assert.Contains(t, args, w)
			}
			for _, w := range tt.wantNot {
				assert.NotContains(t, args, w)
			}
		})
	}
}

func TestOptionsEmpty(t *testing.T) {
	assert.True(t, Options{}.Empty())
	assert.False(t, Options{DPI: 72}.Empty())
	assert.False(t, Options{RemoveImages: true}.Empty())
}

func TestRewrite(t *testing.T) {
	fake := commandtest.New()
	c := New("gs", fake, nil)
	require.NoError(t, c.Rewrite(context.Background(), "a.pdf", "b.pdf", Options{DPI: 72}))
	require.Len(t, fake.CallsTo("gs"), 1)

	fake.Reply("gs", "", 1)
	err := c.Rewrite(context.Background(), "a.pdf", "b.pdf", Options{DPI: 72})
	var ee *command.ExitError
	assert.ErrorAs(t, err, &ee)
}

func TestLocate(t *testing.T) {
	p, err := Locate(commandtest.New().Install("gs"), "")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/gs", p)

	p, err = Locate(commandtest.New(), "/opt/gs")
	require.NoError(t, err)
	assert.Equal(t, "/opt/gs", p)

	_, err = Locate(commandtest.New(), "")
	assert.Error(t, err)
}
