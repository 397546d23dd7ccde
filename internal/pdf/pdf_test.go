// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

// makePDF builds a document with one page per generated image.
func makePDF(t *testing.T, e *Engine, dir, name string, pages int) string {
	t.Helper()
	var images []string
	for i := 0; i < pages; i++ {
		p := filepath.Join(dir, name+"-"+string(rune('a'+i))+".png")
		writePNG(t, p, 32, 24)
		images = append(images, p)
	}
	out := filepath.Join(dir, name+".pdf")
	require.NoError(t, e.ImportImages(context.Background(), images, out))
	return out
}

func TestImportImagesAndPageCount(t *testing.T) {
	e := New(nil)
	dir := t.TempDir()
	out := makePDF(t, e, dir, "doc", 3)

	n, err := e.PageCount(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// A second import replaces the document rather than appending to it.
	out = makePDF(t, e, dir, "doc", 1)
	n, err = e.PageCount(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMerge(t *testing.T) {
	e := New(nil)
	dir := t.TempDir()
	a := makePDF(t, e, dir, "a", 2)
	b := makePDF(t, e, dir, "b", 3)
	out := filepath.Join(dir, "a_b.pdf")

	require.NoError(t, e.Merge(context.Background(), []string{a, b}, out))
	n, err := e.PageCount(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	assert.Error(t, e.Merge(context.Background(), nil, out))
}

func TestOptimize(t *testing.T) {
	e := New(nil)
	dir := t.TempDir()
	in := makePDF(t, e, dir, "in", 2)
	out := filepath.Join(dir, "out.pdf")

	require.NoError(t, e.Optimize(context.Background(), in, out, OptimizeOptions{DuplicateContent: true, ObjectStreams: true}))
	n, err := e.PageCount(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCancelledContext(t *testing.T) {
	e := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, e.Merge(ctx, []string{"a.pdf"}, "b.pdf"), context.Canceled)
	_, err := e.PageCount(ctx, "a.pdf")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPageCountMissingFile(t *testing.T) {
	_, err := New(nil).PageCount(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}
