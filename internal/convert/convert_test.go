// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/softgeekro/nemo-actions/internal/command"
	"github.com/softgeekro/nemo-actions/internal/command/commandtest"
	"github.com/softgeekro/nemo-actions/pkg/types"
)

// fakeConverter implements Converter for testing. It records its input and
// returns a canned error.
type fakeConverter struct {
	err    error
	images []string
	out    string
}

func (f *fakeConverter) Name() string { return "fake" }

func (f *fakeConverter) Convert(_ context.Context, images []string, out string, _ Metadata) error {
	f.images, f.out = images, out
	return f.err
}

// setupImages creates empty image files in a temp dir and returns their
// paths in the order given.
func setupImages(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for _, n := range names {
		p := filepath.Join(dir, n)
		if err := os.WriteFile(p, []byte("img"), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	return paths
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantImages []string
		wantOut    string
	}{
		{
			name:       "sorted stems",
			args:       []string{"/p/page2.jpg", "/p/page1.jpg", "/p/page3.png"},
			wantImages: []string{"/p/page1.jpg", "/p/page2.jpg", "/p/page3.png"},
			wantOut:    "/p/page1_page2_page3.pdf",
		},
		{
			name:       "directory of first argument",
			args:       []string{"/b/z.jpg", "/a/y.jpg"},
			wantImages: []string{"/a/y.jpg", "/b/z.jpg"},
			wantOut:    "/b/y_z.pdf",
		},
		{
			name:       "single image",
			args:       []string{"scan.tiff"},
			wantImages: []string{"scan.tiff"},
			wantOut:    "scan.pdf",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			images, out := Plan(tt.args)
			if !reflect.DeepEqual(images, tt.wantImages) {
				t.Errorf("images = %v, want %v", images, tt.wantImages)
			}
			if out != tt.wantOut {
				t.Errorf("out = %q, want %q", out, tt.wantOut)
			}
		})
	}
}

func TestConvertImages(t *testing.T) {
	paths := setupImages(t, "b.jpg", "a.jpg")
	conv := &fakeConverter{}
	var log bytes.Buffer

	out, err := ConvertImages(context.Background(), conv, paths, Metadata{}, &log)
	if err != nil {
		t.Fatalf("ConvertImages: %v", err)
	}
	if want := filepath.Join(filepath.Dir(paths[0]), "a_b.pdf"); out != want {
		t.Errorf("out = %q, want %q", out, want)
	}
	if filepath.Base(conv.images[0]) != "a.jpg" {
		t.Errorf("first image = %q, want a.jpg", conv.images[0])
	}
	if !strings.Contains(log.String(), "converted: 2 images") {
		t.Errorf("log %q does not report the conversion", log.String())
	}
}

func TestConvertImages_Failures(t *testing.T) {
	t.Run("missing image", func(t *testing.T) {
		conv := &fakeConverter{}
		var log bytes.Buffer
		_, err := ConvertImages(context.Background(), conv, []string{filepath.Join(t.TempDir(), "x.jpg")}, Metadata{}, &log)
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("err = %v, want ErrNotExist", err)
		}
		if conv.out != "" {
			t.Error("converter called for a missing image")
		}
	})

	t.Run("backend error", func(t *testing.T) {
		conv := &fakeConverter{err: errors.New("boom")}
		var log bytes.Buffer
		if _, err := ConvertImages(context.Background(), conv, setupImages(t, "a.png"), Metadata{}, &log); err == nil {
			t.Error("expected error")
		}
		if !strings.Contains(log.String(), "failed:") {
			t.Errorf("log %q does not report the failure", log.String())
		}
	})

	t.Run("no arguments", func(t *testing.T) {
		if _, err := ConvertImages(context.Background(), &fakeConverter{}, nil, Metadata{}, &bytes.Buffer{}); err == nil {
			t.Error("expected error")
		}
	})
}

func TestImg2pdfConverter(t *testing.T) {
	fake := commandtest.New().Install("img2pdf")
	c, err := NewImg2pdfConverter(fake, "")
	if err != nil {
		t.Fatal(err)
	}
	err = c.Convert(context.Background(), []string{"a.jpg", "b.jpg"}, "/out/a_b.pdf", Metadata{
		Creator:  "SoftGeek Romania",
		Producer: "SGS Nemo Actions",
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a.jpg", "b.jpg", "--output", "/out/a_b.pdf", "--creator", "SoftGeek Romania", "--producer", "SGS Nemo Actions"}
	call := fake.Calls[0]
	if call.Name != "/usr/bin/img2pdf" || !reflect.DeepEqual(call.Args, want) {
		t.Errorf("call = %s %v, want /usr/bin/img2pdf %v", call.Name, call.Args, want)
	}

	fake.Reply("/usr/bin/img2pdf", "", 1)
	var ee *command.ExitError
	if err := c.Convert(context.Background(), []string{"a.jpg"}, "a.pdf", Metadata{}); !errors.As(err, &ee) {
		t.Errorf("err = %v, want *command.ExitError", err)
	}
}

func TestNewImg2pdfConverter_NotInstalled(t *testing.T) {
	if _, err := NewImg2pdfConverter(commandtest.New(), ""); err == nil {
		t.Error("expected error when img2pdf is missing")
	}
}

type fakeImporter struct{ outs []string }

func (f *fakeImporter) ImportImages(_ context.Context, _ []string, out string) error {
	f.outs = append(f.outs, out)
	return os.WriteFile(out, []byte("%PDF-1.7"), 0o644)
}

type fakeInfo struct {
	info map[string]string
}

func (f *fakeInfo) UpdateInfo(_ context.Context, in string, info map[string]string, out string) error {
	f.info = info
	b, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	return os.WriteFile(out, b, 0o644)
}

func TestNativeConverter(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "a.pdf")

	t.Run("without stamping", func(t *testing.T) {
		imp := &fakeImporter{}
		if err := NewNativeConverter(imp, nil).Convert(context.Background(), []string{"a.png"}, out, Metadata{Creator: "c"}); err != nil {
			t.Fatal(err)
		}
		if len(imp.outs) != 1 || imp.outs[0] != out {
			t.Errorf("imported into %v, want %q", imp.outs, out)
		}
	})

	t.Run("stamps creator and producer", func(t *testing.T) {
		imp, info := &fakeImporter{}, &fakeInfo{}
		err := NewNativeConverter(imp, info).Convert(context.Background(), []string{"a.png"}, out, Metadata{Creator: "c", Producer: "p"})
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(info.info, map[string]string{"Creator": "c", "Producer": "p"}) {
			t.Errorf("info = %v", info.info)
		}
		if _, err := os.Stat(out); err != nil {
			t.Errorf("output missing: %v", err)
		}
		entries, _ := os.ReadDir(dir)
		if len(entries) != 1 {
			t.Errorf("work directory left behind: %v", entries)
		}
	})
}

func TestNew(t *testing.T) {
	fake := commandtest.New().Install("img2pdf")
	tests := []struct {
		backend types.ConvertBackend
		want    string
		wantErr bool
	}{
		{backend: "", want: "img2pdf"},
		{backend: types.BackendImg2pdf, want: "img2pdf"},
		{backend: types.BackendPdfcpu, want: "pdfcpu"},
		{backend: "magick", wantErr: true},
	}
	for _, tt := range tests {
		c, err := New(types.ConvertConfig{Backend: tt.backend}, fake, &fakeImporter{}, nil)
		if tt.wantErr {
			if err == nil {
				t.Errorf("backend %q: expected error", tt.backend)
			}
			continue
		}
		if err != nil {
			t.Fatalf("backend %q: %v", tt.backend, err)
		}
		if c.Name() != tt.want {
			t.Errorf("backend %q: got %s, want %s", tt.backend, c.Name(), tt.want)
		}
	}
}

func TestMetadataFrom(t *testing.T) {
	got := MetadataFrom(types.DefaultConfig().Convert)
	want := Metadata{Creator: "SoftGeek Romania", Producer: "SGS Nemo Actions"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
