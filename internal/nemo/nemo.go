// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package nemo registers the actions with the Nemo file manager by writing
// .nemo_action key files.
package nemo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Action describes one context-menu entry.
type Action struct {
	// Name is the file-name slug, e.g. "pdf-merge".
	Name    string
	Label   string
	Comment string
	Icon    string
	// Selection is a Nemo selection keyword: s, m, notnone, any.
	Selection  string
	Extensions []string
	// Args follow the binary on the Exec line; %F expands to the selected
	// paths.
	Args         []string
	Dependencies []string
}

var pdfExtensions = []string{"pdf"}

var imageExtensions = []string{"jpg", "jpeg", "png", "tif", "tiff", "gif", "bmp", "webp"}

// Catalog returns the actions shipped with the tool.
func Catalog() []Action {
	return []Action{
		{
			Name:         "pdf-merge",
			Label:        "Merge PDF files...",
			Comment:      "Merge the selected PDF files into one document",
			Icon:         "application-pdf",
			Selection:    "m",
			Extensions:   pdfExtensions,
			Args:         []string{"pdf", "merge", "%F"},
			Dependencies: []string{"yad"},
		},
		{
			Name:         "pdf-concat",
			Label:        "Quick merge PDF files",
			Comment:      "Concatenate the selected PDF files without asking",
			Icon:         "application-pdf",
			Selection:    "m",
			Extensions:   pdfExtensions,
			Args:         []string{"pdf", "concat", "%F"},
			Dependencies: []string{"pdftk"},
		},
		{
			Name:         "pdf-metadata",
			Label:        "Edit PDF metadata...",
			Comment:      "Edit the title, author, creator, and producer of a PDF file",
			Icon:         "document-properties",
			Selection:    "s",
			Extensions:   pdfExtensions,
			Args:         []string{"pdf", "metadata", "%F"},
			Dependencies: []string{"yad", "pdftk"},
		},
		{
			Name:         "pdf-shrink",
			Label:        "Shrink PDF files...",
			Comment:      "Write smaller copies of the selected PDF files",
			Icon:         "package-x-generic",
			Selection:    "notnone",
			Extensions:   pdfExtensions,
			Args:         []string{"pdf", "shrink", "%F"},
			Dependencies: []string{"yad", "gs"},
		},
		{
			Name:         "img2pdf",
			Label:        "Convert images to PDF",
			Comment:      "Combine the selected images into one PDF, one page per image",
			Icon:         "image-x-generic",
			Selection:    "notnone",
			Extensions:   imageExtensions,
			Args:         []string{"img2pdf", "%F"},
			Dependencies: []string{"img2pdf"},
		},
	}
}

// FileName returns the action file name for a, e.g. "sgs-pdf-merge.nemo_action".
func FileName(a Action) string {
	return "sgs-" + a.Name + ".nemo_action"
}

// Render returns the key file for a, running bin.
func Render(a Action, bin string) string {
	var b strings.Builder
	b.WriteString("[Nemo Action]\n")
	b.WriteString("Active=true\n")
	fmt.Fprintf(&b, "Name=%s\n", a.Label)
	fmt.Fprintf(&b, "Comment=%s\n", a.Comment)
	fmt.Fprintf(&b, "Exec=%s\n", strings.Join(append([]string{quote(bin)}, a.Args...), " "))
	if a.Icon != "" {
		fmt.Fprintf(&b, "Icon-Name=%s\n", a.Icon)
	}
	fmt.Fprintf(&b, "Selection=%s\n", a.Selection)
	fmt.Fprintf(&b, "Extensions=%s\n", list(a.Extensions))
	b.WriteString("Quote=double\n")
	if len(a.Dependencies) > 0 {
		fmt.Fprintf(&b, "Dependencies=%s\n", list(a.Dependencies))
	}
	return b.String()
}

func list(items []string) string {
	if len(items) == 0 {
		return "any;"
	}
	return strings.Join(items, ";") + ";"
}

func quote(s string) string {
	if strings.ContainsAny(s, " \t") {
		return `"` + s + `"`
	}
	return s
}

// DefaultDir returns the per-user actions directory,
// $XDG_DATA_HOME/nemo/actions or ~/.local/share/nemo/actions.
func DefaultDir() (string, error) {
	if data := os.Getenv("XDG_DATA_HOME"); data != "" {
		return filepath.Join(data, "nemo", "actions"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "nemo", "actions"), nil
}

// Install writes every action into dir, replacing earlier versions, and
// prints one line per file to w. It returns the paths written.
func Install(dir, bin string, actions []Action, w io.Writer) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	var written []string
	for _, a := range actions {
		p := filepath.Join(dir, FileName(a))
		if err := os.WriteFile(p, []byte(Render(a, bin)), 0o644); err != nil {
			return written, fmt.Errorf("writing %s: %w", p, err)
		}
		fmt.Fprintf(w, "installed: %s\n", p)
		written = append(written, p)
	}
	return written, nil
}
