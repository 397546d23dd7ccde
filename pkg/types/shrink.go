// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// QualityTier selects how far images are downsampled. QualityNone leaves
// them alone.
type QualityTier string

const (
	QualityNone   QualityTier = "NO"
	QualityLow    QualityTier = "Low"
	QualityMedium QualityTier = "Medium"
	QualityHigh   QualityTier = "High"
)

// ParseQuality maps a dialog answer to a tier.
func ParseQuality(s string) (QualityTier, error) {
	switch q := QualityTier(s); q {
	case QualityNone, QualityLow, QualityMedium, QualityHigh:
		return q, nil
	}
	return "", fmt.Errorf("unknown quality %q", s)
}

// SuffixMode selects how shrunk files are named.
type SuffixMode string

const (
	// SuffixFixed appends the configured suffix to the stem.
	SuffixFixed SuffixMode = "Subfix"
	// SuffixTimestamp appends "_" and the current time.
	SuffixTimestamp SuffixMode = "Timestamp"
)

// ParseSuffix maps a dialog answer to a suffix mode.
func ParseSuffix(s string) (SuffixMode, error) {
	switch m := SuffixMode(s); m {
	case SuffixFixed, SuffixTimestamp:
		return m, nil
	}
	return "", fmt.Errorf("unknown suffix mode %q", s)
}

// ShrinkOptions are the choices made in the shrink form. They are collected
// once per invocation and apply to every file.
type ShrinkOptions struct {
	RemoveDuplicates bool        `json:"remove_duplicates" yaml:"remove_duplicates"`
	RemoveImages     bool        `json:"remove_images" yaml:"remove_images"`
	Quality          QualityTier `json:"quality" yaml:"quality"`
	Compress         bool        `json:"compress" yaml:"compress"`
	Suffix           SuffixMode  `json:"suffix" yaml:"suffix"`
}

// NoOp reports whether the options would not change the document.
func (o ShrinkOptions) NoOp() bool {
	return !o.RemoveDuplicates && !o.RemoveImages && !o.Compress &&
		(o.Quality == QualityNone || o.Quality == "")
}

// ShrinkResult records the outcome for one file.
type ShrinkResult struct {
	Source string `json:"source" yaml:"source"`
	Output string `json:"output" yaml:"output"`
	Before int64  `json:"before" yaml:"before"`
	After  int64  `json:"after" yaml:"after"`
	// Kept is false when the output was deleted because it was not smaller.
	Kept bool `json:"kept" yaml:"kept"`
}

// Smaller reports whether the output is smaller than the source.
func (r ShrinkResult) Smaller() bool {
	return r.After < r.Before
}

// Ratio returns the output size as a fraction of the source size.
func (r ShrinkResult) Ratio() float64 {
	if r.Before == 0 {
		return 0
	}
	return float64(r.After) / float64(r.Before)
}
