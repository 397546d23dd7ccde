package types

// DialogConfig holds settings for the dialog program.
type DialogConfig struct {
	// Binary is the yad executable (default "yad").
	Binary string `json:"binary" yaml:"binary" mapstructure:"binary"`

	// BaseArgs are passed to every dialog (default ["--fixed"]).
	BaseArgs []string `json:"base_args" yaml:"base_args" mapstructure:"base_args"`

	// Width and Height size the action forms, in pixels.
	Width  int `json:"width" yaml:"width" mapstructure:"width"`
	Height int `json:"height" yaml:"height" mapstructure:"height"`
}

// ToolConfig locates an external tool. An empty Path falls back to the
// tool's usual locations.
type ToolConfig struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty" mapstructure:"path"`
}

// ShrinkConfig holds settings for the shrink action.
type ShrinkConfig struct {
	// Suffix is appended to the stem of shrunk files in Subfix mode
	// (default "_compressed").
	Suffix string `json:"suffix" yaml:"suffix" mapstructure:"suffix"`

	// TimestampLayout is the Go time layout used in Timestamp mode
	// (default "20060102-150405").
	TimestampLayout string `json:"timestamp_layout" yaml:"timestamp_layout" mapstructure:"timestamp_layout"`

	// Resolutions, in dpi, of the Low, Medium, and High quality tiers.
	DPILow    int `json:"dpi_low" yaml:"dpi_low" mapstructure:"dpi_low"`
	DPIMedium int `json:"dpi_medium" yaml:"dpi_medium" mapstructure:"dpi_medium"`
	DPIHigh   int `json:"dpi_high" yaml:"dpi_high" mapstructure:"dpi_high"`
}

// DPI returns the resolution of tier q, or 0 when q keeps images as they are.
func (c ShrinkConfig) DPI(q QualityTier) int {
	switch q {
	case QualityLow:
		return c.DPILow
	case QualityMedium:
		return c.DPIMedium
	case QualityHigh:
		return c.DPIHigh
	}
	return 0
}

// ConvertBackend identifies the image-to-PDF conversion tool.
type ConvertBackend string

const (
	BackendImg2pdf ConvertBackend = "img2pdf"
	BackendPdfcpu  ConvertBackend = "pdfcpu"
)

// ConvertConfig holds settings for image-to-PDF conversion.
type ConvertConfig struct {
	// Backend selects the converter: img2pdf or pdfcpu.
	Backend ConvertBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Img2pdfPath overrides the img2pdf executable.
	Img2pdfPath string `json:"img2pdf_path,omitempty" yaml:"img2pdf_path,omitempty" mapstructure:"img2pdf_path"`

	// Creator and Producer are stamped into the generated document.
	Creator  string `json:"creator" yaml:"creator" mapstructure:"creator"`
	Producer string `json:"producer" yaml:"producer" mapstructure:"producer"`
}

// Config groups all settings of the actions.
type Config struct {
	// LogLevel is a logrus level name (default "warning").
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`

	Dialog      DialogConfig  `json:"dialog" yaml:"dialog" mapstructure:"dialog"`
	Pdftk       ToolConfig    `json:"pdftk" yaml:"pdftk" mapstructure:"pdftk"`
	Ghostscript ToolConfig    `json:"ghostscript" yaml:"ghostscript" mapstructure:"ghostscript"`
	Shrink      ShrinkConfig  `json:"shrink" yaml:"shrink" mapstructure:"shrink"`
	Convert     ConvertConfig `json:"convert" yaml:"convert" mapstructure:"convert"`
}

// DefaultConfig returns the settings used when no config file or
// environment override is present.
func DefaultConfig() Config {
	return Config{
		LogLevel: "warning",
		Dialog: DialogConfig{
			Binary:   "yad",
			BaseArgs: []string{"--fixed"},
			Width:    800,
			Height:   150,
		},
		Shrink: ShrinkConfig{
			Suffix:          "_compressed",
			TimestampLayout: "20060102-150405",
			DPILow:          72,
			DPIMedium:       150,
			DPIHigh:         300,
		},
		Convert: ConvertConfig{
			Backend:  BackendImg2pdf,
			Creator:  "SoftGeek Romania",
			Producer: "SGS Nemo Actions",
		},
	}
}
