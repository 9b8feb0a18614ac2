package sheet

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidConfig is wrapped by every error returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid worksheet config")

// Mode selects the worksheet style.
type Mode string

const (
	Lines       Mode = "lines"
	Grid        Mode = "grid"
	Dots        Mode = "dots"
	Calligraphy Mode = "calligraphy"
)

// Modes lists the supported modes, in usage order.
var Modes = [...]Mode{Lines, Grid, Dots, Calligraphy}

func (m Mode) valid() bool {
	for _, v := range Modes {
		if m == v {
			return true
		}
	}
	return false
}

// CalligraphyOptions holds the parameters of the calligraphy guides.
// Ratios are expressed in arbitrary units relative to XRatio: an
// ascender ratio of 3 with an x ratio of 2 gives ascenders 1.5 times
// the x-height.
type CalligraphyOptions struct {
	LineGuides     bool    `yaml:"line_guides" xml:"line-guides"`
	XSize          float64 `yaml:"x_size" xml:"x-size"`
	XRatio         float64 `yaml:"x_ratio" xml:"x-ratio"`
	AscenderRatio  float64 `yaml:"ascender_ratio" xml:"ascender-ratio"`
	DescenderRatio float64 `yaml:"descender_ratio" xml:"descender-ratio"`
	LineSpacing    float64 `yaml:"line_spacing" xml:"line-spacing"`

	AngularGuides  bool    `yaml:"angular_guides" xml:"angular-guides"`
	Angle          float64 `yaml:"angle" xml:"angle"`                     // degrees from horizontal
	AngularSpacing float64 `yaml:"angular_spacing" xml:"angular-spacing"` // 0 means Config.Spacing
}

// Config describes a worksheet. All lengths are in millimetres.
type Config struct {
	Width        float64 `yaml:"width" xml:"width"`
	Height       float64 `yaml:"height" xml:"height"`
	MarginLeft   float64 `yaml:"margin_left" xml:"margin-left"`
	MarginRight  float64 `yaml:"margin_right" xml:"margin-right"`
	MarginTop    float64 `yaml:"margin_top" xml:"margin-top"`
	MarginBottom float64 `yaml:"margin_bottom" xml:"margin-bottom"`

	Spacing float64 `yaml:"spacing" xml:"spacing"`
	Mode    Mode    `yaml:"mode" xml:"mode"`
	Border  bool    `yaml:"border" xml:"border"`

	Color     string  `yaml:"color" xml:"color"` // #rrggbb or #rgb
	LineWidth float64 `yaml:"line_width" xml:"line-width"`
	DotRadius float64 `yaml:"dot_radius" xml:"dot-radius"`

	Calligraphy CalligraphyOptions `yaml:"calligraphy" xml:"calligraphy"`
}

// DefaultConfig returns an A4 grid with 5mm spacing.
func DefaultConfig() Config {
	return Config{
		Width:        A4.Width,
		Height:       A4.Height,
		MarginLeft:   10,
		MarginRight:  10,
		MarginTop:    6,
		MarginBottom: 6,
		Spacing:      5,
		Mode:         Grid,
		Color:        "#c8c8c8",
		LineWidth:    0.2,
		DotRadius:    0.3,
		Calligraphy: CalligraphyOptions{
			XSize:          6,
			XRatio:         2,
			AscenderRatio:  3,
			DescenderRatio: 3,
			LineSpacing:    5,
			Angle:          55,
		},
	}
}

// ContentWidth is the page width left between the margins.
func (c Config) ContentWidth() float64 { return c.Width - c.MarginLeft - c.MarginRight }

// ContentHeight is the page height left between the margins.
func (c Config) ContentHeight() float64 { return c.Height - c.MarginTop - c.MarginBottom }

// AscenderSize returns the ascender height derived from the x-height.
func (c CalligraphyOptions) AscenderSize() float64 {
	return c.XSize * c.AscenderRatio / c.XRatio
}

// DescenderSize returns the descender depth derived from the x-height.
func (c CalligraphyOptions) DescenderSize() float64 {
	return c.XSize * c.DescenderRatio / c.XRatio
}

// Pitch is the vertical distance between two text lines.
func (c CalligraphyOptions) Pitch() float64 {
	return c.LineSpacing + c.XSize + c.AscenderSize() + c.DescenderSize()
}

func (c Config) angularSpacing() float64 {
	if c.Calligraphy.AngularSpacing > 0 {
		return c.Calligraphy.AngularSpacing
	}
	return c.Spacing
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Validate checks that the configuration describes bounded, non degenerate
// geometry.
func (c Config) Validate() error {
	for _, f := range [...]struct {
		name  string
		value float64
	}{
		{"width", c.Width}, {"height", c.Height},
		{"margin-left", c.MarginLeft}, {"margin-right", c.MarginRight},
		{"margin-top", c.MarginTop}, {"margin-bottom", c.MarginBottom},
		{"spacing", c.Spacing}, {"line-width", c.LineWidth}, {"dot-radius", c.DotRadius},
	} {
		if !finite(f.value) {
			return invalid("%s must be a finite number", f.name)
		}
	}
	if c.Width <= 0 || c.Height <= 0 {
		return invalid("page size must be positive, got %gx%g", c.Width, c.Height)
	}
	if c.MarginLeft < 0 || c.MarginRight < 0 || c.MarginTop < 0 || c.MarginBottom < 0 {
		return invalid("margins must not be negative")
	}
	if c.ContentWidth() <= 0 || c.ContentHeight() <= 0 {
		return invalid("margins leave no content area on a %gx%g page", c.Width, c.Height)
	}
	if c.Spacing <= 0 {
		return invalid("spacing must be positive, got %g", c.Spacing)
	}
	if !c.Mode.valid() {
		return invalid("unknown mode %q", c.Mode)
	}
	if _, err := ParseColor(c.Color); err != nil {
		return invalid("%s", err)
	}
	if c.LineWidth <= 0 {
		return invalid("line width must be positive, got %g", c.LineWidth)
	}
	if c.DotRadius <= 0 {
		return invalid("dot radius must be positive, got %g", c.DotRadius)
	}
	if c.Mode != Calligraphy {
		return nil
	}

	cal := c.Calligraphy
	if cal.LineGuides {
		if !(cal.XSize > 0) || !(cal.XRatio > 0) {
			return invalid("calligraphy x size and x ratio must be positive")
		}
		if !(cal.AscenderRatio >= 0) || !(cal.DescenderRatio >= 0) || !(cal.LineSpacing >= 0) {
			return invalid("calligraphy ratios and line spacing must not be negative")
		}
		if !finite(cal.Pitch()) {
			return invalid("calligraphy line pitch overflows")
		}
	}
	if cal.AngularGuides {
		if !(cal.Angle > 0 && cal.Angle < 180) {
			return invalid("calligraphy angle must be in (0, 180) degrees, got %g", cal.Angle)
		}
		if !(cal.AngularSpacing >= 0) || !finite(cal.AngularSpacing) {
			return invalid("calligraphy angular spacing must not be negative, got %g", cal.AngularSpacing)
		}
	}
	return nil
}

// ParseColor accepts #rrggbb and #rgb colors (the leading # is optional).
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
