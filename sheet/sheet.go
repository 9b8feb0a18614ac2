// Provides the geometry of blank practice worksheets.
// A Config is turned into a Sheet, an ordered list of lines and dots
// positioned on the page, which can then be consumed by painting drivers.
// See for example guidesheets/sheetpdf or guidesheets/sheetraster .
package sheet

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// MaxPrimitives bounds the number of primitives a Sheet may hold.
const MaxPrimitives = 500_000

// ErrTooManyPrimitives is returned by Build when the configuration
// would produce more than MaxPrimitives primitives.
var ErrTooManyPrimitives = errors.New("too many primitives")

// dash patterns, in mm
var (
	lineGuideDash    = []float64{2, 3}
	angularGuideDash = []float64{1, 2}
)

// Kind distinguishes stroked lines from filled dots.
type Kind uint8

const (
	KindLine Kind = iota
	KindDot
)

// Guide identifies the role of a primitive on the sheet.
type Guide uint8

const (
	Border Guide = iota
	Horizontal
	Vertical
	Dot
	Ascender
	XHeight
	Baseline
	Descender
	Angular
)

func (g Guide) String() string {
	switch g {
	case Border:
		return "border"
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Dot:
		return "dot"
	case Ascender:
		return "ascender"
	case XHeight:
		return "x-height"
	case Baseline:
		return "baseline"
	case Descender:
		return "descender"
	case Angular:
		return "angular"
	default:
		return "<unknown Guide>"
	}
}

// Style holds the painting parameters of a primitive.
type Style struct {
	Color color.RGBA
	Width float64   // stroke width, ignored for dots
	Dash  []float64 // dash pattern, nil for solid lines
}

// Primitive is a line from A to B, or a dot centered on A.
type Primitive struct {
	Kind   Kind
	Guide  Guide
	A, B   Point
	Radius float64 // dots only
	Style  Style
}

// Sheet is the computed geometry of one worksheet page.
type Sheet struct {
	Width, Height float64 // page size
	Content       Rect    // area inside the margins
	Primitives    []Primitive
}

// Count returns the number of primitives playing the role g.
func (s *Sheet) Count(g Guide) int {
	n := 0
	for _, p := range s.Primitives {
		if p.Guide == g {
			n++
		}
	}
	return n
}

// Bounds returns the extent of the primitives, dots included.
// It returns the zero Rect for an empty sheet.
func (s *Sheet) Bounds() Rect {
	var (
		out   Rect
		first = true
	)
	for _, p := range s.Primitives {
		var r Rect
		switch p.Kind {
		case KindDot:
			r = Rect{Point{p.A.X - p.Radius, p.A.Y - p.Radius}, Point{p.A.X + p.Radius, p.A.Y + p.Radius}}
		default:
			r = Rect{
				Point{math.Min(p.A.X, p.B.X), math.Min(p.A.Y, p.B.Y)},
				Point{math.Max(p.A.X, p.B.X), math.Max(p.A.Y, p.B.Y)},
			}
		}
		if first {
			out, first = r, false
		} else {
			out = out.Union(r)
		}
	}
	return out
}

// builder accumulates primitives in draw order
type builder struct {
	cfg     Config
	content Rect
	solid   Style
	out     []Primitive
}

func (b *builder) line(g Guide, a, c Point, style Style) {
	b.out = append(b.out, Primitive{Kind: KindLine, Guide: g, A: a, B: c, Style: style})
}

func (b *builder) hline(g Guide, y float64, style Style) {
	b.line(g, Point{b.content.Min.X, y}, Point{b.content.Max.X, y}, style)
}

func (b *builder) dashed(dash []float64) Style {
	s := b.solid
	s.Dash = dash
	return s
}

// Build validates the configuration and computes the sheet geometry.
func Build(cfg Config) (*Sheet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if n := estimate(cfg); n > MaxPrimitives {
		return nil, fmt.Errorf("%w: configuration needs about %.0f primitives, limit is %d", ErrTooManyPrimitives, n, MaxPrimitives)
	}

	col, _ := ParseColor(cfg.Color) // checked by Validate
	b := builder{
		cfg: cfg,
		content: Rect{
			Min: Point{cfg.MarginLeft, cfg.MarginTop},
			Max: Point{cfg.Width - cfg.MarginRight, cfg.Height - cfg.MarginBottom},
		},
		solid: Style{Color: col, Width: cfg.LineWidth},
	}

	if cfg.Border {
		b.border()
	}
	switch cfg.Mode {
	case Lines:
		b.horizontals()
	case Grid:
		b.horizontals()
		b.verticals()
	case Dots:
		b.dots()
	case Calligraphy:
		if cfg.Calligraphy.LineGuides {
			b.lineGuides()
		}
		if cfg.Calligraphy.AngularGuides {
			b.angularGuides()
		}
	}

	return &Sheet{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Content:    b.content,
		Primitives: b.out,
	}, nil
}

// estimate returns an upper bound of the number of primitives, computed
// in floating point so that tiny spacings do not overflow.
func estimate(cfg Config) float64 {
	cw, ch := cfg.ContentWidth(), cfg.ContentHeight()
	nx, ny := math.Ceil(cw/cfg.Spacing), math.Ceil(ch/cfg.Spacing)
	n := 4.
	switch cfg.Mode {
	case Lines:
		n += ny
	case Grid:
		n += nx + ny
	case Dots:
		n += nx * ny
	case Calligraphy:
		cal := cfg.Calligraphy
		if cal.LineGuides {
			n += 4 * math.Ceil(ch/cal.Pitch())
		}
		if cal.AngularGuides {
			lo, hi := angularRange(cw, ch, cal.Angle)
			n += math.Floor((hi - lo) / cfg.angularSpacing())
		}
	}
	if math.IsNaN(n) {
		return math.Inf(1)
	}
	return n
}
