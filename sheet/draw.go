package sheet

import (
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Given a computed Sheet, implements how to draw it.
// This requires a driver implementing the actual draw operations,
// such as a rasterizer to output .png images or a pdf writer.

// PointsPerMillimetre converts page millimetres to PDF points.
const PointsPerMillimetre = 72 / 25.4

// Scale returns the transform mapping page millimetres to device units,
// `unitsPerMM` device units per millimetre.
func Scale(unitsPerMM float64) rasterx.Matrix2D {
	return rasterx.Identity.Scale(unitsPerMM, unitsPerMM)
}

// Drawer knows how to do the actual draw operations
// but doesn't need any worksheet knowledge.
// In particular, the transform is already applied to the points
// before sending them to the Drawer.
type Drawer interface {
	// Clear must reset the internal state (used before starting a new path painting)
	Clear()

	// Start starts a new path at the given point.
	Start(a fixed.Point26_6)

	// Line adds a line from the current point to `b`
	Line(b fixed.Point26_6)

	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)

	// Closes the path to the start point if `closeLoop` is true
	Stop(closeLoop bool)

	// SetColor sets the color for the current path
	SetColor(c color.RGBA)

	// Draw fills or strokes the accumulated path using the current settings
	Draw()
}

type Filler interface {
	Drawer

	// Decide to use or not the NonZeroWinding rule for the current path
	SetWinding(useNonZeroWinding bool)
}

type Stroker interface {
	Drawer

	// Parametrize the stroking style for the current path
	SetStrokeOptions(options StrokeOptions)
}

type Driver interface {
	// SetupDrawers returns the backend painters, and
	// will be called at the beginning of every path.
	// If the `willXXX` boolean is false, the returned drawer should be nil
	// to avoid useless operations.
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)
}

type DashOptions struct {
	Dash       []float64 // values for the dash pattern, in device units (nil or an empty slice for no dashes)
	DashOffset float64   // starting offset into the dash array
}

// JoinMode type to specify how segments join.
type JoinMode uint8

const (
	Round JoinMode = iota
	Bevel
	Miter
)

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	ButtCap CapMode = iota
	SquareCap
	RoundCap
)

type StrokeOptions struct {
	LineWidth  fixed.Int26_6 // width of the line
	MiterLimit fixed.Int26_6
	LineJoin   JoinMode
	LineCap    CapMode
	Dash       DashOptions
}

// scaleOf returns the length scaling factor of M.
func scaleOf(M rasterx.Matrix2D) float64 {
	return math.Sqrt(math.Abs(M.A*M.D - M.B*M.C))
}

// Draw the sheet into the driver `d`, mapping page millimetres
// with the transform `M`.
func (s *Sheet) Draw(d Driver, M rasterx.Matrix2D) {
	k := scaleOf(M)
	for _, p := range s.Primitives {
		p.draw(d, M, k)
	}
}

func (p Primitive) draw(d Driver, M rasterx.Matrix2D, k float64) {
	path := p.Path()
	if p.Kind == KindDot {
		filler, _ := d.SetupDrawers(true, false)
		if filler == nil {
			return
		}
		filler.Clear()
		filler.SetWinding(true)
		for _, op := range path {
			op.drawTo(filler, M)
		}
		filler.Stop(false)
		filler.SetColor(p.Style.Color)
		filler.Draw()
		return
	}

	_, stroker := d.SetupDrawers(false, true)
	if stroker == nil {
		return
	}
	stroker.Clear()
	var dash []float64
	if len(p.Style.Dash) != 0 {
		dash = make([]float64, len(p.Style.Dash))
		for i, v := range p.Style.Dash {
			dash[i] = v * k
		}
	}
	stroker.SetStrokeOptions(StrokeOptions{
		LineWidth:  fixed.Int26_6(p.Style.Width * k * 64),
		MiterLimit: fixed.Int26_6(4 * 64),
		LineJoin:   Bevel,
		LineCap:    ButtCap,
		Dash:       DashOptions{Dash: dash},
	})
	for _, op := range path {
		op.drawTo(stroker, M)
	}
	stroker.Stop(false)
	stroker.SetColor(p.Style.Color)
	stroker.Draw()
}
