package sheet

import (
	"fmt"
	"strings"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// This file defines the basic path structure

// Operation groups the different path commands.
// Points are stored in page millimetres, and only converted
// to fixed point device units when drawn, to keep precision.
type Operation interface {
	// add itself on the drawer `d`, after applying the transform `M`
	drawTo(d Drawer, M rasterx.Matrix2D)
}

type MoveTo Point

type LineTo Point

type CubicTo [3]Point

type Close struct{}

func toFixed(M rasterx.Matrix2D, p Point) fixed.Point26_6 {
	x, y := M.Transform(p.X, p.Y)
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

// starts a new path at the given point.
func (op MoveTo) drawTo(d Drawer, M rasterx.Matrix2D) {
	d.Start(toFixed(M, Point(op)))
}

func (op LineTo) drawTo(d Drawer, M rasterx.Matrix2D) {
	d.Line(toFixed(M, Point(op)))
}

func (op CubicTo) drawTo(d Drawer, M rasterx.Matrix2D) {
	d.CubeBezier(toFixed(M, op[0]), toFixed(M, op[1]), toFixed(M, op[2]))
}

func (op Close) drawTo(d Drawer, _ rasterx.Matrix2D) {
	d.Stop(true)
}

// Path describes a sequence of basic operations.
type Path []Operation

// String returns the path in SVG syntax, in millimetres.
func (p Path) String() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", op.X, op.Y)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", op.X, op.Y)
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f",
				op[0].X, op[0].Y, op[1].X, op[1].Y, op[2].X, op[2].Y)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// kappa is the control point distance used to approximate
// a quarter circle of radius 1 with a cubic bezier.
const kappa = 0.5522847498307936

// circle approximates a full circle with four cubic beziers,
// clockwise in page coordinates, starting at the rightmost point.
func circle(c Point, r float64) Path {
	k := kappa * r
	return Path{
		MoveTo{c.X + r, c.Y},
		CubicTo{{c.X + r, c.Y + k}, {c.X + k, c.Y + r}, {c.X, c.Y + r}},
		CubicTo{{c.X - k, c.Y + r}, {c.X - r, c.Y + k}, {c.X - r, c.Y}},
		CubicTo{{c.X - r, c.Y - k}, {c.X - k, c.Y - r}, {c.X, c.Y - r}},
		CubicTo{{c.X + k, c.Y - r}, {c.X + r, c.Y - k}, {c.X + r, c.Y}},
		Close{},
	}
}

// Path returns the outline of the primitive: a segment for lines,
// a closed circle for dots.
func (p Primitive) Path() Path {
	if p.Kind == KindDot {
		return circle(p.A, p.Radius)
	}
	return Path{MoveTo(p.A), LineTo(p.B)}
}
