// Alternative implementation of PDF rendering, writing
// content stream operators with github.com/benoitkugler/pdf.
package alt

import (
	"image/color"

	"github.com/benoitkugler/guidesheets/sheet"
	"github.com/benoitkugler/pdf/contentstream"
	"github.com/benoitkugler/pdf/model"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ sheet.Driver  = Renderer{}
	_ sheet.Filler  = (*filler)(nil)
	_ sheet.Stroker = (*stroker)(nil)
)

type Renderer struct {
	pdf *contentstream.Appearance
}

// implements the common path commands,
// shared by the filler and the stroker
type pather struct {
	pdf *contentstream.Appearance
}

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding bool
}

// implements the stroking operation
type stroker struct {
	pather
}

// NewPage returns the content of a page sized after the sheet, in points.
// The sheet must be drawn between the OpSave and OpRestore operations
// emitted by Draw, which flip the y axis.
func NewPage(s *sheet.Sheet) contentstream.Appearance {
	return contentstream.NewAppearance(s.Width*sheet.PointsPerMillimetre, s.Height*sheet.PointsPerMillimetre)
}

// Draw paints the sheet on the page `pdf`, using top-left origin
// page coordinates.
func Draw(s *sheet.Sheet, pdf *contentstream.Appearance) {
	h := s.Height * sheet.PointsPerMillimetre
	pdf.Ops(
		contentstream.OpSave{},
		contentstream.OpConcat{Matrix: model.Matrix{1, 0, 0, -1, 0, h}},
	)
	s.Draw(NewRenderer(pdf), sheet.Scale(sheet.PointsPerMillimetre))
	pdf.Ops(contentstream.OpRestore{})
}

// NewPageObject draws the sheet on a new page, whose MediaBox
// is the sheet size in points. The content is compressed.
func NewPageObject(s *sheet.Sheet) *model.PageObject {
	pdf := NewPage(s)
	Draw(s, &pdf)

	page := new(model.PageObject)
	pdf.ApplyToPageObject(page, true)
	return page
}

// RenderFile draws the sheet into a one page document
// saved as `pdfName`.
func RenderFile(s *sheet.Sheet, pdfName string) error {
	var doc model.Document
	doc.Catalog.Pages.Kids = append(doc.Catalog.Pages.Kids, NewPageObject(s))
	return doc.WriteFile(pdfName, nil)
}

// NewRenderer return a renderer which will
// write to the given content stream.
func NewRenderer(cs *contentstream.Appearance) Renderer {
	return Renderer{pdf: cs}
}

func (r Renderer) SetupDrawers(willFill, willStroke bool) (f sheet.Filler, s sheet.Stroker) {
	if willFill {
		f = &filler{pather: pather{pdf: r.pdf}}
	}
	if willStroke {
		s = &stroker{pather: pather{pdf: r.pdf}}
	}
	return f, s
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (p *pather) Clear() {}

func (p *pather) Start(a fixed.Point26_6) {
	x, y := fixedTof(a)
	p.pdf.Ops(contentstream.OpMoveTo{X: x, Y: y})
}

func (p *pather) Line(b fixed.Point26_6) {
	x, y := fixedTof(b)
	p.pdf.Ops(contentstream.OpLineTo{X: x, Y: y})
}

func (p *pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.Ops(contentstream.OpCubicTo{X1: cx0, Y1: cy0, X2: cx1, Y2: cy1, X3: x, Y3: y})
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.Ops(contentstream.OpClosePath{})
	}
}

func (f *filler) SetColor(c color.RGBA) {
	f.pdf.SetColorFill(c)
}

func (f *filler) Draw() {
	if f.useNonZeroWinding {
		f.pdf.Ops(contentstream.OpFill{})
	} else {
		f.pdf.Ops(contentstream.OpEOFill{})
	}
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

func (s *stroker) SetStrokeOptions(options sheet.StrokeOptions) {
	var capStyle, joinStyle uint8
	switch options.LineCap {
	case sheet.ButtCap:
		capStyle = 0
	case sheet.RoundCap:
		capStyle = 1
	case sheet.SquareCap:
		capStyle = 2
	}
	switch options.LineJoin {
	case sheet.Miter:
		joinStyle = 0
	case sheet.Round:
		joinStyle = 1
	case sheet.Bevel:
		joinStyle = 2
	}

	s.pdf.Ops(
		contentstream.OpSetDash{Dash: model.DashPattern{
			Array: options.Dash.Dash,
			Phase: options.Dash.DashOffset,
		}},
		contentstream.OpSetLineWidth{W: float64(options.LineWidth) / 64},
		contentstream.OpSetLineCap{Style: capStyle},
		contentstream.OpSetLineJoin{Style: joinStyle},
		contentstream.OpSetMiterLimit{Limit: float64(options.MiterLimit) / 64},
	)
}

func (s *stroker) SetColor(c color.RGBA) {
	s.pdf.SetColorStroke(c)
}

func (s *stroker) Draw() {
	s.pdf.Ops(contentstream.OpStroke{})
}
