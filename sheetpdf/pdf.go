// Implements a PDF backend to render worksheets,
// by wrapping github.com/jung-kurt/gofpdf.
package sheetpdf

import (
	"image/color"
	"io"

	"github.com/benoitkugler/guidesheets/sheet"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ sheet.Driver  = Renderer{}
	_ sheet.Filler  = (*filler)(nil)
	_ sheet.Stroker = (*stroker)(nil)
)

// Creator is written in the document information dictionary.
const Creator = "guidesheets"

type Renderer struct {
	pdf *gofpdf.Fpdf
}

// implements the common path commands,
// shared by the filler and the stroker
type pather struct {
	pdf *gofpdf.Fpdf
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

// NewRenderer return a renderer which will
// write to the given `pdf`, whose unit must be the point.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf}
}

// NewDocument returns a one page document, sized after the sheet,
// using points as unit.
func NewDocument(s *sheet.Sheet) *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size: gofpdf.SizeType{
			Wd: s.Width * sheet.PointsPerMillimetre,
			Ht: s.Height * sheet.PointsPerMillimetre,
		},
	})
	pdf.SetCreator(Creator, true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return pdf
}

// Render draws the sheet on a new document and writes it to `w`.
func Render(s *sheet.Sheet, w io.Writer) error {
	pdf := NewDocument(s)
	s.Draw(NewRenderer(pdf), sheet.Scale(sheet.PointsPerMillimetre))
	return pdf.Output(w)
}

// RenderFile draws the sheet on a new document saved as `pdfName`.
func RenderFile(s *sheet.Sheet, pdfName string) error {
	pdf := NewDocument(s)
	s.Draw(NewRenderer(pdf), sheet.Scale(sheet.PointsPerMillimetre))
	return pdf.OutputFileAndClose(pdfName)
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
	p.pdf.MoveTo(fixedTof(a))
}

func (p *pather) Line(b fixed.Point26_6) {
	p.pdf.LineTo(fixedTof(b))
}

func (p *pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

func (f *filler) SetColor(c color.RGBA) {
	f.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func (f *filler) Draw() {
	styleStr := "f*"
	if f.useNonZeroWinding {
		styleStr = "f"
	}
	f.pdf.DrawPath(styleStr)
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

var (
	capStyles  = [...]string{sheet.ButtCap: "butt", sheet.SquareCap: "square", sheet.RoundCap: "round"}
	joinStyles = [...]string{sheet.Round: "round", sheet.Bevel: "bevel", sheet.Miter: "miter"}
)

func (s *stroker) SetStrokeOptions(options sheet.StrokeOptions) {
	s.pdf.SetLineWidth(float64(options.LineWidth) / 64)
	s.pdf.SetLineCapStyle(capStyles[options.LineCap])
	s.pdf.SetLineJoinStyle(joinStyles[options.LineJoin])
	// an empty array resets to a solid line
	s.pdf.SetDashPattern(options.Dash.Dash, options.Dash.DashOffset)
}

func (s *stroker) SetColor(c color.RGBA) {
	s.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func (s *stroker) Draw() {
	s.pdf.DrawPath("D")
}
