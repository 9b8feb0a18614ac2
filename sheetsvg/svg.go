// Implements an SVG backend to render worksheets,
// by wrapping github.com/ajstarks/svgo.
package sheetsvg

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/benoitkugler/guidesheets/sheet"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ sheet.Driver  = Renderer{}
	_ sheet.Filler  = (*filler)(nil)
	_ sheet.Stroker = (*stroker)(nil)
)

// Renderer writes one <path> element per painted path.
// Coordinates are in points: the document viewBox maps them
// to the page size in millimetres.
type Renderer struct {
	canvas *svg.SVG
}

// accumulates the path data
type pather struct {
	canvas *svg.SVG
	d      strings.Builder
	color  color.RGBA
}

type filler struct {
	pather
	useNonZeroWinding bool
}

type stroker struct {
	pather
	options sheet.StrokeOptions
}

// NewRenderer return a renderer which will
// write to the given `canvas`.
func NewRenderer(canvas *svg.SVG) Renderer {
	return Renderer{canvas: canvas}
}

// errWriter keeps the first write error, since svgo ignores them
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// Render writes the sheet as a standalone SVG document.
func Render(s *sheet.Sheet, w io.Writer) error {
	out := &errWriter{w: w}
	canvas := svg.New(out)
	canvas.Startraw(
		fmt.Sprintf(` width="%gmm" height="%gmm"`, s.Width, s.Height),
		fmt.Sprintf(` viewBox="0 0 %.3f %.3f"`, s.Width*sheet.PointsPerMillimetre, s.Height*sheet.PointsPerMillimetre),
	)
	canvas.Title("guidesheets")
	s.Draw(NewRenderer(canvas), sheet.Scale(sheet.PointsPerMillimetre))
	canvas.End()
	return out.err
}

func (r Renderer) SetupDrawers(willFill, willStroke bool) (f sheet.Filler, s sheet.Stroker) {
	if willFill {
		f = &filler{pather: pather{canvas: r.canvas}}
	}
	if willStroke {
		s = &stroker{pather: pather{canvas: r.canvas}}
	}
	return f, s
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (p *pather) Clear() { p.d.Reset() }

func (p *pather) Start(a fixed.Point26_6) {
	x, y := fixedTof(a)
	fmt.Fprintf(&p.d, "M%.2f,%.2f ", x, y)
}

func (p *pather) Line(b fixed.Point26_6) {
	x, y := fixedTof(b)
	fmt.Fprintf(&p.d, "L%.2f,%.2f ", x, y)
}

func (p *pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	fmt.Fprintf(&p.d, "C%.2f,%.2f,%.2f,%.2f,%.2f,%.2f ", cx0, cy0, cx1, cy1, x, y)
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.d.WriteString("Z")
	}
}

func (p *pather) SetColor(c color.RGBA) { p.color = c }

func (p *pather) data() string { return strings.TrimSpace(p.d.String()) }

func rgb(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

func (f *filler) Draw() {
	rule := "evenodd"
	if f.useNonZeroWinding {
		rule = "nonzero"
	}
	f.canvas.Path(f.data(), fmt.Sprintf("fill:%s;fill-rule:%s;stroke:none", rgb(f.color), rule))
}

func (s *stroker) SetStrokeOptions(options sheet.StrokeOptions) {
	s.options = options
}

var (
	capNames  = [...]string{sheet.ButtCap: "butt", sheet.SquareCap: "square", sheet.RoundCap: "round"}
	joinNames = [...]string{sheet.Round: "round", sheet.Bevel: "bevel", sheet.Miter: "miter"}
)

func (s *stroker) Draw() {
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.3f;stroke-linecap:%s;stroke-linejoin:%s",
		rgb(s.color), float64(s.options.LineWidth)/64, capNames[s.options.LineCap], joinNames[s.options.LineJoin])
	if dash := s.options.Dash.Dash; len(dash) != 0 {
		chunks := make([]string, len(dash))
		for i, v := range dash {
			chunks[i] = fmt.Sprintf("%.3f", v)
		}
		style += ";stroke-dasharray:" + strings.Join(chunks, ",")
	}
	s.canvas.Path(s.data(), style)
}
