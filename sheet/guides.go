package sheet

import "math"

// border draws the content rectangle: top, bottom, left, right.
func (b *builder) border() {
	r := b.content
	b.line(Border, r.Min, Point{r.Max.X, r.Min.Y}, b.solid)
	b.line(Border, Point{r.Min.X, r.Max.Y}, r.Max, b.solid)
	b.line(Border, r.Min, Point{r.Min.X, r.Max.Y}, b.solid)
	b.line(Border, Point{r.Max.X, r.Min.Y}, r.Max, b.solid)
}

func (b *builder) horizontals() {
	for _, y := range offsets(b.content.Height(), b.cfg.Spacing) {
		b.hline(Horizontal, b.content.Min.Y+y, b.solid)
	}
}

func (b *builder) verticals() {
	r := b.content
	for _, x := range offsets(r.Width(), b.cfg.Spacing) {
		b.line(Vertical, Point{r.Min.X + x, r.Min.Y}, Point{r.Min.X + x, r.Max.Y}, b.solid)
	}
}

// dots places one dot at each crossing of the grid, column by column.
func (b *builder) dots() {
	r := b.content
	ys := offsets(r.Height(), b.cfg.Spacing)
	for _, x := range offsets(r.Width(), b.cfg.Spacing) {
		for _, y := range ys {
			b.out = append(b.out, Primitive{
				Kind:   KindDot,
				Guide:  Dot,
				A:      Point{r.Min.X + x, r.Min.Y + y},
				Radius: b.cfg.DotRadius,
				Style:  b.solid,
			})
		}
	}
}

// lineGuides draws, for each text line, the baseline and x-height line
// (solid) then the ascender and descender lines (dashed).
// The last partial line is never started, so that descenders of the
// last text line stay inside the content area.
func (b *builder) lineGuides() {
	cal := b.cfg.Calligraphy
	xSize := cal.XSize
	asc, desc := cal.AscenderSize(), cal.DescenderSize()
	pitch := cal.Pitch()
	dashed := b.dashed(lineGuideDash)

	n := arangeLen(b.content.Height(), pitch) - 1
	for i := 0; i < n; i++ {
		y := b.content.Min.Y + float64(i)*pitch + asc + xSize + cal.LineSpacing

		b.hline(Baseline, y, b.solid)
		b.hline(XHeight, y-xSize, b.solid)

		b.hline(Ascender, y-xSize-asc, dashed)
		b.hline(Descender, y+desc, dashed)
	}
}

// angularRange returns the interval of bottom edge abscissas (relative to
// the content left edge) whose slanted segments cross a w x h rectangle.
func angularRange(w, h, angle float64) (lo, hi float64) {
	dx := horizontalRun(h, angle)
	return math.Min(0, -dx), math.Max(w, w-dx)
}

// horizontalRun is the horizontal distance covered by a segment of
// height h slanted by angle degrees.
func horizontalRun(h, angle float64) float64 {
	if angle == 90 {
		return 0 // cos(Pi/2) is not exactly 0
	}
	rad := angle * math.Pi / 180
	return h * math.Cos(rad) / math.Sin(rad)
}

// angularGuides draws evenly spaced slanted segments, each going from the
// bottom edge to the top edge of the content area, clipped to it.
func (b *builder) angularGuides() {
	r := b.content
	w, h := r.Width(), r.Height()
	angle := b.cfg.Calligraphy.Angle
	dx := horizontalRun(h, angle)
	lo, hi := angularRange(w, h, angle)
	dashed := b.dashed(angularGuideDash)

	n := int(math.Floor((hi - lo) / b.cfg.angularSpacing()))
	for _, x := range linspace(lo, hi, n) {
		bottom := Point{r.Min.X + x, r.Max.Y}
		top := Point{r.Min.X + x + dx, r.Min.Y}
		a, c, ok := clipSegment(bottom, top, r)
		if !ok || math.Hypot(c.X-a.X, c.Y-a.Y) < minSegment {
			continue
		}
		b.line(Angular, a, c, dashed)
	}
}

// segments shorter than this (mm) are not drawn
const minSegment = 1e-6
