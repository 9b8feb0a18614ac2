package sheet

import "math"

// Point is a position on the page, in millimetres, y axis pointing down.
type Point struct{ X, Y float64 }

// Rect is an axis aligned rectangle.
type Rect struct{ Min, Max Point }

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Union returns the smallest rectangle containing r and s.
func (r Rect) Union(s Rect) Rect {
	return Rect{
		Min: Point{math.Min(r.Min.X, s.Min.X), math.Min(r.Min.Y, s.Min.Y)},
		Max: Point{math.Max(r.Max.X, s.Max.X), math.Max(r.Max.Y, s.Max.Y)},
	}
}

// onBoundary reports whether p lies on the border of r, up to eps.
func (r Rect) onBoundary(p Point, eps float64) bool {
	inX := p.X >= r.Min.X-eps && p.X <= r.Max.X+eps
	inY := p.Y >= r.Min.Y-eps && p.Y <= r.Max.Y+eps
	if !inX || !inY {
		return false
	}
	return math.Abs(p.X-r.Min.X) <= eps || math.Abs(p.X-r.Max.X) <= eps ||
		math.Abs(p.Y-r.Min.Y) <= eps || math.Abs(p.Y-r.Max.Y) <= eps
}

// arangeLen is the number of values of [0, stop) with the given step.
func arangeLen(stop, step float64) int {
	n := math.Ceil(stop / step)
	if n < 0 {
		return 0
	}
	return int(n)
}

// offsets returns step, 2*step, ... strictly below stop.
// The leading 0 is excluded: guides start one step into the content area.
func offsets(stop, step float64) []float64 {
	n := arangeLen(stop, step)
	if n <= 1 {
		return nil
	}
	out := make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		out = append(out, float64(i)*step)
	}
	return out
}

// linspace returns n evenly spaced values from start to stop, both included.
func linspace(start, stop float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// clipSegment clips the segment [a, b] to r, using the Liang-Barsky
// algorithm. ok is false when the segment misses r.
func clipSegment(a, b Point, r Rect) (ca, cb Point, ok bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0., 1.
	for _, e := range [4][2]float64{
		{-dx, a.X - r.Min.X},
		{dx, r.Max.X - a.X},
		{-dy, a.Y - r.Min.Y},
		{dy, r.Max.Y - a.Y},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return ca, cb, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return ca, cb, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return ca, cb, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	ca = Point{a.X + t0*dx, a.Y + t0*dy}
	cb = Point{a.X + t1*dx, a.Y + t1*dy}
	return ca, cb, true
}
