// Implements a raster backend to render worksheets,
// by wrapping rasterx.
package sheetraster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/benoitkugler/guidesheets/sheet"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

var _ sheet.Driver = (*Renderer)(nil) // assert interface conformance

// MaxDPI bounds the resolution of rasterized sheets.
const MaxDPI = 600

// MaxPixels bounds the pixel count of rasterized sheets:
// an A3 page fits at MaxDPI.
const MaxPixels = 1 << 27

// ErrTooLarge is returned when the image would exceed MaxPixels.
var ErrTooLarge = errors.New("image too large")

type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
}

// NewRenderer returns a renderer with default values.
// If scanner is nil, a default scanner rasterx.ScannerGV is used
// on a new image.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	if scanner == nil {
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		scanner = rasterx.NewScannerGV(width, height, img, img.Bounds())
	}
	return &Renderer{dasher: rasterx.NewDasher(width, height, scanner), filler: rasterx.NewFiller(width, height, scanner)}
}

// Size returns the image size, in pixels, of a sheet rasterized
// at `dpi` dots per inch.
func Size(s *sheet.Sheet, dpi float64) (w, h int) {
	k := dpi / 25.4
	return int(math.Ceil(s.Width * k)), int(math.Ceil(s.Height * k))
}

// CheckSize returns an error if the sheet can't be rasterized
// at `dpi` dots per inch.
func CheckSize(s *sheet.Sheet, dpi float64) error {
	if !(dpi > 0 && dpi <= MaxDPI) {
		return fmt.Errorf("invalid resolution %g dpi, expected (0, %d]", dpi, MaxDPI)
	}
	// computed in floating point, the int conversion of Size may overflow
	k := dpi / 25.4
	fw, fh := math.Ceil(s.Width*k), math.Ceil(s.Height*k)
	if !(fw >= 1 && fh >= 1) {
		return fmt.Errorf("invalid page size %gx%g mm", s.Width, s.Height)
	}
	if fw*fh > MaxPixels {
		return fmt.Errorf("%w: %gx%g mm at %g dpi needs %.0fx%.0f pixels, limit is %d pixels",
			ErrTooLarge, s.Width, s.Height, dpi, fw, fh, MaxPixels)
	}
	return nil
}

// RasterToImage uses a ScannerGV instance to render the
// sheet on a white image and returns it
func RasterToImage(s *sheet.Sheet, dpi float64) (*image.RGBA, error) {
	if err := CheckSize(s, dpi); err != nil {
		return nil, err
	}
	w, h := Size(s, dpi)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	renderer := NewRenderer(w, h, scanner)
	s.Draw(renderer, sheet.Scale(dpi/25.4))
	return img, nil
}

// Format is an image encoding.
type Format uint8

const (
	PNG Format = iota
	TIFF
	BMP
)

// Encode rasterizes the sheet and writes it to `out` in the given format.
func Encode(out io.Writer, s *sheet.Sheet, dpi float64, format Format) error {
	img, err := RasterToImage(s, dpi)
	if err != nil {
		return err
	}
	switch format {
	case PNG:
		return png.Encode(out, img)
	case TIFF:
		return tiff.Encode(out, img, &tiff.Options{Compression: tiff.Deflate})
	case BMP:
		return bmp.Encode(out, img)
	default:
		return fmt.Errorf("unsupported image format %d", format)
	}
}

func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (f sheet.Filler, s sheet.Stroker) {
	if willFill {
		f = filler{rd.filler}
	}
	if willStroke {
		s = dasher{rd.dasher}
	}
	return f, s
}

type filler struct {
	*rasterx.Filler
}

func (f filler) SetColor(c color.RGBA) {
	f.Scanner.SetColor(c)
}

type dasher struct {
	*rasterx.Dasher
}

func (d dasher) SetColor(c color.RGBA) {
	d.Scanner.SetColor(c)
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		sheet.Round: rasterx.Round,
		sheet.Bevel: rasterx.Bevel,
		sheet.Miter: rasterx.Miter,
	}

	capToFunc = [...]rasterx.CapFunc{
		sheet.ButtCap:   rasterx.ButtCap,
		sheet.SquareCap: rasterx.SquareCap,
		sheet.RoundCap:  rasterx.RoundCap,
	}
)

func (d dasher) SetStrokeOptions(options sheet.StrokeOptions) {
	capFunc := capToFunc[options.LineCap]
	d.SetStroke(
		options.LineWidth, options.MiterLimit, capFunc, capFunc,
		rasterx.FlatGap, joinToJoin[options.LineJoin],
		options.Dash.Dash, options.Dash.DashOffset,
	)
}
