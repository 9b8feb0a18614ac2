package sheetraster

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/benoitkugler/guidesheets/sheet"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// 254 dpi gives 10 pixels per millimetre
const dpi = 254

func squareSheet(t *testing.T, mode sheet.Mode) *sheet.Sheet {
	t.Helper()
	cfg := sheet.DefaultConfig()
	cfg.Width, cfg.Height = 100, 100
	cfg.MarginLeft, cfg.MarginRight, cfg.MarginTop, cfg.MarginBottom = 0, 0, 0, 0
	cfg.Spacing = 10
	cfg.Mode = mode
	s, err := sheet.Build(cfg)
	if err != nil {
		t.Fatalf("can't build sheet: %s", err)
	}
	return s
}

func red(img *image.RGBA, x, y int) uint8 {
	return img.RGBAAt(x, y).R
}

func isGuide(v uint8) bool { return v >= 190 && v <= 210 }

func TestRasterGrid(t *testing.T) {
	img, err := RasterToImage(squareSheet(t, sheet.Grid), dpi)
	if err != nil {
		t.Fatalf("can't raster sheet: %s", err)
	}
	if w := img.Bounds().Dx(); w != 1000 && w != 1001 {
		t.Fatalf("unexpected width %d", w)
	}

	for _, c := range []struct {
		x, y  int
		guide bool
	}{
		{55, 100, true},  // horizontal line at 10mm
		{100, 55, true},  // vertical line at 10mm
		{555, 500, true}, // horizontal line at 50mm
		{55, 55, false},
		{55, 150, false},
		{999, 5, false},
	} {
		v := red(img, c.x, c.y)
		if c.guide && !isGuide(v) {
			t.Errorf("(%d, %d): expected a guide, got %d", c.x, c.y, v)
		}
		if !c.guide && v != 255 {
			t.Errorf("(%d, %d): expected white, got %d", c.x, c.y, v)
		}
	}
}

func TestRasterDots(t *testing.T) {
	img, err := RasterToImage(squareSheet(t, sheet.Dots), dpi)
	if err != nil {
		t.Fatalf("can't raster sheet: %s", err)
	}
	if v := red(img, 100, 100); !isGuide(v) {
		t.Errorf("expected a dot at (100, 100), got %d", v)
	}
	if v := red(img, 106, 106); v != 255 {
		t.Errorf("expected white around the dot, got %d", v)
	}
	if v := red(img, 100, 150); v != 255 {
		t.Errorf("expected white between dots, got %d", v)
	}
}

func TestEncode(t *testing.T) {
	s := squareSheet(t, sheet.Lines)
	for _, format := range []Format{PNG, TIFF, BMP} {
		var buf bytes.Buffer
		if err := Encode(&buf, s, 72, format); err != nil {
			t.Fatalf("format %d: %s", format, err)
		}
		var (
			img image.Image
			err error
		)
		switch format {
		case PNG:
			img, err = png.Decode(&buf)
		case TIFF:
			img, err = tiff.Decode(&buf)
		case BMP:
			img, err = bmp.Decode(&buf)
		}
		if err != nil {
			t.Fatalf("format %d: can't decode: %s", format, err)
		}
		w, h := Size(s, 72)
		if img.Bounds().Dx() != w || img.Bounds().Dy() != h {
			t.Fatalf("format %d: unexpected size %v", format, img.Bounds())
		}
	}
}

func TestInvalidDPI(t *testing.T) {
	s := squareSheet(t, sheet.Grid)
	for _, v := range []float64{0, -72, MaxDPI + 1} {
		if _, err := RasterToImage(s, v); err == nil {
			t.Errorf("dpi %g: expected an error", v)
		}
	}
}

func TestImageTooLarge(t *testing.T) {
	cfg := sheet.DefaultConfig()
	cfg.Width, cfg.Height = 20000, 20000
	cfg.Spacing = 1000
	huge, err := sheet.Build(cfg)
	if err != nil {
		t.Fatalf("can't build sheet: %s", err)
	}

	for _, s := range []*sheet.Sheet{
		huge,
		{Width: 1e300, Height: 1e300},
		{Width: 10, Height: 1e300},
	} {
		if _, err := RasterToImage(s, 150); !errors.Is(err, ErrTooLarge) {
			t.Errorf("%gx%g: expected ErrTooLarge, got %v", s.Width, s.Height, err)
		}
	}

	// the largest paper size fits at the maximum resolution
	a3 := &sheet.Sheet{Width: sheet.A3.Width, Height: sheet.A3.Height}
	if err := CheckSize(a3, MaxDPI); err != nil {
		t.Fatal(err)
	}
}
