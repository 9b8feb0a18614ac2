// Package worksheet implements the guidesheets command: it resolves the
// configuration, computes the sheet and writes it with the driver
// matching the output extension.
package worksheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/guidesheets/sheet"
	"github.com/benoitkugler/guidesheets/sheetpdf"
	"github.com/benoitkugler/guidesheets/sheetpdf/alt"
	"github.com/benoitkugler/guidesheets/sheetraster"
	"github.com/benoitkugler/guidesheets/sheetsvg"
)

// ErrUnknownFormat is returned for output paths with an unsupported extension.
var ErrUnknownFormat = errors.New("unknown output format")

// Format is an output document format.
type Format uint8

const (
	PDF Format = iota
	SVG
	PNG
	TIFF
	BMP
)

func (f Format) String() string {
	switch f {
	case PDF:
		return "pdf"
	case SVG:
		return "svg"
	case PNG:
		return "png"
	case TIFF:
		return "tiff"
	case BMP:
		return "bmp"
	default:
		return "<unknown Format>"
	}
}

// FormatOf returns the format matching the extension of `path`.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		return PDF, nil
	case ".svg":
		return SVG, nil
	case ".png":
		return PNG, nil
	case ".tif", ".tiff":
		return TIFF, nil
	case ".bmp":
		return BMP, nil
	default:
		return 0, fmt.Errorf("%w: %q, expected .pdf, .svg, .png, .tif, .tiff or .bmp", ErrUnknownFormat, ext)
	}
}

var rasterFormats = map[Format]sheetraster.Format{
	PNG:  sheetraster.PNG,
	TIFF: sheetraster.TIFF,
	BMP:  sheetraster.BMP,
}

// Run builds the worksheet described by cfg and writes it to cfg.Output.
// Progress is logged to errOut when cfg.Verbose is set.
func Run(ctx context.Context, cfg Config, errOut io.Writer) error {
	if errOut == nil || !cfg.Verbose {
		errOut = io.Discard
	}
	logger := log.New(errOut, "", 0)

	format, err := FormatOf(cfg.Output)
	if err != nil {
		return err
	}
	s, err := sheet.Build(cfg.Sheet)
	if err != nil {
		return fmt.Errorf("build worksheet: %w", err)
	}
	logSheet(logger, cfg, s)

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := write(cfg, format, s); err != nil {
		return fmt.Errorf("write %s: %w", cfg.Output, err)
	}
	logger.Printf("wrote %s (%s)", cfg.Output, format)
	return nil
}

func logSheet(logger *log.Logger, cfg Config, s *sheet.Sheet) {
	logger.Printf("page %gx%g mm, mode %s", s.Width, s.Height, cfg.Sheet.Mode)
	logger.Printf("content area %gx%g mm at (%g, %g)", s.Content.Width(), s.Content.Height(), s.Content.Min.X, s.Content.Min.Y)
	if len(s.Primitives) != 0 {
		b := s.Bounds()
		logger.Printf("guides extent %.2fx%.2f mm at (%.2f, %.2f)", b.Width(), b.Height(), b.Min.X, b.Min.Y)
	}
	first := map[sheet.Guide]sheet.Path{}
	for _, p := range s.Primitives {
		if _, ok := first[p.Guide]; !ok {
			first[p.Guide] = p.Path()
		}
	}
	for g := sheet.Border; g <= sheet.Angular; g++ {
		if n := s.Count(g); n != 0 {
			logger.Printf("%d %s guides, first %v", n, g, first[g])
		}
	}
}

func write(cfg Config, format Format, s *sheet.Sheet) error {
	if format == PDF && cfg.PDFWriter == WriterStream {
		return alt.RenderFile(s, cfg.Output)
	}
	if _, ok := rasterFormats[format]; ok {
		if err := sheetraster.CheckSize(s, cfg.DPI); err != nil {
			return err
		}
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return err
	}
	switch format {
	case PDF:
		err = sheetpdf.Render(s, f)
	case SVG:
		err = sheetsvg.Render(s, f)
	default:
		err = sheetraster.Encode(f, s, cfg.DPI, rasterFormats[format])
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
