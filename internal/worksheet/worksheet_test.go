package worksheet

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/guidesheets/sheet"
	"github.com/benoitkugler/guidesheets/sheetraster"
)

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]Format{
		"a.pdf":       PDF,
		"dir/b.SVG":   SVG,
		"c.png":       PNG,
		"d.tif":       TIFF,
		"e.tiff":      TIFF,
		"/tmp/f.bmp":  BMP,
		"g.sheet.pdf": PDF,
	} {
		got, err := FormatOf(path)
		if err != nil {
			t.Fatalf("%s: %s", path, err)
		}
		if got != want {
			t.Errorf("%s: expected %s, got %s", path, want, got)
		}
	}

	for _, path := range []string{"a.jpg", "noext", "a.pdf.txt"} {
		if _, err := FormatOf(path); !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("%s: expected ErrUnknownFormat, got %v", path, err)
		}
	}
}

var magics = map[string]string{
	".pdf":  "%PDF-",
	".svg":  "<?xml",
	".png":  "\x89PNG",
	".tiff": "II*\x00",
	".bmp":  "BM",
}

func testConfig(output string) Config {
	cfg := Config{
		Output:    output,
		Sheet:     sheet.DefaultConfig(),
		DPI:       30,
		PDFWriter: WriterFPDF,
	}
	cfg.Sheet.Width, cfg.Sheet.Height = 80, 60
	return cfg
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	for ext, magic := range magics {
		output := filepath.Join(dir, "sheet"+ext)
		if err := Run(context.Background(), testConfig(output), nil); err != nil {
			t.Fatalf("%s: %s", ext, err)
		}
		b, err := os.ReadFile(output)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(b, []byte(magic)) {
			t.Errorf("%s: unexpected header %q", ext, b[:min(len(b), 8)])
		}
	}
}

func TestRunStreamWriter(t *testing.T) {
	output := filepath.Join(t.TempDir(), "sheet.pdf")
	cfg := testConfig(output)
	cfg.PDFWriter = WriterStream
	cfg.Sheet.Mode = sheet.Calligraphy
	cfg.Sheet.Calligraphy.LineGuides = true
	cfg.Sheet.Calligraphy.AngularGuides = true
	if err := Run(context.Background(), cfg, nil); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Fatalf("unexpected header %q", b[:min(len(b), 8)])
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()

	err := Run(context.Background(), testConfig(filepath.Join(dir, "sheet.jpg")), nil)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}

	cfg := testConfig(filepath.Join(dir, "sheet.pdf"))
	cfg.Sheet.Spacing = 0
	if err := Run(context.Background(), cfg, nil); !errors.Is(err, sheet.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := os.Stat(cfg.Output); !os.IsNotExist(err) {
		t.Fatal("no file must be written for an invalid configuration")
	}

	cfg = testConfig(filepath.Join(dir, "missing", "sheet.svg"))
	if err := Run(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected an error for an unwritable output")
	}

	cfg = testConfig(filepath.Join(dir, "poster.png"))
	cfg.Sheet.Width, cfg.Sheet.Height, cfg.Sheet.Spacing = 20000, 20000, 1000
	if err := Run(context.Background(), cfg, nil); !errors.Is(err, sheetraster.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if _, err := os.Stat(cfg.Output); !os.IsNotExist(err) {
		t.Fatal("no file must be written for an oversized image")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg = testConfig(filepath.Join(dir, "cancelled.pdf"))
	if err := Run(ctx, cfg, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunVerbose(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(filepath.Join(dir, "sheet.svg"))
	cfg.Sheet.Border = true

	var logs bytes.Buffer
	if err := Run(context.Background(), cfg, &logs); err != nil {
		t.Fatal(err)
	}
	if logs.Len() != 0 {
		t.Fatalf("nothing must be logged without -v, got %q", logs.String())
	}

	cfg.Verbose = true
	if err := Run(context.Background(), cfg, &logs); err != nil {
		t.Fatal(err)
	}
	out := logs.String()
	for _, want := range []string{
		"page 80x60 mm, mode grid",
		"guides extent 60.00x48.00 mm at (10.00, 6.00)",
		"4 border guides, first M10.000,6.000 L70.000,6.000",
		"horizontal guides, first M10.000,11.000 L70.000,11.000",
		"wrote ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in logs:\n%s", want, out)
		}
	}
}
