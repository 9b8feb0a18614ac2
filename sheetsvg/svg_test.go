package sheetsvg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/benoitkugler/guidesheets/sheet"
)

func render(t *testing.T, cfg sheet.Config) (*sheet.Sheet, []xml.StartElement) {
	t.Helper()
	s, err := sheet.Build(cfg)
	if err != nil {
		t.Fatalf("can't build sheet: %s", err)
	}
	var buf bytes.Buffer
	if err := Render(s, &buf); err != nil {
		t.Fatalf("can't render: %s", err)
	}

	var elements []xml.StartElement
	dec := xml.NewDecoder(&buf)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("invalid svg output: %s", err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			elements = append(elements, se.Copy())
		}
	}
	return s, elements
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func paths(elements []xml.StartElement) []xml.StartElement {
	var out []xml.StartElement
	for _, se := range elements {
		if se.Name.Local == "path" {
			out = append(out, se)
		}
	}
	return out
}

func TestRenderGrid(t *testing.T) {
	cfg := sheet.DefaultConfig()
	cfg.Width, cfg.Height = 100, 120
	cfg.Border = true
	s, elements := render(t, cfg)

	root := elements[0]
	if root.Name.Local != "svg" {
		t.Fatalf("unexpected root %s", root.Name.Local)
	}
	if w, h := attr(root, "width"), attr(root, "height"); w != "100mm" || h != "120mm" {
		t.Fatalf("unexpected page size %s x %s", w, h)
	}
	ps := paths(elements)
	if len(ps) != len(s.Primitives) {
		t.Fatalf("expected %d paths, got %d", len(s.Primitives), len(ps))
	}
	for _, p := range ps {
		style := attr(p, "style")
		if !strings.Contains(style, "stroke:rgb(200,200,200)") || strings.Contains(style, "dasharray") {
			t.Fatalf("unexpected style %q", style)
		}
		if !strings.HasPrefix(attr(p, "d"), "M") {
			t.Fatalf("unexpected path data %q", attr(p, "d"))
		}
	}
}

func TestRenderStyles(t *testing.T) {
	cfg := sheet.DefaultConfig()
	cfg.Mode = sheet.Calligraphy
	cfg.Calligraphy.LineGuides = true
	cfg.Color = "#336699"
	s, elements := render(t, cfg)

	ps := paths(elements)
	if len(ps) != len(s.Primitives) {
		t.Fatalf("expected %d paths, got %d", len(s.Primitives), len(ps))
	}
	var dashed int
	for _, p := range ps {
		style := attr(p, "style")
		if !strings.Contains(style, "stroke:rgb(51,102,153)") {
			t.Fatalf("unexpected style %q", style)
		}
		if strings.Contains(style, "stroke-dasharray") {
			dashed++
		}
	}
	if dashed != s.Count(sheet.Ascender)+s.Count(sheet.Descender) {
		t.Fatalf("unexpected dashed paths %d", dashed)
	}
}

func TestRenderDots(t *testing.T) {
	cfg := sheet.DefaultConfig()
	cfg.Width, cfg.Height = 50, 50
	cfg.Mode = sheet.Dots
	_, elements := render(t, cfg)
	for _, p := range paths(elements) {
		if !strings.HasSuffix(attr(p, "d"), "Z") {
			t.Fatalf("dots must be closed paths: %q", attr(p, "d"))
		}
		if !strings.Contains(attr(p, "style"), "fill-rule:nonzero") {
			t.Fatalf("unexpected style %q", attr(p, "style"))
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderError(t *testing.T) {
	s, err := sheet.Build(sheet.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := Render(s, failingWriter{}); err == nil {
		t.Fatal("expected the write error")
	}
}
