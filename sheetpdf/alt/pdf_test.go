package alt

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/benoitkugler/guidesheets/sheet"
	"github.com/benoitkugler/pdf/contentstream"
	"github.com/benoitkugler/pdf/model"
)

func TestRenderFile(t *testing.T) {
	for _, mode := range sheet.Modes {
		cfg := sheet.DefaultConfig()
		cfg.Mode = mode
		cfg.Border = true
		cfg.Calligraphy.LineGuides = true
		cfg.Calligraphy.AngularGuides = true
		s, err := sheet.Build(cfg)
		if err != nil {
			t.Fatalf("can't build sheet: %s", err)
		}

		name := filepath.Join(t.TempDir(), string(mode)+".pdf")
		if err := RenderFile(s, name); err != nil {
			t.Fatalf("%s: can't render: %s", mode, err)
		}
		out, err := os.ReadFile(name)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(out, []byte("%PDF-")) {
			t.Fatalf("%s: missing PDF header", mode)
		}
	}
}

func TestPageObject(t *testing.T) {
	cfg := sheet.DefaultConfig()
	cfg.Width, cfg.Height = 148, 210
	cfg.Border = true
	s, err := sheet.Build(cfg)
	if err != nil {
		t.Fatalf("can't build sheet: %s", err)
	}

	page := NewPageObject(s)
	w, h := 148*sheet.PointsPerMillimetre, 210*sheet.PointsPerMillimetre
	if page.MediaBox == nil || *page.MediaBox != (model.Rectangle{Urx: w, Ury: h}) {
		t.Fatalf("unexpected media box %v, expected %gx%g", page.MediaBox, w, h)
	}

	content, err := page.DecodeAllContents()
	if err != nil {
		t.Fatalf("can't decode content: %s", err)
	}
	flip := bytes.TrimSpace(contentstream.WriteOperations(
		contentstream.OpSave{},
		contentstream.OpConcat{Matrix: model.Matrix{1, 0, 0, -1, 0, h}},
	))
	if !bytes.HasPrefix(content, flip) {
		t.Fatalf("page must start by flipping the y axis, got %q", content[:min(len(content), 60)])
	}
	if !bytes.HasSuffix(bytes.TrimSpace(content), []byte("Q")) {
		t.Fatal("graphic state must be restored")
	}
	if n := bytes.Count(content, []byte(" S")); n != len(s.Primitives) {
		t.Fatalf("expected %d strokes, got %d", len(s.Primitives), n)
	}
}
