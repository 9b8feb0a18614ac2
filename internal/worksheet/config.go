package worksheet

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/benoitkugler/guidesheets/internal/config"
	"github.com/benoitkugler/guidesheets/sheet"
)

// ErrUsage is returned when the command line is malformed.
// The usage text has already been printed.
var ErrUsage = errors.New("usage error")

// PDF writers selectable with -pdf-writer.
const (
	WriterFPDF   = "fpdf"
	WriterStream = "stream"
)

// Config holds the worksheet command configuration.
type Config struct {
	Output    string
	Sheet     sheet.Config
	Paper     string
	Landscape bool
	DPI       float64
	PDFWriter string
	Preset    string
	Verbose   bool
}

type envConfig struct {
	Paper     string  `env:"GUIDESHEETS_PAPER" envDefault:"A4"`
	Mode      string  `env:"GUIDESHEETS_MODE" envDefault:"grid"`
	Spacing   float64 `env:"GUIDESHEETS_SPACING" envDefault:"5"`
	Color     string  `env:"GUIDESHEETS_COLOR" envDefault:"#c8c8c8"`
	DPI       float64 `env:"GUIDESHEETS_DPI" envDefault:"150"`
	PDFWriter string  `env:"GUIDESHEETS_PDF_WRITER" envDefault:"fpdf"`
}

// defaults returns the built-in configuration, overridden by the environment.
func defaults() (Config, error) {
	var envCfg envConfig
	if err := config.ParseEnv(&envCfg); err != nil {
		return Config{}, err
	}
	paper, err := sheet.LookupPaper(envCfg.Paper)
	if err != nil {
		return Config{}, fmt.Errorf("GUIDESHEETS_PAPER: %w", err)
	}

	cfg := Config{
		Sheet:     sheet.DefaultConfig(),
		Paper:     paper.Name,
		DPI:       envCfg.DPI,
		PDFWriter: envCfg.PDFWriter,
	}
	cfg.Sheet.Width, cfg.Sheet.Height = paper.Width, paper.Height
	cfg.Sheet.Mode = sheet.Mode(envCfg.Mode)
	cfg.Sheet.Spacing = envCfg.Spacing
	cfg.Sheet.Color = envCfg.Color
	return cfg, nil
}

// modeValue restricts -mode to the known modes
type modeValue struct{ m *sheet.Mode }

func (v modeValue) String() string {
	if v.m == nil {
		return ""
	}
	return string(*v.m)
}

func (v modeValue) Set(s string) error {
	for _, m := range sheet.Modes {
		if s == string(m) {
			*v.m = m
			return nil
		}
	}
	return fmt.Errorf("invalid choice %q, expected one of %s", s, modeList())
}

func modeList() string {
	names := make([]string, len(sheet.Modes))
	for i, m := range sheet.Modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func bind(fs *flag.FlagSet, cfg *Config) {
	s := &cfg.Sheet
	cal := &s.Calligraphy

	fs.Float64Var(&s.Spacing, "spacing", s.Spacing, "spacing in mm")
	fs.Float64Var(&s.Width, "width", s.Width, "page width in mm, overrides -paper")
	fs.Float64Var(&s.Height, "height", s.Height, "page height in mm, overrides -paper")
	fs.Float64Var(&s.MarginLeft, "margin-left", s.MarginLeft, "left margin in mm")
	fs.Float64Var(&s.MarginRight, "margin-right", s.MarginRight, "right margin in mm")
	fs.Float64Var(&s.MarginTop, "margin-top", s.MarginTop, "top margin in mm")
	fs.Float64Var(&s.MarginBottom, "margin-bottom", s.MarginBottom, "bottom margin in mm")
	fs.BoolVar(&cal.AngularGuides, "calligraphy-angular-guides", cal.AngularGuides, "calligraphy angular guides")
	fs.Float64Var(&cal.Angle, "calligraphy-angular-guides-angle", cal.Angle, "calligraphy angular guides angle in deg")
	fs.Float64Var(&cal.AngularSpacing, "calligraphy-angular-guides-spacing", cal.AngularSpacing, "calligraphy angular guides spacing in mm, 0 uses -spacing")
	fs.BoolVar(&cal.LineGuides, "calligraphy-line-guides", cal.LineGuides, "calligraphy line guides")
	fs.Float64Var(&cal.XSize, "calligraphy-x-size", cal.XSize, "calligraphy guides x size in mm")
	fs.Float64Var(&cal.XRatio, "calligraphy-x-ratio", cal.XRatio, "calligraphy x size ratio")
	fs.Float64Var(&cal.AscenderRatio, "calligraphy-ascender-ratio", cal.AscenderRatio, "calligraphy ascender ratio")
	fs.Float64Var(&cal.DescenderRatio, "calligraphy-descender-ratio", cal.DescenderRatio, "calligraphy descender ratio")
	fs.Float64Var(&cal.LineSpacing, "calligraphy-line-spacing", cal.LineSpacing, "calligraphy line guides spacing in mm")
	fs.BoolVar(&s.Border, "border", s.Border, "border around worksheet")
	fs.Var(modeValue{&s.Mode}, "mode", "worksheet style: "+modeList())

	fs.StringVar(&s.Color, "color", s.Color, "guide color, as #rrggbb")
	fs.Float64Var(&s.LineWidth, "line-width", s.LineWidth, "line width in mm")
	fs.Float64Var(&s.DotRadius, "dot-radius", s.DotRadius, "dot radius in mm")
	fs.StringVar(&cfg.Paper, "paper", cfg.Paper, "paper size: A3, A4, A5, Letter or Legal")
	fs.BoolVar(&cfg.Landscape, "landscape", cfg.Landscape, "landscape orientation")
	fs.Float64Var(&cfg.DPI, "dpi", cfg.DPI, "resolution of .png, .tiff and .bmp outputs")
	fs.StringVar(&cfg.PDFWriter, "pdf-writer", cfg.PDFWriter, "PDF writer: fpdf or stream")
	fs.StringVar(&cfg.Preset, "preset", cfg.Preset, "preset file (.yaml or .xml) applied before flags")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "log the generated geometry")
}

// parseArgs parses flags placed before or after positional arguments,
// which are returned.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: %s [flags] output\n\n", fs.Name())
		fmt.Fprintln(out, "Worksheet generator to generate blank worksheets.")
		fmt.Fprintln(out, "The output format follows the extension: .pdf, .svg, .png, .tif, .tiff or .bmp.")
		fmt.Fprintln(out)
		fs.PrintDefaults()
	}
}

// ParseConfig parses flags into a Config. Values are resolved from the
// built-in defaults, then the environment, then the -preset file, then
// the flags themselves.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg, err := defaults()
	if err != nil {
		return Config{}, err
	}
	fs.Usage = usage(fs)
	bind(fs, &cfg)
	positional, err := parseArgs(fs, args)
	if err != nil {
		return Config{}, err
	}

	visited := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { visited[f.Name] = true })

	if cfg.Preset != "" {
		// reparse on top of the preset, so that explicit flags win
		withPreset, err := defaults()
		if err != nil {
			return Config{}, err
		}
		if err := sheet.ReadPresetFile(cfg.Preset, &withPreset.Sheet); err != nil {
			return Config{}, fmt.Errorf("load preset: %w", err)
		}
		again := flag.NewFlagSet(fs.Name(), flag.ContinueOnError)
		again.SetOutput(io.Discard)
		bind(again, &withPreset)
		if _, err := parseArgs(again, args); err != nil {
			return Config{}, err
		}
		cfg = withPreset
	}

	if len(positional) != 1 {
		fs.Usage()
		if len(positional) == 0 {
			return Config{}, fmt.Errorf("%w: the output path is required", ErrUsage)
		}
		return Config{}, fmt.Errorf("%w: unexpected arguments %q", ErrUsage, positional[1:])
	}
	cfg.Output = positional[0]

	if cfg.PDFWriter != WriterFPDF && cfg.PDFWriter != WriterStream {
		fs.Usage()
		return Config{}, fmt.Errorf("%w: invalid -pdf-writer %q, expected %s or %s", ErrUsage, cfg.PDFWriter, WriterFPDF, WriterStream)
	}

	if visited["paper"] {
		paper, err := sheet.LookupPaper(cfg.Paper)
		if err != nil {
			fs.Usage()
			return Config{}, fmt.Errorf("%w: %s", ErrUsage, err)
		}
		cfg.Paper = paper.Name
		if !visited["width"] {
			cfg.Sheet.Width = paper.Width
		}
		if !visited["height"] {
			cfg.Sheet.Height = paper.Height
		}
	}
	if cfg.Landscape && cfg.Sheet.Width < cfg.Sheet.Height {
		cfg.Sheet.Width, cfg.Sheet.Height = cfg.Sheet.Height, cfg.Sheet.Width
	}
	return cfg, nil
}
