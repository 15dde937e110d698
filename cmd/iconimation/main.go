// Command iconimation converts a font glyph into an animated Lottie
// document.
//
// Usage:
//
//	iconimation -font MaterialSymbols.ttf -codepoint U+E86C -animation pulse-parts -out heart.json
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/runenames"

	"github.com/tomasdev/iconimation"
	"github.com/tomasdev/iconimation/fontio"
	"github.com/tomasdev/iconimation/preview"
	"github.com/tomasdev/iconimation/template"
)

type variationFlags []fontio.Variation

func (v *variationFlags) String() string {
	parts := make([]string, len(*v))
	for i, x := range *v {
		parts[i] = fmt.Sprintf("%s=%g", x.Tag, x.Value)
	}
	return strings.Join(parts, ",")
}

func (v *variationFlags) Set(s string) error {
	tag, val, ok := strings.Cut(s, "=")
	if !ok || len(tag) == 0 || len(tag) > 4 {
		return fmt.Errorf("want tag=value, e.g. wght=700, got %q", s)
	}
	f, err := strconv.ParseFloat(val, 32)
	if err != nil {
		return fmt.Errorf("axis value %q: %w", val, err)
	}
	*v = append(*v, fontio.Variation{Tag: tag, Value: float32(f)})
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "iconimation:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		fontPath     = flag.String("font", "", "font file to read the glyph from (required)")
		codepointArg = flag.String("codepoint", "", "glyph codepoint: U+E86C, 0xE86C, decimal, or a literal character (required)")
		animation    = flag.String("animation", string(iconimation.Still), "animation variant")
		templatePath = flag.String("template", "", "template document (defaults to the built-in template)")
		manifestPath = flag.String("manifest", "", "YAML manifest tuning the template")
		outPath      = flag.String("out", "", "output file (defaults to stdout)")
		svgPath      = flag.String("preview-svg", "", "also write the normalized outline as SVG")
		pngPath      = flag.String("preview-png", "", "also write the normalized outline as PNG")
		fontIndex    = flag.Int("index", 0, "face index in a font collection")
		verbose      = flag.Bool("v", false, "log pipeline stages to stderr")
	)
	var variations variationFlags
	flag.Var(&variations, "variation", "variable font axis position as tag=value (repeatable)")
	flag.Parse()

	if *fontPath == "" || *codepointArg == "" {
		flag.Usage()
		return errors.New("-font and -codepoint are required")
	}
	if *verbose {
		iconimation.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cp, err := parseCodepoint(*codepointArg)
	if err != nil {
		return err
	}
	fontData, err := os.ReadFile(*fontPath)
	if err != nil {
		return err
	}

	opts := []iconimation.Option{}
	if *fontIndex > 0 {
		opts = append(opts, iconimation.WithFontIndex(*fontIndex))
	}
	if len(variations) > 0 {
		opts = append(opts, iconimation.WithVariations(variations...))
	}
	if *templatePath != "" {
		tpl, err := loadTemplate(*templatePath, *manifestPath)
		if err != nil {
			return err
		}
		opts = append(opts, iconimation.WithTemplate(tpl))
	} else if *manifestPath != "" {
		return errors.New("-manifest needs -template")
	}

	iconimation.Logger().Info("converting",
		"codepoint", fmt.Sprintf("U+%04X", cp),
		"name", runenames.Name(cp),
		"variant", *animation)

	doc, err := iconimation.Convert(fontData, cp, iconimation.Variant(*animation), opts...)
	if err != nil {
		return err
	}

	if *svgPath != "" || *pngPath != "" {
		if err := writePreviews(fontData, cp, opts, *svgPath, *pngPath); err != nil {
			return err
		}
	}

	if *outPath == "" {
		_, err = os.Stdout.Write(doc)
		return err
	}
	return os.WriteFile(*outPath, doc, 0o644)
}

// parseCodepoint accepts U+XXXX, 0xXXXX, a decimal number or a single
// literal character. Numeric forms take precedence, so "5" is U+0005
// rather than the digit character.
func parseCodepoint(s string) (rune, error) {
	hex := ""
	switch {
	case strings.HasPrefix(s, "U+"), strings.HasPrefix(s, "u+"):
		hex = s[2:]
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		hex = s[2:]
	}
	if hex != "" {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("codepoint %q: %w", s, err)
		}
		return rune(v), nil
	}
	if v, err := strconv.ParseUint(s, 10, 32); err == nil {
		return rune(v), nil
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	}
	return 0, fmt.Errorf("codepoint %q: want U+XXXX, 0xXXXX, a decimal number or a single character", s)
}

func loadTemplate(templatePath, manifestPath string) (*template.Template, error) {
	doc, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, err
	}
	if manifestPath == "" {
		return template.Load(doc)
	}
	manifest, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, err
	}
	return template.LoadWithManifest(doc, manifest)
}

func writePreviews(fontData []byte, cp rune, opts []iconimation.Option, svgPath, pngPath string) error {
	paths, canvas, err := iconimation.Outline(fontData, cp, opts...)
	if err != nil {
		return err
	}
	if svgPath != "" {
		if err := os.WriteFile(svgPath, preview.SVG(paths, canvas), 0o644); err != nil {
			return err
		}
	}
	if pngPath != "" {
		img, err := preview.PNG(paths, canvas)
		if err != nil {
			return err
		}
		if err := os.WriteFile(pngPath, img, 0o644); err != nil {
			return err
		}
	}
	return nil
}
