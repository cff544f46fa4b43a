// This file is part of the program "fontladder".
// Please see the LICENSE file for copyright information.

package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"fontladder/fonts"
	"fontladder/gen"
)

type iconOpt struct {
	path   string
	ranges []fonts.Range
}

// fontOpt is one --font with the --icon options that followed it.
type fontOpt struct {
	path  string
	size  int
	icons []iconOpt
}

type CLIOpts struct {
	doLog     bool
	help      bool
	generate  bool
	namespace string
	path      string
	theme     string
	fonts     []fontOpt
}

type parseState int

const (
	expectOption parseState = iota
	expectNamespace
	expectPath
	expectFont
	expectIcon
)

// fallbackSize replaces a font size that cannot be used.
const fallbackSize = 13

var errHelp = errors.New("help requested")

const usage = `Usage: %s [options]

Example:
  %s -n assets -p assets -f Roboto-Medium.ttf 16 -i fa-solid-900.ttf 0xf000 0xf3ff

  -n, --source-namespace NAME   package name of the generated source
  -p, --source-path DIR         directory the generated source is written to
  -f, --font PATH PX            a base font and its pixel size; may be repeated
  -i, --icon PATH RANGES...     merge icons from PATH into the preceding --font;
                                RANGES are lo hi pairs or lo-hi tokens
                                (0xf000, U+F000, 61440)
      --theme NAME              default, white, red or dark
      --generate                write the generated source and exit
      --log                     print debugging output to stdout
  -h, --help                    show this help
`

func printUsage(w io.Writer) {
	fmt.Fprintf(w, usage, appName, appName)
}

// parseArgs walks args with a small state machine. Mistakes it can step
// over are reported to stderr; only a missing operand or an --icon with no
// font to merge into is returned as an error.
func parseArgs(args []string, stderr io.Writer) (CLIOpts, error) {
	var opt CLIOpts
	state := expectOption
	var operands []string
	var sawNamespace, sawPath bool

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch state {
		case expectOption:
			switch arg {
			case "-n", "--source-namespace":
				if sawNamespace {
					fmt.Fprintf(stderr, "Source namespace (--source-namespace, -n) is expected only once; overriding with the next occurrence.\n")
				}
				sawNamespace = true
				state = expectNamespace
			case "-p", "--source-path":
				if sawPath {
					fmt.Fprintf(stderr, "Source path (--source-path, -p) is expected only once; overriding with the next occurrence.\n")
				}
				sawPath = true
				state = expectPath
			case "-f", "--font":
				state = expectFont
				operands = operands[:0]
			case "-i", "--icon":
				if len(opt.fonts) == 0 {
					return opt, fmt.Errorf("%s given before any --font; icons need a base font to merge into", arg)
				}
				state = expectIcon
				operands = operands[:0]
			case "--theme":
				if i+1 >= len(args) {
					return opt, fmt.Errorf("missing theme name after %s", arg)
				}
				i++
				opt.theme = args[i]
			case "--generate":
				opt.generate = true
			case "--log":
				opt.doLog = true
			case "-h", "--help":
				opt.help = true
				return opt, errHelp
			default:
				fmt.Fprintf(stderr, "Unknown argument %q, ignoring it.\n", arg)
			}

		case expectNamespace:
			fmt.Fprintf(stderr, "Using %q for source namespace.\n", arg)
			opt.namespace = arg
			state = expectOption

		case expectPath:
			fmt.Fprintf(stderr, "Using %q for source path.\n", arg)
			opt.path = arg
			state = expectOption

		case expectFont:
			operands = append(operands, arg)
			if len(operands) < 2 {
				continue
			}
			f := fontOpt{path: operands[0], size: parseFontSize(operands[0], operands[1], stderr)}
			opt.fonts = append(opt.fonts, f)
			state = expectOption

		case expectIcon:
			if len(operands) > 0 && strings.HasPrefix(arg, "-") {
				addIcon(&opt, operands, stderr)
				state = expectOption
				i--
				continue
			}
			operands = append(operands, arg)
		}
	}

	switch state {
	case expectNamespace:
		return opt, errors.New("missing name after --source-namespace")
	case expectPath:
		return opt, errors.New("missing directory after --source-path")
	case expectFont:
		return opt, errors.New("--font needs a path and a pixel size")
	case expectIcon:
		if len(operands) == 0 {
			return opt, errors.New("--icon needs a path")
		}
		addIcon(&opt, operands, stderr)
	}
	return opt, nil
}

// parseFontSize accepts any number of pixels from 1 up and rounds it to
// whole pixels.
func parseFontSize(path, s string, stderr io.Writer) int {
	px, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(px) || math.IsInf(px, 0) || px < 1 {
		fmt.Fprintf(stderr, "Invalid font size in pixels '%s' for %s, using %dpx.\n", s, path, fallbackSize)
		return fallbackSize
	}
	return int(math.Round(px))
}

// addIcon merges the icon into the last font given. Ranges it cannot use
// are reported and left out.
func addIcon(opt *CLIOpts, operands []string, stderr io.Writer) {
	ic := finishIcon(operands, stderr)
	if len(ic.ranges) == 0 {
		fmt.Fprintf(stderr, "Icon font %s has no usable glyph ranges, skipping it.\n", ic.path)
		return
	}
	last := &opt.fonts[len(opt.fonts)-1]
	last.icons = append(last.icons, ic)
}

func finishIcon(operands []string, stderr io.Writer) iconOpt {
	ic := iconOpt{path: operands[0]}
	var bounds []rune
	for _, tok := range operands[1:] {
		if lo, hi, ok := strings.Cut(tok, "-"); ok && lo != "" {
			l, lerr := parseRune(lo)
			h, herr := parseRune(hi)
			if lerr != nil || herr != nil {
				fmt.Fprintf(stderr, "Icon font %s: invalid range '%s', skipping it.\n", ic.path, tok)
				continue
			}
			bounds = append(bounds, l, h)
			continue
		}
		r, err := parseRune(tok)
		if err != nil {
			fmt.Fprintf(stderr, "Icon font %s: %v, skipping it.\n", ic.path, err)
			continue
		}
		bounds = append(bounds, r)
	}
	if len(bounds)%2 != 0 {
		fmt.Fprintf(stderr, "Icon font %s: glyph ranges have an odd number of values, they must come in pairs. Skipping the last value U+%04X.\n", ic.path, bounds[len(bounds)-1])
		bounds = bounds[:len(bounds)-1]
	}
	for j := 0; j < len(bounds); j += 2 {
		rg := fonts.Range{Lo: bounds[j], Hi: bounds[j+1]}
		if rg.Lo > rg.Hi {
			fmt.Fprintf(stderr, "Icon font %s: range %s is reversed, skipping it.\n", ic.path, rg)
			continue
		}
		ic.ranges = append(ic.ranges, rg)
	}
	return ic
}

func parseRune(s string) (rune, error) {
	base := 0
	if strings.HasPrefix(s, "U+") || strings.HasPrefix(s, "u+") {
		s = s[2:]
		base = 16
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid code point '%s': %w", s, err)
	}
	if v > 0x10FFFF {
		return 0, fmt.Errorf("code point %#x is outside Unicode", v)
	}
	return rune(v), nil
}

func parseCLIOpts() CLIOpts {
	opt, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, errHelp) {
		printUsage(os.Stderr)
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n", err)
		printUsage(os.Stderr)
		os.Exit(1)
	}
	return opt
}

// applyCLI folds the command line into conf. Values given on the command
// line win over the config file; the first --font is the one remembered.
func applyCLI(opt CLIOpts, conf *config) {
	if opt.namespace != "" {
		conf.Namespace = opt.namespace
	}
	if opt.path != "" {
		conf.SourcePath = opt.path
	}
	if len(opt.fonts) > 0 {
		conf.FontPath = opt.fonts[0].path
		conf.FontSize = opt.fonts[0].size
	}
	if opt.theme != "" {
		conf.Theme = opt.theme
	}
}

// loadFonts reads every font named on the command line, or the remembered
// one when none was given.
func loadFonts(opt CLIOpts, conf *config) ([]fonts.Font, error) {
	list := opt.fonts
	if len(list) == 0 {
		list = []fontOpt{{path: conf.FontPath, size: conf.FontSize}}
	}
	var out []fonts.Font
	for _, fo := range list {
		src, err := fonts.ReadSource(fo.path)
		if err != nil {
			return nil, err
		}
		f := fonts.Font{Source: src, Px: fo.size}
		for _, ic := range fo.icons {
			isrc, err := fonts.ReadSource(ic.path)
			if err != nil {
				return nil, err
			}
			f.Icons = append(f.Icons, fonts.IconSource{Source: isrc, Ranges: ic.ranges})
		}
		out = append(out, f)
	}
	return out, nil
}

func buildGenConfig(conf *config, list []fonts.Font) gen.Config {
	return gen.Config{
		Namespace: conf.Namespace,
		Path:      conf.SourcePath,
		Fonts:     list,
	}
}

// doCLI runs the headless actions; it exits when one was requested.
func doCLI(opt CLIOpts, conf *config, list []fonts.Font) {
	if !opt.generate {
		return
	}
	file, err := gen.Generate(buildGenConfig(conf, list))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Couldn't generate font source: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", file)
	os.Exit(0)
}
