// This file is part of the program "fontladder".
// Please see the LICENSE file for copyright information.

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/gomono"

	"fontladder/fonts"
)

func TestParseArgs(t *testing.T) {
	var stderr bytes.Buffer
	opt, err := parseArgs([]string{
		"-n", "assets",
		"--source-path", "out/fonts",
		"-f", "Roboto.ttf", "18",
		"-i", "fa.ttf", "0xf000", "0xf0ff", "U+E000-U+E0FF",
		"--icon", "extra.ttf", "61440", "61450",
		"--log",
	}, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	if opt.namespace != "assets" || opt.path != "out/fonts" {
		t.Errorf("namespace/path = %q/%q", opt.namespace, opt.path)
	}
	if len(opt.fonts) != 1 || opt.fonts[0].path != "Roboto.ttf" || opt.fonts[0].size != 18 {
		t.Fatalf("fonts = %+v", opt.fonts)
	}
	if !opt.doLog {
		t.Errorf("--log not seen")
	}
	icons := opt.fonts[0].icons
	if len(icons) != 2 {
		t.Fatalf("got %d icons, want 2", len(icons))
	}
	want := []fonts.Range{{Lo: 0xf000, Hi: 0xf0ff}, {Lo: 0xe000, Hi: 0xe0ff}}
	if got := icons[0].ranges; len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("first icon ranges = %v, want %v", got, want)
	}
	if got := icons[1]; got.path != "extra.ttf" || got.ranges[0] != (fonts.Range{Lo: 61440, Hi: 61450}) {
		t.Errorf("second icon = %+v", got)
	}
	for _, msg := range []string{`Using "assets" for source namespace.`, `Using "out/fonts" for source path.`} {
		if !strings.Contains(stderr.String(), msg) {
			t.Errorf("stderr lacks %q:\n%s", msg, stderr.String())
		}
	}
	if strings.Contains(stderr.String(), "skipping") {
		t.Errorf("unexpected warning: %s", stderr.String())
	}
}

func TestParseArgsIconsFollowTheirFont(t *testing.T) {
	var stderr bytes.Buffer
	opt, err := parseArgs([]string{"-f", "a.ttf", "16", "-i", "ic.ttf", "1", "2", "-f", "b.ttf", "20"}, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	if len(opt.fonts) != 2 {
		t.Fatalf("got %d fonts, want 2: %+v", len(opt.fonts), opt.fonts)
	}
	a, b := opt.fonts[0], opt.fonts[1]
	if a.path != "a.ttf" || a.size != 16 || len(a.icons) != 1 || a.icons[0].path != "ic.ttf" {
		t.Errorf("first font = %+v", a)
	}
	if b.path != "b.ttf" || b.size != 20 || len(b.icons) != 0 {
		t.Errorf("second font = %+v", b)
	}

	conf := defaultConfig()
	applyCLI(opt, &conf)
	if conf.FontPath != "a.ttf" || conf.FontSize != 16 {
		t.Errorf("remembered font = %s %d, want the first one", conf.FontPath, conf.FontSize)
	}
}

func TestParseArgsFontSize(t *testing.T) {
	cases := []struct {
		in   string
		want int
		warn bool
	}{
		{"16", 16, false},
		{"14.5", 15, false},
		{"13.2", 13, false},
		{"1", 1, false},
		{"big", fallbackSize, true},
		{"0", fallbackSize, true},
		{"0.5", fallbackSize, true},
		{"-4", fallbackSize, true},
		{"NaN", fallbackSize, true},
		{"Inf", fallbackSize, true},
	}
	for _, c := range cases {
		var stderr bytes.Buffer
		opt, err := parseArgs([]string{"-f", "a.ttf", c.in}, &stderr)
		if err != nil {
			t.Fatalf("size %q: %v", c.in, err)
		}
		if got := opt.fonts[0].size; got != c.want {
			t.Errorf("size %q: got %d, want %d", c.in, got, c.want)
		}
		if warned := strings.Contains(stderr.String(), "Invalid font size"); warned != c.warn {
			t.Errorf("size %q: warned=%t, want %t", c.in, warned, c.warn)
		}
	}
}

func TestParseArgsRecovers(t *testing.T) {
	cases := []struct {
		name   string
		args   []string
		ranges []fonts.Range
		warn   string
	}{
		{"odd ranges", []string{"-i", "fa.ttf", "0xf000", "0xf0ff", "0xf100"},
			[]fonts.Range{{Lo: 0xf000, Hi: 0xf0ff}}, "odd number of values"},
		{"reversed range", []string{"-i", "fa.ttf", "0x20-0x10", "1", "2"},
			[]fonts.Range{{Lo: 1, Hi: 2}}, "is reversed"},
		{"bad code point", []string{"-i", "fa.ttf", "zz", "1", "2"},
			[]fonts.Range{{Lo: 1, Hi: 2}}, "invalid code point"},
		{"outside unicode", []string{"-i", "fa.ttf", "1", "2", "0", "0x110000"},
			[]fonts.Range{{Lo: 1, Hi: 2}}, "outside Unicode"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var stderr bytes.Buffer
			args := append([]string{"-f", "a.ttf", "12"}, c.args...)
			opt, err := parseArgs(args, &stderr)
			if err != nil {
				t.Fatalf("parseArgs(%q): %v", args, err)
			}
			icons := opt.fonts[0].icons
			if len(icons) != 1 || len(icons[0].ranges) != len(c.ranges) {
				t.Fatalf("icons = %+v, want ranges %v", icons, c.ranges)
			}
			for i, rg := range c.ranges {
				if icons[0].ranges[i] != rg {
					t.Errorf("range %d = %v, want %v", i, icons[0].ranges[i], rg)
				}
			}
			if !strings.Contains(stderr.String(), c.warn) {
				t.Errorf("stderr lacks %q:\n%s", c.warn, stderr.String())
			}
		})
	}
}

func TestParseArgsUnknownOption(t *testing.T) {
	var stderr bytes.Buffer
	opt, err := parseArgs([]string{"--verbose", "-f", "a.ttf", "16"}, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	if len(opt.fonts) != 1 || opt.fonts[0].size != 16 {
		t.Errorf("options after the unknown one were lost: %+v", opt)
	}
	if !strings.Contains(stderr.String(), `Unknown argument "--verbose"`) {
		t.Errorf("no warning: %s", stderr.String())
	}
}

func TestParseArgsIconWithoutRanges(t *testing.T) {
	var stderr bytes.Buffer
	opt, err := parseArgs([]string{"-f", "a.ttf", "12", "-i", "fa.ttf", "-n", "pkg"}, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	if len(opt.fonts[0].icons) != 0 || opt.namespace != "pkg" {
		t.Errorf("opt = %+v", opt)
	}
	if !strings.Contains(stderr.String(), "no usable glyph ranges") {
		t.Errorf("no warning: %s", stderr.String())
	}
}

func TestParseArgsRepeatedOptions(t *testing.T) {
	var stderr bytes.Buffer
	opt, err := parseArgs([]string{"-n", "one", "-p", "a", "-n", "two", "--source-path", "b"}, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	if opt.namespace != "two" || opt.path != "b" {
		t.Errorf("last occurrence should win: %q %q", opt.namespace, opt.path)
	}
	if n := strings.Count(stderr.String(), "expected only once"); n != 2 {
		t.Errorf("got %d repeat warnings, want 2:\n%s", n, stderr.String())
	}
}

func TestParseArgsErrors(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"icon before font", []string{"-i", "fa.ttf", "1", "2"}},
		{"icon without path", []string{"-f", "a.ttf", "12", "-i"}},
		{"missing namespace", []string{"-n"}},
		{"missing path", []string{"-p"}},
		{"font without size", []string{"-f", "a.ttf"}},
		{"theme without name", []string{"--theme"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var stderr bytes.Buffer
			if _, err := parseArgs(c.args, &stderr); err == nil {
				t.Errorf("parseArgs(%q) succeeded", c.args)
			}
		})
	}
}

func TestParseArgsHelp(t *testing.T) {
	var stderr bytes.Buffer
	opt, err := parseArgs([]string{"-n", "x", "--help", "--bogus"}, &stderr)
	if !errors.Is(err, errHelp) || !opt.help {
		t.Errorf("help not reported: %v", err)
	}
}

func TestIconEndsAtNextOption(t *testing.T) {
	var stderr bytes.Buffer
	opt, err := parseArgs([]string{"-f", "a.ttf", "12", "-i", "fa.ttf", "1", "5", "-n", "pkg"}, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	if opt.namespace != "pkg" {
		t.Errorf("option after icon ranges was swallowed: %+v", opt)
	}
	if icons := opt.fonts[0].icons; len(icons) != 1 || len(icons[0].ranges) != 1 {
		t.Errorf("icons = %+v", icons)
	}
}

func TestApplyCLI(t *testing.T) {
	conf := defaultConfig()
	applyCLI(CLIOpts{}, &conf)
	if conf != defaultConfig() {
		t.Errorf("empty options changed config: %+v", conf)
	}

	applyCLI(CLIOpts{namespace: "ns", path: "dir", fonts: []fontOpt{{path: "a.ttf", size: 20}}, theme: "red"}, &conf)
	if conf.Namespace != "ns" || conf.SourcePath != "dir" || conf.FontPath != "a.ttf" || conf.FontSize != 20 || conf.Theme != "red" {
		t.Errorf("options not applied: %+v", conf)
	}
}

func TestPrintUsage(t *testing.T) {
	var buf bytes.Buffer
	printUsage(&buf)
	for _, flag := range []string{"--source-namespace", "--source-path", "--font", "--icon", "--help"} {
		if !strings.Contains(buf.String(), flag) {
			t.Errorf("usage lacks %s", flag)
		}
	}
}

func TestLoadFonts(t *testing.T) {
	dir := t.TempDir()
	mono := filepath.Join(dir, "mono.ttf")
	if err := os.WriteFile(mono, gomono.TTF, 0644); err != nil {
		t.Fatal(err)
	}

	conf := defaultConfig()
	list, err := loadFonts(CLIOpts{}, &conf)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Path != "" || list[0].Px != fonts.DefaultSize {
		t.Errorf("remembered font = %+v", list)
	}

	opt := CLIOpts{fonts: []fontOpt{
		{path: mono, size: 14, icons: []iconOpt{{path: mono, ranges: []fonts.Range{{Lo: '0', Hi: '9'}}}}},
		{path: mono, size: 20},
	}}
	list, err = loadFonts(opt, &conf)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Px != 14 || len(list[0].Icons) != 1 || list[1].Px != 20 || len(list[1].Icons) != 0 {
		t.Errorf("fonts = %+v", list)
	}
	cfg := buildGenConfig(&conf, list)
	if len(cfg.Fonts) != 2 || cfg.Namespace != conf.Namespace || cfg.Path != conf.SourcePath {
		t.Errorf("gen config = %+v", cfg)
	}

	opt.fonts[1].path = filepath.Join(dir, "missing.ttf")
	if _, err := loadFonts(opt, &conf); err == nil {
		t.Errorf("expected error for missing font")
	}
}
